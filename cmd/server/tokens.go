package main

import (
	"agrigate/internal/jwttoken"
	id "agrigate/pkg/domain"
	dErrors "agrigate/pkg/domain-errors"
	"agrigate/pkg/platform/middleware/auth"
)

// tokenValidatorAdapter bridges the jwttoken service onto the auth
// middleware's validator interface so the middleware stays decoupled from
// the JWT implementation.
type tokenValidatorAdapter struct {
	tokens *jwttoken.Service
}

func (a *tokenValidatorAdapter) ValidateToken(tokenString string) (*auth.TokenClaims, error) {
	claims, err := a.tokens.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	farmerID, err := id.ParseFarmerID(claims.FarmerID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	return &auth.TokenClaims{
		FarmerID: farmerID,
		JTI:      claims.ID,
	}, nil
}
