package handler

import (
	"strings"

	id "agrigate/pkg/domain"
	dErrors "agrigate/pkg/domain-errors"
)

// ApplyRequest is the HTTP request body for POST /api/applications.
type ApplyRequest struct {
	SchemeID string `json:"schemeId"`

	schemeID id.SchemeID
}

// Validate validates and normalizes the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *ApplyRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	r.SchemeID = strings.TrimSpace(r.SchemeID)
	if r.SchemeID == "" {
		return dErrors.New(dErrors.CodeValidation, "schemeId required")
	}

	schemeID, err := id.ParseSchemeID(r.SchemeID)
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, "schemeId must be a valid ID")
	}
	r.schemeID = schemeID
	return nil
}

// ParsedSchemeID returns the scheme ID parsed during validation.
func (r *ApplyRequest) ParsedSchemeID() id.SchemeID {
	return r.schemeID
}
