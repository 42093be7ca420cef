package handler

import (
	"strings"

	"github.com/asaskevich/govalidator"

	"agrigate/internal/farmer/models"
	dErrors "agrigate/pkg/domain-errors"
	pstrings "agrigate/pkg/platform/strings"
)

// RegisterRequest is the HTTP request body for POST /api/auth/register.
// Profile fields are optional and stored verbatim.
type RegisterRequest struct {
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Password     string          `json:"password"`
	Location     models.Location `json:"location"`
	Crops        []string        `json:"crops"`
	AnnualIncome float64         `json:"annualIncome"`
	LandSize     float64         `json:"landSize"`
	Category     string          `json:"category"`
}

// Validate validates and normalizes the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *RegisterRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	if r.Name == "" || r.Email == "" || r.Password == "" {
		return dErrors.New(dErrors.CodeValidation, "Name, email and password required")
	}
	if !govalidator.StringLength(r.Email, "3", "255") || !govalidator.IsEmail(r.Email) {
		return dErrors.New(dErrors.CodeValidation, "invalid email")
	}
	if len(r.Name) > 255 {
		return dErrors.New(dErrors.CodeValidation, "name must be at most 255 characters")
	}
	return nil
}

// Profile returns the optional registration fields as a domain profile.
// Crops are trimmed and deduplicated but keep their case; eligibility
// matching is case-sensitive.
func (r *RegisterRequest) Profile() models.Profile {
	return models.Profile{
		Location:     r.Location,
		Crops:        pstrings.DedupeAndTrim(r.Crops),
		AnnualIncome: r.AnnualIncome,
		LandSize:     r.LandSize,
		Category:     r.Category,
	}
}

// LoginRequest is the HTTP request body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate validates the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *LoginRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Email = strings.TrimSpace(r.Email)
	if r.Email == "" || r.Password == "" {
		return dErrors.New(dErrors.CodeValidation, "Email and password required")
	}
	return nil
}
