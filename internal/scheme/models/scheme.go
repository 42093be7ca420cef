package models

import (
	"time"

	id "agrigate/pkg/domain"
	dErrors "agrigate/pkg/domain-errors"
)

// Eligibility declares the constraints a scheme places on applicants.
// Any absent field means "no constraint on this dimension": empty slices
// and nil numeric pointers are unconstrained, as is an empty category.
type Eligibility struct {
	States      []string `json:"states,omitempty"`
	Crops       []string `json:"crops,omitempty"`
	MinIncome   *float64 `json:"minIncome,omitempty"`
	MaxIncome   *float64 `json:"maxIncome,omitempty"`
	MinLandSize *float64 `json:"minLandSize,omitempty"`
	Category    string   `json:"category,omitempty"`
}

// Scheme is a welfare scheme farmers can apply to. Read-only through the
// API; the catalog is seeded or loaded out of band.
type Scheme struct {
	ID          id.SchemeID `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Eligibility Eligibility `json:"eligibility"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// NewScheme constructs a scheme with its construction invariants enforced.
func NewScheme(schemeID id.SchemeID, name, description string, eligibility Eligibility, now time.Time) (*Scheme, error) {
	if name == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "scheme name cannot be empty")
	}
	return &Scheme{
		ID:          schemeID,
		Name:        name,
		Description: description,
		Eligibility: eligibility,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
