package models

import (
	"time"

	id "agrigate/pkg/domain"
	dErrors "agrigate/pkg/domain-errors"
)

// Location is the farmer's declared home location.
type Location struct {
	State    string `json:"state"`
	District string `json:"district"`
}

// Farmer is the aggregate root for a registered farmer.
//
// Invariants:
//   - Email is unique across the store, compared case-insensitively
//   - PasswordHash is never serialized to API responses or logs
//   - CreatedAt is immutable after construction
//
// Profile fields (location, crops, income, land size, category) are stored
// verbatim as supplied at registration; eligibility matching reads them as-is.
type Farmer struct {
	ID           id.FarmerID `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Location     Location    `json:"location"`
	Crops        []string    `json:"crops"`
	AnnualIncome float64     `json:"annualIncome"`
	LandSize     float64     `json:"landSize"`
	Category     string      `json:"category"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// Profile carries the optional registration fields that are merged into the
// farmer record without shape validation.
type Profile struct {
	Location     Location
	Crops        []string
	AnnualIncome float64
	LandSize     float64
	Category     string
}

// NewFarmer constructs a farmer with its construction invariants enforced.
// The password hash must already be computed; this package never sees plaintext.
func NewFarmer(farmerID id.FarmerID, name, email, passwordHash string, profile Profile, now time.Time) (*Farmer, error) {
	if name == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if email == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "email is required")
	}
	if passwordHash == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "password hash is required")
	}
	return &Farmer{
		ID:           farmerID,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Location:     profile.Location,
		Crops:        profile.Crops,
		AnnualIncome: profile.AnnualIncome,
		LandSize:     profile.LandSize,
		Category:     profile.Category,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
