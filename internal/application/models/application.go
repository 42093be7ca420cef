package models

import (
	"time"

	id "agrigate/pkg/domain"
	dErrors "agrigate/pkg/domain-errors"
)

// Status is the lifecycle state of a scheme application. Submission is the
// only transition the API performs; review happens out of band.
type Status string

const (
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

// Application records that a farmer applied to a scheme. At most one
// application exists per (farmer, scheme) pair.
type Application struct {
	ID        id.ApplicationID `json:"id"`
	FarmerID  id.FarmerID      `json:"farmerId"`
	SchemeID  id.SchemeID      `json:"schemeId"`
	Status    Status           `json:"status"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// NewApplication constructs a submitted application with its construction
// invariants enforced.
func NewApplication(applicationID id.ApplicationID, farmerID id.FarmerID, schemeID id.SchemeID, now time.Time) (*Application, error) {
	if farmerID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "farmer ID cannot be empty")
	}
	if schemeID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "scheme ID cannot be empty")
	}
	return &Application{
		ID:        applicationID,
		FarmerID:  farmerID,
		SchemeID:  schemeID,
		Status:    StatusSubmitted,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
