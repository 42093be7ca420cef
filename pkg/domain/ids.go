// Package domain holds typed identifiers shared across modules.
//
// IDs are distinct types over uuid.UUID so a FarmerID can never be passed
// where a SchemeID is expected. Parse helpers validate at the boundary;
// everything past the handler layer works with typed values.
package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// FarmerID identifies a registered farmer.
type FarmerID uuid.UUID

// SchemeID identifies a welfare scheme.
type SchemeID uuid.UUID

// ApplicationID identifies a scheme application.
type ApplicationID uuid.UUID

// NewFarmerID returns a fresh random FarmerID.
func NewFarmerID() FarmerID { return FarmerID(uuid.New()) }

// NewSchemeID returns a fresh random SchemeID.
func NewSchemeID() SchemeID { return SchemeID(uuid.New()) }

// NewApplicationID returns a fresh random ApplicationID.
func NewApplicationID() ApplicationID { return ApplicationID(uuid.New()) }

// ParseFarmerID validates and returns a FarmerID.
func ParseFarmerID(s string) (FarmerID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return FarmerID{}, fmt.Errorf("invalid farmer id: %w", err)
	}
	return FarmerID(u), nil
}

// ParseSchemeID validates and returns a SchemeID.
func ParseSchemeID(s string) (SchemeID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return SchemeID{}, fmt.Errorf("invalid scheme id: %w", err)
	}
	return SchemeID(u), nil
}

func (id FarmerID) String() string { return uuid.UUID(id).String() }

func (id FarmerID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

func (id SchemeID) String() string { return uuid.UUID(id).String() }

func (id SchemeID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

func (id ApplicationID) String() string { return uuid.UUID(id).String() }

func (id ApplicationID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// MarshalText implements encoding.TextMarshaler so IDs render as canonical
// UUID strings in JSON payloads.
func (id FarmerID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *FarmerID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = FarmerID(u)
	return nil
}

func (id SchemeID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *SchemeID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = SchemeID(u)
	return nil
}

func (id ApplicationID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *ApplicationID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = ApplicationID(u)
	return nil
}
