package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"agrigate/internal/farmer/models"
	id "agrigate/pkg/domain"
	"agrigate/pkg/platform/sentinel"
)

// InMemory implements the farmer store with a mutex-guarded map. Used by unit
// tests and local runs without a database; Postgres is the production store.
type InMemory struct {
	mu      sync.RWMutex
	byID    map[id.FarmerID]*models.Farmer
	byEmail map[string]id.FarmerID
}

// NewInMemory creates an empty in-memory farmer store.
func NewInMemory() *InMemory {
	return &InMemory{
		byID:    make(map[id.FarmerID]*models.Farmer),
		byEmail: make(map[string]id.FarmerID),
	}
}

// CreateIfEmailAvailable inserts the farmer unless the email is already
// registered (compared case-insensitively). Returns sentinel.ErrConflict on a
// duplicate so the service can translate it.
func (s *InMemory) CreateIfEmailAvailable(ctx context.Context, farmer *models.Farmer) error {
	if farmer == nil {
		return fmt.Errorf("farmer is required")
	}
	key := strings.ToLower(farmer.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[key]; exists {
		return fmt.Errorf("email %q: %w", farmer.Email, sentinel.ErrConflict)
	}
	cp := cloneFarmer(farmer)
	s.byID[farmer.ID] = cp
	s.byEmail[key] = farmer.ID
	return nil
}

// FindByID returns the farmer with the given ID or sentinel.ErrNotFound.
func (s *InMemory) FindByID(ctx context.Context, farmerID id.FarmerID) (*models.Farmer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	farmer, ok := s.byID[farmerID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneFarmer(farmer), nil
}

// FindByEmail returns the farmer registered under the given email, including
// the password hash. Lookup is case-insensitive.
func (s *InMemory) FindByEmail(ctx context.Context, email string) (*models.Farmer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	farmerID, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneFarmer(s.byID[farmerID]), nil
}

// cloneFarmer copies the record so callers never alias store-owned state.
func cloneFarmer(f *models.Farmer) *models.Farmer {
	cp := *f
	if f.Crops != nil {
		cp.Crops = append([]string(nil), f.Crops...)
	}
	return &cp
}
