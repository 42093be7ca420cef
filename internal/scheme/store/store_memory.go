package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"agrigate/internal/scheme/models"
	id "agrigate/pkg/domain"
	"agrigate/pkg/platform/sentinel"
)

// InMemory implements the scheme store with a mutex-guarded map. Used by unit
// tests and local runs without a database; Postgres is the production store.
type InMemory struct {
	mu      sync.RWMutex
	schemes map[id.SchemeID]*models.Scheme
}

// NewInMemory creates an empty in-memory scheme store.
func NewInMemory() *InMemory {
	return &InMemory{schemes: make(map[id.SchemeID]*models.Scheme)}
}

// Create inserts a scheme into the catalog.
func (s *InMemory) Create(ctx context.Context, scheme *models.Scheme) error {
	if scheme == nil {
		return fmt.Errorf("scheme is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schemes[scheme.ID] = cloneScheme(scheme)
	return nil
}

// ListAll returns every scheme in the catalog, ordered by creation time and
// name for a stable listing.
func (s *InMemory) ListAll(ctx context.Context) ([]*models.Scheme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Scheme, 0, len(s.schemes))
	for _, scheme := range s.schemes {
		out = append(out, cloneScheme(scheme))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// FindByID returns the scheme with the given ID or sentinel.ErrNotFound.
func (s *InMemory) FindByID(ctx context.Context, schemeID id.SchemeID) (*models.Scheme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scheme, ok := s.schemes[schemeID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneScheme(scheme), nil
}

// Count returns the number of schemes in the catalog.
func (s *InMemory) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.schemes), nil
}

// cloneScheme copies the record so callers never alias store-owned state.
func cloneScheme(in *models.Scheme) *models.Scheme {
	cp := *in
	if in.Eligibility.States != nil {
		cp.Eligibility.States = append([]string(nil), in.Eligibility.States...)
	}
	if in.Eligibility.Crops != nil {
		cp.Eligibility.Crops = append([]string(nil), in.Eligibility.Crops...)
	}
	cp.Eligibility.MinIncome = clonePtr(in.Eligibility.MinIncome)
	cp.Eligibility.MaxIncome = clonePtr(in.Eligibility.MaxIncome)
	cp.Eligibility.MinLandSize = clonePtr(in.Eligibility.MinLandSize)
	return &cp
}

func clonePtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}
