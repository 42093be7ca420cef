package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"agrigate/internal/application/models"
	id "agrigate/pkg/domain"
	"agrigate/pkg/platform/sentinel"
)

type pairKey struct {
	farmer id.FarmerID
	scheme id.SchemeID
}

// InMemory implements the application store with a mutex-guarded map. The
// pair index enforces the same one-application-per-scheme rule the Postgres
// unique constraint does.
type InMemory struct {
	mu     sync.RWMutex
	byID   map[id.ApplicationID]*models.Application
	byPair map[pairKey]id.ApplicationID
}

// NewInMemory creates an empty in-memory application store.
func NewInMemory() *InMemory {
	return &InMemory{
		byID:   make(map[id.ApplicationID]*models.Application),
		byPair: make(map[pairKey]id.ApplicationID),
	}
}

// CreateIfAbsent inserts the application unless the farmer already applied
// to the scheme, in which case it returns sentinel.ErrConflict. The check
// and insert happen under one lock, so concurrent duplicates cannot both
// succeed.
func (s *InMemory) CreateIfAbsent(ctx context.Context, application *models.Application) error {
	if application == nil {
		return fmt.Errorf("application is required")
	}
	key := pairKey{farmer: application.FarmerID, scheme: application.SchemeID}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byPair[key]; exists {
		return sentinel.ErrConflict
	}
	s.byID[application.ID] = cloneApplication(application)
	s.byPair[key] = application.ID
	return nil
}

// FindByFarmerAndScheme returns the farmer's application to the scheme or
// sentinel.ErrNotFound.
func (s *InMemory) FindByFarmerAndScheme(ctx context.Context, farmerID id.FarmerID, schemeID id.SchemeID) (*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	appID, ok := s.byPair[pairKey{farmer: farmerID, scheme: schemeID}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneApplication(s.byID[appID]), nil
}

// ListByFarmer returns the farmer's applications ordered by submission time.
func (s *InMemory) ListByFarmer(ctx context.Context, farmerID id.FarmerID) ([]*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Application
	for _, app := range s.byID {
		if app.FarmerID == farmerID {
			out = append(out, cloneApplication(app))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func cloneApplication(in *models.Application) *models.Application {
	cp := *in
	return &cp
}
