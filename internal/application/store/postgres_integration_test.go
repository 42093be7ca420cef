//go:build integration

package store_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"agrigate/internal/application/models"
	"agrigate/internal/application/store"
	farmermodels "agrigate/internal/farmer/models"
	farmerstore "agrigate/internal/farmer/store"
	schememodels "agrigate/internal/scheme/models"
	schemestore "agrigate/internal/scheme/store"
	id "agrigate/pkg/domain"
	"agrigate/pkg/platform/sentinel"
	"agrigate/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
	farmers  *farmerstore.PostgresStore
	schemes  *schemestore.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
	s.farmers = farmerstore.NewPostgres(s.postgres.DB)
	s.schemes = schemestore.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "applications", "schemes", "farmers")
	s.Require().NoError(err)
}

// seedPair creates the farmer and scheme rows the application foreign keys
// point at.
func (s *PostgresStoreSuite) seedPair() (id.FarmerID, id.SchemeID) {
	ctx := context.Background()
	now := time.Now()

	farmer := &farmermodels.Farmer{
		ID:           id.NewFarmerID(),
		Name:         "Test Farmer",
		Email:        "apply-" + uuid.NewString() + "@example.com",
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
		Location:     farmermodels.Location{State: "Punjab", District: "Ludhiana"},
		Crops:        []string{"Wheat"},
		AnnualIncome: 50000,
		LandSize:     3,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.Require().NoError(s.farmers.CreateIfEmailAvailable(ctx, farmer))

	scheme := &schememodels.Scheme{
		ID:        id.NewSchemeID(),
		Name:      "Test Scheme " + uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Require().NoError(s.schemes.Create(ctx, scheme))

	return farmer.ID, scheme.ID
}

func newApplication(farmerID id.FarmerID, schemeID id.SchemeID) *models.Application {
	now := time.Now()
	return &models.Application{
		ID:        id.NewApplicationID(),
		FarmerID:  farmerID,
		SchemeID:  schemeID,
		Status:    models.StatusSubmitted,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TestRoundTrip verifies all columns survive an insert and read back.
func (s *PostgresStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	farmerID, schemeID := s.seedPair()
	app := newApplication(farmerID, schemeID)

	s.Require().NoError(s.store.CreateIfAbsent(ctx, app))

	found, err := s.store.FindByFarmerAndScheme(ctx, farmerID, schemeID)
	s.Require().NoError(err)
	s.Equal(app.ID, found.ID)
	s.Equal(farmerID, found.FarmerID)
	s.Equal(schemeID, found.SchemeID)
	s.Equal(models.StatusSubmitted, found.Status)
}

// TestConcurrentDuplicateApplications verifies the unique constraint decides
// the race: concurrent applications to the same scheme yield exactly one row.
func (s *PostgresStoreSuite) TestConcurrentDuplicateApplications() {
	ctx := context.Background()
	farmerID, schemeID := s.seedPair()
	const goroutines = 20

	var wg sync.WaitGroup
	var successCount atomic.Int32
	var conflictCount atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			err := s.store.CreateIfAbsent(ctx, newApplication(farmerID, schemeID))
			if err == nil {
				successCount.Add(1)
			} else if errors.Is(err, sentinel.ErrConflict) {
				conflictCount.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), successCount.Load(), "exactly one create should succeed")
	s.Equal(int32(goroutines-1), conflictCount.Load(), "all others should get conflict error")
}

// TestDistinctPairsCoexist verifies the constraint only binds the pair.
func (s *PostgresStoreSuite) TestDistinctPairsCoexist() {
	ctx := context.Background()
	farmerID, schemeID := s.seedPair()
	otherFarmerID, otherSchemeID := s.seedPair()

	s.Require().NoError(s.store.CreateIfAbsent(ctx, newApplication(farmerID, schemeID)))
	s.Require().NoError(s.store.CreateIfAbsent(ctx, newApplication(farmerID, otherSchemeID)))
	s.Require().NoError(s.store.CreateIfAbsent(ctx, newApplication(otherFarmerID, schemeID)))

	listed, err := s.store.ListByFarmer(ctx, farmerID)
	s.Require().NoError(err)
	s.Len(listed, 2)
}

// TestNotFound verifies proper error handling for missing applications.
func (s *PostgresStoreSuite) TestNotFound() {
	_, err := s.store.FindByFarmerAndScheme(context.Background(), id.NewFarmerID(), id.NewSchemeID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}
