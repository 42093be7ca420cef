//go:build integration

package store_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"agrigate/internal/farmer/models"
	"agrigate/internal/farmer/store"
	id "agrigate/pkg/domain"
	"agrigate/pkg/platform/sentinel"
	"agrigate/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
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
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "applications", "farmers")
	s.Require().NoError(err)
}

func newTestFarmer(email string) *models.Farmer {
	now := time.Now()
	return &models.Farmer{
		ID:           id.NewFarmerID(),
		Name:         "Test Farmer",
		Email:        email,
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
		Location:     models.Location{State: "Punjab", District: "Ludhiana"},
		Crops:        []string{"Wheat", "Rice"},
		AnnualIncome: 50000,
		LandSize:     3,
		Category:     "smallholder",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// TestRoundTrip verifies all columns survive an insert and read back.
func (s *PostgresStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	farmer := newTestFarmer("roundtrip-" + uuid.NewString() + "@example.com")

	s.Require().NoError(s.store.CreateIfEmailAvailable(ctx, farmer))

	found, err := s.store.FindByID(ctx, farmer.ID)
	s.Require().NoError(err)
	s.Equal(farmer.Email, found.Email)
	s.Equal(farmer.PasswordHash, found.PasswordHash)
	s.Equal(farmer.Location, found.Location)
	s.Equal(farmer.Crops, found.Crops)
	s.Equal(farmer.AnnualIncome, found.AnnualIncome)
	s.Equal(farmer.LandSize, found.LandSize)
	s.Equal(farmer.Category, found.Category)
}

// TestConcurrentDuplicateEmail verifies that concurrent registrations with the
// same email result in exactly one success.
func (s *PostgresStoreSuite) TestConcurrentDuplicateEmail() {
	ctx := context.Background()
	email := "concurrent-" + uuid.NewString() + "@example.com"
	const goroutines = 20

	var wg sync.WaitGroup
	var successCount atomic.Int32
	var conflictCount atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			err := s.store.CreateIfEmailAvailable(ctx, newTestFarmer(email))
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

// TestCaseInsensitiveEmail verifies the lower(email) unique index and lookup.
func (s *PostgresStoreSuite) TestCaseInsensitiveEmail() {
	ctx := context.Background()
	base := "Case-" + uuid.NewString() + "@Example.com"

	s.Require().NoError(s.store.CreateIfEmailAvailable(ctx, newTestFarmer(base)))

	err := s.store.CreateIfEmailAvailable(ctx, newTestFarmer(strings.ToLower(base)))
	s.ErrorIs(err, sentinel.ErrConflict)

	found, err := s.store.FindByEmail(ctx, strings.ToUpper(base))
	s.Require().NoError(err)
	s.Equal(base, found.Email)
}

// TestNotFound verifies proper error handling for missing farmers.
func (s *PostgresStoreSuite) TestNotFound() {
	ctx := context.Background()

	_, err := s.store.FindByID(ctx, id.NewFarmerID())
	s.ErrorIs(err, sentinel.ErrNotFound)

	_, err = s.store.FindByEmail(ctx, "ghost-"+uuid.NewString()+"@example.com")
	s.ErrorIs(err, sentinel.ErrNotFound)
}
