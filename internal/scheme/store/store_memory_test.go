package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"agrigate/internal/scheme/models"
	id "agrigate/pkg/domain"
	"agrigate/pkg/platform/sentinel"
)

type SchemeStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *SchemeStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestSchemeStoreSuite(t *testing.T) {
	suite.Run(t, new(SchemeStoreSuite))
}

func (s *SchemeStoreSuite) newScheme(name string, createdAt time.Time) *models.Scheme {
	return &models.Scheme{
		ID:          id.NewSchemeID(),
		Name:        name,
		Description: "A test scheme",
		Eligibility: models.Eligibility{
			States:      []string{"Punjab"},
			Crops:       []string{"Wheat"},
			MinLandSize: ptr(1),
		},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

// TestCreationAndLookups verifies the store correctly creates and retrieves schemes.
func (s *SchemeStoreSuite) TestCreationAndLookups() {
	s.Run("creates and finds scheme by ID", func() {
		scheme := s.newScheme("Crop Insurance", time.Now())
		s.Require().NoError(s.store.Create(s.ctx, scheme))

		found, err := s.store.FindByID(s.ctx, scheme.ID)
		s.Require().NoError(err)
		s.Equal(scheme.Name, found.Name)
		s.Equal(scheme.Eligibility.States, found.Eligibility.States)
		s.Require().NotNil(found.Eligibility.MinLandSize)
		s.Equal(1.0, *found.Eligibility.MinLandSize)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.FindByID(s.ctx, id.NewSchemeID())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

// TestListOrdering verifies ListAll returns a stable catalog order.
func (s *SchemeStoreSuite) TestListOrdering() {
	base := time.Now()
	older := s.newScheme("Older Scheme", base.Add(-time.Hour))
	newer := s.newScheme("Newer Scheme", base)

	s.Require().NoError(s.store.Create(s.ctx, newer))
	s.Require().NoError(s.store.Create(s.ctx, older))

	listed, err := s.store.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(listed, 2)
	s.Equal(older.ID, listed[0].ID)
	s.Equal(newer.ID, listed[1].ID)
}

// TestCount verifies Count tracks the catalog size.
func (s *SchemeStoreSuite) TestCount() {
	count, err := s.store.Count(s.ctx)
	s.Require().NoError(err)
	s.Zero(count)

	s.Require().NoError(s.store.Create(s.ctx, s.newScheme("One", time.Now())))

	count, err = s.store.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, count)
}

// TestIsolation verifies callers cannot mutate store-owned state.
func (s *SchemeStoreSuite) TestIsolation() {
	scheme := s.newScheme("Immutable Scheme", time.Now())
	s.Require().NoError(s.store.Create(s.ctx, scheme))

	found, err := s.store.FindByID(s.ctx, scheme.ID)
	s.Require().NoError(err)
	found.Eligibility.States[0] = "Mutated"
	*found.Eligibility.MinLandSize = 99

	again, err := s.store.FindByID(s.ctx, scheme.ID)
	s.Require().NoError(err)
	s.Equal("Punjab", again.Eligibility.States[0])
	s.Equal(1.0, *again.Eligibility.MinLandSize)
}

// TestSeedCatalog verifies seeding populates an empty catalog exactly once.
func (s *SchemeStoreSuite) TestSeedCatalog() {
	now := time.Now()

	seeded, err := SeedCatalog(s.ctx, s.store, now)
	s.Require().NoError(err)
	s.Require().Greater(seeded, 0)

	count, err := s.store.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(seeded, count)

	again, err := SeedCatalog(s.ctx, s.store, now)
	s.Require().NoError(err)
	s.Zero(again, "a non-empty catalog must not be reseeded")
}
