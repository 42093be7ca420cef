package service

import (
	"context"
	"errors"

	farmermodels "agrigate/internal/farmer/models"
	"agrigate/internal/scheme/eligibility"
	schememetrics "agrigate/internal/scheme/metrics"
	"agrigate/internal/scheme/models"
	id "agrigate/pkg/domain"
	dErrors "agrigate/pkg/domain-errors"
	"agrigate/pkg/platform/sentinel"
)

// SchemeStore abstracts scheme persistence. Both the in-memory and the
// PostgreSQL store satisfy it.
type SchemeStore interface {
	ListAll(ctx context.Context) ([]*models.Scheme, error)
	FindByID(ctx context.Context, schemeID id.SchemeID) (*models.Scheme, error)
}

// FarmerLookup resolves the farmer profile eligibility is matched against.
type FarmerLookup interface {
	FindByID(ctx context.Context, farmerID id.FarmerID) (*farmermodels.Farmer, error)
}

// Option configures optional service dependencies.
type Option func(*serviceConfig)

type serviceConfig struct {
	metrics *schememetrics.Metrics
}

// WithMetrics attaches prometheus metrics to the service.
func WithMetrics(m *schememetrics.Metrics) Option {
	return func(cfg *serviceConfig) { cfg.metrics = m }
}

// Service serves the scheme catalog and per-farmer eligibility listings.
type Service struct {
	schemes SchemeStore
	farmers FarmerLookup
	metrics *schememetrics.Metrics
}

func NewService(schemes SchemeStore, farmers FarmerLookup, opts ...Option) *Service {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Service{
		schemes: schemes,
		farmers: farmers,
		metrics: cfg.metrics,
	}
}

// ListAll returns the full scheme catalog in stable order.
func (s *Service) ListAll(ctx context.Context) ([]*models.Scheme, error) {
	schemes, err := s.schemes.ListAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list schemes")
	}
	return schemes, nil
}

// ListEligibleFor returns the schemes the farmer currently qualifies for,
// preserving catalog order. The listing is advisory: applying re-evaluates
// eligibility against the then-current profile.
func (s *Service) ListEligibleFor(ctx context.Context, farmerID id.FarmerID) ([]*models.Scheme, error) {
	farmer, err := s.farmers.FindByID(ctx, farmerID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Farmer not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up farmer")
	}

	schemes, err := s.schemes.ListAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list schemes")
	}

	eligible := eligibility.Filter(farmer, schemes)
	s.observeEligibility(len(eligible))
	return eligible, nil
}

// GetScheme returns the scheme with the given ID.
func (s *Service) GetScheme(ctx context.Context, schemeID id.SchemeID) (*models.Scheme, error) {
	scheme, err := s.schemes.FindByID(ctx, schemeID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Scheme not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up scheme")
	}
	return scheme, nil
}

func (s *Service) observeEligibility(matched int) {
	if s.metrics != nil {
		s.metrics.ObserveEligibility(matched)
	}
}
