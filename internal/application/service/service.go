package service

import (
	"context"
	"errors"

	applicationmetrics "agrigate/internal/application/metrics"
	"agrigate/internal/application/models"
	farmermodels "agrigate/internal/farmer/models"
	"agrigate/internal/scheme/eligibility"
	schememodels "agrigate/internal/scheme/models"
	id "agrigate/pkg/domain"
	dErrors "agrigate/pkg/domain-errors"
	"agrigate/pkg/platform/sentinel"
	"agrigate/pkg/requestcontext"
)

// ApplicationStore abstracts application persistence. Both the in-memory and
// the PostgreSQL store satisfy it.
type ApplicationStore interface {
	CreateIfAbsent(ctx context.Context, application *models.Application) error
	FindByFarmerAndScheme(ctx context.Context, farmerID id.FarmerID, schemeID id.SchemeID) (*models.Application, error)
	ListByFarmer(ctx context.Context, farmerID id.FarmerID) ([]*models.Application, error)
}

// FarmerLookup resolves the applicant's profile.
type FarmerLookup interface {
	FindByID(ctx context.Context, farmerID id.FarmerID) (*farmermodels.Farmer, error)
}

// SchemeLookup resolves the scheme being applied to.
type SchemeLookup interface {
	FindByID(ctx context.Context, schemeID id.SchemeID) (*schememodels.Scheme, error)
}

// Option configures optional service dependencies.
type Option func(*serviceConfig)

type serviceConfig struct {
	metrics *applicationmetrics.Metrics
}

// WithMetrics attaches prometheus metrics to the service.
func WithMetrics(m *applicationmetrics.Metrics) Option {
	return func(cfg *serviceConfig) { cfg.metrics = m }
}

// Service orchestrates the application workflow: both parties must exist,
// the farmer must be eligible, and the farmer must not have applied before.
type Service struct {
	applications ApplicationStore
	farmers      FarmerLookup
	schemes      SchemeLookup
	metrics      *applicationmetrics.Metrics
}

func NewService(applications ApplicationStore, farmers FarmerLookup, schemes SchemeLookup, opts ...Option) *Service {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Service{
		applications: applications,
		farmers:      farmers,
		schemes:      schemes,
		metrics:      cfg.metrics,
	}
}

// Apply submits an application for the authenticated farmer. Preconditions
// are checked in a fixed order so a request failing several of them always
// gets the same answer: farmer exists, scheme exists, farmer is eligible,
// farmer has not applied before. The final insert re-checks the duplicate
// rule atomically, so two concurrent first applications produce exactly one
// record and one conflict.
func (s *Service) Apply(ctx context.Context, farmerID id.FarmerID, schemeID id.SchemeID) (*models.Application, error) {
	farmer, err := s.farmers.FindByID(ctx, farmerID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.incrementRejections("not_found")
			return nil, dErrors.New(dErrors.CodeNotFound, "Farmer not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up farmer")
	}

	scheme, err := s.schemes.FindByID(ctx, schemeID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.incrementRejections("not_found")
			return nil, dErrors.New(dErrors.CodeNotFound, "Scheme not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up scheme")
	}

	if !eligibility.IsEligible(farmer, scheme) {
		s.incrementRejections("ineligible")
		return nil, dErrors.New(dErrors.CodeIneligible, "Not eligible for this scheme")
	}

	// Advisory read for the common repeat-submission case; the insert below
	// still decides races.
	if _, err := s.applications.FindByFarmerAndScheme(ctx, farmerID, schemeID); err == nil {
		s.incrementRejections("duplicate")
		return nil, dErrors.New(dErrors.CodeConflict, "Already applied")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up application")
	}

	application, err := models.NewApplication(id.NewApplicationID(), farmerID, schemeID, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	if err := s.applications.CreateIfAbsent(ctx, application); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			s.incrementRejections("duplicate")
			return nil, dErrors.New(dErrors.CodeConflict, "Already applied")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create application")
	}

	s.incrementSubmissions()
	return application, nil
}

// ListForFarmer returns the farmer's applications ordered by submission time.
func (s *Service) ListForFarmer(ctx context.Context, farmerID id.FarmerID) ([]*models.Application, error) {
	applications, err := s.applications.ListByFarmer(ctx, farmerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list applications")
	}
	return applications, nil
}

func (s *Service) incrementSubmissions() {
	if s.metrics != nil {
		s.metrics.IncrementSubmissions()
	}
}

func (s *Service) incrementRejections(reason string) {
	if s.metrics != nil {
		s.metrics.IncrementRejections(reason)
	}
}
