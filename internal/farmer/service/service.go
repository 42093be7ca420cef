package service

import (
	"context"
	"errors"
	"strings"
	"time"

	farmermetrics "agrigate/internal/farmer/metrics"
	"agrigate/internal/farmer/models"
	"agrigate/internal/farmer/secrets"
	id "agrigate/pkg/domain"
	dErrors "agrigate/pkg/domain-errors"
	"agrigate/pkg/platform/sentinel"
	"agrigate/pkg/requestcontext"
)

// FarmerStore abstracts farmer persistence. Both the in-memory and the
// PostgreSQL store satisfy it.
type FarmerStore interface {
	CreateIfEmailAvailable(ctx context.Context, farmer *models.Farmer) error
	FindByID(ctx context.Context, farmerID id.FarmerID) (*models.Farmer, error)
	FindByEmail(ctx context.Context, email string) (*models.Farmer, error)
}

// TokenIssuer signs identity tokens for authenticated farmers.
type TokenIssuer interface {
	GenerateToken(farmerID id.FarmerID, expiresIn time.Duration) (string, error)
}

// Option configures optional service dependencies.
type Option func(*serviceConfig)

type serviceConfig struct {
	metrics    *farmermetrics.Metrics
	bcryptCost int
}

// WithMetrics attaches prometheus metrics to the service.
func WithMetrics(m *farmermetrics.Metrics) Option {
	return func(cfg *serviceConfig) { cfg.metrics = m }
}

// WithBcryptCost overrides the hashing cost (tests use bcrypt.MinCost).
func WithBcryptCost(cost int) Option {
	return func(cfg *serviceConfig) { cfg.bcryptCost = cost }
}

// Service orchestrates farmer registration and authentication.
type Service struct {
	farmers    FarmerStore
	tokens     TokenIssuer
	tokenTTL   time.Duration
	bcryptCost int
	metrics    *farmermetrics.Metrics
}

func NewService(farmers FarmerStore, tokens TokenIssuer, tokenTTL time.Duration, opts ...Option) *Service {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Service{
		farmers:    farmers,
		tokens:     tokens,
		tokenTTL:   tokenTTL,
		bcryptCost: cfg.bcryptCost,
		metrics:    cfg.metrics,
	}
}

// RegisterParams carries validated registration input. Field validation
// (required fields, email syntax) happens at the handler boundary; the
// service enforces business rules only.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
	Profile  models.Profile
}

// Register hashes the password and creates the farmer record. The plaintext
// password is neither persisted nor logged. Duplicate emails map to a
// conflict error with the same message the original API used.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*models.Farmer, error) {
	hash, err := secrets.Hash(params.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	farmer, err := models.NewFarmer(
		id.NewFarmerID(),
		strings.TrimSpace(params.Name),
		strings.TrimSpace(params.Email),
		hash,
		params.Profile,
		requestcontext.Now(ctx),
	)
	if err != nil {
		return nil, err
	}

	if err := s.farmers.CreateIfEmailAvailable(ctx, farmer); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "Email already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create farmer")
	}

	s.incrementRegistrations()
	return farmer, nil
}

// Login verifies credentials and issues a signed token valid for the
// configured TTL. Unknown email and wrong password both return the same
// generic invalid-credentials error so callers cannot enumerate accounts.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	start := time.Now()
	defer s.observeLogin(start)

	farmer, err := s.farmers.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.incrementLoginFailures()
			return "", dErrors.New(dErrors.CodeInvalidCredentials, "Invalid credentials")
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up farmer")
	}

	if err := secrets.Verify(password, farmer.PasswordHash); err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvalidCredentials) {
			s.incrementLoginFailures()
			return "", err
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to verify password")
	}

	token, err := s.tokens.GenerateToken(farmer.ID, s.tokenTTL)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}
	return token, nil
}

// GetFarmer returns the farmer for an authenticated identity.
func (s *Service) GetFarmer(ctx context.Context, farmerID id.FarmerID) (*models.Farmer, error) {
	farmer, err := s.farmers.FindByID(ctx, farmerID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Farmer not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up farmer")
	}
	return farmer, nil
}

func (s *Service) incrementRegistrations() {
	if s.metrics != nil {
		s.metrics.IncrementRegistrations()
	}
}

func (s *Service) incrementLoginFailures() {
	if s.metrics != nil {
		s.metrics.IncrementLoginFailures()
	}
}

func (s *Service) observeLogin(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveLogin(start)
	}
}
