package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"agrigate/internal/farmer/models"
	"agrigate/internal/platform/postgres"
	id "agrigate/pkg/domain"
	"agrigate/pkg/platform/sentinel"
)

// PostgresStore persists farmers in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed farmer store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// CreateIfEmailAvailable inserts the farmer. Email uniqueness is enforced by
// the farmers_email_unique index; a violation maps to sentinel.ErrConflict.
func (s *PostgresStore) CreateIfEmailAvailable(ctx context.Context, farmer *models.Farmer) error {
	if farmer == nil {
		return fmt.Errorf("farmer is required")
	}
	query := `
		INSERT INTO farmers (
			id, name, email, password_hash, state, district,
			crops, annual_income, land_size, category, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(farmer.ID),
		farmer.Name,
		farmer.Email,
		farmer.PasswordHash,
		farmer.Location.State,
		farmer.Location.District,
		pq.Array(farmer.Crops),
		farmer.AnnualIncome,
		farmer.LandSize,
		farmer.Category,
		farmer.CreatedAt,
		farmer.UpdatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err, "farmers_email_unique") {
			return fmt.Errorf("email %q: %w", farmer.Email, sentinel.ErrConflict)
		}
		return fmt.Errorf("insert farmer: %w", err)
	}
	return nil
}

// FindByID returns the farmer with the given ID or sentinel.ErrNotFound.
func (s *PostgresStore) FindByID(ctx context.Context, farmerID id.FarmerID) (*models.Farmer, error) {
	row := s.db.QueryRowContext(ctx, selectFarmer+` WHERE id = $1`, uuid.UUID(farmerID))
	return scanFarmer(row)
}

// FindByEmail returns the farmer registered under the given email, including
// the password hash. Lookup is case-insensitive.
func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*models.Farmer, error) {
	row := s.db.QueryRowContext(ctx, selectFarmer+` WHERE lower(email) = lower($1)`, email)
	return scanFarmer(row)
}

const selectFarmer = `
	SELECT id, name, email, password_hash, state, district,
	       crops, annual_income, land_size, category, created_at, updated_at
	FROM farmers
`

func scanFarmer(row *sql.Row) (*models.Farmer, error) {
	var (
		farmer   models.Farmer
		farmerID uuid.UUID
		crops    pq.StringArray
	)
	err := row.Scan(
		&farmerID,
		&farmer.Name,
		&farmer.Email,
		&farmer.PasswordHash,
		&farmer.Location.State,
		&farmer.Location.District,
		&crops,
		&farmer.AnnualIncome,
		&farmer.LandSize,
		&farmer.Category,
		&farmer.CreatedAt,
		&farmer.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan farmer: %w", err)
	}
	farmer.ID = id.FarmerID(farmerID)
	farmer.Crops = []string(crops)
	return &farmer, nil
}
