package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"agrigate/internal/scheme/models"
	id "agrigate/pkg/domain"
	"agrigate/pkg/platform/sentinel"
)

// PostgresStore persists schemes in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed scheme store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Create inserts a scheme into the catalog.
func (s *PostgresStore) Create(ctx context.Context, scheme *models.Scheme) error {
	if scheme == nil {
		return fmt.Errorf("scheme is required")
	}
	query := `
		INSERT INTO schemes (
			id, name, description, states, crops,
			min_income, max_income, min_land_size, category, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(scheme.ID),
		scheme.Name,
		scheme.Description,
		pq.Array(scheme.Eligibility.States),
		pq.Array(scheme.Eligibility.Crops),
		scheme.Eligibility.MinIncome,
		scheme.Eligibility.MaxIncome,
		scheme.Eligibility.MinLandSize,
		scheme.Eligibility.Category,
		scheme.CreatedAt,
		scheme.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert scheme: %w", err)
	}
	return nil
}

const selectScheme = `
	SELECT id, name, description, states, crops,
	       min_income, max_income, min_land_size, category, created_at, updated_at
	FROM schemes
`

// ListAll returns every scheme in the catalog, ordered by creation time and
// name for a stable listing.
func (s *PostgresStore) ListAll(ctx context.Context) ([]*models.Scheme, error) {
	rows, err := s.db.QueryContext(ctx, selectScheme+` ORDER BY created_at, name`)
	if err != nil {
		return nil, fmt.Errorf("query schemes: %w", err)
	}
	defer rows.Close()

	var schemes []*models.Scheme
	for rows.Next() {
		scheme, err := scanScheme(rows)
		if err != nil {
			return nil, err
		}
		schemes = append(schemes, scheme)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schemes: %w", err)
	}
	return schemes, nil
}

// FindByID returns the scheme with the given ID or sentinel.ErrNotFound.
func (s *PostgresStore) FindByID(ctx context.Context, schemeID id.SchemeID) (*models.Scheme, error) {
	rows, err := s.db.QueryContext(ctx, selectScheme+` WHERE id = $1`, uuid.UUID(schemeID))
	if err != nil {
		return nil, fmt.Errorf("query scheme: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query scheme: %w", err)
		}
		return nil, sentinel.ErrNotFound
	}
	return scanScheme(rows)
}

// Count returns the number of schemes in the catalog.
func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM schemes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count schemes: %w", err)
	}
	return count, nil
}

func scanScheme(rows *sql.Rows) (*models.Scheme, error) {
	var (
		scheme   models.Scheme
		schemeID uuid.UUID
		states   pq.StringArray
		crops    pq.StringArray
		minInc   sql.NullFloat64
		maxInc   sql.NullFloat64
		minLand  sql.NullFloat64
	)
	err := rows.Scan(
		&schemeID,
		&scheme.Name,
		&scheme.Description,
		&states,
		&crops,
		&minInc,
		&maxInc,
		&minLand,
		&scheme.Eligibility.Category,
		&scheme.CreatedAt,
		&scheme.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan scheme: %w", err)
	}
	scheme.ID = id.SchemeID(schemeID)
	scheme.Eligibility.States = []string(states)
	scheme.Eligibility.Crops = []string(crops)
	scheme.Eligibility.MinIncome = nullFloat(minInc)
	scheme.Eligibility.MaxIncome = nullFloat(maxInc)
	scheme.Eligibility.MinLandSize = nullFloat(minLand)
	return &scheme, nil
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}
