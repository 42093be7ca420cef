package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"agrigate/internal/application/models"
	"agrigate/internal/platform/postgres"
	id "agrigate/pkg/domain"
	"agrigate/pkg/platform/sentinel"
)

// PostgresStore persists applications in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed application store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// CreateIfAbsent inserts the application. The one-application-per-scheme rule
// is enforced by the applications_farmer_scheme_unique constraint; a
// violation maps to sentinel.ErrConflict, so concurrent duplicates lose the
// race at the database rather than slipping past an advisory read.
func (s *PostgresStore) CreateIfAbsent(ctx context.Context, application *models.Application) error {
	if application == nil {
		return fmt.Errorf("application is required")
	}
	query := `
		INSERT INTO applications (id, farmer_id, scheme_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(application.ID),
		uuid.UUID(application.FarmerID),
		uuid.UUID(application.SchemeID),
		string(application.Status),
		application.CreatedAt,
		application.UpdatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err, "applications_farmer_scheme_unique") {
			return fmt.Errorf("farmer %s scheme %s: %w",
				application.FarmerID, application.SchemeID, sentinel.ErrConflict)
		}
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

const selectApplication = `
	SELECT id, farmer_id, scheme_id, status, created_at, updated_at
	FROM applications
`

// FindByFarmerAndScheme returns the farmer's application to the scheme or
// sentinel.ErrNotFound.
func (s *PostgresStore) FindByFarmerAndScheme(ctx context.Context, farmerID id.FarmerID, schemeID id.SchemeID) (*models.Application, error) {
	row := s.db.QueryRowContext(ctx,
		selectApplication+` WHERE farmer_id = $1 AND scheme_id = $2`,
		uuid.UUID(farmerID), uuid.UUID(schemeID))
	return scanApplication(row)
}

// ListByFarmer returns the farmer's applications ordered by submission time.
func (s *PostgresStore) ListByFarmer(ctx context.Context, farmerID id.FarmerID) ([]*models.Application, error) {
	rows, err := s.db.QueryContext(ctx,
		selectApplication+` WHERE farmer_id = $1 ORDER BY created_at`,
		uuid.UUID(farmerID))
	if err != nil {
		return nil, fmt.Errorf("query applications: %w", err)
	}
	defer rows.Close()

	var applications []*models.Application
	for rows.Next() {
		app, err := scanApplicationRows(rows)
		if err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applications: %w", err)
	}
	return applications, nil
}

func scanApplication(row *sql.Row) (*models.Application, error) {
	var (
		app      models.Application
		appID    uuid.UUID
		farmerID uuid.UUID
		schemeID uuid.UUID
		status   string
	)
	err := row.Scan(&appID, &farmerID, &schemeID, &status, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan application: %w", err)
	}
	app.ID = id.ApplicationID(appID)
	app.FarmerID = id.FarmerID(farmerID)
	app.SchemeID = id.SchemeID(schemeID)
	app.Status = models.Status(status)
	return &app, nil
}

func scanApplicationRows(rows *sql.Rows) (*models.Application, error) {
	var (
		app      models.Application
		appID    uuid.UUID
		farmerID uuid.UUID
		schemeID uuid.UUID
		status   string
	)
	err := rows.Scan(&appID, &farmerID, &schemeID, &status, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("scan application: %w", err)
	}
	app.ID = id.ApplicationID(appID)
	app.FarmerID = id.FarmerID(farmerID)
	app.SchemeID = id.SchemeID(schemeID)
	app.Status = models.Status(status)
	return &app, nil
}
