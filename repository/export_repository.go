package repository

import (
	"context"
	"errors"

	"relviz-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when an export record does not exist
var ErrNotFound = errors.New("export not found")

// ExportRepository stores metadata of archived workbook exports
type ExportRepository interface {
	Create(ctx context.Context, export *models.Export) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Export, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Export, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PostgresExportRepository handles database operations for exports
type PostgresExportRepository struct {
	db *pgxpool.Pool
}

// NewPostgresExportRepository creates a new export repository
func NewPostgresExportRepository(db *pgxpool.Pool) *PostgresExportRepository {
	return &PostgresExportRepository{db: db}
}

const exportColumns = `id, filename, mime_type, size, storage_path, relation_count,
			right_rows, duty_rows, goal_rows, object_rows, subject_rows, created_at`

// Create inserts a new export record
func (r *PostgresExportRepository) Create(ctx context.Context, export *models.Export) error {
	query := `
		INSERT INTO exports (
			id, filename, mime_type, size, storage_path, relation_count,
			right_rows, duty_rows, goal_rows, object_rows, subject_rows
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at`

	return r.db.QueryRow(
		ctx, query,
		export.ID,
		export.Filename,
		export.MimeType,
		export.Size,
		export.StoragePath,
		export.RelationCount,
		export.RightRows,
		export.DutyRows,
		export.GoalRows,
		export.ObjectRows,
		export.SubjectRows,
	).Scan(&export.CreatedAt)
}

// GetByID retrieves an export by ID
func (r *PostgresExportRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Export, error) {
	query := `SELECT ` + exportColumns + ` FROM exports WHERE id = $1`

	export, err := scanExport(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return export, nil
}

// ListRecent retrieves the newest exports first
func (r *PostgresExportRepository) ListRecent(ctx context.Context, limit int) ([]*models.Export, error) {
	query := `SELECT ` + exportColumns + ` FROM exports ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exports := []*models.Export{}
	for rows.Next() {
		export, err := scanExport(rows)
		if err != nil {
			return nil, err
		}
		exports = append(exports, export)
	}

	return exports, rows.Err()
}

// Delete deletes an export record
func (r *PostgresExportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM exports WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanExport(row pgx.Row) (*models.Export, error) {
	export := &models.Export{}
	err := row.Scan(
		&export.ID,
		&export.Filename,
		&export.MimeType,
		&export.Size,
		&export.StoragePath,
		&export.RelationCount,
		&export.RightRows,
		&export.DutyRows,
		&export.GoalRows,
		&export.ObjectRows,
		&export.SubjectRows,
		&export.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return export, nil
}
