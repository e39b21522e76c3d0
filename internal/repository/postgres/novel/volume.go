package novel

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"inkstone/internal/domain"
	models "inkstone/internal/domain/models/novel"
	novelRepo "inkstone/internal/domain/repositories/novel"
	"inkstone/internal/repository/postgres"
)

// PostgresVolumeRepository implements the VolumeRepository interface
type PostgresVolumeRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewVolumeRepository creates a new volume repository
func NewVolumeRepository(config *postgres.RepositoryConfig) novelRepo.VolumeRepository {
	return &PostgresVolumeRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create creates a new volume
func (r *PostgresVolumeRepository) Create(ctx context.Context, v *models.Volume) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, manuscript_id, title, description, sort_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.tables.Volumes)

	executor := postgres.GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		v.ID,
		v.ManuscriptID,
		v.Title,
		v.Description,
		v.SortKey,
		v.CreatedAt,
		v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create volume: %w", err)
	}

	return nil
}

// GetByID retrieves a volume by ID
func (r *PostgresVolumeRepository) GetByID(ctx context.Context, id string) (*models.Volume, error) {
	query := fmt.Sprintf(`
		SELECT id, manuscript_id, title, description, sort_key, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Volumes)

	var v models.Volume
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&v.ID,
		&v.ManuscriptID,
		&v.Title,
		&v.Description,
		&v.SortKey,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("volume %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get volume: %w", err)
	}

	return &v, nil
}

// ListByManuscript lists volumes ordered by sort key ascending
func (r *PostgresVolumeRepository) ListByManuscript(ctx context.Context, manuscriptID string) ([]models.Volume, error) {
	query := fmt.Sprintf(`
		SELECT id, manuscript_id, title, description, sort_key, created_at, updated_at
		FROM %s
		WHERE manuscript_id = $1
		ORDER BY sort_key ASC
	`, r.tables.Volumes)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, manuscriptID)
	if err != nil {
		return nil, fmt.Errorf("list volumes: %w", err)
	}
	defer rows.Close()

	var volumes []models.Volume
	for rows.Next() {
		var v models.Volume
		err := rows.Scan(
			&v.ID,
			&v.ManuscriptID,
			&v.Title,
			&v.Description,
			&v.SortKey,
			&v.CreatedAt,
			&v.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan volume: %w", err)
		}
		volumes = append(volumes, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate volumes: %w", err)
	}

	if volumes == nil {
		volumes = []models.Volume{}
	}

	return volumes, nil
}

// MaxSortKey returns the largest sibling sort key, or nil with no volumes
func (r *PostgresVolumeRepository) MaxSortKey(ctx context.Context, manuscriptID string) (*decimal.Decimal, error) {
	query := fmt.Sprintf(`
		SELECT MAX(sort_key)
		FROM %s
		WHERE manuscript_id = $1
	`, r.tables.Volumes)

	var max *decimal.Decimal
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, manuscriptID).Scan(&max); err != nil {
		return nil, fmt.Errorf("max volume sort key: %w", err)
	}

	return max, nil
}

// Update persists title and description
func (r *PostgresVolumeRepository) Update(ctx context.Context, v *models.Volume) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, description = $2, updated_at = $3
		WHERE id = $4
	`, r.tables.Volumes)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, v.Title, v.Description, v.UpdatedAt, v.ID)
	if err != nil {
		return fmt.Errorf("update volume: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("volume %s: %w", v.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete hard-deletes the volume row
func (r *PostgresVolumeRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Volumes)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete volume: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("volume %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
