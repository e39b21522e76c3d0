package novel

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"inkstone/internal/domain"
	models "inkstone/internal/domain/models/novel"
	novelRepo "inkstone/internal/domain/repositories/novel"
	"inkstone/internal/repository/postgres"
)

// PostgresLoreRepository implements category-scoped lore lookups. Each
// category reads its own table; there is no polymorphic join.
type PostgresLoreRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewLoreRepository creates a new lore repository
func NewLoreRepository(config *postgres.RepositoryConfig) novelRepo.LoreRepository {
	return &PostgresLoreRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// GetByIDs resolves ids within one category. Ids that no longer exist are
// simply absent from the result; lore references are weak by design.
func (r *PostgresLoreRepository) GetByIDs(ctx context.Context, category models.LoreCategory, ids []string) ([]models.LoreEntity, error) {
	if len(ids) == 0 {
		return []models.LoreEntity{}, nil
	}

	table := r.tables.LoreTable(string(category))
	if table == "" {
		return nil, fmt.Errorf("%w: unknown lore category %q", domain.ErrValidation, category)
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, name, description, created_at, updated_at
		FROM %s
		WHERE id = ANY($1)
	`, table)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get %s settings: %w", category, err)
	}
	defer rows.Close()

	// Preserve the order of the requested id list
	byID := make(map[string]models.LoreEntity, len(ids))
	for rows.Next() {
		var e models.LoreEntity
		if err := rows.Scan(&e.ID, &e.UserID, &e.Name, &e.Description, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan %s setting: %w", category, err)
		}
		e.Category = category
		byID[e.ID] = e
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s settings: %w", category, err)
	}

	entities := make([]models.LoreEntity, 0, len(byID))
	for _, id := range ids {
		if e, ok := byID[id]; ok {
			entities = append(entities, e)
		}
	}

	return entities, nil
}

// PostgresProjectRepository implements the ProjectRepository interface
type PostgresProjectRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(config *postgres.RepositoryConfig) novelRepo.ProjectRepository {
	return &PostgresProjectRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// GetByID retrieves a project by ID
func (r *PostgresProjectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, name, character_ids, system_ids, world_ids, misc_ids,
			created_at, updated_at, deleted_at
		FROM %s
		WHERE id = $1 AND deleted_at IS NULL
	`, r.tables.Projects)

	var p models.Project
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.CharacterIDs,
		&p.SystemIDs,
		&p.WorldIDs,
		&p.MiscIDs,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.DeletedAt,
	)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get project: %w", err)
	}

	return &p, nil
}
