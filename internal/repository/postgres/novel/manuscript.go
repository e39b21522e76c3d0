package novel

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"inkstone/internal/domain"
	models "inkstone/internal/domain/models/novel"
	novelRepo "inkstone/internal/domain/repositories/novel"
	"inkstone/internal/repository/postgres"
)

// PostgresManuscriptRepository implements the ManuscriptRepository interface
type PostgresManuscriptRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewManuscriptRepository creates a new manuscript repository
func NewManuscriptRepository(config *postgres.RepositoryConfig) novelRepo.ManuscriptRepository {
	return &PostgresManuscriptRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

const manuscriptColumns = `id, user_id, name, outline_id, project_id, status,
		character_ids, system_ids, world_ids, misc_ids,
		total_words, published_words, target_words,
		last_edited_chapter_id, last_edited_at, created_at, updated_at, deleted_at`

func (r *PostgresManuscriptRepository) scanManuscript(row interface{ Scan(...interface{}) error }) (*models.Manuscript, error) {
	var m models.Manuscript
	err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.Name,
		&m.OutlineID,
		&m.ProjectID,
		&m.Status,
		&m.CharacterIDs,
		&m.SystemIDs,
		&m.WorldIDs,
		&m.MiscIDs,
		&m.TotalWords,
		&m.PublishedWords,
		&m.TargetWords,
		&m.LastEditedChapterID,
		&m.LastEditedAt,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create creates a new manuscript
func (r *PostgresManuscriptRepository) Create(ctx context.Context, m *models.Manuscript) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, name, outline_id, project_id, status,
			character_ids, system_ids, world_ids, misc_ids,
			total_words, published_words, target_words, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, r.tables.Manuscripts)

	executor := postgres.GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		m.ID,
		m.UserID,
		m.Name,
		m.OutlineID,
		m.ProjectID,
		m.Status,
		m.CharacterIDs,
		m.SystemIDs,
		m.WorldIDs,
		m.MiscIDs,
		m.TotalWords,
		m.PublishedWords,
		m.TargetWords,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create manuscript: %w", err)
	}

	return nil
}

// GetByID retrieves a manuscript by ID. Ownership is the caller's check.
func (r *PostgresManuscriptRepository) GetByID(ctx context.Context, id string) (*models.Manuscript, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND deleted_at IS NULL
	`, manuscriptColumns, r.tables.Manuscripts)

	executor := postgres.GetExecutor(ctx, r.pool)
	m, err := r.scanManuscript(executor.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("manuscript %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get manuscript: %w", err)
	}

	return m, nil
}

// List retrieves all manuscripts for a user, ordered by updated_at DESC
func (r *PostgresManuscriptRepository) List(ctx context.Context, userID string) ([]models.Manuscript, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY updated_at DESC
	`, manuscriptColumns, r.tables.Manuscripts)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list manuscripts: %w", err)
	}
	defer rows.Close()

	var manuscripts []models.Manuscript
	for rows.Next() {
		m, err := r.scanManuscript(rows)
		if err != nil {
			return nil, fmt.Errorf("scan manuscript: %w", err)
		}
		manuscripts = append(manuscripts, *m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate manuscripts: %w", err)
	}

	// Return empty slice instead of nil
	if manuscripts == nil {
		manuscripts = []models.Manuscript{}
	}

	return manuscripts, nil
}

// Update persists mutable manuscript fields
func (r *PostgresManuscriptRepository) Update(ctx context.Context, m *models.Manuscript) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, status = $2, project_id = $3, target_words = $4,
			character_ids = $5, system_ids = $6, world_ids = $7, misc_ids = $8,
			updated_at = $9
		WHERE id = $10 AND deleted_at IS NULL
	`, r.tables.Manuscripts)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		m.Name,
		m.Status,
		m.ProjectID,
		m.TargetWords,
		m.CharacterIDs,
		m.SystemIDs,
		m.WorldIDs,
		m.MiscIDs,
		m.UpdatedAt,
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("update manuscript: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("manuscript %s: %w", m.ID, domain.ErrNotFound)
	}

	return nil
}

// UpdateWordCounts persists the recomputed aggregate totals
func (r *PostgresManuscriptRepository) UpdateWordCounts(ctx context.Context, id string, totalWords, publishedWords int) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET total_words = $1, published_words = $2, updated_at = NOW()
		WHERE id = $3 AND deleted_at IS NULL
	`, r.tables.Manuscripts)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, totalWords, publishedWords, id)
	if err != nil {
		return fmt.Errorf("update manuscript word counts: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("manuscript %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// StampLastEdited records the chapter and time of the latest content save
func (r *PostgresManuscriptRepository) StampLastEdited(ctx context.Context, id, chapterID string, at time.Time) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET last_edited_chapter_id = $1, last_edited_at = $2, updated_at = $2
		WHERE id = $3 AND deleted_at IS NULL
	`, r.tables.Manuscripts)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, chapterID, at, id)
	if err != nil {
		return fmt.Errorf("stamp manuscript last edited: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("manuscript %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Delete soft-deletes a manuscript by setting deleted_at
func (r *PostgresManuscriptRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`, r.tables.Manuscripts)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete manuscript: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("manuscript %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
