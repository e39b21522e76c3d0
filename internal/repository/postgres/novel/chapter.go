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

// PostgresChapterRepository implements the ChapterRepository interface.
//
// The ParentRef sum type maps to two nullable columns (manuscript_id,
// volume_id) guarded by a CHECK constraint; rows violating the XOR are
// rejected again on scan as defense in depth against hand-edited data.
type PostgresChapterRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewChapterRepository creates a new chapter repository
func NewChapterRepository(config *postgres.RepositoryConfig) novelRepo.ChapterRepository {
	return &PostgresChapterRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

const chapterColumns = `id, manuscript_id, volume_id, title, status, word_count, sort_key,
		published_at, created_at, updated_at`

func parentColumns(parent models.ParentRef) (manuscriptID, volumeID *string) {
	switch parent.Kind {
	case models.ParentManuscript:
		id := parent.ID
		return &id, nil
	case models.ParentVolume:
		id := parent.ID
		return nil, &id
	}
	return nil, nil
}

func parentFromColumns(manuscriptID, volumeID *string) (models.ParentRef, error) {
	switch {
	case manuscriptID != nil && volumeID == nil:
		return models.DirectParent(*manuscriptID), nil
	case manuscriptID == nil && volumeID != nil:
		return models.VolumeParent(*volumeID), nil
	}
	return models.ParentRef{}, fmt.Errorf("chapter must have exactly one parent")
}

func scanChapter(row interface{ Scan(...interface{}) error }) (*models.Chapter, error) {
	var (
		c            models.Chapter
		manuscriptID *string
		volumeID     *string
	)
	err := row.Scan(
		&c.ID,
		&manuscriptID,
		&volumeID,
		&c.Title,
		&c.Status,
		&c.WordCount,
		&c.SortKey,
		&c.PublishedAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	parent, err := parentFromColumns(manuscriptID, volumeID)
	if err != nil {
		return nil, err
	}
	c.Parent = parent

	return &c, nil
}

// Create creates a new chapter
func (r *PostgresChapterRepository) Create(ctx context.Context, c *models.Chapter) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	manuscriptID, volumeID := parentColumns(c.Parent)
	if manuscriptID == nil && volumeID == nil {
		return fmt.Errorf("%w: chapter must have exactly one parent", domain.ErrValidation)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, manuscript_id, volume_id, title, status, word_count, sort_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, r.tables.Chapters)

	executor := postgres.GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		c.ID,
		manuscriptID,
		volumeID,
		c.Title,
		c.Status,
		c.WordCount,
		c.SortKey,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create chapter: %w", err)
	}

	return nil
}

// GetByID retrieves a chapter by ID
func (r *PostgresChapterRepository) GetByID(ctx context.Context, id string) (*models.Chapter, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, chapterColumns, r.tables.Chapters)

	executor := postgres.GetExecutor(ctx, r.pool)
	c, err := scanChapter(executor.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("chapter %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get chapter: %w", err)
	}

	return c, nil
}

func (r *PostgresChapterRepository) listWhere(ctx context.Context, where string, args ...interface{}) ([]models.Chapter, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s
		ORDER BY sort_key ASC
	`, chapterColumns, r.tables.Chapters, where)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	defer rows.Close()

	var chapters []models.Chapter
	for rows.Next() {
		c, err := scanChapter(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chapter: %w", err)
		}
		chapters = append(chapters, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chapters: %w", err)
	}

	if chapters == nil {
		chapters = []models.Chapter{}
	}

	return chapters, nil
}

// ListByParent lists sibling chapters of one parent ordered by sort key
func (r *PostgresChapterRepository) ListByParent(ctx context.Context, parent models.ParentRef) ([]models.Chapter, error) {
	if parent.Kind == models.ParentManuscript {
		return r.listWhere(ctx, "manuscript_id = $1", parent.ID)
	}
	return r.listWhere(ctx, "volume_id = $1", parent.ID)
}

// ListByManuscript lists every chapter reachable from a manuscript: the
// direct chapters plus those nested under its volumes.
func (r *PostgresChapterRepository) ListByManuscript(ctx context.Context, manuscriptID string) ([]models.Chapter, error) {
	where := fmt.Sprintf(
		"manuscript_id = $1 OR volume_id IN (SELECT id FROM %s WHERE manuscript_id = $1)",
		r.tables.Volumes,
	)
	return r.listWhere(ctx, where, manuscriptID)
}

// MaxSortKey returns the largest sort key among the parent's chapters
func (r *PostgresChapterRepository) MaxSortKey(ctx context.Context, parent models.ParentRef) (*decimal.Decimal, error) {
	column := "manuscript_id"
	if parent.Kind == models.ParentVolume {
		column = "volume_id"
	}

	query := fmt.Sprintf(`
		SELECT MAX(sort_key)
		FROM %s
		WHERE %s = $1
	`, r.tables.Chapters, column)

	var max *decimal.Decimal
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, parent.ID).Scan(&max); err != nil {
		return nil, fmt.Errorf("max chapter sort key: %w", err)
	}

	return max, nil
}

// Update persists title, status, word count and published_at
func (r *PostgresChapterRepository) Update(ctx context.Context, c *models.Chapter) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, status = $2, word_count = $3, published_at = $4, updated_at = $5
		WHERE id = $6
	`, r.tables.Chapters)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		c.Title,
		c.Status,
		c.WordCount,
		c.PublishedAt,
		c.UpdatedAt,
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("update chapter: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("chapter %s: %w", c.ID, domain.ErrNotFound)
	}

	return nil
}

// UpdateWordCount persists just the denormalized word count
func (r *PostgresChapterRepository) UpdateWordCount(ctx context.Context, id string, wordCount int) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET word_count = $1, updated_at = NOW()
		WHERE id = $2
	`, r.tables.Chapters)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, wordCount, id)
	if err != nil {
		return fmt.Errorf("update chapter word count: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("chapter %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Delete hard-deletes a chapter row
func (r *PostgresChapterRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Chapters)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete chapter: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("chapter %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteByVolume hard-deletes a volume's chapters, returning their ids
func (r *PostgresChapterRepository) DeleteByVolume(ctx context.Context, volumeID string) ([]string, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE volume_id = $1
		RETURNING id
	`, r.tables.Chapters)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, volumeID)
	if err != nil {
		return nil, fmt.Errorf("delete volume chapters: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan deleted chapter id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deleted chapter ids: %w", err)
	}

	return ids, nil
}
