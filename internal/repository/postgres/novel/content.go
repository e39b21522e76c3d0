package novel

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"inkstone/internal/domain"
	models "inkstone/internal/domain/models/novel"
	novelRepo "inkstone/internal/domain/repositories/novel"
	"inkstone/internal/repository/postgres"
)

// PostgresContentRepository implements the ContentRepository interface
type PostgresContentRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewContentRepository creates a new content repository
func NewContentRepository(config *postgres.RepositoryConfig) novelRepo.ContentRepository {
	return &PostgresContentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// GetByChapter retrieves the current content for a chapter
func (r *PostgresContentRepository) GetByChapter(ctx context.Context, chapterID string) (*models.ChapterContent, error) {
	query := fmt.Sprintf(`
		SELECT id, chapter_id, body, version, created_at, updated_at
		FROM %s
		WHERE chapter_id = $1
	`, r.tables.Contents)

	var c models.ChapterContent
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, chapterID).Scan(
		&c.ID,
		&c.ChapterID,
		&c.Body,
		&c.Version,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("content for chapter %s: %w", chapterID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get chapter content: %w", err)
	}

	return &c, nil
}

// Create inserts the first content row for a chapter (version 1)
func (r *PostgresContentRepository) Create(ctx context.Context, c *models.ChapterContent) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, chapter_id, body, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.tables.Contents)

	executor := postgres.GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		c.ID,
		c.ChapterID,
		c.Body,
		c.Version,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create chapter content: %w", err)
	}

	return nil
}

// Update persists a new body and version on an existing content row
func (r *PostgresContentRepository) Update(ctx context.Context, c *models.ChapterContent) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET body = $1, version = $2, updated_at = $3
		WHERE id = $4
	`, r.tables.Contents)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, c.Body, c.Version, c.UpdatedAt, c.ID)
	if err != nil {
		return fmt.Errorf("update chapter content: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("content %s: %w", c.ID, domain.ErrNotFound)
	}

	return nil
}

// ArchiveVersion appends a history row; history is append-only
func (r *PostgresContentRepository) ArchiveVersion(ctx context.Context, v *models.ChapterContentVersion) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, content_id, version, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, r.tables.ContentVersions)

	executor := postgres.GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query, v.ID, v.ContentID, v.Version, v.Body, v.CreatedAt)
	if err != nil {
		return fmt.Errorf("archive content version: %w", err)
	}

	return nil
}

// ListVersions lists a content's history rows, newest first
func (r *PostgresContentRepository) ListVersions(ctx context.Context, contentID string) ([]models.ChapterContentVersion, error) {
	query := fmt.Sprintf(`
		SELECT id, content_id, version, body, created_at
		FROM %s
		WHERE content_id = $1
		ORDER BY version DESC
	`, r.tables.ContentVersions)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, contentID)
	if err != nil {
		return nil, fmt.Errorf("list content versions: %w", err)
	}
	defer rows.Close()

	var versions []models.ChapterContentVersion
	for rows.Next() {
		var v models.ChapterContentVersion
		if err := rows.Scan(&v.ID, &v.ContentID, &v.Version, &v.Body, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan content version: %w", err)
		}
		versions = append(versions, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate content versions: %w", err)
	}

	if versions == nil {
		versions = []models.ChapterContentVersion{}
	}

	return versions, nil
}

// GetVersion retrieves one archived version
func (r *PostgresContentRepository) GetVersion(ctx context.Context, contentID string, version int) (*models.ChapterContentVersion, error) {
	query := fmt.Sprintf(`
		SELECT id, content_id, version, body, created_at
		FROM %s
		WHERE content_id = $1 AND version = $2
	`, r.tables.ContentVersions)

	var v models.ChapterContentVersion
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, contentID, version).Scan(
		&v.ID,
		&v.ContentID,
		&v.Version,
		&v.Body,
		&v.CreatedAt,
	)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("version %d of content %s: %w", version, contentID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get content version: %w", err)
	}

	return &v, nil
}

// DeleteByChapters hard-deletes content and version rows for the given
// chapters. Used on the volume cascade path inside its transaction.
func (r *PostgresContentRepository) DeleteByChapters(ctx context.Context, chapterIDs []string) error {
	if len(chapterIDs) == 0 {
		return nil
	}

	executor := postgres.GetExecutor(ctx, r.pool)

	// Version rows first: they reference content rows
	versionQuery := fmt.Sprintf(`
		DELETE FROM %s
		WHERE content_id IN (SELECT id FROM %s WHERE chapter_id = ANY($1))
	`, r.tables.ContentVersions, r.tables.Contents)

	if _, err := executor.Exec(ctx, versionQuery, chapterIDs); err != nil {
		return fmt.Errorf("delete content versions: %w", err)
	}

	contentQuery := fmt.Sprintf(`
		DELETE FROM %s
		WHERE chapter_id = ANY($1)
	`, r.tables.Contents)

	if _, err := executor.Exec(ctx, contentQuery, chapterIDs); err != nil {
		return fmt.Errorf("delete chapter contents: %w", err)
	}

	return nil
}
