package novel

import (
	"context"

	"inkstone/internal/domain/models/novel"
)

// ContentRepository defines data access for chapter content snapshots and
// their append-only version history.
type ContentRepository interface {
	// GetByChapter retrieves the current content for a chapter, or
	// domain.ErrNotFound when the chapter has never been saved
	GetByChapter(ctx context.Context, chapterID string) (*novel.ChapterContent, error)

	// Create inserts the first content row for a chapter (version 1)
	Create(ctx context.Context, c *novel.ChapterContent) error

	// Update persists a new body and version on an existing content row
	Update(ctx context.Context, c *novel.ChapterContent) error

	// ArchiveVersion appends a history row capturing a superseded
	// (version, body) pair; history rows are never mutated or deleted
	ArchiveVersion(ctx context.Context, v *novel.ChapterContentVersion) error

	// ListVersions lists a content's history rows, newest first
	ListVersions(ctx context.Context, contentID string) ([]novel.ChapterContentVersion, error)

	// GetVersion retrieves one archived version
	GetVersion(ctx context.Context, contentID string, version int) (*novel.ChapterContentVersion, error)

	// DeleteByChapters hard-deletes content and version rows for the given
	// chapters (volume cascade path)
	DeleteByChapters(ctx context.Context, chapterIDs []string) error
}
