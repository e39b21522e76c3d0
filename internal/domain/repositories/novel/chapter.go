package novel

import (
	"context"

	"github.com/shopspring/decimal"

	"inkstone/internal/domain/models/novel"
)

// ChapterRepository defines data access operations for chapters.
type ChapterRepository interface {
	// Create creates a new chapter
	Create(ctx context.Context, c *novel.Chapter) error

	// GetByID retrieves a chapter by ID
	GetByID(ctx context.Context, id string) (*novel.Chapter, error)

	// ListByParent lists sibling chapters of one parent ordered by sort key
	ListByParent(ctx context.Context, parent novel.ParentRef) ([]novel.Chapter, error)

	// ListByManuscript lists every chapter reachable from a manuscript,
	// direct and volume-nested alike
	ListByManuscript(ctx context.Context, manuscriptID string) ([]novel.Chapter, error)

	// MaxSortKey returns the largest sort key among the parent's chapters,
	// or nil when there are none
	MaxSortKey(ctx context.Context, parent novel.ParentRef) (*decimal.Decimal, error)

	// Update persists title, status, word count and published_at
	Update(ctx context.Context, c *novel.Chapter) error

	// UpdateWordCount persists just the denormalized word count
	UpdateWordCount(ctx context.Context, id string, wordCount int) error

	// Delete hard-deletes a chapter row
	Delete(ctx context.Context, id string) error

	// DeleteByVolume hard-deletes every chapter of a volume and returns the
	// deleted chapter ids so the caller can cascade content rows
	DeleteByVolume(ctx context.Context, volumeID string) ([]string, error)
}
