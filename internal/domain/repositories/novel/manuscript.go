package novel

import (
	"context"
	"time"

	"inkstone/internal/domain/models/novel"
)

// ManuscriptRepository defines data access operations for manuscripts.
type ManuscriptRepository interface {
	// Create creates a new manuscript
	Create(ctx context.Context, m *novel.Manuscript) error

	// GetByID retrieves a manuscript by ID (any owner; callers compare UserID)
	GetByID(ctx context.Context, id string) (*novel.Manuscript, error)

	// List retrieves all manuscripts for a user, ordered by updated_at DESC
	List(ctx context.Context, userID string) ([]novel.Manuscript, error)

	// Update persists name, status, target words, project link and lore lists
	Update(ctx context.Context, m *novel.Manuscript) error

	// UpdateWordCounts persists the recomputed aggregate totals
	UpdateWordCounts(ctx context.Context, id string, totalWords, publishedWords int) error

	// StampLastEdited records the chapter and time of the latest content save
	StampLastEdited(ctx context.Context, id, chapterID string, at time.Time) error

	// Delete soft-deletes a manuscript by setting deleted_at
	Delete(ctx context.Context, id string) error
}
