package novel

import (
	"context"

	"inkstone/internal/domain/models/novel"
)

// ContentService is the append-only version store for chapter bodies.
type ContentService interface {
	// SaveContent archives the current body (if any) into the version log,
	// writes the new body with version+1, refreshes the chapter's word
	// count, recomputes manuscript aggregates and stamps last-edited state.
	// All of it runs in one transaction.
	SaveContent(ctx context.Context, req *SaveContentRequest) (*novel.ChapterContent, error)

	// GetContent retrieves the current body for a chapter
	GetContent(ctx context.Context, userID, chapterID string) (*novel.ChapterContent, error)

	// ListVersions lists the chapter's archived versions, newest first
	ListVersions(ctx context.Context, userID, chapterID string) ([]novel.ChapterContentVersion, error)

	// GetVersion retrieves one archived version's body
	GetVersion(ctx context.Context, userID, chapterID string, version int) (*novel.ChapterContentVersion, error)
}

// SaveContentRequest represents a content save.
//
// BaseVersion is optional optimistic concurrency: when set, the save is
// rejected with a conflict if the stored version differs. When nil the save
// is last-write-wins, matching single-author editing.
type SaveContentRequest struct {
	UserID      string `json:"-"`
	ChapterID   string `json:"-"`
	Body        string `json:"body"`
	BaseVersion *int   `json:"base_version,omitempty"`
}
