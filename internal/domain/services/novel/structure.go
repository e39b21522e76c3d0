package novel

import (
	"context"

	"inkstone/internal/domain/models/novel"
)

// VolumeService handles volume business logic.
type VolumeService interface {
	// CreateVolume appends a volume to a manuscript
	CreateVolume(ctx context.Context, req *CreateVolumeRequest) (*novel.Volume, error)

	// UpdateVolume updates a volume's title/description
	UpdateVolume(ctx context.Context, userID, id string, req *UpdateVolumeRequest) (*novel.Volume, error)

	// DeleteVolume hard-deletes a volume and cascades its chapters and their
	// content/version rows, then recomputes manuscript aggregates; the whole
	// sequence runs in one transaction
	DeleteVolume(ctx context.Context, userID, id string) error
}

// ChapterService handles chapter business logic.
type ChapterService interface {
	// CreateChapter appends a chapter directly to a manuscript or under a volume
	CreateChapter(ctx context.Context, req *CreateChapterRequest) (*novel.Chapter, error)

	// GetChapter retrieves a chapter owned (transitively) by the user
	GetChapter(ctx context.Context, userID, id string) (*novel.Chapter, error)

	// UpdateChapter renames a chapter
	UpdateChapter(ctx context.Context, userID, id string, req *UpdateChapterRequest) (*novel.Chapter, error)

	// DeleteChapter removes a chapter with its content/version rows and
	// recomputes manuscript aggregates
	DeleteChapter(ctx context.Context, userID, id string) error

	// PublishChapter moves DRAFT -> PUBLISHED; published_at is set on the
	// first publish only
	PublishChapter(ctx context.Context, userID, id string) (*novel.Chapter, error)

	// UnpublishChapter moves PUBLISHED -> DRAFT; published_at is preserved
	UnpublishChapter(ctx context.Context, userID, id string) (*novel.Chapter, error)
}

// TreeService reads manuscript structure.
type TreeService interface {
	// GetTree returns the full structure: direct chapters and volumes with
	// their chapters, each list ordered by sort key ascending
	GetTree(ctx context.Context, userID, manuscriptID string) (*novel.ManuscriptTree, error)
}

// StatsService recomputes manuscript-level aggregates.
type StatsService interface {
	// Recompute re-derives total_words and published_words from the full
	// reachable chapter set and persists both. Idempotent; callers invoke it
	// after anything that can change chapter word counts or publish status.
	Recompute(ctx context.Context, manuscriptID string) error
}

// CreateVolumeRequest represents a volume creation request.
type CreateVolumeRequest struct {
	UserID       string  `json:"-"`
	ManuscriptID string  `json:"manuscript_id"`
	Title        string  `json:"title"`
	Description  *string `json:"description,omitempty"`
}

// UpdateVolumeRequest represents a volume update request.
type UpdateVolumeRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CreateChapterRequest represents a chapter creation request. Exactly one of
// ManuscriptID and VolumeID must be set.
type CreateChapterRequest struct {
	UserID       string  `json:"-"`
	ManuscriptID *string `json:"manuscript_id,omitempty"`
	VolumeID     *string `json:"volume_id,omitempty"`
	Title        string  `json:"title"`
}

// UpdateChapterRequest represents a chapter update request.
type UpdateChapterRequest struct {
	Title *string `json:"title,omitempty"`
}
