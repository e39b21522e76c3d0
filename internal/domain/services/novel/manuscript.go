package novel

import (
	"context"

	"inkstone/internal/domain/models/novel"
)

// ManuscriptService handles manuscript business logic.
type ManuscriptService interface {
	// CreateManuscript creates a new manuscript for the user
	CreateManuscript(ctx context.Context, req *CreateManuscriptRequest) (*novel.Manuscript, error)

	// GetManuscript retrieves a manuscript owned by the user
	GetManuscript(ctx context.Context, userID, id string) (*novel.Manuscript, error)

	// ListManuscripts retrieves all manuscripts for the user
	ListManuscripts(ctx context.Context, userID string) ([]novel.Manuscript, error)

	// UpdateManuscript updates name, status, target words, project link or
	// lore reference lists
	UpdateManuscript(ctx context.Context, userID, id string, req *UpdateManuscriptRequest) (*novel.Manuscript, error)

	// DeleteManuscript soft-deletes a manuscript
	DeleteManuscript(ctx context.Context, userID, id string) error
}

// CreateManuscriptRequest represents a manuscript creation request.
type CreateManuscriptRequest struct {
	UserID      string  `json:"-"` // set by handler from auth context
	Name        string  `json:"name"`
	OutlineID   *string `json:"outline_id,omitempty"`
	ProjectID   *string `json:"project_id,omitempty"`
	TargetWords int     `json:"target_words,omitempty"`
}

// UpdateManuscriptRequest represents a manuscript update request. Nil fields
// are left unchanged; lore lists replace wholesale when present.
type UpdateManuscriptRequest struct {
	Name         *string                 `json:"name,omitempty"`
	Status       *novel.ManuscriptStatus `json:"status,omitempty"`
	ProjectID    *string                 `json:"project_id,omitempty"`
	TargetWords  *int                    `json:"target_words,omitempty"`
	CharacterIDs []string                `json:"character_ids,omitempty"`
	SystemIDs    []string                `json:"system_ids,omitempty"`
	WorldIDs     []string                `json:"world_ids,omitempty"`
	MiscIDs      []string                `json:"misc_ids,omitempty"`
}
