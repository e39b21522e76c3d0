package novel

import (
	"context"

	"inkstone/internal/domain/models/novel"
)

// LoreRepository defines category-scoped lookups for lore entities. Lookups
// never cross categories: a character id is only ever resolved against the
// character table.
type LoreRepository interface {
	// GetByIDs resolves ids within one category, returning only entities
	// that still exist; dangling ids are dropped without error
	GetByIDs(ctx context.Context, category novel.LoreCategory, ids []string) ([]novel.LoreEntity, error)
}

// ProjectRepository reads the external project aggregate a manuscript may
// point at for its lore lists.
type ProjectRepository interface {
	// GetByID retrieves a project by ID
	GetByID(ctx context.Context, id string) (*novel.Project, error)
}
