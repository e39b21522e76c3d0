package novel

import (
	"context"

	"github.com/shopspring/decimal"

	"inkstone/internal/domain/models/novel"
)

// VolumeRepository defines data access operations for volumes.
type VolumeRepository interface {
	// Create creates a new volume
	Create(ctx context.Context, v *novel.Volume) error

	// GetByID retrieves a volume by ID
	GetByID(ctx context.Context, id string) (*novel.Volume, error)

	// ListByManuscript lists a manuscript's volumes ordered by sort key ascending
	ListByManuscript(ctx context.Context, manuscriptID string) ([]novel.Volume, error)

	// MaxSortKey returns the largest sibling sort key, or nil when the
	// manuscript has no volumes yet
	MaxSortKey(ctx context.Context, manuscriptID string) (*decimal.Decimal, error)

	// Update persists title and description
	Update(ctx context.Context, v *novel.Volume) error

	// Delete hard-deletes the volume row only; chapter cascade is the
	// service's job inside the same transaction
	Delete(ctx context.Context, id string) error
}
