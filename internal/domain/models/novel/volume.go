package novel

import (
	"time"

	"github.com/shopspring/decimal"
)

// Volume is an optional mid-level grouping of chapters within a manuscript.
// Deleting a volume hard-deletes its chapters and their content/version rows.
type Volume struct {
	ID           string          `json:"id" db:"id"`
	ManuscriptID string          `json:"manuscript_id" db:"manuscript_id"`
	Title        string          `json:"title" db:"title"`
	Description  *string         `json:"description,omitempty" db:"description"`
	SortKey      decimal.Decimal `json:"sort_key" db:"sort_key"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}
