package novel

import (
	"time"
)

// ChapterContent is the 1:1 current body snapshot for a chapter. Version
// starts at 1 and increments by 1 on every save; each increment is preceded
// by archiving the prior body into a ChapterContentVersion row.
type ChapterContent struct {
	ID        string    `json:"id" db:"id"`
	ChapterID string    `json:"chapter_id" db:"chapter_id"`
	Body      string    `json:"body" db:"body"`
	Version   int       `json:"version" db:"version"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ChapterContentVersion is an append-only history row holding the body that
// was current at the superseded version. Never mutated or deleted through
// normal operation.
type ChapterContentVersion struct {
	ID        string    `json:"id" db:"id"`
	ContentID string    `json:"content_id" db:"content_id"`
	Version   int       `json:"version" db:"version"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
