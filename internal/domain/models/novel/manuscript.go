package novel

import (
	"time"
)

// ManuscriptStatus is the lifecycle state of a manuscript.
type ManuscriptStatus string

const (
	ManuscriptStatusDraft      ManuscriptStatus = "DRAFT"
	ManuscriptStatusInProgress ManuscriptStatus = "IN_PROGRESS"
	ManuscriptStatusCompleted  ManuscriptStatus = "COMPLETED"
	ManuscriptStatusPublished  ManuscriptStatus = "PUBLISHED"
	ManuscriptStatusAbandoned  ManuscriptStatus = "ABANDONED"
)

// Valid reports whether s is one of the known manuscript statuses.
func (s ManuscriptStatus) Valid() bool {
	switch s {
	case ManuscriptStatusDraft, ManuscriptStatusInProgress, ManuscriptStatusCompleted,
		ManuscriptStatusPublished, ManuscriptStatusAbandoned:
		return true
	}
	return false
}

// Manuscript is the root of the structure tree. It is owned exclusively by its
// user and deleted logically (deleted_at set, record retained).
//
// The four lore id lists are weak references: ids are plain strings, dangling
// entries are tolerated and dropped at resolution time. When ProjectID is set,
// the Settings Resolver ignores these lists entirely and uses the project's.
type Manuscript struct {
	ID                  string           `json:"id" db:"id"`
	UserID              string           `json:"user_id" db:"user_id"`
	Name                string           `json:"name" db:"name"`
	OutlineID           *string          `json:"outline_id,omitempty" db:"outline_id"`
	ProjectID           *string          `json:"project_id,omitempty" db:"project_id"`
	Status              ManuscriptStatus `json:"status" db:"status"`
	CharacterIDs        []string         `json:"character_ids" db:"character_ids"`
	SystemIDs           []string         `json:"system_ids" db:"system_ids"`
	WorldIDs            []string         `json:"world_ids" db:"world_ids"`
	MiscIDs             []string         `json:"misc_ids" db:"misc_ids"`
	TotalWords          int              `json:"total_words" db:"total_words"`
	PublishedWords      int              `json:"published_words" db:"published_words"`
	TargetWords         int              `json:"target_words" db:"target_words"`
	LastEditedChapterID *string          `json:"last_edited_chapter_id,omitempty" db:"last_edited_chapter_id"`
	LastEditedAt        *time.Time       `json:"last_edited_at,omitempty" db:"last_edited_at"`
	CreatedAt           time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at" db:"updated_at"`
	DeletedAt           *time.Time       `json:"deleted_at,omitempty" db:"deleted_at"`
}
