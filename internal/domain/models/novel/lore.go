package novel

import (
	"time"
)

// LoreCategory identifies which settings table a lore reference points into.
// Lookups are category-scoped: a character id is never resolved against the
// system-settings table.
type LoreCategory string

const (
	LoreCharacter LoreCategory = "character"
	LoreSystem    LoreCategory = "system"
	LoreWorld     LoreCategory = "world"
	LoreMisc      LoreCategory = "misc"
)

// LoreRef is a weak, category-tagged reference to a lore entity. Ids are
// plain strings with no foreign key behind them; dangling refs are dropped
// silently at resolution time.
type LoreRef struct {
	Category LoreCategory `json:"category"`
	ID       string       `json:"id"`
}

// LoreEntity is a reusable setting record (character/system/world/misc)
// referenced by id from manuscripts or projects.
type LoreEntity struct {
	ID          string       `json:"id" db:"id"`
	UserID      string       `json:"user_id" db:"user_id"`
	Category    LoreCategory `json:"category"`
	Name        string       `json:"name" db:"name"`
	Description string       `json:"description" db:"description"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}

// ResolvedSettings is the effective set of lore entities for a manuscript,
// grouped by category.
type ResolvedSettings struct {
	Characters []LoreEntity `json:"characters"`
	Systems    []LoreEntity `json:"systems"`
	Worlds     []LoreEntity `json:"worlds"`
	Misc       []LoreEntity `json:"misc"`
}

// Empty reports whether no lore entities resolved in any category.
func (s *ResolvedSettings) Empty() bool {
	return len(s.Characters) == 0 && len(s.Systems) == 0 && len(s.Worlds) == 0 && len(s.Misc) == 0
}

// Project is an external aggregate referenced, not owned, by this core. A
// manuscript may point at a project; when it does, the project's four lore
// lists replace the manuscript's own.
type Project struct {
	ID           string     `json:"id" db:"id"`
	UserID       string     `json:"user_id" db:"user_id"`
	Name         string     `json:"name" db:"name"`
	CharacterIDs []string   `json:"character_ids" db:"character_ids"`
	SystemIDs    []string   `json:"system_ids" db:"system_ids"`
	WorldIDs     []string   `json:"world_ids" db:"world_ids"`
	MiscIDs      []string   `json:"misc_ids" db:"misc_ids"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}
