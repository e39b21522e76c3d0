package novel

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChapterStatus is the publish state of a chapter. The only transitions are
// DRAFT -> PUBLISHED (publish) and PUBLISHED -> DRAFT (unpublish).
type ChapterStatus string

const (
	ChapterStatusDraft     ChapterStatus = "DRAFT"
	ChapterStatusPublished ChapterStatus = "PUBLISHED"
)

// ParentKind discriminates the two legal chapter parents.
type ParentKind string

const (
	ParentManuscript ParentKind = "manuscript" // direct ("no-volume") chapter
	ParentVolume     ParentKind = "volume"     // nested under a volume
)

// ParentRef is the tagged reference to a chapter's single owning parent.
// A chapter belongs to exactly one manuscript XOR one volume; expressing the
// parent as a sum type makes that invariant structural instead of a runtime
// check over two nullable foreign keys.
type ParentRef struct {
	Kind ParentKind `json:"kind"`
	ID   string     `json:"id"`
}

// DirectParent returns a parent reference for a chapter attached straight to
// a manuscript.
func DirectParent(manuscriptID string) ParentRef {
	return ParentRef{Kind: ParentManuscript, ID: manuscriptID}
}

// VolumeParent returns a parent reference for a chapter nested under a volume.
func VolumeParent(volumeID string) ParentRef {
	return ParentRef{Kind: ParentVolume, ID: volumeID}
}

// IsDirect reports whether the chapter hangs directly off its manuscript.
func (p ParentRef) IsDirect() bool { return p.Kind == ParentManuscript }

// Chapter is the leaf writing unit. WordCount is denormalized from the
// chapter's content row and kept current by content saves.
//
// PublishedAt is set on the first publish only and preserved across
// unpublish/republish cycles.
type Chapter struct {
	ID          string          `json:"id" db:"id"`
	Parent      ParentRef       `json:"parent"`
	Title       string          `json:"title" db:"title"`
	Status      ChapterStatus   `json:"status" db:"status"`
	WordCount   int             `json:"word_count" db:"word_count"`
	SortKey     decimal.Decimal `json:"sort_key" db:"sort_key"`
	PublishedAt *time.Time      `json:"published_at,omitempty" db:"published_at"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}
