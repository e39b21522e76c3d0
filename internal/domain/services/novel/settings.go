package novel

import (
	"context"

	"inkstone/internal/domain/models/novel"
)

// SettingsService resolves which lore entities apply to a manuscript.
type SettingsService interface {
	// Resolve returns the effective lore set. When the manuscript points at
	// a project, the project's four id lists are the source of truth and the
	// manuscript's own lists are ignored entirely; otherwise the
	// manuscript's lists are used. Dangling ids resolve to nothing.
	Resolve(ctx context.Context, userID, manuscriptID string) (*novel.ResolvedSettings, error)

	// BuildContext renders the resolved settings as the natural-language
	// block handed to the AI collaborator: grouped by category with
	// "name: description" lines, or a default message when nothing is
	// attached.
	BuildContext(ctx context.Context, userID, manuscriptID string) (string, error)
}
