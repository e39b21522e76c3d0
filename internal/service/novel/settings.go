package novel

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	models "inkstone/internal/domain/models/novel"
	novelRepo "inkstone/internal/domain/repositories/novel"
	novelSvc "inkstone/internal/domain/services/novel"
)

// defaultSettingsContext is handed to the AI collaborator when a manuscript
// has no lore attached at all.
const defaultSettingsContext = "No story settings are attached to this manuscript. Write freely and stay consistent with the chapter text itself."

// settingsService resolves the effective lore set for a manuscript, honouring
// the project indirection.
type settingsService struct {
	loreRepo    novelRepo.LoreRepository
	projectRepo novelRepo.ProjectRepository
	resolver    *ownerResolver
	logger      *slog.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(
	manuscriptRepo novelRepo.ManuscriptRepository,
	volumeRepo novelRepo.VolumeRepository,
	chapterRepo novelRepo.ChapterRepository,
	loreRepo novelRepo.LoreRepository,
	projectRepo novelRepo.ProjectRepository,
	logger *slog.Logger,
) novelSvc.SettingsService {
	return &settingsService{
		loreRepo:    loreRepo,
		projectRepo: projectRepo,
		resolver:    newOwnerResolver(manuscriptRepo, volumeRepo, chapterRepo),
		logger:      logger,
	}
}

// Resolve returns the effective lore set for a manuscript. A linked project
// replaces the manuscript's own lists wholesale; there is no merging.
func (s *settingsService) Resolve(ctx context.Context, userID, manuscriptID string) (*models.ResolvedSettings, error) {
	m, err := s.resolver.requireManuscript(ctx, userID, manuscriptID)
	if err != nil {
		return nil, err
	}

	characterIDs := m.CharacterIDs
	systemIDs := m.SystemIDs
	worldIDs := m.WorldIDs
	miscIDs := m.MiscIDs

	if m.ProjectID != nil {
		p, err := s.projectRepo.GetByID(ctx, *m.ProjectID)
		if err != nil {
			if isNotFound(err) {
				// Dangling project link resolves to nothing, same as any
				// other dangling lore reference
				s.logger.Warn("manuscript references missing project",
					"manuscript_id", m.ID,
					"project_id", *m.ProjectID,
				)
				return &models.ResolvedSettings{
					Characters: []models.LoreEntity{},
					Systems:    []models.LoreEntity{},
					Worlds:     []models.LoreEntity{},
					Misc:       []models.LoreEntity{},
				}, nil
			}
			return nil, err
		}
		characterIDs = p.CharacterIDs
		systemIDs = p.SystemIDs
		worldIDs = p.WorldIDs
		miscIDs = p.MiscIDs
	}

	resolved := &models.ResolvedSettings{}
	if resolved.Characters, err = s.loreRepo.GetByIDs(ctx, models.LoreCharacter, characterIDs); err != nil {
		return nil, fmt.Errorf("resolve characters: %w", err)
	}
	if resolved.Systems, err = s.loreRepo.GetByIDs(ctx, models.LoreSystem, systemIDs); err != nil {
		return nil, fmt.Errorf("resolve systems: %w", err)
	}
	if resolved.Worlds, err = s.loreRepo.GetByIDs(ctx, models.LoreWorld, worldIDs); err != nil {
		return nil, fmt.Errorf("resolve worlds: %w", err)
	}
	if resolved.Misc, err = s.loreRepo.GetByIDs(ctx, models.LoreMisc, miscIDs); err != nil {
		return nil, fmt.Errorf("resolve misc settings: %w", err)
	}

	return resolved, nil
}

// BuildContext renders the resolved lore as the natural-language block the
// AI collaborator sees. Categories with no entities are omitted.
func (s *settingsService) BuildContext(ctx context.Context, userID, manuscriptID string) (string, error) {
	resolved, err := s.Resolve(ctx, userID, manuscriptID)
	if err != nil {
		return "", err
	}
	if resolved.Empty() {
		return defaultSettingsContext, nil
	}

	var b strings.Builder
	writeSection(&b, "Characters", resolved.Characters)
	writeSection(&b, "Story systems", resolved.Systems)
	writeSection(&b, "World settings", resolved.Worlds)
	writeSection(&b, "Other settings", resolved.Misc)
	return strings.TrimRight(b.String(), "\n"), nil
}

func writeSection(b *strings.Builder, heading string, entities []models.LoreEntity) {
	if len(entities) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", heading)
	for _, e := range entities {
		fmt.Fprintf(b, "- %s: %s\n", e.Name, e.Description)
	}
	b.WriteString("\n")
}
