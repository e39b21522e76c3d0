package novel

import (
	"context"
	"log/slog"

	models "inkstone/internal/domain/models/novel"
	novelRepo "inkstone/internal/domain/repositories/novel"
	novelSvc "inkstone/internal/domain/services/novel"
)

// treeService assembles the full manuscript hierarchy for the editor sidebar
// and for export rendering.
type treeService struct {
	volumeRepo  novelRepo.VolumeRepository
	chapterRepo novelRepo.ChapterRepository
	resolver    *ownerResolver
	logger      *slog.Logger
}

// NewTreeService creates a new tree service
func NewTreeService(
	manuscriptRepo novelRepo.ManuscriptRepository,
	volumeRepo novelRepo.VolumeRepository,
	chapterRepo novelRepo.ChapterRepository,
	logger *slog.Logger,
) novelSvc.TreeService {
	return &treeService{
		volumeRepo:  volumeRepo,
		chapterRepo: chapterRepo,
		resolver:    newOwnerResolver(manuscriptRepo, volumeRepo, chapterRepo),
		logger:      logger,
	}
}

// GetTree returns the manuscript with its direct chapters and each volume's
// chapters. Siblings come back in sort-key order; volume-nested chapters
// always follow the manuscript's direct chapters in a flattened reading.
func (s *treeService) GetTree(ctx context.Context, userID, manuscriptID string) (*models.ManuscriptTree, error) {
	m, err := s.resolver.requireManuscript(ctx, userID, manuscriptID)
	if err != nil {
		return nil, err
	}

	direct, err := s.chapterRepo.ListByParent(ctx, models.DirectParent(m.ID))
	if err != nil {
		return nil, err
	}

	volumes, err := s.volumeRepo.ListByManuscript(ctx, m.ID)
	if err != nil {
		return nil, err
	}

	nodes := make([]models.VolumeNode, 0, len(volumes))
	for i := range volumes {
		chapters, err := s.chapterRepo.ListByParent(ctx, models.VolumeParent(volumes[i].ID))
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, models.VolumeNode{
			Volume:   volumes[i],
			Chapters: chapters,
		})
	}

	return &models.ManuscriptTree{
		Manuscript:     *m,
		DirectChapters: direct,
		Volumes:        nodes,
	}, nil
}
