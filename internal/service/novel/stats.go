package novel

import (
	"context"
	"log/slog"

	models "inkstone/internal/domain/models/novel"
	novelRepo "inkstone/internal/domain/repositories/novel"
	novelSvc "inkstone/internal/domain/services/novel"
)

// statsService implements the StatsService interface.
type statsService struct {
	manuscriptRepo novelRepo.ManuscriptRepository
	chapterRepo    novelRepo.ChapterRepository
	logger         *slog.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(
	manuscriptRepo novelRepo.ManuscriptRepository,
	chapterRepo novelRepo.ChapterRepository,
	logger *slog.Logger,
) novelSvc.StatsService {
	return &statsService{
		manuscriptRepo: manuscriptRepo,
		chapterRepo:    chapterRepo,
		logger:         logger,
	}
}

// Recompute re-derives total_words and published_words from every chapter
// reachable from the manuscript (direct + via volumes) and persists both.
// Idempotent; assumes the caller already validated access. When invoked
// inside a transaction it reads through that transaction, so cascades and
// their recompute see a consistent chapter set.
func (s *statsService) Recompute(ctx context.Context, manuscriptID string) error {
	chapters, err := s.chapterRepo.ListByManuscript(ctx, manuscriptID)
	if err != nil {
		return err
	}

	var total, published int
	for _, c := range chapters {
		total += c.WordCount
		if c.Status == models.ChapterStatusPublished {
			published += c.WordCount
		}
	}

	if err := s.manuscriptRepo.UpdateWordCounts(ctx, manuscriptID, total, published); err != nil {
		return err
	}

	s.logger.Debug("manuscript aggregates recomputed",
		"manuscript_id", manuscriptID,
		"total_words", total,
		"published_words", published,
	)

	return nil
}
