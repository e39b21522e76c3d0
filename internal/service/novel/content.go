package novel

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"inkstone/internal/domain"
	models "inkstone/internal/domain/models/novel"
	"inkstone/internal/domain/repositories"
	novelRepo "inkstone/internal/domain/repositories/novel"
	novelSvc "inkstone/internal/domain/services/novel"
	"inkstone/internal/utils"
)

// contentService implements the ContentService interface: an append-only
// version store over chapter bodies.
type contentService struct {
	manuscriptRepo novelRepo.ManuscriptRepository
	chapterRepo    novelRepo.ChapterRepository
	contentRepo    novelRepo.ContentRepository
	stats          novelSvc.StatsService
	txManager      repositories.TransactionManager
	resolver       *ownerResolver
	logger         *slog.Logger
}

// NewContentService creates a new content service
func NewContentService(
	manuscriptRepo novelRepo.ManuscriptRepository,
	volumeRepo novelRepo.VolumeRepository,
	chapterRepo novelRepo.ChapterRepository,
	contentRepo novelRepo.ContentRepository,
	stats novelSvc.StatsService,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) novelSvc.ContentService {
	return &contentService{
		manuscriptRepo: manuscriptRepo,
		chapterRepo:    chapterRepo,
		contentRepo:    contentRepo,
		stats:          stats,
		txManager:      txManager,
		resolver:       newOwnerResolver(manuscriptRepo, volumeRepo, chapterRepo),
		logger:         logger,
	}
}

// SaveContent writes a new chapter body. The previous body (if any) is
// archived into the version log before the version increments; the chapter's
// word count, the manuscript aggregates and the last-edited stamp all move
// in the same transaction.
//
// Version numbers are monotonic: after N saves the version is N and exactly
// N-1 history rows exist.
func (s *contentService) SaveContent(ctx context.Context, req *novelSvc.SaveContentRequest) (*models.ChapterContent, error) {
	c, m, err := s.resolver.requireChapter(ctx, req.UserID, req.ChapterID)
	if err != nil {
		return nil, err
	}

	var saved *models.ChapterContent
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		now := time.Now()

		current, err := s.contentRepo.GetByChapter(txCtx, c.ID)
		switch {
		case err == nil:
			// Optional optimistic concurrency: with no base_version the
			// save is last-write-wins (single-author editing)
			if req.BaseVersion != nil && *req.BaseVersion != current.Version {
				return &domain.ConflictError{
					Message: fmt.Sprintf("chapter content changed: stored version %d, base version %d",
						current.Version, *req.BaseVersion),
					ResourceType: "chapter_content",
					ResourceID:   current.ID,
				}
			}

			// Archive the superseded (version, body) pair first
			if err := s.contentRepo.ArchiveVersion(txCtx, &models.ChapterContentVersion{
				ContentID: current.ID,
				Version:   current.Version,
				Body:      current.Body,
				CreatedAt: now,
			}); err != nil {
				return err
			}

			current.Body = req.Body
			current.Version++
			current.UpdatedAt = now
			if err := s.contentRepo.Update(txCtx, current); err != nil {
				return err
			}
			saved = current

		case isNotFound(err):
			// First save: version 1, nothing to supersede
			first := &models.ChapterContent{
				ChapterID: c.ID,
				Body:      req.Body,
				Version:   1,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := s.contentRepo.Create(txCtx, first); err != nil {
				return err
			}
			saved = first

		default:
			return err
		}

		// Word counting is on the raw body: whitespace removed, markup kept
		wordCount := utils.CountWords(req.Body)
		if err := s.chapterRepo.UpdateWordCount(txCtx, c.ID, wordCount); err != nil {
			return err
		}

		if err := s.stats.Recompute(txCtx, m.ID); err != nil {
			return err
		}

		return s.manuscriptRepo.StampLastEdited(txCtx, m.ID, c.ID, now)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("chapter content saved",
		"chapter_id", c.ID,
		"version", saved.Version,
	)

	return saved, nil
}

// GetContent retrieves the current body for a chapter
func (s *contentService) GetContent(ctx context.Context, userID, chapterID string) (*models.ChapterContent, error) {
	c, _, err := s.resolver.requireChapter(ctx, userID, chapterID)
	if err != nil {
		return nil, err
	}
	return s.contentRepo.GetByChapter(ctx, c.ID)
}

// ListVersions lists the chapter's archived versions, newest first
func (s *contentService) ListVersions(ctx context.Context, userID, chapterID string) ([]models.ChapterContentVersion, error) {
	c, _, err := s.resolver.requireChapter(ctx, userID, chapterID)
	if err != nil {
		return nil, err
	}

	content, err := s.contentRepo.GetByChapter(ctx, c.ID)
	if err != nil {
		if isNotFound(err) {
			return []models.ChapterContentVersion{}, nil
		}
		return nil, err
	}

	return s.contentRepo.ListVersions(ctx, content.ID)
}

// GetVersion retrieves one archived version's body
func (s *contentService) GetVersion(ctx context.Context, userID, chapterID string, version int) (*models.ChapterContentVersion, error) {
	c, _, err := s.resolver.requireChapter(ctx, userID, chapterID)
	if err != nil {
		return nil, err
	}

	content, err := s.contentRepo.GetByChapter(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	return s.contentRepo.GetVersion(ctx, content.ID, version)
}
