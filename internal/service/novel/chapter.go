package novel

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"inkstone/internal/domain"
	models "inkstone/internal/domain/models/novel"
	"inkstone/internal/domain/repositories"
	novelRepo "inkstone/internal/domain/repositories/novel"
	novelSvc "inkstone/internal/domain/services/novel"
	"inkstone/internal/utils"
)

// chapterService implements the ChapterService interface
type chapterService struct {
	chapterRepo novelRepo.ChapterRepository
	contentRepo novelRepo.ContentRepository
	stats       novelSvc.StatsService
	txManager   repositories.TransactionManager
	resolver    *ownerResolver
	logger      *slog.Logger
}

// NewChapterService creates a new chapter service
func NewChapterService(
	manuscriptRepo novelRepo.ManuscriptRepository,
	volumeRepo novelRepo.VolumeRepository,
	chapterRepo novelRepo.ChapterRepository,
	contentRepo novelRepo.ContentRepository,
	stats novelSvc.StatsService,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) novelSvc.ChapterService {
	return &chapterService{
		chapterRepo: chapterRepo,
		contentRepo: contentRepo,
		stats:       stats,
		txManager:   txManager,
		resolver:    newOwnerResolver(manuscriptRepo, volumeRepo, chapterRepo),
		logger:      logger,
	}
}

// CreateChapter appends a chapter directly to a manuscript or under a
// volume. Exactly one parent must be given.
func (s *chapterService) CreateChapter(ctx context.Context, req *novelSvc.CreateChapterRequest) (*models.Chapter, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var parent models.ParentRef
	switch {
	case req.ManuscriptID != nil && req.VolumeID != nil:
		return nil, fmt.Errorf("%w: chapter cannot have both a manuscript and a volume parent", domain.ErrValidation)
	case req.ManuscriptID != nil:
		if _, err := s.resolver.requireManuscript(ctx, req.UserID, *req.ManuscriptID); err != nil {
			return nil, err
		}
		parent = models.DirectParent(*req.ManuscriptID)
	case req.VolumeID != nil:
		if _, _, err := s.resolver.requireVolume(ctx, req.UserID, *req.VolumeID); err != nil {
			return nil, err
		}
		parent = models.VolumeParent(*req.VolumeID)
	default:
		return nil, fmt.Errorf("%w: chapter needs a manuscript or a volume parent", domain.ErrValidation)
	}

	max, err := s.chapterRepo.MaxSortKey(ctx, parent)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	c := &models.Chapter{
		Parent:    parent,
		Title:     strings.TrimSpace(req.Title),
		Status:    models.ChapterStatusDraft,
		SortKey:   utils.NextSortKey(max),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.chapterRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("chapter created", "chapter_id", c.ID, "parent_kind", c.Parent.Kind, "parent_id", c.Parent.ID)

	return c, nil
}

// GetChapter retrieves a chapter owned (transitively) by the user
func (s *chapterService) GetChapter(ctx context.Context, userID, id string) (*models.Chapter, error) {
	c, _, err := s.resolver.requireChapter(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateChapter renames a chapter
func (s *chapterService) UpdateChapter(ctx context.Context, userID, id string, req *novelSvc.UpdateChapterRequest) (*models.Chapter, error) {
	c, _, err := s.resolver.requireChapter(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be blank", domain.ErrValidation)
		}
		c.Title = title
	}
	c.UpdatedAt = time.Now()

	if err := s.chapterRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// DeleteChapter removes the chapter with its content/version rows, then
// recomputes the manuscript aggregates, all in one transaction.
func (s *chapterService) DeleteChapter(ctx context.Context, userID, id string) error {
	c, m, err := s.resolver.requireChapter(ctx, userID, id)
	if err != nil {
		return err
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.contentRepo.DeleteByChapters(txCtx, []string{c.ID}); err != nil {
			return err
		}

		if err := s.chapterRepo.Delete(txCtx, c.ID); err != nil {
			return err
		}

		return s.stats.Recompute(txCtx, m.ID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("chapter deleted", "chapter_id", id, "manuscript_id", m.ID)

	return nil
}

// PublishChapter moves DRAFT -> PUBLISHED. published_at is stamped on the
// first publish only; later publishes keep the original timestamp.
func (s *chapterService) PublishChapter(ctx context.Context, userID, id string) (*models.Chapter, error) {
	return s.setStatus(ctx, userID, id, models.ChapterStatusPublished)
}

// UnpublishChapter moves PUBLISHED -> DRAFT. published_at is deliberately
// NOT cleared: the first-publish timestamp survives unpublish/republish
// cycles.
func (s *chapterService) UnpublishChapter(ctx context.Context, userID, id string) (*models.Chapter, error) {
	return s.setStatus(ctx, userID, id, models.ChapterStatusDraft)
}

func (s *chapterService) setStatus(ctx context.Context, userID, id string, status models.ChapterStatus) (*models.Chapter, error) {
	c, m, err := s.resolver.requireChapter(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if c.Status == status {
		return c, nil
	}

	c.Status = status
	if status == models.ChapterStatusPublished && c.PublishedAt == nil {
		now := time.Now()
		c.PublishedAt = &now
	}
	c.UpdatedAt = time.Now()

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.chapterRepo.Update(txCtx, c); err != nil {
			return err
		}
		// Publish status feeds published_words
		return s.stats.Recompute(txCtx, m.ID)
	})
	if err != nil {
		return nil, err
	}

	return c, nil
}
