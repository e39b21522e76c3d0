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

// volumeService implements the VolumeService interface
type volumeService struct {
	volumeRepo  novelRepo.VolumeRepository
	chapterRepo novelRepo.ChapterRepository
	contentRepo novelRepo.ContentRepository
	stats       novelSvc.StatsService
	txManager   repositories.TransactionManager
	resolver    *ownerResolver
	logger      *slog.Logger
}

// NewVolumeService creates a new volume service
func NewVolumeService(
	manuscriptRepo novelRepo.ManuscriptRepository,
	volumeRepo novelRepo.VolumeRepository,
	chapterRepo novelRepo.ChapterRepository,
	contentRepo novelRepo.ContentRepository,
	stats novelSvc.StatsService,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) novelSvc.VolumeService {
	return &volumeService{
		volumeRepo:  volumeRepo,
		chapterRepo: chapterRepo,
		contentRepo: contentRepo,
		stats:       stats,
		txManager:   txManager,
		resolver:    newOwnerResolver(manuscriptRepo, volumeRepo, chapterRepo),
		logger:      logger,
	}
}

// CreateVolume appends a volume to the end of the manuscript's volume list.
func (s *volumeService) CreateVolume(ctx context.Context, req *novelSvc.CreateVolumeRequest) (*models.Volume, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.ManuscriptID, validation.Required),
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if _, err := s.resolver.requireManuscript(ctx, req.UserID, req.ManuscriptID); err != nil {
		return nil, err
	}

	max, err := s.volumeRepo.MaxSortKey(ctx, req.ManuscriptID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	v := &models.Volume{
		ManuscriptID: req.ManuscriptID,
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		SortKey:      utils.NextSortKey(max),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.volumeRepo.Create(ctx, v); err != nil {
		return nil, err
	}

	s.logger.Info("volume created", "volume_id", v.ID, "manuscript_id", req.ManuscriptID)

	return v, nil
}

// UpdateVolume updates a volume's title/description
func (s *volumeService) UpdateVolume(ctx context.Context, userID, id string, req *novelSvc.UpdateVolumeRequest) (*models.Volume, error) {
	v, _, err := s.resolver.requireVolume(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be blank", domain.ErrValidation)
		}
		v.Title = title
	}
	if req.Description != nil {
		v.Description = req.Description
	}
	v.UpdatedAt = time.Now()

	if err := s.volumeRepo.Update(ctx, v); err != nil {
		return nil, err
	}

	return v, nil
}

// DeleteVolume hard-deletes a volume, cascading its chapters and their
// content/version rows, then recomputes the manuscript aggregates. The whole
// sequence is one transaction: a partially-applied cascade would let the
// recompute read an inconsistent chapter set.
func (s *volumeService) DeleteVolume(ctx context.Context, userID, id string) error {
	v, m, err := s.resolver.requireVolume(ctx, userID, id)
	if err != nil {
		return err
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		chapterIDs, err := s.chapterRepo.DeleteByVolume(txCtx, v.ID)
		if err != nil {
			return err
		}

		if err := s.contentRepo.DeleteByChapters(txCtx, chapterIDs); err != nil {
			return err
		}

		if err := s.volumeRepo.Delete(txCtx, v.ID); err != nil {
			return err
		}

		return s.stats.Recompute(txCtx, m.ID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("volume deleted", "volume_id", id, "manuscript_id", m.ID)

	return nil
}
