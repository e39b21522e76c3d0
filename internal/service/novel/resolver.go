package novel

import (
	"context"
	"errors"
	"fmt"

	"inkstone/internal/domain"
	models "inkstone/internal/domain/models/novel"
	novelRepo "inkstone/internal/domain/repositories/novel"
)

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

// ownerResolver walks a volume/chapter up to its manuscript and compares the
// owner against the requesting user. Every mutating operation resolves
// ownership first and fails fast; read paths that assume validated input
// (aggregates, export rendering) do not re-check.
type ownerResolver struct {
	manuscriptRepo novelRepo.ManuscriptRepository
	volumeRepo     novelRepo.VolumeRepository
	chapterRepo    novelRepo.ChapterRepository
}

func newOwnerResolver(
	manuscriptRepo novelRepo.ManuscriptRepository,
	volumeRepo novelRepo.VolumeRepository,
	chapterRepo novelRepo.ChapterRepository,
) *ownerResolver {
	return &ownerResolver{
		manuscriptRepo: manuscriptRepo,
		volumeRepo:     volumeRepo,
		chapterRepo:    chapterRepo,
	}
}

// requireManuscript loads a manuscript and verifies the user owns it.
func (r *ownerResolver) requireManuscript(ctx context.Context, userID, manuscriptID string) (*models.Manuscript, error) {
	m, err := r.manuscriptRepo.GetByID(ctx, manuscriptID)
	if err != nil {
		return nil, err
	}
	if m.UserID != userID {
		return nil, fmt.Errorf("manuscript %s: %w", manuscriptID, domain.ErrForbidden)
	}
	return m, nil
}

// requireVolume loads a volume and verifies the user owns its manuscript.
func (r *ownerResolver) requireVolume(ctx context.Context, userID, volumeID string) (*models.Volume, *models.Manuscript, error) {
	v, err := r.volumeRepo.GetByID(ctx, volumeID)
	if err != nil {
		return nil, nil, err
	}
	m, err := r.requireManuscript(ctx, userID, v.ManuscriptID)
	if err != nil {
		return nil, nil, err
	}
	return v, m, nil
}

// requireChapter loads a chapter and verifies ownership, walking the
// volume -> manuscript link when the chapter is nested. Both parent paths
// must resolve to the same owning user for any access check.
func (r *ownerResolver) requireChapter(ctx context.Context, userID, chapterID string) (*models.Chapter, *models.Manuscript, error) {
	c, err := r.chapterRepo.GetByID(ctx, chapterID)
	if err != nil {
		return nil, nil, err
	}

	manuscriptID := c.Parent.ID
	if c.Parent.Kind == models.ParentVolume {
		v, err := r.volumeRepo.GetByID(ctx, c.Parent.ID)
		if err != nil {
			return nil, nil, err
		}
		manuscriptID = v.ManuscriptID
	}

	m, err := r.requireManuscript(ctx, userID, manuscriptID)
	if err != nil {
		return nil, nil, err
	}
	return c, m, nil
}
