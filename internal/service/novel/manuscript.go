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
	novelRepo "inkstone/internal/domain/repositories/novel"
	novelSvc "inkstone/internal/domain/services/novel"
)

// manuscriptService implements the ManuscriptService interface
type manuscriptService struct {
	manuscriptRepo novelRepo.ManuscriptRepository
	projectRepo    novelRepo.ProjectRepository
	logger         *slog.Logger
}

// NewManuscriptService creates a new manuscript service
func NewManuscriptService(
	manuscriptRepo novelRepo.ManuscriptRepository,
	projectRepo novelRepo.ProjectRepository,
	logger *slog.Logger,
) novelSvc.ManuscriptService {
	return &manuscriptService{
		manuscriptRepo: manuscriptRepo,
		projectRepo:    projectRepo,
		logger:         logger,
	}
}

// CreateManuscript creates a new manuscript for the user
func (s *manuscriptService) CreateManuscript(ctx context.Context, req *novelSvc.CreateManuscriptRequest) (*models.Manuscript, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// A project link must point at a project the same user owns
	if req.ProjectID != nil {
		if err := s.checkProjectLink(ctx, req.UserID, *req.ProjectID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	m := &models.Manuscript{
		UserID:       req.UserID,
		Name:         strings.TrimSpace(req.Name),
		OutlineID:    req.OutlineID,
		ProjectID:    req.ProjectID,
		Status:       models.ManuscriptStatusDraft,
		CharacterIDs: []string{},
		SystemIDs:    []string{},
		WorldIDs:     []string{},
		MiscIDs:      []string{},
		TargetWords:  req.TargetWords,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.manuscriptRepo.Create(ctx, m); err != nil {
		return nil, err
	}

	s.logger.Info("manuscript created", "manuscript_id", m.ID, "user_id", req.UserID)

	return m, nil
}

// GetManuscript retrieves a manuscript owned by the user
func (s *manuscriptService) GetManuscript(ctx context.Context, userID, id string) (*models.Manuscript, error) {
	m, err := s.manuscriptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.UserID != userID {
		return nil, fmt.Errorf("manuscript %s: %w", id, domain.ErrForbidden)
	}
	return m, nil
}

// ListManuscripts retrieves all manuscripts for the user
func (s *manuscriptService) ListManuscripts(ctx context.Context, userID string) ([]models.Manuscript, error) {
	return s.manuscriptRepo.List(ctx, userID)
}

// UpdateManuscript updates mutable manuscript fields
func (s *manuscriptService) UpdateManuscript(ctx context.Context, userID, id string, req *novelSvc.UpdateManuscriptRequest) (*models.Manuscript, error) {
	m, err := s.GetManuscript(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be blank", domain.ErrValidation)
		}
		m.Name = name
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, *req.Status)
		}
		m.Status = *req.Status
	}
	if req.ProjectID != nil {
		if *req.ProjectID == "" {
			m.ProjectID = nil
		} else {
			if err := s.checkProjectLink(ctx, userID, *req.ProjectID); err != nil {
				return nil, err
			}
			m.ProjectID = req.ProjectID
		}
	}
	if req.TargetWords != nil {
		if *req.TargetWords < 0 {
			return nil, fmt.Errorf("%w: target words cannot be negative", domain.ErrValidation)
		}
		m.TargetWords = *req.TargetWords
	}
	if req.CharacterIDs != nil {
		m.CharacterIDs = req.CharacterIDs
	}
	if req.SystemIDs != nil {
		m.SystemIDs = req.SystemIDs
	}
	if req.WorldIDs != nil {
		m.WorldIDs = req.WorldIDs
	}
	if req.MiscIDs != nil {
		m.MiscIDs = req.MiscIDs
	}
	m.UpdatedAt = time.Now()

	if err := s.manuscriptRepo.Update(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

// DeleteManuscript soft-deletes a manuscript
func (s *manuscriptService) DeleteManuscript(ctx context.Context, userID, id string) error {
	if _, err := s.GetManuscript(ctx, userID, id); err != nil {
		return err
	}

	if err := s.manuscriptRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("manuscript deleted", "manuscript_id", id, "user_id", userID)

	return nil
}

func (s *manuscriptService) checkProjectLink(ctx context.Context, userID, projectID string) error {
	p, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return fmt.Errorf("invalid project link: %w", err)
	}
	if p.UserID != userID {
		return fmt.Errorf("project %s: %w", projectID, domain.ErrForbidden)
	}
	return nil
}

func (s *manuscriptService) validateCreateRequest(req *novelSvc.CreateManuscriptRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.TargetWords, validation.Min(0)),
	)
}
