package assist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"inkstone/internal/domain"
	domainassist "inkstone/internal/domain/services/assist"
	novelSvc "inkstone/internal/domain/services/novel"
)

// recentBodyRunes bounds how much of the chapter tail goes into the prompt.
const recentBodyRunes = 2000

// service implements the assist Service: it projects the manuscript's lore
// into text, pairs it with the chapter's recent body and hands both to a
// completion provider.
type service struct {
	settings     novelSvc.SettingsService
	content      novelSvc.ContentService
	presets      *PresetStore
	registry     *Registry
	defaultModel string
	maxTokens    int
	logger       *slog.Logger
}

// NewService creates a new assist service
func NewService(
	settings novelSvc.SettingsService,
	content novelSvc.ContentService,
	presets *PresetStore,
	registry *Registry,
	defaultModel string,
	maxTokens int,
	logger *slog.Logger,
) domainassist.Service {
	return &service{
		settings:     settings,
		content:      content,
		presets:      presets,
		registry:     registry,
		defaultModel: defaultModel,
		maxTokens:    maxTokens,
		logger:       logger,
	}
}

// Draft builds the instruction pair and invokes the matching provider.
// Provider failures are hidden behind a generic retryable assistance error;
// the cause is logged, not surfaced.
func (s *service) Draft(ctx context.Context, req *domainassist.DraftRequest) (string, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.ManuscriptID, validation.Required),
		validation.Field(&req.ChapterID, validation.Required),
		validation.Field(&req.Preset, validation.Required),
	); err != nil {
		return "", fmt.Errorf("invalid draft request: %s: %w", err, domain.ErrValidation)
	}

	preset, ok := s.presets.Get(req.Preset)
	if !ok {
		return "", fmt.Errorf("unknown preset '%s': %w", req.Preset, domain.ErrValidation)
	}

	settingsContext, err := s.settings.BuildContext(ctx, req.UserID, req.ManuscriptID)
	if err != nil {
		return "", err
	}

	recent := ""
	content, err := s.content.GetContent(ctx, req.UserID, req.ChapterID)
	switch {
	case err == nil:
		recent = tail(content.Body, recentBodyRunes)
	case errors.Is(err, domain.ErrNotFound):
		// Drafting into an empty chapter is fine
	default:
		return "", err
	}

	model := req.Model
	if model == "" {
		model = s.defaultModel
	}

	provider, err := s.registry.ProviderFor(model)
	if err != nil {
		return "", fmt.Errorf("%s: %w", err, domain.ErrValidation)
	}

	system, user := preset.Render(settingsContext, recent, req.Instruction)
	text, err := provider.Complete(ctx, &domainassist.CompletionRequest{
		System:    system,
		User:      user,
		Model:     model,
		MaxTokens: s.maxTokens,
	})
	if err != nil {
		s.logger.Error("completion provider failed",
			"provider", provider.Name(),
			"model", model,
			"error", err,
		)
		return "", &domain.AssistanceError{Provider: provider.Name(), Cause: err}
	}

	return text, nil
}

// tail returns the last n runes of s.
func tail(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}
