package assist

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"inkstone/internal/domain"
	models "inkstone/internal/domain/models/novel"
	domainassist "inkstone/internal/domain/services/assist"
	novelSvc "inkstone/internal/domain/services/novel"
)

// fakeSettings returns a fixed settings context.
type fakeSettings struct {
	context string
}

func (f *fakeSettings) Resolve(ctx context.Context, userID, manuscriptID string) (*models.ResolvedSettings, error) {
	return &models.ResolvedSettings{}, nil
}

func (f *fakeSettings) BuildContext(ctx context.Context, userID, manuscriptID string) (string, error) {
	return f.context, nil
}

// fakeContent serves one chapter body, or not-found when empty.
type fakeContent struct {
	body string
}

func (f *fakeContent) SaveContent(ctx context.Context, req *novelSvc.SaveContentRequest) (*models.ChapterContent, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeContent) GetContent(ctx context.Context, userID, chapterID string) (*models.ChapterContent, error) {
	if f.body == "" {
		return nil, domain.ErrNotFound
	}
	return &models.ChapterContent{ChapterID: chapterID, Body: f.body, Version: 1}, nil
}

func (f *fakeContent) ListVersions(ctx context.Context, userID, chapterID string) ([]models.ChapterContentVersion, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeContent) GetVersion(ctx context.Context, userID, chapterID string, version int) (*models.ChapterContentVersion, error) {
	return nil, errors.New("not implemented")
}

// fakeProvider records the request it received and returns canned output.
type fakeProvider struct {
	name   string
	prefix string
	text   string
	err    error
	got    *domainassist.CompletionRequest
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) SupportsModel(model string) bool {
	return strings.HasPrefix(model, p.prefix)
}

func (p *fakeProvider) Complete(ctx context.Context, req *domainassist.CompletionRequest) (string, error) {
	p.got = req
	if p.err != nil {
		return "", p.err
	}
	return p.text, nil
}

func newTestService(t *testing.T, provider domainassist.Provider, content *fakeContent) domainassist.Service {
	t.Helper()
	presets, err := LoadPresets()
	if err != nil {
		t.Fatalf("LoadPresets failed: %v", err)
	}
	return NewService(
		&fakeSettings{context: "Characters:\n- Hero: brave"},
		content,
		presets,
		NewRegistry(provider),
		"fake-default",
		4096,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func TestDraft_BuildsPromptFromSettingsAndRecentBody(t *testing.T) {
	provider := &fakeProvider{name: "fake", prefix: "fake-", text: "and so the story went on"}
	svc := newTestService(t, provider, &fakeContent{body: "The gate opened at dawn."})

	text, err := svc.Draft(context.Background(), &domainassist.DraftRequest{
		UserID:       "user-1",
		ManuscriptID: "m1",
		ChapterID:    "c1",
		Preset:       "continue",
		Instruction:  "keep it slow",
	})
	if err != nil {
		t.Fatalf("Draft failed: %v", err)
	}
	if text != "and so the story went on" {
		t.Errorf("unexpected draft text %q", text)
	}

	if provider.got == nil {
		t.Fatal("provider was not invoked")
	}
	if provider.got.Model != "fake-default" {
		t.Errorf("expected default model, got %q", provider.got.Model)
	}
	if provider.got.MaxTokens != 4096 {
		t.Errorf("expected max tokens 4096, got %d", provider.got.MaxTokens)
	}
	for _, want := range []string{"Hero: brave", "The gate opened at dawn.", "keep it slow"} {
		if !strings.Contains(provider.got.User, want) {
			t.Errorf("user prompt missing %q:\n%s", want, provider.got.User)
		}
	}
	if !strings.Contains(provider.got.System, "co-writer") {
		t.Errorf("system prompt missing preset text:\n%s", provider.got.System)
	}
}

func TestDraft_EmptyChapterTolerated(t *testing.T) {
	provider := &fakeProvider{name: "fake", prefix: "fake-", text: "fresh start"}
	svc := newTestService(t, provider, &fakeContent{})

	text, err := svc.Draft(context.Background(), &domainassist.DraftRequest{
		UserID:       "user-1",
		ManuscriptID: "m1",
		ChapterID:    "c1",
		Preset:       "continue",
	})
	if err != nil {
		t.Fatalf("Draft failed: %v", err)
	}
	if text != "fresh start" {
		t.Errorf("unexpected draft text %q", text)
	}
}

func TestDraft_TruncatesRecentBody(t *testing.T) {
	long := strings.Repeat("字", 3000) + "END"
	provider := &fakeProvider{name: "fake", prefix: "fake-", text: "ok"}
	svc := newTestService(t, provider, &fakeContent{body: long})

	if _, err := svc.Draft(context.Background(), &domainassist.DraftRequest{
		UserID: "user-1", ManuscriptID: "m1", ChapterID: "c1", Preset: "continue",
	}); err != nil {
		t.Fatalf("Draft failed: %v", err)
	}

	if !strings.Contains(provider.got.User, "END") {
		t.Error("expected the tail of the body in the prompt")
	}
	if strings.Count(provider.got.User, "字") != recentBodyRunes-3 {
		t.Errorf("expected body truncated to %d runes, got %d CJK runes",
			recentBodyRunes, strings.Count(provider.got.User, "字"))
	}
}

func TestDraft_ValidationErrors(t *testing.T) {
	provider := &fakeProvider{name: "fake", prefix: "fake-", text: "ok"}
	svc := newTestService(t, provider, &fakeContent{})

	tests := []struct {
		name string
		req  *domainassist.DraftRequest
	}{
		{"missing manuscript", &domainassist.DraftRequest{ChapterID: "c1", Preset: "continue"}},
		{"missing chapter", &domainassist.DraftRequest{ManuscriptID: "m1", Preset: "continue"}},
		{"missing preset", &domainassist.DraftRequest{ManuscriptID: "m1", ChapterID: "c1"}},
		{"unknown preset", &domainassist.DraftRequest{ManuscriptID: "m1", ChapterID: "c1", Preset: "nope"}},
		{"unroutable model", &domainassist.DraftRequest{ManuscriptID: "m1", ChapterID: "c1", Preset: "continue", Model: "gpt-x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.UserID = "user-1"
			if _, err := svc.Draft(context.Background(), tt.req); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestDraft_ProviderFailureHidden(t *testing.T) {
	provider := &fakeProvider{name: "fake", prefix: "fake-", err: errors.New("upstream 500: secret detail")}
	svc := newTestService(t, provider, &fakeContent{})

	_, err := svc.Draft(context.Background(), &domainassist.DraftRequest{
		UserID: "user-1", ManuscriptID: "m1", ChapterID: "c1", Preset: "continue",
	})
	if !errors.Is(err, domain.ErrAssistance) {
		t.Fatalf("expected assistance error, got %v", err)
	}
	if strings.Contains(err.Error(), "secret detail") {
		t.Errorf("provider cause leaked into error message: %v", err)
	}
}

func TestRegistry_FirstMatchWins(t *testing.T) {
	a := &fakeProvider{name: "a", prefix: "shared-"}
	b := &fakeProvider{name: "b", prefix: "shared-"}
	registry := NewRegistry(a, b)

	p, err := registry.ProviderFor("shared-model")
	if err != nil {
		t.Fatalf("ProviderFor failed: %v", err)
	}
	if p.Name() != "a" {
		t.Errorf("expected first provider, got %q", p.Name())
	}

	if _, err := registry.ProviderFor("other-model"); err == nil {
		t.Error("expected error for unrouted model")
	}
}

func TestLoremProvider(t *testing.T) {
	p := NewLoremProvider()

	if !p.SupportsModel("lorem-fast") || p.SupportsModel("claude-haiku") {
		t.Error("lorem provider should claim only lorem- models")
	}

	text, err := p.Complete(context.Background(), &domainassist.CompletionRequest{
		Model:     "lorem-fast",
		MaxTokens: 100,
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if len(text) < 400 {
		t.Errorf("expected at least 400 chars for a 100 token budget, got %d", len(text))
	}

	if _, err := p.Complete(context.Background(), &domainassist.CompletionRequest{Model: "claude-x"}); err == nil {
		t.Error("expected error for unsupported model")
	}
}
