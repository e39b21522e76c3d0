package assist

import (
	"strings"
	"testing"
)

func TestLoadPresets(t *testing.T) {
	store, err := LoadPresets()
	if err != nil {
		t.Fatalf("LoadPresets failed: %v", err)
	}

	for _, name := range []string{"continue", "polish", "summarize"} {
		p, ok := store.Get(name)
		if !ok {
			t.Errorf("preset %q missing", name)
			continue
		}
		if p.System == "" || p.User == "" {
			t.Errorf("preset %q has empty templates", name)
		}
		if !strings.Contains(p.User, "{settings}") {
			t.Errorf("preset %q user template missing settings placeholder", name)
		}
	}

	if _, ok := store.Get("nonexistent"); ok {
		t.Error("expected miss for unknown preset")
	}
	if len(store.Names()) != 3 {
		t.Errorf("expected 3 presets, got %v", store.Names())
	}
}

func TestPresetRender(t *testing.T) {
	p := Preset{
		Name:   "test",
		System: "system prompt",
		User:   "Settings:\n{settings}\n\nRecent:\n{recent}\n\n{instruction}\n\nGo.",
	}

	system, user := p.Render("the settings", "the recent text", "be brief")
	if system != "system prompt" {
		t.Errorf("unexpected system prompt %q", system)
	}
	for _, want := range []string{"the settings", "the recent text", "be brief"} {
		if !strings.Contains(user, want) {
			t.Errorf("rendered prompt missing %q:\n%s", want, user)
		}
	}

	// Empty instruction leaves no blank gap
	_, user = p.Render("s", "r", "")
	if strings.Contains(user, "\n\n\n") {
		t.Errorf("rendered prompt has a triple newline:\n%q", user)
	}
	if strings.HasSuffix(user, "\n") {
		t.Errorf("rendered prompt not trimmed: %q", user)
	}
}
