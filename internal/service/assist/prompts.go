package assist

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed prompts/*.yaml
var promptFiles embed.FS

// Preset is one named prompt pair loaded from the embedded YAML.
type Preset struct {
	Name   string `yaml:"name"`
	System string `yaml:"system"`
	User   string `yaml:"user"`
}

type presetFile struct {
	Presets []Preset `yaml:"presets"`
}

// PresetStore holds the prompt presets shipped with the binary.
type PresetStore struct {
	presets map[string]Preset
}

// LoadPresets parses the embedded preset YAML.
func LoadPresets() (*PresetStore, error) {
	data, err := promptFiles.ReadFile("prompts/presets.yaml")
	if err != nil {
		return nil, fmt.Errorf("read preset file: %w", err)
	}

	var file presetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal presets: %w", err)
	}

	store := &PresetStore{presets: make(map[string]Preset, len(file.Presets))}
	for _, p := range file.Presets {
		store.presets[p.Name] = p
	}
	return store, nil
}

// Get returns the preset with the given name.
func (s *PresetStore) Get(name string) (Preset, bool) {
	p, ok := s.presets[name]
	return p, ok
}

// Names returns the available preset names.
func (s *PresetStore) Names() []string {
	names := make([]string, 0, len(s.presets))
	for name := range s.presets {
		names = append(names, name)
	}
	return names
}

// Render substitutes the settings context, recent chapter text and the
// user's free-form instruction into the preset's user template.
func (p Preset) Render(settings, recent, instruction string) (system, user string) {
	r := strings.NewReplacer(
		"{settings}", settings,
		"{recent}", recent,
		"{instruction}", strings.TrimSpace(instruction),
	)
	user = r.Replace(p.User)
	// Collapse the blank left by an empty instruction
	for strings.Contains(user, "\n\n\n") {
		user = strings.ReplaceAll(user, "\n\n\n", "\n\n")
	}
	return p.System, strings.TrimSpace(user)
}
