package dataset

import (
	"embed"
	"sort"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"

	"github.com/samdwyer/mazetokens/internal/generate"
)

// presetFS embeds the named dataset configurations at build time.
//
//go:embed presets.yaml
var presetFS embed.FS

// presetsFile represents the structure of presets.yaml.
type presetsFile struct {
	Presets []Config `yaml:"presets"`
}

// load reads and unmarshals a YAML file from the embedded filesystem.
func load[T any](filename string) (T, error) {
	var result T

	content, err := presetFS.ReadFile(filename)
	if err != nil {
		return result, errors.Wrapf(err, "failed to read embedded file %s", filename)
	}
	if err := yaml.Unmarshal(content, &result); err != nil {
		return result, errors.Wrapf(err, "failed to parse YAML from %s", filename)
	}
	return result, nil
}

// Presets returns the embedded named configs keyed by name.
func Presets() (map[string]Config, error) {
	file, err := load[presetsFile]("presets.yaml")
	if err != nil {
		return nil, err
	}
	out := make(map[string]Config, len(file.Presets))
	for _, cfg := range file.Presets {
		if cfg.Generator == "" {
			cfg.Generator = generate.DFS
		}
		if err := cfg.Validate(); err != nil {
			return nil, errors.Wrapf(err, "preset %q", cfg.Name)
		}
		if _, dup := out[cfg.Name]; dup {
			return nil, errors.Errorf("dataset: duplicate preset %q", cfg.Name)
		}
		out[cfg.Name] = cfg
	}
	return out, nil
}

// PresetNames returns the preset names, sorted.
func PresetNames() ([]string, error) {
	presets, err := Presets()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Preset returns a preset by name or by its Fname cache key.
func Preset(key string) (Config, error) {
	presets, err := Presets()
	if err != nil {
		return Config{}, err
	}
	if cfg, ok := presets[key]; ok {
		return cfg, nil
	}
	for _, cfg := range presets {
		if cfg.Fname() == key {
			return cfg, nil
		}
	}
	return Config{}, errors.Errorf("dataset: no preset named %q", key)
}

// MustPreset returns a preset, panicking on error.
func MustPreset(key string) Config {
	cfg, err := Preset(key)
	if err != nil {
		panic(err)
	}
	return cfg
}
