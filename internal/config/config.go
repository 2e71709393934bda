package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config captures the rendering and suggestion configuration for a project.
type Config struct {
	Version     int               `yaml:"version"`
	Display     DisplayConfig     `yaml:"display"`
	Suggestions SuggestionsConfig `yaml:"suggestions"`
	Watch       WatchConfig       `yaml:"watch"`
}

// DisplayConfig controls how groups are rendered.
type DisplayConfig struct {
	MaxRows         int   `yaml:"max_rows"`
	MaxMessages     int   `yaml:"max_messages"`
	ShowSuggestions *bool `yaml:"show_suggestions,omitempty"`
	Color           *bool `yaml:"color,omitempty"`
}

// SuggestionsConfig overrides the built-in suggestion table. Files are YAML
// mappings of error code to text, resolved relative to the project root.
type SuggestionsConfig struct {
	Header string            `yaml:"header,omitempty"`
	Errors map[string]string `yaml:"errors,omitempty"`
	Files  []string          `yaml:"files,omitempty"`
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	DebounceMS int `yaml:"debounce_ms"`
}

// ShowSuggestionsValue returns the effective show_suggestions flag.
func (d DisplayConfig) ShowSuggestionsValue() bool {
	if d.ShowSuggestions == nil {
		return true
	}
	return *d.ShowSuggestions
}

// ColorValue returns the effective color flag.
func (d DisplayConfig) ColorValue() bool {
	if d.Color == nil {
		return true
	}
	return *d.Color
}

// Debounce returns the watch debounce interval.
func (w WatchConfig) Debounce() time.Duration {
	return time.Duration(w.DebounceMS) * time.Millisecond
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Version: 1,
		Display: DisplayConfig{
			MaxRows:         20,
			MaxMessages:     10,
			ShowSuggestions: boolPtr(true),
			Color:           boolPtr(true),
		},
		Watch: WatchConfig{
			DebounceMS: 200,
		},
	}
}

// Load reads the YAML configuration from disk if it exists, otherwise returns
// the default configuration.
func Load(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults ensures nested fields fall back to sensible defaults when the
// YAML omits them.
func (c *Config) ApplyDefaults() {
	defaults := Default()

	if c.Version == 0 {
		c.Version = defaults.Version
	}
	if c.Display.MaxRows == 0 {
		c.Display.MaxRows = defaults.Display.MaxRows
	}
	if c.Display.MaxMessages == 0 {
		c.Display.MaxMessages = defaults.Display.MaxMessages
	}
	if c.Display.ShowSuggestions == nil {
		c.Display.ShowSuggestions = boolPtr(true)
	}
	if c.Display.Color == nil {
		c.Display.Color = boolPtr(true)
	}
	if c.Watch.DebounceMS == 0 {
		c.Watch.DebounceMS = defaults.Watch.DebounceMS
	}
}

// Marshal returns the YAML encoding of the configuration.
func (c Config) Marshal() ([]byte, error) {
	buf, err := yaml.Marshal(&c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return buf, nil
}

func boolPtr(v bool) *bool {
	return &v
}
