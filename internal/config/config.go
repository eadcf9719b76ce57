// Package config loads the mealform CLI configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-mealform/pkg/entity"
)

const (
	DefaultListen   = ":8080"
	DefaultLogLevel = "info"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the on-disk configuration.
//
//	listen: ":8080"
//	log_level: debug
//	separator: " | "
//	theme:
//	  name: acme
//	  variant: dark
//	  tokens: {accent: "#0a7"}
//	entries:
//	  - {name: Breakfast, ingredients: [Eggs, Bacon]}
//	  - {kind: workout, name: Run, type: endurance, endurance: {distance: 5, duration: 25}}
type Config struct {
	Listen    string           `yaml:"listen"`
	BasePath  string           `yaml:"base_path"`
	LogLevel  string           `yaml:"log_level"`
	Separator string           `yaml:"separator"`
	Theme     Theme            `yaml:"theme"`
	Entries   []map[string]any `yaml:"entries"`
}

// Theme describes the colour tokens handed to renderers.
type Theme struct {
	Name       string                       `yaml:"name"`
	Variant    string                       `yaml:"variant"`
	Tokens     map[string]string            `yaml:"tokens"`
	Stylesheet string                       `yaml:"stylesheet"`
	Variants   map[string]map[string]string `yaml:"variants"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Listen:   DefaultListen,
		LogLevel: DefaultLogLevel,
	}
}

// Load reads path over the defaults. An empty path yields Default().
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the log level and the seed entries.
func (c Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if _, err := c.SeedEntries(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	raw := strings.TrimSpace(c.LogLevel)
	if raw == "" {
		raw = DefaultLogLevel
	}
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return level, nil
}

// SeedEntries decodes the configured entries through the entity schema.
func (c Config) SeedEntries() ([]entity.Entry, error) {
	if len(c.Entries) == 0 {
		return nil, nil
	}
	entries, err := entity.DecodeAll(c.Entries)
	if err != nil {
		return nil, fmt.Errorf("%w: entries: %w", ErrInvalidConfig, err)
	}
	return entries, nil
}

// RendererTheme resolves the theme section into a renderer config, or nil when
// no theme is configured. Tokens become "--mealform-<token>" CSS variables and
// the selected variant's tokens override the base ones.
func (c Config) RendererTheme() *theme.RendererConfig {
	t := c.Theme
	if t.Name == "" && len(t.Tokens) == 0 && t.Stylesheet == "" {
		return nil
	}

	tokens := make(map[string]string, len(t.Tokens))
	for key, value := range t.Tokens {
		tokens[key] = value
	}
	for key, value := range t.Variants[t.Variant] {
		tokens[key] = value
	}
	vars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		vars["--mealform-"+key] = value
	}

	stylesheet := t.Stylesheet
	return &theme.RendererConfig{
		Theme:   t.Name,
		Variant: t.Variant,
		Tokens:  tokens,
		CSSVars: vars,
		AssetURL: func(key string) string {
			if key == "mealform.stylesheet" {
				return stylesheet
			}
			return ""
		},
	}
}
