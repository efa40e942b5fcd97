package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/reveal/cmd/reveal/internal/frame"
	"github.com/go-drift/reveal/pkg/content"
	"github.com/go-drift/reveal/pkg/pages"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "reveal.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "REVEAL_"

// Config represents the optional reveal.yaml configuration.
type Config struct {
	// Content is a content file path. Empty means the embedded content.
	Content string        `yaml:"content,omitempty" env:"CONTENT"`
	Page    string        `yaml:"page,omitempty" env:"PAGE"`
	Log     LogConfig     `yaml:"log" envPrefix:"LOG_"`
	Timings pages.Timings `yaml:"timings" envPrefix:"TIMINGS_"`
	Frame   FrameConfig   `yaml:"frame" envPrefix:"FRAME_"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level   string `yaml:"level,omitempty" env:"LEVEL"`
	Format  string `yaml:"format,omitempty" env:"FORMAT"`
	File    string `yaml:"file,omitempty" env:"FILE"`
	Journal bool   `yaml:"journal,omitempty" env:"JOURNAL"`
}

// FrameConfig contains PNG frame settings.
type FrameConfig struct {
	Width  int `yaml:"width,omitempty" env:"WIDTH"`
	Height int `yaml:"height,omitempty" env:"HEIGHT"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	// Path is the configuration file that was read, or "".
	Path        string
	Content     *content.Content
	ContentPath string
	Page        string
	LogLevel    slog.Level
	LogFormat   string
	LogFile     string
	LogJournal  bool
	Timings     pages.Timings
	FrameWidth  int
	FrameHeight int
}

// LoadOptional reads reveal.yaml from dir if present.
func LoadOptional(dir string) (*Config, string, error) {
	path := filepath.Join(dir, FileName)
	cfg, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, "", nil
		}
		return nil, "", err
	}
	return cfg, path, nil
}

// Load reads the configuration file at path, which must exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// ParseEnv applies REVEAL_* environment overrides to target. Variables
// that are unset leave the existing value alone.
func ParseEnv(target any) error {
	return ParseEnvFrom(target, nil)
}

// ParseEnvFrom is ParseEnv reading from environ instead of the process
// environment. A nil map means the process environment.
func ParseEnvFrom(target any, environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(target, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Resolve loads the configuration (path, or reveal.yaml in dir when path
// is empty), applies environment overrides and defaults, and validates the
// result.
func Resolve(dir, path string) (*Resolved, error) {
	var (
		cfg *Config
		err error
	)
	if path != "" {
		cfg, err = Load(path)
	} else {
		cfg, path, err = LoadOptional(dir)
	}
	if err != nil {
		return nil, err
	}
	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}

	resolved, err := cfg.Resolve(dir)
	if err != nil {
		return nil, err
	}
	resolved.Path = path
	return resolved, nil
}

// Resolve applies defaults to cfg and validates it. Relative content paths
// are resolved against dir.
func (cfg *Config) Resolve(dir string) (*Resolved, error) {
	var level slog.Level
	if lvl := strings.TrimSpace(cfg.Log.Level); lvl != "" {
		if err := level.UnmarshalText([]byte(lvl)); err != nil {
			return nil, fmt.Errorf("log.level: %w", err)
		}
	}

	format := strings.ToLower(strings.TrimSpace(cfg.Log.Format))
	switch format {
	case "":
		format = "text"
	case "text", "json":
	default:
		return nil, fmt.Errorf("log.format must be text or json (got %q)", cfg.Log.Format)
	}

	page := strings.TrimSpace(cfg.Page)
	if page == "" {
		page = pages.NameAbout
	}
	if !slices.Contains(pages.Names(), page) {
		return nil, fmt.Errorf("page must be one of %v (got %q)", pages.Names(), page)
	}

	timings := cfg.Timings.WithDefaults()
	if err := timings.Validate(); err != nil {
		return nil, err
	}

	contentPath := strings.TrimSpace(cfg.Content)
	var c *content.Content
	if contentPath == "" {
		c = content.Default()
	} else {
		if !filepath.IsAbs(contentPath) {
			contentPath = filepath.Join(dir, contentPath)
		}
		loaded, err := content.Load(contentPath)
		if err != nil {
			return nil, err
		}
		c = loaded
	}

	width, height := cfg.Frame.Width, cfg.Frame.Height
	if width == 0 {
		width = 960
	}
	if height == 0 {
		height = 540
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("frame size must be positive (got %dx%d)", width, height)
	}
	if width > frame.MaxSide || height > frame.MaxSide {
		return nil, fmt.Errorf("frame size %dx%d exceeds %d per side", width, height, frame.MaxSide)
	}

	return &Resolved{
		Content:     c,
		ContentPath: contentPath,
		Page:        page,
		LogLevel:    level,
		LogFormat:   format,
		LogFile:     strings.TrimSpace(cfg.Log.File),
		LogJournal:  cfg.Log.Journal,
		Timings:     timings,
		FrameWidth:  width,
		FrameHeight: height,
	}, nil
}
