package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	appName        = "subtimeline"
	configFileName = "config.toml"

	defaultMaxTracks        = 2
	maxTracksLimit          = 4
	defaultFallbackLanguage = "en"
	defaultLogLevel         = "info"
)

type Config struct {
	// Subtitle track settings (shared by every track of a session)
	Subtitles SubtitlesConfig `koanf:"subtitles"`

	// Logging settings
	Log LogConfig `koanf:"log"`
}

// SubtitlesConfig holds the session-wide subtitle settings.
type SubtitlesConfig struct {
	Enabled          *bool    `koanf:"enabled"`           // display subtitles (default: true)
	Max              int      `koanf:"max"`               // number of tracks (1-4, default: 2)
	FallbackLanguage string   `koanf:"fallback_language"` // used when a track's language is unknown (default: "en")
	Languages        []string `koanf:"languages"`         // per-slot language tags, e.g. ["en", "ja"]
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `koanf:"level"` // "debug", "info", "warn", "error" (default: "info")
	File  string `koanf:"file"`  // log file path; empty disables logging to file
}

func Load() (*Config, error) {
	return load(getConfigPaths())
}

// LoadFile loads configuration from a single file.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return load([]string{path})
}

func load(paths []string) (*Config, error) {
	k := koanf.New(".")

	// Last path wins
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Subtitles.FallbackLanguage = strings.TrimSpace(cfg.Subtitles.FallbackLanguage)
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. $XDG_CONFIG_HOME/subtimeline/config.toml
	if path, err := xdg.SearchConfigFile(filepath.Join(appName, configFileName)); err == nil {
		paths = append(paths, path)
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, configFileName)

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetSubtitlesConfig returns the subtitle configuration with defaults applied.
func (c *Config) GetSubtitlesConfig() SubtitlesConfig {
	cfg := c.Subtitles

	if cfg.Enabled == nil {
		enabled := true
		cfg.Enabled = &enabled
	}
	if cfg.Max <= 0 || cfg.Max > maxTracksLimit {
		cfg.Max = defaultMaxTracks
	}
	if cfg.FallbackLanguage == "" {
		cfg.FallbackLanguage = defaultFallbackLanguage
	}

	return cfg
}

// GetLogConfig returns the logging configuration with defaults applied.
func (c *Config) GetLogConfig() LogConfig {
	cfg := c.Log
	switch cfg.Level {
	case "debug", "info", "warn", "error":
	default:
		cfg.Level = defaultLogLevel
	}
	return cfg
}

// IsEnabled returns true unless subtitles were explicitly disabled.
func (c SubtitlesConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// LanguageFor returns the configured language tag for a track slot, or ""
// when none is configured.
func (c SubtitlesConfig) LanguageFor(slot int) string {
	if slot < 0 || slot >= len(c.Languages) {
		return ""
	}
	return strings.TrimSpace(c.Languages[slot])
}
