package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/empress/internal/mpris"
)

type Config struct {
	MPRIS  MPRISConfig  `koanf:"mpris"`
	Log    LogConfig    `koanf:"log"`
	Player PlayerConfig `koanf:"player"`
	Notify NotifyConfig `koanf:"notify"`
}

// MPRISConfig holds what the media player announces on the bus.
type MPRISConfig struct {
	Name                string   `koanf:"name"` // bus name suffix, or a full name
	Identity            string   `koanf:"identity"`
	DesktopEntry        string   `koanf:"desktop_entry"`
	PollIntervalMS      int      `koanf:"poll_interval_ms"`
	QueueSize           int      `koanf:"queue_size"`
	SupportedURISchemes []string `koanf:"supported_uri_schemes"`
	SupportedMimeTypes  []string `koanf:"supported_mime_types"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `koanf:"level"`  // logrus level name (default: "info")
	Format string `koanf:"format"` // "text" or "json" (default: "text")
	File   string `koanf:"file"`   // empty means stderr
}

// PlayerConfig holds settings of the built-in player.
type PlayerConfig struct {
	Shuffle bool `koanf:"shuffle"`
}

// NotifyConfig controls desktop notifications on track change.
type NotifyConfig struct {
	Enabled   bool `koanf:"enabled"`
	TimeoutMS int  `koanf:"timeout_ms"` // -1 lets the server decide
}

// Default returns the scalar defaults. Load fills list defaults.
func Default() *Config {
	return &Config{
		MPRIS: MPRISConfig{
			Name:           mpris.DefaultName,
			Identity:       mpris.DefaultIdentity,
			PollIntervalMS: int(mpris.DefaultPollInterval / time.Millisecond),
			QueueSize:      mpris.DefaultQueueSize,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Notify: NotifyConfig{
			TimeoutMS: 5000,
		},
	}
}

// Load reads every existing config file in search order, later files
// overriding earlier ones. An explicit path must exist.
func Load(explicit string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("loading %s: %w", path, err)
			}
		}
	}
	if explicit != "" {
		path := expandPath(explicit)
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.MPRIS.PollIntervalMS <= 0 {
		cfg.MPRIS.PollIntervalMS = int(mpris.DefaultPollInterval / time.Millisecond)
	}
	if cfg.MPRIS.QueueSize <= 0 {
		cfg.MPRIS.QueueSize = mpris.DefaultQueueSize
	}
	// Slices are filled after unmarshal so file values replace them whole.
	if cfg.MPRIS.SupportedURISchemes == nil {
		cfg.MPRIS.SupportedURISchemes = slices.Clone(mpris.DefaultURISchemes)
	}
	if cfg.MPRIS.SupportedMimeTypes == nil {
		cfg.MPRIS.SupportedMimeTypes = slices.Clone(mpris.DefaultMimeTypes)
	}
	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/empress/config.toml
		filepath.Join(xdg.ConfigHome, "empress", "config.toml"),
		// 2. ./config.toml (pwd)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// PollInterval returns the configured poll interval.
func (c MPRISConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}

// Options converts the section into service options.
func (c MPRISConfig) Options() mpris.Options {
	return mpris.Options{
		Name:         c.Name,
		Identity:     c.Identity,
		DesktopEntry: c.DesktopEntry,
		URISchemes:   c.SupportedURISchemes,
		MimeTypes:    c.SupportedMimeTypes,
		PollInterval: c.PollInterval(),
		QueueSize:    c.QueueSize,
	}
}
