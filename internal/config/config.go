package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Playback     PlaybackConfig     `koanf:"playback"`
	State        StateConfig        `koanf:"state"`
	Catalog      CatalogConfig      `koanf:"catalog"`
	Video        VideoConfig        `koanf:"video"`
	Share        ShareConfig        `koanf:"share"`
	Subscription SubscriptionConfig `koanf:"subscription"`
	Log          LogConfig          `koanf:"log"`
	UI           UIConfig           `koanf:"ui"`
}

// PlaybackConfig tunes the media adapter and the playback store.
type PlaybackConfig struct {
	AutoAdvance        bool          `koanf:"auto_advance" default:"true"`
	RetryAttempts      int           `koanf:"retry_attempts" default:"2" validate:"gte=0,lte=10"`
	RetryBackoff       time.Duration `koanf:"retry_backoff" default:"1s" validate:"gte=0"`
	TimeUpdateInterval time.Duration `koanf:"time_update_interval" default:"250ms" validate:"gt=0"`
	RequireGesture     bool          `koanf:"require_gesture"` // refuse to play before the first key press
}

// StateConfig selects where playback state is kept.
type StateConfig struct {
	Backend string `koanf:"backend" default:"sqlite" validate:"oneof=sqlite bolt memory"`
	Path    string `koanf:"path"` // empty uses the XDG data dir
}

type CatalogConfig struct {
	Path  string `koanf:"path"`
	Watch bool   `koanf:"watch" default:"true"`
}

// VideoConfig holds the embedded video bridge. An empty Listen disables it.
type VideoConfig struct {
	Listen string `koanf:"listen" validate:"omitempty,hostname_port"`
}

type ShareConfig struct {
	BaseURL string `koanf:"base_url" default:"https://eko-mantras.web.app" validate:"url"`
	Ref     string `koanf:"ref"` // appended to playlist links
}

// SubscriptionConfig decides which playlists may be played.
type SubscriptionConfig struct {
	Entitled      bool     `koanf:"entitled"`
	FreePlaylists []string `koanf:"free_playlists"`
}

type LogConfig struct {
	Level string `koanf:"level" default:"info" validate:"oneof=debug info warn error"`
	File  string `koanf:"file"` // empty uses the XDG state dir
}

type UIConfig struct {
	ReduceTransparency bool   `koanf:"reduce_transparency"`
	Icons              string `koanf:"icons" default:"unicode" validate:"oneof=nerd unicode none"`
	Notifications      bool   `koanf:"notifications" default:"true"` // desktop popup on track change
}

// Load reads config files, .env and EKO_* environment overrides.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrap(err, "failed to read .env")
	}
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the given TOML files in order (last wins), skipping missing
// ones, then applies environment overrides and validates.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, "failed to parse %s", path)
			}
		}
	}

	// Defaults go in first so that explicit false or zero values in a file
	// are not overwritten.
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}

	cfg.overrideFromEnv()

	cfg.Catalog.Path = expandPath(cfg.Catalog.Path)
	cfg.State.Path = expandPath(cfg.State.Path)
	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.Share.BaseURL = strings.TrimSuffix(cfg.Share.BaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}
	return cfg, nil
}

func (c *Config) overrideFromEnv() {
	if v := os.Getenv("EKO_CATALOG"); v != "" {
		c.Catalog.Path = v
	}
	if v := os.Getenv("EKO_STATE_BACKEND"); v != "" {
		c.State.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("EKO_LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}

// HasVideo returns true if the video bridge should be started.
func (c *Config) HasVideo() bool {
	return c.Video.Listen != ""
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. $XDG_CONFIG_HOME/eko/config.toml
	paths = append(paths, filepath.Join(xdg.ConfigHome, "eko", "config.toml"))

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

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
