// Package config loads calc.toml and CALC_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/kpgusev/calculator/internal/calc"
	"github.com/kpgusev/calculator/internal/store"
)

// FileName is the config file searched for from the working directory up.
const FileName = "calc.toml"

// App names the per-user config, state and cache directories.
const App = "calc"

// Switch values accepted by ui.mode and ui.color.
const (
	SwitchAuto = "auto"
	SwitchOn   = "on"
	SwitchOff  = "off"
)

// Config is the resolved calculator configuration.
type Config struct {
	// Path is the file the configuration was read from, empty for defaults.
	Path string `toml:"-"`

	UI      UIConfig      `toml:"ui"`
	History HistoryConfig `toml:"history"`
	Cache   CacheConfig   `toml:"cache"`
	Batch   BatchConfig   `toml:"batch"`
}

type UIConfig struct {
	Mode  string `toml:"mode" env:"CALC_UI"`
	Color string `toml:"color" env:"CALC_COLOR"`
}

type HistoryConfig struct {
	Enabled bool   `toml:"enabled" env:"CALC_HISTORY"`
	Path    string `toml:"path" env:"CALC_HISTORY_PATH"`
	Limit   int    `toml:"limit" env:"CALC_HISTORY_LIMIT"`
}

type CacheConfig struct {
	Enabled   bool   `toml:"enabled" env:"CALC_CACHE"`
	Dir       string `toml:"dir" env:"CALC_CACHE_DIR"`
	MinDigits int    `toml:"min_digits" env:"CALC_CACHE_MIN_DIGITS"`
}

type BatchConfig struct {
	Jobs int `toml:"jobs" env:"CALC_JOBS"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		UI:      UIConfig{Mode: SwitchAuto, Color: SwitchAuto},
		History: HistoryConfig{Enabled: true, Limit: calc.DefaultHistoryLimit},
		Cache:   CacheConfig{Enabled: true, MinDigits: store.DefaultMinDigits},
		Batch:   BatchConfig{Jobs: runtime.GOMAXPROCS(0)},
	}
}

// Options control where Load looks for a config file.
type Options struct {
	// File is an explicit config path; it must exist.
	File string
	// WorkDir starts the upward search for calc.toml. Defaults to ".".
	WorkDir string
	// SkipUserConfig disables the $XDG_CONFIG_HOME fallback.
	SkipUserConfig bool
}

// Load resolves defaults, the config file and the environment, in that order,
// and validates the result.
func Load(opts Options) (Config, error) {
	cfg := Default()

	path, err := locate(opts)
	if err != nil {
		return Config{}, err
	}
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
		cfg.Path = path
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		if cfg.Path != "" {
			return Config{}, fmt.Errorf("%s: %w", cfg.Path, err)
		}
		return Config{}, err
	}
	return cfg, nil
}

func locate(opts Options) (string, error) {
	if opts.File != "" {
		if _, err := os.Stat(opts.File); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return opts.File, nil
	}
	path, ok, err := FindFile(opts.WorkDir)
	if err != nil || ok {
		return path, err
	}
	if opts.SkipUserConfig {
		return "", nil
	}
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", nil
		}
		base = filepath.Join(home, ".config")
	}
	candidate := filepath.Join(base, App, FileName)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", nil
}

// FindFile walks from startDir towards the filesystem root looking for
// calc.toml.
func FindFile(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func decodeFile(path string, cfg *Config) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	root := filepath.Dir(path)
	if meta.IsDefined("history", "path") && cfg.History.Path != "" && !filepath.IsAbs(cfg.History.Path) {
		cfg.History.Path = filepath.Join(root, cfg.History.Path)
	}
	if meta.IsDefined("cache", "dir") && cfg.Cache.Dir != "" && !filepath.IsAbs(cfg.Cache.Dir) {
		cfg.Cache.Dir = filepath.Join(root, cfg.Cache.Dir)
	}
	return nil
}

// Validate reports the first invalid setting, naming its key.
func (c Config) Validate() error {
	if err := checkSwitch("ui.mode", c.UI.Mode); err != nil {
		return err
	}
	if err := checkSwitch("ui.color", c.UI.Color); err != nil {
		return err
	}
	if c.History.Limit <= 0 {
		return fmt.Errorf("history.limit: must be positive, got %d", c.History.Limit)
	}
	if c.Cache.MinDigits < 0 {
		return fmt.Errorf("cache.min_digits: must not be negative, got %d", c.Cache.MinDigits)
	}
	if c.Batch.Jobs <= 0 {
		return fmt.Errorf("batch.jobs: must be positive, got %d", c.Batch.Jobs)
	}
	return nil
}

func checkSwitch(key, v string) error {
	switch v {
	case SwitchAuto, SwitchOn, SwitchOff:
		return nil
	default:
		return fmt.Errorf("%s: invalid value %q (expected: auto|on|off)", key, v)
	}
}

// HistoryFile returns the history path, defaulting to the user state dir.
func (c Config) HistoryFile() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	dir, err := store.StateDir(App)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.mp"), nil
}

// CacheDir returns the result cache root, defaulting to the user cache dir.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	return store.CacheDir(App)
}
