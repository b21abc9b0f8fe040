package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Defaults applied when the config file omits a value.
const (
	DefaultGoal         = 2000
	DefaultTheme        = "flexoki-dark"
	DefaultDaemonAddr   = "127.0.0.1:8797"
	DefaultEventsBuffer = 200
)

// Config holds all kcal configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
	Daemon     DaemonConfig     `toml:"daemon"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DataDir     string `toml:"data_dir,omitempty"`
	DefaultGoal int    `toml:"default_goal"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DaemonConfig holds settings for the local HTTP service.
type DaemonConfig struct {
	Addr         string `toml:"addr"`
	EventsBuffer int    `toml:"events_buffer"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultGoal: DefaultGoal,
		},
		Appearance: AppearanceConfig{
			Theme: DefaultTheme,
		},
		Daemon: DaemonConfig{
			Addr:         DefaultDaemonAddr,
			EventsBuffer: DefaultEventsBuffer,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "kcal")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "kcal")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DefaultDataDir returns the XDG-compliant data directory.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "kcal")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "kcal")
}

// DataDir resolves the data directory: KCAL_DATA_DIR, then the config
// file, then the XDG default.
func DataDir(cfg Config) string {
	if dir := os.Getenv("KCAL_DATA_DIR"); dir != "" {
		return dir
	}
	if cfg.General.DataDir != "" {
		return cfg.General.DataDir
	}
	return DefaultDataDir()
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	cfg.normalize()

	return cfg, nil
}

// normalize replaces out-of-range values with defaults.
func (c *Config) normalize() {
	if c.General.DefaultGoal <= 0 {
		c.General.DefaultGoal = DefaultGoal
	}
	if c.Appearance.Theme == "" {
		c.Appearance.Theme = DefaultTheme
	}
	if c.Daemon.Addr == "" {
		c.Daemon.Addr = DefaultDaemonAddr
	}
	if c.Daemon.EventsBuffer <= 0 {
		c.Daemon.EventsBuffer = DefaultEventsBuffer
	}
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
