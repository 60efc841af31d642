// Package config loads and saves the planbook TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const appName = "planbook"

// DataDirEnv overrides where the snapshot database lives.
const DataDirEnv = "PLANBOOK_DATA_DIR"

// Config holds all planbook configuration.
type Config struct {
	General       GeneralConfig       `toml:"general"`
	Notifications NotificationsConfig `toml:"notifications"`
	Appearance    AppearanceConfig    `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DataDir        string `toml:"data_dir,omitempty"`
	CurrencySymbol string `toml:"currency_symbol"`
	DefaultPeriod  string `toml:"default_period"`
}

// NotificationsConfig holds how long notices stay visible.
type NotificationsConfig struct {
	DurationMS    int `toml:"duration_ms"`
	GoalReachedMS int `toml:"goal_reached_ms"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			CurrencySymbol: "₽",
			DefaultPeriod:  "month",
		},
		Notifications: NotificationsConfig{
			DurationMS:    3000,
			GoalReachedMS: 5000,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// NotificationDuration is the default visibility of a notice.
func (c Config) NotificationDuration() time.Duration {
	return time.Duration(c.Notifications.DurationMS) * time.Millisecond
}

// GoalReachedDuration is the visibility of the "goal reached" notice.
func (c Config) GoalReachedDuration() time.Duration {
	return time.Duration(c.Notifications.GoalReachedMS) * time.Millisecond
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir resolves where snapshots are stored: the environment override,
// then the config file, then the XDG data directory.
func (c Config) DataDir() string {
	if dir := os.Getenv(DataDirEnv); dir != "" {
		return dir
	}
	if c.General.DataDir != "" {
		return c.General.DataDir
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", appName)
}

// DataPath returns the snapshot database file.
func (c Config) DataPath() string {
	return filepath.Join(c.DataDir(), appName+".db")
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

	return cfg, nil
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

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
