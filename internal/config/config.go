package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/andy/pomodolist/internal/domain"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Database settings
	Database DatabaseConfig `yaml:"database"`

	// Countdown settings
	Timer TimerConfig `yaml:"timer"`

	// Task tracker settings
	Tracker TrackerConfig `yaml:"tracker"`

	Log LogConfig `yaml:"log"`
}

type DatabaseConfig struct {
	Path      string `yaml:"path"`      // Path to SQLite database
	Encrypted bool   `yaml:"encrypted"` // SQLCipher with a keyring-held key
}

type TimerConfig struct {
	DefaultDuration time.Duration  `yaml:"default_duration"`
	Presets         []PresetConfig `yaml:"presets"`
}

type PresetConfig struct {
	Label    string        `yaml:"label"`
	Duration time.Duration `yaml:"duration"`
}

type TrackerConfig struct {
	// Exclusive stops every other running task when one is started
	Exclusive bool `yaml:"exclusive"`
}

type LogConfig struct {
	Level string `yaml:"level"` // zerolog level name
	Path  string `yaml:"path"`
}

// DefaultConfigPath returns ~/.config/pomodolist/config.yaml
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", "pomodolist", "config.yaml")
	}
	return filepath.Join(homeDir, ".config", "pomodolist", "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	base := filepath.Join(homeDir, ".config", "pomodolist")

	return &Config{
		Database: DatabaseConfig{
			Path:      filepath.Join(base, "pomodolist.db"),
			Encrypted: true,
		},
		Timer: TimerConfig{
			DefaultDuration: 25 * time.Minute,
			Presets: []PresetConfig{
				{Label: "5 Minutes", Duration: 5 * time.Minute},
				{Label: "15 Minutes", Duration: 15 * time.Minute},
				{Label: "25 Minutes", Duration: 25 * time.Minute},
				{Label: "1 Hour", Duration: time.Hour},
			},
		},
		Log: LogConfig{
			Level: "info",
			Path:  filepath.Join(base, "pomodolist.log"),
		},
	}
}

// Load loads config from the given path, or returns defaults if file doesn't exist
func Load(path string) (*Config, error) {
	// If file doesn't exist, return defaults
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Validate rejects settings the services cannot run with
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return errors.New("database.path is required")
	}
	if c.Timer.DefaultDuration < 0 {
		return errors.New("timer.default_duration cannot be negative")
	}
	for _, p := range c.Timer.Presets {
		if p.Label == "" {
			return errors.New("timer preset label is required")
		}
	}
	return nil
}

// Presets returns the configured countdown presets as domain values
func (c *Config) Presets() []domain.Preset {
	presets := make([]domain.Preset, 0, len(c.Timer.Presets))
	for _, p := range c.Timer.Presets {
		presets = append(presets, domain.Preset{Label: p.Label, Duration: p.Duration})
	}
	return presets
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates the directories for the database and log file
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(filepath.Dir(c.Database.Path), 0755); err != nil {
		return err
	}

	if c.Log.Path != "" {
		if err := os.MkdirAll(filepath.Dir(c.Log.Path), 0755); err != nil {
			return err
		}
	}

	return nil
}
