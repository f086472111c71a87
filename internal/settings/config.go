package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("settings: invalid config")

// Config holds all viewer configuration
type Config struct {
	ScreenWidth       int     `json:"screen_width"`
	ScreenHeight      int     `json:"screen_height"`
	Fullscreen        bool    `json:"fullscreen"`
	VSync             bool    `json:"vsync"`
	Columns           int     `json:"columns"`
	Rows              int     `json:"rows"`
	ShowProgress      bool    `json:"show_progress"`
	StrictContainers  bool    `json:"strict_containers"`
	AbortOnCoverError bool    `json:"abort_on_cover_error"`
	SoundsPath        string  `json:"sounds_path"`
	SFXVolume         float64 `json:"sfx_volume"`
	Muted             bool    `json:"muted"`
	LogLevel          string  `json:"log_level"`
	DebugMode         bool    `json:"debug_mode"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		ScreenWidth:  800,
		ScreenHeight: 600,
		Fullscreen:   false,
		VSync:        true,
		Columns:      4,
		Rows:         3,
		ShowProgress: true,
		SoundsPath:   "./assets/sounds",
		SFXVolume:    0.8,
		LogLevel:     "info",
	}
}

// Validate reports the first out-of-range field.
func (c *Config) Validate() error {
	switch {
	case c.ScreenWidth <= 0 || c.ScreenHeight <= 0:
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalidConfig, c.ScreenWidth, c.ScreenHeight)
	case c.Columns <= 0 || c.Rows <= 0:
		return fmt.Errorf("%w: grid %dx%d", ErrInvalidConfig, c.Columns, c.Rows)
	case c.SFXVolume < 0 || c.SFXVolume > 1:
		return fmt.Errorf("%w: sfx_volume %.2f not in [0,1]", ErrInvalidConfig, c.SFXVolume)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel. An empty level means info.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return level, nil
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger for load and save events.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// Manager handles configuration loading and saving
type Manager struct {
	config     *Config
	configPath string
	logger     *slog.Logger
}

func (m *Manager) log() *slog.Logger {
	if m.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return m.logger
}

// NewManager creates a new configuration manager
func NewManager(configPath string, opts ...Option) *Manager {
	m := &Manager{
		config:     DefaultConfig(),
		configPath: configPath,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load loads configuration from file. A missing file is created with the
// defaults.
func (m *Manager) Load() error {
	data, err := os.ReadFile(m.configPath)
	if errors.Is(err, os.ErrNotExist) {
		m.log().Info("Config file not found, using defaults", "path", m.configPath)
		return m.Save()
	}
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("%s: %w", m.configPath, err)
	}
	m.config = config

	m.log().Info("Loaded configuration", "path", m.configPath)
	return nil
}

// Save writes the current configuration to a temporary file next to the
// config path and renames it into place.
func (m *Manager) Save() error {
	if err := m.config.Validate(); err != nil {
		return fmt.Errorf("refusing to save: %w", err)
	}

	dir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(m.configPath)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary config file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Rename(tmp.Name(), m.configPath); err != nil {
		return fmt.Errorf("failed to replace config file: %w", err)
	}

	m.log().Info("Saved configuration", "path", m.configPath)
	return nil
}

// Config returns the current configuration. Changes to it are persisted by
// the next Save.
func (m *Manager) Config() *Config {
	return m.config
}
