package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"panel-shell/internal/placement"
)

// Config holds all application configuration
type Config struct {
	// Panel window settings
	Panel PanelConfig `json:"panel"`

	// Global hotkey bindings
	Hotkeys HotkeysConfig `json:"hotkeys"`

	// Monitor watcher poll interval in seconds (0 disables the watcher)
	WatcherIntervalSeconds int `json:"watcher_interval_seconds"`

	// Log level: debug, info, warn, error
	LogLevel string `json:"log_level"`
}

// PanelConfig holds panel window settings
type PanelConfig struct {
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Margin       int    `json:"margin"` // pixel offset from the anchored edge
	DefaultMode  string `json:"default_mode"`
	AlwaysOnTop  bool   `json:"always_on_top"`
	ShowOnLaunch bool   `json:"show_on_launch"`
}

// HotkeysConfig holds the global shortcut bindings
type HotkeysConfig struct {
	// Any of these shows and focuses the panel
	Show []string `json:"show"`

	// Toggles the collapsed state
	ToggleCollapse string `json:"toggle_collapse"`
}

// Service manages configuration persistence
type Service struct {
	config   *Config
	filePath string
}

// New creates a new config service rooted at ~/.panel-shell/config.json
func New() (*Service, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".panel-shell")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	return NewAt(filepath.Join(configDir, "config.json"))
}

// NewAt creates a config service backed by an explicit file path.
func NewAt(configPath string) (*Service, error) {
	service := &Service{
		filePath: configPath,
		config:   getDefaultConfig(),
	}

	// Load existing config if it exists, otherwise create a default config file
	if _, err := os.Stat(configPath); err == nil {
		if err := service.Load(); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	} else {
		if err := service.Save(); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	return service, nil
}

// getDefaultConfig returns the default configuration
func getDefaultConfig() *Config {
	return &Config{
		Panel: PanelConfig{
			Width:        420,
			Height:       110,
			Margin:       placement.DefaultMargin,
			DefaultMode:  "top",
			AlwaysOnTop:  true,
			ShowOnLaunch: true,
		},
		Hotkeys: HotkeysConfig{
			Show:           []string{"ctrl+space", "alt+super+space", "super+shift+space"},
			ToggleCollapse: "super+1",
		},
		WatcherIntervalSeconds: 5,
		LogLevel:               "info",
	}
}

// Get returns the current configuration
func (s *Service) Get() *Config {
	return s.config
}

// Set updates the configuration
func (s *Service) Set(config *Config) {
	s.config = config
}

// Load loads configuration from file
func (s *Service) Load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, s.config)
}

// Save saves configuration to file
func (s *Service) Save() error {
	data, err := json.MarshalIndent(s.config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.filePath, data, 0644)
}

// Path returns the full path to the configuration file
func (s *Service) Path() string {
	return s.filePath
}

// UpdatePanel updates panel configuration and persists it
func (s *Service) UpdatePanel(panel PanelConfig) error {
	s.config.Panel = panel
	return s.Save()
}
