// Package config provides configuration management for Questlog.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the Questlog application.
type Config struct {
	FirstRun      bool               `mapstructure:"first_run"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Theme         ThemeConfig        `mapstructure:"theme"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// NotificationConfig holds desktop notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Sound   bool `mapstructure:"sound"`
}

// ThemeConfig holds theme customization settings (colors and icons).
type ThemeConfig struct {
	ColorAccent string `mapstructure:"color_accent"`
	ColorMuted  string `mapstructure:"color_muted"`
	ColorGood   string `mapstructure:"color_good"`
	ColorGold   string `mapstructure:"color_gold"`
	IconApp     string `mapstructure:"icon_app"`
	IconDone    string `mapstructure:"icon_done"`
	IconPending string `mapstructure:"icon_pending"`
	IconStreak  string `mapstructure:"icon_streak"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorAccent: "#9B59B6",
		ColorMuted:  "#6B7280",
		ColorGood:   "#2ECC71",
		ColorGold:   "#F1C40F",
		IconApp:     "🗺️",
		IconDone:    "✅",
		IconPending: "⭕",
		IconStreak:  "🔥",
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		FirstRun: true,
		Storage: StorageConfig{
			DataDir: "~/.questlog/data",
		},
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   true,
		},
		Theme: DefaultThemeConfig(),
	}
}

// Load loads the configuration from the config file, creating it with
// defaults on first run.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	setDefaults()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Storage.DataDir, err = expandDataDir(cfg.Storage.DataDir)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save saves the configuration to the config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	viper.Set("first_run", cfg.FirstRun)
	viper.Set("storage.data_dir", cfg.Storage.DataDir)
	viper.Set("notifications.enabled", cfg.Notifications.Enabled)
	viper.Set("notifications.sound", cfg.Notifications.Sound)
	viper.Set("theme.color_accent", cfg.Theme.ColorAccent)
	viper.Set("theme.color_muted", cfg.Theme.ColorMuted)
	viper.Set("theme.color_good", cfg.Theme.ColorGood)
	viper.Set("theme.color_gold", cfg.Theme.ColorGold)
	viper.Set("theme.icon_app", cfg.Theme.IconApp)
	viper.Set("theme.icon_done", cfg.Theme.IconDone)
	viper.Set("theme.icon_pending", cfg.Theme.IconPending)
	viper.Set("theme.icon_streak", cfg.Theme.IconStreak)

	return viper.WriteConfig()
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".questlog", "config.toml"), nil
}

// expandDataDir resolves the ~ prefix and the empty default to an
// absolute data directory path.
func expandDataDir(dataDir string) (string, error) {
	if dataDir == "" {
		dataDir = "~/.questlog/data"
	}
	if strings.HasPrefix(dataDir, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(homeDir, dataDir[2:]), nil
	}
	return dataDir, nil
}

// setDefaults sets default values for viper.
func setDefaults() {
	viper.SetDefault("first_run", true)
	viper.SetDefault("storage.data_dir", "~/.questlog/data")
	viper.SetDefault("notifications.enabled", true)
	viper.SetDefault("notifications.sound", true)

	defaults := DefaultThemeConfig()
	viper.SetDefault("theme.color_accent", defaults.ColorAccent)
	viper.SetDefault("theme.color_muted", defaults.ColorMuted)
	viper.SetDefault("theme.color_good", defaults.ColorGood)
	viper.SetDefault("theme.color_gold", defaults.ColorGold)
	viper.SetDefault("theme.icon_app", defaults.IconApp)
	viper.SetDefault("theme.icon_done", defaults.IconDone)
	viper.SetDefault("theme.icon_pending", defaults.IconPending)
	viper.SetDefault("theme.icon_streak", defaults.IconStreak)
}
