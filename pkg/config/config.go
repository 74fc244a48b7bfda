// Package config loads application configuration from defaults, an optional
// config file and BRAINBOOK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DataDir    string `mapstructure:"data_dir"`
	ExportDir  string `mapstructure:"export_dir"`
	ListenAddr string `mapstructure:"listen_addr"`
	ServeWeb   bool   `mapstructure:"serve_web"`
	Headless   bool   `mapstructure:"headless"`
	LogLevel   string `mapstructure:"log_level"`
	LogFormat  string `mapstructure:"log_format"`
}

// GetDefaultDataPath returns the default directory for the key-value store.
func GetDefaultDataPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./data"
	}
	return filepath.Join(home, ".brainbook")
}

// GetDefaultExportPath returns the default directory for export documents.
func GetDefaultExportPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".brainbook", "exports")
}

// GetConfigDirPath returns the directory searched for config.yaml.
func GetConfigDirPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(configDir, "brainbook")
}

// Load loads configuration from defaults, config.yaml (if present) and
// environment variables, then ensures the data directories exist.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(GetConfigDirPath())
	v.AddConfigPath(".")

	v.SetEnvPrefix("BRAINBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", cfg.DataDir, err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", GetDefaultDataPath())
	v.SetDefault("export_dir", GetDefaultExportPath())
	v.SetDefault("listen_addr", "127.0.0.1:8080")
	v.SetDefault("serve_web", true)
	v.SetDefault("headless", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
}
