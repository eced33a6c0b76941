// Package config loads and merges application configuration from
// global and project files plus TRACKING_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load loads and merges configuration from global and project sources.
// Precedence, lowest to highest: defaults, ~/.tracking/config.yaml,
// ./tracking.yaml, environment variables.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if home, err := os.UserHomeDir(); err == nil {
		globalPath := filepath.Join(home, ".tracking", "config.yaml")
		if err := loadFile(globalPath, cfg); err != nil && !os.IsNotExist(err) {
			return nil, err
		}
	}

	if cwd, err := os.Getwd(); err == nil {
		projectPath := filepath.Join(cwd, "tracking.yaml")
		if err := loadFile(projectPath, cfg); err != nil && !os.IsNotExist(err) {
			return nil, err
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	return v.Unmarshal(cfg)
}

// applyEnv overlays TRACKING_* environment variables.
func applyEnv(cfg *Config) {
	set := func(key string, dst *string) {
		if val := os.Getenv(key); val != "" {
			*dst = val
		}
	}

	set("TRACKING_ENV", &cfg.Environment)
	set("TRACKING_LISTEN_ADDR", &cfg.ListenAddr)
	set("TRACKING_STORE_BACKEND", &cfg.Store.Backend)
	set("TRACKING_STORE_DIR", &cfg.Store.Dir)
	set("TRACKING_STORE_DB_PATH", &cfg.Store.DBPath)
	set("TRACKING_POSTGRES_URL", &cfg.Store.PostgresURL)
	set("TRACKING_API_URL", &cfg.Tracker.BaseURL)
	set("TRACKING_API_TOKEN", &cfg.Tracker.APIToken)
	set("TRACKING_LIST_ID", &cfg.Tracker.ListID)

	cfg.Environment = strings.ToLower(cfg.Environment)
}

// GlobalConfigPath returns the path to the global config file.
func GlobalConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".tracking", "config.yaml")
}
