package config

import "testing"

func TestEnvClassification(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantEnv Environment
		wantKey string
	}{
		{"production", "production", EnvProduction, "task-changelog-production"},
		{"preview", "preview", EnvPreview, "task-changelog-preview"},
		{"development", "development", EnvDevelopment, "task-changelog-development"},
		{"unknown falls back to development", "staging", EnvDevelopment, "task-changelog-development"},
		{"empty falls back to development", "", EnvDevelopment, "task-changelog-development"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Environment: tt.value}
			if got := cfg.Env(); got != tt.wantEnv {
				t.Errorf("Env() = %q, want %q", got, tt.wantEnv)
			}
			if got := cfg.LogKey(); got != tt.wantKey {
				t.Errorf("LogKey() = %q, want %q", got, tt.wantKey)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TRACKING_ENV", "Production")
	t.Setenv("TRACKING_STORE_BACKEND", "sqlite")
	t.Setenv("TRACKING_API_TOKEN", "pk_test")

	cfg := DefaultConfig()
	applyEnv(cfg)

	if cfg.Env() != EnvProduction {
		t.Errorf("Env() = %q, want production (case-insensitive)", cfg.Env())
	}
	if cfg.Store.Backend != BackendSQLite {
		t.Errorf("Backend = %q, want sqlite", cfg.Store.Backend)
	}
	if cfg.Tracker.APIToken != "pk_test" {
		t.Errorf("APIToken = %q, want pk_test", cfg.Tracker.APIToken)
	}
	if cfg.Tracker.BaseURL == "" {
		t.Errorf("defaults must survive the env overlay")
	}
}
