package config

// Environment classifies a deployment for log-store key selection.
type Environment string

const (
	EnvProduction  Environment = "production"
	EnvPreview     Environment = "preview"
	EnvDevelopment Environment = "development"
)

// Store backend kinds.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config is the full application configuration.
type Config struct {
	Environment string        `mapstructure:"environment"`
	ListenAddr  string        `mapstructure:"listen_addr"`
	Store       StoreConfig   `mapstructure:"store"`
	Tracker     TrackerConfig `mapstructure:"tracker"`
}

// StoreConfig selects and parameterizes the change-log store backend.
type StoreConfig struct {
	Backend     string `mapstructure:"backend"`      // file, sqlite, postgres
	Dir         string `mapstructure:"dir"`          // file backend
	DBPath      string `mapstructure:"db_path"`      // sqlite backend
	PostgresURL string `mapstructure:"postgres_url"` // postgres backend
}

// TrackerConfig holds remote task-service connection settings.
type TrackerConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	APIToken       string `mapstructure:"api_token"`
	ListID         string `mapstructure:"list_id"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// Env returns the classified environment, defaulting to development
// for any unrecognized value.
func (c *Config) Env() Environment {
	switch c.Environment {
	case string(EnvProduction):
		return EnvProduction
	case string(EnvPreview):
		return EnvPreview
	default:
		return EnvDevelopment
	}
}

// LogKey returns the log store key for this deployment. One growing
// blob per environment; the backends never hardcode this.
func (c *Config) LogKey() string {
	return "task-changelog-" + string(c.Env())
}
