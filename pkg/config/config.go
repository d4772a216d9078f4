// Package config provides configuration management for herbdb.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > .env > config.yaml >
// defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: driver, host, port, user, password, database, ssl_mode,
//     sqlite_path, batch_size
//   - Sources: perenual_url, perenual_key, trefle_url, trefle_token,
//     wikipedia_url, csv_path, csv_max_read, timeout_sec, listing_max
//   - Translate: provider, url, api_key, target, cache_size
//   - Server: host, port, db_first, list_concurrency, page_size
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use HERBDB_ prefix with underscores for nesting:
//
//	HERBDB_DATABASE_DRIVER=sqlite
//	HERBDB_DATABASE_HOST=localhost
//	HERBDB_SERVER_DB_FIRST=true
//	HERBDB_TRANSLATE_PROVIDER=deepl
//	HERBDB_SOURCES_PERENUAL_KEY=sk-...
package config

import (
	"runtime"
)

// Config represents the complete herbdb configuration.
type Config struct {
	// Database contains storage connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Sources contains settings of external enrichment sources.
	Sources SourcesConfig `mapstructure:"sources" yaml:"sources"`

	// Translate contains settings of the translation decorator.
	Translate TranslateConfig `mapstructure:"translate" yaml:"translate"`

	// Server contains settings of the HTTP API.
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel operations.
	// Default value is set accoring to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains storage connection parameters.
type DatabaseConfig struct {
	// Driver selects the storage backend.
	// Valid values: "postgres", "sqlite"
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// SQLitePath is the database file used when Driver is "sqlite".
	// When empty, the file is created in the cache directory.
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`

	// BatchSize is the number of records upserted in one transaction.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// SourcesConfig contains endpoints and credentials of enrichment sources.
// A source without credentials is disabled.
type SourcesConfig struct {
	// PerenualURL is the base URL of the Perenual API.
	PerenualURL string `mapstructure:"perenual_url" yaml:"perenual_url"`

	// PerenualKey is the Perenual API key.
	PerenualKey string `mapstructure:"perenual_key" yaml:"perenual_key"`

	// TrefleURL is the base URL of the Trefle API.
	TrefleURL string `mapstructure:"trefle_url" yaml:"trefle_url"`

	// TrefleToken is the Trefle API token.
	TrefleToken string `mapstructure:"trefle_token" yaml:"trefle_token"`

	// WikipediaURL is the base URL of the Wikipedia REST API.
	WikipediaURL string `mapstructure:"wikipedia_url" yaml:"wikipedia_url"`

	// CSVPath is a local CSV dataset used as the fallback source and as
	// the default import file.
	CSVPath string `mapstructure:"csv_path" yaml:"csv_path"`

	// CSVMaxRead caps the number of rows read from CSVPath.
	CSVMaxRead int `mapstructure:"csv_max_read" yaml:"csv_max_read"`

	// TimeoutSec is the per-request timeout for external sources.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`

	// ListingMax caps the number of rows fetched from an API listing.
	ListingMax int `mapstructure:"listing_max" yaml:"listing_max"`
}

// TranslateConfig contains translation provider settings.
type TranslateConfig struct {
	// Provider can be 'none', 'libretranslate', 'deepl' or 'google'.
	Provider string `mapstructure:"provider" yaml:"provider"`

	// URL overrides the default endpoint of the provider.
	URL string `mapstructure:"url" yaml:"url"`

	// APIKey is the provider credential.
	APIKey string `mapstructure:"api_key" yaml:"api_key"`

	// Target is the language translations are made into.
	Target string `mapstructure:"target" yaml:"target"`

	// CacheSize is the maximum number of cached translations.
	CacheSize int `mapstructure:"cache_size" yaml:"cache_size"`
}

// ServerConfig contains HTTP API settings.
type ServerConfig struct {
	// Host is the interface the server listens on.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the port the server listens on.
	Port int `mapstructure:"port" yaml:"port"`

	// DBFirst serves records from local storage and enriches them from
	// external sources. When false, records are returned as stored.
	DBFirst bool `mapstructure:"db_first" yaml:"db_first"`

	// ListConcurrency limits concurrent enrichments of a listing.
	ListConcurrency int `mapstructure:"list_concurrency" yaml:"list_concurrency"`

	// PageSize is the default number of items in a listing page.
	PageSize int `mapstructure:"page_size" yaml:"page_size"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Driver:    "postgres",
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "herbdb",
			SSLMode:   "disable",
			BatchSize: 500,
		},
		Sources: SourcesConfig{
			PerenualURL:  "https://perenual.com",
			TrefleURL:    "https://trefle.io",
			WikipediaURL: "https://en.wikipedia.org/api/rest_v1",
			CSVMaxRead:   99_999,
			TimeoutSec:   15,
			ListingMax:   2000,
		},
		Translate: TranslateConfig{
			Provider:  "none",
			Target:    "es",
			CacheSize: 20_000,
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            3000,
			DBFirst:         true,
			ListConcurrency: 6,
			PageSize:        52,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(), // Default to number of CPU threads
	}

	return res
}
