package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseDriver sets the storage backend.
// Valid values: "postgres", "sqlite".
func OptDatabaseDriver(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.Driver", s) {
			c.Database.Driver = s
		}
	}
}

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabaseSQLitePath sets the database file of the sqlite backend.
func OptDatabaseSQLitePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("SQLite Path", s) {
			c.Database.SQLitePath = s
		}
	}
}

// OptDatabaseBatchSize sets the number of records upserted per transaction.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptSourcesPerenualURL sets the base URL of the Perenual API.
func OptSourcesPerenualURL(s string) Option {
	s = strings.TrimRight(strings.TrimSpace(s), "/")
	return func(c *Config) {
		if isValidString("Perenual URL", s) {
			c.Sources.PerenualURL = s
		}
	}
}

// OptSourcesPerenualKey sets the Perenual API key.
func OptSourcesPerenualKey(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Perenual Key", s) {
			c.Sources.PerenualKey = s
		}
	}
}

// OptSourcesTrefleURL sets the base URL of the Trefle API.
func OptSourcesTrefleURL(s string) Option {
	s = strings.TrimRight(strings.TrimSpace(s), "/")
	return func(c *Config) {
		if isValidString("Trefle URL", s) {
			c.Sources.TrefleURL = s
		}
	}
}

// OptSourcesTrefleToken sets the Trefle API token.
func OptSourcesTrefleToken(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Trefle Token", s) {
			c.Sources.TrefleToken = s
		}
	}
}

// OptSourcesWikipediaURL sets the base URL of the Wikipedia REST API.
func OptSourcesWikipediaURL(s string) Option {
	s = strings.TrimRight(strings.TrimSpace(s), "/")
	return func(c *Config) {
		if isValidString("Wikipedia URL", s) {
			c.Sources.WikipediaURL = s
		}
	}
}

// OptSourcesCSVPath sets the local CSV dataset.
func OptSourcesCSVPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("CSV Path", s) {
			c.Sources.CSVPath = s
		}
	}
}

// OptSourcesCSVMaxRead sets the maximum number of rows read from CSV.
func OptSourcesCSVMaxRead(i int) Option {
	return func(c *Config) {
		if isValidInt("CSV Max Read", i) {
			c.Sources.CSVMaxRead = i
		}
	}
}

// OptSourcesTimeoutSec sets the timeout of external source calls.
func OptSourcesTimeoutSec(i int) Option {
	return func(c *Config) {
		if isValidInt("Sources Timeout", i) {
			c.Sources.TimeoutSec = i
		}
	}
}

// OptSourcesListingMax sets the maximum number of rows of an API listing.
func OptSourcesListingMax(i int) Option {
	return func(c *Config) {
		if isValidInt("Listing Max", i) {
			c.Sources.ListingMax = i
		}
	}
}

// OptTranslateProvider sets the translation provider.
// Valid values: "none", "libretranslate", "deepl", "google".
func OptTranslateProvider(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Translate.Provider", s) {
			c.Translate.Provider = s
		}
	}
}

// OptTranslateURL overrides the endpoint of the translation provider.
func OptTranslateURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Translate URL", s) {
			c.Translate.URL = s
		}
	}
}

// OptTranslateAPIKey sets the credential of the translation provider.
func OptTranslateAPIKey(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Translate API Key", s) {
			c.Translate.APIKey = s
		}
	}
}

// OptTranslateTarget sets the target language of translations.
func OptTranslateTarget(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidString("Translate Target", s) {
			c.Translate.Target = s
		}
	}
}

// OptTranslateCacheSize sets the capacity of the translation cache.
func OptTranslateCacheSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Translate Cache Size", i) {
			c.Translate.CacheSize = i
		}
	}
}

// OptServerHost sets the interface the HTTP server listens on.
func OptServerHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Server Host", s) {
			c.Server.Host = s
		}
	}
}

// OptServerPort sets the port the HTTP server listens on.
func OptServerPort(i int) Option {
	return func(c *Config) {
		if isValidInt("Server Port", i) {
			c.Server.Port = i
		}
	}
}

// OptServerDBFirst sets whether stored records are enriched from external
// sources.
func OptServerDBFirst(b bool) Option {
	return func(c *Config) {
		c.Server.DBFirst = b
	}
}

// OptServerListConcurrency sets how many records of a listing are enriched
// at the same time.
func OptServerListConcurrency(i int) Option {
	return func(c *Config) {
		if isValidInt("List Concurrency", i) {
			c.Server.ListConcurrency = i
		}
	}
}

// OptServerPageSize sets the default size of a listing page.
func OptServerPageSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Page Size", i) {
			c.Server.PageSize = i
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for parallel operations.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
