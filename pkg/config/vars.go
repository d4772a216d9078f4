package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "herbdb"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/herbdb by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/herbdb by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/herbdb/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/herbdb/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// EnvFilePath returns the path of an optional .env file next to config.yaml.
func EnvFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), ".env")
}

// FailuresFilePath returns the path of the report of records that could not
// be imported.
func FailuresFilePath(homeDir string) string {
	return filepath.Join(LogDir(homeDir), "import-failures.yaml")
}

// SQLitePath returns the sqlite database file for the given config.
// Falls back to ~/.cache/herbdb/herbdb.sqlite.
func (c *Config) SQLitePath() string {
	if c.Database.SQLitePath != "" {
		return c.Database.SQLitePath
	}
	return filepath.Join(CacheDir(c.HomeDir), AppName+".sqlite")
}
