package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/herbolive/herbdb/pkg/config"
)

func writeConfig(home, content string) error {
	if err := os.MkdirAll(config.ConfigDir(home), 0755); err != nil {
		return err
	}
	return os.WriteFile(config.ConfigFilePath(home), []byte(content), 0644)
}

// useSQLite replaces the global config with a sqlite config in a
// temporary home directory.
func useSQLite(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	prev := cfg
	t.Cleanup(func() { cfg = prev })

	cfg = config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(home),
		config.OptDatabaseDriver("sqlite"),
		config.OptDatabaseSQLitePath(filepath.Join(home, "herbdb.sqlite")),
		config.OptSourcesWikipediaURL("http://127.0.0.1:1"),
		config.OptSourcesTimeoutSec(1),
		config.OptJobsNumber(1),
	})
}
