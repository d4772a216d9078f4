package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/herbolive/herbdb/pkg/config"
	"github.com/herbolive/herbdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEnsureDirs(t *testing.T) {
	home := t.TempDir()

	// repeated calls succeed
	for range 2 {
		require.NoError(t, EnsureDirs(home))
	}

	for _, dir := range []string{
		filepath.Join(home, ".config", "herbdb"),
		filepath.Join(home, ".cache", "herbdb"),
		filepath.Join(home, ".local", "share", "herbdb", "logs"),
	} {
		info, err := os.Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir(), dir)
		assert.Equal(t, os.FileMode(0755), info.Mode().Perm(), dir)
	}
}

func TestEnsureDirsBlocked(t *testing.T) {
	home := t.TempDir()
	// a file where the config directory should be
	require.NoError(t, os.WriteFile(filepath.Join(home, ".config"), nil, 0644))

	err := EnsureDirs(home)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.CreateDirError, gnErr.Code)
}

func TestEnsureConfigFile(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, EnsureDirs(home))
	require.NoError(t, EnsureConfigFile(home))

	path := config.ConfigFilePath(home)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ConfigYAML, string(content))

	// user edits survive
	custom := "database:\n  driver: sqlite\n"
	require.NoError(t, os.WriteFile(path, []byte(custom), 0644))
	require.NoError(t, EnsureConfigFile(home))
	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, custom, string(content))
}

func TestEnsureConfigFileNoDir(t *testing.T) {
	err := EnsureConfigFile(filepath.Join(t.TempDir(), "missing"))
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.CopyFileError, gnErr.Code)
}

func TestConfigYAMLDefaults(t *testing.T) {
	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(ConfigYAML), &cfg))

	def := config.New()
	assert.Equal(t, def.Database.Driver, cfg.Database.Driver)
	assert.Equal(t, def.Database.BatchSize, cfg.Database.BatchSize)
	assert.Equal(t, def.Sources, cfg.Sources)
	assert.Equal(t, def.Translate, cfg.Translate)
	assert.Equal(t, def.Server, cfg.Server)
	assert.Equal(t, def.Log, cfg.Log)
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, Exists(filepath.Join(dir, "none.csv")))
	assert.False(t, Exists(dir))

	path := filepath.Join(dir, "plants.csv")
	require.NoError(t, os.WriteFile(path, []byte("Genus\n"), 0644))
	assert.True(t, Exists(path))
}
