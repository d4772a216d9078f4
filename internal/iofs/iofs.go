// Package iofs prepares the file system layout of herbdb: config, cache
// and log directories and the default config file.
package iofs

import (
	_ "embed"
	"errors"
	"io/fs"
	"os"

	"github.com/herbolive/herbdb/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

// EnsureDirs creates the config, cache and log directories of herbdb
// under homeDir. Existing directories are left as they are.
func EnsureDirs(homeDir string) error {
	for _, dir := range []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.LogDir(homeDir),
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return CreateDirError(dir, err)
		}
	}
	return nil
}

// EnsureConfigFile writes the embedded config.yaml template into the
// config directory unless the file is already there.
func EnsureConfigFile(homeDir string) error {
	path := config.ConfigFilePath(homeDir)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return CopyFileError(path, err)
	}

	if _, err = f.WriteString(ConfigYAML); err != nil {
		f.Close()
		return CopyFileError(path, err)
	}
	if err = f.Close(); err != nil {
		return CopyFileError(path, err)
	}
	return nil
}

// Exists reports whether path is an existing regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
