// Package iologger sets up the default slog logger of herbdb.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/herbolive/herbdb/pkg/config"
	"github.com/herbolive/herbdb/pkg/logger"
)

// LogFile is the name of the log file inside the log directory.
const LogFile = "herbdb.log"

// logFile is the file behind the current default logger, if any.
var logFile *os.File

// Init replaces the default slog logger according to cfg. With the
// "file" destination logs go to LogFile in logDir. The file is truncated
// unless keep is true. A file opened by a previous Init is closed.
func Init(logDir string, cfg config.LogConfig, keep bool) error {
	w, err := output(logDir, cfg.Destination, keep)
	if err != nil {
		return err
	}

	slog.SetDefault(logger.New(w, cfg))
	if logFile != nil && logFile != w {
		_ = logFile.Close()
	}
	logFile, _ = w.(*os.File)
	if logFile == os.Stdout || logFile == os.Stderr {
		logFile = nil
	}
	return nil
}

func output(logDir, dest string, keep bool) (io.Writer, error) {
	switch dest {
	case "file":
	case "stdout":
		return os.Stdout, nil
	default:
		return os.Stderr, nil
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if keep {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	path := filepath.Join(logDir, LogFile)
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return nil, CreateLogFileError(path, err)
	}
	return f, nil
}
