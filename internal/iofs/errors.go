package iofs

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/herbolive/herbdb/pkg/errcode"
)

func CreateDirError(dir string, err error) error {
	return fsError(errcode.CreateDirError,
		"Cannot create directory <em>%s</em>", dir, "create directory", err)
}

func CopyFileError(file string, err error) error {
	return fsError(errcode.CopyFileError,
		"Cannot write default config to <em>%s</em>", file, "copy file", err)
}

func ReadFileError(path string, err error) error {
	return fsError(errcode.ReadFileError,
		"Cannot read <em>%s</em>", path, "read", err)
}

// fsError records the caller of the exported constructor.
func fsError(
	code gn.ErrorCode,
	msg, path, action string,
	err error,
) error {
	pc, _, _, _ := runtime.Caller(2)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: code,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: cannot %s %s: %w", fn, action, path, err),
	}
}
