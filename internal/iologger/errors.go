package iologger

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/herbolive/herbdb/pkg/errcode"
)

func CreateLogFileError(path string, err error) error {
	msg := `Cannot open log file <em>%s</em>

Set <em>log.destination</em> to <em>stderr</em> in config.yaml
or fix permissions of the log directory.`
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.CreateLogFileError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: open %s: %w", fn, path, err),
	}
}
