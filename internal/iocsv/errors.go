package iocsv

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/herbolive/herbdb/pkg/errcode"
)

func ReadError(path string, err error) error {
	msg := "Cannot read CSV data from <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.SourceCSVReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read csv %s: %w", fn, path, err),
	}
}
