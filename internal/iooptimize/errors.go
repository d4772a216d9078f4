package iooptimize

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/herbolive/herbdb/pkg/errcode"
)

func ReparseError(err error) error {
	msg := `Cannot load plants for reparsing
   Run <em>'herbdb migrate'</em> if the schema is outdated`
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.OptimizeReparseError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cannot list plants: %w", fn, err),
	}
}

func VacuumError(stmt string, err error) error {
	msg := "Cannot run <em>%s</em> on the database"
	vars := []any{stmt}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.OptimizeVacuumError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s failed: %w", fn, stmt, err),
	}
}
