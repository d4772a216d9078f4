package ioimport

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/herbolive/herbdb/pkg/errcode"
	"github.com/herbolive/herbdb/pkg/plant"
)

func ReadError(src plant.Source, err error) error {
	msg := "Cannot read records from <em>%s</em>"
	vars := []any{src}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.ImportReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read %s records: %w", fn, src, err),
	}
}

func NoIdentityError(idx int) error {
	msg := "Record <em>%d</em> has neither genus and species nor common name"
	vars := []any{idx}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.ImportNoIdentityError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: record %d has no identity", fn, idx),
	}
}

func FailuresReportError(path string, err error) error {
	msg := "Cannot write failed records to <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.ImportFailuresReportError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot write %s: %w", fn, path, err),
	}
}
