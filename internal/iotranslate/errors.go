package iotranslate

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/herbolive/herbdb/pkg/errcode"
)

func TranslationError(provider string, attempts int, err error) error {
	msg := "Translation by <em>%s</em> failed after %d attempts"
	vars := []any{provider, attempts}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.TranslationError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s translation failed: %w", fn, provider, err),
	}
}
