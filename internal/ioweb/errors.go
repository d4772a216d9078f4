package ioweb

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/herbolive/herbdb/pkg/errcode"
)

func ServerStartError(addr string, err error) error {
	msg := "Cannot start HTTP server on <em>%s</em>"
	vars := []any{addr}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.ServerStartError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot listen on %s: %w", fn, addr, err),
	}
}
