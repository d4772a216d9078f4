package iosources

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/herbolive/herbdb/pkg/errcode"
	"github.com/herbolive/herbdb/pkg/plant"
)

func SourceUnavailableError(src plant.Source, endpoint string, err error) error {
	msg := "Source <em>%s</em> is unavailable at %s"
	vars := []any{src, endpoint}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.SourceUnavailableError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s request failed: %w", fn, src, err),
	}
}

func RateLimitedError(src plant.Source, endpoint string) error {
	msg := "Source <em>%s</em> rejected the request to %s, rate limit reached"
	vars := []any{src, endpoint}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.SourceRateLimitedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s is rate limited", fn, src),
	}
}

func DecodeError(src plant.Source, endpoint string, err error) error {
	msg := "Cannot decode the response of <em>%s</em> from %s"
	vars := []any{src, endpoint}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.SourceDecodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s response is malformed: %w", fn, src, err),
	}
}
