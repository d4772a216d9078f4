package iostore

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/herbolive/herbdb/pkg/errcode"
)

func NotConnectedError() error {
	msg := "Plant store needs a connected database"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: %w", fn, errors.New("no connection pool")),
	}
}

func UnsupportedDriverError(driver string) error {
	msg := "Database driver <em>%s</em> is not supported"
	vars := []any{driver}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.DBUnsupportedDriverError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unsupported driver %q", fn, driver),
	}
}

func SQLiteOpenError(path string, err error) error {
	msg := "Cannot open SQLite database <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot open %s: %w", fn, path, err),
	}
}

func QueryError(op string, err error) error {
	msg := "Cannot run <em>%s</em> query on plants"
	vars := []any{op}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.StoreQueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s query failed: %w", fn, op, err),
	}
}

func TransactionError(stage string, err error) error {
	msg := "Transaction failed at <em>%s</em>"
	vars := []any{stage}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.StoreTransactionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: transaction %s: %w", fn, stage, err),
	}
}

func MalformedRecordError(key string, err error) error {
	msg := "Record <em>%s</em> cannot be saved"
	vars := []any{key}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.StoreMalformedRecordError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: malformed record %s: %w", fn, key, err),
	}
}

func UpdateFieldsError(id int64, err error) error {
	msg := "Cannot update fields of plant <em>%d</em>"
	vars := []any{id}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.StoreUpdateFieldsError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot update plant %d: %w", fn, id, err),
	}
}
