package iodb

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/herbolive/herbdb/pkg/errcode"
)

func ConnectionError(
	host string,
	port int,
	database, user string,
	err error,
) error {
	msg := `Cannot connect to PostgreSQL database <em>%s</em>

<em>How to fix:</em>
  1. Check if PostgreSQL is running:
     <em>pg_isready -h %s -p %d</em>

  2. Verify the database exists:
     <em>psql -h %s -U %s -l</em>

  3. Check the database section of
     <em>~/.config/herbdb/config.yaml</em>
     or HERBDB_DATABASE_* environment variables.`
	vars := []any{database, host, port, host, user}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: failed to connect to %s:%d/%s: %w",
			fn, host, port, database, err),
	}
}

func NotConnectedError() error {
	msg := "Database is not connected"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: %w", fn, errors.New("no connection pool")),
	}
}

func TableExistsCheckError(table string, err error) error {
	msg := "Cannot check if table <em>%s</em> exists"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.DBTableExistsCheckError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot check table %s: %w", fn, table, err),
	}
}

func TableCheckError(err error) error {
	msg := "Cannot verify database state"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: failed to check database tables: %w", fn, err),
	}
}

func QueryTablesError(err error) error {
	msg := "Cannot get the list of tables"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.DBQueryTablesError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cannot query tables: %w", fn, err),
	}
}

func ScanTableError(err error) error {
	msg := "Cannot read the list of tables"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.DBScanTableError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cannot scan table name: %w", fn, err),
	}
}

func DropTableError(table string, err error) error {
	msg := "Cannot drop table <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot drop table %s: %w", fn, table, err),
	}
}
