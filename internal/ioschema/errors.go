package ioschema

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/herbolive/herbdb/pkg/errcode"
)

// NotConnectedError is returned when the operator has no pool.
func NotConnectedError() error {
	return schemaError(errcode.DBNotConnectedError,
		"Schema operation attempted without database connection",
		nil, "no pool", errors.New("not connected to database"))
}

func GORMConnectionError(err error) error {
	msg := `Cannot open GORM session on the database

<em>How to fix:</em>
  1. Ensure PostgreSQL is reachable
  2. Check the database section of the herbdb config`
	return schemaError(errcode.SchemaGORMConnectionError, msg, nil,
		"gorm open", err)
}

func CreateSchemaError(err error) error {
	msg := `Cannot create the plants table

<em>How to fix:</em>
  1. Check database user has CREATE permissions
  2. Check database logs for details`
	return schemaError(errcode.SchemaCreateError, msg, nil,
		"create schema", err)
}

func MigrateSchemaError(err error) error {
	msg := `Cannot migrate the plants table

<em>How to fix:</em>
  1. Check database user has ALTER permissions
  2. Backup data and run <em>herbdb create --force</em>`
	return schemaError(errcode.SchemaMigrateError, msg, nil,
		"migrate schema", err)
}

// CollationError reports a failure to set "C" collation on identity
// columns of a table.
func CollationError(table, columns string, err error) error {
	return schemaError(errcode.SchemaCollationError,
		"Cannot set collation of <em>%s</em> columns <em>%s</em>",
		[]any{table, columns}, "set collation on "+table, err)
}

func schemaError(
	code gn.ErrorCode,
	msg string,
	vars []any,
	action string,
	err error,
) error {
	pc, _, _, _ := runtime.Caller(2)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: code,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s: %w", fn, action, err),
	}
}
