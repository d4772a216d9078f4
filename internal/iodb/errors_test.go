package iodb

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/herbolive/herbdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConnectionError_Structure verifies error structure.
func TestConnectionError_Structure(t *testing.T) {
	originalErr := errors.New("connection refused")

	err := ConnectionError("localhost", 5432, "test", "postgres",
		originalErr)
	require.NotNil(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.DBConnectionError, gnErr.Code)
	assert.NotEmpty(t, gnErr.Msg)
	assert.Len(t, gnErr.Vars, 5,
		"Should have 5 vars: database, host, port, host, user")
	assert.ErrorIs(t, gnErr.Err, originalErr)
	assert.Contains(t, gnErr.Err.Error(), "localhost:5432/test")
}

func TestErrors_Codes(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
	}{
		{"table check", TableCheckError(cause), errcode.DBTableCheckError},
		{"table exists", TableExistsCheckError("plants", cause), errcode.DBTableExistsCheckError},
		{"query tables", QueryTablesError(cause), errcode.DBQueryTablesError},
		{"scan table", ScanTableError(cause), errcode.DBScanTableError},
		{"drop table", DropTableError("plants", cause), errcode.DBDropTableError},
	}

	for _, v := range tests {
		gnErr, ok := v.err.(*gn.Error)
		require.True(t, ok, v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
		assert.NotEmpty(t, gnErr.Msg, v.msg)
		assert.ErrorIs(t, gnErr.Err, cause, v.msg)
		// caller function name is part of the internal message
		assert.Contains(t, gnErr.Err.Error(), "TestErrors_Codes", v.msg)
	}
}

func TestNotConnectedError(t *testing.T) {
	err := NotConnectedError()
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
	assert.Empty(t, gnErr.Vars)
}
