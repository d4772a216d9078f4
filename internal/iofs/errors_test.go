package iofs

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/herbolive/herbdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	cause := errors.New("permission denied")
	tests := []struct {
		msg    string
		err    error
		code   gn.ErrorCode
		path   string
		action string
	}{
		{"mkdir", CreateDirError("/tmp/x", cause), errcode.CreateDirError,
			"/tmp/x", "cannot create directory"},
		{"copy", CopyFileError("/tmp/c.yaml", cause), errcode.CopyFileError,
			"/tmp/c.yaml", "cannot copy file"},
		{"read", ReadFileError("/tmp/.env", cause), errcode.ReadFileError,
			"/tmp/.env", "cannot read"},
	}

	for _, v := range tests {
		var gnErr *gn.Error
		require.ErrorAs(t, v.err, &gnErr, v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
		assert.Contains(t, gnErr.Msg, "<em>%s</em>", v.msg)
		assert.Equal(t, []any{v.path}, gnErr.Vars, v.msg)
		assert.ErrorIs(t, gnErr.Err, cause, v.msg)

		inner := gnErr.Err.Error()
		assert.Contains(t, inner, v.action, v.msg)
		assert.Contains(t, inner, v.path, v.msg)
		assert.Contains(t, inner, "from ", v.msg)
	}
}

func TestErrorsCaller(t *testing.T) {
	var gnErr *gn.Error
	require.ErrorAs(t, ReadFileError("/a", errors.New("x")), &gnErr)
	assert.Contains(t, gnErr.Err.Error(), "TestErrorsCaller")
}
