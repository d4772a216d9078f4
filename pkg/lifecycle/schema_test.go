package lifecycle_test

import (
	"testing"

	"github.com/herbolive/herbdb/internal/iodb"
	"github.com/herbolive/herbdb/internal/ioschema"
	"github.com/herbolive/herbdb/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
)

// TestSchemaManagerContract ensures that the ioschema manager satisfies
// the lifecycle.SchemaManager interface.
func TestSchemaManagerContract(t *testing.T) {
	var mgr lifecycle.SchemaManager = ioschema.NewManager(iodb.NewPgxOperator())
	assert.NotNil(t, mgr)
}
