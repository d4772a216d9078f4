package schema_test

import (
	"strings"
	"testing"

	"github.com/herbolive/herbdb/pkg/plant"
	"github.com/herbolive/herbdb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlantColumns(t *testing.T) {
	cols := schema.Plant{}.Columns()
	require.Len(t, cols, len(plant.Fields))
	for i, spec := range plant.Fields {
		assert.Equal(t, string(spec.Name), cols[i])
	}
}

func TestPlantDDL(t *testing.T) {
	p := schema.Plant{}
	assert.Equal(t, "plants", p.TableName())

	ddl := p.TableDDL()
	assert.True(t, strings.HasPrefix(ddl, "CREATE TABLE IF NOT EXISTS plants ("))
	assert.Contains(t, ddl, "id INTEGER PRIMARY KEY AUTOINCREMENT")
	assert.Contains(t, ddl, "genus TEXT CHECK (length(genus) <= 255)")
	assert.Contains(t, ddl, "common_name TEXT CHECK (length(common_name) <= 255)")
	assert.Contains(t, ddl, "edibility INTEGER")
	assert.True(t, strings.HasSuffix(ddl, ");"))

	idx := p.IndexDDL()
	assert.Len(t, idx, 2)
	assert.Contains(t, idx[0], "plants(genus, species)")
}

func TestSQLiteDDL(t *testing.T) {
	stmts := schema.SQLiteDDL()
	assert.Len(t, stmts, 3)
	assert.Contains(t, stmts[0], "CREATE TABLE")
	for _, s := range stmts[1:] {
		assert.Contains(t, s, "CREATE INDEX IF NOT EXISTS")
	}
}

func TestAllModels(t *testing.T) {
	models := schema.AllModels()
	assert.Len(t, models, 1)
	_, ok := models[0].(*schema.Plant)
	assert.True(t, ok)
}
