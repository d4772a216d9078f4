package ioschema

import (
	"fmt"
	"strings"
)

// identityColumns are the columns records are matched by. They get the
// "C" collation so that lookups compare bytes.
var identityColumns = []string{"genus", "species", "common_name"}

// collationSQL builds one ALTER TABLE statement that switches the given
// columns to VARCHAR(size) with "C" collation.
func collationSQL(table string, size int, columns ...string) string {
	clauses := make([]string, len(columns))
	for i, col := range columns {
		clauses[i] = fmt.Sprintf(
			`ALTER COLUMN %s TYPE VARCHAR(%d) COLLATE "C"`, col, size,
		)
	}
	return "ALTER TABLE " + table + " " + strings.Join(clauses, ", ")
}
