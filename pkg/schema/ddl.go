package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// generateDDL creates a CREATE TABLE statement from struct tags.
func generateDDL(model any, tableName string) string {
	var columns []string
	for _, f := range taggedFields(model) {
		columns = append(columns, fmt.Sprintf("    %s %s", f.db, f.ddl))
	}

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n);",
		tableName,
		strings.Join(columns, ",\n"))

	return ddl
}

type taggedField struct {
	db, ddl string
}

func taggedFields(model any) []taggedField {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var res []taggedField
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")

		if dbTag != "" && ddlTag != "" {
			res = append(res, taggedField{db: dbTag, ddl: ddlTag})
		}
	}
	return res
}

// Plant DDL methods
func (p Plant) TableDDL() string {
	return generateDDL(p, p.TableName())
}

func (p Plant) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_plants_genus_species ON plants(genus, species);",
		"CREATE INDEX IF NOT EXISTS idx_plants_common_name ON plants(common_name);",
	}
}

func (p Plant) TableName() string {
	return "plants"
}

// Columns returns the data columns of the plants table in declaration
// order, without the id column.
func (p Plant) Columns() []string {
	var res []string
	for _, f := range taggedFields(p) {
		if f.db != "id" {
			res = append(res, f.db)
		}
	}
	return res
}

// SQLiteDDL returns statements that create the schema in SQLite.
func SQLiteDDL() []string {
	var res []string
	for _, m := range []DDLGenerator{Plant{}} {
		res = append(res, m.TableDDL())
		res = append(res, m.IndexDDL()...)
	}
	return res
}
