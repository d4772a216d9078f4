// Package schema provides the database schema of herbdb.
// The Plant model drives both GORM AutoMigrate on PostgreSQL and the
// generated DDL of the embedded SQLite database.
package schema

import (
	"database/sql"
)

// DDLGenerator defines how Go models generate DDL.
type DDLGenerator interface {
	// TableDDL returns the CREATE TABLE statement for this model.
	TableDDL() string

	// IndexDDL returns CREATE INDEX statements for this model.
	// Returns empty slice if no indexes needed.
	IndexDDL() []string

	// TableName returns the table name for this model.
	TableName() string
}

// Plant is a row of the plants table. Identity is not enforced by a
// unique constraint, rows are matched by genus and species or by common
// name. Lists are stored as JSON array text, flags as 1, 0 or NULL.
type Plant struct {
	// ID is assigned by the database.
	ID int64 `db:"id" ddl:"INTEGER PRIMARY KEY AUTOINCREMENT" gorm:"primaryKey;autoIncrement"`

	Family         sql.NullString `db:"family"          ddl:"TEXT CHECK (length(family) <= 255)"          gorm:"type:varchar(255)"`
	Genus          sql.NullString `db:"genus"           ddl:"TEXT CHECK (length(genus) <= 255)"           gorm:"type:varchar(255);index:idx_plants_genus_species,priority:1"`
	Species        sql.NullString `db:"species"         ddl:"TEXT CHECK (length(species) <= 255)"         gorm:"type:varchar(255);index:idx_plants_genus_species,priority:2"`
	ScientificName sql.NullString `db:"scientific_name" ddl:"TEXT CHECK (length(scientific_name) <= 255)" gorm:"type:varchar(255)"`
	CommonName     sql.NullString `db:"common_name"     ddl:"TEXT CHECK (length(common_name) <= 255)"     gorm:"type:varchar(255);index:idx_plants_common_name"`

	GrowthRate     sql.NullString `db:"growth_rate"     ddl:"TEXT" gorm:"type:text"`
	HardinessZones sql.NullString `db:"hardiness_zones" ddl:"TEXT" gorm:"type:text"`
	Height         sql.NullString `db:"height"          ddl:"TEXT" gorm:"type:text"`
	Width          sql.NullString `db:"width"           ddl:"TEXT" gorm:"type:text"`
	Type           sql.NullString `db:"type"            ddl:"TEXT" gorm:"type:text"`
	Foliage        sql.NullString `db:"foliage"         ddl:"TEXT" gorm:"type:text"`
	Leaf           sql.NullString `db:"leaf"            ddl:"TEXT" gorm:"type:text"`
	Flower         sql.NullString `db:"flower"          ddl:"TEXT" gorm:"type:text"`
	Ripen          sql.NullString `db:"ripen"           ddl:"TEXT" gorm:"type:text"`
	Reproduction   sql.NullString `db:"reproduction"    ddl:"TEXT" gorm:"type:text"`
	PH             sql.NullString `db:"ph"              ddl:"TEXT" gorm:"column:ph;type:text"`
	Habitat        sql.NullString `db:"habitat"         ddl:"TEXT" gorm:"type:text"`
	HabitatRange   sql.NullString `db:"habitat_range"   ddl:"TEXT" gorm:"type:text"`
	OtherUses      sql.NullString `db:"other_uses"      ddl:"TEXT" gorm:"type:text"`
	PFAF           sql.NullString `db:"pfaf"            ddl:"TEXT" gorm:"column:pfaf;type:text"`
	ImageURL       sql.NullString `db:"image_url"       ddl:"TEXT" gorm:"column:image_url;type:text"`
	Description    sql.NullString `db:"description"     ddl:"TEXT" gorm:"type:text"`

	Pollinators sql.NullString `db:"pollinators" ddl:"TEXT" gorm:"type:text"`
	Soils       sql.NullString `db:"soils"       ddl:"TEXT" gorm:"type:text"`
	PHSplit     sql.NullString `db:"ph_split"    ddl:"TEXT" gorm:"column:ph_split;type:text"`
	Preferences sql.NullString `db:"preferences" ddl:"TEXT" gorm:"type:text"`
	Tolerances  sql.NullString `db:"tolerances"  ddl:"TEXT" gorm:"type:text"`
	Images      sql.NullString `db:"images"      ddl:"TEXT" gorm:"type:text"`

	Edibility sql.NullInt16 `db:"edibility" ddl:"INTEGER CHECK (edibility IN (0, 1))" gorm:"type:smallint"`
	Medicinal sql.NullInt16 `db:"medicinal" ddl:"INTEGER CHECK (medicinal IN (0, 1))" gorm:"type:smallint"`
}
