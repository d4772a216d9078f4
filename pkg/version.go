package herbdb

var (
	// Version of herbdb.
	Version = "v0.1.0"

	// Build timestamp.
	Build = "n/a"
)
