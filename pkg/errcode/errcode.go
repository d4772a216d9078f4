package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBTableCheckError
	DBNotConnectedError
	DBTableExistsCheckError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError
	DBUnsupportedDriverError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError
	SchemaCollationError

	// Store errors
	StoreQueryError
	StoreTransactionError
	StoreMalformedRecordError
	StoreUpdateFieldsError

	// Source errors
	SourceUnavailableError
	SourceRateLimitedError
	SourceDecodeError
	SourceCSVReadError

	// Import errors
	ImportReadError
	ImportNoIdentityError
	ImportFailuresReportError

	// Translation errors
	TranslationError

	// Catalog errors
	CatalogNotFoundError

	// Server errors
	ServerStartError

	// Optimize errors
	OptimizeReparseError
	OptimizeVacuumError
)
