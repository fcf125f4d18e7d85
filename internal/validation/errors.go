package validation

import "codeberg.org/mutker/deepcoolctl/internal/errors"

const (
	// Configuration Errors
	ErrInvalidConfig = errors.ErrInvalidConfig
	ErrInvalidDBPath = errors.ErrorCode("validation_invalid_db_path")

	// Schema Errors
	ErrSchemaInitFailed       = errors.ErrorCode("validation_schema_init_failed")
	ErrSchemaValidationFailed = errors.ErrorCode("validation_schema_validation_failed")
	ErrSchemaMigrationFailed  = errors.ErrorCode("validation_schema_migration_failed")

	// Storage Errors
	ErrStorageInit  = errors.ErrInitFailed
	ErrStorageClose = errors.ErrShutdownFailed
	ErrRecordFailed = errors.ErrorCode("validation_record_failed")
	ErrQueryFailed  = errors.ErrorCode("validation_query_failed")
	ErrInvalidEntry = errors.ErrorCode("validation_invalid_result")

	ErrOperationTimeout = errors.ErrTimeout
)

func init() {
	errors.RegisterMessages(map[errors.ErrorCode]string{
		ErrInvalidDBPath:          "Validation database path is required",
		ErrSchemaInitFailed:       "Failed to initialize validation schema",
		ErrSchemaValidationFailed: "Failed to validate validation schema",
		ErrSchemaMigrationFailed:  "Failed to migrate validation schema",
		ErrRecordFailed:           "Failed to record self-test result",
		ErrQueryFailed:            "Failed to query self-test results",
		ErrInvalidEntry:           "Invalid self-test result",
	})
}
