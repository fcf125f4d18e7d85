package catalog

import "codeberg.org/mutker/deepcoolctl/internal/errors"

const (
	ErrInvalidEntry = errors.ErrorCode("catalog_invalid_entry")
	ErrReadFile     = errors.ErrorCode("catalog_read_file_failed")
	ErrParseFile    = errors.ErrorCode("catalog_parse_file_failed")
)

func init() {
	errors.RegisterMessages(map[errors.ErrorCode]string{
		ErrInvalidEntry: "Invalid catalog entry",
		ErrReadFile:     "Failed to read catalog file",
		ErrParseFile:    "Failed to parse catalog file",
	})
}
