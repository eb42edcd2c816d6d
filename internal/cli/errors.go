package cli

import (
	"errors"
	"io/fs"

	"github.com/roach88/featuredb/internal/compiler"
	"github.com/roach88/featuredb/internal/extract"
	"github.com/roach88/featuredb/internal/ir"
)

// Error code constants, unified across all CLI commands. Extraction
// (E2xx) and validation (E1xx) codes pass through unchanged.
const (
	ErrCodeGeneric       = "E001" // Generic/unknown error
	ErrCodeScanError     = "E002" // Directory scan error
	ErrCodeNoFiles       = "E003" // No scenario files found
	ErrCodeLoadFailed    = "E004" // Categories could not be loaded or compiled
	ErrCodeNotFound      = "E005" // Path not found
	ErrCodeMalformedData = "E006" // Index or payload JSON does not decode
	ErrCodeWriteFailed   = "E007" // File write error
	ErrCodeConfig        = "E008" // Config file or value invalid
	ErrCodeInvalid       = "E009" // Validation reported errors
)

// CodeFor maps an error from the pipeline packages to a CLI error code.
func CodeFor(err error) string {
	var (
		parseErr   *extract.ParseError
		decodeErr  *ir.DecodeError
		compileErr *compiler.CompileError
	)
	switch {
	case errors.As(err, &parseErr):
		return parseErr.Code
	case errors.As(err, &decodeErr):
		return ErrCodeMalformedData
	case errors.As(err, &compileErr):
		return ErrCodeLoadFailed
	case errors.Is(err, fs.ErrNotExist):
		return ErrCodeNotFound
	default:
		return ErrCodeGeneric
	}
}
