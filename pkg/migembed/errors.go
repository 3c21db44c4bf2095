package migembed

import (
	"errors"
	"strings"
)

// Sentinel errors for generation failures.
// Callers distinguish them with errors.Is().
//
// Example usage:
//
//	_, err := service.Generate(ctx, cfg)
//	if errors.Is(err, migembed.ErrInvalidVersion) {
//	    // a filename prefix is not an integer
//	}
var (
	// ErrConfigMissing indicates a required path input was not supplied.
	ErrConfigMissing = errors.New("required configuration missing")

	// ErrInvalidConfig indicates a configuration value is malformed.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrDirectoryUnreadable indicates the migrations directory could not be listed.
	ErrDirectoryUnreadable = errors.New("migrations directory unreadable")

	// ErrInvalidFilename indicates a filename has no "-" separator.
	ErrInvalidFilename = errors.New("invalid migration filename")

	// ErrInvalidVersion indicates a filename prefix is not a 64-bit integer.
	ErrInvalidVersion = errors.New("invalid migration version")

	// ErrFileUnreadable indicates a migration file's content could not be read.
	ErrFileUnreadable = errors.New("migration file unreadable")

	// ErrWriteFailure indicates the generated artifact could not be written.
	ErrWriteFailure = errors.New("failed to write generated file")

	// ErrStale indicates the generated artifact is out of date.
	ErrStale = errors.New("generated migrations are stale")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrConfigMissing), errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrInvalidFilename), errors.Is(err, ErrInvalidVersion), errors.Is(err, ErrFileUnreadable):
		return ExitParseError
	case errors.Is(err, ErrWriteFailure):
		return ExitWriteError
	case errors.Is(err, ErrDirectoryUnreadable):
		return ExitDirectoryError
	case errors.Is(err, ErrStale):
		return ExitStale
	}

	// cobra reports usage problems as plain errors
	errStr := err.Error()
	if strings.HasPrefix(errStr, "unknown flag") ||
		strings.HasPrefix(errStr, "unknown shorthand flag") ||
		strings.HasPrefix(errStr, "unknown command") ||
		strings.Contains(errStr, "arg(s), received") ||
		strings.HasPrefix(errStr, "invalid argument") {
		return ExitUsageError
	}

	return ExitGeneralError
}
