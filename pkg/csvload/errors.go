package csvload

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := creator.CreateTable(ctx, config)
//	if errors.Is(err, csvload.ErrEmptyCSV) {
//	    // Nothing to load
//	}
var (
	// ErrMissingArgument indicates a required positional argument was not supplied.
	ErrMissingArgument = errors.New("missing required argument")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEmptyCSV indicates the CSV produced no columns or no data rows.
	ErrEmptyCSV = errors.New("CSV is empty or malformed")

	// ErrArtifactMissing indicates the intermediate file disappeared between stages.
	ErrArtifactMissing = errors.New("intermediate file not found")

	// ErrExecutionFailed indicates SQL execution failed.
	ErrExecutionFailed = errors.New("execution failed")

	// ErrUnsupportedAuthMethod indicates the requested authentication method is not supported.
	ErrUnsupportedAuthMethod = errors.New("unsupported authentication method")

	// ErrConnectionFailed indicates database connection failed.
	ErrConnectionFailed = errors.New("connection failed")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrMissingArgument):
		return ExitUsageError
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrUnsupportedAuthMethod):
		return ExitConfigError
	case errors.Is(err, ErrEmptyCSV):
		return ExitEmptyCSV
	case errors.Is(err, ErrArtifactMissing):
		return ExitArtifactMissing
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrExecutionFailed):
		return ExitExecutionFailed
	}

	// Driver errors that escaped wrapping
	errStr := err.Error()
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "Access denied for user") {
		return ExitConnectionError
	}

	return ExitGeneralError
}
