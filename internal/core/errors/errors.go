// Package errors provides centralized error definitions for the application.
// Errors are organized by domain to avoid duplication and provide consistent naming.
//
// Naming conventions:
//   - Exported errors (Err*): Use for errors that callers need to check with errors.Is
//   - All sentinel errors should be defined as variables, not inline errors.New calls
//   - Use fmt.Errorf with %w to wrap sentinel errors with context
package errors

import "errors"

// Validation errors.
var (
	// ErrInvalidConfidence indicates a sentiment confidence outside [0,1].
	ErrInvalidConfidence = errors.New("confidence must be between 0 and 1")

	// ErrInvalidPriority indicates a relief item priority outside [1,5].
	ErrInvalidPriority = errors.New("priority must be between 1 and 5")

	// ErrUnknownEnum indicates a string that does not name a known enum value.
	ErrUnknownEnum = errors.New("unknown enum value")

	// ErrInvalidInput indicates invalid input was provided.
	ErrInvalidInput = errors.New("invalid input")
)

// Remote classification service errors.
var (
	// ErrRemoteStatus indicates the remote service returned a non-200 status.
	ErrRemoteStatus = errors.New("remote service status")

	// ErrRemoteUnavailable indicates the remote service could not be reached.
	ErrRemoteUnavailable = errors.New("remote service unavailable")

	// ErrNoClassification indicates no category rule matched the text.
	// This is an expected outcome, not a failure; callers decide the policy.
	ErrNoClassification = errors.New("no category matched")
)

// Analysis errors.
var (
	// ErrNoData indicates an analysis was requested over an empty input set.
	ErrNoData = errors.New("no data to analyze")
)

// Is is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
