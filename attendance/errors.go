/*
errors.go - Centralized error types for the attendance engine

PURPOSE:
  All domain error kinds in one place. Every operation yields either a success
  value or one of these recoverable failures; nothing here is process-fatal.

ERROR CATEGORIES:
  1. Input errors      - missing/malformed fields, bad ranges
  2. Directory errors  - duplicate or unknown employee ids
  3. Session errors    - state machine violations (double check-in, no open session)
  4. Report signals    - ErrNoData, an informational outcome rather than a failure

USAGE:
  Callers match with errors.Is / errors.As:

    if errors.Is(err, attendance.ErrNoData) { ... }

    var open *attendance.AlreadyOpenError
    if errors.As(err, &open) {
        // open.OpenDate may be a prior date, not today
    }
*/
package attendance

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidInput is returned when a required field is missing or malformed
	// (empty id or name, negative salary, unparsable date).
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateID is returned when adding an employee whose id already exists.
	ErrDuplicateID = errors.New("duplicate employee id")

	// ErrUnknownEmployee is returned when a referenced employee is not in the
	// directory.
	ErrUnknownEmployee = errors.New("unknown employee")

	// ErrAlreadyOpen is returned on check-in while a session is still open
	// somewhere in the ledger. Wrapped by AlreadyOpenError, which carries the
	// date of the stale session.
	ErrAlreadyOpen = errors.New("employee already checked in")

	// ErrNoOpenSession is returned on check-out when no open session exists.
	ErrNoOpenSession = errors.New("no open session to close")

	// ErrInvalidRange is returned when a report range starts after it ends.
	ErrInvalidRange = errors.New("invalid range: start date after end date")

	// ErrNoData signals that a requested report is legitimately empty. It is
	// informational and must be distinguished from genuine failures.
	ErrNoData = errors.New("no data")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// AlreadyOpenError reports a check-in attempt while another session is open.
// OpenDate is the ledger date of the open session, which may be an earlier
// day if the employee never checked out.
type AlreadyOpenError struct {
	EmployeeID string
	OpenDate   string
}

func (e *AlreadyOpenError) Error() string {
	return fmt.Sprintf("employee %s already checked in since %s", e.EmployeeID, e.OpenDate)
}

func (e *AlreadyOpenError) Unwrap() error {
	return ErrAlreadyOpen
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input or a
// state machine violation, as opposed to an internal failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrDuplicateID) ||
		errors.Is(err, ErrAlreadyOpen) ||
		errors.Is(err, ErrNoOpenSession) ||
		errors.Is(err, ErrInvalidRange)
}

// IsNotFound returns true if the error indicates a missing employee.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUnknownEmployee)
}
