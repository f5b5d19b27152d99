package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig indicates a configuration value is out of range
	// or unrecognised.
	ErrInvalidConfig = errors.New("invalid configuration")

	// Migration Errors.

	// ErrNoMigrationPath indicates no contiguous migration sequence
	// connects the current version to the target version.
	ErrNoMigrationPath = errors.New("no migration path")

	// ErrMigrationGap indicates the registered migration chain skips a
	// version. The chain is a configuration bug and must not run.
	ErrMigrationGap = errors.New("migration chain has a gap")

	// ErrDuplicateMigration indicates two migrations share the same
	// (from, to) version pair.
	ErrDuplicateMigration = errors.New("duplicate migration")

	// ErrInvalidMigration indicates a migration declares a malformed
	// version pair (to <= from).
	ErrInvalidMigration = errors.New("invalid migration")

	// ErrRollbackUnsupported indicates a downgrade path crosses a
	// migration that has no rollback procedure.
	ErrRollbackUnsupported = errors.New("rollback unsupported")
)

// ErrorKind classifies a sync failure for callers that decide whether
// to retry, surface, or abort.
type ErrorKind string

// Available error kinds.
const (
	// ErrorKindNetwork is a failed remote fetch. Transient; the caller
	// may retry.
	ErrorKindNetwork ErrorKind = "network"

	// ErrorKindValidation is a failed migration precondition. A data or
	// version invariant is violated; not retryable without intervention.
	ErrorKindValidation ErrorKind = "validation"

	// ErrorKindMigration is a broken migration chain or missing path.
	// A configuration bug, fatal to startup.
	ErrorKindMigration ErrorKind = "migration"

	// ErrorKindStorage is a transaction that could not commit. The
	// transaction rolled back cleanly, so retrying the whole call is safe.
	ErrorKindStorage ErrorKind = "storage"

	// ErrorKindUnknown wraps any unexpected failure at a boundary.
	ErrorKindUnknown ErrorKind = "unknown"
)

// IsValid returns true if the error kind is recognised.
func (k ErrorKind) IsValid() bool {
	switch k {
	case ErrorKindNetwork, ErrorKindValidation, ErrorKindMigration, ErrorKindStorage, ErrorKindUnknown:
		return true
	default:
		return false
	}
}

// Retryable returns true if repeating the failed call can succeed
// without intervention.
func (k ErrorKind) Retryable() bool {
	return k == ErrorKindNetwork || k == ErrorKindStorage
}

// String returns the string representation.
func (k ErrorKind) String() string {
	return string(k)
}

// Description returns a human-readable description of the kind.
func (k ErrorKind) Description() string {
	switch k {
	case ErrorKindNetwork:
		return "Network (fetch failed, retryable)"
	case ErrorKindValidation:
		return "Validation (migration precondition failed)"
	case ErrorKindMigration:
		return "Migration (broken chain or missing path)"
	case ErrorKindStorage:
		return "Storage (transaction failed, rolled back)"
	case ErrorKindUnknown:
		return "Unknown (unexpected failure)"
	default:
		return "Unknown"
	}
}

// SyncError is a classified failure carried inside a SyncResult.
// It wraps the underlying cause so callers can still unwrap sentinels.
type SyncError struct {
	// Kind classifies the failure for retry/surface decisions.
	Kind ErrorKind

	// Message is the human-readable failure summary.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

// NewSyncError creates a classified sync error.
func NewSyncError(kind ErrorKind, message string, cause error) *SyncError {
	return &SyncError{Kind: kind, Message: message, Cause: cause}
}

// Error implements the error interface.
func (e *SyncError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As chains.
func (e *SyncError) Unwrap() error {
	return e.Cause
}

// Classify converts an arbitrary error into a SyncError. Existing
// SyncErrors pass through unchanged; known sentinels map to their
// kind; anything else becomes Unknown.
func Classify(err error) *SyncError {
	if err == nil {
		return nil
	}

	var syncErr *SyncError
	if errors.As(err, &syncErr) {
		return syncErr
	}

	switch {
	case errors.Is(err, ErrNoMigrationPath),
		errors.Is(err, ErrMigrationGap),
		errors.Is(err, ErrDuplicateMigration),
		errors.Is(err, ErrInvalidMigration),
		errors.Is(err, ErrRollbackUnsupported):
		return NewSyncError(ErrorKindMigration, err.Error(), err)
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrInvalidInput):
		return NewSyncError(ErrorKindValidation, err.Error(), err)
	default:
		return NewSyncError(ErrorKindUnknown, err.Error(), err)
	}
}
