package domain

import "fmt"

// SyncPhase discriminates the states of a SyncResult.
type SyncPhase string

// Available sync phases.
const (
	// PhaseLoading means no outcome yet; a fetch or read is in flight.
	PhaseLoading SyncPhase = "loading"

	// PhaseSuccess means the result carries a usable payload.
	PhaseSuccess SyncPhase = "success"

	// PhaseError means the result carries a classified failure.
	PhaseError SyncPhase = "error"
)

// IsValid returns true if the phase is recognised.
func (p SyncPhase) IsValid() bool {
	switch p {
	case PhaseLoading, PhaseSuccess, PhaseError:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p SyncPhase) String() string {
	return string(p)
}

// SyncResult is a tagged union of sync outcomes: Loading, Success with
// a payload, or Error with a classified failure. A result never holds
// both a payload and an error; consumers branch on the phase instead
// of testing fields for nil.
type SyncResult[T any] struct {
	phase SyncPhase
	value T
	err   *SyncError
}

// Loading returns an in-flight result with no payload.
func Loading[T any]() SyncResult[T] {
	return SyncResult[T]{phase: PhaseLoading}
}

// Success returns a successful result carrying value.
func Success[T any](value T) SyncResult[T] {
	return SyncResult[T]{phase: PhaseSuccess, value: value}
}

// Failure returns an error result carrying err.
func Failure[T any](err *SyncError) SyncResult[T] {
	return SyncResult[T]{phase: PhaseError, err: err}
}

// Phase returns which arm of the union this result is.
func (r SyncResult[T]) Phase() SyncPhase {
	return r.phase
}

// IsLoading returns true for an in-flight result.
func (r SyncResult[T]) IsLoading() bool {
	return r.phase == PhaseLoading
}

// IsSuccess returns true for a successful result.
func (r SyncResult[T]) IsSuccess() bool {
	return r.phase == PhaseSuccess
}

// IsError returns true for a failed result.
func (r SyncResult[T]) IsError() bool {
	return r.phase == PhaseError
}

// Value returns the payload and true when the result is Success.
func (r SyncResult[T]) Value() (T, bool) {
	if r.phase != PhaseSuccess {
		var zero T
		return zero, false
	}
	return r.value, true
}

// Err returns the failure when the result is Error, nil otherwise.
func (r SyncResult[T]) Err() *SyncError {
	if r.phase != PhaseError {
		return nil
	}
	return r.err
}

// String summarises the result for logs.
func (r SyncResult[T]) String() string {
	switch r.phase {
	case PhaseSuccess:
		return fmt.Sprintf("Success(%v)", r.value)
	case PhaseError:
		return fmt.Sprintf("Error(%v)", r.err)
	default:
		return "Loading"
	}
}

// ForecastResult is the concrete result the sync engine emits: a
// snapshot of the cached forecast list, or a classified failure.
type ForecastResult = SyncResult[[]ForecastRecord]

// ForecastSuccess returns a successful forecast snapshot.
func ForecastSuccess(records []ForecastRecord) ForecastResult {
	return Success(records)
}

// ForecastFailure returns a failed forecast result.
func ForecastFailure(err *SyncError) ForecastResult {
	return Failure[[]ForecastRecord](err)
}
