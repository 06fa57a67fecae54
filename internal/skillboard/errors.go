package skillboard

import "errors"

// Error kinds surfaced by the core. Callers match them with errors.Is; the
// wrapped message carries the detail (which id, which field, which key).
var (
	// ErrNotFound means a referenced skill, session or task id does not exist.
	// Every id-keyed operation reports it; none of them silently no-op.
	ErrNotFound = errors.New("not found")

	// ErrValidation means caller input was rejected before anything was written.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidFormat means a document (import payload or stored blob) could
	// not be parsed or does not have the expected shape.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrStorageUnavailable means the backend could not be read or written.
	// The operation can be retried once the backend recovers.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrNetwork and ErrTimeout are reserved for suggestion sources that make
	// real remote calls.
	ErrNetwork = errors.New("network error")
	ErrTimeout = errors.New("timed out")
)
