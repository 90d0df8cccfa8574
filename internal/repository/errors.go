package repository

import "errors"

// Sentinel errors returned by the repositories. Callers match them with
// errors.Is; handlers map them onto HTTP status codes.
var (
	// ErrNotFound means no row satisfies the query. For reads this is an
	// empty-result signal, not a failure.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument means the caller passed malformed input, e.g. a
	// non-positive history limit.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStoreUnavailable wraps persistence failures. It is surfaced as-is;
	// retry policy belongs to the caller.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrDeviceExists means the device_id is already registered.
	ErrDeviceExists = errors.New("device already registered")
)
