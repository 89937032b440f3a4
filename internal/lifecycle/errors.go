package lifecycle

import "errors"

// Domain errors. The HTTP layer maps ErrNotFound to 404 and the other two
// to 400; none are process-fatal. Callers test with errors.Is since every
// returned error wraps one of these sentinels with detail.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrInvalidValue      = errors.New("invalid value")
)
