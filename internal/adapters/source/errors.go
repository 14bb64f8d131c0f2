package source

import "errors"

// Sentinel kinds for source errors. The reconciliation engine propagates
// these unchanged; callers distinguish them with errors.Is.
var (
	ErrUnavailable   = errors.New("workout source unavailable")
	ErrAuthorization = errors.New("workout source authorization denied")
)
