package service

import "errors"

var (
	// ErrImportInFlight indicates that an import is already running.
	// Imports are never queued; callers retry after the current run ends.
	ErrImportInFlight = errors.New("import already in flight")

	// ErrNoSource indicates that no workout source is configured.
	ErrNoSource = errors.New("no workout source configured")
)
