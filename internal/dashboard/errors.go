package dashboard

import "errors"

var (
	// ErrEmptyQuery is returned for a blank lookup; nothing changes
	ErrEmptyQuery = errors.New("empty query")

	// ErrInvalidFormat is returned when a query is neither key- nor hash-shaped
	ErrInvalidFormat = errors.New("invalid format: expected a G... account ID or a 64-character transaction hash")

	// ErrNotFound is returned when the reporting API answers a lookup with a non-2xx status
	ErrNotFound = errors.New("not found")

	// ErrSimulationUnavailable is returned for operations that have no simulated answer
	ErrSimulationUnavailable = errors.New("lookup not available in simulation")

	// ErrNotImplemented is returned after a successful transaction fetch:
	// transaction display is not built yet.
	ErrNotImplemented = errors.New("transaction display not yet implemented")
)
