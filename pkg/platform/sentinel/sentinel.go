package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Platform adapters (Discord REST, Redis,
// document fetch) return these, optionally wrapped, so services can translate them
// into domain errors or mutation outcomes without knowing the transport:
// - ErrNotFound: the role, channel or member does not exist on the platform
// - ErrConflict: a lock or exclusive resource is already held
// - ErrForbidden: the platform refused the call for lack of permission
// - ErrUnavailable: the platform or a backing service could not be reached
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrForbidden   = errors.New("forbidden")
	ErrUnavailable = errors.New("unavailable")
)
