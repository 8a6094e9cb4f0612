package guild

import (
	"errors"

	"warden/pkg/platform/sentinel"
)

// Outcome classifies the result of a platform mutation.
type Outcome string

const (
	OutcomeOK               Outcome = "ok"
	OutcomePermissionDenied Outcome = "permission_denied"
	OutcomeOther            Outcome = "error"
)

// OutcomeOf classifies err as returned by a RoleMutator.
func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, sentinel.ErrForbidden):
		return OutcomePermissionDenied
	default:
		return OutcomeOther
	}
}
