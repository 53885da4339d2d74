package lifecycle

import (
	"fmt"

	"github.com/talentflow/pipeline/internal/domain/models"
)

// InvalidTransitionError means the requested edge does not exist in the
// transition graph for the acting role. Not retryable without changing
// the request.
type InvalidTransitionError struct {
	From models.Status
	To   models.Status
	Role models.Role
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("transition %s -> %s is not allowed for role %s", e.From, e.To, e.Role)
}

// StaleStateError means the status the caller issued the request against
// no longer matches the authoritative status. Recoverable: refetch and
// re-issue against the current state.
type StaleStateError struct {
	Expected models.Status
	Actual   models.Status
}

func (e *StaleStateError) Error() string {
	return fmt.Sprintf("application moved from %s to %s since it was read", e.Expected, e.Actual)
}

// CompositeFailureError reports a failed leg of the interview-scheduling
// composite. The surrounding transaction guarantees no partial effect
// was retained.
type CompositeFailureError struct {
	Step string
	Err  error
}

func (e *CompositeFailureError) Error() string {
	return fmt.Sprintf("interview scheduling failed at %s: %v", e.Step, e.Err)
}

func (e *CompositeFailureError) Unwrap() error {
	return e.Err
}
