package raptor

import "fmt"

// ConfigurationError signals a malformed Request, caught at
// construction time before any worker starts: an invalid time window,
// a negative duration, or missing access/egress legs.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("raptor: invalid request: %s", e.Reason)
}

// InvariantViolation reports a state it should be impossible to reach
// from well-formed input. CheckMonotone returns one for a best-time
// regression across rounds; the workers themselves run no invariant
// checks and never return one. These are not expected outside of a bug
// in the worker or a malformed transit data view; the caller should
// treat them as fatal for the current iteration, not retry blindly.
type InvariantViolation struct {
	Reason   string
	Round    int
	Stop     StopIndex
	Snapshot string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("raptor: invariant violation at round %d, stop %d: %s", e.Round, e.Stop, e.Reason)
}
