package raptor

import (
	"fmt"

	"github.com/antigravity/raptor-transit/internal/telemetry"
)

// CheckMonotone verifies testable property 1 (§8): best_time[round][s]
// is at least as good as best_time[round-1][s] for every stop. It is
// not part of the worker's hot path and no worker calls it; callers
// that want the check (the test suite) invoke it explicitly around a
// round.
func CheckMonotone(state *StandardArrivalState, round int, calc TransitCalculator) error {
	if round == 0 {
		return nil
	}
	for s := 0; s < state.numStops; s++ {
		stop := StopIndex(s)
		prev := state.BestTime(round-1, stop)
		if prev == calc.UnreachedTime() {
			continue
		}
		cur := state.BestTime(round, stop)
		if cur == calc.UnreachedTime() {
			return &InvariantViolation{
				Reason: "best time regressed to unreached", Round: round, Stop: stop,
				Snapshot: fmt.Sprintf("prev=%d cur=unreached", prev),
			}
		}
		if cur != prev && !calc.IsBest(cur, prev) {
			return &InvariantViolation{
				Reason: "best time regressed across rounds", Round: round, Stop: stop,
				Snapshot: fmt.Sprintf("prev=%d cur=%d", prev, cur),
			}
		}
	}
	return nil
}

// LogInvariantViolation writes a structured state-dump for err, per
// §7's "logged with full state-dump context" policy.
func LogInvariantViolation(log telemetry.Logger, err *InvariantViolation) {
	log.Error("invariant violation",
		telemetry.Int("round", err.Round),
		telemetry.Int32("stop", int32(err.Stop)),
		telemetry.String("reason", err.Reason),
		telemetry.String("snapshot", err.Snapshot),
	)
}
