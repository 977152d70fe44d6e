package raptor

import "math"

// unreachedForward/unreachedReverse stand in for +Inf/-Inf on the
// integer-seconds timeline.
const (
	unreachedForward Seconds = math.MaxInt64 / 2
	unreachedReverse Seconds = math.MinInt64 / 2
)

// SearchDirection selects whether the worker looks for the earliest
// arrival after a departure (Forward) or the latest departure before
// an arrival (Reverse).
type SearchDirection int

const (
	Forward SearchDirection = iota
	Reverse
)

// TransitCalculator encapsulates every direction-dependent arithmetic
// operation so the worker's round loop is written once and serves both
// a forward (depart-after) and a reverse (arrive-before) search
// symmetrically, per §4.6.
type TransitCalculator interface {
	Add(t, d Seconds) Seconds
	Sub(t, d Seconds) Seconds
	EarliestBoardTime(t Seconds, boardSlack Seconds) Seconds
	LatestArrivalTime(trip TripSchedule, pos int, boardSlack Seconds) Seconds
	ExceedsTimeLimit(t Seconds) bool
	IsBest(a, b Seconds) bool
	UnreachedTime() Seconds
	// StopPositions returns the stop-position walk order for pattern:
	// ascending for a forward search, descending for a reverse search.
	StopPositions(pattern TripPattern) []int
}

// NewCalculator builds a TransitCalculator for the given direction.
// originTime is the request's departure (forward) or arrival (reverse)
// anchor used only to compute ExceedsTimeLimit; maxDuration bounds how
// far a journey may run before the worker gives up on improving it
// further.
func NewCalculator(dir SearchDirection, originTime Seconds, maxDuration Seconds) TransitCalculator {
	if dir == Forward {
		return &forwardCalculator{origin: originTime, maxDuration: maxDuration}
	}
	return &reverseCalculator{origin: originTime, maxDuration: maxDuration}
}

type forwardCalculator struct {
	origin      Seconds
	maxDuration Seconds
}

func (c *forwardCalculator) Add(t, d Seconds) Seconds { return t + d }
func (c *forwardCalculator) Sub(t, d Seconds) Seconds { return t - d }
func (c *forwardCalculator) EarliestBoardTime(t Seconds, boardSlack Seconds) Seconds {
	return t + boardSlack
}
func (c *forwardCalculator) LatestArrivalTime(trip TripSchedule, pos int, boardSlack Seconds) Seconds {
	return trip.Arrivals[pos]
}
func (c *forwardCalculator) ExceedsTimeLimit(t Seconds) bool {
	if c.maxDuration <= 0 {
		return false
	}
	return t-c.origin > c.maxDuration
}
func (c *forwardCalculator) IsBest(a, b Seconds) bool  { return a < b }
func (c *forwardCalculator) UnreachedTime() Seconds    { return unreachedForward }
func (c *forwardCalculator) StopPositions(p TripPattern) []int {
	positions := make([]int, len(p.Stops))
	for i := range positions {
		positions[i] = i
	}
	return positions
}

type reverseCalculator struct {
	origin      Seconds
	maxDuration Seconds
}

func (c *reverseCalculator) Add(t, d Seconds) Seconds { return t - d }
func (c *reverseCalculator) Sub(t, d Seconds) Seconds { return t + d }
func (c *reverseCalculator) EarliestBoardTime(t Seconds, boardSlack Seconds) Seconds {
	return t
}
func (c *reverseCalculator) LatestArrivalTime(trip TripSchedule, pos int, boardSlack Seconds) Seconds {
	return trip.Departures[pos] - boardSlack
}
func (c *reverseCalculator) ExceedsTimeLimit(t Seconds) bool {
	if c.maxDuration <= 0 {
		return false
	}
	return c.origin-t > c.maxDuration
}
func (c *reverseCalculator) IsBest(a, b Seconds) bool { return a > b }
func (c *reverseCalculator) UnreachedTime() Seconds   { return unreachedReverse }
func (c *reverseCalculator) StopPositions(p TripPattern) []int {
	positions := make([]int, len(p.Stops))
	for i := range positions {
		positions[i] = len(p.Stops) - 1 - i
	}
	return positions
}

// MinuteSequence returns the departure minutes a Range-RAPTOR worker
// sweeps, from latest to earliest inclusive, stepping by step seconds
// (60 when step is not positive).
func MinuteSequence(earliest, latest, step Seconds) []Seconds {
	if step <= 0 {
		step = 60
	}
	if latest < earliest {
		return nil
	}
	n := int((latest-earliest)/step) + 1
	out := make([]Seconds, n)
	for i := 0; i < n; i++ {
		out[i] = latest - Seconds(i)*step
	}
	return out
}
