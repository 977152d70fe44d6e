package raptor

// Profile selects which worker variant services a Request.
type Profile int

const (
	// ProfileStandard computes earliest arrival only, one
	// non-Range-RAPTOR search at EarliestDepartureTime.
	ProfileStandard Profile = iota
	// ProfileMultiCriteria computes a pareto-optimal set of journeys
	// trading off arrival time, transit count and generalised cost.
	ProfileMultiCriteria
	// ProfileRangeRaptor sweeps every departure minute in the request
	// window using the standard (single-criterion) worker.
	ProfileRangeRaptor
	// ProfileStdRangeRaptorWithHeuristics is ProfileRangeRaptor plus
	// frequency-aware Monte-Carlo boarding at headway-defined trips.
	ProfileStdRangeRaptorWithHeuristics
)

// CostFactors configures the generalised-cost function the
// multi-criteria worker optimises alongside arrival time and transit
// count (§4.5):
//
//	cost = BoardCost*n_transits + WalkReluctance*walk_time
//	     + WaitReluctance*wait_time + in_vehicle_time
type CostFactors struct {
	BoardCost      int
	WalkReluctance float64
	WaitReluctance float64
}

// DefaultCostFactors returns the defaults named in §4.5.
func DefaultCostFactors() CostFactors {
	return CostFactors{BoardCost: 300, WalkReluctance: 4.0, WaitReluctance: 1.0}
}

// DebugOptions carries non-behavioural diagnostic toggles. No worker
// reads these fields: setting either changes neither a search result
// nor any output.
type DebugOptions struct {
	StopFilter func(StopIndex) bool
	PathFilter func(Path) bool
}

// Request is the input to a worker run. All fields are required unless
// noted; Validate reports a ConfigurationError for anything a worker
// must never be started with.
type Request struct {
	EarliestDepartureTime     Seconds
	LatestDepartureTime       Seconds
	SearchWindowLengthMinutes int
	MaxNumberOfTransfers      int
	BoardSlackSeconds         Seconds
	IterationDepartureStep    Seconds

	AccessLegs []Leg
	EgressLegs []Leg

	// Direction selects the worker's TransitCalculator: Forward (the
	// zero value) finds the earliest arrival after EarliestDepartureTime,
	// Reverse finds the latest departure before it, per §4.6/§9's
	// "same worker code serves both directions". A reverse query keeps
	// AccessLegs/EgressLegs and the departure-time fields in their usual
	// roles; only the calculator's arithmetic flips, so callers running
	// a round trip can dispatch a Forward and a Reverse Request for the
	// same stops through WorkerPool without any other change.
	Direction SearchDirection

	Profile                Profile
	MultiCriteriaCostFactors CostFactors

	Debug DebugOptions
}

// NewRequest returns a Request with the documented defaults
// (board_slack_seconds=60, iteration_departure_step_seconds=60,
// max_number_of_transfers=12) applied; callers still must set the time
// window and access/egress legs.
func NewRequest() Request {
	return Request{
		MaxNumberOfTransfers:     12,
		BoardSlackSeconds:        60,
		IterationDepartureStep:   60,
		MultiCriteriaCostFactors: DefaultCostFactors(),
	}
}

// Validate checks the invariants §7 requires to hold before a worker
// may start: a non-inverted time window, non-negative durations, and
// at least one access and one egress leg.
func (r Request) Validate() error {
	if r.LatestDepartureTime < r.EarliestDepartureTime {
		return &ConfigurationError{Reason: "latest_departure_time is before earliest_departure_time"}
	}
	if r.MaxNumberOfTransfers < 0 {
		return &ConfigurationError{Reason: "max_number_of_transfers must be non-negative"}
	}
	if r.BoardSlackSeconds < 0 {
		return &ConfigurationError{Reason: "board_slack_seconds must be non-negative"}
	}
	if r.IterationDepartureStep < 60 {
		return &ConfigurationError{Reason: "iteration_departure_step_seconds should not be below 60"}
	}
	if len(r.AccessLegs) == 0 {
		return &ConfigurationError{Reason: "at least one access leg is required"}
	}
	if len(r.EgressLegs) == 0 {
		return &ConfigurationError{Reason: "at least one egress leg is required"}
	}
	for _, l := range r.AccessLegs {
		if l.Duration < 0 {
			return &ConfigurationError{Reason: "access leg duration must be non-negative"}
		}
	}
	for _, l := range r.EgressLegs {
		if l.Duration < 0 {
			return &ConfigurationError{Reason: "egress leg duration must be non-negative"}
		}
	}
	return nil
}

// Unreached marks an egress stop that no iteration of a standard
// profile reached.
const Unreached Seconds = unreachedForward

// StandardResponse is the result shape for ProfileStandard and
// ProfileRangeRaptor (ProfileStdRangeRaptorWithHeuristics answers with
// a FrequencyResponse instead): for each
// iteration (one per departure minute swept), the elapsed seconds to
// reach each egress leg's stop, or Unreached.
type StandardResponse struct {
	// IterationDepartureTimes[i] is the departure minute that produced
	// ArrivalsByEgress[i].
	IterationDepartureTimes []Seconds
	// ArrivalsByEgress[i][j] is the elapsed seconds from
	// IterationDepartureTimes[i] to reach the stop of EgressLegs[j], or
	// Unreached.
	ArrivalsByEgress [][]Seconds
}

// MultiCriteriaResponse is the result shape for ProfileMultiCriteria:
// the pareto-optimal set of journeys found.
type MultiCriteriaResponse struct {
	Paths []Path
}
