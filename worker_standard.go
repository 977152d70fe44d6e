package raptor

// StandardWorker is the single-criterion Range-RAPTOR worker (§4.7):
// it keeps one best arrival time per (round, stop) and, optionally,
// augments the scheduled-trip search with frequency (headway) boarding.
//
// A worker is single-threaded and non-suspending: every method runs
// synchronously on the caller's goroutine. It is built once per route
// query and dropped at the end of the call; within one call its state
// is reused across every departure minute the range sweep visits.
type StandardWorker struct {
	data TransitDataProvider
	req  Request
	calc TransitCalculator

	state    *StandardArrivalState
	maxRides int

	BinarySearchThreshold    int
	FrequencyEnabled         bool
	MonteCarloDrawsPerMinute int
	Random                   FrequencyRandom

	scheduledRoundsUsed int
}

// NewStandardWorker validates req and builds a worker over data. The
// returned worker performs req.MaxNumberOfTransfers+1 boarding rounds.
func NewStandardWorker(data TransitDataProvider, req Request) (*StandardWorker, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	calc := NewCalculator(req.Direction, req.EarliestDepartureTime, 0)
	maxRides := req.MaxNumberOfTransfers + 1
	state := NewStandardArrivalState(calc, data.NumStops(), maxRides)
	state.EnsurePatternCapacity(data.NumPatterns())
	return &StandardWorker{
		data:                     data,
		req:                      req,
		calc:                     calc,
		state:                    state,
		maxRides:                 maxRides,
		BinarySearchThreshold:    DefaultBinarySearchThreshold,
		MonteCarloDrawsPerMinute: 100,
		Random:                   NewFrequencyRandom(1),
	}, nil
}

// State exposes the worker's arrival state, mainly so tests and
// callers building paths can read committed arrivals after a run.
func (w *StandardWorker) State() *StandardArrivalState { return w.state }

// initNewDepartureForMinute seeds round 0 from the access legs at
// departureTime and clears per-minute scratch. It does not clear the
// later rounds of best[]; beginRound rebuilds each of them from round 0
// as the minute's rounds run.
func (w *StandardWorker) initNewDepartureForMinute(departureTime Seconds) {
	w.state.ResetPerIteration()
	for _, leg := range w.req.AccessLegs {
		arrival := w.calc.Add(departureTime, leg.Duration)
		w.state.SetInitialTime(leg.Stop, arrival, leg.Duration)
		it := w.data.PatternsForStop(leg.Stop)
		for {
			p, ok := it.Next()
			if !ok {
				break
			}
			w.state.SeedTouchedPattern(p)
		}
	}
}

// RunMinute runs every round for one departure minute using scheduled
// trips only and returns the last round swept.
func (w *StandardWorker) RunMinute(departureTime Seconds) int {
	return w.runMinuteWithMode(departureTime, false, BestCase)
}

// FrequencyMinuteResult is the per-minute outcome of RunFrequencyMinute:
// a BestCase/WorstCase bound plus a set of Random Monte-Carlo draws.
type FrequencyMinuteResult struct {
	DepartureTime Seconds
	BestCase      []Seconds   // per egress leg
	WorstCase     []Seconds   // per egress leg
	RandomDraws   [][]Seconds // [draw][egress leg]
}

// RunFrequencyMinute performs the full per-minute frequency protocol
// described in §4.7: one BestCase iteration, one WorstCase iteration
// (both excluded from statistical averages), and
// MonteCarloDrawsPerMinute Random draws. Each inner iteration reuses
// the same StandardArrivalState but re-seeds round 0 from scratch, so
// results never leak between boarding assumptions within the minute.
func (w *StandardWorker) RunFrequencyMinute(departureTime Seconds) FrequencyMinuteResult {
	result := FrequencyMinuteResult{DepartureTime: departureTime}

	bestRound := w.runMinuteWithMode(departureTime, true, BestCase)
	result.BestCase = w.extractEgressTimes(bestRound, departureTime)

	worstRound := w.runMinuteWithMode(departureTime, true, WorstCase)
	result.WorstCase = w.extractEgressTimes(worstRound, departureTime)

	draws := w.MonteCarloDrawsPerMinute
	result.RandomDraws = make([][]Seconds, draws)
	for i := 0; i < draws; i++ {
		round := w.runMinuteWithMode(departureTime, true, Random)
		result.RandomDraws[i] = w.extractEgressTimes(round, departureTime)
	}
	return result
}

func (w *StandardWorker) extractEgressTimes(round int, departureTime Seconds) []Seconds {
	out := make([]Seconds, len(w.req.EgressLegs))
	for i, leg := range w.req.EgressLegs {
		t := w.state.BestTime(round, leg.Stop)
		if t == w.calc.UnreachedTime() {
			out[i] = Unreached
			continue
		}
		out[i] = w.calc.Add(t, leg.Duration) - departureTime
	}
	return out
}

// runMinuteWithMode is the shared engine behind RunMinute and
// RunFrequencyMinute: it seeds round 0, sweeps rounds until
// quiescence (plus one grace round once a frequency boarding has
// happened anywhere, per "frequency rounds ... continue for at least
// scheduled-rounds + 1"), and returns the last round written.
func (w *StandardWorker) runMinuteWithMode(departureTime Seconds, frequency bool, mode FrequencyBoardingMode) int {
	w.initNewDepartureForMinute(departureTime)

	lastRound := 0
	everUsedFrequency := false
	graceRoundsLeft := 0
	for round := 1; round <= w.maxRides; round++ {
		if !w.state.SweepPatterns().Any() {
			if graceRoundsLeft <= 0 {
				break
			}
			graceRoundsLeft--
		}
		w.state.beginRound(round)

		usedFrequency := w.sweepRound(round, frequency, mode)
		w.relaxTransfers(round)
		w.state.AdvanceRound()
		lastRound = round

		if usedFrequency {
			everUsedFrequency = true
		}
		if everUsedFrequency && graceRoundsLeft == 0 && w.state.SweepPatterns().Any() {
			graceRoundsLeft = 1
		}
	}
	w.scheduledRoundsUsed = lastRound
	return lastRound
}

// sweepRound walks every touched pattern once, per §4.7 point 1, and
// reports whether any frequency boarding occurred.
func (w *StandardWorker) sweepRound(round int, frequency bool, mode FrequencyBoardingMode) bool {
	usedFrequency := false
	w.state.SweepPatterns().ForEach(func(pi int) {
		patternIdx := PatternIndex(pi)
		pattern := w.data.Pattern(patternIdx)
		if w.sweepPattern(round, patternIdx, pattern, frequency, mode) {
			usedFrequency = true
		}
	})
	return usedFrequency
}

// patternRideState tracks what vehicle (if any) the sweep is currently
// riding as it walks one pattern's stops in order.
type patternRideState struct {
	onScheduled  bool
	scheduledIdx int
	onFrequency  bool
	freqTripIdx  int
	freqEntry    int
	boardPos     int
	boardStop    StopIndex
	boardTime    Seconds
	lockedKind   rideKind // once non-none, forbids switching kind this round
}

type rideKind int

const (
	rideNone rideKind = iota
	rideScheduled
	rideFrequency
)

func (w *StandardWorker) sweepPattern(round int, patternIdx PatternIndex, pattern TripPattern, frequency bool, mode FrequencyBoardingMode) bool {
	usedFrequency := false
	ride := patternRideState{scheduledIdx: -1, boardStop: noStop}
	positions := w.calc.StopPositions(pattern)

	for _, pos := range positions {
		stop := pattern.Stops[pos]

		// 1. Alight, if currently riding.
		if ride.onScheduled {
			alightTime := w.calc.LatestArrivalTime(pattern.ScheduledTrips[ride.scheduledIdx], pos, 0)
			w.tryRecordAlight(round, stop, alightTime, ride, patternIdx, false, 0)
		} else if ride.onFrequency {
			trip := pattern.FrequencyTrips[ride.freqTripIdx]
			alightTime := frequencyAlightTime(trip, ride.boardPos, pos, ride.boardTime)
			w.tryRecordAlight(round, stop, alightTime, ride, patternIdx, true, ride.freqEntry)
		}

		// 2. Attempt to (re-)board, unless this stop's current
		// best arrival came from this very pattern (prevents
		// degenerate ping-ponging, per §4.7 point 1).
		prevBest := w.state.BestTimePreviousRound(round, stop)
		if prevBest == w.calc.UnreachedTime() {
			continue
		}
		if w.arrivedViaPattern(round, stop, patternIdx) {
			continue
		}
		earliestBoard := w.calc.EarliestBoardTime(prevBest, w.req.BoardSlackSeconds)

		if ride.lockedKind != rideFrequency {
			if b, ok := FindEarliestBoarding(pattern.ScheduledTrips, pos, earliestBoard, ride.scheduledIdx, w.effectiveThreshold()); ok {
				if !ride.onScheduled || b.TripIndex < ride.scheduledIdx {
					ride = patternRideState{
						onScheduled: true, scheduledIdx: b.TripIndex,
						boardPos: pos, boardStop: stop, boardTime: b.BoardTime,
						lockedKind: rideScheduled,
					}
				}
			}
		}

		if frequency && ride.lockedKind != rideScheduled {
			for ti, trip := range pattern.FrequencyTrips {
				b := bestFrequencyBoarding(trip, pos, earliestBoard, mode, w.Random)
				if !b.ok {
					continue
				}
				if !ride.onFrequency || b.boardTime < ride.boardTime {
					ride = patternRideState{
						onFrequency: true, freqTripIdx: ti, freqEntry: b.entry,
						boardPos: pos, boardStop: stop, boardTime: b.boardTime,
						lockedKind: rideFrequency,
					}
					usedFrequency = true
				}
			}
		}
	}
	return usedFrequency
}

func (w *StandardWorker) effectiveThreshold() int {
	if w.BinarySearchThreshold <= 0 {
		return DefaultBinarySearchThreshold
	}
	return w.BinarySearchThreshold
}

func (w *StandardWorker) arrivedViaPattern(round int, stop StopIndex, patternIdx PatternIndex) bool {
	if round == 0 {
		return false
	}
	prev := w.state.arrivalAt(round-1, stop)
	return prev.valid && prev.arrivedByTransit && prev.boarding.hasTrip && prev.boarding.pattern == patternIdx
}

func (w *StandardWorker) tryRecordAlight(round int, stop StopIndex, alightTime Seconds, ride patternRideState, patternIdx PatternIndex, isFrequency bool, freqEntry int) {
	if w.calc.ExceedsTimeLimit(alightTime) {
		return
	}
	boarding := boardingRef{hasTrip: true, pattern: patternIdx, isFrequency: isFrequency, frequencyEntry: freqEntry}
	if isFrequency {
		boarding.trip = ride.freqTripIdx
	} else {
		boarding.trip = ride.scheduledIdx
	}
	if w.state.TransitToStop(round, stop, alightTime, ride.boardStop, ride.boardTime, boarding) {
		w.state.MarkPatternsTouchedByStop(w.data.PatternsForStop(stop))
	}
}

// relaxTransfers implements §4.7 point 2: for every stop whose
// non-transfer time improved this round, walk its outgoing transfers
// and relax them, marking destination patterns for the next round on
// improvement.
func (w *StandardWorker) relaxTransfers(round int) {
	touched := w.state.TouchedStops()
	stops := make([]int, 0, 8)
	touched.ForEach(func(s int) { stops = append(stops, s) })
	touched.Reset()

	for _, si := range stops {
		stop := StopIndex(si)
		it := w.data.TransfersFrom(stop)
		base := w.state.arrivalAt(round, stop)
		if !base.valid {
			continue
		}
		for {
			leg, ok := it.Next()
			if !ok {
				break
			}
			candidate := w.calc.Add(base.time, leg.Duration)
			if w.calc.ExceedsTimeLimit(candidate) {
				continue
			}
			if w.state.TransferToStop(round, stop, leg, candidate) {
				w.state.MarkPatternsTouchedByStop(w.data.PatternsForStop(leg.ToStop))
			}
		}
	}
}
