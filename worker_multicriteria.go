package raptor

import "github.com/antigravity/raptor-transit/internal/bitset"

// MultiCriteriaWorker is the pareto-optimising Range-RAPTOR worker
// (§4.8): it runs a single search from req.EarliestDepartureTime,
// tracking every non-dominated (arrival_time, n_transits, cost)
// combination per stop rather than one scalar best time.
//
// Unlike StandardWorker, a MultiCriteriaWorker is not swept across a
// departure-time window: ProfileMultiCriteria requests one journey set
// for one nominal departure time, since a pareto front does not carry
// forward across minutes the way a scalar upper bound does.
type MultiCriteriaWorker struct {
	data TransitDataProvider
	req  Request
	calc TransitCalculator
	state *MultiCriteriaArrivalState

	maxRides  int
	threshold int

	sweepPatterns *bitset.Bitset
	nextPatterns  *bitset.Bitset
	touchedStops  *bitset.Bitset

	// pendingMarks holds the stops written in the round that just
	// finished; their pareto-set markers advance one round later, once
	// the following round's sweep has had a chance to read them. See
	// advanceMarkers.
	pendingMarks *bitset.Bitset
}

// NewMultiCriteriaWorker validates req and builds a worker over data.
func NewMultiCriteriaWorker(data TransitDataProvider, req Request) (*MultiCriteriaWorker, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	calc := NewCalculator(req.Direction, req.EarliestDepartureTime, 0)
	costFactors := req.MultiCriteriaCostFactors
	if costFactors == (CostFactors{}) {
		costFactors = DefaultCostFactors()
	}
	return &MultiCriteriaWorker{
		data:          data,
		req:           req,
		calc:          calc,
		state:         NewMultiCriteriaArrivalState(calc, data.NumStops(), costFactors),
		maxRides:      req.MaxNumberOfTransfers + 1,
		threshold:     DefaultBinarySearchThreshold,
		sweepPatterns: bitset.New(data.NumPatterns()),
		nextPatterns:  bitset.New(data.NumPatterns()),
		touchedStops:  bitset.New(data.NumStops()),
		pendingMarks:  bitset.New(data.NumStops()),
	}, nil
}

// State exposes the worker's arrival state for inspection and testing.
func (w *MultiCriteriaWorker) State() *MultiCriteriaArrivalState { return w.state }

// Run performs the full multi-criteria search and returns the
// destination-wide pareto-optimal set of journeys.
func (w *MultiCriteriaWorker) Run() MultiCriteriaResponse {
	w.state.ResetPerIteration()
	w.sweepPatterns.Reset()
	w.nextPatterns.Reset()
	w.touchedStops.Reset()
	w.pendingMarks.Reset()

	for _, leg := range w.req.AccessLegs {
		arrival := w.calc.Add(w.req.EarliestDepartureTime, leg.Duration)
		w.state.SetInitialTime(leg.Stop, arrival, leg.Duration)
		w.offerEgressIfMatched(leg.Stop)
		it := w.data.PatternsForStop(leg.Stop)
		for {
			p, ok := it.Next()
			if !ok {
				break
			}
			w.sweepPatterns.Set(int(p))
		}
	}

	for round := 1; round <= w.maxRides; round++ {
		if !w.sweepPatterns.Any() {
			break
		}
		w.sweepRound(round)
		w.relaxTransfers(round)
		w.advanceMarkers()
		w.sweepPatterns, w.nextPatterns = w.nextPatterns, w.sweepPatterns
		w.nextPatterns.Reset()
	}

	return MultiCriteriaResponse{Paths: w.extractPaths()}
}

// mcRide is one actively-boarded trip while walking a pattern forward
// in the multi-criteria sweep. Several rides may be active
// simultaneously on the same pattern in the same round, one per
// distinct boarding that survived onto the pareto front.
type mcRide struct {
	tripIndex int
	board     mcArrivalID
	boardStop StopIndex
	boardTime Seconds
}

func (w *MultiCriteriaWorker) sweepRound(round int) {
	w.sweepPatterns.ForEach(func(pi int) {
		patternIdx := PatternIndex(pi)
		w.sweepPattern(round, patternIdx, w.data.Pattern(patternIdx))
	})
}

func (w *MultiCriteriaWorker) sweepPattern(round int, patternIdx PatternIndex, pattern TripPattern) {
	var activeRides []mcRide

	for _, pos := range w.calc.StopPositions(pattern) {
		stop := pattern.Stops[pos]

		for _, ride := range activeRides {
			trip := pattern.ScheduledTrips[ride.tripIndex]
			alightTime := w.calc.LatestArrivalTime(trip, pos, 0)
			if w.calc.ExceedsTimeLimit(alightTime) {
				continue
			}
			boardArrival := w.state.Arrival(ride.board)
			waitTime := ride.boardTime - boardArrival.time
			inVehicleTime := alightTime - ride.boardTime
			boarding := boardingRef{hasTrip: true, pattern: patternIdx, trip: ride.tripIndex}
			id, accepted := w.state.AddTransitArrival(round, ride.board, stop, alightTime, ride.boardStop, ride.boardTime, waitTime, inVehicleTime, boarding)
			if accepted {
				w.markStopTouched(stop)
				_ = id
			}
		}

		for _, id := range w.state.StopSet(stop).StreamAfterMarker() {
			arrival := w.state.Arrival(id)
			if arrival.arrivedByTransit && arrival.boarding.hasTrip && arrival.boarding.pattern == patternIdx {
				continue
			}
			earliestBoard := w.calc.EarliestBoardTime(arrival.time, w.req.BoardSlackSeconds)
			b, ok := FindEarliestBoarding(pattern.ScheduledTrips, pos, earliestBoard, -1, w.threshold)
			if !ok {
				continue
			}
			replaced := false
			for i, r := range activeRides {
				if r.tripIndex == b.TripIndex {
					if b.BoardTime < r.boardTime {
						activeRides[i] = mcRide{tripIndex: b.TripIndex, board: id, boardStop: stop, boardTime: b.BoardTime}
					}
					replaced = true
					break
				}
			}
			if !replaced {
				activeRides = append(activeRides, mcRide{tripIndex: b.TripIndex, board: id, boardStop: stop, boardTime: b.BoardTime})
			}
		}
	}
}

func (w *MultiCriteriaWorker) relaxTransfers(round int) {
	var stops []StopIndex
	w.touchedStops.ForEach(func(si int) { stops = append(stops, StopIndex(si)) })

	for _, stop := range stops {
		for _, id := range w.state.StopSet(stop).StreamAfterMarker() {
			it := w.data.TransfersFrom(stop)
			for {
				leg, ok := it.Next()
				if !ok {
					break
				}
				arrival := w.state.Arrival(id)
				candidate := w.calc.Add(arrival.time, leg.Duration)
				if w.calc.ExceedsTimeLimit(candidate) {
					continue
				}
				newID, accepted := w.state.AddTransferArrival(round, id, leg, candidate)
				if accepted {
					w.markStopTouched(leg.ToStop)
					_ = newID
				}
			}
		}
	}
}

func (w *MultiCriteriaWorker) markStopTouched(stop StopIndex) {
	w.touchedStops.Set(int(stop))
	w.offerEgressIfMatched(stop)
	w.markPatternsTouchedNextRound(stop)
}

func (w *MultiCriteriaWorker) markPatternsTouchedNextRound(stop StopIndex) {
	it := w.data.PatternsForStop(stop)
	for {
		p, ok := it.Next()
		if !ok {
			break
		}
		w.nextPatterns.Set(int(p))
	}
}

func (w *MultiCriteriaWorker) offerEgressIfMatched(stop StopIndex) {
	for _, leg := range w.req.EgressLegs {
		if leg.Stop != stop {
			continue
		}
		set := w.state.StopSet(stop)
		for _, id := range set.StreamAfterMarker() {
			w.state.OfferDestination(id, leg)
		}
	}
}

// advanceMarkers moves each stop's pareto-set cursor forward, but lags
// one round behind the writes it covers: a stop written in round r is
// only marked consumed once round r+1's sweep has had the chance to
// read it via StreamAfterMarker. Marking it off in the same round it
// was produced would hide that round's output from the very next
// round's board search, starving later legs of a pattern that only
// gets touched a round after the stop feeding it was reached.
func (w *MultiCriteriaWorker) advanceMarkers() {
	w.pendingMarks.ForEach(func(si int) {
		w.state.StopSet(StopIndex(si)).MarkAtEnd()
	})
	w.pendingMarks.Reset()
	w.pendingMarks, w.touchedStops = w.touchedStops, w.pendingMarks
}

// extractPaths walks the destination pareto set's back-link chains
// into Path values.
func (w *MultiCriteriaWorker) extractPaths() []Path {
	all := w.state.Destination().All()
	paths := make([]Path, 0, len(all))
	for _, dest := range all {
		if p, ok := w.reconstructDestination(dest); ok {
			paths = append(paths, p)
		}
	}
	return paths
}

func (w *MultiCriteriaWorker) reconstructDestination(dest DestinationArrival) (Path, bool) {
	var legs []PathLeg
	curID := dest.Arrival
	var curStop StopIndex

	for curID != noArrival {
		a := w.state.Arrival(curID)
		curStop = a.stop
		switch {
		case a.arrivedByTransit:
			legs = append(legs, PathLeg{
				Kind: LegTransit, FromStop: a.boardStop, ToStop: a.stop,
				DepartureTime: a.boardTime, ArrivalTime: a.alightTime,
				Pattern: a.boarding.pattern, TripIndex: a.boarding.trip,
			})
		case a.prev != noArrival:
			legs = append(legs, PathLeg{
				Kind: LegTransfer, FromStop: a.transferFrom, ToStop: a.stop,
				DepartureTime: a.time - a.transferLeg.Duration, ArrivalTime: a.time,
			})
		}
		if a.prev == noArrival {
			break
		}
		curID = a.prev
	}

	root := w.state.Arrival(curID)
	accessLeg := PathLeg{
		Kind: LegAccess, FromStop: noStop, ToStop: curStop,
		DepartureTime: root.time - root.accessDuration, ArrivalTime: root.time,
	}
	egressLeg := PathLeg{
		Kind: LegEgress, FromStop: dest.Egress.Stop, ToStop: noStop,
		DepartureTime: w.state.Arrival(dest.Arrival).time, ArrivalTime: dest.Time,
	}

	ordered := make([]PathLeg, 0, len(legs)+2)
	ordered = append(ordered, accessLeg)
	for i := len(legs) - 1; i >= 0; i-- {
		ordered = append(ordered, legs[i])
	}
	ordered = append(ordered, egressLeg)

	return Path{
		DepartureTime: accessLeg.DepartureTime,
		ArrivalTime:   egressLeg.ArrivalTime,
		Legs:          ordered,
	}, true
}
