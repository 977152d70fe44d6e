package raptor

// mcArrivalID indexes into a MultiCriteriaArrivalState's arena.
// noArrival marks "no predecessor" at the root of a back-link chain.
type mcArrivalID int32

const noArrival mcArrivalID = -1

// mcArrival is one candidate arrival in the multi-criteria search: a
// point in (arrival_time, n_transits, cost) space, back-linked to the
// arrival it was reached from rather than merely to a stop, per §4.5 —
// two arrivals can share a stop without sharing a predecessor.
type mcArrival struct {
	time             Seconds
	round            int
	nTransits        int
	cost             float64
	stop             StopIndex
	arrivedByTransit bool

	boardStop  StopIndex
	boardTime  Seconds
	alightTime Seconds
	boarding   boardingRef

	transferFrom StopIndex
	transferLeg  TransferLeg

	accessDuration Seconds

	prev mcArrivalID
}

// DestinationArrival is a candidate journey end: an mcArrival plus the
// egress leg that completes it, with the egress cost folded in.
type DestinationArrival struct {
	Arrival     mcArrivalID
	Egress      Leg
	Time        Seconds
	Cost        float64
	NumTransits int
}

// MultiCriteriaArrivalState holds, per stop, a pareto set of arrivals
// trading off arrival time, transit count and generalised cost (§4.5),
// plus a destination-wide pareto set of completed journeys. All
// arrivals live in a single growable arena so back-links are plain
// indices rather than owning pointers, per the design notes in §9.
type MultiCriteriaArrivalState struct {
	calc        TransitCalculator
	costFactors CostFactors

	arena []mcArrival

	perStop     []*ParetoSet[mcArrivalID]
	destination *ParetoSet[DestinationArrival]
}

// NewMultiCriteriaArrivalState builds empty per-stop pareto sets for
// numStops stops and an empty destination set.
func NewMultiCriteriaArrivalState(calc TransitCalculator, numStops int, costFactors CostFactors) *MultiCriteriaArrivalState {
	s := &MultiCriteriaArrivalState{
		calc:        calc,
		costFactors: costFactors,
		perStop:     make([]*ParetoSet[mcArrivalID], numStops),
	}
	for i := range s.perStop {
		s.perStop[i] = NewParetoSet(s.arrivalDominates)
	}
	s.destination = NewParetoSet(s.destinationDominates)
	return s
}

// arrivalDominates is the per-criterion Dominance predicate ParetoSet
// expects: a is strictly better than b on at least one of
// (arrival_time, cost, n_transits). At exact equality on all three, a
// transit arrival dominates a transfer arrival (a transit arrival can
// still be relaxed by transfers; a transfer arrival occupying the same
// point in criteria-space adds nothing further).
func (s *MultiCriteriaArrivalState) arrivalDominates(a, b mcArrivalID) bool {
	av, bv := s.arena[a], s.arena[b]

	if s.calc.IsBest(av.time, bv.time) || av.cost < bv.cost || av.nTransits < bv.nTransits {
		return true
	}
	exactTie := av.time == bv.time && av.cost == bv.cost && av.nTransits == bv.nTransits
	return exactTie && av.arrivedByTransit && !bv.arrivedByTransit
}

func (s *MultiCriteriaArrivalState) destinationDominates(a, b DestinationArrival) bool {
	return s.calc.IsBest(a.Time, b.Time) || a.Cost < b.Cost || a.NumTransits < b.NumTransits
}

func (s *MultiCriteriaArrivalState) alloc(a mcArrival) mcArrivalID {
	s.arena = append(s.arena, a)
	return mcArrivalID(len(s.arena) - 1)
}

// Arrival dereferences an arrival id. Valid for the lifetime of the
// state (the arena never shrinks or relocates entries).
func (s *MultiCriteriaArrivalState) Arrival(id mcArrivalID) mcArrival { return s.arena[id] }

// SetInitialTime seeds stop with a round-0, zero-transit arrival
// reached from an access leg of the given duration.
func (s *MultiCriteriaArrivalState) SetInitialTime(stop StopIndex, arrivalTime Seconds, duration Seconds) bool {
	id := s.alloc(mcArrival{
		time: arrivalTime, round: 0, stop: stop, prev: noArrival,
		accessDuration: duration,
		cost:           s.costFactors.WalkReluctance * float64(duration),
	})
	return s.perStop[stop].Add(id)
}

// AddTransitArrival offers a candidate reached by riding boarding from
// (boardStop, boardTime), boarded after waiting waitTime at boardStop,
// spending inVehicleTime aboard, alighting at stop at alightTime with
// predecessor prevID. It returns true iff accepted into stop's pareto
// set.
func (s *MultiCriteriaArrivalState) AddTransitArrival(round int, prevID mcArrivalID, stop StopIndex, alightTime Seconds, boardStop StopIndex, boardTime Seconds, waitTime, inVehicleTime Seconds, boarding boardingRef) (mcArrivalID, bool) {
	prev := s.arena[prevID]
	cost := prev.cost + float64(s.costFactors.BoardCost) +
		s.costFactors.WaitReluctance*float64(waitTime) + float64(inVehicleTime)
	id := s.alloc(mcArrival{
		time: alightTime, round: round, nTransits: prev.nTransits + 1,
		cost: cost, stop: stop, arrivedByTransit: true,
		boardStop: boardStop, boardTime: boardTime, alightTime: alightTime,
		boarding: boarding, transferFrom: noStop, prev: prevID,
	})
	return id, s.perStop[stop].Add(id)
}

// AddTransferArrival offers a candidate reached by walking leg from
// fromID's stop, landing at arrivalTime.
func (s *MultiCriteriaArrivalState) AddTransferArrival(round int, fromID mcArrivalID, leg TransferLeg, arrivalTime Seconds) (mcArrivalID, bool) {
	from := s.arena[fromID]
	cost := from.cost + s.costFactors.WalkReluctance*float64(leg.Duration)
	id := s.alloc(mcArrival{
		time: arrivalTime, round: round, nTransits: from.nTransits,
		cost: cost, stop: leg.ToStop, arrivedByTransit: false,
		transferFrom: leg.FromStop, transferLeg: leg, prev: fromID,
	})
	return id, s.perStop[leg.ToStop].Add(id)
}

// OfferDestination folds egress onto id and offers the resulting
// journey to the destination-wide pareto set.
func (s *MultiCriteriaArrivalState) OfferDestination(id mcArrivalID, egress Leg) bool {
	a := s.arena[id]
	finalTime := s.calc.Add(a.time, egress.Duration)
	cand := DestinationArrival{
		Arrival: id, Egress: egress, Time: finalTime,
		Cost: a.cost + s.costFactors.WalkReluctance*float64(egress.Duration),
		NumTransits: a.nTransits,
	}
	return s.destination.Add(cand)
}

// StopSet returns the pareto set of arrivals recorded at stop.
func (s *MultiCriteriaArrivalState) StopSet(stop StopIndex) *ParetoSet[mcArrivalID] {
	return s.perStop[stop]
}

// Destination returns the destination-wide pareto set of completed
// journeys.
func (s *MultiCriteriaArrivalState) Destination() *ParetoSet[DestinationArrival] {
	return s.destination
}

// ResetPerIteration clears every per-stop set, the destination set,
// and the arena, ahead of an independent multi-criteria search. Unlike
// the standard state, multi-criteria searches are not range-chained
// across departure minutes (the pareto front does not compose the
// same way a scalar upper bound does), so nothing is carried over.
func (s *MultiCriteriaArrivalState) ResetPerIteration() {
	s.arena = s.arena[:0]
	for _, set := range s.perStop {
		set.Clear()
	}
	s.destination.Clear()
}
