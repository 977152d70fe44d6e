package raptor

import "github.com/antigravity/raptor-transit/internal/bitset"

// boardingRef identifies the vehicle a standard-state arrival boarded,
// for path reconstruction: which pattern, which trip within it.
type boardingRef struct {
	hasTrip        bool
	pattern        PatternIndex
	trip           int
	isFrequency    bool
	frequencyEntry int
}

// standardArrival is one (round, stop) cell of the standard arrival
// state: the best known arrival time together with enough of its
// provenance to reconstruct a path, per §4.4/§3.
type standardArrival struct {
	valid            bool
	time             Seconds
	arrivedByTransit bool
	boardStop        StopIndex
	boardTime        Seconds
	alightTime       Seconds
	boarding         boardingRef
	transferFrom     StopIndex // noStop if not reached by transfer
	transferLeg      TransferLeg
	accessDuration   Seconds // valid only when this is an access-seeded arrival (!hasPrev)
	hasPrev          bool
	prevRound        int
	prevStop         StopIndex
}

// StandardArrivalState holds, for each of rounds+1 rounds, the best
// arrival time per stop, plus per-round scratch used while sweeping
// patterns and relaxing transfers (§4.4). A single instance is built
// once per worker call and reused across every departure minute the
// Range-RAPTOR sweep visits. Best times are not carried from one minute
// into the next: round 0 holds only the access seeds and beginRound
// overwrites round r with round r-1, so every minute's rounds are
// rebuilt from that minute's own seeds.
type StandardArrivalState struct {
	calc      TransitCalculator
	numStops  int
	numRounds int // R = max rides (max_number_of_transfers+1); rounds 0..R

	best [][]standardArrival // [round][stop], the committed state

	// transitCandidate is this round's best transit-only (non-transfer)
	// arrival per stop, reset to "unreached" at the start of every
	// round. It backs best_non_transfer_time comparisons during the
	// pattern sweep, kept separate from best[] because a transfer may
	// later improve a stop beyond what transit alone achieved this
	// round, but must never look like it also improved the transit
	// record.
	transitCandidate []standardArrival

	touchedStops *bitset.Bitset // stops improved this round (scratch)

	// Pattern touching is double-buffered: sweepPatterns holds the
	// patterns to walk *this* round, nextPatterns accumulates the
	// patterns to walk next round. They are swapped at round end so
	// marking never mutates the set currently being iterated.
	sweepPatterns *bitset.Bitset
	nextPatterns  *bitset.Bitset
}

// NewStandardArrivalState builds state for a transit data view with
// numStops stops and a worker configured for at most numRounds
// transits (numRounds+1 rounds, round 0 being access-only).
func NewStandardArrivalState(calc TransitCalculator, numStops, numRounds int) *StandardArrivalState {
	s := &StandardArrivalState{
		calc:      calc,
		numStops:  numStops,
		numRounds: numRounds,
		best:      make([][]standardArrival, numRounds+1),
	}
	for r := range s.best {
		s.best[r] = make([]standardArrival, numStops)
	}
	s.transitCandidate = make([]standardArrival, numStops)
	s.touchedStops = bitset.New(numStops)
	s.sweepPatterns = bitset.New(0)
	s.nextPatterns = bitset.New(0)
	return s
}

// EnsurePatternCapacity grows the pattern bitsets to cover numPatterns
// patterns; called once at construction by the worker, which knows the
// pattern count the state does not.
func (s *StandardArrivalState) EnsurePatternCapacity(numPatterns int) {
	if s.sweepPatterns.Len() < numPatterns {
		s.sweepPatterns = bitset.New(numPatterns)
	}
	if s.nextPatterns.Len() < numPatterns {
		s.nextPatterns = bitset.New(numPatterns)
	}
}

// BestTime returns the committed best arrival at stop after round r,
// or the calculator's unreached sentinel if none.
func (s *StandardArrivalState) BestTime(r int, stop StopIndex) Seconds {
	a := s.best[r][stop]
	if !a.valid {
		return s.calc.UnreachedTime()
	}
	return a.time
}

// BestTimePreviousRound is the read-only lookup the current round's
// pattern sweep uses to decide boarding eligibility: best_time[k-1][stop].
func (s *StandardArrivalState) BestTimePreviousRound(round int, stop StopIndex) Seconds {
	if round == 0 {
		return s.calc.UnreachedTime()
	}
	return s.BestTime(round-1, stop)
}

// SetInitialTime seeds round 0 from an access leg: the worker has
// reached stop at arrivalTime by walking duration seconds from an
// access point.
func (s *StandardArrivalState) SetInitialTime(stop StopIndex, arrivalTime Seconds, duration Seconds) {
	s.best[0][stop] = standardArrival{
		valid:          true,
		time:           arrivalTime,
		hasPrev:        false,
		accessDuration: duration,
	}
	s.touchedStops.Set(int(stop))
}

// SeedTouchedPattern marks p to be swept in the round about to start
// (round 1), used once while seeding access stops.
func (s *StandardArrivalState) SeedTouchedPattern(p PatternIndex) {
	s.sweepPatterns.Set(int(p))
}

// beginRound carries round-1's committed times forward as round r's
// starting upper bound and clears the per-round transit-candidate
// scratch. It must be called once before sweeping round r.
func (s *StandardArrivalState) beginRound(r int) {
	if r > 0 {
		copy(s.best[r], s.best[r-1])
	}
	for i := range s.transitCandidate {
		s.transitCandidate[i] = standardArrival{}
	}
}

// TransitToStop records a transit arrival produced while sweeping
// round round: riding from boardStop (boarded at boardTime) through
// boarding, alighting at stop at alightTime. It returns true if this
// improved the stop's best_non_transfer_time and/or overall best_time,
// matching the "touched iff strictly improved" invariant in §4.4.
func (s *StandardArrivalState) TransitToStop(round int, stop StopIndex, alightTime Seconds, boardStop StopIndex, boardTime Seconds, boarding boardingRef) bool {
	cur := s.transitCandidate[stop]
	improvesTransit := !cur.valid || s.calc.IsBest(alightTime, cur.time)
	if improvesTransit {
		s.transitCandidate[stop] = standardArrival{
			valid: true, time: alightTime, arrivedByTransit: true,
			boardStop: boardStop, boardTime: boardTime,
			alightTime: alightTime, boarding: boarding,
			transferFrom: noStop,
		}
	}

	committed := s.best[round][stop]
	improvesOverall := !committed.valid || s.calc.IsBest(alightTime, committed.time)
	if improvesOverall {
		prevRound, prevStop, hasPrev := s.backLinkForBoard(round, boardStop)
		s.best[round][stop] = standardArrival{
			valid: true, time: alightTime, arrivedByTransit: true,
			boardStop: boardStop, boardTime: boardTime,
			alightTime: alightTime, boarding: boarding,
			transferFrom: noStop,
			hasPrev:      hasPrev, prevRound: prevRound, prevStop: prevStop,
		}
		s.touchedStops.Set(int(stop))
	}
	return improvesTransit || improvesOverall
}

// backLinkForBoard finds the arrival record a new transit leg boarded
// from: the board stop's best arrival in the *previous* round (a
// transit leg always rides on top of a previous round's arrival).
func (s *StandardArrivalState) backLinkForBoard(round int, boardStop StopIndex) (prevRound int, prevStop StopIndex, hasPrev bool) {
	if round == 0 {
		return 0, boardStop, false
	}
	return round - 1, boardStop, true
}

// TransferToStop records a transfer-relaxation arrival at toStop,
// reached from fromStop via leg, landing at arrivalTime. It returns
// true iff this improved toStop's overall best_time this round.
func (s *StandardArrivalState) TransferToStop(round int, fromStop StopIndex, leg TransferLeg, arrivalTime Seconds) bool {
	toStop := leg.ToStop
	cur := s.best[round][toStop]
	if cur.valid && !s.calc.IsBest(arrivalTime, cur.time) {
		return false
	}
	s.best[round][toStop] = standardArrival{
		valid: true, time: arrivalTime, arrivedByTransit: false,
		transferFrom: fromStop, transferLeg: leg,
		hasPrev: true, prevRound: round, prevStop: fromStop,
	}
	s.touchedStops.Set(int(toStop))
	return true
}

// MarkPatternsTouchedByStop marks every pattern yielded by patterns as
// touched for the next round's sweep.
func (s *StandardArrivalState) MarkPatternsTouchedByStop(patterns PatternIterator) {
	for {
		p, ok := patterns.Next()
		if !ok {
			break
		}
		s.nextPatterns.Set(int(p))
	}
}

// TouchedStops exposes the round-local touched-stop bitset so the
// worker can drive transfer relaxation.
func (s *StandardArrivalState) TouchedStops() *bitset.Bitset { return s.touchedStops }

// SweepPatterns exposes the pattern bitset to walk this round.
func (s *StandardArrivalState) SweepPatterns() *bitset.Bitset { return s.sweepPatterns }

// AdvanceRound swaps the double-buffered pattern sets: patterns
// accumulated into "next" during this round (by pattern sweep and
// transfer relaxation alike) become the sweep set for the following
// round, and the old sweep set is cleared for reuse as the new
// accumulator.
func (s *StandardArrivalState) AdvanceRound() {
	s.sweepPatterns, s.nextPatterns = s.nextPatterns, s.sweepPatterns
	s.nextPatterns.Reset()
}

// ResetPerIteration clears round-local touched sets ahead of a new
// departure minute. It leaves best[] in place, but beginRound rebuilds
// each round from the one before it, so no arrival from an
// earlier-processed minute reaches this minute's results.
func (s *StandardArrivalState) ResetPerIteration() {
	s.touchedStops.Reset()
	s.sweepPatterns.Reset()
	s.nextPatterns.Reset()
}

// arrivalAt returns the committed arrival record for (round, stop),
// used by path reconstruction.
func (s *StandardArrivalState) arrivalAt(round int, stop StopIndex) standardArrival {
	return s.best[round][stop]
}
