package raptor

// FrequencyBoardingMode selects how a Monte-Carlo/bounding iteration
// resolves the wait time at a headway-defined trip (§4.7).
type FrequencyBoardingMode int

const (
	// BestCase boards immediately once the earliest-board time falls
	// inside the frequency entry's window, modelling zero wait.
	BestCase FrequencyBoardingMode = iota
	// WorstCase waits a full headway, modelling the unluckiest rider.
	WorstCase
	// Random draws a uniform offset in [0, headway) from a seeded
	// FrequencyRandom. A fresh offset is drawn every time an entry's
	// boarding is evaluated (each stop position, each round); offsets
	// are not fixed per (pattern, trip, entry) for an iteration.
	Random
)

// frequencyBoarding is the result of attempting to board a
// headway-defined trip at one stop position under one entry.
type frequencyBoarding struct {
	entry     int
	boardTime Seconds
	ok        bool
}

// boardFrequencyEntry computes the boarding time for frequency trip's
// entry-th (start, end, headway) block at stopPos, given the rider is
// ready to board at earliestBoardTime. It reports ok=false when the
// entry's window cannot produce a boardable departure.
func boardFrequencyEntry(trip TripSchedule, entry int, stopPos int, earliestBoardTime Seconds, mode FrequencyBoardingMode, rng FrequencyRandom) frequencyBoarding {
	start := trip.StartTimes[entry]
	end := trip.EndTimes[entry]
	headway := trip.HeadwaySeconds[entry]

	ready := earliestBoardTime
	if ready < start {
		ready = start
	}
	if ready > end {
		return frequencyBoarding{ok: false}
	}

	var boardTime Seconds
	switch mode {
	case BestCase:
		boardTime = ready
	case WorstCase:
		boardTime = ready + Seconds(headway)
	case Random:
		boardTime = ready + uniformOffset(rng, headway)
	default:
		boardTime = ready
	}
	if boardTime > end {
		if mode == BestCase {
			return frequencyBoarding{ok: false}
		}
		boardTime = end
	}
	return frequencyBoarding{entry: entry, boardTime: boardTime, ok: true}
}

// bestFrequencyBoarding scans every entry of a frequency trip and
// returns the earliest resulting boarding, per the documented
// boarding-mode semantics. It is the frequency analogue of
// FindEarliestBoarding.
func bestFrequencyBoarding(trip TripSchedule, stopPos int, earliestBoardTime Seconds, mode FrequencyBoardingMode, rng FrequencyRandom) frequencyBoarding {
	best := frequencyBoarding{ok: false}
	for e := range trip.HeadwaySeconds {
		b := boardFrequencyEntry(trip, e, stopPos, earliestBoardTime, mode, rng)
		if !b.ok {
			continue
		}
		if !best.ok || b.boardTime < best.boardTime {
			best = b
		}
	}
	return best
}

// frequencyAlightTime projects the in-vehicle travel time from the
// trip's reference run onto a boarding that happened at boardTime,
// landing at alightPos.
func frequencyAlightTime(trip TripSchedule, boardPos, alightPos int, boardTime Seconds) Seconds {
	return boardTime + (trip.Arrivals[alightPos] - trip.Departures[boardPos])
}
