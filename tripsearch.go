package raptor

import "sort"

// DefaultBinarySearchThreshold is the scheduled-trip count above which
// trip search switches from a linear scan to a binary search, per the
// performance contract in §4.2.
const DefaultBinarySearchThreshold = 50

// Boarding is the result of a successful trip search: the index into
// TripPattern.ScheduledTrips and the departure time at the searched
// stop position.
type Boarding struct {
	TripIndex int
	BoardTime Seconds
}

// FindEarliestBoarding returns the earliest trip in pattern whose
// departure at stopPos is at or after earliestBoardTime, tie-broken to
// the lowest trip index. It reports ok=false when no such trip exists.
// Service calendars are not consulted: every trip in trips is treated
// as running.
//
// currentTripIndex, when >= 0, is treated as a hint: the caller
// already knows this trip boards at stopPos, so the search first tries
// a cheap backward scan from it to detect a strictly earlier boardable
// trip (the stop may have been re-reached sooner via a different
// route since currentTripIndex was chosen). If the hint no longer
// boards (earliestBoardTime has moved later than its departure), the
// search falls through to a full scan.
//
// ScheduledTrips is assumed sorted by Departures[stopPos] ascending
// (guaranteed by being sorted on Departures[0] and stop times being
// non-decreasing within a trip). Frequency trips are never visited
// here; callers pass TripPattern.ScheduledTrips, which excludes them.
func FindEarliestBoarding(trips []TripSchedule, stopPos int, earliestBoardTime Seconds, currentTripIndex int, threshold int) (Boarding, bool) {
	if len(trips) == 0 {
		return Boarding{}, false
	}

	if currentTripIndex >= 0 && currentTripIndex < len(trips) &&
		trips[currentTripIndex].Departures[stopPos] >= earliestBoardTime {
		i := currentTripIndex
		for i > 0 && trips[i-1].Departures[stopPos] >= earliestBoardTime {
			i--
		}
		return Boarding{TripIndex: i, BoardTime: trips[i].Departures[stopPos]}, true
	}

	if threshold <= 0 {
		threshold = DefaultBinarySearchThreshold
	}

	var idx int
	if len(trips) < threshold {
		idx = len(trips)
		for i, trip := range trips {
			if trip.Departures[stopPos] >= earliestBoardTime {
				idx = i
				break
			}
		}
	} else {
		idx = sort.Search(len(trips), func(i int) bool {
			return trips[i].Departures[stopPos] >= earliestBoardTime
		})
	}

	if idx >= len(trips) {
		return Boarding{}, false
	}
	debugAssert(trips[idx].Departures[stopPos] >= earliestBoardTime, "found boarding departs before earliest board time")
	return Boarding{TripIndex: idx, BoardTime: trips[idx].Departures[stopPos]}, true
}

// FindLatestAlighting is the reverse-search mirror of
// FindEarliestBoarding: it returns the latest trip whose arrival at
// stopPos is at or before latestAlightTime, tie-broken to the highest
// trip index. ScheduledTrips is still sorted ascending by
// Departures[0]; since stop times are non-decreasing and monotone
// across a pattern's trips, Arrivals[stopPos] is ascending too.
func FindLatestAlighting(trips []TripSchedule, stopPos int, latestAlightTime Seconds, currentTripIndex int, threshold int) (Boarding, bool) {
	if len(trips) == 0 {
		return Boarding{}, false
	}

	if currentTripIndex >= 0 && currentTripIndex < len(trips) &&
		trips[currentTripIndex].Arrivals[stopPos] <= latestAlightTime {
		i := currentTripIndex
		for i < len(trips)-1 && trips[i+1].Arrivals[stopPos] <= latestAlightTime {
			i++
		}
		return Boarding{TripIndex: i, BoardTime: trips[i].Arrivals[stopPos]}, true
	}

	if threshold <= 0 {
		threshold = DefaultBinarySearchThreshold
	}

	idx := -1
	if len(trips) < threshold {
		for i := len(trips) - 1; i >= 0; i-- {
			if trips[i].Arrivals[stopPos] <= latestAlightTime {
				idx = i
				break
			}
		}
	} else {
		// First index whose arrival exceeds the limit; the answer is
		// one before it.
		i := sort.Search(len(trips), func(i int) bool {
			return trips[i].Arrivals[stopPos] > latestAlightTime
		})
		idx = i - 1
	}

	if idx < 0 {
		return Boarding{}, false
	}
	return Boarding{TripIndex: idx, BoardTime: trips[idx].Arrivals[stopPos]}, true
}
