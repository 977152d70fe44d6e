package raptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S5: a pareto trade-off between a single slow direct ride and a faster,
// cheaper two-transit alternative. Neither dominates the other, so both
// must survive in the destination set.
func TestMultiCriteriaWorkerParetoTradeOff(t *testing.T) {
	data := newMemoryProvider(3)
	data.addPattern(TripPattern{ // direct, slow: stop0 -> stop1
		Stops: []StopIndex{0, 1},
		ScheduledTrips: []TripSchedule{
			{Departures: []Seconds{60, 0}, Arrivals: []Seconds{0, 1000}},
		},
	})
	data.addPattern(TripPattern{ // first leg of the fast route: stop0 -> stop2
		Stops: []StopIndex{0, 2},
		ScheduledTrips: []TripSchedule{
			{Departures: []Seconds{60, 0}, Arrivals: []Seconds{0, 100}},
		},
	})
	data.addPattern(TripPattern{ // second leg of the fast route: stop2 -> stop1
		Stops: []StopIndex{2, 1},
		ScheduledTrips: []TripSchedule{
			{Departures: []Seconds{160, 0}, Arrivals: []Seconds{0, 260}},
		},
	})

	req := NewRequest()
	req.EarliestDepartureTime = 0
	req.LatestDepartureTime = 0
	req.AccessLegs = []Leg{{Stop: 0}}
	req.EgressLegs = []Leg{{Stop: 1}}

	resp, err := RunMultiCriteria(data, req)
	require.NoError(t, err)
	require.Len(t, resp.Paths, 2, "both the direct and the transfer route should be pareto-optimal")

	byTransits := map[int]Path{}
	for _, p := range resp.Paths {
		byTransits[p.NumTransits()] = p
	}
	require.Contains(t, byTransits, 1)
	require.Contains(t, byTransits, 2)
	assert.Equal(t, Seconds(1000), byTransits[1].ArrivalTime)
	assert.Equal(t, Seconds(260), byTransits[2].ArrivalTime)
	assert.Less(t, byTransits[2].ArrivalTime, byTransits[1].ArrivalTime)
}

func TestMultiCriteriaWorkerUnreachableYieldsNoPaths(t *testing.T) {
	data := newMemoryProvider(2)

	req := NewRequest()
	req.EarliestDepartureTime = 0
	req.LatestDepartureTime = 0
	req.AccessLegs = []Leg{{Stop: 0}}
	req.EgressLegs = []Leg{{Stop: 1}}

	resp, err := RunMultiCriteria(data, req)
	require.NoError(t, err)
	assert.Empty(t, resp.Paths)
}

func TestMultiCriteriaArrivalDominanceTieFavoursTransit(t *testing.T) {
	calc := NewCalculator(Forward, 0, 0)
	state := NewMultiCriteriaArrivalState(calc, 1, DefaultCostFactors())
	a := state.alloc(mcArrival{time: 100, cost: 5, nTransits: 1, arrivedByTransit: true})
	b := state.alloc(mcArrival{time: 100, cost: 5, nTransits: 1, arrivedByTransit: false})

	assert.True(t, state.arrivalDominates(a, b), "an exact tie favours the transit arrival over the transfer arrival")
	assert.False(t, state.arrivalDominates(b, a))
}
