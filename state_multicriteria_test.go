package raptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiCriteriaStateSetInitialTimeSeedsRoundZero(t *testing.T) {
	calc := NewCalculator(Forward, 0, 0)
	state := NewMultiCriteriaArrivalState(calc, 2, DefaultCostFactors())

	ok := state.SetInitialTime(0, 100, 100)
	assert.True(t, ok)
	all := state.StopSet(0).All()
	require.Len(t, all, 1)
	a := state.Arrival(all[0])
	assert.Equal(t, Seconds(100), a.time)
	assert.Equal(t, noArrival, a.prev)
}

func TestMultiCriteriaStateAddTransitArrivalChainsBackLink(t *testing.T) {
	calc := NewCalculator(Forward, 0, 0)
	state := NewMultiCriteriaArrivalState(calc, 2, DefaultCostFactors())
	state.SetInitialTime(0, 0, 0)
	root := state.StopSet(0).All()[0]

	id, accepted := state.AddTransitArrival(1, root, 1, 500, 0, 60, 60, 440, boardingRef{hasTrip: true})
	require.True(t, accepted)
	a := state.Arrival(id)
	assert.Equal(t, Seconds(500), a.time)
	assert.Equal(t, 1, a.nTransits)
	assert.Equal(t, root, a.prev)
	assert.True(t, a.arrivedByTransit)
}

func TestMultiCriteriaStateAddTransferArrivalChargesWalkReluctance(t *testing.T) {
	calc := NewCalculator(Forward, 0, 0)
	state := NewMultiCriteriaArrivalState(calc, 2, DefaultCostFactors())
	state.SetInitialTime(0, 0, 0)
	root := state.StopSet(0).All()[0]

	id, accepted := state.AddTransferArrival(0, root, TransferLeg{FromStop: 0, ToStop: 1, Duration: 120}, 120)
	require.True(t, accepted)
	a := state.Arrival(id)
	assert.False(t, a.arrivedByTransit)
	assert.Equal(t, StopIndex(0), a.transferFrom)
	assert.Equal(t, DefaultCostFactors().WalkReluctance*120, a.cost)
}

func TestMultiCriteriaStateOfferDestinationRejectsDominatedJourney(t *testing.T) {
	calc := NewCalculator(Forward, 0, 0)
	state := NewMultiCriteriaArrivalState(calc, 1, DefaultCostFactors())
	fast := state.alloc(mcArrival{time: 100, cost: 10, nTransits: 1})
	slow := state.alloc(mcArrival{time: 200, cost: 20, nTransits: 1})

	leg := Leg{Stop: 0}
	assert.True(t, state.OfferDestination(fast, leg))
	assert.False(t, state.OfferDestination(slow, leg), "strictly worse on every criterion must be rejected")
}

func TestMultiCriteriaStateResetPerIterationClearsEverything(t *testing.T) {
	calc := NewCalculator(Forward, 0, 0)
	state := NewMultiCriteriaArrivalState(calc, 2, DefaultCostFactors())
	state.SetInitialTime(0, 0, 0)
	state.OfferDestination(state.StopSet(0).All()[0], Leg{Stop: 0})

	state.ResetPerIteration()
	assert.Empty(t, state.StopSet(0).All())
	assert.Empty(t, state.Destination().All())
}
