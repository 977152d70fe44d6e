package raptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tripAt(departure Seconds) TripSchedule {
	return TripSchedule{Departures: []Seconds{departure}, Arrivals: []Seconds{departure}}
}

func TestFindEarliestBoardingLinearScan(t *testing.T) {
	trips := []TripSchedule{tripAt(100), tripAt(200), tripAt(300)}
	b, ok := FindEarliestBoarding(trips, 0, 150, -1, 50)
	require.True(t, ok)
	assert.Equal(t, 1, b.TripIndex)
	assert.Equal(t, Seconds(200), b.BoardTime)
}

func TestFindEarliestBoardingBinarySearch(t *testing.T) {
	trips := make([]TripSchedule, 0, 100)
	for i := 0; i < 100; i++ {
		trips = append(trips, tripAt(Seconds(i*60)))
	}
	b, ok := FindEarliestBoarding(trips, 0, 1801, -1, 10)
	require.True(t, ok)
	assert.Equal(t, 31, b.TripIndex)
	assert.Equal(t, Seconds(1860), b.BoardTime)
}

func TestFindEarliestBoardingNoneLeft(t *testing.T) {
	trips := []TripSchedule{tripAt(100), tripAt(200)}
	_, ok := FindEarliestBoarding(trips, 0, 500, -1, 50)
	assert.False(t, ok)
}

func TestFindEarliestBoardingEmptySlice(t *testing.T) {
	_, ok := FindEarliestBoarding(nil, 0, 0, -1, 50)
	assert.False(t, ok)
}

func TestFindEarliestBoardingHintFindsEarlierTrip(t *testing.T) {
	trips := []TripSchedule{tripAt(100), tripAt(200), tripAt(300)}
	// Caller previously boarded index 2; the stop was re-reached sooner,
	// so a backward scan from the hint should surface trip index 0.
	b, ok := FindEarliestBoarding(trips, 0, 50, 2, 50)
	require.True(t, ok)
	assert.Equal(t, 0, b.TripIndex)
}

func TestFindEarliestBoardingHintFallsThroughWhenStale(t *testing.T) {
	trips := []TripSchedule{tripAt(100), tripAt(200), tripAt(300)}
	// The hinted trip no longer boards at the new earliest time; search
	// must fall back to a full scan instead of returning a false miss.
	b, ok := FindEarliestBoarding(trips, 0, 250, 0, 50)
	require.True(t, ok)
	assert.Equal(t, 2, b.TripIndex)
}

func tripWithArrival(arrival Seconds) TripSchedule {
	return TripSchedule{Departures: []Seconds{arrival}, Arrivals: []Seconds{arrival}}
}

func TestFindLatestAlightingLinearScan(t *testing.T) {
	trips := []TripSchedule{tripWithArrival(100), tripWithArrival(200), tripWithArrival(300)}
	b, ok := FindLatestAlighting(trips, 0, 250, -1, 50)
	require.True(t, ok)
	assert.Equal(t, 1, b.TripIndex)
}

func TestFindLatestAlightingNoneLeft(t *testing.T) {
	trips := []TripSchedule{tripWithArrival(100), tripWithArrival(200)}
	_, ok := FindLatestAlighting(trips, 0, 50, -1, 50)
	assert.False(t, ok)
}

func TestFindLatestAlightingBinarySearch(t *testing.T) {
	trips := make([]TripSchedule, 0, 100)
	for i := 0; i < 100; i++ {
		trips = append(trips, tripWithArrival(Seconds(i*60)))
	}
	b, ok := FindLatestAlighting(trips, 0, 1859, -1, 10)
	require.True(t, ok)
	assert.Equal(t, 30, b.TripIndex)
}
