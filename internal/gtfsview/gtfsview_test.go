package gtfsview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	raptor "github.com/antigravity/raptor-transit"
)

func TestLoadBuildsProviderFromFixtureFeed(t *testing.T) {
	p, err := Load("testdata/fixture")
	require.NoError(t, err)

	assert.Equal(t, 3, p.NumStops())
	require.Equal(t, 1, p.NumPatterns())

	pattern := p.Pattern(0)
	require.Len(t, pattern.Stops, 3)
	require.Len(t, pattern.ScheduledTrips, 2)

	// sortPatternTrips must leave the earlier-departing trip first.
	assert.Less(t, pattern.ScheduledTrips[0].Departures[0], pattern.ScheduledTrips[1].Departures[0])
}

func TestLoadGroupsTripsSharingAStopSequenceIntoOnePattern(t *testing.T) {
	p, err := Load("testdata/fixture")
	require.NoError(t, err)

	it := p.PatternsForStop(0)
	var patterns []raptor.PatternIndex
	for {
		pi, ok := it.Next()
		if !ok {
			break
		}
		patterns = append(patterns, pi)
	}
	assert.Len(t, patterns, 1, "both trips share the same stop sequence, so stop 0 belongs to exactly one pattern")
}

func TestLoadMissingPathReturnsError(t *testing.T) {
	_, err := Load("testdata/does-not-exist")
	assert.Error(t, err)
}
