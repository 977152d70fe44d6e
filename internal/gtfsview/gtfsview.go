// Package gtfsview builds a raptor.TransitDataProvider from a parsed
// GTFS feed. It is an external collaborator in the sense of §1 of the
// routing specification: the core raptor package never imports it,
// only the TransitDataProvider interface it satisfies.
package gtfsview

import (
	"fmt"
	"sort"
	"strings"

	"github.com/patrickbr/gtfsparser"
	gtfs "github.com/patrickbr/gtfsparser/gtfs"

	raptor "github.com/antigravity/raptor-transit"
)

// Provider is a read-only, concurrency-safe raptor.TransitDataProvider
// backed by a fully-parsed, immutable GTFS feed. Once built it never
// mutates: every slice is sized once at build time and only read
// afterwards, satisfying the "no internal mutation, no lazy
// initialisation races" requirement for a view shared across workers.
type Provider struct {
	stopCount int

	patterns        []raptor.TripPattern
	patternsForStop [][]raptor.PatternIndex
	transfersFrom   [][]raptor.TransferLeg

	services []*gtfs.Service
}

// Load parses the GTFS feed (directory or zip) at path and builds a
// Provider from it.
func Load(path string) (*Provider, error) {
	feed := gtfsparser.NewFeed()
	if err := feed.Parse(path); err != nil {
		return nil, fmt.Errorf("gtfsview: parse %s: %w", path, err)
	}
	return Build(feed)
}

// Build converts an already-parsed feed into a Provider.
func Build(feed *gtfsparser.Feed) (*Provider, error) {
	b := newBuilder(feed)
	if err := b.run(); err != nil {
		return nil, err
	}
	return &Provider{
		stopCount:       len(b.stopIndex),
		patterns:        b.patterns,
		patternsForStop: b.patternsForStop,
		transfersFrom:   b.transfersFrom,
		services:        b.services,
	}, nil
}

func (p *Provider) NumStops() int    { return p.stopCount }
func (p *Provider) NumPatterns() int { return len(p.patterns) }

func (p *Provider) TransfersFrom(stop raptor.StopIndex) raptor.TransferIterator {
	return raptor.NewTransferSliceIterator(p.transfersFrom[stop])
}

func (p *Provider) PatternsForStop(stop raptor.StopIndex) raptor.PatternIterator {
	return raptor.NewPatternSliceIterator(p.patternsForStop[stop])
}

func (p *Provider) Pattern(idx raptor.PatternIndex) raptor.TripPattern {
	return p.patterns[idx]
}

func (p *Provider) IsServiceActive(serviceID int32, date raptor.CivilDate) bool {
	if int(serviceID) < 0 || int(serviceID) >= len(p.services) {
		return false
	}
	return p.services[serviceID].IsActiveOn(gtfs.NewDate(uint8(date.Day), uint8(date.Month), uint16(date.Year)))
}

// builder does the one-time, sequential work of turning map-keyed GTFS
// records (whose iteration order Go deliberately randomises) into the
// stable, contiguous index space raptor.TransitDataProvider requires.
type builder struct {
	feed *gtfsparser.Feed

	stopIndex map[*gtfs.Stop]raptor.StopIndex
	patterns  []raptor.TripPattern
	patternsForStop [][]raptor.PatternIndex
	transfersFrom   [][]raptor.TransferLeg

	serviceIndex map[*gtfs.Service]int32
	services     []*gtfs.Service

	patternKeyIndex map[string]raptor.PatternIndex
}

func newBuilder(feed *gtfsparser.Feed) *builder {
	return &builder{
		feed:            feed,
		stopIndex:       make(map[*gtfs.Stop]raptor.StopIndex, len(feed.Stops)),
		serviceIndex:    make(map[*gtfs.Service]int32),
		patternKeyIndex: make(map[string]raptor.PatternIndex),
	}
}

func (b *builder) run() error {
	b.indexStops()
	b.indexTransfers()
	if err := b.indexTrips(); err != nil {
		return err
	}
	b.sortPatternTrips()
	return nil
}

// indexStops assigns every stop a contiguous StopIndex, sorted by GTFS
// stop id for a build that is deterministic across runs of the same
// feed.
func (b *builder) indexStops() {
	ids := make([]string, 0, len(b.feed.Stops))
	for id := range b.feed.Stops {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for i, id := range ids {
		b.stopIndex[b.feed.Stops[id]] = raptor.StopIndex(i)
	}
	b.patternsForStop = make([][]raptor.PatternIndex, len(ids))
	b.transfersFrom = make([][]raptor.TransferLeg, len(ids))
}

func (b *builder) indexTransfers() {
	for key, transfer := range b.feed.Transfers {
		if key.From_stop == nil || key.To_stop == nil {
			continue
		}
		from, ok := b.stopIndex[key.From_stop]
		if !ok {
			continue
		}
		to, ok := b.stopIndex[key.To_stop]
		if !ok {
			continue
		}
		duration := raptor.Seconds(transfer.Min_transfer_time)
		b.transfersFrom[from] = append(b.transfersFrom[from], raptor.TransferLeg{
			FromStop: from, ToStop: to, Duration: duration,
		})
	}
}

// indexTrips groups trips into patterns keyed by their ordered stop
// sequence, per §3 ("an ordered sequence of stops traversed by a set
// of trips"), and builds each trip's TripSchedule.
func (b *builder) indexTrips() error {
	tripIDs := make([]string, 0, len(b.feed.Trips))
	for id := range b.feed.Trips {
		tripIDs = append(tripIDs, id)
	}
	sort.Strings(tripIDs)

	for _, tid := range tripIDs {
		trip := b.feed.Trips[tid]
		if len(trip.StopTimes) == 0 {
			continue
		}

		stops := make([]raptor.StopIndex, len(trip.StopTimes))
		arrivals := make([]raptor.Seconds, len(trip.StopTimes))
		departures := make([]raptor.Seconds, len(trip.StopTimes))
		var key strings.Builder
		for i, st := range trip.StopTimes {
			stopIdx, ok := b.stopIndex[st.Stop()]
			if !ok {
				return fmt.Errorf("gtfsview: trip %s references an unindexed stop", tid)
			}
			stops[i] = stopIdx
			arrivals[i] = raptor.Seconds(st.Arrival_time().SecondsSinceMidnight())
			departures[i] = raptor.Seconds(st.Departure_time().SecondsSinceMidnight())
			if i > 0 {
				key.WriteByte(',')
			}
			fmt.Fprintf(&key, "%d", stopIdx)
		}

		patternIdx, isNew := b.patternIndexFor(key.String(), stops)

		schedule := raptor.TripSchedule{
			ServiceID:  b.serviceIDFor(trip.Service),
			Arrivals:   arrivals,
			Departures: departures,
		}

		if trip.Frequencies != nil && len(*trip.Frequencies) > 0 {
			for _, f := range *trip.Frequencies {
				schedule.HeadwaySeconds = append(schedule.HeadwaySeconds, f.Headway_secs)
				schedule.StartTimes = append(schedule.StartTimes, raptor.Seconds(f.Start_time.SecondsSinceMidnight()))
				schedule.EndTimes = append(schedule.EndTimes, raptor.Seconds(f.End_time.SecondsSinceMidnight()))
			}
			b.patterns[patternIdx].FrequencyTrips = append(b.patterns[patternIdx].FrequencyTrips, schedule)
		} else {
			b.patterns[patternIdx].ScheduledTrips = append(b.patterns[patternIdx].ScheduledTrips, schedule)
		}

		if isNew {
			for _, stopIdx := range stops {
				b.patternsForStop[stopIdx] = append(b.patternsForStop[stopIdx], patternIdx)
			}
		}
	}
	return nil
}

func (b *builder) patternIndexFor(key string, stops []raptor.StopIndex) (raptor.PatternIndex, bool) {
	if idx, ok := b.patternKeyIndex[key]; ok {
		return idx, false
	}
	idx := raptor.PatternIndex(len(b.patterns))
	b.patterns = append(b.patterns, raptor.TripPattern{Stops: stops})
	b.patternKeyIndex[key] = idx
	return idx, true
}

func (b *builder) serviceIDFor(svc *gtfs.Service) int32 {
	if id, ok := b.serviceIndex[svc]; ok {
		return id
	}
	id := int32(len(b.services))
	b.services = append(b.services, svc)
	b.serviceIndex[svc] = id
	return id
}

// sortPatternTrips enforces the "sorted by departures[0] ascending"
// precondition trip search relies on (§3, §4.2).
func (b *builder) sortPatternTrips() {
	for i := range b.patterns {
		trips := b.patterns[i].ScheduledTrips
		sort.Slice(trips, func(a, c int) bool {
			return trips[a].Departures[0] < trips[c].Departures[0]
		})
	}
}
