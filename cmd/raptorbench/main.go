// Command raptorbench loads a GTFS feed, runs one Range-RAPTOR query
// against it, and prints the resulting egress arrival times. It exists
// to exercise the raptor engine end to end against a real feed; it is
// scaffolding, not part of the core routing engine.
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	raptor "github.com/antigravity/raptor-transit"
	"github.com/antigravity/raptor-transit/internal/gtfsview"
	"github.com/antigravity/raptor-transit/internal/telemetry"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "raptorbench - Range-RAPTOR benchmark/demo CLI\n\nUsage:\n\n  %s [<options>] <gtfs feed path>\n\nAllowed options:\n\n", os.Args[0])
		flag.PrintDefaults()
	}

	fromStop := flag.StringP("from", "f", "", "access stop index (numeric)")
	toStop := flag.StringP("to", "t", "", "egress stop index (numeric)")
	earliest := flag.IntP("earliest", "e", 8*3600, "earliest departure time, seconds since midnight")
	latest := flag.IntP("latest", "l", 9*3600, "latest departure time, seconds since midnight")
	profile := flag.StringP("profile", "p", "range_raptor", "standard|range_raptor|std_range_raptor_with_heuristics|multi_criteria")
	reverse := flag.BoolP("reverse", "r", false, "search backward from the latest departure time instead of forward from the earliest")
	verbose := flag.BoolP("verbose", "v", false, "debug-level logging")
	flag.Parse()

	log := telemetry.New()
	if *verbose {
		log.SetLevel(telemetry.Debug)
	}

	args := flag.Args()
	if len(args) != 1 || *fromStop == "" || *toStop == "" {
		flag.Usage()
		os.Exit(2)
	}

	provider, err := gtfsview.Load(args[0])
	if err != nil {
		log.Error("failed to load feed", telemetry.String("path", args[0]), telemetry.String("error", err.Error()))
		os.Exit(1)
	}

	req := raptor.NewRequest()
	req.EarliestDepartureTime = raptor.Seconds(*earliest)
	req.LatestDepartureTime = raptor.Seconds(*latest)
	req.AccessLegs = []raptor.Leg{{Stop: mustFindStop(provider, *fromStop, log)}}
	req.EgressLegs = []raptor.Leg{{Stop: mustFindStop(provider, *toStop, log)}}
	req.Profile = parseProfile(*profile)
	if *reverse {
		req.Direction = raptor.Reverse
	}

	result, err := raptor.Route(provider, req)
	if err != nil {
		log.Error("request failed", telemetry.String("error", err.Error()))
		os.Exit(1)
	}
	report(log, result)
}

// mustFindStop is a placeholder lookup: raptorbench is a demo CLI, not
// a production router, so it trusts the caller to pass a numeric stop
// index rather than resolving a GTFS stop_id through a name index.
func mustFindStop(provider *gtfsview.Provider, raw string, log telemetry.Logger) raptor.StopIndex {
	var idx int
	if _, err := fmt.Sscanf(raw, "%d", &idx); err != nil || idx < 0 || idx >= provider.NumStops() {
		log.Error("invalid stop index", telemetry.String("value", raw))
		os.Exit(2)
	}
	return raptor.StopIndex(idx)
}

func parseProfile(s string) raptor.Profile {
	switch s {
	case "standard":
		return raptor.ProfileStandard
	case "multi_criteria":
		return raptor.ProfileMultiCriteria
	case "std_range_raptor_with_heuristics":
		return raptor.ProfileStdRangeRaptorWithHeuristics
	default:
		return raptor.ProfileRangeRaptor
	}
}

func report(log telemetry.Logger, result any) {
	switch r := result.(type) {
	case *raptor.StandardResponse:
		for i, m := range r.IterationDepartureTimes {
			fmt.Printf("departure %6d -> %v\n", m, r.ArrivalsByEgress[i])
		}
	case *raptor.FrequencyResponse:
		for _, it := range r.Iterations {
			fmt.Printf("departure %6d best=%v worst=%v draws=%d\n", it.DepartureTime, it.BestCase, it.WorstCase, len(it.RandomDraws))
		}
	case *raptor.MultiCriteriaResponse:
		fmt.Printf("%d pareto-optimal paths\n", len(r.Paths))
		for _, p := range r.Paths {
			fmt.Printf("  arrive=%d transits=%d legs=%d\n", p.ArrivalTime, p.NumTransits(), len(p.Legs))
		}
	default:
		log.Warn("unrecognised response type")
	}
}
