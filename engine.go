package raptor

// FrequencyResponse is the result shape for ProfileStdRangeRaptorWithHeuristics:
// one FrequencyMinuteResult per swept departure minute.
type FrequencyResponse struct {
	Iterations []FrequencyMinuteResult
}

// RunStandard answers a single-criterion, single-departure query:
// ProfileStandard runs the worker once at req.EarliestDepartureTime.
func RunStandard(data TransitDataProvider, req Request) (*StandardResponse, error) {
	w, err := NewStandardWorker(data, req)
	if err != nil {
		return nil, err
	}
	round := w.RunMinute(req.EarliestDepartureTime)
	return &StandardResponse{
		IterationDepartureTimes: []Seconds{req.EarliestDepartureTime},
		ArrivalsByEgress:        [][]Seconds{w.extractEgressTimes(round, req.EarliestDepartureTime)},
	}, nil
}

// RunRangeRaptor answers ProfileRangeRaptor: a single-criterion search
// swept across every departure minute in
// [EarliestDepartureTime, LatestDepartureTime], latest first, with one
// worker whose state is reused across minutes. Each minute's best times
// are rebuilt from its own access seeds; none are carried over from the
// later minute.
func RunRangeRaptor(data TransitDataProvider, req Request) (*StandardResponse, error) {
	w, err := NewStandardWorker(data, req)
	if err != nil {
		return nil, err
	}
	minutes := MinuteSequence(req.EarliestDepartureTime, req.LatestDepartureTime, req.IterationDepartureStep)
	resp := &StandardResponse{
		IterationDepartureTimes: minutes,
		ArrivalsByEgress:        make([][]Seconds, len(minutes)),
	}
	for i, m := range minutes {
		round := w.RunMinute(m)
		resp.ArrivalsByEgress[i] = w.extractEgressTimes(round, m)
	}
	return resp, nil
}

// RunFrequencyRangeRaptor answers ProfileStdRangeRaptorWithHeuristics:
// the same per-minute sweep as RunRangeRaptor, but each minute runs
// the full BEST_CASE/WORST_CASE/Monte-Carlo frequency protocol of
// §4.7 instead of a single scheduled-only pass.
func RunFrequencyRangeRaptor(data TransitDataProvider, req Request) (*FrequencyResponse, error) {
	w, err := NewStandardWorker(data, req)
	if err != nil {
		return nil, err
	}
	w.FrequencyEnabled = true
	minutes := MinuteSequence(req.EarliestDepartureTime, req.LatestDepartureTime, req.IterationDepartureStep)
	resp := &FrequencyResponse{Iterations: make([]FrequencyMinuteResult, len(minutes))}
	for i, m := range minutes {
		resp.Iterations[i] = w.RunFrequencyMinute(m)
	}
	return resp, nil
}

// RunMultiCriteria answers ProfileMultiCriteria: the pareto-optimal
// journey set for a single nominal departure.
func RunMultiCriteria(data TransitDataProvider, req Request) (*MultiCriteriaResponse, error) {
	w, err := NewMultiCriteriaWorker(data, req)
	if err != nil {
		return nil, err
	}
	resp := w.Run()
	return &resp, nil
}

// Route dispatches req to the worker variant named by req.Profile and
// returns its response as one of *StandardResponse, *FrequencyResponse
// or *MultiCriteriaResponse. Callers that know their profile ahead of
// time should call the specific Run* function directly instead; Route
// exists for generic service-layer dispatch (e.g. cmd/raptorbench).
func Route(data TransitDataProvider, req Request) (any, error) {
	switch req.Profile {
	case ProfileStandard:
		return RunStandard(data, req)
	case ProfileRangeRaptor:
		return RunRangeRaptor(data, req)
	case ProfileStdRangeRaptorWithHeuristics:
		return RunFrequencyRangeRaptor(data, req)
	case ProfileMultiCriteria:
		return RunMultiCriteria(data, req)
	default:
		return nil, &ConfigurationError{Reason: "unknown profile"}
	}
}
