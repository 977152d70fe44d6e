package raptor

// memoryProvider is a tiny in-memory TransitDataProvider used by worker
// and engine tests: patterns, per-stop pattern membership and outgoing
// transfers are all supplied directly rather than built from a feed.
type memoryProvider struct {
	numStops        int
	patterns        []TripPattern
	patternsForStop [][]PatternIndex
	transfersFrom   [][]TransferLeg
}

func newMemoryProvider(numStops int) *memoryProvider {
	return &memoryProvider{
		numStops:        numStops,
		patternsForStop: make([][]PatternIndex, numStops),
		transfersFrom:   make([][]TransferLeg, numStops),
	}
}

func (p *memoryProvider) addPattern(pattern TripPattern) PatternIndex {
	idx := PatternIndex(len(p.patterns))
	p.patterns = append(p.patterns, pattern)
	for _, stop := range pattern.Stops {
		p.patternsForStop[stop] = append(p.patternsForStop[stop], idx)
	}
	return idx
}

func (p *memoryProvider) addTransfer(leg TransferLeg) {
	p.transfersFrom[leg.FromStop] = append(p.transfersFrom[leg.FromStop], leg)
}

func (p *memoryProvider) NumStops() int    { return p.numStops }
func (p *memoryProvider) NumPatterns() int { return len(p.patterns) }

func (p *memoryProvider) TransfersFrom(stop StopIndex) TransferIterator {
	return NewTransferSliceIterator(p.transfersFrom[stop])
}

func (p *memoryProvider) PatternsForStop(stop StopIndex) PatternIterator {
	return NewPatternSliceIterator(p.patternsForStop[stop])
}

func (p *memoryProvider) Pattern(idx PatternIndex) TripPattern { return p.patterns[idx] }

func (p *memoryProvider) IsServiceActive(serviceID int32, date CivilDate) bool { return true }
