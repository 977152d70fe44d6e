package raptor

// LegKind classifies a Path leg.
type LegKind int

const (
	LegAccess LegKind = iota
	LegTransit
	LegTransfer
	LegEgress
)

func (k LegKind) String() string {
	switch k {
	case LegAccess:
		return "access"
	case LegTransit:
		return "transit"
	case LegTransfer:
		return "transfer"
	case LegEgress:
		return "egress"
	default:
		return "unknown"
	}
}

// PathLeg is one hop of a reconstructed journey: access, then
// alternating transit/transfer, then egress (§4.9).
type PathLeg struct {
	Kind          LegKind
	FromStop      StopIndex
	ToStop        StopIndex
	DepartureTime Seconds
	ArrivalTime   Seconds
	Pattern       PatternIndex // meaningful only when Kind == LegTransit
	TripIndex     int          // meaningful only when Kind == LegTransit
}

// Path is a complete origin-to-destination journey: an access leg,
// alternating transit/transfer legs, and an egress leg. Paths are
// freshly allocated at reconstruction time; they hold no references
// into worker state that gets reused across iterations.
type Path struct {
	DepartureTime Seconds
	ArrivalTime   Seconds
	Legs          []PathLeg
}

// Duration is the elapsed time between the first leg's departure and
// the last leg's arrival.
func (p Path) Duration() Seconds { return p.ArrivalTime - p.DepartureTime }

// NumTransits counts the transit legs in the path, i.e. the number of
// vehicle boardings.
func (p Path) NumTransits() int {
	n := 0
	for _, l := range p.Legs {
		if l.Kind == LegTransit {
			n++
		}
	}
	return n
}

// ReconstructStandardPath walks the back-link chain from the
// committed arrival at (round, destStop) back to its access leg,
// producing a Path with egress attached. It returns ok=false if no
// arrival was ever recorded at destStop in that round.
func ReconstructStandardPath(s *StandardArrivalState, round int, destStop StopIndex, egress Leg) (Path, bool) {
	arr := s.arrivalAt(round, destStop)
	if !arr.valid {
		return Path{}, false
	}

	var legs []PathLeg
	curStop := destStop
	curArr := arr
	for {
		switch {
		case curArr.arrivedByTransit:
			legs = append(legs, PathLeg{
				Kind: LegTransit, FromStop: curArr.boardStop, ToStop: curStop,
				DepartureTime: curArr.boardTime, ArrivalTime: curArr.alightTime,
				Pattern: curArr.boarding.pattern, TripIndex: curArr.boarding.trip,
			})
		case curArr.transferFrom != noStop:
			legs = append(legs, PathLeg{
				Kind: LegTransfer, FromStop: curArr.transferFrom, ToStop: curStop,
				DepartureTime: curArr.time - curArr.transferLeg.Duration, ArrivalTime: curArr.time,
			})
		}

		if !curArr.hasPrev {
			break
		}
		nextStop := curArr.prevStop
		curArr = s.arrivalAt(curArr.prevRound, nextStop)
		curStop = nextStop
	}

	// curArr is now the access-seeded root; curStop is the first stop
	// reached from the street network.
	accessLeg := PathLeg{
		Kind: LegAccess, FromStop: noStop, ToStop: curStop,
		DepartureTime: curArr.time - curArr.accessDuration, ArrivalTime: curArr.time,
	}

	reversed := make([]PathLeg, 0, len(legs)+2)
	reversed = append(reversed, accessLeg)
	for i := len(legs) - 1; i >= 0; i-- {
		reversed = append(reversed, legs[i])
	}
	egressLeg := PathLeg{
		Kind: LegEgress, FromStop: destStop, ToStop: noStop,
		DepartureTime: arr.time, ArrivalTime: arr.time + egress.Duration,
	}
	reversed = append(reversed, egressLeg)

	return Path{
		DepartureTime: accessLeg.DepartureTime,
		ArrivalTime:   egressLeg.ArrivalTime,
		Legs:          reversed,
	}, true
}
