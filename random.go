package raptor

import "math/rand/v2"

// FrequencyRandom is a clock-free, pure random source used to draw
// Monte-Carlo boarding offsets for frequency trips. It is seedable so
// that RANDOM iterations (see StandardWorker.RunFrequencyMinute) are
// reproducible across runs given the same seed.
type FrequencyRandom interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
}

// pcgRandom is the default FrequencyRandom, backed by math/rand/v2's
// PCG source.
type pcgRandom struct{ r *rand.Rand }

// NewFrequencyRandom returns a FrequencyRandom seeded deterministically
// from seed, so that two workers built with the same seed draw
// identical sequences of offsets.
func NewFrequencyRandom(seed uint64) FrequencyRandom {
	return &pcgRandom{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (p *pcgRandom) Float64() float64 { return p.r.Float64() }

// uniformOffset draws a uniform offset in [0, headway) seconds.
func uniformOffset(rng FrequencyRandom, headway int) Seconds {
	if headway <= 0 {
		return 0
	}
	return Seconds(rng.Float64() * float64(headway))
}
