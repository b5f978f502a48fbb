package rule

import "math/rand/v2"

// Sampler yields uniform samples in [0, 1). *rand.Rand satisfies it.
type Sampler interface {
	Float64() float64
}

// NewSampler returns a PCG generator seeded with seed. The same seed gives
// the same sequence of samples.
func NewSampler(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

type fixed float64

func (f fixed) Float64() float64 { return float64(f) }

var (
	// Always passes every probability gate above zero.
	Always Sampler = fixed(0)
	// Never fails every probability gate, including probability 1.
	Never Sampler = fixed(1)
)
