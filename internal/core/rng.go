package core

import "math/rand/v2"

// RNG wraps math/rand/v2 with a deterministic PCG source so a seed always
// reproduces the same board.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0x6c69666576696577))}
}

// Bool returns a random boolean value.
func (r *RNG) Bool() bool {
	return r.r.IntN(2) == 1
}

// FillBinary sets each cell to 1 with probability density and to 0 otherwise.
func (r *RNG) FillBinary(buf []uint8, density float64) {
	for i := range buf {
		buf[i] = 0
		if r.r.Float64() < density {
			buf[i] = 1
		}
	}
}
