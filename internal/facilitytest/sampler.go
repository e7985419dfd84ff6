// Package facilitytest provides random facility configurations for
// property tests.
package facilitytest

import (
	"math/rand/v2"

	"github.com/oisee/aoc-core/pkg/facility"
)

// Sampler produces random valid configurations.
type Sampler struct {
	rng    *rand.Rand
	floors uint8
}

// NewSampler creates a Sampler over the given number of floors.
func NewSampler(rng *rand.Rand, floors int) *Sampler {
	return &Sampler{rng: rng, floors: uint8(floors)}
}

// Configuration returns a random valid configuration with n paired
// elements and the elevator on a non-empty floor. Placements are redrawn
// until the frying rule holds.
func (s *Sampler) Configuration(n int) facility.Configuration {
	for {
		c := facility.Configuration{Floors: s.floors, N: uint8(n)}
		for e := 0; e < n; e++ {
			c.Chips[e] = uint8(s.rng.IntN(int(s.floors)))
			if s.rng.IntN(3) == 0 {
				c.Gens[e] = c.Chips[e]
			} else {
				c.Gens[e] = uint8(s.rng.IntN(int(s.floors)))
			}
		}
		if !c.Valid() {
			continue
		}
		if n == 0 {
			return c
		}
		// Put the elevator next to a random component.
		e := s.rng.IntN(n)
		if s.rng.IntN(2) == 0 {
			c.Elevator = c.Chips[e]
		} else {
			c.Elevator = c.Gens[e]
		}
		return c
	}
}

// Permutation returns a random permutation of 0..n-1.
func (s *Sampler) Permutation(n int) []int {
	return s.rng.Perm(n)
}
