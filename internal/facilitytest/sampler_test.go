package facilitytest

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigurationIsValid(t *testing.T) {
	s := NewSampler(rand.New(rand.NewPCG(21, 22)), 4)
	for i := 0; i < 300; i++ {
		n := i % 8
		c := s.Configuration(n)
		assert.True(t, c.Valid(), "sample %d\n%s", i, c)
		assert.Equal(t, uint8(n), c.N)
		assert.Less(t, c.Elevator, c.Floors)
		if n > 0 {
			assert.False(t, c.Empty(c.Elevator), "elevator on an empty floor\n%s", c)
		}
	}
}

func TestPermutation(t *testing.T) {
	s := NewSampler(rand.New(rand.NewPCG(23, 24)), 4)
	p := s.Permutation(6)
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5}, p)
}
