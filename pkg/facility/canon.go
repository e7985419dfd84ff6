package facility

// Key identifies an equivalence class of configurations under element
// renaming: the elevator floor plus the sorted multiset of
// (microchip floor, generator floor) pairs, one packed byte per element.
// Keys are comparable and used directly as map keys.
type Key struct {
	Elevator uint8
	N        uint8
	Pairs    [MaxElements]uint8
}

// pair packs an element's floors, microchip in the high nibble, so byte
// order equals lexicographic (chip, gen) order.
func pair(chip, gen uint8) uint8 {
	return chip<<4 | gen&0x0F
}

// Key returns the canonical key of c.
func (c Configuration) Key() Key {
	k := Key{Elevator: c.Elevator, N: c.N}
	for e := 0; e < int(c.N); e++ {
		k.Pairs[e] = pair(c.Chips[e], c.Gens[e])
	}
	sortPairs(k.Pairs[:k.N])
	return k
}

// Canonical returns the representative of c's equivalence class: the same
// configuration with elements reordered by (chip floor, gen floor).
func (c Configuration) Canonical() Configuration {
	k := c.Key()
	out := Configuration{Floors: c.Floors, Elevator: c.Elevator, N: c.N}
	for e := 0; e < int(k.N); e++ {
		out.Chips[e] = k.Pairs[e] >> 4
		out.Gens[e] = k.Pairs[e] & 0x0F
	}
	return out
}

// IsCanonical reports whether c is already its own representative.
func (c Configuration) IsCanonical() bool {
	return c.Canonical() == c
}

// sortPairs is an insertion sort; N never exceeds MaxElements.
func sortPairs(p []uint8) {
	for i := 1; i < len(p); i++ {
		v := p[i]
		j := i - 1
		for j >= 0 && p[j] > v {
			p[j+1] = p[j]
			j--
		}
		p[j+1] = v
	}
}

// Matching returns a renaming perm with from.Permute(perm) == to, or false
// when the two configurations are not equivalent.
func Matching(from, to Configuration) ([]int, bool) {
	if from.Floors != to.Floors || from.Key() != to.Key() {
		return nil, false
	}
	perm := make([]int, from.N)
	var used [MaxElements]bool
	for e := 0; e < int(from.N); e++ {
		found := false
		for e2 := 0; e2 < int(to.N); e2++ {
			if !used[e2] && to.Chips[e2] == from.Chips[e] && to.Gens[e2] == from.Gens[e] {
				perm[e] = e2
				used[e2] = true
				found = true
				break
			}
		}
		if !found {
			return nil, false
		}
	}
	return perm, true
}
