package search

import "github.com/oisee/aoc-core/pkg/facility"

// entry is what the closed set remembers about one equivalence class: the
// best distance seen, the concrete configuration reached at that distance,
// and how it was reached.
type entry struct {
	Dist   int
	Config facility.Configuration
	Parent facility.Key
	Move   facility.Move
	Root   bool
}

// ClosedSet maps canonical keys to their best known distance. Using the
// canonical key instead of the raw configuration collapses every element
// renaming of a configuration into one entry.
type ClosedSet struct {
	m map[facility.Key]entry
}

// NewClosedSet creates a closed set with the given capacity hint.
func NewClosedSet(cap int) *ClosedSet {
	return &ClosedSet{m: make(map[facility.Key]entry, cap)}
}

// Root records the start of a search.
func (cs *ClosedSet) Root(c facility.Configuration) {
	cs.m[c.Key()] = entry{Dist: 0, Config: c, Root: true}
}

// Offer records next at dist, reached from parent by m. It returns false
// when the key is already known at a distance no worse than dist. A
// strictly shorter distance replaces the old entry.
func (cs *ClosedSet) Offer(k facility.Key, next facility.Configuration, dist int, parent facility.Key, m facility.Move) bool {
	if old, ok := cs.m[k]; ok && old.Dist <= dist {
		return false
	}
	cs.m[k] = entry{Dist: dist, Config: next, Parent: parent, Move: m}
	return true
}

// Dist returns the best known distance for k.
func (cs *ClosedSet) Dist(k facility.Key) (int, bool) {
	e, ok := cs.m[k]
	return e.Dist, ok
}

// Len returns the number of distinct canonical keys seen.
func (cs *ClosedSet) Len() int {
	return len(cs.m)
}

// Path walks parent links back from k and returns the steps from the root
// to k in order.
func (cs *ClosedSet) Path(k facility.Key) []Step {
	var rev []Step
	for {
		e, ok := cs.m[k]
		if !ok || e.Root {
			break
		}
		rev = append(rev, Step{Move: e.Move, Config: e.Config})
		k = e.Parent
	}
	steps := make([]Step, len(rev))
	for i := range rev {
		steps[i] = rev[len(rev)-1-i]
	}
	return steps
}
