package search

import "github.com/oisee/aoc-core/pkg/facility"

// ShouldPrune returns true if move m from c can be skipped without losing
// every shortest path to the goal. It is only sound for searches heading to
// the top floor.
func ShouldPrune(c facility.Configuration, m facility.Move) bool {
	// Nothing below the elevator: going down can only fetch items that
	// must then be carried straight back up.
	if !m.Up() && c.EmptyBelow(c.Elevator) {
		return true
	}
	return false
}
