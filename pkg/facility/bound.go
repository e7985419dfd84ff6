package facility

// LowerBound returns a cheap lower bound on the number of moves from c to
// the goal. Every move crosses exactly one floor boundary, and pushing k
// components up across a boundary takes at least 2k-3 crossings when k >= 2
// (the elevator carries two up and must bring one back), or one crossing
// when k == 1. Summing over boundaries ignores the frying rule, so the
// bound never exceeds the true distance.
func LowerBound(c Configuration) int {
	if c.N == 0 || c.Floors == 0 {
		return 0
	}
	var perFloor [MaxFloors]int
	for e := 0; e < int(c.N); e++ {
		if c.Chips[e] != Absent {
			perFloor[c.Chips[e]]++
		}
		if c.Gens[e] != Absent {
			perFloor[c.Gens[e]]++
		}
	}

	lb := 0
	below := 0
	for f := uint8(0); f < c.Top(); f++ {
		below += perFloor[f]
		switch {
		case below == 0:
			// The elevator may still need to come down, but nothing
			// forces it to.
		case below == 1:
			lb++
		default:
			lb += 2*below - 3
		}
	}
	return lb
}
