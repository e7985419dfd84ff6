package facility

import (
	"math/bits"
	"strconv"
	"strings"
)

// Move is one elevator trip of a single floor carrying one or two
// components, given as element bitmasks.
type Move struct {
	From, To uint8
	Chips    uint16
	Gens     uint16
}

// Up reports whether the move goes up.
func (m Move) Up() bool { return m.To > m.From }

// Load returns the number of components carried.
func (m Move) Load() int {
	return bits.OnesCount16(m.Chips) + bits.OnesCount16(m.Gens)
}

// Components lists the carried components, generators first.
func (m Move) Components() []Component {
	var out []Component
	for g := m.Gens; g != 0; g &= g - 1 {
		out = append(out, Component{Kind: Generator, Element: bits.TrailingZeros16(g)})
	}
	for c := m.Chips; c != 0; c &= c - 1 {
		out = append(out, Component{Kind: Microchip, Element: bits.TrailingZeros16(c)})
	}
	return out
}

// Describe renders the move with element names, e.g.
// "up to F2: hydrogen generator, hydrogen microchip".
func (m Move) Describe(names []string) string {
	var b strings.Builder
	if m.Up() {
		b.WriteString("up")
	} else {
		b.WriteString("down")
	}
	b.WriteString(" to F")
	b.WriteString(strconv.Itoa(int(m.To) + 1))
	b.WriteString(":")
	for i, comp := range m.Components() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte(' ')
		if comp.Element < len(names) {
			b.WriteString(names[comp.Element])
		} else {
			b.WriteString(strconv.Itoa(comp.Element))
		}
		b.WriteByte(' ')
		b.WriteString(comp.Kind.String())
	}
	return b.String()
}

// Apply returns the configuration after m. It does not check validity.
func (c Configuration) Apply(m Move) Configuration {
	next := c
	next.Elevator = m.To
	for x := m.Chips; x != 0; x &= x - 1 {
		next.Chips[bits.TrailingZeros16(x)] = m.To
	}
	for x := m.Gens; x != 0; x &= x - 1 {
		next.Gens[bits.TrailingZeros16(x)] = m.To
	}
	return next
}

// Moves enumerates every legal move from c: one or two components from the
// elevator's floor, one floor up or down, leaving both the source and the
// destination floor valid. fn receives each move with its successor and
// returns false to stop early. An elevator on an empty floor has no moves.
func Moves(c Configuration, fn func(m Move, next Configuration) bool) {
	from := c.Elevator
	chips, gens := c.Masks(from)
	if chips|gens == 0 {
		return
	}

	// Items on the floor as single-bit selections over (chips, gens).
	type item struct{ chip, gen uint16 }
	var items [2 * MaxElements]item
	n := 0
	for x := gens; x != 0; x &= x - 1 {
		items[n] = item{gen: x & -x}
		n++
	}
	for x := chips; x != 0; x &= x - 1 {
		items[n] = item{chip: x & -x}
		n++
	}

	for _, dir := range [2]int{+1, -1} {
		to := int(from) + dir
		if to < 0 || to >= int(c.Floors) {
			continue
		}
		toChips, toGens := c.Masks(uint8(to))

		try := func(mc, mg uint16) bool {
			if !floorValid(chips&^mc, gens&^mg) || !floorValid(toChips|mc, toGens|mg) {
				return true
			}
			m := Move{From: from, To: uint8(to), Chips: mc, Gens: mg}
			return fn(m, c.Apply(m))
		}

		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if !try(items[i].chip|items[j].chip, items[i].gen|items[j].gen) {
					return
				}
			}
			if !try(items[i].chip, items[i].gen) {
				return
			}
		}
	}
}

// Successors collects all legal successors of c.
func Successors(c Configuration) []Configuration {
	var out []Configuration
	Moves(c, func(_ Move, next Configuration) bool {
		out = append(out, next)
		return true
	})
	return out
}

// Reverse returns the move that undoes m.
func (m Move) Reverse() Move {
	return Move{From: m.To, To: m.From, Chips: m.Chips, Gens: m.Gens}
}

// Permute renames the carried elements the same way Configuration.Permute
// does.
func (m Move) Permute(perm []int) Move {
	out := Move{From: m.From, To: m.To}
	for x := m.Chips; x != 0; x &= x - 1 {
		out.Chips |= 1 << perm[bits.TrailingZeros16(x)]
	}
	for x := m.Gens; x != 0; x &= x - 1 {
		out.Gens |= 1 << perm[bits.TrailingZeros16(x)]
	}
	return out
}
