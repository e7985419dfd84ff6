package facility

import (
	"math/bits"
	"strconv"
	"strings"
)

// Limits of the packed representation: floors and elements are stored in
// nibbles, with 0xF reserved for Absent.
const (
	MaxElements = 15
	MaxFloors   = 15
)

// Absent marks a component that the input never mentioned.
const Absent uint8 = 0xF

// Kind tags a Component.
type Kind uint8

const (
	Microchip Kind = iota
	Generator
)

func (k Kind) String() string {
	if k == Generator {
		return "generator"
	}
	return "microchip"
}

// Component is a microchip or generator of one element. Element is the
// dense index assigned by the parser.
type Component struct {
	Kind    Kind
	Element int
}

// Configuration is one arrangement of the facility: where the elevator is
// and which floor holds each element's microchip and generator. It is a
// plain value; successors are built by copying.
type Configuration struct {
	Floors   uint8
	Elevator uint8
	N        uint8 // number of elements in use
	Chips    [MaxElements]uint8
	Gens     [MaxElements]uint8
}

// Top returns the index of the top floor.
func (c Configuration) Top() uint8 {
	return c.Floors - 1
}

// Masks returns element bitmasks of the microchips and generators on floor f.
func (c Configuration) Masks(f uint8) (chips, gens uint16) {
	for e := 0; e < int(c.N); e++ {
		if c.Chips[e] == f {
			chips |= 1 << e
		}
		if c.Gens[e] == f {
			gens |= 1 << e
		}
	}
	return chips, gens
}

// Count returns the number of components on floor f.
func (c Configuration) Count(f uint8) int {
	chips, gens := c.Masks(f)
	return bits.OnesCount16(chips) + bits.OnesCount16(gens)
}

// Components lists what is on floor f, generators first.
func (c Configuration) Components(f uint8) []Component {
	var out []Component
	for e := 0; e < int(c.N); e++ {
		if c.Gens[e] == f {
			out = append(out, Component{Kind: Generator, Element: e})
		}
	}
	for e := 0; e < int(c.N); e++ {
		if c.Chips[e] == f {
			out = append(out, Component{Kind: Microchip, Element: e})
		}
	}
	return out
}

// floorValid is the frying rule over masks: a floor with any generator must
// shield every microchip on it with that microchip's own generator.
func floorValid(chips, gens uint16) bool {
	return gens == 0 || chips&^gens == 0
}

// FloorValid reports whether floor f is safe.
func (c Configuration) FloorValid(f uint8) bool {
	return floorValid(c.Masks(f))
}

// Valid reports whether every floor is safe.
func (c Configuration) Valid() bool {
	for f := uint8(0); f < c.Floors; f++ {
		if !c.FloorValid(f) {
			return false
		}
	}
	return true
}

// AllOnTop reports whether every present component is on the top floor.
func (c Configuration) AllOnTop() bool {
	top := c.Top()
	for e := 0; e < int(c.N); e++ {
		if c.Chips[e] != Absent && c.Chips[e] != top {
			return false
		}
		if c.Gens[e] != Absent && c.Gens[e] != top {
			return false
		}
	}
	return true
}

// IsGoal reports whether everything, elevator included, is on the top floor.
func (c Configuration) IsGoal() bool {
	return c.Elevator == c.Top() && c.AllOnTop()
}

// Empty reports whether there is nothing on floor f.
func (c Configuration) Empty(f uint8) bool {
	chips, gens := c.Masks(f)
	return chips|gens == 0
}

// EmptyBelow reports whether every floor strictly below f is empty.
func (c Configuration) EmptyBelow(f uint8) bool {
	for e := 0; e < int(c.N); e++ {
		if c.Chips[e] != Absent && c.Chips[e] < f {
			return false
		}
		if c.Gens[e] != Absent && c.Gens[e] < f {
			return false
		}
	}
	return true
}

// Goal returns the configuration with every present component and the
// elevator on the top floor.
func (c Configuration) Goal() Configuration {
	g := c
	top := c.Top()
	g.Elevator = top
	for e := 0; e < int(c.N); e++ {
		if g.Chips[e] != Absent {
			g.Chips[e] = top
		}
		if g.Gens[e] != Absent {
			g.Gens[e] = top
		}
	}
	return g
}

// Permute renames elements: element e of c becomes element perm[e] of the
// result. perm must be a permutation of 0..N-1.
func (c Configuration) Permute(perm []int) Configuration {
	p := c
	for e := 0; e < int(c.N); e++ {
		p.Chips[perm[e]] = c.Chips[e]
		p.Gens[perm[e]] = c.Gens[e]
	}
	return p
}

// String renders the configuration with numeric element labels.
func (c Configuration) String() string {
	return c.Diagram(nil)
}

// Diagram draws the configuration top floor first. names supplies element
// labels; missing names fall back to the element index.
func (c Configuration) Diagram(names []string) string {
	var b strings.Builder
	for f := int(c.Floors) - 1; f >= 0; f-- {
		b.WriteString("F")
		b.WriteString(strconv.Itoa(f + 1))
		if uint8(f) == c.Elevator {
			b.WriteString(" E ")
		} else {
			b.WriteString(" . ")
		}
		for e := 0; e < int(c.N); e++ {
			label := elementLabel(names, e)
			b.WriteByte(' ')
			b.WriteString(cell(c.Gens[e] == uint8(f), label, 'G'))
			b.WriteByte(' ')
			b.WriteString(cell(c.Chips[e] == uint8(f), label, 'M'))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func cell(present bool, label string, kind byte) string {
	if !present {
		return strings.Repeat(".", len(label)+1)
	}
	return label + string(kind)
}

func elementLabel(names []string, e int) string {
	if e < len(names) && names[e] != "" {
		return strings.ToUpper(names[e][:1])
	}
	return strconv.Itoa(e)
}
