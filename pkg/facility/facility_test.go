package facility

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const example = `The first floor contains a hydrogen-compatible microchip and a lithium-compatible microchip.
The second floor contains a hydrogen generator.
The third floor contains a lithium generator.
The fourth floor contains nothing relevant.
`

func TestParseExample(t *testing.T) {
	fac, err := ParseString(example)
	require.NoError(t, err)

	assert.Equal(t, []string{"hydrogen", "lithium"}, fac.Elements)
	assert.Equal(t, 4, fac.Floors())
	c := fac.Start
	assert.Equal(t, uint8(0), c.Elevator)
	assert.Equal(t, uint8(2), c.N)
	assert.Equal(t, uint8(0), c.Chips[0])
	assert.Equal(t, uint8(1), c.Gens[0])
	assert.Equal(t, uint8(0), c.Chips[1])
	assert.Equal(t, uint8(2), c.Gens[1])
	assert.True(t, c.Valid())
	assert.False(t, c.IsGoal())
}

func TestParseRealShape(t *testing.T) {
	src := `The first floor contains a thulium generator, a thulium-compatible microchip, a plutonium generator, and a strontium generator.
The second floor contains a plutonium-compatible microchip and a strontium-compatible microchip.
The third floor contains a promethium generator, a promethium-compatible microchip, a ruthenium generator, and a ruthenium-compatible microchip.
The fourth floor contains nothing relevant.`
	fac, err := ParseString(src)
	require.NoError(t, err)
	assert.Equal(t, []string{"thulium", "plutonium", "strontium", "promethium", "ruthenium"}, fac.Elements)
	assert.Equal(t, 4, fac.Start.Count(0))
	assert.Equal(t, 2, fac.Start.Count(1))
	assert.Equal(t, 4, fac.Start.Count(2))
	assert.True(t, fac.Start.Empty(3))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
		want error
	}{
		{"no components", "The first floor contains a rock.\n", 1, ErrNoComponents},
		{"microchip without element", "The first floor contains a microchip.\n", 1, ErrBadComponent},
		{"duplicate", "The first floor contains a lithium generator.\nThe second floor contains a lithium generator.\n", 2, ErrDuplicateComponent},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseString(tc.src)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tc.line, pe.Line)
		})
	}
}

func TestParseInvalidStart(t *testing.T) {
	src := "The first floor contains a hydrogen-compatible microchip and a lithium generator.\n" +
		"The second floor contains a hydrogen generator and a lithium-compatible microchip.\n"
	_, err := ParseString(src)
	require.ErrorIs(t, err, ErrInvalidStart)
	assert.Contains(t, err.Error(), "hydrogen microchip on floor 1")
}

func TestParseEmpty(t *testing.T) {
	fac, err := ParseString("")
	require.NoError(t, err)
	assert.True(t, fac.Empty())
	assert.Equal(t, 0, fac.Floors())
}

func TestParseUnpaired(t *testing.T) {
	fac, err := ParseString("The first floor contains a lithium-compatible microchip.\nThe second floor contains nothing relevant.\n")
	require.NoError(t, err)
	assert.Equal(t, Absent, fac.Start.Gens[0])
	assert.True(t, fac.Start.Valid())
}

func TestTextRoundTrip(t *testing.T) {
	fac, err := ParseString(example)
	require.NoError(t, err)
	again, err := ParseString(fac.Text())
	require.NoError(t, err)
	assert.Equal(t, fac.Start.Key(), again.Start.Key())
}

func TestWithExtraPairs(t *testing.T) {
	fac, err := ParseString(example)
	require.NoError(t, err)

	more, err := fac.WithExtraPairs("elerium", "dilithium")
	require.NoError(t, err)
	assert.Equal(t, []string{"hydrogen", "lithium", "elerium", "dilithium"}, more.Elements)
	assert.Equal(t, 4, more.Start.Count(0)-fac.Start.Count(0))
	assert.Len(t, fac.Elements, 2, "original facility is unchanged")

	_, err = fac.WithExtraPairs("lithium")
	assert.ErrorIs(t, err, ErrDuplicateComponent)
}

func TestFloorValidity(t *testing.T) {
	tests := []struct {
		name        string
		chips, gens uint16
		want        bool
	}{
		{"empty", 0, 0, true},
		{"chips only", 0b11, 0, true},
		{"generators only", 0, 0b11, true},
		{"shielded", 0b01, 0b01, true},
		{"shielded plus foreign generator", 0b01, 0b11, true},
		{"fried", 0b01, 0b10, false},
		{"one of two fried", 0b11, 0b01, false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, floorValid(tc.chips, tc.gens), tc.name)
	}
}

func TestMovesFromEmptyFloor(t *testing.T) {
	c := Configuration{Floors: 4, Elevator: 1, N: 1}
	assert.Empty(t, Successors(c))
}

func TestMovesExample(t *testing.T) {
	fac, err := ParseString(example)
	require.NoError(t, err)
	// Only the hydrogen chip can go up alone: taking the lithium chip to a
	// floor with the hydrogen generator fries it.
	next := Successors(fac.Start)
	require.Len(t, next, 1)
	assert.Equal(t, uint8(1), next[0].Chips[0])
	assert.Equal(t, uint8(1), next[0].Elevator)
}

func TestMoveDescribe(t *testing.T) {
	m := Move{From: 0, To: 1, Chips: 0b01, Gens: 0b01}
	assert.Equal(t, "up to F2: hydrogen generator, hydrogen microchip", m.Describe([]string{"hydrogen"}))
	assert.Equal(t, "down to F1: 1 microchip", Move{From: 1, To: 0, Chips: 0b10}.Describe(nil))
}

func TestKeyDistinguishesPairing(t *testing.T) {
	// Same floor counts, different pairing.
	a := Configuration{Floors: 4, N: 2, Chips: [MaxElements]uint8{0, 1}, Gens: [MaxElements]uint8{0, 1}}
	b := Configuration{Floors: 4, N: 2, Chips: [MaxElements]uint8{0, 1}, Gens: [MaxElements]uint8{1, 0}}
	assert.NotEqual(t, a.Key(), b.Key())

	c := a
	c.Elevator = 1
	assert.NotEqual(t, a.Key(), c.Key())
}

func TestGoal(t *testing.T) {
	fac, err := ParseString(example)
	require.NoError(t, err)
	g := fac.Start.Goal()
	assert.True(t, g.IsGoal())
	assert.True(t, g.AllOnTop())
	assert.True(t, g.EmptyBelow(3))
	assert.False(t, fac.Start.EmptyBelow(1))
}

func TestLowerBound(t *testing.T) {
	fac, err := ParseString(example)
	require.NoError(t, err)
	// 2 below F2, 3 below F3, 4 below F4: 1 + 3 + 5
	assert.Equal(t, 9, LowerBound(fac.Start))
	assert.Equal(t, 0, LowerBound(fac.Start.Goal()))

	pair := Configuration{Floors: 4, N: 1}
	assert.Equal(t, 3, LowerBound(pair))
}

func TestDiagram(t *testing.T) {
	fac, err := ParseString(example)
	require.NoError(t, err)
	want := "F4 .  .. .. .. ..\n" +
		"F3 .  .. .. LG ..\n" +
		"F2 .  HG .. .. ..\n" +
		"F1 E  .. HM .. LM\n"
	assert.Equal(t, want, fac.Start.Diagram(fac.Elements))
}
