package inst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCatalogCompleteness verifies every OpCode has a catalog entry.
func TestCatalogCompleteness(t *testing.T) {
	for op := OpCode(0); op < OpCodeCount; op++ {
		info := &Catalog[op]
		assert.NotEmpty(t, info.Mnemonic, "opcode %d has no mnemonic", op)
		assert.Positive(t, info.Arity, "opcode %s has zero arity", info.Mnemonic)

		got, ok := LookupOp(info.Mnemonic)
		require.True(t, ok)
		assert.Equal(t, op, got)
	}
}

func TestLookupReg(t *testing.T) {
	for r := RegA; r < RegCount; r++ {
		got, ok := LookupReg(r.String())
		require.True(t, ok)
		assert.Equal(t, r, got)
	}
	_, ok := LookupReg("e")
	assert.False(t, ok)
	_, ok = LookupReg("A")
	assert.False(t, ok, "register names are lower case")
}

func TestDisassemble(t *testing.T) {
	tests := []struct {
		in   Instruction
		want string
	}{
		{Cpy(Lit(41), RegA), "cpy 41 a"},
		{Cpy(R(RegB), RegA), "cpy b a"},
		{Cpy(Lit(-7), RegD), "cpy -7 d"},
		{Inc(RegC), "inc c"},
		{Dec(RegA), "dec a"},
		{Jnz(R(RegA), 2), "jnz a 2"},
		{Jnz(Lit(1), -5), "jnz 1 -5"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Disassemble(tc.in))
	}
}
