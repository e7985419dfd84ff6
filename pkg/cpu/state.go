package cpu

import "github.com/oisee/aoc-core/pkg/inst"

// State is the assembunny machine state: program counter plus the four
// registers. Small enough to copy by value.
type State struct {
	PC int
	R  [inst.RegCount]int32
}

// Equal returns true if two states are identical.
func (s State) Equal(o State) bool {
	return s == o
}

// Get returns the value of register r.
func (s *State) Get(r inst.Reg) int32 {
	return s.R[r]
}

// Set stores v in register r.
func (s *State) Set(r inst.Reg, v int32) {
	s.R[r] = v
}

// Halted reports whether PC has left the program.
func (s *State) Halted(p inst.Program) bool {
	return s.PC < 0 || s.PC >= len(p)
}
