package cpu

import (
	"fmt"

	"github.com/oisee/aoc-core/pkg/inst"
)

// Exec executes a single instruction on the given state and advances PC.
// The state is modified in place. Arithmetic wraps at 32 bits.
func Exec(s *State, in inst.Instruction) {
	switch in.Op {
	case inst.CPY:
		s.R[in.Dst] = eval(s, in.Src)
		s.PC++
	case inst.INC:
		s.R[in.Dst]++
		s.PC++
	case inst.DEC:
		s.R[in.Dst]--
		s.PC++
	case inst.JNZ:
		if eval(s, in.Src) != 0 {
			s.PC += int(in.Offset)
		} else {
			s.PC++
		}
	default:
		panic(fmt.Sprintf("cpu: unknown opcode %d at pc %d", in.Op, s.PC))
	}
}

func eval(s *State, o inst.Operand) int32 {
	if o.Kind == inst.Register {
		return s.R[o.Reg]
	}
	return o.Value
}

// Step executes P[PC]. It panics if PC is outside the program; callers
// check Halted first.
func Step(s *State, p inst.Program) {
	if s.Halted(p) {
		panic(fmt.Sprintf("cpu: pc %d outside program of length %d", s.PC, len(p)))
	}
	Exec(s, p[s.PC])
}

// Stats counts executed instructions.
type Stats struct {
	Steps uint64
	ByOp  [inst.OpCodeCount]uint64
}

// Run executes p from s until PC leaves the program and returns execution
// counts. A program that never halts (e.g. "jnz 1 0") never returns.
func Run(s *State, p inst.Program) Stats {
	var st Stats
	for !s.Halted(p) {
		op := p[s.PC].Op
		Step(s, p)
		st.ByOp[op]++
	}
	for _, n := range st.ByOp {
		st.Steps += n
	}
	return st
}

// RunFrom is Run starting from a fresh state seeded with the given
// registers.
func RunFrom(p inst.Program, regs [inst.RegCount]int32) (State, Stats) {
	s := State{R: regs}
	st := Run(&s, p)
	return s, st
}
