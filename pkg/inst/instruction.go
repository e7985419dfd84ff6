package inst

// OpCode identifies an assembunny instruction.
type OpCode uint8

// OpCode constants. OpCodeCount must stay last.
const (
	CPY OpCode = iota
	INC
	DEC
	JNZ

	OpCodeCount
)

// Reg names one of the four registers.
type Reg uint8

const (
	RegA Reg = iota
	RegB
	RegC
	RegD

	RegCount
)

// RegNames maps a register to its source-text name.
var RegNames = [RegCount]string{"a", "b", "c", "d"}

func (r Reg) String() string {
	if r >= RegCount {
		return "?"
	}
	return RegNames[r]
}

// LookupReg returns the register called name.
func LookupReg(name string) (Reg, bool) {
	for r := RegA; r < RegCount; r++ {
		if RegNames[r] == name {
			return r, true
		}
	}
	return 0, false
}

// OperandKind tags an Operand.
type OperandKind uint8

const (
	Literal OperandKind = iota
	Register
)

// Operand is either an integer literal or a register reference.
type Operand struct {
	Kind  OperandKind
	Value int32 // valid when Kind == Literal
	Reg   Reg   // valid when Kind == Register
}

// Lit builds a literal operand.
func Lit(v int32) Operand { return Operand{Kind: Literal, Value: v} }

// R builds a register operand.
func R(r Reg) Operand { return Operand{Kind: Register, Reg: r} }

// Instruction is one decoded assembunny instruction. Which fields are
// meaningful depends on Op:
//
//	CPY: Src, Dst
//	INC: Dst
//	DEC: Dst
//	JNZ: Src, Offset
type Instruction struct {
	Op     OpCode
	Src    Operand
	Dst    Reg
	Offset int32
}

// Program is an ordered instruction sequence indexed from 0.
type Program []Instruction

// Cpy, Inc, Dec and Jnz are shorthand constructors used by tests and
// hand-built programs.
func Cpy(src Operand, dst Reg) Instruction { return Instruction{Op: CPY, Src: src, Dst: dst} }
func Inc(r Reg) Instruction                { return Instruction{Op: INC, Dst: r} }
func Dec(r Reg) Instruction                { return Instruction{Op: DEC, Dst: r} }
func Jnz(src Operand, off int32) Instruction {
	return Instruction{Op: JNZ, Src: src, Offset: off}
}

// IsJump returns true if the opcode may move PC by something other than +1.
func IsJump(op OpCode) bool {
	return op == JNZ
}
