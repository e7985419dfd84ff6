package inst

import (
	"strconv"
	"strings"
)

// Info holds static metadata for an opcode.
type Info struct {
	Mnemonic string // source-text opcode, e.g. "cpy"
	Arity    int    // number of operand tokens
}

// Catalog maps each OpCode to its Info.
var Catalog = [OpCodeCount]Info{
	CPY: {Mnemonic: "cpy", Arity: 2},
	INC: {Mnemonic: "inc", Arity: 1},
	DEC: {Mnemonic: "dec", Arity: 1},
	JNZ: {Mnemonic: "jnz", Arity: 2},
}

// LookupOp returns the opcode spelled mnemonic.
func LookupOp(mnemonic string) (OpCode, bool) {
	for op := OpCode(0); op < OpCodeCount; op++ {
		if Catalog[op].Mnemonic == mnemonic {
			return op, true
		}
	}
	return 0, false
}

func (op OpCode) String() string {
	if op >= OpCodeCount {
		return "op(" + strconv.Itoa(int(op)) + ")"
	}
	return Catalog[op].Mnemonic
}

func (o Operand) String() string {
	if o.Kind == Register {
		return o.Reg.String()
	}
	return strconv.FormatInt(int64(o.Value), 10)
}

// Disassemble returns source text for an instruction.
func Disassemble(in Instruction) string {
	switch in.Op {
	case CPY:
		return "cpy " + in.Src.String() + " " + in.Dst.String()
	case INC, DEC:
		return in.Op.String() + " " + in.Dst.String()
	case JNZ:
		return "jnz " + in.Src.String() + " " + strconv.FormatInt(int64(in.Offset), 10)
	}
	return in.Op.String()
}

// DisassembleProgram renders a whole program, one instruction per line.
func DisassembleProgram(p Program) string {
	var b strings.Builder
	for i := range p {
		b.WriteString(Disassemble(p[i]))
		b.WriteByte('\n')
	}
	return b.String()
}
