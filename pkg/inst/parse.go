package inst

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	ErrUnknownOpcode   = errors.New("unknown opcode")
	ErrArity           = errors.New("wrong number of operands")
	ErrBadLiteral      = errors.New("invalid integer literal")
	ErrUnknownRegister = errors.New("unknown register")
)

// ParseError reports a malformed source line.
type ParseError struct {
	Line int    // 1-based
	Text string // offending line, trimmed
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse reads a program, one instruction per line. Blank lines are skipped
// but still counted for error line numbers.
func Parse(r io.Reader) (Program, error) {
	var prog Program
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		in, err := ParseInstruction(text)
		if err != nil {
			return nil, &ParseError{Line: line, Text: text, Err: err}
		}
		prog = append(prog, in)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return prog, nil
}

// ParseString is Parse over a string.
func ParseString(src string) (Program, error) {
	return Parse(strings.NewReader(src))
}

// ParseInstruction decodes a single line such as "cpy 41 a".
func ParseInstruction(text string) (Instruction, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return Instruction{}, fmt.Errorf("%w: empty", ErrUnknownOpcode)
	}
	op, ok := LookupOp(fields[0])
	if !ok {
		return Instruction{}, fmt.Errorf("%w: %s", ErrUnknownOpcode, fields[0])
	}
	args := fields[1:]
	if len(args) != Catalog[op].Arity {
		return Instruction{}, fmt.Errorf("%w: %s takes %d, got %d",
			ErrArity, op, Catalog[op].Arity, len(args))
	}

	switch op {
	case CPY:
		src, err := parseOperand(args[0])
		if err != nil {
			return Instruction{}, err
		}
		dst, err := parseReg(args[1])
		if err != nil {
			return Instruction{}, err
		}
		return Cpy(src, dst), nil
	case INC, DEC:
		r, err := parseReg(args[0])
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, Dst: r}, nil
	case JNZ:
		src, err := parseOperand(args[0])
		if err != nil {
			return Instruction{}, err
		}
		off, err := parseLiteral(args[1])
		if err != nil {
			return Instruction{}, err
		}
		return Jnz(src, off), nil
	}
	return Instruction{}, fmt.Errorf("%w: %s", ErrUnknownOpcode, fields[0])
}

// parseOperand accepts a register name or a signed decimal literal.
func parseOperand(tok string) (Operand, error) {
	if r, ok := LookupReg(tok); ok {
		return R(r), nil
	}
	v, err := parseLiteral(tok)
	if err != nil {
		// A bare word in operand position is far more likely a misspelt
		// register than a number.
		if isWord(tok) {
			return Operand{}, fmt.Errorf("%w: %s", ErrUnknownRegister, tok)
		}
		return Operand{}, err
	}
	return Lit(v), nil
}

func parseReg(tok string) (Reg, error) {
	r, ok := LookupReg(tok)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownRegister, tok)
	}
	return r, nil
}

func parseLiteral(tok string) (int32, error) {
	v, err := strconv.ParseInt(tok, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrBadLiteral, tok)
	}
	return int32(v), nil
}

func isWord(tok string) bool {
	for i := 0; i < len(tok); i++ {
		c := tok[i]
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return tok != ""
}
