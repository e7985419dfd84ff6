package facility

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/bits"
	"strings"
	"unicode"
)

var (
	ErrNoComponents       = errors.New("floor names no components")
	ErrBadComponent       = errors.New("malformed component")
	ErrDuplicateComponent = errors.New("component listed twice")
	ErrTooManyFloors      = errors.New("too many floors")
	ErrTooManyElements    = errors.New("too many elements")
	ErrInvalidStart       = errors.New("start configuration fries a microchip")
)

// ParseError reports a malformed floor line.
type ParseError struct {
	Line int // 1-based
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Facility is a parsed puzzle: the element names in first-seen order and
// the start configuration (elevator on the bottom floor).
type Facility struct {
	Elements []string
	Start    Configuration
}

// Floors returns the number of floors.
func (f Facility) Floors() int { return int(f.Start.Floors) }

// Empty reports whether the facility holds no components at all.
func (f Facility) Empty() bool { return f.Start.N == 0 }

// Parse reads one floor description per line, bottom floor first. Only the
// tokens "X generator", "X-compatible microchip" and "nothing relevant" are
// interpreted; the rest of each line is prose. Blank lines are skipped.
func Parse(r io.Reader) (Facility, error) {
	p := parser{index: map[string]int{}}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if err := p.floor(text); err != nil {
			return Facility{}, &ParseError{Line: line, Text: text, Err: err}
		}
	}
	if err := sc.Err(); err != nil {
		return Facility{}, err
	}

	fac := Facility{Elements: p.names, Start: p.cfg}
	if !fac.Start.Valid() {
		return Facility{}, fmt.Errorf("%w: %s", ErrInvalidStart, firstFried(fac))
	}
	return fac, nil
}

// ParseString is Parse over a string.
func ParseString(s string) (Facility, error) {
	return Parse(strings.NewReader(s))
}

type parser struct {
	cfg   Configuration
	names []string
	index map[string]int
}

func (p *parser) element(name string) (int, error) {
	if e, ok := p.index[name]; ok {
		return e, nil
	}
	if len(p.names) == MaxElements {
		return 0, fmt.Errorf("%w: %s is element %d, limit %d",
			ErrTooManyElements, name, len(p.names)+1, MaxElements)
	}
	e := len(p.names)
	p.names = append(p.names, name)
	p.index[name] = e
	p.cfg.N = uint8(len(p.names))
	p.cfg.Chips[e] = Absent
	p.cfg.Gens[e] = Absent
	return e, nil
}

func (p *parser) floor(text string) error {
	if p.cfg.Floors == MaxFloors {
		return fmt.Errorf("%w: limit %d", ErrTooManyFloors, MaxFloors)
	}
	f := p.cfg.Floors
	p.cfg.Floors++

	if strings.Contains(text, "nothing relevant") {
		return nil
	}

	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})
	found := 0
	for i, w := range words {
		var kind Kind
		var name string
		switch w {
		case "generator", "generators":
			if i == 0 {
				return fmt.Errorf("%w: generator without element", ErrBadComponent)
			}
			kind, name = Generator, words[i-1]
		case "microchip", "microchips":
			if i == 0 || !strings.HasSuffix(words[i-1], "-compatible") {
				return fmt.Errorf("%w: microchip without X-compatible", ErrBadComponent)
			}
			kind, name = Microchip, strings.TrimSuffix(words[i-1], "-compatible")
		default:
			continue
		}
		if name == "" {
			return fmt.Errorf("%w: empty element name", ErrBadComponent)
		}
		e, err := p.element(name)
		if err != nil {
			return err
		}
		slot := &p.cfg.Chips[e]
		if kind == Generator {
			slot = &p.cfg.Gens[e]
		}
		if *slot != Absent {
			return fmt.Errorf("%w: %s %s", ErrDuplicateComponent, name, kind)
		}
		*slot = f
		found++
	}
	if found == 0 {
		return ErrNoComponents
	}
	return nil
}

func firstFried(fac Facility) string {
	c := fac.Start
	for f := uint8(0); f < c.Floors; f++ {
		chips, gens := c.Masks(f)
		if floorValid(chips, gens) {
			continue
		}
		e := bits.TrailingZeros16(chips &^ gens)
		return fmt.Sprintf("%s microchip on floor %d", fac.Elements[e], f+1)
	}
	return "unknown"
}

// WithExtraPairs returns a copy of fac with a paired microchip and
// generator for each name added to the bottom floor.
func (fac Facility) WithExtraPairs(names ...string) (Facility, error) {
	if len(names) == 0 {
		return fac, nil
	}
	if fac.Start.Floors == 0 {
		return Facility{}, fmt.Errorf("%w: no floors to add to", ErrBadComponent)
	}
	out := Facility{
		Elements: append([]string(nil), fac.Elements...),
		Start:    fac.Start,
	}
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			return Facility{}, fmt.Errorf("%w: empty element name", ErrBadComponent)
		}
		for _, have := range out.Elements {
			if have == name {
				return Facility{}, fmt.Errorf("%w: %s", ErrDuplicateComponent, name)
			}
		}
		if len(out.Elements) == MaxElements {
			return Facility{}, fmt.Errorf("%w: limit %d", ErrTooManyElements, MaxElements)
		}
		e := len(out.Elements)
		out.Elements = append(out.Elements, name)
		out.Start.N++
		out.Start.Chips[e] = 0
		out.Start.Gens[e] = 0
	}
	if !out.Start.Valid() {
		return Facility{}, fmt.Errorf("%w: %s", ErrInvalidStart, firstFried(out))
	}
	return out, nil
}

// Text renders fac back into the puzzle's prose format.
func (fac Facility) Text() string {
	ordinals := []string{"first", "second", "third", "fourth", "fifth", "sixth",
		"seventh", "eighth", "ninth", "tenth", "eleventh", "twelfth",
		"thirteenth", "fourteenth", "fifteenth"}
	var b strings.Builder
	c := fac.Start
	for f := uint8(0); f < c.Floors; f++ {
		b.WriteString("The ")
		b.WriteString(ordinals[f])
		b.WriteString(" floor contains ")
		comps := c.Components(f)
		if len(comps) == 0 {
			b.WriteString("nothing relevant.\n")
			continue
		}
		for i, comp := range comps {
			switch {
			case i > 0 && i == len(comps)-1:
				b.WriteString(" and ")
			case i > 0:
				b.WriteString(", ")
			}
			name := fac.Elements[comp.Element]
			if comp.Kind == Generator {
				b.WriteString("a " + name + " generator")
			} else {
				b.WriteString("a " + name + "-compatible microchip")
			}
		}
		b.WriteString(".\n")
	}
	return b.String()
}
