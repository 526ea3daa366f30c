// This file is part of Espresso.
//
// Espresso is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Espresso is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Espresso.  If not, see <https://www.gnu.org/licenses/>.

package conformance

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/jetsetilly/espresso/curated"
	"github.com/jetsetilly/espresso/hardware/cpu/registers"
)

// Target is a register, or part of a register, that a test can set and
// check.
type Target int

// List of valid Target values. There are 32 targets for each of GPR and FPR
// and 8 targets for CRF.
const (
	GPR        Target = 0
	FPR        Target = 32
	CRF        Target = 64
	XERSO      Target = 72
	XEROV      Target = 73
	XERCA      Target = 74
	XERBC      Target = 75
	NumTargets Target = 76
)

func (t Target) String() string {
	switch {
	case t >= GPR && t < FPR:
		return fmt.Sprintf("r%d", t-GPR)
	case t >= FPR && t < CRF:
		return fmt.Sprintf("f%d", t-FPR)
	case t >= CRF && t < XERSO:
		return fmt.Sprintf("crf%d", t-CRF)
	case t == XERSO:
		return "xer.so"
	case t == XEROV:
		return "xer.ov"
	case t == XERCA:
		return "xer.ca"
	case t == XERBC:
		return "xer.bc"
	}
	return "unknown"
}

func (t Target) isFPR() bool {
	return t >= FPR && t < CRF
}

// Value is the value of a target. Values of FPR targets are the bit pattern
// of a double precision number. Other values are in the low 32 bits.
type Value struct {
	Bits uint64

	// the value was given as a number rather than a bit pattern. a NaN
	// number matches any NaN
	number bool
}

func (v Value) String() string {
	return fmt.Sprintf("%#x", v.Bits)
}

// Equal returns true if the value of the target matches the value.
func (v Value) Equal(bits uint64) bool {
	if v.number {
		a := math.Float64frombits(v.Bits)
		b := math.Float64frombits(bits)
		return a == b || (math.IsNaN(a) && math.IsNaN(b))
	}
	return v.Bits == bits
}

// Test is a single named test. The code of the test is executed from the
// first word and the test finishes when the code returns with blr.
type Test struct {
	Name string
	File string
	Line int

	Code []uint32

	In  map[Target]Value
	Out map[Target]Value
}

func newTest(name string, file string, line int) *Test {
	return &Test{
		Name: name,
		File: file,
		Line: line,
		In:   make(map[Target]Value),
		Out:  make(map[Target]Value),
	}
}

// ParseFile parses the tests in the named file.
func ParseFile(path string) ([]*Test, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, curated.Errorf(FileError, err)
	}
	defer f.Close()
	return Parse(f, path)
}

// Parse tests from io.Reader. The name argument is used in error messages.
//
// A test begins with a line containing the name of the test followed by a
// colon. Instruction words are written in hex, any number per line. Lines
// beginning with "# in" and "# out" assign input and expected output values
// to targets. Any other text after a # is a comment.
//
//	add:
//	    7c642a14    # add r3, r4, r5
//	    4e800020    # blr
//	    # in r4 = 1
//	    # in r5 = 2
//	    # out r3 = 3
func Parse(r io.Reader, name string) ([]*Test, error) {
	var tests []*Test
	var t *Test

	scanner := bufio.NewScanner(r)
	line := 0

	for scanner.Scan() {
		line++
		s := strings.TrimSpace(scanner.Text())

		if s == "" {
			continue
		}

		if strings.HasSuffix(s, ":") {
			t = newTest(strings.TrimSpace(strings.TrimSuffix(s, ":")), name, line)
			tests = append(tests, t)
			continue
		}

		var dir map[Target]Value
		if v, ok := strings.CutPrefix(s, "# in "); ok {
			s = v
			if t != nil {
				dir = t.In
			}
		} else if v, ok := strings.CutPrefix(s, "# out "); ok {
			s = v
			if t != nil {
				dir = t.Out
			}
		} else if strings.HasPrefix(s, "#") {
			continue
		} else if t != nil {
			s, _, _ = strings.Cut(s, "#")
			for _, w := range strings.Fields(s) {
				v, err := strconv.ParseUint(strings.TrimPrefix(w, "0x"), 16, 32)
				if err != nil {
					return nil, curated.Errorf(ParseError, name, line, fmt.Errorf("instruction word %q", w))
				}
				t.Code = append(t.Code, uint32(v))
			}
			continue
		}

		if t == nil {
			return nil, curated.Errorf(ParseError, name, line, fmt.Errorf("not in a test"))
		}

		if dir != nil {
			tgt, v, err := parseAssignment(s)
			if err != nil {
				return nil, curated.Errorf(ParseError, name, line, err)
			}
			dir[tgt] = v
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, curated.Errorf(FileError, err)
	}

	return tests, nil
}

func parseAssignment(s string) (Target, Value, error) {
	lhs, rhs, ok := strings.Cut(s, "=")
	if !ok {
		return 0, Value{}, fmt.Errorf("not an assignment (%s)", s)
	}

	tgt, err := parseTarget(strings.TrimSpace(lhs))
	if err != nil {
		return 0, Value{}, err
	}

	v, err := parseValue(tgt, strings.TrimSpace(rhs))
	if err != nil {
		return 0, Value{}, err
	}

	return tgt, v, nil
}

func parseTarget(s string) (Target, error) {
	index := func(prefix string, n int) (int, bool) {
		v, ok := strings.CutPrefix(s, prefix)
		if !ok {
			return 0, false
		}
		i, err := strconv.Atoi(v)
		if err != nil || i < 0 || i >= n {
			return 0, false
		}
		return i, true
	}

	switch s {
	case "xer.so":
		return XERSO, nil
	case "xer.ov":
		return XEROV, nil
	case "xer.ca":
		return XERCA, nil
	case "xer.bc":
		return XERBC, nil
	}

	if i, ok := index("crf", 8); ok {
		return CRF + Target(i), nil
	}
	if i, ok := index("r", 32); ok {
		return GPR + Target(i), nil
	}
	if i, ok := index("f", 32); ok {
		return FPR + Target(i), nil
	}

	return 0, fmt.Errorf("unknown target (%s)", s)
}

// names of the condition register field bits
var crfNames = map[string]uint32{
	"Negative":        registers.LT,
	"Positive":        registers.GT,
	"Zero":            registers.EQ,
	"SummaryOverflow": registers.SO,
}

func parseValue(tgt Target, s string) (Value, error) {
	if v, ok := strings.CutPrefix(s, "0x"); ok {
		n, err := strconv.ParseUint(v, 16, 64)
		if err != nil || (!tgt.isFPR() && n > math.MaxUint32) {
			return Value{}, fmt.Errorf("value %q for %s", s, tgt)
		}
		return Value{Bits: n}, nil
	}

	if tgt.isFPR() {
		if v, ok := strings.CutSuffix(s, "f"); ok {
			f, err := strconv.ParseFloat(v, 32)
			if err != nil {
				return Value{}, fmt.Errorf("value %q for %s", s, tgt)
			}
			return Value{Bits: math.Float64bits(float64(float32(f))), number: true}, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Value{}, fmt.Errorf("value %q for %s", s, tgt)
		}
		return Value{Bits: math.Float64bits(f), number: true}, nil
	}

	if tgt >= CRF && tgt < XERSO {
		if n, err := strconv.ParseUint(s, 10, 4); err == nil {
			return Value{Bits: n}, nil
		}
		var v uint32
		for _, f := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ' ' }) {
			b, ok := crfNames[f]
			if !ok {
				return Value{}, fmt.Errorf("condition %q for %s", f, tgt)
			}
			v |= b
		}
		return Value{Bits: uint64(v)}, nil
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < math.MinInt32 || n > math.MaxUint32 {
		return Value{}, fmt.Errorf("value %q for %s", s, tgt)
	}
	return Value{Bits: uint64(uint32(n))}, nil
}
