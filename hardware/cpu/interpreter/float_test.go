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

package interpreter_test

import (
	"math"
	"testing"

	"github.com/jetsetilly/espresso/hardware/cpu/registers"
	"github.com/jetsetilly/espresso/hardware/fpu"
	"github.com/jetsetilly/espresso/test"
)

const (
	frsp    = 0xfc201818 // frsp f1,f3
	frspRC  = 0xfc201819 // frsp. f1,f3
	fctiw   = 0xfc20181c // fctiw f1,f3
	fctiwz  = 0xfc20181e // fctiwz f1,f3
	fres    = 0xec201830 // fres f1,f3
	frsqrte = 0xfc201834 // frsqrte f1,f3
)

func TestRoundToSingle(t *testing.T) {
	st := newState(t)
	st.FPR[3].SetFloat64(0.7)
	run(t, st, 1, frsp)
	test.ExpectEquality(t, st.FPR[1].PS0, 0x3fe6666660000000)
	test.ExpectEquality(t, st.FPR[1].PS1, 0x3fe6666660000000)
	test.ExpectEquality(t, st.FPSCR.Has(registers.XX|registers.FI), true)
	test.ExpectEquality(t, st.FPSCR.Has(registers.FR), false)
	test.ExpectEquality(t, st.FPSCR.FPRF(), registers.FPRFPositive)

	// exact conversions clear FI but XX is sticky
	st.FPR[3].SetFloat64(-1.5)
	run(t, st, 1, frsp)
	test.ExpectEquality(t, st.FPR[1].Float64(), -1.5)
	test.ExpectEquality(t, st.FPSCR.Has(registers.FI), false)
	test.ExpectEquality(t, st.FPSCR.Has(registers.XX), true)
	test.ExpectEquality(t, st.FPSCR.FPRF(), registers.FPRFNegative)

	// denormal in single precision but not in double precision
	st = newState(t)
	st.FPR[3].SetFloat64(1e-40)
	run(t, st, 1, frsp)
	test.ExpectEquality(t, st.FPR[1].Float64(), float64(float32(1e-40)))
	test.ExpectEquality(t, st.FPSCR.FPRF(), registers.FPRFClass|registers.FPRFPositive)

	// a signalling NaN is quietened and its payload reduced to the width of
	// a single
	st = newState(t)
	st.FPR[3].PS0 = 0x7ff0000020000001
	run(t, st, 1, frspRC)
	test.ExpectEquality(t, st.FPR[1].PS0, 0x7ff8000020000000)
	test.ExpectEquality(t, st.FPSCR.Has(registers.VXSNAN|registers.VX|registers.FX), true)
	test.ExpectEquality(t, st.FPSCR.FPRF(), registers.FPRFNaN|registers.FPRFClass)
	test.ExpectEquality(t, st.CR.Field(1), registers.LT|registers.EQ)

	st = newState(t)
	st.FPSCR.Set(registers.VE)
	st.FPR[1].SetFloat64(10)
	st.FPR[3].PS0 = 0x7ff0000020000001
	run(t, st, 1, frsp)
	test.ExpectEquality(t, st.FPR[1].Float64(), 10.0)
	test.ExpectEquality(t, st.FPSCR.Has(registers.FEX), true)
}

func TestConvertToInteger(t *testing.T) {
	cases := []struct {
		name string
		ins  uint32
		rn   fpu.RoundingMode
		b    uint64

		want      uint64
		exception uint32
		fi, fr    bool
	}{
		{name: "truncate", ins: fctiwz, b: math.Float64bits(3.75), want: 0xfff8000000000003, fi: true},
		{name: "truncate negative", ins: fctiwz, b: math.Float64bits(-3.75), want: 0xfff80000fffffffd, fi: true},
		{name: "ignores rounding mode", ins: fctiwz, rn: fpu.RoundPositive, b: math.Float64bits(3.25), want: 0xfff8000000000003, fi: true},
		{name: "nearest even", ins: fctiw, b: math.Float64bits(2.5), want: 0xfff8000000000002, fi: true},
		{name: "nearest incremented", ins: fctiw, b: math.Float64bits(3.5), want: 0xfff8000000000004, fi: true, fr: true},
		{name: "round up", ins: fctiw, rn: fpu.RoundPositive, b: math.Float64bits(2.1), want: 0xfff8000000000003, fi: true, fr: true},
		{name: "round down", ins: fctiw, rn: fpu.RoundNegative, b: math.Float64bits(-2.1), want: 0xfff80000fffffffd, fi: true, fr: true},
		{name: "exact", ins: fctiw, b: math.Float64bits(-7), want: 0xfff80000fffffff9},
		{name: "zero", ins: fctiw, b: 0, want: 0xfff8000000000000},

		// the upper word of a negative zero conversion differs by one bit
		{name: "negative zero", ins: fctiw, b: fpu.Sign64, want: 0xfff8000100000000},
		{name: "negative zero truncated", ins: fctiwz, b: fpu.Sign64, want: 0xfff8000100000000},

		{name: "too large", ins: fctiw, b: math.Float64bits(3e9), want: 0xfff800007fffffff, exception: registers.VXCVI},
		{name: "too small", ins: fctiwz, b: math.Float64bits(-3e9), want: 0xfff8000080000000, exception: registers.VXCVI},
		{name: "infinity", ins: fctiw, b: math.Float64bits(math.Inf(1)), want: 0xfff800007fffffff, exception: registers.VXCVI},
		{name: "quiet NaN", ins: fctiw, b: quietNaN, want: 0xfff8000080000000, exception: registers.VXCVI},
		{name: "signalling NaN", ins: fctiwz, b: snan, want: 0xfff8000080000000, exception: registers.VXCVI | registers.VXSNAN},
	}

	for _, c := range cases {
		st := newState(t)
		st.FPSCR.SetRN(c.rn)
		st.FPR[3].PS0 = c.b
		st.FPR[1].PS1 = math.Float64bits(9)

		run(t, st, 1, c.ins)

		test.ExpectEquality(t, st.FPR[1].PS0, c.want, c.name)
		test.ExpectEquality(t, st.FPR[1].Paired1(), 9.0, c.name)
		test.ExpectEquality(t, uint32(st.FPSCR)&registers.AllVX, c.exception, c.name)
		test.ExpectEquality(t, st.FPSCR.Has(registers.FI), c.fi, c.name)
		test.ExpectEquality(t, st.FPSCR.Has(registers.XX), c.fi, c.name)
		test.ExpectEquality(t, st.FPSCR.Has(registers.FR), c.fr, c.name)
	}

	// an enabled invalid operation leaves the target unchanged and clears
	// FR and FI
	st := newState(t)
	st.FPSCR.Set(registers.VE | registers.FR | registers.FI)
	st.FPR[1].SetFloat64(10)
	st.FPR[3].PS0 = quietNaN
	run(t, st, 1, fctiw)
	test.ExpectEquality(t, st.FPR[1].Float64(), 10.0)
	test.ExpectEquality(t, st.FPSCR.Has(registers.VXCVI|registers.FEX), true)
	test.ExpectEquality(t, st.FPSCR.Any(registers.FR|registers.FI), false)
}

func TestReciprocalEstimate(t *testing.T) {
	st := newState(t)
	st.FPR[3].SetFloat64(1)
	run(t, st, 1, fres)
	test.ExpectEquality(t, st.FPR[1].PS0, 0x3fefff0000000000)
	test.ExpectEquality(t, st.FPR[1].PS1, 0x3fefff0000000000)
	test.ExpectEquality(t, st.FPSCR.FPRF(), registers.FPRFPositive)
	test.ExpectEquality(t, st.FPSCR.Has(registers.XX), false)

	st.FPR[3].SetFloat64(3)
	run(t, st, 1, fres)
	test.ExpectEquality(t, st.FPR[1].PS0, 0x3fd5550000000000)

	// zero divide
	st = newState(t)
	st.FPR[3].PS0 = fpu.Sign64
	run(t, st, 1, fres)
	test.ExpectEquality(t, st.FPR[1].Float64(), math.Inf(-1))
	test.ExpectEquality(t, st.FPSCR.Has(registers.ZX|registers.FX), true)
	test.ExpectEquality(t, st.FPSCR.FPRF(), registers.FPRFNegative|registers.FPRFUnordered)

	st = newState(t)
	st.FPSCR.Set(registers.ZE)
	st.FPR[1].SetFloat64(10)
	run(t, st, 1, fres)
	test.ExpectEquality(t, st.FPR[1].Float64(), 10.0)
	test.ExpectEquality(t, st.FPSCR.Has(registers.ZX|registers.FEX), true)

	// signalling NaN
	st = newState(t)
	st.FPR[3].PS0 = 0x7ff0000020000000
	run(t, st, 1, fres)
	test.ExpectEquality(t, st.FPR[1].PS0, 0x7ff8000020000000)
	test.ExpectEquality(t, st.FPSCR.Has(registers.VXSNAN), true)
}

func TestReciprocalRootEstimate(t *testing.T) {
	st := newState(t)
	st.FPR[1].SetPaired1(7)
	st.FPR[3].SetFloat64(4)
	run(t, st, 1, frsqrte)
	test.ExpectEquality(t, st.FPR[1].PS0, 0x3fdffe8000000000)
	test.ExpectEquality(t, st.FPR[1].Paired1(), 7.0)

	st.FPR[3].SetFloat64(1)
	run(t, st, 1, frsqrte)
	test.ExpectEquality(t, st.FPR[1].PS0, 0x3feffe8000000000)

	// negative values are invalid
	st = newState(t)
	st.FPR[3].SetFloat64(-1)
	run(t, st, 1, frsqrte)
	test.ExpectEquality(t, st.FPR[1].PS0, fpu.DefaultNaN64)
	test.ExpectEquality(t, st.FPSCR.Has(registers.VXSQRT|registers.VX), true)

	// negative zero is a zero divide, not an invalid operation
	st = newState(t)
	st.FPR[3].PS0 = fpu.Sign64
	run(t, st, 1, frsqrte)
	test.ExpectEquality(t, st.FPR[1].Float64(), math.Inf(-1))
	test.ExpectEquality(t, st.FPSCR.Has(registers.ZX), true)
	test.ExpectEquality(t, st.FPSCR.Has(registers.VXSQRT), false)

	st = newState(t)
	st.FPSCR.Set(registers.VE)
	st.FPR[1].SetFloat64(10)
	st.FPR[3].SetFloat64(-4)
	run(t, st, 1, frsqrte)
	test.ExpectEquality(t, st.FPR[1].Float64(), 10.0)
	test.ExpectEquality(t, st.FPSCR.Has(registers.FEX), true)
}
