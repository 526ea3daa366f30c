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

package fpu

import (
	"math"
	"math/big"
)

// RoundingMode values are the same as the RN field of the FPSCR.
type RoundingMode uint8

// List of valid RoundingMode values.
const (
	RoundNearest RoundingMode = iota
	RoundZero
	RoundPositive
	RoundNegative
)

func (m RoundingMode) String() string {
	switch m {
	case RoundNearest:
		return "nearest"
	case RoundZero:
		return "zero"
	case RoundPositive:
		return "+inf"
	case RoundNegative:
		return "-inf"
	}
	return "unknown rounding mode"
}

// Flags records what happened during rounding.
type Flags uint8

// List of valid Flags.
const (
	Inexact Flags = 1 << iota
	Underflow
	Overflow

	// the magnitude of the result was incremented by rounding. the FR bit of
	// the FPSCR
	Incremented
)

// Format describes a binary floating point format.
type Format struct {
	// number of significant bits, including the implicit leading bit
	Mant int

	// exponent range of normal numbers
	EMin int
	EMax int
}

// The two formats supported by the FPU.
var (
	Double = Format{Mant: 53, EMin: -1022, EMax: 1023}
	Single = Format{Mant: 24, EMin: -126, EMax: 127}
)

// precision used for intermediate results on the slow path. large enough to
// hold a truncated result and the guard and round bits for either format.
const bigPrec = 192

func newBig() *big.Float {
	return new(big.Float).SetPrec(bigPrec).SetMode(big.ToZero)
}

// largest finite value of the format with the given sign.
func (f Format) max(neg bool) float64 {
	v := math.Ldexp(2-math.Ldexp(1, 1-f.Mant), f.EMax)
	if neg {
		return -v
	}
	return v
}

func signedInf(neg bool) float64 {
	if neg {
		return math.Inf(-1)
	}
	return math.Inf(1)
}

// overflowResult is the value returned when the rounded result exceeds the
// range of the format.
func (f Format) overflowResult(neg bool, mode RoundingMode) float64 {
	switch mode {
	case RoundZero:
		return f.max(neg)
	case RoundPositive:
		if neg {
			return f.max(true)
		}
	case RoundNegative:
		if !neg {
			return f.max(false)
		}
	}
	return signedInf(neg)
}

// zeroSign returns the sign of an exact zero result of an addition whose
// operands had the given signs.
func zeroSign(aNeg, bNeg bool, mode RoundingMode) bool {
	if aNeg == bNeg {
		return aNeg
	}
	return mode == RoundNegative
}

// roundBig rounds a finite non-zero value to the format. The value z has been
// truncated toward zero and sticky indicates whether any non-zero bits were
// lost in doing so.
func roundBig(z *big.Float, sticky bool, f Format, mode RoundingMode) (float64, Flags) {
	neg := z.Signbit()

	abs := new(big.Float).SetPrec(bigPrec).Abs(z)

	// exponent of the leading bit
	e := abs.MantExp(nil) - 1

	// exponent of the least significant bit of the result
	qe := max(e, f.EMin) - (f.Mant - 1)

	t := new(big.Float).SetPrec(bigPrec).SetMantExp(abs, -qe)
	n, _ := t.Uint64()
	frac := new(big.Float).SetPrec(bigPrec).Sub(t, new(big.Float).SetUint64(n))
	half := frac.Cmp(big.NewFloat(0.5))

	inexact := sticky || frac.Sign() != 0

	var up bool
	switch mode {
	case RoundNearest:
		up = half > 0 || (half == 0 && (sticky || n&1 == 1))
	case RoundPositive:
		up = inexact && !neg
	case RoundNegative:
		up = inexact && neg
	}

	if up {
		n++
	}

	var flags Flags
	if inexact {
		flags |= Inexact
		if e < f.EMin {
			flags |= Underflow
		}
	}
	if up {
		flags |= Incremented
	}

	// carry out of the significand moves the result into the next binade
	if n == 1<<f.Mant {
		n >>= 1
		qe++
	}

	if qe+f.Mant-1 > f.EMax {
		return f.overflowResult(neg, mode), flags | Overflow | Inexact
	}

	v := math.Ldexp(float64(n), qe)
	if neg {
		v = -v
	}

	return v, flags
}

// RoundFloat rounds a double precision value to the format. When the format
// is Double the value is returned unchanged.
func RoundFloat(x float64, f Format, mode RoundingMode) (float64, Flags) {
	if f == Double || math.IsNaN(x) || math.IsInf(x, 0) || x == 0 {
		return x, 0
	}

	// fast path for single precision values well inside the normal range
	if f == Single {
		ax := math.Abs(x)
		if ax >= 0x1p-125 && ax < 0x1p127 {
			return roundSingleFast(x, mode)
		}
	}

	return roundBig(newBig().SetFloat64(x), false, f, mode)
}

func roundSingleFast(x float64, mode RoundingMode) (float64, Flags) {
	r := float32(x)
	if float64(r) == x {
		return x, 0
	}

	// r is correctly rounded to nearest. step it in the required direction
	// for the other modes
	switch mode {
	case RoundZero:
		if math.Abs(float64(r)) > math.Abs(x) {
			r = math.Nextafter32(r, 0)
		}
	case RoundPositive:
		if float64(r) < x {
			r = math.Nextafter32(r, float32(math.Inf(1)))
		}
	case RoundNegative:
		if float64(r) > x {
			r = math.Nextafter32(r, float32(math.Inf(-1)))
		}
	}

	flags := Inexact
	if math.Abs(float64(r)) > math.Abs(x) {
		flags |= Incremented
	}
	if math.IsInf(float64(r), 0) {
		flags |= Overflow
	}

	return float64(r), flags
}

// adjust a correctly rounded to nearest result for the other rounding modes.
// the err argument has the sign of the difference between the exact result
// and r. (exact = r + err)
func adjust(r float64, err float64, mode RoundingMode) (float64, Flags) {
	if err == 0 {
		return r, 0
	}

	switch mode {
	case RoundZero:
		if math.Signbit(err) != math.Signbit(r) {
			r = math.Nextafter(r, 0)
		}
	case RoundPositive:
		if err > 0 {
			r = math.Nextafter(r, math.Inf(1))
		}
	case RoundNegative:
		if err < 0 {
			r = math.Nextafter(r, math.Inf(-1))
		}
	}

	flags := Inexact

	// the magnitude was incremented if the result is further from zero than
	// the exact value. for nearest the rounding error has the opposite sign
	// to the result
	switch mode {
	case RoundNearest:
		if math.Signbit(err) != math.Signbit(r) {
			flags |= Incremented
		}
	case RoundPositive:
		if err > 0 && r > 0 {
			flags |= Incremented
		}
	case RoundNegative:
		if err < 0 && r < 0 {
			flags |= Incremented
		}
	}

	if math.IsInf(r, 0) {
		flags |= Overflow
	}

	return r, flags
}
