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

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func toBig(v float64) *big.Float {
	return newBig().SetFloat64(v)
}

func signedZero(neg bool) float64 {
	if neg {
		return math.Copysign(0, -1)
	}
	return 0
}

// thresholds for the fast paths. inside these ranges the error terms computed
// with native arithmetic are exact
const (
	fastLow  = 0x1p-960
	fastHigh = 0x1p1000
)

// Add returns a+b rounded to double precision.
func Add(a, b float64, mode RoundingMode) (float64, Flags) {
	if !isFinite(a) || !isFinite(b) {
		return a + b, 0
	}

	s := a + b
	if as := math.Abs(s); as >= fastLow && as < fastHigh {
		// two-sum error term
		bb := s - a
		err := (a - (s - bb)) + (b - bb)
		return adjust(s, err, mode)
	}

	if a == 0 && b == 0 {
		return signedZero(zeroSign(math.Signbit(a), math.Signbit(b), mode)), 0
	}

	z := newBig().Add(toBig(a), toBig(b))
	if z.Sign() == 0 && z.Acc() == big.Exact {
		return signedZero(zeroSign(math.Signbit(a), math.Signbit(b), mode)), 0
	}
	return roundBig(z, z.Acc() != big.Exact, Double, mode)
}

// Sub returns a-b rounded to double precision.
func Sub(a, b float64, mode RoundingMode) (float64, Flags) {
	return Add(a, -b, mode)
}

// Mul returns a*b rounded to double precision.
func Mul(a, b float64, mode RoundingMode) (float64, Flags) {
	if !isFinite(a) || !isFinite(b) {
		return a * b, 0
	}

	if a == 0 || b == 0 {
		return signedZero(math.Signbit(a) != math.Signbit(b)), 0
	}

	p := a * b
	if ap := math.Abs(p); ap >= fastLow && ap < fastHigh {
		return adjust(p, math.FMA(a, b, -p), mode)
	}

	z := newBig().Mul(toBig(a), toBig(b))
	return roundBig(z, z.Acc() != big.Exact, Double, mode)
}

// Div returns a/b rounded to double precision. Division by zero returns a
// correctly signed infinity (or NaN for 0/0) without flags. Detecting those
// cases is the responsibility of the caller.
func Div(a, b float64, mode RoundingMode) (float64, Flags) {
	if !isFinite(a) || !isFinite(b) || b == 0 {
		return a / b, 0
	}

	if a == 0 {
		return signedZero(math.Signbit(a) != math.Signbit(b)), 0
	}

	q := a / b
	aq := math.Abs(q)
	aa := math.Abs(a)
	if aq >= fastLow && aq < fastHigh && aa >= fastLow && aa < fastHigh {
		// the remainder a - q*b is exact. the error of the quotient is r/b
		r := math.FMA(-q, b, a)
		if b < 0 {
			r = -r
		}
		return adjust(q, r, mode)
	}

	z := newBig().Quo(toBig(a), toBig(b))
	return roundBig(z, z.Acc() != big.Exact, Double, mode)
}

// MulAdd returns a*c+b rounded once to the format.
func MulAdd(a, c, b float64, f Format, mode RoundingMode) (float64, Flags) {
	if !isFinite(a) || !isFinite(c) || !isFinite(b) {
		return math.FMA(a, c, b), 0
	}

	pNeg := math.Signbit(a) != math.Signbit(c)

	if a == 0 || c == 0 {
		if b == 0 {
			return signedZero(zeroSign(pNeg, math.Signbit(b), mode)), 0
		}
		return RoundFloat(b, f, mode)
	}

	// the product of two doubles is exact at this precision
	p := newBig().Mul(toBig(a), toBig(c))

	z := newBig().Add(p, toBig(b))
	if z.Sign() == 0 && z.Acc() == big.Exact {
		return signedZero(zeroSign(pNeg, math.Signbit(b), mode)), 0
	}
	return roundBig(z, z.Acc() != big.Exact, f, mode)
}

// RoundInt rounds x to an integral value using the rounding mode.
func RoundInt(x float64, mode RoundingMode) float64 {
	switch mode {
	case RoundZero:
		return math.Trunc(x)
	case RoundPositive:
		return math.Ceil(x)
	case RoundNegative:
		return math.Floor(x)
	}
	return math.RoundToEven(x)
}
