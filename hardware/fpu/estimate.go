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

import "github.com/jetsetilly/espresso/hardware/bits"

var reciprocalBase = [32]uint32{
	0x3FFC, 0x3C1C, 0x3875, 0x3504, 0x31C4, 0x2EB1, 0x2BC8, 0x2904,
	0x2664, 0x23E5, 0x2184, 0x1F40, 0x1D16, 0x1B04, 0x190A, 0x1725,
	0x1554, 0x1396, 0x11EB, 0x104F, 0x0EC4, 0x0D48, 0x0BD7, 0x0A7C,
	0x0922, 0x07DF, 0x069C, 0x056F, 0x0442, 0x0328, 0x020E, 0x0106,
}

var reciprocalDelta = [32]uint32{
	0x3E1, 0x3A7, 0x371, 0x340, 0x313, 0x2EA, 0x2C4, 0x2A0,
	0x27F, 0x261, 0x245, 0x22A, 0x212, 0x1FB, 0x1E5, 0x1D1,
	0x1BE, 0x1AC, 0x19B, 0x18B, 0x17C, 0x16E, 0x15B, 0x15B,
	0x143, 0x143, 0x12D, 0x12D, 0x11A, 0x11A, 0x108, 0x106,
}

var rootBase = [32]uint64{
	0x7FF4, 0x7852, 0x7154, 0x6AE4, 0x64F2, 0x5F6E, 0x5A4C, 0x5580,
	0x5102, 0x4CCA, 0x48D0, 0x450E, 0x4182, 0x3E24, 0x3AF2, 0x37E8,
	0x34FD, 0x2F97, 0x2AA5, 0x2618, 0x21E4, 0x1DFE, 0x1A5C, 0x16F8,
	0x13CA, 0x10CE, 0x0DFE, 0x0B57, 0x08D4, 0x0673, 0x0431, 0x020B,
}

var rootDelta = [32]uint64{
	0x7A4, 0x700, 0x670, 0x5F2, 0x584, 0x524, 0x4CC, 0x47E,
	0x43A, 0x3FA, 0x3C2, 0x38E, 0x35E, 0x332, 0x30A, 0x2E6,
	0x568, 0x4F3, 0x48D, 0x435, 0x3E7, 0x3A2, 0x365, 0x32E,
	0x2FC, 0x2D0, 0x2A8, 0x283, 0x261, 0x243, 0x226, 0x20B,
}

// EstimateFlags are the exceptions raised by the estimate instructions.
type EstimateFlags uint8

// List of valid EstimateFlags.
const (
	EstimateInvalid EstimateFlags = 1 << iota
	EstimateDivideByZero
	EstimateOverflow
	EstimateUnderflow
	EstimateInexact
)

// EstimateReciprocal returns the table based reciprocal estimate of a single
// precision value, as computed by fres and ps_res.
func EstimateReciprocal(f uint32) (uint32, EstimateFlags) {
	sign := f & Sign32
	exp := int32((f & Exponent32) >> 23)
	mant := f & Mantissa32

	switch {
	case IsInf32(f):
		return sign, 0
	case IsNaN32(f):
		var flags EstimateFlags
		if IsSNaN32(f) {
			flags = EstimateInvalid
		}
		return f | Quiet32, flags
	case IsZero32(f):
		return sign | Exponent32, EstimateDivideByZero
	}

	if exp == 0 {
		if mant < 0x200000 {
			// result is too large to represent
			return sign | 0x7F7FFFFF, EstimateOverflow | EstimateInexact
		}
		if mant < 0x400000 {
			exp = -1
			mant = (mant << 2) & Mantissa32
		} else {
			mant = (mant << 1) & Mantissa32
		}
	}

	newExp := 253 - exp
	idx := mant >> 18
	delta := (mant >> 8) & 0x3FF
	lookup := (reciprocalBase[idx] << 10) - reciprocalDelta[idx]*delta
	newMant := lookup >> 1
	inexact := lookup&1 != 0

	var flags EstimateFlags

	if newExp <= 0 {
		// denormalise the result
		inexact = inexact || newMant&1 != 0
		newMant = (newMant >> 1) | 0x400000
		if newExp < 0 {
			inexact = inexact || newMant&1 != 0
			newMant >>= 1
			newExp = 0
		}
		if inexact {
			flags |= EstimateUnderflow
		}
	}

	if inexact {
		flags |= EstimateInexact
	}

	return sign | uint32(newExp)<<23 | newMant&Mantissa32, flags
}

// EstimateReciprocalRoot returns the table based reciprocal square root
// estimate of a double precision value, as computed by frsqrte.
func EstimateReciprocalRoot(d uint64) (uint64, EstimateFlags) {
	sign := d & Sign64
	exp := int64(Exponent64Bits(d))
	mant := d & Mantissa64

	switch {
	case IsInf64(d):
		if sign != 0 {
			return DefaultNaN64, EstimateInvalid
		}
		return 0, 0
	case IsNaN64(d):
		var flags EstimateFlags
		if IsSNaN64(d) {
			flags = EstimateInvalid
		}
		return d | Quiet64, flags
	case IsZero64(d):
		return sign | Exponent64, EstimateDivideByZero
	case sign != 0:
		return DefaultNaN64, EstimateInvalid
	}

	if exp == 0 {
		// normalise denormal
		shift := bits.LeadingZeros64(mant) - 11
		mant = (mant << shift) & Mantissa64
		exp -= int64(shift) - 1
	}

	newExp := (3068 - exp) / 2
	idx := (mant >> 48) & 15
	if exp&1 == 0 {
		idx |= 16
	}
	delta := (mant >> 37) & 0x7FF
	lookup := (rootBase[idx] << 11) - rootDelta[idx]*delta
	newMant := lookup << 26

	return uint64(newExp)<<52 | newMant&Mantissa64, 0
}
