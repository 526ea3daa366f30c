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

// ExtendSingle converts single precision bits to double precision bits. The
// conversion is exact and, unlike a conversion through the host FPU, a
// signalling NaN keeps its payload and stays signalling.
func ExtendSingle(f uint32) uint64 {
	sign := uint64(f&Sign32) << 32
	exp := (f & Exponent32) >> 23
	frac := uint64(f & Mantissa32)

	switch {
	case exp == 0xFF:
		return sign | Exponent64 | frac<<29
	case exp == 0 && frac == 0:
		return sign
	case exp == 0:
		// normalise denormal
		e := int64(-126)
		for frac&(1<<23) == 0 {
			frac <<= 1
			e--
		}
		frac &= uint64(Mantissa32)
		return sign | uint64(e+1023)<<52 | frac<<29
	}

	return sign | uint64(int64(exp)-127+1023)<<52 | frac<<29
}

// TruncateDouble converts double precision bits to single precision bits
// by discarding low order bits rather than rounding. This is the conversion
// performed by the single precision store instructions.
//
// Values too small for the single format are denormalised. Values outside
// the single precision range have their exponent truncated, which is
// the documented behaviour for stfs and friends.
func TruncateDouble(d uint64) uint32 {
	exp := Exponent64Bits(d)

	if exp > 896 || d&^Sign64 == 0 {
		return uint32((d>>32)&0xC0000000) | uint32((d>>29)&0x3FFFFFFF)
	}

	sign := uint32((d & Sign64) >> 32)
	if exp < 874 {
		return sign
	}

	// denormalise. the implicit leading bit becomes explicit
	frac := d&Mantissa64 | 1<<52
	frac >>= 897 - exp
	return sign | uint32(frac>>29)&Mantissa32
}

// ExtendSingleNaN converts single precision NaN bits to a double NaN by
// moving the payload. Used when a signalling NaN must be preserved exactly.
func ExtendSingleNaN(f uint32) uint64 {
	return uint64(f&Sign32)<<32 | Exponent64 | uint64(f&Mantissa32)<<29
}

// TruncateDoubleNaN is the inverse of ExtendSingleNaN(). Low order payload
// bits are lost.
func TruncateDoubleNaN(d uint64) uint32 {
	return uint32((d&Sign64)>>32) | Exponent32 | uint32((d&Mantissa64)>>29)
}
