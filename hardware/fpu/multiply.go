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

// RoundMultiplyOperand rounds the second operand of a single precision
// multiply to 24 bits of mantissa, as the hardware does before multiplying.
// Rounding is always to nearest (ties away) regardless of the FPSCR.
//
// If the rounding carries the operand to infinity, a power of two is moved
// into the first operand instead. Denormal second operands are normalised
// first, with the first operand scaled to compensate.
func RoundMultiplyOperand(a, c uint64) (uint64, uint64) {
	const roundBit = uint64(1) << 27

	// nothing to round
	if c&(roundBit<<1-1) == 0 {
		return a, c
	}

	// the result is zero or infinity whatever happens to c
	if IsZero64(a) || IsInf64(a) {
		return a, c
	}

	if IsDenormal64(c) {
		sign := c & Sign64
		for c&Exponent64 == 0 {
			c <<= 1

			// a would become denormal. the product rounds to zero anyway
			if a&Exponent64 == 0 {
				return a, c&^Sign64 | sign
			}
			a -= 1 << 52
		}
		c = c&^Sign64 | sign
	}

	c &= ^(roundBit - 1)
	c += c & roundBit

	if IsInf64(c) {
		c -= 1 << 52
		aExp := Exponent64Bits(a)
		if aExp == 0 {
			sign := a & Sign64
			a = (a<<1)&^Sign64 | sign
		} else if aExp < 0x7FF-1 {
			a += 1 << 52
		}
	}

	return a, c
}
