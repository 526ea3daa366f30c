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

package bits

import (
	mbits "math/bits"
)

// Swap16 reverses the byte order of a 16 bit value.
func Swap16(v uint16) uint16 {
	return mbits.ReverseBytes16(v)
}

// Swap32 reverses the byte order of a 32 bit value.
func Swap32(v uint32) uint32 {
	return mbits.ReverseBytes32(v)
}

// Swap64 reverses the byte order of a 64 bit value.
func Swap64(v uint64) uint64 {
	return mbits.ReverseBytes64(v)
}

// SignExtend treats the lowest n bits of v as a two's complement number and
// extends it to 32 bits.
func SignExtend(v uint32, n uint) uint32 {
	s := 32 - n
	return uint32(int32(v<<s) >> s)
}

// ZeroExtend clears all but the lowest n bits of v.
func ZeroExtend(v uint32, n uint) uint32 {
	if n >= 32 {
		return v
	}
	return v & (1<<n - 1)
}

// Field returns the width bits of v starting at bit lo (LSB numbering).
func Field(v uint32, lo, width uint) uint32 {
	return (v >> lo) & (1<<width - 1)
}

// SetField returns v with the width bits starting at bit lo replaced by f.
// Bits of f above width are ignored.
func SetField(v uint32, lo, width uint, f uint32) uint32 {
	m := uint32(1<<width-1) << lo
	return (v &^ m) | ((f << lo) & m)
}

// Bit returns true if bit n (LSB numbering) of v is set.
func Bit(v uint32, n uint) bool {
	return v&(1<<n) != 0
}

// SetBit returns v with bit n (LSB numbering) set or cleared.
func SetBit(v uint32, n uint, set bool) uint32 {
	if set {
		return v | 1<<n
	}
	return v &^ (1 << n)
}

// Mask returns the mask generated by the rotate instructions. The mb and me
// arguments are in PowerPC bit numbering (bit 0 is the MSB) and the mask is
// the inclusive range of bits between them. If me is less than mb then the
// mask wraps around.
func Mask(mb, me uint32) uint32 {
	mb &= 31
	me &= 31
	begin := uint32(0xFFFFFFFF) >> mb
	end := uint32(0xFFFFFFFF) << (31 - me)
	if mb <= me {
		return begin & end
	}
	return begin | end
}

// RotateLeft32 rotates v left by n bits. Only the low five bits of n are used.
func RotateLeft32(v uint32, n uint32) uint32 {
	return mbits.RotateLeft32(v, int(n&31))
}

// LeadingZeros32 counts the leading zero bits of v.
func LeadingZeros32(v uint32) uint32 {
	return uint32(mbits.LeadingZeros32(v))
}

// LeadingZeros64 counts the leading zero bits of v.
func LeadingZeros64(v uint64) int {
	return mbits.LeadingZeros64(v)
}
