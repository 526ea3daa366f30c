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

// Bit layout constants for the two IEEE-754 formats.
const (
	Sign64     = uint64(1) << 63
	Exponent64 = uint64(0x7FF) << 52
	Mantissa64 = uint64(1)<<52 - 1
	Quiet64    = uint64(1) << 51

	Sign32     = uint32(1) << 31
	Exponent32 = uint32(0xFF) << 23
	Mantissa32 = uint32(1)<<23 - 1
	Quiet32    = uint32(1) << 22
)

// DefaultNaN64 is the NaN generated by invalid operations.
const DefaultNaN64 = uint64(0x7FF8000000000000)

// DefaultNaN32 is the single precision NaN generated by invalid operations.
const DefaultNaN32 = uint32(0x7FC00000)

// IsNaN64 returns true if bits is any kind of NaN.
func IsNaN64(bits uint64) bool {
	return bits&Exponent64 == Exponent64 && bits&Mantissa64 != 0
}

// IsSNaN64 returns true if bits is a signalling NaN.
func IsSNaN64(bits uint64) bool {
	return IsNaN64(bits) && bits&Quiet64 == 0
}

// IsQNaN64 returns true if bits is a quiet NaN.
func IsQNaN64(bits uint64) bool {
	return IsNaN64(bits) && bits&Quiet64 != 0
}

// IsInf64 returns true if bits is positive or negative infinity.
func IsInf64(bits uint64) bool {
	return bits&^Sign64 == Exponent64
}

// IsZero64 returns true if bits is positive or negative zero.
func IsZero64(bits uint64) bool {
	return bits&^Sign64 == 0
}

// IsDenormal64 returns true if bits is a non-zero denormal.
func IsDenormal64(bits uint64) bool {
	return bits&Exponent64 == 0 && bits&Mantissa64 != 0
}

// IsNegative64 returns true if the sign bit is set.
func IsNegative64(bits uint64) bool {
	return bits&Sign64 != 0
}

// Exponent64Bits returns the biased exponent field.
func Exponent64Bits(bits uint64) uint64 {
	return (bits & Exponent64) >> 52
}

// Quiet64NaN sets the quiet bit of a NaN. Non-NaN values are returned
// unchanged.
func Quiet64NaN(bits uint64) uint64 {
	if IsNaN64(bits) {
		return bits | Quiet64
	}
	return bits
}

// IsNaN32 returns true if bits is any kind of NaN.
func IsNaN32(bits uint32) bool {
	return bits&Exponent32 == Exponent32 && bits&Mantissa32 != 0
}

// IsSNaN32 returns true if bits is a signalling NaN.
func IsSNaN32(bits uint32) bool {
	return IsNaN32(bits) && bits&Quiet32 == 0
}

// IsInf32 returns true if bits is positive or negative infinity.
func IsInf32(bits uint32) bool {
	return bits&^Sign32 == Exponent32
}

// IsZero32 returns true if bits is positive or negative zero.
func IsZero32(bits uint32) bool {
	return bits&^Sign32 == 0
}

// IsDenormal32 returns true if bits is a non-zero denormal.
func IsDenormal32(bits uint32) bool {
	return bits&Exponent32 == 0 && bits&Mantissa32 != 0
}

// Quiet32NaN sets the quiet bit of a NaN. Non-NaN values are returned
// unchanged.
func Quiet32NaN(bits uint32) uint32 {
	if IsNaN32(bits) {
		return bits | Quiet32
	}
	return bits
}
