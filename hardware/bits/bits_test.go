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

package bits_test

import (
	"testing"

	"github.com/jetsetilly/espresso/hardware/bits"
	"github.com/jetsetilly/espresso/test"
)

func TestSwap(t *testing.T) {
	test.ExpectEquality(t, bits.Swap16(0x1234), 0x3412)
	test.ExpectEquality(t, bits.Swap32(0x12345678), 0x78563412)
	test.ExpectEquality(t, bits.Swap64(0x0102030405060708), 0x0807060504030201)

	// swapping twice is the identity
	for _, v := range []uint32{0, 1, 0x80000000, 0xDEADBEEF, 0xFFFFFFFF} {
		test.ExpectEquality(t, bits.Swap32(bits.Swap32(v)), v)
	}
}

func TestExtend(t *testing.T) {
	test.ExpectEquality(t, bits.SignExtend(0x7FFF, 16), 0x00007FFF)
	test.ExpectEquality(t, bits.SignExtend(0x8000, 16), 0xFFFF8000)
	test.ExpectEquality(t, bits.SignExtend(0x80, 8), 0xFFFFFF80)
	test.ExpectEquality(t, bits.SignExtend(0x1FFFFFC, 26), 0xFFFFFFFC)
	test.ExpectEquality(t, bits.ZeroExtend(0xFFFF8000, 16), 0x8000)
	test.ExpectEquality(t, bits.ZeroExtend(0xFFFF8000, 32), 0xFFFF8000)
}

func TestFields(t *testing.T) {
	test.ExpectEquality(t, bits.Field(0xABCD1234, 8, 8), 0x12)
	test.ExpectEquality(t, bits.Field(0xABCD1234, 28, 4), 0xA)
	test.ExpectEquality(t, bits.SetField(0xABCD1234, 8, 8, 0xFF), 0xABCDFF34)
	test.ExpectEquality(t, bits.SetField(0, 4, 4, 0xFF), 0xF0)
	test.ExpectSuccess(t, bits.Bit(0x80000000, 31))
	test.ExpectFailure(t, bits.Bit(0x80000000, 30))
	test.ExpectEquality(t, bits.SetBit(0, 29, true), 0x20000000)
	test.ExpectEquality(t, bits.SetBit(0xFFFFFFFF, 0, false), 0xFFFFFFFE)
}

func TestMask(t *testing.T) {
	test.ExpectEquality(t, bits.Mask(0, 31), 0xFFFFFFFF)
	test.ExpectEquality(t, bits.Mask(0, 0), 0x80000000)
	test.ExpectEquality(t, bits.Mask(31, 31), 0x00000001)
	test.ExpectEquality(t, bits.Mask(16, 31), 0x0000FFFF)
	test.ExpectEquality(t, bits.Mask(0, 15), 0xFFFF0000)
	test.ExpectEquality(t, bits.Mask(24, 7), 0xFF0000FF)
	test.ExpectEquality(t, bits.Mask(31, 0), 0x80000001)
}

func TestRotate(t *testing.T) {
	test.ExpectEquality(t, bits.RotateLeft32(0x80000001, 1), 0x00000003)
	test.ExpectEquality(t, bits.RotateLeft32(0x12345678, 32), 0x12345678)
	test.ExpectEquality(t, bits.RotateLeft32(0x12345678, 4), 0x23456781)
	test.ExpectEquality(t, bits.LeadingZeros32(0), 32)
	test.ExpectEquality(t, bits.LeadingZeros32(1), 31)
	test.ExpectEquality(t, bits.LeadingZeros64(1<<52), 11)
}
