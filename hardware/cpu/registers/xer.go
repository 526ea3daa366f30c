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

package registers

import (
	"github.com/jetsetilly/espresso/hardware/bits"
)

// XER is the fixed point exception register.
type XER uint32

// Bit positions of the XER fields.
const (
	xerSO = 31
	xerOV = 30
	xerCA = 29
)

// Label returns the canonical name for the XER.
func (x XER) Label() string {
	return "XER"
}

// SO is the summary overflow flag. It is sticky.
func (x XER) SO() bool { return bits.Bit(uint32(x), xerSO) }

// OV is the overflow flag.
func (x XER) OV() bool { return bits.Bit(uint32(x), xerOV) }

// CA is the carry flag.
func (x XER) CA() bool { return bits.Bit(uint32(x), xerCA) }

// ByteCount is the number of bytes transferred by lswx and stswx.
func (x XER) ByteCount() uint32 { return bits.Field(uint32(x), 0, 7) }

// CRXR is the top four bits of the XER, as copied into a condition register
// field by mcrxr.
func (x XER) CRXR() uint32 { return bits.Field(uint32(x), 28, 4) }

func (x *XER) SetSO(v bool) { *x = XER(bits.SetBit(uint32(*x), xerSO, v)) }
func (x *XER) SetOV(v bool) { *x = XER(bits.SetBit(uint32(*x), xerOV, v)) }
func (x *XER) SetCA(v bool) { *x = XER(bits.SetBit(uint32(*x), xerCA, v)) }

// SetByteCount sets the byte count field. Only the low seven bits of v are
// used.
func (x *XER) SetByteCount(v uint32) { *x = XER(bits.SetField(uint32(*x), 0, 7, v)) }

// SetCRXR sets the top four bits of the XER.
func (x *XER) SetCRXR(v uint32) { *x = XER(bits.SetField(uint32(*x), 28, 4, v)) }

// SetOverflow sets OV and, if v is true, the sticky SO flag.
func (x *XER) SetOverflow(v bool) {
	x.SetOV(v)
	if v {
		x.SetSO(true)
	}
}

func (x XER) String() string {
	return string([]rune{
		flagRune(x.SO(), 's'),
		flagRune(x.OV(), 'o'),
		flagRune(x.CA(), 'c'),
	})
}
