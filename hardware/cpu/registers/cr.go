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
	"fmt"
	"strings"
)

// CR is the condition register. It is made up of eight four bit fields, with
// field 0 in the most significant bits.
type CR uint32

// Bits of a condition register field.
const (
	LT = 0x8
	GT = 0x4
	EQ = 0x2
	SO = 0x1

	// alternative names used by floating point comparisons
	FL = LT
	FG = GT
	FE = EQ
	FU = SO
)

// Label returns the canonical name for the condition register.
func (cr CR) Label() string {
	return "CR"
}

// Field returns the value of field n.
func (cr CR) Field(n uint32) uint32 {
	return (uint32(cr) >> ((7 - (n & 7)) * 4)) & 0xf
}

// SetField sets the value of field n.
func (cr *CR) SetField(n uint32, v uint32) {
	s := (7 - (n & 7)) * 4
	*cr = CR((uint32(*cr) &^ (0xf << s)) | ((v & 0xf) << s))
}

// Bit returns the condition register bit b. Bits are numbered from the most
// significant bit, as they are in the crbA, crbB, crbD and bi fields.
func (cr CR) Bit(b uint32) bool {
	return uint32(cr)&(0x80000000>>(b&31)) != 0
}

// SetBit sets or clears the condition register bit b.
func (cr *CR) SetBit(b uint32, v bool) {
	m := uint32(0x80000000) >> (b & 31)
	if v {
		*cr = CR(uint32(*cr) | m)
	} else {
		*cr = CR(uint32(*cr) &^ m)
	}
}

// String returns the fields of the condition register. Set bits are shown in
// upper case.
func (cr CR) String() string {
	s := strings.Builder{}
	for n := uint32(0); n < 8; n++ {
		if n > 0 {
			s.WriteRune(' ')
		}
		f := cr.Field(n)
		fmt.Fprintf(&s, "%c%c%c%c",
			flagRune(f&LT != 0, 'l'),
			flagRune(f&GT != 0, 'g'),
			flagRune(f&EQ != 0, 'e'),
			flagRune(f&SO != 0, 's'))
	}
	return s.String()
}

func flagRune(set bool, r rune) rune {
	if set {
		return r - 'a' + 'A'
	}
	return r
}
