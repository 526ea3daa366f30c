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

	"github.com/jetsetilly/espresso/hardware/bits"
)

// GQR is a graphics quantisation register. It describes how psq_l and psq_st
// convert between paired singles and their representation in memory.
type GQR uint32

// QuantType is the value of the load and store type fields of a GQR.
type QuantType uint32

// List of valid QuantType values. Values 1 to 3 are not used by the hardware
// and are treated as QuantFloat.
const (
	QuantFloat QuantType = 0
	QuantU8    QuantType = 4
	QuantU16   QuantType = 5
	QuantS8    QuantType = 6
	QuantS16   QuantType = 7
)

// Size returns the number of bytes in memory for each element of the type.
func (q QuantType) Size() uint32 {
	switch q {
	case QuantU8, QuantS8:
		return 1
	case QuantU16, QuantS16:
		return 2
	}
	return 4
}

func (q QuantType) String() string {
	switch q {
	case QuantU8:
		return "u8"
	case QuantU16:
		return "u16"
	case QuantS8:
		return "s8"
	case QuantS16:
		return "s16"
	}
	return "float"
}

func (g GQR) StType() QuantType { return QuantType(bits.Field(uint32(g), 0, 3)) }
func (g GQR) StScale() uint32   { return bits.Field(uint32(g), 8, 6) }
func (g GQR) LdType() QuantType { return QuantType(bits.Field(uint32(g), 16, 3)) }
func (g GQR) LdScale() uint32   { return bits.Field(uint32(g), 24, 6) }

func (g *GQR) SetStType(t QuantType) { *g = GQR(bits.SetField(uint32(*g), 0, 3, uint32(t))) }
func (g *GQR) SetStScale(s uint32)   { *g = GQR(bits.SetField(uint32(*g), 8, 6, s)) }
func (g *GQR) SetLdType(t QuantType) { *g = GQR(bits.SetField(uint32(*g), 16, 3, uint32(t))) }
func (g *GQR) SetLdScale(s uint32)   { *g = GQR(bits.SetField(uint32(*g), 24, 6, s)) }

func (g GQR) String() string {
	return fmt.Sprintf("ld=%s/%d st=%s/%d", g.LdType(), g.LdScale(), g.StType(), g.StScale())
}
