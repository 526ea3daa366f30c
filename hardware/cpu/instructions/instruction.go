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

package instructions

import (
	"fmt"

	"github.com/jetsetilly/espresso/hardware/bits"
)

// Instruction is a 32 bit instruction word.
type Instruction uint32

func (ins Instruction) String() string {
	return fmt.Sprintf("%08x", uint32(ins))
}

func (ins Instruction) field(start, width uint) uint32 {
	return bits.Field(uint32(ins), start, width)
}

// Opcd is the primary opcode.
func (ins Instruction) Opcd() uint32 { return ins.field(26, 6) }

// XO1 is the ten bit extended opcode.
func (ins Instruction) XO1() uint32 { return ins.field(1, 10) }

// XO2 is the nine bit extended opcode used by instructions with an OE bit.
func (ins Instruction) XO2() uint32 { return ins.field(1, 9) }

// XO3 is the six bit extended opcode used by the indexed paired single
// loads and stores.
func (ins Instruction) XO3() uint32 { return ins.field(1, 6) }

// XO4 is the five bit extended opcode of the A-form floating point
// instructions.
func (ins Instruction) XO4() uint32 { return ins.field(1, 5) }

func (ins Instruction) RD() uint32   { return ins.field(21, 5) }
func (ins Instruction) RS() uint32   { return ins.field(21, 5) }
func (ins Instruction) RA() uint32   { return ins.field(16, 5) }
func (ins Instruction) RB() uint32   { return ins.field(11, 5) }
func (ins Instruction) FRD() uint32  { return ins.field(21, 5) }
func (ins Instruction) FRS() uint32  { return ins.field(21, 5) }
func (ins Instruction) FRA() uint32  { return ins.field(16, 5) }
func (ins Instruction) FRB() uint32  { return ins.field(11, 5) }
func (ins Instruction) FRC() uint32  { return ins.field(6, 5) }
func (ins Instruction) CRBD() uint32 { return ins.field(21, 5) }
func (ins Instruction) CRBA() uint32 { return ins.field(16, 5) }
func (ins Instruction) CRBB() uint32 { return ins.field(11, 5) }
func (ins Instruction) CRFD() uint32 { return ins.field(23, 3) }
func (ins Instruction) CRFS() uint32 { return ins.field(18, 3) }
func (ins Instruction) BO() uint32   { return ins.field(21, 5) }
func (ins Instruction) BI() uint32   { return ins.field(16, 5) }
func (ins Instruction) TO() uint32   { return ins.field(21, 5) }
func (ins Instruction) SH() uint32   { return ins.field(11, 5) }
func (ins Instruction) MB() uint32   { return ins.field(6, 5) }
func (ins Instruction) ME() uint32   { return ins.field(1, 5) }
func (ins Instruction) NB() uint32   { return ins.field(11, 5) }
func (ins Instruction) SR() uint32   { return ins.field(16, 4) }
func (ins Instruction) CRM() uint32  { return ins.field(12, 8) }
func (ins Instruction) FM() uint32   { return ins.field(17, 8) }
func (ins Instruction) IMM() uint32  { return ins.field(12, 4) }
func (ins Instruction) KCN() uint32  { return ins.field(2, 24) }
func (ins Instruction) UIMM() uint32 { return ins.field(0, 16) }
func (ins Instruction) W() uint32    { return ins.field(15, 1) }
func (ins Instruction) I() uint32    { return ins.field(12, 3) }
func (ins Instruction) QW() uint32   { return ins.field(10, 1) }
func (ins Instruction) QI() uint32   { return ins.field(7, 3) }

func (ins Instruction) AA() bool { return ins&0x02 != 0 }
func (ins Instruction) LK() bool { return ins&0x01 != 0 }
func (ins Instruction) RC() bool { return ins&0x01 != 0 }
func (ins Instruction) OE() bool { return ins&0x400 != 0 }

// SIMM is the sign extended 16 bit immediate value.
func (ins Instruction) SIMM() int32 {
	return int32(bits.SignExtend(ins.UIMM(), 16))
}

// D is the sign extended displacement of a load or store.
func (ins Instruction) D() int32 {
	return ins.SIMM()
}

// QD is the sign extended 12 bit displacement of psq_l and psq_st.
func (ins Instruction) QD() int32 {
	return int32(bits.SignExtend(ins.field(0, 12), 12))
}

// LI is the sign extended branch offset of the b instruction, in bytes.
func (ins Instruction) LI() int32 {
	return int32(bits.SignExtend(uint32(ins)&0x03fffffc, 26))
}

// BD is the sign extended branch offset of the bc instruction, in bytes.
func (ins Instruction) BD() int32 {
	return int32(bits.SignExtend(uint32(ins)&0xfffc, 16))
}

// SPR returns the special purpose register number. The two five bit halves
// of the field are stored swapped in the instruction word.
func (ins Instruction) SPR() uint32 {
	return swapSPR(ins.field(11, 10))
}

// TBR is encoded the same way as SPR.
func (ins Instruction) TBR() uint32 {
	return ins.SPR()
}

func swapSPR(v uint32) uint32 {
	return ((v << 5) & 0x3e0) | ((v >> 5) & 0x1f)
}
