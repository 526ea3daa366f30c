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

package interpreter

import (
	"math"

	"github.com/jetsetilly/espresso/hardware/bits"
	"github.com/jetsetilly/espresso/hardware/cpu/instructions"
)

func (t *Table) registerInteger() {
	t.register(instructions.Add, addGeneric(addCheckRecord))
	t.register(instructions.Addc, addGeneric(addCarry|addCheckRecord))
	t.register(instructions.Adde, addGeneric(addExtended|addCarry|addCheckRecord))
	t.register(instructions.Addi, addGeneric(addImmediate|addZeroRA))
	t.register(instructions.Addic, addGeneric(addImmediate|addCarry))
	t.register(instructions.AddicRc, addGeneric(addImmediate|addCarry|addAlwaysRecord))
	t.register(instructions.Addis, addGeneric(addImmediate|addShifted|addZeroRA))
	t.register(instructions.Addme, addGeneric(addToMinusOne|addExtended|addCarry|addCheckRecord))
	t.register(instructions.Addze, addGeneric(addToZero|addExtended|addCarry|addCheckRecord))
	t.register(instructions.Subf, addGeneric(addSubtract|addCheckRecord))
	t.register(instructions.Subfc, addGeneric(addSubtract|addCarry|addCheckRecord))
	t.register(instructions.Subfe, addGeneric(addSubtract|addExtended|addCarry|addCheckRecord))
	t.register(instructions.Subfic, addGeneric(addSubtract|addImmediate|addCarry))
	t.register(instructions.Subfme, addGeneric(addSubtract|addToMinusOne|addExtended|addCarry|addCheckRecord))
	t.register(instructions.Subfze, addGeneric(addSubtract|addToZero|addExtended|addCarry|addCheckRecord))

	t.register(instructions.Divw, divw)
	t.register(instructions.Divwu, divwu)
	t.register(instructions.Mulhw, mulhw)
	t.register(instructions.Mulhwu, mulhwu)
	t.register(instructions.Mulli, mulli)
	t.register(instructions.Mullw, mullw)
	t.register(instructions.Neg, neg)

	t.register(instructions.And, logical(func(s, b uint32) uint32 { return s & b }))
	t.register(instructions.Andc, logical(func(s, b uint32) uint32 { return s &^ b }))
	t.register(instructions.Eqv, logical(func(s, b uint32) uint32 { return ^(s ^ b) }))
	t.register(instructions.Nand, logical(func(s, b uint32) uint32 { return ^(s & b) }))
	t.register(instructions.Nor, logical(func(s, b uint32) uint32 { return ^(s | b) }))
	t.register(instructions.Or, logical(func(s, b uint32) uint32 { return s | b }))
	t.register(instructions.Orc, logical(func(s, b uint32) uint32 { return s | ^b }))
	t.register(instructions.Xor, logical(func(s, b uint32) uint32 { return s ^ b }))

	t.register(instructions.Andi, logicalImmediate(func(s, b uint32) uint32 { return s & b }, false, true))
	t.register(instructions.Andis, logicalImmediate(func(s, b uint32) uint32 { return s & b }, true, true))
	t.register(instructions.Ori, logicalImmediate(func(s, b uint32) uint32 { return s | b }, false, false))
	t.register(instructions.Oris, logicalImmediate(func(s, b uint32) uint32 { return s | b }, true, false))
	t.register(instructions.Xori, logicalImmediate(func(s, b uint32) uint32 { return s ^ b }, false, false))
	t.register(instructions.Xoris, logicalImmediate(func(s, b uint32) uint32 { return s ^ b }, true, false))

	t.register(instructions.Cntlzw, unary(bits.LeadingZeros32))
	t.register(instructions.Extsb, unary(func(s uint32) uint32 { return uint32(int32(int8(s))) }))
	t.register(instructions.Extsh, unary(func(s uint32) uint32 { return uint32(int32(int16(s))) }))

	t.register(instructions.Rlwimi, rlwimi)
	t.register(instructions.Rlwinm, rlwinm)
	t.register(instructions.Rlwnm, rlwnm)
	t.register(instructions.Slw, slw)
	t.register(instructions.Srw, srw)
	t.register(instructions.Sraw, sraw)
	t.register(instructions.Srawi, srawi)
}

type addFlags uint

const (
	// update XER[CA]
	addCarry addFlags = 1 << iota

	// add XER[CA] to the result
	addExtended

	// b is the signed immediate
	addImmediate

	// update XER[OV] if oe is set and CR0 if rc is set
	addCheckRecord

	// always update CR0 but never XER[OV]. addic.
	addAlwaysRecord

	// the immediate is shifted left by 16 bits
	addShifted

	// b is zero
	addToZero

	// b is -1
	addToMinusOne

	// a is zero if rA is r0
	addZeroRA

	// a is complemented and the carry in is one unless addExtended
	addSubtract
)

// addGeneric returns a handler for the add and subtract instructions.
func addGeneric(flags addFlags) Handler {
	return func(st *State, ins instructions.Instruction) {
		var a, b uint32

		if flags&addZeroRA == 0 || ins.RA() != 0 {
			a = st.GPR[ins.RA()]
		}

		if flags&addSubtract != 0 {
			a = ^a
		}

		switch {
		case flags&addImmediate != 0:
			b = uint32(ins.SIMM())
			if flags&addShifted != 0 {
				b <<= 16
			}
		case flags&addToZero != 0:
			b = 0
		case flags&addToMinusOne != 0:
			b = 0xffffffff
		default:
			b = st.GPR[ins.RB()]
		}

		var cin uint64
		if flags&addExtended != 0 {
			if st.XER.CA() {
				cin = 1
			}
		} else if flags&addSubtract != 0 {
			cin = 1
		}

		sum := uint64(a) + uint64(b) + cin
		d := uint32(sum)
		st.GPR[ins.RD()] = d

		if flags&addCarry != 0 {
			st.XER.SetCA(sum > math.MaxUint32)
		}

		if flags&addAlwaysRecord != 0 {
			st.updateCR0(d)
		} else if flags&addCheckRecord != 0 {
			if ins.OE() {
				st.XER.SetOverflow((a^d)&(b^d)&0x80000000 != 0)
			}
			if ins.RC() {
				st.updateCR0(d)
			}
		}
	}
}

// checkRecord updates XER[OV] and CR0 for instructions with the oe and rc
// flags.
func (st *State) checkRecord(ins instructions.Instruction, d uint32, overflow bool) {
	if ins.OE() {
		st.XER.SetOverflow(overflow)
	}
	if ins.RC() {
		st.updateCR0(d)
	}
}

func divw(st *State, ins instructions.Instruction) {
	a := int32(st.GPR[ins.RA()])
	b := int32(st.GPR[ins.RB()])

	var d int32
	overflow := b == 0 || (a == math.MinInt32 && b == -1)
	if overflow {
		if a < 0 {
			d = -1
		}
	} else {
		d = a / b
	}

	st.GPR[ins.RD()] = uint32(d)
	st.checkRecord(ins, uint32(d), overflow)
}

func divwu(st *State, ins instructions.Instruction) {
	a := st.GPR[ins.RA()]
	b := st.GPR[ins.RB()]

	var d uint32
	overflow := b == 0
	if !overflow {
		d = a / b
	}

	st.GPR[ins.RD()] = d
	st.checkRecord(ins, d, overflow)
}

func mulhw(st *State, ins instructions.Instruction) {
	a := int64(int32(st.GPR[ins.RA()]))
	b := int64(int32(st.GPR[ins.RB()]))
	d := uint32(uint64(a*b) >> 32)
	st.GPR[ins.RD()] = d
	if ins.RC() {
		st.updateCR0(d)
	}
}

func mulhwu(st *State, ins instructions.Instruction) {
	a := uint64(st.GPR[ins.RA()])
	b := uint64(st.GPR[ins.RB()])
	d := uint32((a * b) >> 32)
	st.GPR[ins.RD()] = d
	if ins.RC() {
		st.updateCR0(d)
	}
}

func mulli(st *State, ins instructions.Instruction) {
	a := int32(st.GPR[ins.RA()])
	st.GPR[ins.RD()] = uint32(a * ins.SIMM())
}

func mullw(st *State, ins instructions.Instruction) {
	a := int64(int32(st.GPR[ins.RA()]))
	b := int64(int32(st.GPR[ins.RB()]))
	p := a * b
	d := uint32(p)
	st.GPR[ins.RD()] = d
	st.checkRecord(ins, d, p < math.MinInt32 || p > math.MaxInt32)
}

func neg(st *State, ins instructions.Instruction) {
	a := st.GPR[ins.RA()]
	d := ^a + 1
	st.GPR[ins.RD()] = d
	st.checkRecord(ins, d, a == 0x80000000)
}

// logical returns a handler for the X-form logical instructions. the result
// is written to rA.
func logical(f func(s, b uint32) uint32) Handler {
	return func(st *State, ins instructions.Instruction) {
		d := f(st.GPR[ins.RS()], st.GPR[ins.RB()])
		st.GPR[ins.RA()] = d
		if ins.RC() {
			st.updateCR0(d)
		}
	}
}

// logicalImmediate returns a handler for the D-form logical instructions.
// andi. and andis. always update CR0.
func logicalImmediate(f func(s, b uint32) uint32, shifted bool, record bool) Handler {
	return func(st *State, ins instructions.Instruction) {
		b := ins.UIMM()
		if shifted {
			b <<= 16
		}
		d := f(st.GPR[ins.RS()], b)
		st.GPR[ins.RA()] = d
		if record {
			st.updateCR0(d)
		}
	}
}

func unary(f func(s uint32) uint32) Handler {
	return func(st *State, ins instructions.Instruction) {
		d := f(st.GPR[ins.RS()])
		st.GPR[ins.RA()] = d
		if ins.RC() {
			st.updateCR0(d)
		}
	}
}

func rlwimi(st *State, ins instructions.Instruction) {
	r := bits.RotateLeft32(st.GPR[ins.RS()], ins.SH())
	m := bits.Mask(ins.MB(), ins.ME())
	d := (r & m) | (st.GPR[ins.RA()] &^ m)
	st.GPR[ins.RA()] = d
	if ins.RC() {
		st.updateCR0(d)
	}
}

func rlwinm(st *State, ins instructions.Instruction) {
	r := bits.RotateLeft32(st.GPR[ins.RS()], ins.SH())
	d := r & bits.Mask(ins.MB(), ins.ME())
	st.GPR[ins.RA()] = d
	if ins.RC() {
		st.updateCR0(d)
	}
}

func rlwnm(st *State, ins instructions.Instruction) {
	r := bits.RotateLeft32(st.GPR[ins.RS()], st.GPR[ins.RB()]&0x1f)
	d := r & bits.Mask(ins.MB(), ins.ME())
	st.GPR[ins.RA()] = d
	if ins.RC() {
		st.updateCR0(d)
	}
}

// shift amounts for slw, srw and sraw are six bits. if bit 0x20 is set
// everything is shifted out
func slw(st *State, ins instructions.Instruction) {
	n := st.GPR[ins.RB()] & 0x3f
	var d uint32
	if n&0x20 == 0 {
		d = st.GPR[ins.RS()] << n
	}
	st.GPR[ins.RA()] = d
	if ins.RC() {
		st.updateCR0(d)
	}
}

func srw(st *State, ins instructions.Instruction) {
	n := st.GPR[ins.RB()] & 0x3f
	var d uint32
	if n&0x20 == 0 {
		d = st.GPR[ins.RS()] >> n
	}
	st.GPR[ins.RA()] = d
	if ins.RC() {
		st.updateCR0(d)
	}
}

// shiftArithmetic shifts s right by n bits, filling with the sign bit. the
// carry is set if s is negative and any one bits were shifted out.
func shiftArithmetic(s int32, n uint32) (int32, bool) {
	switch {
	case n&0x20 != 0:
		if s < 0 {
			return -1, true
		}
		return 0, false
	case n == 0:
		return s, false
	}
	return s >> n, s < 0 && uint32(s)<<(32-n) != 0
}

func sraw(st *State, ins instructions.Instruction) {
	d, ca := shiftArithmetic(int32(st.GPR[ins.RS()]), st.GPR[ins.RB()]&0x3f)
	st.GPR[ins.RA()] = uint32(d)
	st.XER.SetCA(ca)
	if ins.RC() {
		st.updateCR0(uint32(d))
	}
}

func srawi(st *State, ins instructions.Instruction) {
	d, ca := shiftArithmetic(int32(st.GPR[ins.RS()]), ins.SH())
	st.GPR[ins.RA()] = uint32(d)
	st.XER.SetCA(ca)
	if ins.RC() {
		st.updateCR0(uint32(d))
	}
}
