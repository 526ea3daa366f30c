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

	"github.com/jetsetilly/espresso/hardware/cpu/instructions"
	"github.com/jetsetilly/espresso/hardware/cpu/registers"
	"github.com/jetsetilly/espresso/hardware/fpu"
)

func (t *Table) registerCondition() {
	t.register(instructions.Cmp, cmp)
	t.register(instructions.Cmpi, cmpi)
	t.register(instructions.Cmpl, cmpl)
	t.register(instructions.Cmpli, cmpli)

	t.register(instructions.Fcmpo, fcmpGeneric(true, false))
	t.register(instructions.Fcmpu, fcmpGeneric(false, false))
	t.register(instructions.PsCmpo0, fcmpGeneric(true, false))
	t.register(instructions.PsCmpu0, fcmpGeneric(false, false))
	t.register(instructions.PsCmpo1, fcmpGeneric(true, true))
	t.register(instructions.PsCmpu1, fcmpGeneric(false, true))

	t.register(instructions.Crand, crGeneric(func(a, b bool) bool { return a && b }))
	t.register(instructions.Crandc, crGeneric(func(a, b bool) bool { return a && !b }))
	t.register(instructions.Creqv, crGeneric(func(a, b bool) bool { return a == b }))
	t.register(instructions.Crnand, crGeneric(func(a, b bool) bool { return !(a && b) }))
	t.register(instructions.Crnor, crGeneric(func(a, b bool) bool { return !(a || b) }))
	t.register(instructions.Cror, crGeneric(func(a, b bool) bool { return a || b }))
	t.register(instructions.Crorc, crGeneric(func(a, b bool) bool { return a || !b }))
	t.register(instructions.Crxor, crGeneric(func(a, b bool) bool { return a != b }))

	t.register(instructions.Mcrf, mcrf)
	t.register(instructions.Mcrfs, mcrfs)
	t.register(instructions.Mcrxr, mcrxr)
	t.register(instructions.Mfcr, mfcr)
	t.register(instructions.Mtcrf, mtcrf)
}

// compare returns the condition register field for the comparison of a and b.
func compare[T int32 | uint32](st *State, a, b T) uint32 {
	var c uint32
	switch {
	case a < b:
		c = registers.LT
	case a > b:
		c = registers.GT
	default:
		c = registers.EQ
	}
	if st.XER.SO() {
		c |= registers.SO
	}
	return c
}

func cmp(st *State, ins instructions.Instruction) {
	a := int32(st.GPR[ins.RA()])
	b := int32(st.GPR[ins.RB()])
	st.CR.SetField(ins.CRFD(), compare(st, a, b))
}

func cmpi(st *State, ins instructions.Instruction) {
	a := int32(st.GPR[ins.RA()])
	st.CR.SetField(ins.CRFD(), compare(st, a, ins.SIMM()))
}

func cmpl(st *State, ins instructions.Instruction) {
	a := st.GPR[ins.RA()]
	b := st.GPR[ins.RB()]
	st.CR.SetField(ins.CRFD(), compare(st, a, b))
}

func cmpli(st *State, ins instructions.Instruction) {
	a := st.GPR[ins.RA()]
	st.CR.SetField(ins.CRFD(), compare(st, a, ins.UIMM()))
}

// fcmpGeneric returns a handler for the floating point compare instructions.
// The paired single compares of slot zero are identical to fcmpo and fcmpu.
func fcmpGeneric(ordered bool, slot1 bool) Handler {
	return func(st *State, ins instructions.Instruction) {
		var a, b uint64
		if slot1 {
			a = st.FPR[ins.FRA()].PS1
			b = st.FPR[ins.FRB()].PS1
		} else {
			a = st.FPR[ins.FRA()].PS0
			b = st.FPR[ins.FRB()].PS0
		}

		old := st.FPSCR

		var c uint32
		if fpu.IsNaN64(a) || fpu.IsNaN64(b) {
			c = registers.FU
			vxsnan := fpu.IsSNaN64(a) || fpu.IsSNaN64(b)
			if vxsnan {
				st.FPSCR.Set(registers.VXSNAN)
			}
			if ordered && !(vxsnan && st.FPSCR.Has(registers.VE)) {
				st.FPSCR.Set(registers.VXVC)
			}
		} else {
			af := math.Float64frombits(a)
			bf := math.Float64frombits(b)
			switch {
			case af < bf:
				c = registers.FL
			case af > bf:
				c = registers.FG
			default:
				c = registers.FE
			}
		}

		st.CR.SetField(ins.CRFD(), c)
		st.FPSCR.SetFPCC(c)
		st.FPSCR.UpdateExceptions(old)
	}
}

func crGeneric(f func(a, b bool) bool) Handler {
	return func(st *State, ins instructions.Instruction) {
		d := f(st.CR.Bit(ins.CRBA()), st.CR.Bit(ins.CRBB()))
		st.CR.SetBit(ins.CRBD(), d)
	}
}

func mcrf(st *State, ins instructions.Instruction) {
	st.CR.SetField(ins.CRFD(), st.CR.Field(ins.CRFS()))
}

// mcrfs copies a field of the FPSCR to the condition register. any exception
// bits in the copied field are cleared.
func mcrfs(st *State, ins instructions.Instruction) {
	st.CR.SetField(ins.CRFD(), st.FPSCR.Field(ins.CRFS()))

	shift := 4 * (7 - ins.CRFS())
	st.FPSCR.Clear((registers.FX | registers.AllExceptions) & (0xf << shift))
	st.FPSCR.UpdateSummary()
}

func mcrxr(st *State, ins instructions.Instruction) {
	st.CR.SetField(ins.CRFD(), st.XER.CRXR())
	st.XER.SetCRXR(0)
}

func mfcr(st *State, ins instructions.Instruction) {
	st.GPR[ins.RD()] = uint32(st.CR)
}

// mtcrf copies the fields of rS selected by the CRM field into the condition
// register. bit 7 of CRM selects field 0.
func mtcrf(st *State, ins instructions.Instruction) {
	crm := ins.CRM()
	var mask uint32
	for i := range 8 {
		if crm&(1<<i) != 0 {
			mask |= 0xf << (i * 4)
		}
	}
	st.CR = registers.CR((st.GPR[ins.RS()] & mask) | (uint32(st.CR) &^ mask))
}
