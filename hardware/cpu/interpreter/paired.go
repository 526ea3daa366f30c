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

func (t *Table) registerPaired() {
	t.register(instructions.PsAdd, psArith(opAdd, 0, 1))
	t.register(instructions.PsSub, psArith(opSub, 0, 1))
	t.register(instructions.PsMul, psArith(opMul, 0, 1))
	t.register(instructions.PsMuls0, psArith(opMul, 0, 0))
	t.register(instructions.PsMuls1, psArith(opMul, 1, 1))
	t.register(instructions.PsDiv, psArith(opDiv, 0, 1))

	t.register(instructions.PsSum0, psSum(0))
	t.register(instructions.PsSum1, psSum(1))

	t.register(instructions.PsMadd, psFma(0, 0, 1))
	t.register(instructions.PsMadds0, psFma(0, 0, 0))
	t.register(instructions.PsMadds1, psFma(0, 1, 1))
	t.register(instructions.PsMsub, psFma(fmaSubtract, 0, 1))
	t.register(instructions.PsNmadd, psFma(fmaNegate, 0, 1))
	t.register(instructions.PsNmsub, psFma(fmaNegate|fmaSubtract, 0, 1))

	t.register(instructions.PsMr, psMove(func(b uint32) uint32 { return b }))
	t.register(instructions.PsNeg, psMove(func(b uint32) uint32 { return b ^ fpu.Sign32 }))
	t.register(instructions.PsAbs, psMove(func(b uint32) uint32 { return b &^ fpu.Sign32 }))
	t.register(instructions.PsNabs, psMove(func(b uint32) uint32 { return b | fpu.Sign32 }))

	t.register(instructions.PsMerge00, psMerge(0, 0))
	t.register(instructions.PsMerge01, psMerge(0, 1))
	t.register(instructions.PsMerge10, psMerge(1, 0))
	t.register(instructions.PsMerge11, psMerge(1, 1))

	t.register(instructions.PsRes, psRes)
	t.register(instructions.PsRsqrte, psRsqrte)
	t.register(instructions.PsSel, psSel)
}

// slot returns ps0 or ps1 of a register.
func (st *State) slot(r uint32, n int) uint64 {
	if n == 0 {
		return st.FPR[r].PS0
	}
	return st.FPR[r].PS1
}

// psArithSlot performs one half of a paired single arithmetic instruction.
// Returns false if an enabled exception prevents the result from being
// written.
func (st *State) psArithSlot(op arithOp, a, b uint64, roundOperand bool) (uint64, fpu.Flags, bool) {
	chk := checkArith(op, a, b)
	chk.apply(&st.FPSCR)
	if chk.zx {
		st.FPSCR.Set(registers.ZX)
	}

	if (chk.vx() && st.FPSCR.Has(registers.VE)) || (chk.zx && st.FPSCR.Has(registers.ZE)) {
		return 0, 0, false
	}

	switch {
	case fpu.IsNaN64(a):
		return quietSingle(a), 0, true
	case fpu.IsNaN64(b):
		return quietSingle(b), 0, true
	case chk.invalid():
		return fpu.DefaultNaN64, 0, true
	}

	if roundOperand {
		a, b = fpu.RoundMultiplyOperand(a, b)
	}
	d, f := arith(op, a, b, true, st.FPSCR.RN())
	return d, f, true
}

// psArith returns a handler for the two slot arithmetic instructions. slotB0
// and slotB1 select which slot of the second operand is used for each half
// of the result. the second operand of a multiply is frC.
func psArith(op arithOp, slotB0 int, slotB1 int) Handler {
	return func(st *State, ins instructions.Instruction) {
		rb := ins.FRB()
		if op == opMul {
			rb = ins.FRC()
		}

		old := st.FPSCR

		// only the slot 0 operand of a multiply is rounded to 24 bits. the
		// slot 1 multiplier is already single precision
		d0, f0, ok0 := st.psArithSlot(op, st.FPR[ins.FRA()].PS0, st.slot(rb, slotB0), op == opMul && slotB0 == 0)
		d1, f1, ok1 := st.psArithSlot(op, st.FPR[ins.FRA()].PS1, st.slot(rb, slotB1), false)

		if ok0 && ok1 {
			st.FPR[ins.FRD()].PS0 = d0
			st.FPR[ins.FRD()].PS1 = d1
		}
		if ok0 {
			st.FPSCR.SetFPRF(fprf(d0, true))
		}
		st.updateFPSCR(old, f0|f1)

		if ins.RC() {
			st.updateCR1()
		}
	}
}

// psSum adds ps0 of frA to ps1 of frB. the result goes in the slot given by
// the argument and the other slot comes from frC.
func psSum(slot int) Handler {
	return func(st *State, ins instructions.Instruction) {
		old := st.FPSCR

		d, f, ok := st.psArithSlot(opAdd, st.FPR[ins.FRA()].PS0, st.FPR[ins.FRB()].PS1, false)
		if ok {
			st.FPSCR.SetFPRF(fprf(d, true))
			c := st.FPR[ins.FRC()]
			if slot == 0 {
				st.FPR[ins.FRD()].PS0 = d
				st.FPR[ins.FRD()].PS1 = c.PS1
			} else {
				st.FPR[ins.FRD()].PS0 = fpu.ExtendSingle(singleBits(c.PS0, st.FPSCR.RN()))
				st.FPR[ins.FRD()].PS1 = d
			}
		}
		st.updateFPSCR(old, f)

		if ins.RC() {
			st.updateCR1()
		}
	}
}

// psFmaSlot performs one half of a paired single multiply-add.
func (st *State) psFmaSlot(a, b, c uint64, flags fmaFlags, roundOperand bool) (uint64, fpu.Flags, bool) {
	chk := fmaChecks(a, b, c, flags&fmaSubtract != 0)
	chk.apply(&st.FPSCR)
	if chk.vx() && st.FPSCR.Has(registers.VE) {
		return 0, 0, false
	}

	flags |= fmaSingle
	if !roundOperand {
		flags |= fmaExactOperand
	}
	d, f := fmaResult(a, b, c, chk, flags, st.FPSCR.RN())
	return d, f, true
}

func psFma(flags fmaFlags, slotC0 int, slotC1 int) Handler {
	return func(st *State, ins instructions.Instruction) {
		a := st.FPR[ins.FRA()]
		b := st.FPR[ins.FRB()]

		old := st.FPSCR

		d0, f0, ok0 := st.psFmaSlot(a.PS0, b.PS0, st.slot(ins.FRC(), slotC0), flags, slotC0 == 0)
		d1, f1, ok1 := st.psFmaSlot(a.PS1, b.PS1, st.slot(ins.FRC(), slotC1), flags, slotC1 == 0)

		if ok0 && ok1 {
			st.FPR[ins.FRD()].PS0 = d0
			st.FPR[ins.FRD()].PS1 = d1
		}
		if ok0 {
			st.FPSCR.SetFPRF(fprf(d0, true))
		}
		st.updateFPSCR(old, f0|f1)

		if ins.RC() {
			st.updateCR1()
		}
	}
}

// psMove returns a handler for the paired single move instructions. the
// values are converted to single precision before the sign bit is changed.
// signalling NaNs are preserved.
func psMove(f func(b uint32) uint32) Handler {
	return func(st *State, ins instructions.Instruction) {
		b := st.FPR[ins.FRB()]
		d0 := f(singleBits(b.PS0, st.FPSCR.RN()))
		d1 := f(fpu.TruncateDouble(b.PS1))
		st.FPR[ins.FRD()].PS0 = fpu.ExtendSingle(d0)
		st.FPR[ins.FRD()].PS1 = fpu.ExtendSingle(d1)
		if ins.RC() {
			st.updateCR1()
		}
	}
}

// psMerge returns a handler for the merge instructions. the slot of frA is
// moved to ps0 and the slot of frB to ps1.
func psMerge(slotA int, slotB int) Handler {
	return func(st *State, ins instructions.Instruction) {
		d0 := singleBits(st.slot(ins.FRA(), slotA), st.FPSCR.RN())

		// values too large for a single are clamped rather than truncated
		b := st.slot(ins.FRB(), slotB)
		var d1 uint32
		if exp := fpu.Exponent64Bits(b); exp >= 1151 && exp < 2047 {
			d1 = 0x7F7FFFFF
		} else {
			d1 = fpu.TruncateDouble(b)
		}

		st.FPR[ins.FRD()].PS0 = fpu.ExtendSingle(d0)
		st.FPR[ins.FRD()].PS1 = fpu.ExtendSingle(d1)
		if ins.RC() {
			st.updateCR1()
		}
	}
}

func psRes(st *State, ins instructions.Instruction) {
	b := st.FPR[ins.FRB()]

	old := st.FPSCR
	write := true
	var d [2]uint64
	var flags fpu.Flags

	for i, v := range []uint64{b.PS0, b.PS1} {
		vxsnan := fpu.IsSNaN64(v)
		zx := fpu.IsZero64(v)
		if vxsnan {
			st.FPSCR.Set(registers.VXSNAN)
		}
		if zx {
			st.FPSCR.Set(registers.ZX)
		}
		if (vxsnan && st.FPSCR.Has(registers.VE)) || (zx && st.FPSCR.Has(registers.ZE)) {
			write = false
			continue
		}

		r, ef := fpu.EstimateReciprocal(fpu.TruncateDouble(v))
		d[i] = fpu.ExtendSingle(r)
		flags |= estimateFlags(ef)
		if i == 0 {
			st.FPSCR.SetFPRF(fprf(d[0], true))
		}
	}

	if write {
		st.FPR[ins.FRD()].PS0 = d[0]
		st.FPR[ins.FRD()].PS1 = d[1]
	}
	st.updateFPSCR(old, flags)

	if ins.RC() {
		st.updateCR1()
	}
}

// the reciprocal square root estimate of a paired single has the precision of
// a single
const rsqrteMantissa = uint64(0xFFFFFE0000000)

func psRsqrte(st *State, ins instructions.Instruction) {
	b := st.FPR[ins.FRB()]

	old := st.FPSCR
	write := true
	var d [2]uint64

	for i, v := range []uint64{b.PS0, b.PS1} {
		vxsnan := fpu.IsSNaN64(v)
		vxsqrt := !vxsnan && !fpu.IsNaN64(v) && fpu.IsNegative64(v) && !fpu.IsZero64(v)
		zx := fpu.IsZero64(v)
		if vxsnan {
			st.FPSCR.Set(registers.VXSNAN)
		}
		if vxsqrt {
			st.FPSCR.Set(registers.VXSQRT)
		}
		if zx {
			st.FPSCR.Set(registers.ZX)
		}
		if ((vxsnan || vxsqrt) && st.FPSCR.Has(registers.VE)) || (zx && st.FPSCR.Has(registers.ZE)) {
			write = false
			continue
		}

		d[i], _ = fpu.EstimateReciprocalRoot(v)
		if i == 0 {
			st.FPSCR.SetFPRF(fprf(d[0], false))
		}
	}

	if write {
		st.FPR[ins.FRD()].PS0 = d[0] &^ (fpu.Mantissa64 &^ rsqrteMantissa)

		// the exponent of ps1 wraps at eight bits
		d1 := d[1]
		exp := fpu.Exponent64Bits(d1)
		switch {
		case exp == 0:
		case exp < 1151:
			exp = uint64(1023 + int64(int8(exp-1023)))
		case exp < 2047:
			exp = 1022
		}
		d1 = d1&^fpu.Exponent64 | exp<<52
		st.FPR[ins.FRD()].PS1 = d1 &^ (fpu.Mantissa64 &^ rsqrteMantissa)
	}
	st.updateFPSCR(old, 0)

	if ins.RC() {
		st.updateCR1()
	}
}

// psSel selects per slot in the same way as fsel.
func psSel(st *State, ins instructions.Instruction) {
	a := st.FPR[ins.FRA()]
	b := st.FPR[ins.FRB()]
	c := st.FPR[ins.FRC()]

	d := b
	if math.Float64frombits(a.PS0) >= 0 {
		d.PS0 = c.PS0
	}
	if math.Float64frombits(a.PS1) >= 0 {
		d.PS1 = c.PS1
	}
	st.FPR[ins.FRD()] = d

	if ins.RC() {
		st.updateCR1()
	}
}
