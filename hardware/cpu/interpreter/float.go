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

func (t *Table) registerFloat() {
	t.register(instructions.Fadd, fpArith(opAdd, false))
	t.register(instructions.Fadds, fpArith(opAdd, true))
	t.register(instructions.Fsub, fpArith(opSub, false))
	t.register(instructions.Fsubs, fpArith(opSub, true))
	t.register(instructions.Fmul, fpArith(opMul, false))
	t.register(instructions.Fmuls, fpArith(opMul, true))
	t.register(instructions.Fdiv, fpArith(opDiv, false))
	t.register(instructions.Fdivs, fpArith(opDiv, true))

	t.register(instructions.Fmadd, fmaGeneric(0))
	t.register(instructions.Fmadds, fmaGeneric(fmaSingle))
	t.register(instructions.Fmsub, fmaGeneric(fmaSubtract))
	t.register(instructions.Fmsubs, fmaGeneric(fmaSubtract|fmaSingle))
	t.register(instructions.Fnmadd, fmaGeneric(fmaNegate))
	t.register(instructions.Fnmadds, fmaGeneric(fmaNegate|fmaSingle))
	t.register(instructions.Fnmsub, fmaGeneric(fmaNegate|fmaSubtract))
	t.register(instructions.Fnmsubs, fmaGeneric(fmaNegate|fmaSubtract|fmaSingle))

	t.register(instructions.Fres, fres)
	t.register(instructions.Frsqrte, frsqrte)
	t.register(instructions.Fsel, fsel)
	t.register(instructions.Fctiw, fctiwGeneric(false))
	t.register(instructions.Fctiwz, fctiwGeneric(true))
	t.register(instructions.Frsp, frsp)

	t.register(instructions.Fabs, fpMove(func(b uint64) uint64 { return b &^ fpu.Sign64 }))
	t.register(instructions.Fnabs, fpMove(func(b uint64) uint64 { return b | fpu.Sign64 }))
	t.register(instructions.Fneg, fpMove(func(b uint64) uint64 { return b ^ fpu.Sign64 }))
	t.register(instructions.Fmr, fpMove(func(b uint64) uint64 { return b }))

	t.register(instructions.Mffs, mffs)
	t.register(instructions.Mtfsb0, mtfsb0)
	t.register(instructions.Mtfsb1, mtfsb1)
	t.register(instructions.Mtfsf, mtfsf)
	t.register(instructions.Mtfsfi, mtfsfi)
}

type arithOp int

const (
	opAdd arithOp = iota
	opSub
	opMul
	opDiv
)

// invalid operation and zero divide conditions of an arithmetic operation.
// the conditions are found before the result is calculated
type fpChecks struct {
	vxsnan bool
	vxisi  bool
	vximz  bool
	vxidi  bool
	vxzdz  bool
	zx     bool
}

func checkArith(op arithOp, a, b uint64) fpChecks {
	c := fpChecks{
		vxsnan: fpu.IsSNaN64(a) || fpu.IsSNaN64(b),
	}

	bothInf := fpu.IsInf64(a) && fpu.IsInf64(b)
	sameSign := fpu.IsNegative64(a) == fpu.IsNegative64(b)

	switch op {
	case opAdd:
		c.vxisi = bothInf && !sameSign
	case opSub:
		c.vxisi = bothInf && sameSign
	case opMul:
		c.vximz = (fpu.IsInf64(a) && fpu.IsZero64(b)) || (fpu.IsZero64(a) && fpu.IsInf64(b))
	case opDiv:
		c.vxidi = bothInf
		c.vxzdz = fpu.IsZero64(a) && fpu.IsZero64(b)
		c.zx = !(c.vxzdz || c.vxsnan) && fpu.IsZero64(b)
	}

	return c
}

// invalid returns true if the operation has no numeric result.
func (c fpChecks) invalid() bool {
	return c.vxisi || c.vximz || c.vxidi || c.vxzdz
}

func (c fpChecks) vx() bool {
	return c.vxsnan || c.invalid()
}

// apply sets the invalid operation bits in the FPSCR. the zero divide bit is
// not set by apply().
func (c fpChecks) apply(fpscr *registers.FPSCR) {
	if c.vxsnan {
		fpscr.Set(registers.VXSNAN)
	}
	if c.vxisi {
		fpscr.Set(registers.VXISI)
	}
	if c.vximz {
		fpscr.Set(registers.VXIMZ)
	}
	if c.vxidi {
		fpscr.Set(registers.VXIDI)
	}
	if c.vxzdz {
		fpscr.Set(registers.VXZDZ)
	}
}

// toSingle rounds a double precision result to single precision. the flags
// of the double precision operation are combined with the flags of the
// second rounding.
func toSingle(d float64, flags fpu.Flags, mode fpu.RoundingMode) (float64, fpu.Flags) {
	r, f := fpu.RoundFloat(d, fpu.Single, mode)
	if f&fpu.Inexact != 0 {
		flags = flags&^fpu.Incremented | f
	}
	return r, flags
}

// arith performs the operation in double precision and then rounds to single
// precision if required.
func arith(op arithOp, a, b uint64, single bool, mode fpu.RoundingMode) (uint64, fpu.Flags) {
	af := math.Float64frombits(a)
	bf := math.Float64frombits(b)

	var d float64
	var flags fpu.Flags
	switch op {
	case opAdd:
		d, flags = fpu.Add(af, bf, mode)
	case opSub:
		d, flags = fpu.Sub(af, bf, mode)
	case opMul:
		d, flags = fpu.Mul(af, bf, mode)
	case opDiv:
		d, flags = fpu.Div(af, bf, mode)
	}

	if single {
		d, flags = toSingle(d, flags, mode)
	}

	return math.Float64bits(d), flags
}

// quietSingle returns the quiet version of a NaN with the payload reduced to
// the precision of a single.
func quietSingle(d uint64) uint64 {
	return fpu.ExtendSingleNaN(fpu.TruncateDoubleNaN(d) | fpu.Quiet32)
}

// fprf returns the floating point result flags for a value. whether a value
// is denormal depends on the precision of the result.
func fprf(d uint64, single bool) uint32 {
	switch {
	case fpu.IsNaN64(d):
		return registers.FPRFClass | registers.FPRFUnordered
	case fpu.IsZero64(d):
		if fpu.IsNegative64(d) {
			return registers.FPRFClass | registers.FPRFZero
		}
		return registers.FPRFZero
	}

	f := registers.FPRFPositive
	if fpu.IsNegative64(d) {
		f = registers.FPRFNegative
	}

	switch {
	case fpu.IsInf64(d):
		f |= registers.FPRFUnordered
	case single && fpu.Exponent64Bits(d) < 1023-126:
		f |= registers.FPRFClass
	case !single && fpu.IsDenormal64(d):
		f |= registers.FPRFClass
	}

	return f
}

// updateFPSCR records the outcome of an operation in the FPSCR. FI and FR
// describe the most recent operation only. the other exception bits are
// sticky.
func (st *State) updateFPSCR(old registers.FPSCR, flags fpu.Flags) {
	if flags&fpu.Underflow != 0 {
		st.FPSCR.Set(registers.UX)
	}
	if flags&fpu.Overflow != 0 {
		st.FPSCR.Set(registers.OX)
	}
	if flags&fpu.Inexact != 0 {
		st.FPSCR.Set(registers.XX)
	}
	st.FPSCR.Put(registers.FI, flags&fpu.Inexact != 0)
	st.FPSCR.Put(registers.FR, flags&fpu.Incremented != 0)
	st.FPSCR.UpdateExceptions(old)
}

// writeResult writes the result of an arithmetic instruction. single
// precision results are written to both slots of the register.
func (st *State) writeResult(r uint32, d uint64, single bool) {
	st.FPR[r].PS0 = d
	if single {
		st.FPR[r].PS1 = d
	}
	st.FPSCR.SetFPRF(fprf(d, single))
}

func fpArith(op arithOp, single bool) Handler {
	return func(st *State, ins instructions.Instruction) {
		a := st.FPR[ins.FRA()].PS0
		var b uint64
		if op == opMul {
			b = st.FPR[ins.FRC()].PS0
		} else {
			b = st.FPR[ins.FRB()].PS0
		}

		chk := checkArith(op, a, b)

		old := st.FPSCR
		chk.apply(&st.FPSCR)

		switch {
		case chk.vx() && st.FPSCR.Has(registers.VE):
			st.FPSCR.UpdateExceptions(old)
		case chk.zx && st.FPSCR.Has(registers.ZE):
			st.FPSCR.Set(registers.ZX)
			st.FPSCR.UpdateExceptions(old)
		default:
			var d uint64
			var flags fpu.Flags

			switch {
			case fpu.IsNaN64(a):
				d = fpu.Quiet64NaN(a)
			case fpu.IsNaN64(b):
				d = fpu.Quiet64NaN(b)
			case chk.invalid():
				d = fpu.DefaultNaN64
			default:
				if single && op == opMul {
					a, b = fpu.RoundMultiplyOperand(a, b)
				}
				d, flags = arith(op, a, b, single, st.FPSCR.RN())
			}

			if single && fpu.IsNaN64(d) {
				d = quietSingle(d)
			}
			if chk.zx {
				st.FPSCR.Set(registers.ZX)
			}

			st.writeResult(ins.FRD(), d, single)
			st.updateFPSCR(old, flags)
		}

		if ins.RC() {
			st.updateCR1()
		}
	}
}

type fmaFlags int

const (
	// subtract b instead of adding it
	fmaSubtract fmaFlags = 1 << iota

	// negate the result
	fmaNegate

	// round the result to single precision
	fmaSingle

	// do not round the multiplier of a single precision operation
	fmaExactOperand
)

// fmaChecks returns the invalid operation conditions of a*c+b.
func fmaChecks(a, b, c uint64, subtract bool) fpChecks {
	addendNeg := fpu.IsNegative64(b) != subtract
	chk := fpChecks{
		vxsnan: fpu.IsSNaN64(a) || fpu.IsSNaN64(b) || fpu.IsSNaN64(c),
		vximz:  (fpu.IsInf64(a) && fpu.IsZero64(c)) || (fpu.IsZero64(a) && fpu.IsInf64(c)),
	}
	chk.vxisi = !chk.vximz && !fpu.IsNaN64(a) && !fpu.IsNaN64(c) &&
		(fpu.IsInf64(a) || fpu.IsInf64(c)) && fpu.IsInf64(b) &&
		(fpu.IsNegative64(a) != fpu.IsNegative64(c)) != addendNeg
	return chk
}

// multiplyAdd calculates a*c+b, or a*c-b, with a single rounding. the value
// of a NaN result is decided by the caller.
func multiplyAdd(a, b, c uint64, flags fmaFlags, mode fpu.RoundingMode) (uint64, fpu.Flags) {
	format := fpu.Double
	if flags&fmaSingle != 0 {
		format = fpu.Single
		if flags&fmaExactOperand == 0 {
			a, c = fpu.RoundMultiplyOperand(a, c)
		}
	}

	addend := math.Float64frombits(b)
	if flags&fmaSubtract != 0 {
		addend = -addend
	}

	d, f := fpu.MulAdd(math.Float64frombits(a), math.Float64frombits(c), addend, format, mode)
	if flags&fmaNegate != 0 {
		d = -d
	}

	return math.Float64bits(d), f
}

// fmaResult returns the result of a*c+b including NaN propagation.
func fmaResult(a, b, c uint64, chk fpChecks, flags fmaFlags, mode fpu.RoundingMode) (uint64, fpu.Flags) {
	single := flags&fmaSingle != 0

	var d uint64
	switch {
	case fpu.IsNaN64(a):
		d = fpu.Quiet64NaN(a)
	case fpu.IsNaN64(b):
		d = fpu.Quiet64NaN(b)
	case fpu.IsNaN64(c):
		d = fpu.Quiet64NaN(c)
	case chk.invalid():
		d = fpu.DefaultNaN64
	default:
		return multiplyAdd(a, b, c, flags, mode)
	}

	if single {
		d = quietSingle(d)
	}
	return d, 0
}

func fmaGeneric(flags fmaFlags) Handler {
	return func(st *State, ins instructions.Instruction) {
		a := st.FPR[ins.FRA()].PS0
		b := st.FPR[ins.FRB()].PS0
		c := st.FPR[ins.FRC()].PS0

		chk := fmaChecks(a, b, c, flags&fmaSubtract != 0)

		old := st.FPSCR
		chk.apply(&st.FPSCR)

		if chk.vx() && st.FPSCR.Has(registers.VE) {
			st.FPSCR.UpdateExceptions(old)
		} else {
			d, f := fmaResult(a, b, c, chk, flags, st.FPSCR.RN())
			st.writeResult(ins.FRD(), d, flags&fmaSingle != 0)
			st.updateFPSCR(old, f)
		}

		if ins.RC() {
			st.updateCR1()
		}
	}
}

// singleBits converts the double in a register to single precision bits
// using the current rounding mode. NaNs keep their payload and stay
// signalling.
func singleBits(d uint64, mode fpu.RoundingMode) uint32 {
	if fpu.IsNaN64(d) {
		return fpu.TruncateDoubleNaN(d)
	}
	r, _ := fpu.RoundFloat(math.Float64frombits(d), fpu.Single, mode)
	return math.Float32bits(float32(r))
}

// estimateFlags converts the exceptions of the estimate instructions.
func estimateFlags(ef fpu.EstimateFlags) fpu.Flags {
	var f fpu.Flags
	if ef&fpu.EstimateInexact != 0 {
		f |= fpu.Inexact
	}
	if ef&fpu.EstimateOverflow != 0 {
		f |= fpu.Overflow
	}
	if ef&fpu.EstimateUnderflow != 0 {
		f |= fpu.Underflow
	}
	return f
}

func fres(st *State, ins instructions.Instruction) {
	b := st.FPR[ins.FRB()].PS0
	vxsnan := fpu.IsSNaN64(b)
	zx := fpu.IsZero64(b)

	old := st.FPSCR
	if vxsnan {
		st.FPSCR.Set(registers.VXSNAN)
	}

	switch {
	case vxsnan && st.FPSCR.Has(registers.VE):
		st.FPSCR.UpdateExceptions(old)
	case zx && st.FPSCR.Has(registers.ZE):
		st.FPSCR.Set(registers.ZX)
		st.FPSCR.UpdateExceptions(old)
	default:
		r, ef := fpu.EstimateReciprocal(singleBits(b, st.FPSCR.RN()))
		if zx {
			st.FPSCR.Set(registers.ZX)
		}
		st.writeResult(ins.FRD(), fpu.ExtendSingle(r), true)
		st.updateFPSCR(old, estimateFlags(ef))
	}

	if ins.RC() {
		st.updateCR1()
	}
}

func frsqrte(st *State, ins instructions.Instruction) {
	b := st.FPR[ins.FRB()].PS0
	vxsnan := fpu.IsSNaN64(b)
	vxsqrt := !vxsnan && !fpu.IsNaN64(b) && fpu.IsNegative64(b) && !fpu.IsZero64(b)
	zx := fpu.IsZero64(b)

	old := st.FPSCR
	if vxsnan {
		st.FPSCR.Set(registers.VXSNAN)
	}
	if vxsqrt {
		st.FPSCR.Set(registers.VXSQRT)
	}

	switch {
	case (vxsnan || vxsqrt) && st.FPSCR.Has(registers.VE):
		st.FPSCR.UpdateExceptions(old)
	case zx && st.FPSCR.Has(registers.ZE):
		st.FPSCR.Set(registers.ZX)
		st.FPSCR.UpdateExceptions(old)
	default:
		d, ef := fpu.EstimateReciprocalRoot(b)
		if zx {
			st.FPSCR.Set(registers.ZX)
		}
		st.writeResult(ins.FRD(), d, false)
		st.updateFPSCR(old, estimateFlags(ef))
	}

	if ins.RC() {
		st.updateCR1()
	}
}

// fsel selects frC if frA is greater than or equal to zero, and frB
// otherwise. a NaN in frA selects frB.
func fsel(st *State, ins instructions.Instruction) {
	a := st.FPR[ins.FRA()].Float64()
	if a >= 0 {
		st.FPR[ins.FRD()].PS0 = st.FPR[ins.FRC()].PS0
	} else {
		st.FPR[ins.FRD()].PS0 = st.FPR[ins.FRB()].PS0
	}
	if ins.RC() {
		st.updateCR1()
	}
}

func fctiwGeneric(toZero bool) Handler {
	return func(st *State, ins instructions.Instruction) {
		b := st.FPR[ins.FRB()].PS0
		bf := math.Float64frombits(b)

		mode := st.FPSCR.RN()
		if toZero {
			mode = fpu.RoundZero
		}

		var vxcvi bool
		var bi int32
		var flags fpu.Flags

		switch {
		case fpu.IsNaN64(b):
			vxcvi = true
			bi = math.MinInt32
		case bf > math.MaxInt32:
			vxcvi = true
			bi = math.MaxInt32
		case bf < math.MinInt32:
			vxcvi = true
			bi = math.MinInt32
		default:
			r := fpu.RoundInt(bf, mode)
			bi = int32(r)
			if r != bf {
				flags |= fpu.Inexact
				if math.Abs(r) > math.Abs(bf) {
					flags |= fpu.Incremented
				}
			}
		}

		old := st.FPSCR
		if fpu.IsSNaN64(b) {
			st.FPSCR.Set(registers.VXSNAN)
		}
		if vxcvi {
			st.FPSCR.Set(registers.VXCVI)
		}

		if (fpu.IsSNaN64(b) || vxcvi) && st.FPSCR.Has(registers.VE) {
			st.FPSCR.Clear(registers.FR | registers.FI)
			st.FPSCR.UpdateExceptions(old)
		} else {
			// the upper word is undefined by the architecture. this is the
			// value the hardware produces
			hi := uint64(0xfff80000)
			if b == fpu.Sign64 {
				hi |= 1
			}
			st.FPR[ins.FRD()].PS0 = hi<<32 | uint64(uint32(bi))
			st.updateFPSCR(old, flags)
		}

		if ins.RC() {
			st.updateCR1()
		}
	}
}

func frsp(st *State, ins instructions.Instruction) {
	b := st.FPR[ins.FRB()].PS0
	vxsnan := fpu.IsSNaN64(b)

	old := st.FPSCR
	if vxsnan {
		st.FPSCR.Set(registers.VXSNAN)
	}

	if vxsnan && st.FPSCR.Has(registers.VE) {
		st.FPSCR.UpdateExceptions(old)
	} else {
		var d uint64
		var flags fpu.Flags
		if fpu.IsNaN64(b) {
			d = quietSingle(b)
		} else {
			var r float64
			r, flags = fpu.RoundFloat(math.Float64frombits(b), fpu.Single, st.FPSCR.RN())
			d = math.Float64bits(r)
		}
		st.writeResult(ins.FRD(), d, true)
		st.updateFPSCR(old, flags)
	}

	if ins.RC() {
		st.updateCR1()
	}
}

// fpMove returns a handler for the instructions that copy frB to frD with a
// change to the sign bit. only ps0 is affected and the FPSCR is unchanged.
func fpMove(f func(b uint64) uint64) Handler {
	return func(st *State, ins instructions.Instruction) {
		st.FPR[ins.FRD()].PS0 = f(st.FPR[ins.FRB()].PS0)
		if ins.RC() {
			st.updateCR1()
		}
	}
}

func mffs(st *State, ins instructions.Instruction) {
	r := &st.FPR[ins.FRD()]
	r.PS0 = r.PS0&^0xffffffff | uint64(st.FPSCR)
	if ins.RC() {
		st.updateCR1()
	}
}

func mtfsb0(st *State, ins instructions.Instruction) {
	st.FPSCR.Clear(0x80000000 >> ins.CRBD())
	st.FPSCR.UpdateSummary()
	if ins.RC() {
		st.updateCR1()
	}
}

func mtfsb1(st *State, ins instructions.Instruction) {
	old := st.FPSCR
	st.FPSCR.Set(0x80000000 >> ins.CRBD())
	st.FPSCR.UpdateExceptions(old)
	if ins.RC() {
		st.updateCR1()
	}
}

// mtfsf copies the fields of frB selected by FM into the FPSCR. bit 0 of FM
// selects the least significant field.
func mtfsf(st *State, ins instructions.Instruction) {
	v := uint32(st.FPR[ins.FRB()].PS0)
	fm := ins.FM()
	var mask uint32
	for i := range 8 {
		if fm&(1<<i) != 0 {
			mask |= 0xf << (i * 4)
		}
	}
	st.FPSCR = registers.FPSCR(uint32(st.FPSCR)&^mask | v&mask)
	st.FPSCR.UpdateSummary()
	if ins.RC() {
		st.updateCR1()
	}
}

func mtfsfi(st *State, ins instructions.Instruction) {
	st.FPSCR.SetField(ins.CRFD(), ins.IMM())
	st.FPSCR.UpdateSummary()
	if ins.RC() {
		st.updateCR1()
	}
}
