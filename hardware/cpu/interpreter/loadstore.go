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
	"github.com/jetsetilly/espresso/hardware/memory"
)

// the two addressing modes of the load and store instructions and whether the
// effective address is written back to rA.
type addrFlags uint

const (
	addrIndexed addrFlags = 1 << iota
	addrUpdate
)

func (t *Table) registerLoadStore() {
	lbz := func(mem *memory.Memory, ea uint32) uint32 { return uint32(mem.Read8(ea)) }
	lha := func(mem *memory.Memory, ea uint32) uint32 { return uint32(int32(int16(mem.Read16(ea)))) }
	lhz := func(mem *memory.Memory, ea uint32) uint32 { return uint32(mem.Read16(ea)) }
	lwz := func(mem *memory.Memory, ea uint32) uint32 { return mem.Read32(ea) }

	t.register(instructions.Lbz, loadGeneric(lbz, 0))
	t.register(instructions.Lbzu, loadGeneric(lbz, addrUpdate))
	t.register(instructions.Lbzx, loadGeneric(lbz, addrIndexed))
	t.register(instructions.Lbzux, loadGeneric(lbz, addrIndexed|addrUpdate))
	t.register(instructions.Lha, loadGeneric(lha, 0))
	t.register(instructions.Lhau, loadGeneric(lha, addrUpdate))
	t.register(instructions.Lhax, loadGeneric(lha, addrIndexed))
	t.register(instructions.Lhaux, loadGeneric(lha, addrIndexed|addrUpdate))
	t.register(instructions.Lhz, loadGeneric(lhz, 0))
	t.register(instructions.Lhzu, loadGeneric(lhz, addrUpdate))
	t.register(instructions.Lhzx, loadGeneric(lhz, addrIndexed))
	t.register(instructions.Lhzux, loadGeneric(lhz, addrIndexed|addrUpdate))
	t.register(instructions.Lwz, loadGeneric(lwz, 0))
	t.register(instructions.Lwzu, loadGeneric(lwz, addrUpdate))
	t.register(instructions.Lwzx, loadGeneric(lwz, addrIndexed))
	t.register(instructions.Lwzux, loadGeneric(lwz, addrIndexed|addrUpdate))

	t.register(instructions.Lhbrx, loadGeneric(func(mem *memory.Memory, ea uint32) uint32 {
		return uint32(mem.Read16Reversed(ea))
	}, addrIndexed))
	t.register(instructions.Lwbrx, loadGeneric(func(mem *memory.Memory, ea uint32) uint32 {
		return mem.Read32Reversed(ea)
	}, addrIndexed))

	stb := func(mem *memory.Memory, ea uint32, v uint32) { mem.Write8(ea, uint8(v)) }
	sth := func(mem *memory.Memory, ea uint32, v uint32) { mem.Write16(ea, uint16(v)) }
	stw := func(mem *memory.Memory, ea uint32, v uint32) { mem.Write32(ea, v) }

	t.register(instructions.Stb, storeGeneric(stb, 0))
	t.register(instructions.Stbu, storeGeneric(stb, addrUpdate))
	t.register(instructions.Stbx, storeGeneric(stb, addrIndexed))
	t.register(instructions.Stbux, storeGeneric(stb, addrIndexed|addrUpdate))
	t.register(instructions.Sth, storeGeneric(sth, 0))
	t.register(instructions.Sthu, storeGeneric(sth, addrUpdate))
	t.register(instructions.Sthx, storeGeneric(sth, addrIndexed))
	t.register(instructions.Sthux, storeGeneric(sth, addrIndexed|addrUpdate))
	t.register(instructions.Stw, storeGeneric(stw, 0))
	t.register(instructions.Stwu, storeGeneric(stw, addrUpdate))
	t.register(instructions.Stwx, storeGeneric(stw, addrIndexed))
	t.register(instructions.Stwux, storeGeneric(stw, addrIndexed|addrUpdate))

	t.register(instructions.Sthbrx, storeGeneric(func(mem *memory.Memory, ea uint32, v uint32) {
		mem.Write16Reversed(ea, uint16(v))
	}, addrIndexed))
	t.register(instructions.Stwbrx, storeGeneric(func(mem *memory.Memory, ea uint32, v uint32) {
		mem.Write32Reversed(ea, v)
	}, addrIndexed))

	t.register(instructions.Lmw, lmw)
	t.register(instructions.Stmw, stmw)
	t.register(instructions.Lswi, lswi)
	t.register(instructions.Lswx, lswx)
	t.register(instructions.Stswi, stswi)
	t.register(instructions.Stswx, stswx)

	t.register(instructions.Lwarx, lwarx)
	t.register(instructions.Stwcx, stwcx)

	lfd := func(st *State, ea uint32, r uint32) { st.FPR[r].PS0 = st.Mem.Read64(ea) }
	lfs := func(st *State, ea uint32, r uint32) {
		v := fpu.ExtendSingle(st.Mem.Read32(ea))
		st.FPR[r].PS0 = v
		st.FPR[r].PS1 = v
	}

	t.register(instructions.Lfd, fpLoadStore(lfd, 0))
	t.register(instructions.Lfdu, fpLoadStore(lfd, addrUpdate))
	t.register(instructions.Lfdx, fpLoadStore(lfd, addrIndexed))
	t.register(instructions.Lfdux, fpLoadStore(lfd, addrIndexed|addrUpdate))
	t.register(instructions.Lfs, fpLoadStore(lfs, 0))
	t.register(instructions.Lfsu, fpLoadStore(lfs, addrUpdate))
	t.register(instructions.Lfsx, fpLoadStore(lfs, addrIndexed))
	t.register(instructions.Lfsux, fpLoadStore(lfs, addrIndexed|addrUpdate))

	stfd := func(st *State, ea uint32, r uint32) { st.Mem.Write64(ea, st.FPR[r].PS0) }
	stfs := func(st *State, ea uint32, r uint32) { st.Mem.Write32(ea, fpu.TruncateDouble(st.FPR[r].PS0)) }

	t.register(instructions.Stfd, fpLoadStore(stfd, 0))
	t.register(instructions.Stfdu, fpLoadStore(stfd, addrUpdate))
	t.register(instructions.Stfdx, fpLoadStore(stfd, addrIndexed))
	t.register(instructions.Stfdux, fpLoadStore(stfd, addrIndexed|addrUpdate))
	t.register(instructions.Stfs, fpLoadStore(stfs, 0))
	t.register(instructions.Stfsu, fpLoadStore(stfs, addrUpdate))
	t.register(instructions.Stfsx, fpLoadStore(stfs, addrIndexed))
	t.register(instructions.Stfsux, fpLoadStore(stfs, addrIndexed|addrUpdate))
	t.register(instructions.Stfiwx, fpLoadStore(func(st *State, ea uint32, r uint32) {
		st.Mem.Write32(ea, uint32(st.FPR[r].PS0))
	}, addrIndexed))

	t.register(instructions.PsqL, psqLoad(0))
	t.register(instructions.PsqLu, psqLoad(addrUpdate))
	t.register(instructions.PsqLx, psqLoad(addrIndexed))
	t.register(instructions.PsqLux, psqLoad(addrIndexed|addrUpdate))
	t.register(instructions.PsqSt, psqStore(0))
	t.register(instructions.PsqStu, psqStore(addrUpdate))
	t.register(instructions.PsqStx, psqStore(addrIndexed))
	t.register(instructions.PsqStux, psqStore(addrIndexed|addrUpdate))

	// the cache is not emulated
	nop := func(*State, instructions.Instruction) {}
	t.register(instructions.Dcbf, nop)
	t.register(instructions.Dcbi, nop)
	t.register(instructions.Dcbst, nop)
	t.register(instructions.Dcbt, nop)
	t.register(instructions.Dcbtst, nop)
	t.register(instructions.Icbi, nop)
	t.register(instructions.Dcbz, dcbz)
	t.register(instructions.DcbzL, dcbz)
}

// base returns the value of rA, or zero if rA is r0 and the instruction is
// not an update form.
func (st *State) base(ins instructions.Instruction, flags addrFlags) uint32 {
	if flags&addrUpdate == 0 && ins.RA() == 0 {
		return 0
	}
	return st.GPR[ins.RA()]
}

// effectiveAddress of a load or store with the D or rB addressing mode.
func (st *State) effectiveAddress(ins instructions.Instruction, flags addrFlags) uint32 {
	if flags&addrIndexed != 0 {
		return st.base(ins, flags) + st.GPR[ins.RB()]
	}
	return st.base(ins, flags) + uint32(ins.D())
}

func loadGeneric(read func(mem *memory.Memory, ea uint32) uint32, flags addrFlags) Handler {
	return func(st *State, ins instructions.Instruction) {
		ea := st.effectiveAddress(ins, flags)
		st.GPR[ins.RD()] = read(st.Mem, ea)
		if flags&addrUpdate != 0 {
			st.GPR[ins.RA()] = ea
		}
	}
}

func storeGeneric(write func(mem *memory.Memory, ea uint32, v uint32), flags addrFlags) Handler {
	return func(st *State, ins instructions.Instruction) {
		ea := st.effectiveAddress(ins, flags)
		write(st.Mem, ea, st.GPR[ins.RS()])
		if flags&addrUpdate != 0 {
			st.GPR[ins.RA()] = ea
		}
	}
}

// fpLoadStore is used for floating point loads and stores. the register
// number is frD for loads and frS for stores, which occupy the same field.
func fpLoadStore(access func(st *State, ea uint32, r uint32), flags addrFlags) Handler {
	return func(st *State, ins instructions.Instruction) {
		ea := st.effectiveAddress(ins, flags)
		access(st, ea, ins.FRD())
		if flags&addrUpdate != 0 {
			st.GPR[ins.RA()] = ea
		}
	}
}

func lmw(st *State, ins instructions.Instruction) {
	ea := st.effectiveAddress(ins, 0)
	for r := ins.RD(); r < 32; r++ {
		st.GPR[r] = st.Mem.Read32(ea)
		ea += 4
	}
}

func stmw(st *State, ins instructions.Instruction) {
	ea := st.effectiveAddress(ins, 0)
	for r := ins.RS(); r < 32; r++ {
		st.Mem.Write32(ea, st.GPR[r])
		ea += 4
	}
}

// loadString packs n bytes from ea into successive registers starting at r.
// the register number wraps from r31 to r0.
func (st *State) loadString(ea uint32, n uint32, r uint32) {
	r--
	for i := range n {
		if i%4 == 0 {
			r = (r + 1) % 32
			st.GPR[r] = 0
		}
		st.GPR[r] |= uint32(st.Mem.Read8(ea+i)) << (24 - 8*(i%4))
	}
}

func (st *State) storeString(ea uint32, n uint32, r uint32) {
	r--
	for i := range n {
		if i%4 == 0 {
			r = (r + 1) % 32
		}
		st.Mem.Write8(ea+i, uint8(st.GPR[r]>>(24-8*(i%4))))
	}
}

// the byte count of lswi and stswi. a value of zero means 32 bytes.
func immediateByteCount(ins instructions.Instruction) uint32 {
	if ins.NB() == 0 {
		return 32
	}
	return ins.NB()
}

func lswi(st *State, ins instructions.Instruction) {
	st.loadString(st.base(ins, 0), immediateByteCount(ins), ins.RD())
}

func lswx(st *State, ins instructions.Instruction) {
	st.loadString(st.effectiveAddress(ins, addrIndexed), st.XER.ByteCount(), ins.RD())
}

func stswi(st *State, ins instructions.Instruction) {
	st.storeString(st.base(ins, 0), immediateByteCount(ins), ins.RS())
}

func stswx(st *State, ins instructions.Instruction) {
	st.storeString(st.effectiveAddress(ins, addrIndexed), st.XER.ByteCount(), ins.RS())
}

// lwarx loads a word and creates a reservation. the value loaded is
// remembered so that stwcx. can detect a change made by another core.
func lwarx(st *State, ins instructions.Instruction) {
	v := st.Mem.Read32(st.effectiveAddress(ins, addrIndexed))
	st.GPR[ins.RD()] = v
	st.Reserve = true
	st.ReserveData = v
}

// stwcx stores a word if the reservation is held and memory still contains
// the reserved value. EQ in CR0 is set if the store was performed.
func stwcx(st *State, ins instructions.Instruction) {
	var cr uint32
	if st.XER.SO() {
		cr = registers.SO
	}
	defer func() {
		st.CR.SetField(0, cr)
	}()

	if !st.Reserve {
		return
	}
	st.Reserve = false

	ea := st.effectiveAddress(ins, addrIndexed)
	if st.Mem.CompareAndSwap32(ea, st.ReserveData, st.GPR[ins.RS()]) {
		cr |= registers.EQ
	}
}

// quantScale returns the signed scale from the six bit field of a GQR.
func quantScale(s uint32) int {
	e := int(s & 0x3f)
	if e&0x20 != 0 {
		e -= 64
	}
	return e
}

// dequantize reads one element of a paired single load.
func dequantize(mem *memory.Memory, ea uint32, typ registers.QuantType, scale int) uint64 {
	var v float64
	switch typ {
	case registers.QuantU8:
		v = float64(mem.Read8(ea))
	case registers.QuantU16:
		v = float64(mem.Read16(ea))
	case registers.QuantS8:
		v = float64(int8(mem.Read8(ea)))
	case registers.QuantS16:
		v = float64(int16(mem.Read16(ea)))
	default:
		return fpu.ExtendSingle(mem.Read32(ea))
	}
	return math.Float64bits(math.Ldexp(v, -scale))
}

// quantize writes one element of a paired single store. integer types are
// saturated and NaNs become the extreme value of the same sign.
func quantize(mem *memory.Memory, ea uint32, d uint64, typ registers.QuantType, scale int) {
	var lo, hi float64
	switch typ {
	case registers.QuantU8:
		lo, hi = 0, math.MaxUint8
	case registers.QuantU16:
		lo, hi = 0, math.MaxUint16
	case registers.QuantS8:
		lo, hi = math.MinInt8, math.MaxInt8
	case registers.QuantS16:
		lo, hi = math.MinInt16, math.MaxInt16
	default:
		// values too small for a single are flushed to zero
		if fpu.Exponent64Bits(d) <= 896 {
			mem.Write32(ea, uint32(d>>32)&fpu.Sign32)
		} else {
			mem.Write32(ea, fpu.TruncateDouble(d))
		}
		return
	}

	var v float64
	if fpu.IsNaN64(d) {
		if fpu.IsNegative64(d) {
			v = lo
		} else {
			v = hi
		}
	} else {
		v = max(lo, min(hi, math.Ldexp(math.Float64frombits(d), scale)))
	}

	if typ.Size() == 1 {
		mem.Write8(ea, uint8(int32(v)))
	} else {
		mem.Write16(ea, uint16(int32(v)))
	}
}

// psqAddress returns the effective address of a paired single load or store.
// the displacement is twelve bits.
func (st *State) psqAddress(ins instructions.Instruction, flags addrFlags) uint32 {
	if flags&addrIndexed != 0 {
		return st.base(ins, flags) + st.GPR[ins.RB()]
	}
	return st.base(ins, flags) + uint32(ins.QD())
}

// psqFields returns the W and I fields, which are in different places for
// the indexed forms.
func psqFields(ins instructions.Instruction, flags addrFlags) (uint32, uint32) {
	if flags&addrIndexed != 0 {
		return ins.QW(), ins.QI()
	}
	return ins.W(), ins.I()
}

func psqLoad(flags addrFlags) Handler {
	return func(st *State, ins instructions.Instruction) {
		ea := st.psqAddress(ins, flags)
		w, i := psqFields(ins, flags)
		gqr := st.GQR[i]
		typ := gqr.LdType()
		scale := quantScale(gqr.LdScale())

		ps0 := dequantize(st.Mem, ea, typ, scale)
		ps1 := math.Float64bits(1.0)
		if w == 0 {
			ps1 = dequantize(st.Mem, ea+typ.Size(), typ, scale)
		}

		st.FPR[ins.FRD()].PS0 = ps0
		st.FPR[ins.FRD()].PS1 = ps1
		if flags&addrUpdate != 0 {
			st.GPR[ins.RA()] = ea
		}
	}
}

func psqStore(flags addrFlags) Handler {
	return func(st *State, ins instructions.Instruction) {
		ea := st.psqAddress(ins, flags)
		w, i := psqFields(ins, flags)
		gqr := st.GQR[i]
		typ := gqr.StType()
		scale := quantScale(gqr.StScale())

		r := st.FPR[ins.FRS()]
		quantize(st.Mem, ea, r.PS0, typ, scale)
		if w == 0 {
			quantize(st.Mem, ea+typ.Size(), r.PS1, typ, scale)
		}

		if flags&addrUpdate != 0 {
			st.GPR[ins.RA()] = ea
		}
	}
}

// dcbz zeroes the 32 byte cache block containing the effective address.
func dcbz(st *State, ins instructions.Instruction) {
	ea := st.effectiveAddress(ins, addrIndexed) &^ 31
	clear(st.Mem.Slice(ea, 32))
}
