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

package jit

import (
	"github.com/jetsetilly/espresso/hardware/bits"
	"github.com/jetsetilly/espresso/hardware/cpu/instructions"
	"github.com/jetsetilly/espresso/hardware/cpu/registers"
	"github.com/jetsetilly/espresso/hardware/memory"
)

// span is a contiguous range of guest addresses covered by a block. a block
// has more than one span when unconditional branches are merged.
type span struct {
	start uint32

	// one past the last byte. a span can end at the top of the address space
	end uint64
}

func (s span) overlaps(addr uint32, size uint32) bool {
	return uint64(s.start) < uint64(addr)+uint64(size) && uint64(addr) < s.end
}

// translation is the result of the front end.
type translation struct {
	length   int
	callOuts int
	spans    []span

	// address of the instruction following the block
	next uint32
}

// translate the guest instructions starting at the address into the
// emitter. the instruction at start must be in mapped memory.
func (cmp *Compiler) translate(mem *memory.Memory, start uint32, e emitter) translation {
	var tr translation

	addr := start
	sp := span{start: start, end: uint64(start)}

	for tr.length < cmp.blockSize {
		if tr.length > 0 && !mem.IsMapped(addr, 4) {
			break
		}

		ins := instructions.Instruction(mem.Read32(addr))
		e.begin(addr)
		tr.length++
		sp.end = uint64(addr) + 4

		next, done, callOut := cmp.translateInstruction(e, addr, ins)
		if callOut {
			tr.callOuts++
		}
		if done || e.closed() {
			addr += 4
			break
		}

		if next != addr+4 {
			tr.spans = append(tr.spans, sp)
			sp = span{start: next, end: uint64(next)}
		}
		addr = next
	}

	tr.spans = append(tr.spans, sp)
	tr.next = addr

	return tr
}

// translateInstruction emits the code for a single instruction. returns the
// address of the next instruction to translate and whether the block should
// end after this instruction. the callOut value is true if the instruction
// was emitted as a call-out.
func (cmp *Compiler) translateInstruction(e emitter, cia uint32, ins instructions.Instruction) (next uint32, done bool, callOut bool) {
	next = cia + 4

	defn := instructions.Decode(ins)
	if defn == nil {
		e.EmitCallOut(cmp.table.Lookup(instructions.Illegal), ins)
		return next, true, true
	}

	// instructions that change flags are never templated
	if (defn.HasFlag(instructions.RC) && ins.RC()) || (defn.HasFlag(instructions.OE) && ins.OE()) {
		return cmp.translateCallOut(e, defn, cia, ins)
	}

	switch defn.ID {
	case instructions.Addi, instructions.Addis:
		imm := uint32(ins.SIMM())
		if defn.ID == instructions.Addis {
			imm <<= 16
		}
		if ins.RA() == 0 {
			e.EmitMove(Reg(ins.RD()), Imm(imm))
		} else {
			e.EmitArith(ArithAdd, Reg(ins.RD()), Reg(ins.RA()), Imm(imm))
		}

	case instructions.Add:
		e.EmitArith(ArithAdd, Reg(ins.RD()), Reg(ins.RA()), Reg(ins.RB()))
	case instructions.Subf:
		e.EmitArith(ArithSub, Reg(ins.RD()), Reg(ins.RB()), Reg(ins.RA()))
	case instructions.Mullw:
		e.EmitArith(ArithMul, Reg(ins.RD()), Reg(ins.RA()), Reg(ins.RB()))
	case instructions.Mulli:
		e.EmitArith(ArithMul, Reg(ins.RD()), Reg(ins.RA()), Imm(uint32(ins.SIMM())))

	case instructions.Or:
		if ins.RS() == ins.RB() {
			e.EmitMove(Reg(ins.RA()), Reg(ins.RS()))
		} else {
			e.EmitArith(ArithOr, Reg(ins.RA()), Reg(ins.RS()), Reg(ins.RB()))
		}
	case instructions.And:
		e.EmitArith(ArithAnd, Reg(ins.RA()), Reg(ins.RS()), Reg(ins.RB()))
	case instructions.Andc:
		e.EmitArith(ArithAndc, Reg(ins.RA()), Reg(ins.RS()), Reg(ins.RB()))
	case instructions.Orc:
		e.EmitArith(ArithOrc, Reg(ins.RA()), Reg(ins.RS()), Reg(ins.RB()))
	case instructions.Xor:
		e.EmitArith(ArithXor, Reg(ins.RA()), Reg(ins.RS()), Reg(ins.RB()))
	case instructions.Nand:
		e.EmitArith(ArithNand, Reg(ins.RA()), Reg(ins.RS()), Reg(ins.RB()))
	case instructions.Nor:
		e.EmitArith(ArithNor, Reg(ins.RA()), Reg(ins.RS()), Reg(ins.RB()))
	case instructions.Eqv:
		e.EmitArith(ArithEqv, Reg(ins.RA()), Reg(ins.RS()), Reg(ins.RB()))

	case instructions.Ori:
		e.EmitArith(ArithOr, Reg(ins.RA()), Reg(ins.RS()), Imm(ins.UIMM()))
	case instructions.Oris:
		e.EmitArith(ArithOr, Reg(ins.RA()), Reg(ins.RS()), Imm(ins.UIMM()<<16))
	case instructions.Xori:
		e.EmitArith(ArithXor, Reg(ins.RA()), Reg(ins.RS()), Imm(ins.UIMM()))
	case instructions.Xoris:
		e.EmitArith(ArithXor, Reg(ins.RA()), Reg(ins.RS()), Imm(ins.UIMM()<<16))

	case instructions.Rlwinm:
		mask := bits.Mask(ins.MB(), ins.ME())
		switch {
		case ins.SH() == 0:
			e.EmitArith(ArithAnd, Reg(ins.RA()), Reg(ins.RS()), Imm(mask))
		case mask == 0xffffffff:
			e.EmitArith(ArithRotl, Reg(ins.RA()), Reg(ins.RS()), Imm(ins.SH()))
		default:
			e.EmitArith(ArithRotl, Reg(ins.RA()), Reg(ins.RS()), Imm(ins.SH()))
			e.EmitArith(ArithAnd, Reg(ins.RA()), Reg(ins.RA()), Imm(mask))
		}

	case instructions.Mfspr:
		switch ins.SPR() {
		case registers.SprLR:
			e.EmitMove(Reg(ins.RD()), LR)
		case registers.SprCTR:
			e.EmitMove(Reg(ins.RD()), CTR)
		default:
			return cmp.translateCallOut(e, defn, cia, ins)
		}
	case instructions.Mtspr:
		switch ins.SPR() {
		case registers.SprLR:
			e.EmitMove(LR, Reg(ins.RS()))
		case registers.SprCTR:
			e.EmitMove(CTR, Reg(ins.RS()))
		default:
			return cmp.translateCallOut(e, defn, cia, ins)
		}

	case instructions.B:
		target := uint32(ins.LI())
		if !ins.AA() {
			target += cia
		}
		if !ins.LK() && cmp.opt&OptMerge == OptMerge {
			return target, false, false
		}
		e.EmitBranch(Imm(target), ins.LK())
		return next, true, false

	case instructions.Bclr, instructions.Bcctr:
		if ins.BO() != branchAlways {
			return cmp.translateCallOut(e, defn, cia, ins)
		}
		if defn.ID == instructions.Bclr {
			e.EmitBranch(LR, ins.LK())
		} else {
			e.EmitBranch(CTR, ins.LK())
		}
		return next, true, false

	default:
		return cmp.translateCallOut(e, defn, cia, ins)
	}

	return next, false, false
}

// the BO value for an unconditional branch that does not decrement CTR
const branchAlways = 20

func (cmp *Compiler) translateCallOut(e emitter, defn *instructions.Definition, cia uint32, ins instructions.Instruction) (uint32, bool, bool) {
	e.EmitCallOut(cmp.table.Lookup(defn.ID), ins)
	switch defn.Category {
	case instructions.Branch, instructions.System, instructions.Trap:
		return cia + 4, true, true
	}
	return cia + 4, false, true
}
