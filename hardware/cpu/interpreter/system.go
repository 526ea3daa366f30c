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
	"github.com/jetsetilly/espresso/hardware/cpu/instructions"
	"github.com/jetsetilly/espresso/hardware/cpu/registers"
	"github.com/jetsetilly/espresso/hardware/memory"
)

func (t *Table) registerSystem() {
	t.register(instructions.Mfmsr, mfmsr)
	t.register(instructions.Mtmsr, mtmsr)
	t.register(instructions.Mfspr, mfspr)
	t.register(instructions.Mtspr, mtspr)
	t.register(instructions.Mftb, mftb)

	t.register(instructions.Mfsr, mfsr)
	t.register(instructions.Mfsrin, mfsrin)
	t.register(instructions.Mtsr, mtsr)
	t.register(instructions.Mtsrin, mtsrin)

	// memory is coherent and there is no address translation
	nop := func(*State, instructions.Instruction) {}
	t.register(instructions.Sync, nop)
	t.register(instructions.Isync, nop)
	t.register(instructions.Eieio, nop)
	t.register(instructions.Tlbie, nop)
	t.register(instructions.Tlbsync, nop)

	t.register(instructions.Eciwx, loadGeneric(func(mem *memory.Memory, ea uint32) uint32 {
		return mem.Read32(ea)
	}, addrIndexed))
	t.register(instructions.Ecowx, storeGeneric(func(mem *memory.Memory, ea uint32, v uint32) {
		mem.Write32(ea, v)
	}, addrIndexed))

	t.register(instructions.Rfi, rfi)
	t.register(instructions.Sc, func(st *State, _ instructions.Instruction) { st.Event = SystemCall })
	t.register(instructions.Kc, func(st *State, _ instructions.Instruction) { st.Event = KernelCall })
	t.register(instructions.Tw, tw)
	t.register(instructions.Twi, twi)
}

func mfmsr(st *State, ins instructions.Instruction) {
	st.GPR[ins.RD()] = uint32(st.MSR)
}

func mtmsr(st *State, ins instructions.Instruction) {
	st.MSR = registers.MSR(st.GPR[ins.RS()])
}

// timeBaseRegister returns the upper or lower half of the time base.
func (st *State) timeBaseRegister(n uint32) (uint32, bool) {
	switch n {
	case registers.SprTBL:
		return uint32(st.timebase()), true
	case registers.SprTBU:
		return uint32(st.timebase() >> 32), true
	}
	return 0, false
}

func mfspr(st *State, ins instructions.Instruction) {
	n := ins.SPR()
	if v, ok := st.timeBaseRegister(n); ok {
		st.GPR[ins.RD()] = v
		return
	}
	v, ok := st.SPR(n)
	if !ok {
		st.Event = IllegalInstruction
		return
	}
	st.GPR[ins.RD()] = v
}

func mtspr(st *State, ins instructions.Instruction) {
	n := ins.SPR()

	// the time base is derived from the host clock and cannot be written
	if n == registers.SprTBLW || n == registers.SprTBUW {
		return
	}

	if !st.SetSPR(n, st.GPR[ins.RS()]) {
		st.Event = IllegalInstruction
	}
}

func mftb(st *State, ins instructions.Instruction) {
	v, ok := st.timeBaseRegister(ins.TBR())
	if !ok {
		st.Event = IllegalInstruction
		return
	}
	st.GPR[ins.RD()] = v
}

func mfsr(st *State, ins instructions.Instruction) {
	st.GPR[ins.RD()] = st.SR[ins.SR()]
}

func mfsrin(st *State, ins instructions.Instruction) {
	st.GPR[ins.RD()] = st.SR[st.GPR[ins.RB()]>>28]
}

func mtsr(st *State, ins instructions.Instruction) {
	st.SR[ins.SR()] = st.GPR[ins.RS()]
}

func mtsrin(st *State, ins instructions.Instruction) {
	st.SR[st.GPR[ins.RB()]>>28] = st.GPR[ins.RS()]
}

func rfi(st *State, _ instructions.Instruction) {
	st.MSR = registers.MSR(st.SRR1)
	st.NIA = st.SRR0 &^ 3
}

// trap returns true if any of the conditions selected by the TO field hold.
func trap(to uint32, a, b uint32) bool {
	return (to&0x10 != 0 && int32(a) < int32(b)) ||
		(to&0x08 != 0 && int32(a) > int32(b)) ||
		(to&0x04 != 0 && a == b) ||
		(to&0x02 != 0 && a < b) ||
		(to&0x01 != 0 && a > b)
}

func tw(st *State, ins instructions.Instruction) {
	if trap(ins.TO(), st.GPR[ins.RA()], st.GPR[ins.RB()]) {
		st.Event = ProgramTrap
	}
}

func twi(st *State, ins instructions.Instruction) {
	if trap(ins.TO(), st.GPR[ins.RA()], uint32(ins.SIMM())) {
		st.Event = ProgramTrap
	}
}
