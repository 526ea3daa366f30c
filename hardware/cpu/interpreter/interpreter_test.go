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

package interpreter_test

import (
	"math"
	"testing"

	"github.com/jetsetilly/espresso/hardware/cpu/instructions"
	"github.com/jetsetilly/espresso/hardware/cpu/interpreter"
	"github.com/jetsetilly/espresso/hardware/cpu/registers"
	"github.com/jetsetilly/espresso/hardware/memory"
	"github.com/jetsetilly/espresso/hardware/memory/memorymap"
	"github.com/jetsetilly/espresso/test"
)

const (
	codeOrigin = memorymap.OriginCode
	dataOrigin = memorymap.OriginApplication
)

func newState(t *testing.T) *interpreter.State {
	t.Helper()
	mem, err := memory.NewMemory()
	test.DemandSuccess(t, err)
	t.Cleanup(func() {
		test.ExpectSuccess(t, mem.Destroy())
	})
	return &interpreter.State{Mem: mem}
}

// run places the instruction words at the start of the code area and steps
// until the next instruction is outside of the program or n steps have been
// taken.
func run(t *testing.T, st *interpreter.State, n int, words ...uint32) {
	t.Helper()
	for i, w := range words {
		st.Mem.Write32(codeOrigin+uint32(i*4), w)
	}
	end := codeOrigin + uint32(len(words)*4)

	tab := interpreter.NewTable()
	st.NIA = codeOrigin
	for range n {
		tab.Step(st)
		if st.Event != interpreter.NoEvent || st.NIA < codeOrigin || st.NIA >= end {
			return
		}
	}
}

func TestTableComplete(t *testing.T) {
	tab := interpreter.NewTable()
	for id := instructions.Illegal; id < instructions.NumIDs; id++ {
		test.ExpectInequality(t, tab.Lookup(id) == nil, true, id)
	}
	test.ExpectInequality(t, tab.Lookup(instructions.NumIDs) == nil, true)
}

func TestIllegal(t *testing.T) {
	st := newState(t)
	tab := interpreter.NewTable()
	st.Mem.Write32(codeOrigin, 0)
	st.NIA = codeOrigin

	ins, defn := tab.Step(st)
	test.ExpectEquality(t, uint32(ins), 0)
	test.ExpectEquality(t, defn == nil, true)
	test.ExpectEquality(t, st.Event, interpreter.IllegalInstruction)
	test.ExpectEquality(t, st.CIA, codeOrigin)
	test.ExpectEquality(t, st.NIA, codeOrigin+4)
}

func TestAddImmediate(t *testing.T) {
	st := newState(t)

	// addi r3,0,5
	run(t, st, 1, 0x38600005)
	test.ExpectEquality(t, st.GPR[3], 5)
	test.ExpectEquality(t, uint32(st.CR), 0)
	test.ExpectEquality(t, uint32(st.XER), 0)
	test.ExpectEquality(t, st.Event, interpreter.NoEvent)
}

func TestAddCarryOverflow(t *testing.T) {
	st := newState(t)

	// addc r3,r4,r5
	st.GPR[4] = 0xffffffff
	st.GPR[5] = 1
	run(t, st, 1, 0x7c642814)
	test.ExpectEquality(t, st.GPR[3], 0)
	test.ExpectEquality(t, st.XER.CA(), true)
	test.ExpectEquality(t, st.XER.OV(), false)

	// addo. r3,r4,r5
	st = newState(t)
	st.GPR[4] = 0x7fffffff
	st.GPR[5] = 1
	run(t, st, 1, 0x7c642e15)
	test.ExpectEquality(t, st.GPR[3], 0x80000000)
	test.ExpectEquality(t, st.XER.OV(), true)
	test.ExpectEquality(t, st.XER.SO(), true)
	test.ExpectEquality(t, st.XER.CA(), false)
	test.ExpectEquality(t, st.CR.Field(0), registers.LT|registers.SO)

	// carry is the same as the unsigned overflow of the sum
	for _, v := range [][2]uint32{{0, 0}, {1, 0xffffffff}, {0x80000000, 0x80000000}, {0x12345678, 0x9abcdef0}} {
		st = newState(t)
		st.GPR[4] = v[0]
		st.GPR[5] = v[1]
		run(t, st, 1, 0x7c642814)
		test.ExpectEquality(t, st.GPR[3], v[0]+v[1], v)
		test.ExpectEquality(t, st.XER.CA(), uint64(v[0])+uint64(v[1]) > math.MaxUint32, v)
	}
}

func TestRotate(t *testing.T) {
	st := newState(t)

	// rlwinm r3,r4,8,0,31 is a plain rotate
	st.GPR[4] = 0x12345678
	run(t, st, 1, 0x5483403e)
	test.ExpectEquality(t, st.GPR[3], 0x34567812)
}

func TestDivide(t *testing.T) {
	st := newState(t)

	// divwo r3,r4,r5
	st.GPR[4] = 0x80000000
	st.GPR[5] = 0xffffffff
	run(t, st, 1, 0x7c642fd6)
	test.ExpectEquality(t, st.XER.OV(), true)
	test.ExpectEquality(t, st.XER.SO(), true)

	st = newState(t)
	st.GPR[4] = 100
	st.GPR[5] = 0
	run(t, st, 1, 0x7c642fd6)
	test.ExpectEquality(t, st.XER.OV(), true)

	// divw r3,r4,r5
	st = newState(t)
	st.GPR[4] = uint32(0xffffff9c) // -100
	st.GPR[5] = 7
	run(t, st, 1, 0x7c642bd6)
	test.ExpectEquality(t, int32(st.GPR[3]), -14)
	test.ExpectEquality(t, st.XER.OV(), false)
}

func TestShiftArithmetic(t *testing.T) {
	st := newState(t)

	// sraw r3,r4,r5
	st.GPR[4] = uint32(0xfffffffb) // -5
	st.GPR[5] = 1
	run(t, st, 1, 0x7c832e30)
	test.ExpectEquality(t, int32(st.GPR[3]), -3)
	test.ExpectEquality(t, st.XER.CA(), true)

	// srawi r3,r4,1
	st = newState(t)
	st.GPR[4] = uint32(0xfffffffc) // -4
	run(t, st, 1, 0x7c830e70)
	test.ExpectEquality(t, int32(st.GPR[3]), -2)
	test.ExpectEquality(t, st.XER.CA(), false)

	// positive values never set carry
	st = newState(t)
	st.GPR[4] = 5
	run(t, st, 1, 0x7c830e70)
	test.ExpectEquality(t, st.GPR[3], 2)
	test.ExpectEquality(t, st.XER.CA(), false)
}

func TestBranch(t *testing.T) {
	st := newState(t)

	// loop: addi r3,r3,1
	//       bdnz loop
	st.CTR = 3
	run(t, st, 100, 0x38630001, 0x4200fffc)
	test.ExpectEquality(t, st.GPR[3], 3)
	test.ExpectEquality(t, st.CTR, 0)
	test.ExpectEquality(t, st.NIA, codeOrigin+8)

	// bl +8
	// addi r3,r3,1
	// blr
	st = newState(t)
	run(t, st, 3, 0x48000009, 0x38630001, 0x4e800020)
	test.ExpectEquality(t, st.LR, codeOrigin+4)
	test.ExpectEquality(t, st.GPR[3], 1)
	test.ExpectEquality(t, st.NIA, codeOrigin+8)
}

func TestSignallingNaN(t *testing.T) {
	st := newState(t)

	// fadd f1,f2,f3
	st.FPR[2].PS0 = 0x7ff0000000000001
	st.FPR[3].SetFloat64(1.0)
	run(t, st, 1, 0xfc22182a)
	test.ExpectEquality(t, st.FPR[1].PS0, 0x7ff8000000000001)
	test.ExpectEquality(t, st.FPSCR.Has(registers.VXSNAN), true)
	test.ExpectEquality(t, st.FPSCR.Has(registers.VX), true)
	test.ExpectEquality(t, st.FPSCR.Has(registers.FX), true)
	test.ExpectEquality(t, st.FPSCR.FPRF(), registers.FPRFNaN)

	// with invalid operation exceptions enabled the target is unchanged
	st = newState(t)
	st.FPSCR.Set(registers.VE)
	st.FPR[1].SetFloat64(10.0)
	st.FPR[2].PS0 = 0x7ff0000000000001
	st.FPR[3].SetFloat64(1.0)
	run(t, st, 1, 0xfc22182a)
	test.ExpectEquality(t, st.FPR[1].PS0, math.Float64bits(10.0))
	test.ExpectEquality(t, st.FPSCR.Has(registers.FEX), true)
}

func TestReservation(t *testing.T) {
	st := newState(t)
	st.Mem.Write32(dataOrigin, 7)
	st.GPR[5] = dataOrigin
	st.GPR[6] = 99

	// lwarx r3,0,r5
	// stwcx. r6,0,r5
	// stwcx. r6,0,r5
	tab := interpreter.NewTable()
	st.Mem.Write32(codeOrigin, 0x7c602828)
	st.Mem.Write32(codeOrigin+4, 0x7cc0292d)
	st.Mem.Write32(codeOrigin+8, 0x7cc0292d)
	st.NIA = codeOrigin

	tab.Step(st)
	test.ExpectEquality(t, st.GPR[3], 7)
	test.ExpectEquality(t, st.Reserve, true)

	tab.Step(st)
	test.ExpectEquality(t, st.CR.Field(0), registers.EQ)
	test.ExpectEquality(t, st.Mem.Read32(dataOrigin), 99)

	st.GPR[6] = 100
	tab.Step(st)
	test.ExpectEquality(t, st.CR.Field(0), 0)
	test.ExpectEquality(t, st.Mem.Read32(dataOrigin), 99)
}

func TestReservationLost(t *testing.T) {
	st := newState(t)
	st.Mem.Write32(dataOrigin, 7)
	st.GPR[5] = dataOrigin
	st.GPR[6] = 99

	tab := interpreter.NewTable()
	st.Mem.Write32(codeOrigin, 0x7c602828)
	st.Mem.Write32(codeOrigin+4, 0x7cc0292d)
	st.NIA = codeOrigin

	tab.Step(st)

	// another core changes the reserved word
	st.Mem.Write32(dataOrigin, 8)

	tab.Step(st)
	test.ExpectEquality(t, st.CR.Field(0), 0)
	test.ExpectEquality(t, st.Mem.Read32(dataOrigin), 8)
	test.ExpectEquality(t, st.Reserve, false)
}

func TestTrapAndSystemCall(t *testing.T) {
	st := newState(t)

	// tw 4,r3,r3
	run(t, st, 1, 0x7c831808)
	test.ExpectEquality(t, st.Event, interpreter.ProgramTrap)

	// sc
	st = newState(t)
	run(t, st, 1, 0x44000002)
	test.ExpectEquality(t, st.Event, interpreter.SystemCall)
}

func TestSPR(t *testing.T) {
	st := newState(t)

	// mflr r3
	st.LR = 0x1234
	run(t, st, 1, 0x7c6802a6)
	test.ExpectEquality(t, st.GPR[3], 0x1234)

	// mfspr r3,0 is not a valid SPR
	st = newState(t)
	run(t, st, 1, 0x7c6002a6)
	test.ExpectEquality(t, st.Event, interpreter.IllegalInstruction)

	// mftb r3
	st = newState(t)
	st.Timebase = func() uint64 { return 0x0000000500000006 }
	run(t, st, 1, 0x7c6c42e6)
	test.ExpectEquality(t, st.GPR[3], 6)
}

func TestPairedLoad(t *testing.T) {
	st := newState(t)
	st.Mem.Write8(dataOrigin, 4)
	st.Mem.Write8(dataOrigin+1, 8)
	st.GPR[5] = dataOrigin
	st.GQR[1].SetLdType(registers.QuantU8)
	st.GQR[1].SetLdScale(2)

	// psq_l f1,0(r5),0,1
	run(t, st, 1, 0xe0251000)
	test.ExpectEquality(t, st.FPR[1].Float64(), 1.0)
	test.ExpectEquality(t, st.FPR[1].Paired1(), 2.0)
}

func TestStringLoad(t *testing.T) {
	st := newState(t)
	copy(st.Mem.Slice(dataOrigin, 6), []byte{1, 2, 3, 4, 5, 6})
	st.GPR[5] = dataOrigin
	st.GPR[4] = 0xffffffff

	// lswi r3,r5,6
	run(t, st, 1, 0x7c6534aa)
	test.ExpectEquality(t, st.GPR[3], 0x01020304)
	test.ExpectEquality(t, st.GPR[4], 0x05060000)
}
