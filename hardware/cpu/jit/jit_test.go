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

package jit_test

import (
	"bytes"
	"testing"

	"github.com/jetsetilly/espresso/hardware/cpu/interpreter"
	"github.com/jetsetilly/espresso/hardware/cpu/jit"
	"github.com/jetsetilly/espresso/hardware/memory"
	"github.com/jetsetilly/espresso/hardware/memory/memorymap"
	"github.com/jetsetilly/espresso/logger"
	"github.com/jetsetilly/espresso/test"
)

const codeOrigin = memorymap.OriginCode

func newMemory(t *testing.T) *memory.Memory {
	t.Helper()
	mem, err := memory.NewMemory()
	test.DemandSuccess(t, err)
	t.Cleanup(func() {
		test.ExpectSuccess(t, mem.Destroy())
	})
	return mem
}

func newCompiler(t *testing.T, cfg jit.Config) *jit.Compiler {
	t.Helper()
	cmp, err := jit.NewCompiler(cfg, interpreter.NewTable(), logger.NewLogger(100))
	test.DemandSuccess(t, err)
	t.Cleanup(func() {
		test.ExpectSuccess(t, cmp.Destroy())
	})
	return cmp
}

// configurations for every available backend
func backends() map[string]jit.Config {
	b := map[string]jit.Config{
		"closure": jit.DefaultConfig(),
	}
	if jit.NativeAvailable {
		cfg := jit.DefaultConfig()
		cfg.Opt = jit.OptNative
		b["native"] = cfg
	}
	return b
}

func program(mem *memory.Memory, origin uint32, words ...uint32) {
	for i, w := range words {
		mem.Write32(origin+uint32(i*4), w)
	}
}

var boundary = []uint32{0, 1, 0xffffffff, 0x80000000, 0x7fffffff, 0x12345678}

// instructions with a template plus some that are always call-outs
var equivalence = []uint32{
	0x38600005, // li r3, 5
	0x3864ffff, // addi r3, r4, -1
	0x3c641234, // addis r3, r4, 0x1234
	0x7c642a14, // add r3, r4, r5
	0x7c642850, // subf r3, r4, r5
	0x7c6429d6, // mullw r3, r4, r5
	0x1c64fffd, // mulli r3, r4, -3
	0x7c832b78, // or r3, r4, r5
	0x7c832378, // mr r3, r4
	0x7c832838, // and r3, r4, r5
	0x7c832878, // andc r3, r4, r5
	0x7c832b38, // orc r3, r4, r5
	0x7c832a78, // xor r3, r4, r5
	0x7c832bb8, // nand r3, r4, r5
	0x7c8328f8, // nor r3, r4, r5
	0x7c832a38, // eqv r3, r4, r5
	0x60838001, // ori r3, r4, 0x8001
	0x64838001, // oris r3, r4, 0x8001
	0x68838001, // xori r3, r4, 0x8001
	0x6c838001, // xoris r3, r4, 0x8001
	0x5483403e, // rotlwi r3, r4, 8
	0x5483043e, // clrlwi r3, r4, 16
	0x54832036, // slwi r3, r4, 4
	0x7c8803a6, // mtlr r4
	0x7c6802a6, // mflr r3
	0x7c8903a6, // mtctr r4
	0x7c6902a6, // mfctr r3
	0x4e800020, // blr
	0x4e800021, // blrl
	0x4e800420, // bctr
	0x4e800421, // bctrl
	0x48000008, // b +8
	0x48000009, // bl +8
	0x4bfffffc, // b -4
	0x7c642e15, // addo. r3, r4, r5
	0x7c832b79, // or. r3, r4, r5
	0x41820008, // beq +8
}

func TestEquivalence(t *testing.T) {
	for name, cfg := range backends() {
		cfg.BlockSize = 1
		cmp := newCompiler(t, cfg)
		mem := newMemory(t)
		tab := interpreter.NewTable()

		program(mem, codeOrigin, equivalence...)

		for i, w := range equivalence {
			cia := codeOrigin + uint32(i*4)
			for _, a := range boundary {
				for _, b := range boundary {
					st := &interpreter.State{Mem: mem}
					st.GPR[4] = a
					st.GPR[5] = b
					st.LR = a
					st.CTR = b
					st.NIA = cia

					ref := *st
					cmp.Execute(st)
					tab.Step(&ref)

					diff := st.CoreRegs.Compare(&ref.CoreRegs)
					test.ExpectEquality(t, len(diff), 0, name, w, a, b, diff)
					test.ExpectEquality(t, st.CIA, ref.CIA, name, w)
				}
			}
		}
	}
}

func TestBlock(t *testing.T) {
	words := []uint32{
		0x38600001, // li r3, 1
		0x38630001, // addi r3, r3, 1
		0x48000008, // b +8
		0x00000000, // never executed
		0x38630001, // addi r3, r3, 1
		0x4e800020, // blr
	}
	const ret = codeOrigin + 0x100

	for name, cfg := range backends() {
		mem := newMemory(t)
		program(mem, codeOrigin, words...)

		// without merging the block ends at the unconditional branch
		cmp := newCompiler(t, cfg)
		st := &interpreter.State{Mem: mem}
		st.LR = ret
		st.NIA = codeOrigin
		cmp.Execute(st)
		test.ExpectEquality(t, st.GPR[3], uint32(2), name)
		test.ExpectEquality(t, st.CIA, codeOrigin+8, name)
		test.ExpectEquality(t, st.NIA, codeOrigin+16, name)
		cmp.Execute(st)
		test.ExpectEquality(t, st.GPR[3], uint32(3), name)
		test.ExpectEquality(t, st.NIA, uint32(ret), name)

		// the branch is merged into the block
		cfg.Opt |= jit.OptMerge
		cmp = newCompiler(t, cfg)
		st = &interpreter.State{Mem: mem}
		st.LR = ret
		st.NIA = codeOrigin
		cmp.Execute(st)
		test.ExpectEquality(t, st.GPR[3], uint32(3), name)
		test.ExpectEquality(t, st.CIA, codeOrigin+20, name)
		test.ExpectEquality(t, st.NIA, uint32(ret), name)
	}
}

func TestBlockLimit(t *testing.T) {
	for name, cfg := range backends() {
		cfg.BlockSize = 2
		cmp := newCompiler(t, cfg)
		mem := newMemory(t)
		program(mem, codeOrigin, 0x38600001, 0x38630001, 0x38630001)

		st := &interpreter.State{Mem: mem}
		st.NIA = codeOrigin
		cmp.Execute(st)
		test.ExpectEquality(t, st.GPR[3], uint32(2), name)
		test.ExpectEquality(t, st.CIA, codeOrigin+4, name)
		test.ExpectEquality(t, st.NIA, codeOrigin+8, name)
	}
}

func TestEvent(t *testing.T) {
	for name, cfg := range backends() {
		cmp := newCompiler(t, cfg)
		mem := newMemory(t)
		program(mem, codeOrigin,
			0x38600001, // li r3, 1
			0x44000002, // sc
			0x38600002, // li r3, 2
		)

		st := &interpreter.State{Mem: mem}
		st.NIA = codeOrigin
		cmp.Execute(st)
		test.ExpectEquality(t, st.Event, interpreter.SystemCall, name)
		test.ExpectEquality(t, st.GPR[3], uint32(1), name)
		test.ExpectEquality(t, st.CIA, codeOrigin+4, name)
		test.ExpectEquality(t, st.NIA, codeOrigin+8, name)

		// illegal instruction
		st.Event = interpreter.NoEvent
		program(mem, codeOrigin+0x40, 0x38600007, 0x00000000)
		st.NIA = codeOrigin + 0x40
		cmp.Execute(st)
		test.ExpectEquality(t, st.Event, interpreter.IllegalInstruction, name)
		test.ExpectEquality(t, st.GPR[3], uint32(7), name)
		test.ExpectEquality(t, st.CIA, codeOrigin+0x44, name)
	}
}

func TestInvalidate(t *testing.T) {
	for name, cfg := range backends() {
		cmp := newCompiler(t, cfg)
		mem := newMemory(t)
		program(mem, codeOrigin, 0x38600001, 0x4e800020)

		st := &interpreter.State{Mem: mem}
		st.LR = codeOrigin
		st.NIA = codeOrigin
		cmp.Execute(st)
		test.ExpectEquality(t, st.GPR[3], uint32(1), name)

		// the cached block is used until the address is invalidated
		program(mem, codeOrigin, 0x38600002)
		cmp.Execute(st)
		test.ExpectEquality(t, st.GPR[3], uint32(1), name)

		// invalidating an address in the middle of the block
		cmp.InvalidateInstructionCache(codeOrigin+4, 4)
		cmp.Execute(st)
		test.ExpectEquality(t, st.GPR[3], uint32(2), name)
	}
}

func TestCacheFull(t *testing.T) {
	cfg := jit.DefaultConfig()

	// room for a single block of a move and a branch
	cfg.CodeSize = 16
	cmp := newCompiler(t, cfg)
	mem := newMemory(t)
	program(mem, codeOrigin, 0x38600001, 0x4e800020, 0x38800002, 0x4e800020)

	st := &interpreter.State{Mem: mem}
	st.LR = codeOrigin + 8
	st.NIA = codeOrigin
	cmp.Execute(st)
	test.ExpectEquality(t, st.NIA, codeOrigin+8)

	code, _ := cmp.CacheSize()
	test.ExpectEquality(t, code, 16)

	st.LR = codeOrigin
	cmp.Execute(st)
	test.ExpectEquality(t, st.GPR[3], uint32(1))
	test.ExpectEquality(t, st.GPR[4], uint32(2))
	test.ExpectEquality(t, st.NIA, uint32(codeOrigin))

	code, _ = cmp.CacheSize()
	test.ExpectEquality(t, code, 16)
}

func TestVerify(t *testing.T) {
	cfg := jit.DefaultConfig()
	cfg.Mode = jit.Verify
	cfg.Opt = jit.OptMerge
	cmp := newCompiler(t, cfg)
	mem := newMemory(t)
	program(mem, codeOrigin,
		0x38600005, // li r3, 5
		0x7c832378, // mr r3, r4
		0x48000008, // b +8
	)

	st := &interpreter.State{Mem: mem}
	st.NIA = codeOrigin
	for range 3 {
		cmp.Execute(st)
	}
	test.ExpectEquality(t, st.NIA, codeOrigin+16)
}

func TestProfile(t *testing.T) {
	cfg := jit.DefaultConfig()
	cfg.Opt = jit.OptProfile
	cmp := newCompiler(t, cfg)
	mem := newMemory(t)
	program(mem, codeOrigin, 0x38630001, 0x4bfffffc)

	st := &interpreter.State{Mem: mem}
	st.NIA = codeOrigin
	for range 10 {
		cmp.Execute(st)
	}
	test.ExpectEquality(t, st.GPR[3], uint32(10))

	p := cmp.Profile()
	test.DemandEquality(t, len(p), 1)
	test.ExpectEquality(t, p[0].Start, uint32(codeOrigin))
	test.ExpectEquality(t, p[0].Length, 2)
	test.ExpectEquality(t, p[0].Count, uint64(10))

	var b bytes.Buffer
	test.ExpectSuccess(t, cmp.WriteProfile(&b, 0))
	test.ExpectInequality(t, b.Len(), 0)
}

func TestOptions(t *testing.T) {
	o, unknown := jit.ParseOpt("native, merge,bogus")
	test.ExpectEquality(t, o, jit.OptNative|jit.OptMerge)
	test.DemandEquality(t, len(unknown), 1)
	test.ExpectEquality(t, unknown[0], "bogus")
	test.ExpectEquality(t, o.String(), "native,merge")

	o, unknown = jit.ParseOpt("none")
	test.ExpectEquality(t, o, jit.Opt(0))
	test.ExpectEquality(t, len(unknown), 0)

	m, err := jit.ParseMode("Verify")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, m, jit.Verify)
	_, err = jit.ParseMode("fast")
	test.ExpectFailure(t, err)
}
