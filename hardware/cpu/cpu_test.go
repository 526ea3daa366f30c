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

package cpu_test

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jetsetilly/espresso/curated"
	"github.com/jetsetilly/espresso/hardware/cpu"
	"github.com/jetsetilly/espresso/hardware/cpu/instructions"
	"github.com/jetsetilly/espresso/hardware/cpu/interpreter"
	"github.com/jetsetilly/espresso/hardware/cpu/jit"
	"github.com/jetsetilly/espresso/hardware/memory"
	"github.com/jetsetilly/espresso/hardware/memory/memorymap"
	"github.com/jetsetilly/espresso/logger"
	"github.com/jetsetilly/espresso/test"
)

const origin = memorymap.OriginCode

const (
	liR3         = 0x38600005 // li r3, 5
	liR4         = 0x38800006 // li r4, 6
	addR3R3R4    = 0x7c632214 // add r3, r3, r4
	addR5R3R4    = 0x7ca32214 // add r5, r3, r4
	faddF1F1F2   = 0xfc21102a // fadd f1, f1, f2
	lwzUnmapped  = 0x80601000 // lwz r3, 0x1000(0)
	lwzEnd       = 0x8060fffe // lwz r3, -2(0)
	sc           = 0x44000002
	blr          = 0x4e800020
	branchToSelf = 0x48000000
)

type harness struct {
	sch *cpu.Scheduler
	mem *memory.Memory
}

func newHarness(t *testing.T, mode jit.Mode, cfg cpu.Config, handlers cpu.Handlers) *harness {
	t.Helper()

	mem, err := memory.NewMemory()
	test.DemandSuccess(t, err)
	t.Cleanup(func() {
		test.ExpectSuccess(t, mem.Destroy())
	})

	log := logger.NewLogger(100)
	table := interpreter.NewTable()

	jcfg := jit.DefaultConfig()
	jcfg.Mode = mode
	cmp, err := jit.NewCompiler(jcfg, table, log)
	test.DemandSuccess(t, err)
	t.Cleanup(func() {
		test.ExpectSuccess(t, cmp.Destroy())
	})

	sch, err := cpu.NewScheduler(cfg, mem, table, cmp, handlers, log)
	test.DemandSuccess(t, err)

	return &harness{sch: sch, mem: mem}
}

func (h *harness) program(addr uint32, words ...uint32) {
	for i, w := range words {
		h.mem.Write32(addr+uint32(i*4), w)
	}
}

// run core 0 from the origin until all cores have stopped. the scheduler is
// halted if the cores have not stopped after a short time.
func (h *harness) run(t *testing.T) error {
	t.Helper()
	test.DemandSuccess(t, h.sch.SetEntryPoint(0, origin))
	test.DemandSuccess(t, h.sch.Start())

	t.Cleanup(func() {
		h.sch.Halt()
		_ = h.sch.Join()
	})

	done := make(chan error, 1)
	go func() {
		done <- h.sch.Join()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(10 * time.Second):
		h.sch.Halt()
		t.Fatalf("scheduler did not stop")
	}
	return nil
}

// halt the scheduler on a system call
func haltOnSystemCall(sch **cpu.Scheduler) cpu.Handler {
	return func(c *cpu.Core, _ instructions.Instruction) error {
		(*sch).Halt()
		return nil
	}
}

var modes = []jit.Mode{jit.Disabled, jit.Enabled, jit.Verify}

func TestEntryPoint(t *testing.T) {
	for _, mode := range modes {
		t.Run(mode.String(), func(t *testing.T) {
			var sch *cpu.Scheduler
			h := newHarness(t, mode, cpu.Config{Cores: 1}, cpu.Handlers{
				SystemCall: haltOnSystemCall(&sch),
			})
			sch = h.sch

			h.program(origin, liR3, sc)
			test.ExpectSuccess(t, h.run(t))

			c, err := sch.Core(0)
			test.DemandSuccess(t, err)
			test.ExpectEquality(t, c.State.GPR[3], uint32(5))
			test.ExpectEquality(t, uint32(c.State.CR), uint32(0))
			test.ExpectEquality(t, uint32(c.State.XER), uint32(0))
			test.ExpectEquality(t, c.State.CIA, origin+4)
			test.ExpectEquality(t, c.CoreState(), cpu.Stopped)
		})
	}
}

func TestNoCore(t *testing.T) {
	h := newHarness(t, jit.Disabled, cpu.Config{Cores: 2}, cpu.Handlers{})

	_, err := h.sch.Core(1)
	test.ExpectSuccess(t, err)
	_, err = h.sch.Core(2)
	test.ExpectEquality(t, curated.Is(err, cpu.NoCore), true)
	test.ExpectEquality(t, curated.Is(h.sch.SetEntryPoint(-1, origin), cpu.NoCore), true)
	test.ExpectEquality(t, curated.Is(h.sch.Interrupt(3, cpu.GenericInterrupt), cpu.NoCore), true)
	test.ExpectEquality(t, len(h.sch.Cores()), 2)

	// cores without an entry point are not started
	test.ExpectSuccess(t, h.sch.Start())
	test.ExpectEquality(t, curated.Is(h.sch.Start(), cpu.AlreadyStarted), true)
	test.ExpectSuccess(t, h.sch.Join())
}

func TestIllegalInstruction(t *testing.T) {
	for _, mode := range modes {
		t.Run(mode.String(), func(t *testing.T) {
			h := newHarness(t, mode, cpu.Config{Cores: 1}, cpu.Handlers{})
			h.program(origin, liR3, 0x00000000)

			err := h.run(t)
			test.ExpectEquality(t, curated.Is(err, cpu.IllegalInstruction), true)
		})
	}
}

func TestIllegalInstructionHandled(t *testing.T) {
	var sch *cpu.Scheduler
	var illegal []uint32

	h := newHarness(t, jit.Enabled, cpu.Config{Cores: 1}, cpu.Handlers{
		IllegalInstruction: func(c *cpu.Core, ins instructions.Instruction) error {
			illegal = append(illegal, c.State.CIA)
			return nil
		},
		SystemCall: haltOnSystemCall(&sch),
	})
	sch = h.sch

	h.program(origin, 0x00000000, liR3, 0x00000fff, sc)
	test.ExpectSuccess(t, h.run(t))

	test.DemandEquality(t, len(illegal), 2)
	test.ExpectEquality(t, illegal[0], origin)
	test.ExpectEquality(t, illegal[1], origin+8)

	c, _ := sch.Core(0)
	test.ExpectEquality(t, c.State.GPR[3], uint32(5))
}

func TestUnhandledEvent(t *testing.T) {
	h := newHarness(t, jit.Disabled, cpu.Config{Cores: 1}, cpu.Handlers{})
	h.program(origin, sc)

	err := h.run(t)
	test.ExpectEquality(t, curated.Is(err, cpu.Unhandled), true)
}

func TestAccessViolation(t *testing.T) {
	t.Run("fetch", func(t *testing.T) {
		h := newHarness(t, jit.Enabled, cpu.Config{Cores: 1}, cpu.Handlers{})
		test.DemandSuccess(t, h.sch.SetEntryPoint(0, 0x00001000))
		test.DemandSuccess(t, h.sch.Start())
		err := h.sch.Join()
		test.ExpectEquality(t, curated.Is(err, cpu.AccessViolation), true)
	})

	for _, mode := range modes {
		t.Run(mode.String(), func(t *testing.T) {
			h := newHarness(t, mode, cpu.Config{Cores: 1}, cpu.Handlers{})
			h.program(origin, liR3, lwzUnmapped)

			err := h.run(t)
			test.ExpectEquality(t, curated.Is(err, cpu.AccessViolation), true)
		})
	}
}

func TestSegfaultHandler(t *testing.T) {
	var sch *cpu.Scheduler
	var fault uint32

	h := newHarness(t, jit.Enabled, cpu.Config{Cores: 1}, cpu.Handlers{
		Segfault: func(c *cpu.Core, addr uint32) error {
			fault = addr

			// continue after the faulting instruction
			c.State.NIA = c.State.CIA + 4
			return nil
		},
		SystemCall: haltOnSystemCall(&sch),
	})
	sch = h.sch

	h.program(origin, lwzUnmapped, liR4, sc)
	test.ExpectSuccess(t, h.run(t))
	test.ExpectEquality(t, fault, uint32(0x1000))

	c, _ := sch.Core(0)
	test.ExpectEquality(t, c.State.GPR[4], uint32(6))
}

// an access that crosses the end of the address space is an access
// violation at the effective address
func TestSegfaultEndOfAddressSpace(t *testing.T) {
	for _, mode := range modes {
		t.Run(mode.String(), func(t *testing.T) {
			var sch *cpu.Scheduler
			var fault uint32
			var called bool

			h := newHarness(t, mode, cpu.Config{Cores: 1}, cpu.Handlers{
				Segfault: func(c *cpu.Core, addr uint32) error {
					called = true
					fault = addr
					c.State.NIA = c.State.CIA + 4
					return nil
				},
				SystemCall: haltOnSystemCall(&sch),
			})
			sch = h.sch

			h.program(origin, lwzEnd, liR4, sc)
			test.ExpectSuccess(t, h.run(t))
			test.ExpectSuccess(t, called)
			test.ExpectEquality(t, fault, uint32(0xfffffffe))

			c, _ := sch.Core(0)
			test.ExpectEquality(t, c.State.GPR[4], uint32(6))
		})
	}

	h := newHarness(t, jit.Disabled, cpu.Config{Cores: 1}, cpu.Handlers{})
	h.program(origin, lwzEnd)
	err := h.run(t)
	test.ExpectEquality(t, curated.Is(err, cpu.AccessViolation), true)
}

func TestInterrupt(t *testing.T) {
	for _, mode := range modes {
		t.Run(mode.String(), func(t *testing.T) {
			var sch *cpu.Scheduler
			var delivered uint32
			var site uint32

			h := newHarness(t, mode, cpu.Config{Cores: 1}, cpu.Handlers{
				Interrupt: func(c *cpu.Core, flags uint32) error {
					delivered = flags
					site = c.State.NIA
					sch.Halt()
					return nil
				},
			})
			sch = h.sch

			h.program(origin, branchToSelf)
			test.DemandSuccess(t, sch.Interrupt(0, cpu.GenericInterrupt|cpu.IPCInterrupt))
			test.ExpectSuccess(t, h.run(t))

			test.ExpectEquality(t, delivered, cpu.GenericInterrupt|cpu.IPCInterrupt)
			test.ExpectEquality(t, site, origin)

			c, _ := sch.Core(0)
			test.ExpectEquality(t, c.PendingInterrupts(), uint32(0))
		})
	}
}

func TestInterruptMask(t *testing.T) {
	var sch *cpu.Scheduler
	var delivered uint32

	h := newHarness(t, jit.Enabled, cpu.Config{Cores: 1}, cpu.Handlers{
		Interrupt: func(c *cpu.Core, flags uint32) error {
			delivered = flags
			sch.Halt()
			return nil
		},
	})
	sch = h.sch

	c, err := sch.Core(0)
	test.DemandSuccess(t, err)

	old := c.SetInterruptMask(cpu.AlarmInterrupt)
	test.ExpectEquality(t, old, cpu.InterruptMask)

	// the generic interrupt is masked but the system reset interrupt cannot
	// be masked
	test.DemandSuccess(t, sch.Interrupt(0, cpu.GenericInterrupt))
	test.DemandSuccess(t, sch.Interrupt(0, cpu.SystemResetInterrupt))

	h.program(origin, branchToSelf)
	test.ExpectSuccess(t, h.run(t))

	test.ExpectEquality(t, delivered, cpu.SystemResetInterrupt)
	test.ExpectEquality(t, c.PendingInterrupts(), cpu.GenericInterrupt)

	c.ClearInterrupt(cpu.GenericInterrupt)
	test.ExpectEquality(t, c.PendingInterrupts(), uint32(0))
}

func TestWaitForInterrupt(t *testing.T) {
	var sch *cpu.Scheduler
	var delivered uint32

	h := newHarness(t, jit.Enabled, cpu.Config{Cores: 1}, cpu.Handlers{
		SystemCall: func(c *cpu.Core, _ instructions.Instruction) error {
			c.WaitForInterrupt()
			return nil
		},
		Interrupt: func(c *cpu.Core, flags uint32) error {
			delivered = flags
			sch.Halt()
			return nil
		},
	})
	sch = h.sch

	c, err := sch.Core(0)
	test.DemandSuccess(t, err)

	go func() {
		for c.CoreState() != cpu.Halted {
			time.Sleep(time.Millisecond)
		}
		_ = sch.Interrupt(0, cpu.GPUInterrupt)
	}()

	h.program(origin, sc, branchToSelf)
	test.ExpectSuccess(t, h.run(t))
	test.ExpectEquality(t, delivered, cpu.GPUInterrupt)
}

func TestAlarm(t *testing.T) {
	for _, mode := range modes {
		t.Run(mode.String(), func(t *testing.T) {
			var sch *cpu.Scheduler
			var delivered uint32

			h := newHarness(t, mode, cpu.Config{Cores: 1}, cpu.Handlers{
				Interrupt: func(c *cpu.Core, flags uint32) error {
					delivered = flags
					sch.Halt()
					return nil
				},
			})
			sch = h.sch

			c, err := sch.Core(0)
			test.DemandSuccess(t, err)
			c.SetNextAlarm(sch.Timebase() + cpu.NanosecondsToTimebase(uint64(time.Millisecond)))

			h.program(origin, branchToSelf)
			test.ExpectSuccess(t, h.run(t))
			test.ExpectEquality(t, delivered, cpu.AlarmInterrupt)
		})
	}
}

func TestAlarmWhileWaiting(t *testing.T) {
	var sch *cpu.Scheduler
	var delivered uint32

	h := newHarness(t, jit.Disabled, cpu.Config{Cores: 1}, cpu.Handlers{
		SystemCall: func(c *cpu.Core, _ instructions.Instruction) error {
			c.SetNextAlarm(sch.Timebase() + cpu.NanosecondsToTimebase(uint64(5*time.Millisecond)))
			c.WaitForInterrupt()
			return nil
		},
		Interrupt: func(c *cpu.Core, flags uint32) error {
			delivered = flags
			sch.Halt()
			return nil
		},
	})
	sch = h.sch

	h.program(origin, sc, branchToSelf)
	test.ExpectSuccess(t, h.run(t))
	test.ExpectEquality(t, delivered, cpu.AlarmInterrupt)
}

func TestBreakpoint(t *testing.T) {
	for _, mode := range modes {
		t.Run(mode.String(), func(t *testing.T) {
			var sch *cpu.Scheduler
			var hits int
			var r3, r4 uint32
			var flags cpu.BreakpointFlags

			h := newHarness(t, mode, cpu.Config{Cores: 1}, cpu.Handlers{
				Breakpoint: func(c *cpu.Core, f cpu.BreakpointFlags) error {
					hits++
					flags = f
					r3 = c.State.GPR[3]
					r4 = c.State.GPR[4]
					test.ExpectEquality(t, c.CoreState(), cpu.Halted)
					return nil
				},
				SystemCall: haltOnSystemCall(&sch),
			})
			sch = h.sch

			h.program(origin, liR3, liR4, sc)
			sch.AddBreakpoint(origin+4, cpu.UserBreakpoint)
			test.ExpectSuccess(t, h.run(t))

			test.ExpectEquality(t, hits, 1)
			test.ExpectEquality(t, flags, cpu.UserBreakpoint)

			// the breakpoint is taken before the instruction is executed
			test.ExpectEquality(t, r3, uint32(5))
			test.ExpectEquality(t, r4, uint32(0))

			c, _ := sch.Core(0)
			test.ExpectEquality(t, c.State.GPR[4], uint32(6))
		})
	}
}

func TestBreakpointList(t *testing.T) {
	h := newHarness(t, jit.Disabled, cpu.Config{Cores: 1}, cpu.Handlers{})
	sch := h.sch

	sch.AddBreakpoint(0x100, cpu.SystemBreakpoint)
	sch.AddBreakpoint(0x100, cpu.UserBreakpoint)
	sch.AddBreakpoint(0x200, cpu.UserBreakpoint)
	test.ExpectEquality(t, sch.Breakpoints()[0x100], cpu.AnyBreakpoint)
	test.ExpectEquality(t, sch.Breakpoints()[0x100].String(), "system+user")
	test.ExpectEquality(t, sch.HasBreakpoint(0x200), true)
	test.ExpectEquality(t, sch.HasBreakpoint(0x300), false)

	sch.RemoveBreakpoint(0x100, cpu.SystemBreakpoint)
	test.ExpectEquality(t, sch.Breakpoints()[0x100], cpu.UserBreakpoint)

	sch.ClearBreakpoints(cpu.UserBreakpoint)
	test.ExpectEquality(t, sch.HasBreakpoint(0x100), false)
	test.ExpectEquality(t, sch.HasBreakpoint(0x200), false)
	test.ExpectEquality(t, len(sch.Breakpoints()), 0)

	// the copy returned by Breakpoints() is not the list used by the cores
	sch.AddBreakpoint(0x400, cpu.SystemBreakpoint)
	bp := sch.Breakpoints()
	delete(bp, 0x400)
	test.ExpectEquality(t, sch.HasBreakpoint(0x400), true)

	// step flags and empty flags are not stored
	sch.AddBreakpoint(0x500, cpu.StepBreakpoint)
	sch.AddBreakpoint(0x600, 0)
	sch.AddBreakpoint(0x400, cpu.UserBreakpoint|cpu.StepBreakpoint)
	test.ExpectEquality(t, sch.HasBreakpoint(0x500), false)
	test.ExpectEquality(t, sch.HasBreakpoint(0x600), false)
	test.ExpectEquality(t, sch.Breakpoints()[0x400], cpu.AnyBreakpoint)
}

func TestSingleStep(t *testing.T) {
	for _, mode := range modes {
		t.Run(mode.String(), func(t *testing.T) {
			var sch *cpu.Scheduler
			var addrs []uint32
			var flags []cpu.BreakpointFlags

			h := newHarness(t, mode, cpu.Config{Cores: 1}, cpu.Handlers{
				Breakpoint: func(c *cpu.Core, f cpu.BreakpointFlags) error {
					addrs = append(addrs, c.State.NIA)
					flags = append(flags, f)
					c.SetSingleStep(c.State.NIA < origin+8)
					return nil
				},
				SystemCall: haltOnSystemCall(&sch),
			})
			sch = h.sch

			h.program(origin, liR3, liR4, addR5R3R4, sc)
			sch.AddBreakpoint(origin, cpu.UserBreakpoint)
			test.ExpectSuccess(t, h.run(t))

			test.DemandEquality(t, len(addrs), 3)
			test.ExpectEquality(t, addrs[0], origin)
			test.ExpectEquality(t, addrs[1], origin+4)
			test.ExpectEquality(t, addrs[2], origin+8)
			test.ExpectEquality(t, flags[0], cpu.UserBreakpoint)
			test.ExpectEquality(t, flags[1], cpu.StepBreakpoint)
			test.ExpectEquality(t, flags[1].String(), "step")

			c, _ := sch.Core(0)
			test.ExpectEquality(t, c.SingleStep(), false)
			test.ExpectEquality(t, c.State.GPR[5], uint32(11))
		})
	}
}

func TestInvoke(t *testing.T) {
	for _, mode := range modes {
		t.Run(mode.String(), func(t *testing.T) {
			var sch *cpu.Scheduler
			var r3 uint32
			var f1 float64
			var lr uint32
			var argErr, countErr, ownerErr error

			const intFunc = origin + 0x100
			const floatFunc = origin + 0x200

			h := newHarness(t, mode, cpu.Config{Cores: 1}, cpu.Handlers{
				SystemCall: func(c *cpu.Core, _ instructions.Instruction) error {
					var err error
					r3, _, err = c.Invoke(intFunc, 20, uint32(3))
					if err != nil {
						return err
					}
					_, f1, err = c.Invoke(floatFunc, 1.5, float32(2.25))
					if err != nil {
						return err
					}
					lr = c.State.LR

					_, _, argErr = c.Invoke(intFunc, "string")
					_, _, countErr = c.Invoke(intFunc, 1, 2, 3, 4, 5, 6, 7, 8, 9)

					// the core is blocked in this handler so it is safe to
					// try the call from another goroutine
					ch := make(chan error)
					go func() {
						_, _, err := c.Invoke(intFunc)
						ch <- err
					}()
					ownerErr = <-ch

					sch.Halt()
					return nil
				},
			})
			sch = h.sch

			h.program(origin, liR3, sc, branchToSelf)
			h.program(intFunc, addR3R3R4, blr)
			h.program(floatFunc, faddF1F1F2, blr)

			test.ExpectSuccess(t, h.run(t))
			test.ExpectEquality(t, r3, uint32(23))
			test.ExpectEquality(t, f1, 3.75)
			test.ExpectEquality(t, curated.Is(argErr, cpu.InvokeArgument), true)
			test.ExpectEquality(t, curated.Is(countErr, cpu.InvokeArguments), true)
			test.ExpectEquality(t, curated.Is(ownerErr, cpu.WrongGoroutine), true)

			// registers are restored after the call
			test.ExpectEquality(t, lr, uint32(0))
			c, _ := sch.Core(0)
			test.ExpectEquality(t, c.State.GPR[3], uint32(5))
			test.ExpectEquality(t, c.State.GPR[4], uint32(0))
		})
	}
}

func TestTrace(t *testing.T) {
	var sch *cpu.Scheduler

	h := newHarness(t, jit.Enabled, cpu.Config{Cores: 1, TraceSize: 3}, cpu.Handlers{
		SystemCall: haltOnSystemCall(&sch),
	})
	sch = h.sch

	h.program(origin, liR3, liR3, liR4, addR5R3R4, sc)
	test.ExpectSuccess(t, h.run(t))

	c, _ := sch.Core(0)
	tr := c.Trace()
	test.DemandInequality(t, tr, nil)

	e := tr.Entries()
	test.DemandEquality(t, len(e), 3)
	test.ExpectEquality(t, e[0].CIA, origin+8)
	test.ExpectEquality(t, e[1].CIA, origin+12)
	test.ExpectEquality(t, e[2].CIA, origin+16)

	add := e[1]
	test.ExpectEquality(t, add.Ins, instructions.Instruction(addR5R3R4))
	test.DemandEquality(t, len(add.Reads), 2)
	test.ExpectEquality(t, add.Reads[0], cpu.TraceField{Field: instructions.RA, Value: 5})
	test.ExpectEquality(t, add.Reads[1], cpu.TraceField{Field: instructions.RB, Value: 6})
	test.DemandEquality(t, len(add.Writes), 1)
	test.ExpectEquality(t, add.Writes[0], cpu.TraceField{Field: instructions.RD, Value: 11})

	w, err := test.NewCappedWriter(1024)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, tr.Write(w, 1))
	test.ExpectEquality(t, strings.HasPrefix(w.String(), "02000010 sc"), true)
	test.ExpectEquality(t, strings.Count(w.String(), "\n"), 1)
}

func TestTimebase(t *testing.T) {
	test.ExpectEquality(t, cpu.NanosecondsToTimebase(uint64(time.Second)), uint64(cpu.TimebaseClock))
	test.ExpectEquality(t, cpu.TimebaseToNanoseconds(cpu.TimebaseClock), uint64(time.Second))

	// rounded up
	test.ExpectEquality(t, cpu.TimebaseToNanoseconds(1), uint64(17))

	// large values do not overflow
	const day = uint64(24 * time.Hour)
	test.ExpectEquality(t, cpu.TimebaseToNanoseconds(cpu.NanosecondsToTimebase(day*365)), day*365)
}

func TestFatal(t *testing.T) {
	dir := t.TempDir()

	h := newHarness(t, jit.Enabled, cpu.Config{Cores: 1, TraceSize: 8, Diagnostics: dir}, cpu.Handlers{
		SystemCall: func(c *cpu.Core, _ instructions.Instruction) error {
			panic("handler failure")
		},
	})

	h.program(origin, liR3, sc)
	err := h.run(t)
	test.ExpectEquality(t, curated.Is(err, cpu.Fatal), true)

	for _, ext := range []string{"*.dot", "*.trace", "*.stack"} {
		m, err := filepath.Glob(filepath.Join(dir, ext))
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, len(m), 1, ext)
	}
}
