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

package debugger_test

import (
	"strings"
	"testing"
	"time"

	"github.com/jetsetilly/espresso/debugger"
	"github.com/jetsetilly/espresso/debugger/terminal/plainterm"
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

var program = []uint32{
	0x38600005, // li r3, 5
	0x38800006, // li r4, 6
	0x7ca32214, // add r5, r3, r4
	0x44000002, // sc
}

// run the program with the monitor reading commands from the input string.
// returns the output of the monitor and the first core.
func run(t *testing.T, input string, cfg cpu.Config, breakpoints ...uint32) (string, *cpu.Core) {
	t.Helper()

	mem, err := memory.NewMemory()
	test.DemandSuccess(t, err)
	t.Cleanup(func() {
		test.ExpectSuccess(t, mem.Destroy())
	})
	for i, w := range program {
		mem.Write32(origin+uint32(i*4), w)
	}

	log := logger.NewLogger(100)
	table := interpreter.NewTable()

	jcfg := jit.DefaultConfig()
	jcfg.Mode = jit.Disabled
	cmp, err := jit.NewCompiler(jcfg, table, log)
	test.DemandSuccess(t, err)
	t.Cleanup(func() {
		test.ExpectSuccess(t, cmp.Destroy())
	})

	var sch *cpu.Scheduler
	var mon *debugger.Monitor

	sch, err = cpu.NewScheduler(cfg, mem, table, cmp, cpu.Handlers{
		Breakpoint: func(c *cpu.Core, flags cpu.BreakpointFlags) error {
			return mon.Breakpoint(c, flags)
		},
		SystemCall: func(c *cpu.Core, _ instructions.Instruction) error {
			sch.Halt()
			return nil
		},
	}, log)
	test.DemandSuccess(t, err)

	output := &strings.Builder{}
	mon = debugger.NewMonitor(sch, plainterm.NewPlainTerminal(strings.NewReader(input), output), log)

	for _, a := range breakpoints {
		sch.AddBreakpoint(a, cpu.UserBreakpoint)
	}

	test.DemandSuccess(t, sch.SetEntryPoint(0, origin))
	test.DemandSuccess(t, sch.Start())

	done := make(chan error, 1)
	go func() {
		done <- sch.Join()
	}()

	select {
	case err := <-done:
		test.ExpectSuccess(t, err)
	case <-time.After(10 * time.Second):
		sch.Halt()
		<-done
		t.Fatalf("scheduler did not stop")
	}

	c, err := sch.Core(0)
	test.DemandSuccess(t, err)
	return output.String(), c
}

func TestStep(t *testing.T) {
	out, c := run(t, "step 2\nset r4 #10\ncontinue\n", cpu.Config{Cores: 1}, origin)

	// the instruction at the breakpoint and the instruction after two steps
	test.ExpectEquality(t, strings.Contains(out, "02000000  38600005  li r3, 5"), true)
	test.ExpectEquality(t, strings.Contains(out, "02000008  7ca32214  add r5, r3, r4"), true)

	// the monitor did not stop at the intermediate step
	test.ExpectEquality(t, strings.Contains(out, "02000004  38800006"), false)

	test.ExpectEquality(t, c.State.GPR[5], uint32(15))
	test.ExpectEquality(t, c.SingleStep(), false)
}

func TestCommands(t *testing.T) {
	input := strings.Join([]string{
		"regs",
		"disasm 2000000 2",
		"mem 2000000 2",
		"break 2000008",
		"list",
		"drop 2000008",
		"list",
		"cores",
		"help step",
		"c",
	}, "\n")

	out, _ := run(t, input, cpu.Config{Cores: 2}, origin)

	for _, s := range []string{
		"cia=00000000 nia=02000000",
		"02000000  38600005  li r3, 5  *",
		"02000004  38800006  li r4, 6",
		"02000000: 38600005 38800006",
		"breakpoint added at 02000008",
		"02000008 (user)",
		"breakpoint dropped at 02000008",
		"core 0: halted *",
		"core 1: not started",
		"  STEP [n]",
	} {
		test.ExpectEquality(t, strings.Contains(out, s), true, s)
	}
}

func TestErrors(t *testing.T) {
	input := strings.Join([]string{
		"bogus",
		"mem 1000",
		"mem",
		"set r40 1",
		"set r3 xyz",
		"trace",
		"regs 1",
		"c",
	}, "\n")

	out, c := run(t, input, cpu.Config{Cores: 1}, origin)

	for _, s := range []string{
		"* monitor: unknown command (BOGUS)",
		"* monitor: 00001000 is not mapped",
		"* commandline: MEM: missing argument",
		"* monitor: unknown register (r40)",
		"* monitor: invalid value for r3 (xyz)",
		"* monitor: tracing is not enabled",
		"* monitor: REGS: too many arguments",
	} {
		test.ExpectEquality(t, strings.Contains(out, s), true, s)
	}

	// the program ran to completion after the errors
	test.ExpectEquality(t, c.State.GPR[5], uint32(11))
}

func TestTrace(t *testing.T) {
	out, _ := run(t, "step 2\ntrace\nc\n", cpu.Config{Cores: 1, TraceSize: 8}, origin)
	test.ExpectEquality(t, strings.Contains(out, "02000000 li r3, 5"), true)
	test.ExpectEquality(t, strings.Contains(out, "02000004 li r4, 6"), true)
}

func TestEndOfInput(t *testing.T) {
	// the scheduler is halted when there is no more input
	out, c := run(t, "", cpu.Config{Cores: 1}, origin+8)
	test.ExpectEquality(t, strings.Contains(out, "add r5, r3, r4"), true)
	test.ExpectEquality(t, c.State.GPR[5], uint32(0))
	test.ExpectEquality(t, c.State.GPR[4], uint32(6))
}
