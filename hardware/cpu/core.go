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

package cpu

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync/atomic"

	"github.com/jetsetilly/espresso/assert"
	"github.com/jetsetilly/espresso/curated"
	"github.com/jetsetilly/espresso/hardware/cpu/instructions"
	"github.com/jetsetilly/espresso/hardware/cpu/interpreter"
	"github.com/jetsetilly/espresso/hardware/cpu/jit"
	"github.com/jetsetilly/espresso/logger"
)

// CoreState describes what a core is doing.
type CoreState int32

// List of valid CoreState values.
const (
	NotStarted CoreState = iota
	Running

	// the core is running an interrupt handler
	Interrupted

	// the core is waiting for an interrupt or is suspended at a breakpoint
	Halted

	Stopped
)

func (s CoreState) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Running:
		return "running"
	case Interrupted:
		return "interrupted"
	case Halted:
		return "halted"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// Core is one processor core. Each core is run by its own goroutine and the
// register file must only be touched by that goroutine, or by handlers
// running on it.
type Core struct {
	ID    int
	State *interpreter.State

	sch *Scheduler

	state      atomic.Int32
	interrupts atomic.Uint32
	mask       atomic.Uint32
	nextAlarm  atomic.Uint64

	// woken by Interrupt(), SetInterruptMask(), SetNextAlarm() and Halt()
	wake chan struct{}

	// the breakpoint at this address is not taken. set when a breakpoint
	// handler returns so that execution can continue past the breakpoint
	stepOver   bool
	stepOverPC uint32

	// the breakpoint handler is called before every instruction
	singleStep bool

	// the core is only started if it has an entry point
	hasEntry bool

	trace *Trace

	// the goroutine running the core
	owner assert.Owner
}

func newCore(sch *Scheduler, id int) *Core {
	c := &Core{
		ID:  id,
		sch: sch,
		State: &interpreter.State{
			Mem:      sch.mem,
			Timebase: sch.Timebase,
		},
		wake: make(chan struct{}, 1),
	}
	c.State.PIR = uint32(id)
	c.mask.Store(InterruptMask)
	if sch.traceSize > 0 {
		c.trace = newTrace(sch.traceSize)
	}
	return c
}

func (c *Core) String() string {
	return fmt.Sprintf("core %d: %s", c.ID, c.CoreState())
}

// CoreState returns the current state of the core.
func (c *Core) CoreState() CoreState {
	return CoreState(c.state.Load())
}

func (c *Core) setState(s CoreState) {
	c.state.Store(int32(s))
}

// signal the core without blocking. the channel is buffered so a signal sent
// while the core is running is seen by the next wait.
func (c *Core) signal() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// Trace returns the trace buffer of the core. Returns nil if tracing is not
// enabled.
func (c *Core) Trace() *Trace {
	return c.trace
}

// run is the goroutine of the core.
func (c *Core) run() (err error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	c.owner.Claim()
	defer c.owner.Release()

	// memory faults in guest code are recovered by the core as access
	// violations
	defer debug.SetPanicOnFault(debug.SetPanicOnFault(true))

	c.setState(Running)
	defer c.setState(Stopped)

	c.sch.log.Logf(logger.Allow, "cpu", "core %d: starting at %08x", c.ID, c.State.NIA)

	for !c.sch.halting.Load() {
		if err := c.protect(c.step); err != nil {
			return err
		}
	}

	return nil
}

// protect calls the function and converts panics into errors.
func (c *Core) protect(f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = c.fatal(r)
		}
	}()
	return f()
}

// step executes one instruction or one compiled block. interrupts and
// breakpoints are handled before execution.
func (c *Core) step() error {
	st := c.State

	c.checkAlarm()
	if c.deliverable() != 0 {
		if err := c.deliverInterrupts(); err != nil {
			return err
		}
	}

	if bp := c.sch.breakpoints.load(); len(bp) > 0 || c.singleStep {
		skip := c.stepOver && c.stepOverPC == st.NIA
		c.stepOver = false
		flags := bp[st.NIA]
		if c.singleStep {
			flags |= StepBreakpoint
		}
		if flags != 0 && !skip {
			if err := c.breakpoint(flags); err != nil {
				return err
			}

			// the handler may have halted the scheduler or moved NIA
			return nil
		}
	}

	if !st.Mem.IsMapped(st.NIA, 4) {
		return c.segfault(st.NIA)
	}

	if c.interpreting() {
		c.interpret()
	} else {
		c.sch.jit.Execute(st)
	}

	if st.Event != interpreter.NoEvent {
		ev := st.Event
		st.Event = interpreter.NoEvent
		return c.dispatch(ev)
	}

	return nil
}

// interpreting returns true if the next instruction should be executed by
// the interpreter rather than the JIT.
func (c *Core) interpreting() bool {
	return c.sch.jit.Mode() == jit.Disabled || c.trace != nil || c.singleStep || len(c.sch.breakpoints.load()) > 0
}

// SetSingleStep causes the breakpoint handler to be called before every
// instruction, with the StepBreakpoint flag. It must only be called on the
// goroutine of the core, ie. from a handler.
func (c *Core) SetSingleStep(on bool) {
	if !c.owner.Check() {
		panic(curated.Errorf(WrongGoroutine, c.ID, "SetSingleStep"))
	}
	c.singleStep = on
}

// SingleStep returns true if the core is single stepping.
func (c *Core) SingleStep() bool {
	return c.singleStep
}

func (c *Core) interpret() {
	st := c.State
	if c.trace == nil {
		c.sch.table.Step(st)
		return
	}

	st.CIA = st.NIA
	st.NIA = st.CIA + 4
	ins := instructions.Instruction(st.Mem.Read32(st.CIA))
	defn := instructions.Decode(ins)
	e := c.trace.begin(st, st.CIA, ins, defn)
	c.sch.table.Execute(st, ins)
	e.end(st, defn)
}

func (c *Core) deliverInterrupts() error {
	flags := c.deliverable()
	c.interrupts.And(^flags)

	if c.sch.handlers.Interrupt == nil {
		return nil
	}

	c.setState(Interrupted)
	defer c.setState(Running)

	return c.sch.handlers.Interrupt(c, flags)
}

func (c *Core) breakpoint(flags BreakpointFlags) error {
	c.setState(Halted)
	defer c.setState(Running)

	// the latch is set after the handler because the handler may call
	// Invoke(), which steps the core
	pc := c.State.NIA
	defer func() {
		c.stepOver = true
		c.stepOverPC = pc
	}()

	if c.sch.handlers.Breakpoint == nil {
		return nil
	}
	return c.sch.handlers.Breakpoint(c, flags)
}

// segfault is called when the core accesses unmapped memory.
func (c *Core) segfault(addr uint32) error {
	if c.sch.handlers.Segfault != nil {
		return c.sch.handlers.Segfault(c, addr)
	}
	return curated.Errorf(AccessViolation, addr, c.State.CIA)
}

// dispatch an event raised by an instruction to its handler.
func (c *Core) dispatch(ev interpreter.Event) error {
	st := c.State
	ins := instructions.Instruction(st.Mem.Read32(st.CIA))

	var h Handler
	switch ev {
	case interpreter.IllegalInstruction:
		h = c.sch.handlers.IllegalInstruction
		if h == nil {
			return curated.Errorf(IllegalInstruction, uint32(ins), st.CIA)
		}
	case interpreter.KernelCall:
		h = c.sch.handlers.KernelCall
	case interpreter.SystemCall:
		h = c.sch.handlers.SystemCall
	case interpreter.ProgramTrap:
		h = c.sch.handlers.ProgramTrap
	}

	if h == nil {
		return curated.Errorf(Unhandled, ev, st.CIA)
	}

	return h(c, ins)
}
