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
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jetsetilly/espresso/curated"
	"github.com/jetsetilly/espresso/hardware/cpu/instructions"
	"github.com/jetsetilly/espresso/hardware/cpu/interpreter"
	"github.com/jetsetilly/espresso/hardware/cpu/jit"
	"github.com/jetsetilly/espresso/hardware/memory"
	"github.com/jetsetilly/espresso/logger"
)

// Handler is called on the goroutine of the core when an instruction raises
// an event. The CIA of the core is the address of the instruction and NIA
// is the address of the next instruction. The handler can change NIA to
// resume execution somewhere else.
//
// Returning an error stops the core.
type Handler func(c *Core, ins instructions.Instruction) error

// Handlers supplied to the Scheduler. A nil handler means the default
// behaviour, which for most events is to stop the core with an error.
type Handlers struct {
	// called with the interrupts being delivered. the interrupts are no
	// longer pending when the handler is called. the default is to ignore
	// the interrupt
	Interrupt func(c *Core, flags uint32) error

	// called before the instruction at the breakpoint is executed. the
	// core steps over the breakpoint when the handler returns. the default
	// is to continue
	Breakpoint func(c *Core, flags BreakpointFlags) error

	// called with the guest address of the access. the handler must change
	// NIA if the core is to continue
	Segfault func(c *Core, addr uint32) error

	IllegalInstruction Handler
	KernelCall         Handler
	SystemCall         Handler
	ProgramTrap        Handler
}

// Config for a new Scheduler.
type Config struct {
	Cores int

	// number of entries in the trace buffer of each core. tracing is
	// disabled if the value is zero
	TraceSize int

	// directory to write diagnostic files to when a core fails. no files are
	// written if the value is empty
	Diagnostics string
}

// Scheduler runs the cores of the system.
type Scheduler struct {
	log   *logger.Logger
	mem   *memory.Memory
	table *interpreter.Table
	jit   *jit.Compiler

	handlers    Handlers
	breakpoints breakpoints

	cores []*Core

	// the time base is zero at this time
	epoch time.Time

	traceSize   int
	diagnostics string

	crit    sync.Mutex
	group   *errgroup.Group
	halting atomic.Bool
}

// NewScheduler is the preferred method of initialisation for the Scheduler
// type.
func NewScheduler(cfg Config, mem *memory.Memory, table *interpreter.Table, cmp *jit.Compiler, handlers Handlers, log *logger.Logger) (*Scheduler, error) {
	sch := &Scheduler{
		log:         log,
		mem:         mem,
		table:       table,
		jit:         cmp,
		handlers:    handlers,
		epoch:       time.Now(),
		traceSize:   cfg.TraceSize,
		diagnostics: cfg.Diagnostics,
	}

	sch.cores = make([]*Core, max(cfg.Cores, 1))
	for i := range sch.cores {
		sch.cores[i] = newCore(sch, i)
	}

	sch.log.Logf(logger.Allow, "cpu", "%d cores, jit %s", len(sch.cores), cmp.Mode())

	return sch, nil
}

// Core returns the core with the index.
func (sch *Scheduler) Core(core int) (*Core, error) {
	if core < 0 || core >= len(sch.cores) {
		return nil, curated.Errorf(NoCore, core)
	}
	return sch.cores[core], nil
}

// Cores returns all cores.
func (sch *Scheduler) Cores() []*Core {
	return sch.cores
}

// Memory returns the memory used by all cores.
func (sch *Scheduler) Memory() *memory.Memory {
	return sch.mem
}

// SetEntryPoint sets the address at which the core starts. Only cores with
// an entry point are started by Start().
func (sch *Scheduler) SetEntryPoint(core int, addr uint32) error {
	c, err := sch.Core(core)
	if err != nil {
		return err
	}
	c.State.NIA = addr
	c.hasEntry = true
	return nil
}

// Start all cores that have an entry point. Each core runs on its own
// goroutine until it is stopped by an error or by Halt().
func (sch *Scheduler) Start() error {
	sch.crit.Lock()
	defer sch.crit.Unlock()

	if sch.group != nil {
		return curated.Errorf(AlreadyStarted)
	}

	sch.halting.Store(false)
	sch.group = &errgroup.Group{}

	for _, c := range sch.cores {
		if !c.hasEntry {
			continue
		}
		sch.group.Go(func() error {
			err := c.run()
			if err != nil {
				sch.log.Logf(logger.Allow, "cpu", "core %d: %v", c.ID, err)
			}
			return err
		})
	}

	return nil
}

// Join waits for all cores to stop. Returns the first error of any core.
func (sch *Scheduler) Join() error {
	sch.crit.Lock()
	g := sch.group
	sch.crit.Unlock()

	if g == nil {
		return nil
	}

	err := g.Wait()

	sch.crit.Lock()
	sch.group = nil
	sch.crit.Unlock()

	return err
}

// Halt stops all cores at their next instruction boundary. Cores waiting for
// an interrupt are woken. Halt does not wait for the cores to stop, use
// Join() for that.
func (sch *Scheduler) Halt() {
	sch.halting.Store(true)
	for _, c := range sch.cores {
		c.signal()
	}
}

// InvalidateInstructionCache must be called whenever guest code is changed.
func (sch *Scheduler) InvalidateInstructionCache(addr uint32, size uint32) {
	sch.jit.InvalidateInstructionCache(addr, size)
}
