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

// Package cpu runs the processor cores of the emulated system. Each core is a
// goroutine locked to an OS thread. The goroutine fetches, decodes and
// executes guest instructions, either one at a time with the interpreter or
// a block at a time with the JIT compiler, until the scheduler is halted or
// the core meets an error.
//
// The Scheduler is created with NewScheduler() and is given the memory, the
// interpreter table, the JIT compiler and the logger to use. None of these
// are global and more than one scheduler can exist at the same time.
//
// Events raised by instructions (illegal instructions, kernel calls, system
// calls and program traps) are passed to the Handlers given to the
// scheduler. Handlers run on the goroutine of the core and can change any
// register of the core, including NIA. A handler can call guest functions
// with Core.Invoke().
//
// Interrupts can be raised on any core from any goroutine with
// Scheduler.Interrupt(). They are delivered to the interrupt handler at the
// next instruction boundary of the core, subject to the interrupt mask of the
// core. The alarm interrupt is raised by the core itself when the time base
// passes the deadline set by Core.SetNextAlarm().
//
// Breakpoints are shared by all cores. A core at a breakpoint is suspended
// while the breakpoint handler runs and then steps over the breakpoint.
//
// Panics on the goroutine of a core are recovered. Memory faults in guest
// memory are passed to the segfault handler and anything else stops the
// core. Other cores are not affected. The error is returned by
// Scheduler.Join().
package cpu
