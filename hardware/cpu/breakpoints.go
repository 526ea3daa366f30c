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
	"maps"
	"strings"
	"sync"
	"sync/atomic"
)

// BreakpointFlags says who added a breakpoint.
type BreakpointFlags uint32

// List of valid BreakpointFlags.
const (
	// breakpoint used by the system. for example, to stop at the entry point
	// of a module
	SystemBreakpoint BreakpointFlags = 1 << iota

	// breakpoint added by the user of the monitor
	UserBreakpoint

	// the core is single stepping. never stored in the breakpoint list
	StepBreakpoint

	AnyBreakpoint = SystemBreakpoint | UserBreakpoint
)

func (f BreakpointFlags) String() string {
	var s []string
	if f&SystemBreakpoint != 0 {
		s = append(s, "system")
	}
	if f&UserBreakpoint != 0 {
		s = append(s, "user")
	}
	if f&StepBreakpoint != 0 {
		s = append(s, "step")
	}
	if len(s) == 0 {
		return "none"
	}
	return strings.Join(s, "+")
}

// breakpoints are read by every core before every instruction so the list
// is replaced rather than changed. changes are serialised.
type breakpoints struct {
	crit sync.Mutex
	list atomic.Pointer[map[uint32]BreakpointFlags]
}

func (bp *breakpoints) load() map[uint32]BreakpointFlags {
	if m := bp.list.Load(); m != nil {
		return *m
	}
	return nil
}

func (bp *breakpoints) update(f func(m map[uint32]BreakpointFlags)) {
	bp.crit.Lock()
	defer bp.crit.Unlock()

	m := maps.Clone(bp.load())
	if m == nil {
		m = make(map[uint32]BreakpointFlags)
	}
	f(m)
	bp.list.Store(&m)
}

// AddBreakpoint adds a breakpoint at the address. Flags are added to any
// breakpoint that already exists at the address. Only the flags in
// AnyBreakpoint are stored.
func (sch *Scheduler) AddBreakpoint(addr uint32, flags BreakpointFlags) {
	flags &= AnyBreakpoint
	if flags == 0 {
		return
	}
	sch.breakpoints.update(func(m map[uint32]BreakpointFlags) {
		m[addr] |= flags
	})
}

// RemoveBreakpoint removes the flags from the breakpoint at the address. The
// breakpoint is removed completely when it has no flags.
func (sch *Scheduler) RemoveBreakpoint(addr uint32, flags BreakpointFlags) {
	sch.breakpoints.update(func(m map[uint32]BreakpointFlags) {
		f := m[addr] &^ flags
		if f == 0 {
			delete(m, addr)
		} else {
			m[addr] = f
		}
	})
}

// ClearBreakpoints removes the flags from every breakpoint.
func (sch *Scheduler) ClearBreakpoints(flags BreakpointFlags) {
	sch.breakpoints.update(func(m map[uint32]BreakpointFlags) {
		for addr, f := range m {
			f &^= flags
			if f == 0 {
				delete(m, addr)
			} else {
				m[addr] = f
			}
		}
	})
}

// HasBreakpoint returns true if there is a breakpoint of any kind at the
// address.
func (sch *Scheduler) HasBreakpoint(addr uint32) bool {
	_, ok := sch.breakpoints.load()[addr]
	return ok
}

// Breakpoints returns a copy of all breakpoints.
func (sch *Scheduler) Breakpoints() map[uint32]BreakpointFlags {
	return maps.Clone(sch.breakpoints.load())
}
