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
	"github.com/jetsetilly/espresso/hardware/cpu/registers"
	"github.com/jetsetilly/espresso/hardware/memory"
)

// Event is raised by a handler when the core needs to act on the result of
// the instruction.
type Event int

// List of valid Event values.
const (
	NoEvent Event = iota

	// the instruction word is not recognised or the instruction refers to
	// an unsupported SPR
	IllegalInstruction

	// kc instruction. the kernel call number is in the instruction word
	KernelCall

	// sc instruction
	SystemCall

	// trap condition of a tw or twi instruction was met
	ProgramTrap
)

func (ev Event) String() string {
	switch ev {
	case NoEvent:
		return "none"
	case IllegalInstruction:
		return "illegal instruction"
	case KernelCall:
		return "kernel call"
	case SystemCall:
		return "system call"
	case ProgramTrap:
		return "program trap"
	}
	return "unknown event"
}

// State is everything an instruction can read or change.
type State struct {
	registers.CoreRegs

	Mem *memory.Memory

	// source of the time base register. if the field is nil the time base
	// is always zero
	Timebase func() uint64

	// event raised by the most recent instruction. the core must clear the
	// event once it has been handled
	Event Event
}

func (st *State) timebase() uint64 {
	if st.Timebase == nil {
		return 0
	}
	return st.Timebase()
}

// updateCR0 sets field 0 of the condition register from a result.
func (st *State) updateCR0(v uint32) {
	var c uint32
	switch {
	case v == 0:
		c = registers.EQ
	case int32(v) < 0:
		c = registers.LT
	default:
		c = registers.GT
	}
	if st.XER.SO() {
		c |= registers.SO
	}
	st.CR.SetField(0, c)
}

// updateCR1 copies the exception summary bits of the FPSCR into field 1 of
// the condition register.
func (st *State) updateCR1() {
	st.CR.SetField(1, st.FPSCR.CR1())
}
