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

package debugger

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/jetsetilly/espresso/curated"
	"github.com/jetsetilly/espresso/debugger/commandline"
	"github.com/jetsetilly/espresso/debugger/terminal"
	"github.com/jetsetilly/espresso/disassembly"
	"github.com/jetsetilly/espresso/hardware/cpu"
	"github.com/jetsetilly/espresso/hardware/cpu/instructions"
	"github.com/jetsetilly/espresso/logger"
)

// Monitor is an interactive command line interface to the cores of a
// Scheduler. It is entered when a core reaches a breakpoint.
type Monitor struct {
	sch  *cpu.Scheduler
	term terminal.Terminal
	log  *logger.Logger

	// cores hitting breakpoints at the same time enter the monitor one at a
	// time
	crit sync.Mutex

	// number of instructions still to be stepped before the monitor prompts
	// again, indexed by core
	steps map[int]int
}

// NewMonitor is the preferred method of initialisation for the Monitor type.
// The terminal should have been initialised.
func NewMonitor(sch *cpu.Scheduler, term terminal.Terminal, log *logger.Logger) *Monitor {
	return &Monitor{
		sch:   sch,
		term:  term,
		log:   log,
		steps: make(map[int]int),
	}
}

// Breakpoint has the signature of the cpu.Handlers Breakpoint field. It
// reads and runs commands until a command resumes the core.
func (m *Monitor) Breakpoint(c *cpu.Core, flags cpu.BreakpointFlags) error {
	m.crit.Lock()
	defer m.crit.Unlock()

	if flags == cpu.StepBreakpoint && m.steps[c.ID] > 1 {
		m.steps[c.ID]--
		return nil
	}
	delete(m.steps, c.ID)

	m.printInstruction(c)

	prompt := terminal.Prompt{
		Core:     c.ID,
		NIA:      c.State.NIA,
		Stepping: c.SingleStep(),
	}
	if flags&cpu.AnyBreakpoint != 0 {
		prompt.Reason = fmt.Sprintf("%s breakpoint", flags&cpu.AnyBreakpoint)
	}

	for {
		input, err := m.term.TermRead(prompt)
		if err != nil {
			if errors.Is(err, io.EOF) || curated.Is(err, terminal.UserInterrupt) {
				m.log.Logf(logger.Allow, "monitor", "core %d: halting (%v)", c.ID, err)
				m.sch.Halt()
				return nil
			}
			return err
		}

		tk := commandline.TokeniseInput(input)
		if tk.IsEnd() {
			continue
		}
		m.term.TermPrintLine(terminal.StyleEcho, tk.String())

		resume, err := m.command(c, tk)
		if err != nil {
			m.term.TermPrintLine(terminal.StyleError, err.Error())
			continue
		}
		if resume {
			return nil
		}
	}
}

// print multiline output
func (m *Monitor) print(style terminal.Style, s string) {
	for _, l := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		m.term.TermPrintLine(style, l)
	}
}

func (m *Monitor) printInstruction(c *cpu.Core) {
	nia := c.State.NIA
	if !m.sch.Memory().IsMapped(nia, 4) {
		m.term.TermPrintLine(terminal.StyleError, fmt.Sprintf("%08x is not mapped", nia))
		return
	}
	ins := instructions.Instruction(m.sch.Memory().Read32(nia))
	m.term.TermPrintLine(terminal.StyleCPUStep, fmt.Sprintf("%08x  %08x  %s", nia, uint32(ins), disassembly.Instruction(nia, ins)))
}
