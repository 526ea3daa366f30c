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
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/jetsetilly/espresso/curated"
	"github.com/jetsetilly/espresso/debugger/commandline"
	"github.com/jetsetilly/espresso/debugger/terminal"
	"github.com/jetsetilly/espresso/disassembly"
	"github.com/jetsetilly/espresso/hardware/cpu"
	"github.com/jetsetilly/espresso/hardware/cpu/instructions"
)

// Sentinal errors.
const (
	UnknownCommand   = "monitor: unknown command (%s)"
	TooManyArguments = "monitor: %s: too many arguments"
	UnknownRegister  = "monitor: unknown register (%s)"
	InvalidValue     = "monitor: invalid value for %s (%s)"
	NotMapped        = "monitor: %08x is not mapped"
	NoTrace          = "monitor: tracing is not enabled"
)

// the function returns true if the core should resume execution
type commandFunc func(m *Monitor, c *cpu.Core, tk *commandline.Tokens) (bool, error)

type command struct {
	name  string
	alias string
	args  string
	help  string
	fn    commandFunc
}

// defaults for commands with an optional count
const (
	defaultDisasm = 8
	defaultMem    = 4
	defaultTrace  = 16
	defaultLog    = 10
)

var commands []command

func init() {
	commands = []command{
		{"HELP", "H", "[command]", "list commands or describe a command", help},
		{"STEP", "S", "[n]", "execute n instructions and return to the monitor", step},
		{"CONTINUE", "C", "", "continue execution until the next breakpoint", cont},
		{"HALT", "Q", "", "stop all cores", halt},
		{"REGS", "R", "", "display the registers of the core", regs},
		{"SET", "", "<register> <value>", "set a register (r0-r31, f0-f31, lr, ctr, nia)", set},
		{"DISASM", "D", "[address] [n]", "disassemble n instructions", disasm},
		{"MEM", "M", "<address> [n]", "display n words of memory", mem},
		{"BREAK", "B", "<address>", "add a breakpoint", addBreak},
		{"DROP", "", "<address>", "remove a breakpoint", dropBreak},
		{"CLEAR", "", "", "remove all breakpoints added in the monitor", clearBreaks},
		{"LIST", "L", "", "list breakpoints", listBreaks},
		{"TRACE", "T", "[n]", "display the last n trace entries", trace},
		{"CORES", "", "", "display the state of all cores", cores},
		{"INTERRUPT", "", "<core> <flags>", "raise interrupts on a core", interrupt},
		{"LOG", "", "[n]", "display the last n log entries", showLog},
	}
}

func lookup(name string) (command, bool) {
	for _, cmd := range commands {
		if name == cmd.name || (cmd.alias != "" && name == cmd.alias) {
			return cmd, true
		}
	}
	return command{}, false
}

// command runs the command in the tokens.
func (m *Monitor) command(c *cpu.Core, tk *commandline.Tokens) (bool, error) {
	name, _ := tk.Get()
	cmd, ok := lookup(name)
	if !ok {
		return false, curated.Errorf(UnknownCommand, name)
	}

	resume, err := cmd.fn(m, c, tk)
	if err != nil {
		return false, err
	}
	if !tk.IsEnd() {
		return false, curated.Errorf(TooManyArguments, cmd.name)
	}
	return resume, nil
}

func help(m *Monitor, _ *cpu.Core, tk *commandline.Tokens) (bool, error) {
	if name, ok := tk.Get(); ok {
		cmd, ok := lookup(strings.ToUpper(name))
		if !ok {
			return false, curated.Errorf(UnknownCommand, name)
		}
		m.term.TermPrintLine(terminal.StyleHelp, strings.TrimSpace(fmt.Sprintf("%s %s", cmd.name, cmd.args)))
		m.term.TermPrintLine(terminal.StyleHelp, cmd.help)
		return false, nil
	}

	for _, cmd := range commands {
		n := cmd.name
		if cmd.alias != "" {
			n = fmt.Sprintf("%s (%s)", cmd.name, cmd.alias)
		}
		m.term.TermPrintLine(terminal.StyleHelp, fmt.Sprintf("%-15s %s", n, cmd.args))
	}
	return false, nil
}

func step(m *Monitor, c *cpu.Core, tk *commandline.Tokens) (bool, error) {
	n, err := tk.Count("STEP", 1)
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}
	m.steps[c.ID] = n
	c.SetSingleStep(true)
	return true, nil
}

func cont(_ *Monitor, c *cpu.Core, _ *commandline.Tokens) (bool, error) {
	c.SetSingleStep(false)
	return true, nil
}

func halt(m *Monitor, c *cpu.Core, _ *commandline.Tokens) (bool, error) {
	c.SetSingleStep(false)
	m.sch.Halt()
	return true, nil
}

func regs(m *Monitor, c *cpu.Core, _ *commandline.Tokens) (bool, error) {
	m.print(terminal.StyleInstrument, c.State.CoreRegs.String())
	return false, nil
}

func set(m *Monitor, c *cpu.Core, tk *commandline.Tokens) (bool, error) {
	reg, ok := tk.Get()
	if !ok {
		return false, curated.Errorf(commandline.MissingArgument, "SET")
	}
	reg = strings.ToLower(reg)

	val, ok := tk.Get()
	if !ok {
		return false, curated.Errorf(commandline.MissingArgument, "SET")
	}

	st := c.State

	if n, ok := registerNumber(reg, "f"); ok {
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return false, curated.Errorf(InvalidValue, reg, val)
		}
		st.FPR[n].SetFloat64(f)
		return false, nil
	}

	v, err := commandline.ParseAddress(val)
	if err != nil {
		return false, curated.Errorf(InvalidValue, reg, val)
	}

	if n, ok := registerNumber(reg, "r"); ok {
		st.GPR[n] = v
		return false, nil
	}

	switch reg {
	case "lr":
		st.LR = v
	case "ctr":
		st.CTR = v
	case "nia":
		st.NIA = v
	default:
		return false, curated.Errorf(UnknownRegister, reg)
	}
	return false, nil
}

// registerNumber parses register names of the form r0 to r31.
func registerNumber(reg string, prefix string) (int, bool) {
	s, ok := strings.CutPrefix(reg, prefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 31 {
		return 0, false
	}
	return n, true
}

func disasm(m *Monitor, c *cpu.Core, tk *commandline.Tokens) (bool, error) {
	addr := c.State.NIA
	if !tk.IsEnd() {
		var err error
		addr, err = tk.Address("DISASM")
		if err != nil {
			return false, err
		}
	}
	n, err := tk.Count("DISASM", defaultDisasm)
	if err != nil {
		return false, err
	}

	mem := m.sch.Memory()
	for range n {
		if !mem.IsMapped(addr, 4) {
			return false, curated.Errorf(NotMapped, addr)
		}

		ins := instructions.Instruction(mem.Read32(addr))
		s := fmt.Sprintf("%08x  %08x  %s", addr, uint32(ins), disassembly.Instruction(addr, ins))

		style := terminal.StyleDisasm
		if addr == c.State.NIA {
			style = terminal.StyleCPUStep
		}
		if m.sch.HasBreakpoint(addr) {
			s = fmt.Sprintf("%s  *", s)
		}
		m.term.TermPrintLine(style, s)

		addr += 4
	}

	return false, nil
}

func mem(m *Monitor, _ *cpu.Core, tk *commandline.Tokens) (bool, error) {
	addr, err := tk.Address("MEM")
	if err != nil {
		return false, err
	}
	n, err := tk.Count("MEM", defaultMem)
	if err != nil {
		return false, err
	}

	addr &^= 3
	mem := m.sch.Memory()

	s := strings.Builder{}
	for i := range n {
		a := addr + uint32(i*4)
		if !mem.IsMapped(a, 4) {
			return false, curated.Errorf(NotMapped, a)
		}
		if i%4 == 0 {
			if i > 0 {
				m.term.TermPrintLine(terminal.StyleFeedback, s.String())
				s.Reset()
			}
			fmt.Fprintf(&s, "%08x:", a)
		}
		fmt.Fprintf(&s, " %08x", mem.Read32(a))
	}
	if s.Len() > 0 {
		m.term.TermPrintLine(terminal.StyleFeedback, s.String())
	}

	return false, nil
}

func addBreak(m *Monitor, _ *cpu.Core, tk *commandline.Tokens) (bool, error) {
	addr, err := tk.Address("BREAK")
	if err != nil {
		return false, err
	}
	m.sch.AddBreakpoint(addr, cpu.UserBreakpoint)
	m.term.TermPrintLine(terminal.StyleFeedback, fmt.Sprintf("breakpoint added at %08x", addr))
	return false, nil
}

func dropBreak(m *Monitor, _ *cpu.Core, tk *commandline.Tokens) (bool, error) {
	addr, err := tk.Address("DROP")
	if err != nil {
		return false, err
	}
	m.sch.RemoveBreakpoint(addr, cpu.UserBreakpoint)
	m.term.TermPrintLine(terminal.StyleFeedback, fmt.Sprintf("breakpoint dropped at %08x", addr))
	return false, nil
}

func clearBreaks(m *Monitor, _ *cpu.Core, _ *commandline.Tokens) (bool, error) {
	m.sch.ClearBreakpoints(cpu.UserBreakpoint)
	m.term.TermPrintLine(terminal.StyleFeedback, "breakpoints cleared")
	return false, nil
}

func listBreaks(m *Monitor, _ *cpu.Core, _ *commandline.Tokens) (bool, error) {
	bp := m.sch.Breakpoints()
	if len(bp) == 0 {
		m.term.TermPrintLine(terminal.StyleFeedback, "no breakpoints")
		return false, nil
	}
	for _, addr := range slices.Sorted(maps.Keys(bp)) {
		m.term.TermPrintLine(terminal.StyleFeedback, fmt.Sprintf("%08x (%s)", addr, bp[addr]))
	}
	return false, nil
}

func trace(m *Monitor, c *cpu.Core, tk *commandline.Tokens) (bool, error) {
	n, err := tk.Count("TRACE", defaultTrace)
	if err != nil {
		return false, err
	}

	tr := c.Trace()
	if tr == nil {
		return false, curated.Errorf(NoTrace)
	}
	if tr.Len() == 0 {
		m.term.TermPrintLine(terminal.StyleFeedback, "trace is empty")
		return false, nil
	}

	s := strings.Builder{}
	if err := tr.Write(&s, n); err != nil {
		return false, err
	}
	m.print(terminal.StyleFeedback, s.String())

	return false, nil
}

func cores(m *Monitor, c *cpu.Core, _ *commandline.Tokens) (bool, error) {
	for _, o := range m.sch.Cores() {
		s := o.String()
		if p := o.PendingInterrupts(); p != 0 {
			s = fmt.Sprintf("%s (pending interrupts %08x)", s, p)
		}
		if o == c {
			s = fmt.Sprintf("%s *", s)
		}
		m.term.TermPrintLine(terminal.StyleInstrument, s)
	}
	return false, nil
}

func interrupt(m *Monitor, _ *cpu.Core, tk *commandline.Tokens) (bool, error) {
	core, err := tk.Count("INTERRUPT", -1)
	if err != nil {
		return false, err
	}
	if core < 0 {
		return false, curated.Errorf(commandline.MissingArgument, "INTERRUPT")
	}
	flags, err := tk.Address("INTERRUPT")
	if err != nil {
		return false, err
	}
	return false, m.sch.Interrupt(core, flags)
}

func showLog(m *Monitor, _ *cpu.Core, tk *commandline.Tokens) (bool, error) {
	n, err := tk.Count("LOG", defaultLog)
	if err != nil {
		return false, err
	}
	s := strings.Builder{}
	m.log.Tail(&s, n)
	if s.Len() == 0 {
		m.term.TermPrintLine(terminal.StyleFeedback, "log is empty")
		return false, nil
	}
	m.print(terminal.StyleLog, s.String())
	return false, nil
}
