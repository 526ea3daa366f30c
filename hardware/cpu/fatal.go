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
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/bradleyjkemp/memviz"

	"github.com/jetsetilly/espresso/curated"
	"github.com/jetsetilly/espresso/disassembly"
	"github.com/jetsetilly/espresso/hardware/cpu/instructions"
	"github.com/jetsetilly/espresso/hardware/cpu/interpreter"
	"github.com/jetsetilly/espresso/logger"
	"github.com/jetsetilly/espresso/paths"
)

// fatal is called with the value recovered from a panic on the goroutine of
// the core. memory faults are passed to the segfault handler. anything else
// is an internal error and stops the core.
func (c *Core) fatal(r any) error {
	st := c.State
	st.Event = interpreter.NoEvent

	if addr, ok := st.Mem.FaultAddress(r); ok {
		return c.segfault(addr)
	}

	err, ok := r.(error)
	if !ok {
		err = fmt.Errorf("%v", r)
	}
	if !curated.IsAny(err) {
		err = curated.Errorf(Fatal, c.ID, err)
	}

	c.sch.log.Logf(logger.Allow, "cpu", "core %d: %v", c.ID, err)
	if st.Mem.IsMapped(st.CIA, 4) {
		ins := instructions.Instruction(st.Mem.Read32(st.CIA))
		c.sch.log.Logf(logger.Allow, "cpu", "core %d: %08x %s", c.ID, st.CIA, disassembly.Instruction(st.CIA, ins))
	}
	for _, l := range strings.Split(st.CoreRegs.String(), "\n") {
		if l != "" {
			c.sch.log.Logf(logger.Allow, "cpu", "core %d: %s", c.ID, l)
		}
	}

	if c.sch.diagnostics != "" {
		if derr := c.writeDiagnostics(debug.Stack()); derr != nil {
			c.sch.log.Logf(logger.Allow, "cpu", "core %d: diagnostics: %v", c.ID, derr)
		}
	}

	return err
}

// writeDiagnostics writes a graph of the register file and the stack of the
// core goroutine to the diagnostics directory.
func (c *Core) writeDiagnostics(stack []byte) error {
	if err := os.MkdirAll(c.sch.diagnostics, 0o755); err != nil {
		return err
	}

	base := filepath.Join(c.sch.diagnostics, paths.UniqueFilename(fmt.Sprintf("core%d", c.ID), "fatal"))

	f, err := os.Create(base + ".dot")
	if err != nil {
		return err
	}
	defer f.Close()

	regs := c.State.CoreRegs
	memviz.Map(f, &regs)

	if c.trace != nil {
		t, err := os.Create(base + ".trace")
		if err != nil {
			return err
		}
		defer t.Close()
		if err := c.trace.Write(t, 0); err != nil {
			return err
		}
	}

	return os.WriteFile(base+".stack", stack, 0o644)
}
