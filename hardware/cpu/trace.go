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
	"io"
	"strings"

	"github.com/jetsetilly/espresso/disassembly"
	"github.com/jetsetilly/espresso/hardware/cpu/instructions"
	"github.com/jetsetilly/espresso/hardware/cpu/interpreter"
)

// TraceField is the value of an instruction field at the time the
// instruction was executed. For register fields the value is the content of
// the register.
type TraceField struct {
	Field instructions.Field
	Value uint64
}

func (f TraceField) String() string {
	return fmt.Sprintf("%s=%x", f.Field, f.Value)
}

// TraceEntry records the execution of one instruction.
type TraceEntry struct {
	CIA uint32
	Ins instructions.Instruction

	// the values of the fields read by the instruction, before execution
	Reads []TraceField

	// the values of the fields written by the instruction, after execution
	Writes []TraceField
}

func (e TraceEntry) String() string {
	s := strings.Builder{}
	fmt.Fprintf(&s, "%08x %-32s", e.CIA, disassembly.Instruction(e.CIA, e.Ins))
	for _, f := range e.Reads {
		fmt.Fprintf(&s, " %s", f)
	}
	if len(e.Writes) > 0 {
		s.WriteString(" ->")
		for _, f := range e.Writes {
			fmt.Fprintf(&s, " %s", f)
		}
	}
	return s.String()
}

// Trace is a ring buffer of the most recently executed instructions of a
// core. It is only used by the goroutine of the core and by handlers running
// on that goroutine.
type Trace struct {
	entries []TraceEntry
	next    int
	full    bool
}

func newTrace(size int) *Trace {
	return &Trace{
		entries: make([]TraceEntry, size),
	}
}

// Len returns the number of entries in the trace.
func (tr *Trace) Len() int {
	if tr.full {
		return len(tr.entries)
	}
	return tr.next
}

// Entries returns a copy of the entries in the trace, oldest first.
func (tr *Trace) Entries() []TraceEntry {
	if !tr.full {
		return append([]TraceEntry(nil), tr.entries[:tr.next]...)
	}
	e := make([]TraceEntry, 0, len(tr.entries))
	e = append(e, tr.entries[tr.next:]...)
	return append(e, tr.entries[:tr.next]...)
}

// Write the most recent n entries of the trace to io.Writer, oldest first.
// All entries are written if n is less than one.
func (tr *Trace) Write(output io.Writer, n int) error {
	e := tr.Entries()
	if n > 0 && n < len(e) {
		e = e[len(e)-n:]
	}
	for _, t := range e {
		if _, err := fmt.Fprintln(output, t); err != nil {
			return err
		}
	}
	return nil
}

// begin a new entry for the instruction about to be executed at cia. the
// fields and their slices are reused from the oldest entry.
func (tr *Trace) begin(st *interpreter.State, cia uint32, ins instructions.Instruction, defn *instructions.Definition) *TraceEntry {
	e := &tr.entries[tr.next]
	tr.next++
	if tr.next >= len(tr.entries) {
		tr.next = 0
		tr.full = true
	}

	e.CIA = cia
	e.Ins = ins
	e.Reads = e.Reads[:0]
	e.Writes = e.Writes[:0]

	if defn != nil {
		for _, f := range defn.Read {
			e.Reads = append(e.Reads, TraceField{Field: f, Value: fieldValue(st, ins, f)})
		}
	}

	return e
}

// end the entry after the instruction has been executed.
func (e *TraceEntry) end(st *interpreter.State, defn *instructions.Definition) {
	if defn == nil {
		return
	}
	for _, f := range defn.Write {
		if defn.Writes(e.Ins, f) {
			e.Writes = append(e.Writes, TraceField{Field: f, Value: fieldValue(st, e.Ins, f)})
		}
	}
}

// fieldValue returns the value of the field. for register fields this is
// the content of the register.
func fieldValue(st *interpreter.State, ins instructions.Instruction, f instructions.Field) uint64 {
	switch f {
	case instructions.RA, instructions.RB, instructions.RD, instructions.RS:
		return uint64(st.GPR[f.Value(ins)])
	case instructions.FRA, instructions.FRB, instructions.FRC, instructions.FRD, instructions.FRS:
		return st.FPR[f.Value(ins)].PS0
	case instructions.CRFD, instructions.CRFS:
		return uint64(st.CR.Field(f.Value(ins)))
	case instructions.CRBA, instructions.CRBB, instructions.CRBD:
		if st.CR.Bit(f.Value(ins)) {
			return 1
		}
		return 0
	case instructions.CR0:
		return uint64(st.CR.Field(0))
	case instructions.CR1:
		return uint64(st.CR.Field(1))
	case instructions.XERCA, instructions.XERSO, instructions.XEROV:
		return uint64(st.XER)
	case instructions.FPRF, instructions.FPSCR:
		return uint64(st.FPSCR)
	case instructions.LR:
		return uint64(st.LR)
	case instructions.CTR:
		return uint64(st.CTR)
	case instructions.MSR:
		return uint64(st.MSR)
	case instructions.PS:
		return st.FPR[ins.FRD()].PS1
	case instructions.RSRV:
		if st.Reserve {
			return 1
		}
		return 0
	}
	return uint64(f.Value(ins))
}
