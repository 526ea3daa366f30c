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
	"github.com/jetsetilly/espresso/hardware/cpu/instructions"
)

// Handler performs the effect of an instruction.
type Handler func(st *State, ins instructions.Instruction)

// Table is the dispatch table for the interpreter.
type Table [instructions.NumIDs]Handler

// NewTable is the preferred method of initialisation for the Table type.
func NewTable() *Table {
	t := &Table{}
	t.registerInteger()
	t.registerCondition()
	t.registerFloat()
	t.registerPaired()
	t.registerLoadStore()
	t.registerBranch()
	t.registerSystem()

	for id := range t {
		if t[id] == nil {
			t[id] = illegal
		}
	}

	return t
}

func (t *Table) register(id instructions.ID, h Handler) {
	t[id] = h
}

// Lookup returns the handler for the instruction ID.
func (t *Table) Lookup(id instructions.ID) Handler {
	if id < 0 || id >= instructions.NumIDs {
		return illegal
	}
	return t[id]
}

// Execute decodes and executes an instruction. The CIA and NIA fields of the
// State must have been set by the caller. Returns the definition of the
// instruction, or nil if the instruction was illegal.
func (t *Table) Execute(st *State, ins instructions.Instruction) *instructions.Definition {
	defn := instructions.Decode(ins)
	if defn == nil {
		illegal(st, ins)
		return nil
	}
	t[defn.ID](st, ins)
	return defn
}

// Step fetches the instruction at NIA and executes it. Returns the
// instruction word and its definition, which will be nil for an illegal
// instruction.
func (t *Table) Step(st *State) (instructions.Instruction, *instructions.Definition) {
	st.CIA = st.NIA
	st.NIA = st.CIA + 4
	ins := instructions.Instruction(st.Mem.Read32(st.CIA))
	return ins, t.Execute(st, ins)
}

func illegal(st *State, _ instructions.Instruction) {
	st.Event = IllegalInstruction
}
