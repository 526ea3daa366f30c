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

package instructions

import (
	"fmt"
	"slices"
)

// Constraint is a requirement on the value of a field. An instruction word
// matches a Definition if it satisfies all of the Definition's constraints.
type Constraint struct {
	Field Field
	Value uint32
}

// Match returns true if the instruction satisfies the constraint.
func (c Constraint) Match(ins Instruction) bool {
	return c.Field.Value(ins) == c.Value
}

// Definition defines each instruction in the instruction set; one per
// instruction.
type Definition struct {
	ID       ID
	Name     string
	Category Category

	// constraints on the opcode fields of the instruction. the first
	// constraint is always on the primary opcode
	Opcode []Constraint

	// fields written and read by the instruction. fields that are both
	// written and read appear in both lists. markers are used for implicit
	// operands
	Write []Field
	Read  []Field

	// fields that modify the behaviour of the instruction, eg. the OE and
	// RC bits
	Flags []Field

	FullName string
}

func (defn Definition) String() string {
	if defn.Name == "" {
		return "illegal instruction"
	}
	return fmt.Sprintf("%s [%s] (%s)", defn.Name, defn.Category, defn.FullName)
}

// Writes returns true if the instruction writes to the field. The CR0 and CR1
// markers are reported for instructions that have the RC flag if the RC bit
// of the instruction is set.
func (defn Definition) Writes(ins Instruction, f Field) bool {
	if slices.Contains(defn.Write, f) {
		return true
	}
	if f == CR0 || f == CR1 {
		if slices.Contains(defn.Flags, RC) && ins.RC() {
			return f == defn.recordField()
		}
	}
	if f == XEROV || f == XERSO {
		if slices.Contains(defn.Flags, OE) && ins.OE() {
			return true
		}
	}
	return false
}

// Reads returns true if the field is in the read list of the definition.
func (defn Definition) Reads(f Field) bool {
	return slices.Contains(defn.Read, f)
}

// HasFlag returns true if the field is one of the definition's flags.
func (defn Definition) HasFlag(f Field) bool {
	return slices.Contains(defn.Flags, f)
}

// the record form of floating point instructions updates CR1. all other
// instructions update CR0.
func (defn Definition) recordField() Field {
	switch defn.Category {
	case Float, FloatStatus, Paired:
		return CR1
	}
	return CR0
}

// Match returns true if the instruction satisfies every opcode constraint of
// the definition.
func (defn Definition) Match(ins Instruction) bool {
	for _, c := range defn.Opcode {
		if !c.Match(ins) {
			return false
		}
	}
	return len(defn.Opcode) > 0
}

// Branch returns true if the instruction can change the flow of execution.
// Such instructions end a JIT block.
func (defn Definition) Branch() bool {
	switch defn.ID {
	case B, Bc, Bcctr, Bclr, Rfi, Kc, Sc, Tw, Twi:
		return true
	}
	return false
}

// Lookup returns the Definition for the ID. Lookup returns the illegal
// instruction definition for an ID that is out of range.
func Lookup(id ID) *Definition {
	if id < 0 || id >= NumIDs {
		return &definitions[Illegal]
	}
	return &definitions[id]
}

// Definitions returns every legal Definition in ID order.
func Definitions() []*Definition {
	d := make([]*Definition, 0, NumIDs-1)
	for i := Illegal + 1; i < NumIDs; i++ {
		d = append(d, &definitions[i])
	}
	return d
}

// ByName returns the definition with the name. Names of record forms (eg.
// "add.") are not recognised, with the exception of "addic." "andi." "andis."
// and "stwcx." which have their own definitions.
func ByName(name string) (*Definition, bool) {
	for i := range definitions {
		if definitions[i].Name == name && i != int(Illegal) {
			return &definitions[i], true
		}
	}
	return nil, false
}

func fl(f ...Field) []Field {
	return f
}

func op(opcd uint32, c ...Constraint) []Constraint {
	return append([]Constraint{{OPCD, opcd}}, c...)
}

func xo1(v uint32) Constraint { return Constraint{XO1, v} }
func xo2(v uint32) Constraint { return Constraint{XO2, v} }
func xo3(v uint32) Constraint { return Constraint{XO3, v} }
func xo4(v uint32) Constraint { return Constraint{XO4, v} }

func is(f Field, v uint32) Constraint { return Constraint{f, v} }
