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

// the decoder groups definitions by primary opcode. the definitions in each
// group are in ID order.
var decoder = func() [64][]*Definition {
	var groups [64][]*Definition
	for i := Illegal + 1; i < NumIDs; i++ {
		defn := &definitions[i]
		opcd := defn.Opcode[0].Value
		groups[opcd] = append(groups[opcd], defn)
	}
	return groups
}()

// every opcode constraint in the table lies in the primary opcode or in the
// low eleven bits of the instruction word. the quick table is indexed by
// those seventeen bits
const quickBits = 11

var quick = func() []uint16 {
	q := make([]uint16, 64<<quickBits)
	for opcd := range uint32(64) {
		for low := range uint32(1 << quickBits) {
			ins := Instruction(opcd<<26 | low)
			if defn := match(ins); defn != nil {
				q[opcd<<quickBits|low] = uint16(defn.ID)
			}
		}
	}
	return q
}()

func match(ins Instruction) *Definition {
	for _, defn := range decoder[ins.Opcd()] {
		if defn.Match(ins) {
			return defn
		}
	}
	return nil
}

// Decode returns the Definition for the instruction word. Returns nil if the
// instruction is not recognised.
func Decode(ins Instruction) *Definition {
	id := ID(quick[uint32(ins)>>26<<quickBits|uint32(ins)&(1<<quickBits-1)])
	if id == Illegal {
		return nil
	}
	return &definitions[id]
}

// DecodeID is the same as Decode() but returns the ID of the definition.
// Returns Illegal if the instruction is not recognised.
func DecodeID(ins Instruction) ID {
	if defn := Decode(ins); defn != nil {
		return defn.ID
	}
	return Illegal
}

// Encode returns the instruction word with the opcode fields for the
// instruction set. All other fields are zero.
func Encode(id ID) Instruction {
	var ins Instruction
	for _, c := range Lookup(id).Opcode {
		ins = c.Field.Insert(ins, c.Value)
	}
	return ins
}

// IsA returns true if the instruction word satisfies the opcode constraints
// of the instruction.
func IsA(id ID, ins Instruction) bool {
	return Lookup(id).Match(ins)
}
