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

package disassembly

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/espresso/hardware/cpu/instructions"
)

// Entry is a disassembled instruction.
type Entry struct {
	Address uint32
	Ins     instructions.Instruction

	// the definition of the instruction. will be nil if the instruction word
	// is not recognised
	Defn *instructions.Definition

	// the alias used for the operator. will be nil if the instruction has no
	// alias
	Alias *instructions.Alias

	// string representations of the entry
	Bytecode string
	Operator string
	Operands []string
}

// Operand returns the operands as a single comma separated string.
func (e *Entry) Operand() string {
	return strings.Join(e.Operands, ", ")
}

func (e *Entry) String() string {
	if len(e.Operands) == 0 {
		return e.Operator
	}
	return fmt.Sprintf("%s %s", e.Operator, e.Operand())
}

// Instruction returns the disassembly of a single instruction word. The
// address is used to calculate branch targets.
func Instruction(address uint32, ins instructions.Instruction) string {
	return Format(address, ins).String()
}

// Format creates an Entry for a single instruction word.
func Format(address uint32, ins instructions.Instruction) *Entry {
	e := &Entry{
		Address:  address,
		Ins:      ins,
		Defn:     instructions.Decode(ins),
		Bytecode: fmt.Sprintf("%08X", uint32(ins)),
	}

	if e.Defn == nil {
		e.Operator = ".long"
		e.Operands = []string{fmt.Sprintf("0x%08x", uint32(ins))}
		return e
	}

	e.Alias = instructions.FindAlias(e.Defn, ins)
	if e.Alias != nil {
		e.Operator = e.Alias.Name
		if e.Alias.CRField && ins.BI()>>2 != 0 {
			e.Operands = append(e.Operands, fmt.Sprintf("cr%d", ins.BI()>>2))
		}
	} else {
		e.Operator = e.Defn.Name
	}
	e.Operator += suffix(e.Defn, ins)

	disp := displacement(e.Defn)
	for _, f := range operandFields(e.Defn) {
		if e.Alias != nil && e.Alias.Hides(f) {
			continue
		}
		if f == disp {
			continue
		}
		o, ok := formatField(address, ins, f)
		if !ok {
			continue
		}
		if f == instructions.RA && disp != instructions.NoField {
			d, _ := formatField(address, ins, disp)
			o = fmt.Sprintf("%s(%s)", d, o)
		}
		e.Operands = append(e.Operands, o)
	}

	return e
}

// operandFields returns the fields to be shown as operands, in order.
func operandFields(defn *instructions.Definition) []instructions.Field {
	var f []instructions.Field
	add := func(fld instructions.Field) {
		if fld.IsMarker() {
			return
		}
		for _, g := range f {
			if g == fld {
				return
			}
		}
		f = append(f, fld)
	}

	// written fields that are also read are shown in read order
	for _, fld := range defn.Write {
		if !defn.Reads(fld) {
			add(fld)
		}
	}
	for _, fld := range defn.Read {
		add(fld)
	}
	return f
}

// suffix returns the characters appended to the operator for the flag bits
// that are set in the instruction.
func suffix(defn *instructions.Definition, ins instructions.Instruction) string {
	var s strings.Builder
	if defn.HasFlag(instructions.OE) && ins.OE() {
		s.WriteRune('o')
	}
	if defn.HasFlag(instructions.RC) && ins.RC() {
		s.WriteRune('.')
	}
	if defn.HasFlag(instructions.LK) && ins.LK() {
		s.WriteRune('l')
	}
	if defn.HasFlag(instructions.AA) && ins.AA() {
		s.WriteRune('a')
	}
	return s.String()
}

func signedValue(v int32) string {
	switch {
	case v < -9:
		return fmt.Sprintf("-0x%x", -int64(v))
	case v > 9:
		return fmt.Sprintf("0x%x", v)
	}
	return fmt.Sprintf("%d", v)
}

func unsignedValue(v uint32) string {
	if v > 9 {
		return fmt.Sprintf("0x%x", v)
	}
	return fmt.Sprintf("%d", v)
}

func addressValue(v uint32) string {
	return fmt.Sprintf("@%08X", v)
}

// formatField returns the text of a single operand. returns false if the
// field is never shown as an operand.
func formatField(cia uint32, ins instructions.Instruction, f instructions.Field) (string, bool) {
	switch f {
	case instructions.RA, instructions.RB, instructions.RD, instructions.RS:
		return fmt.Sprintf("r%d", f.Value(ins)), true
	case instructions.FRA, instructions.FRB, instructions.FRC, instructions.FRD, instructions.FRS:
		return fmt.Sprintf("f%d", f.Value(ins)), true
	case instructions.CRFD, instructions.CRFS:
		return fmt.Sprintf("crf%d", f.Value(ins)), true
	case instructions.D:
		return signedValue(ins.D()), true
	case instructions.SIMM:
		return signedValue(ins.SIMM()), true
	case instructions.QD:
		return signedValue(ins.QD()), true
	case instructions.UIMM, instructions.IMM:
		return unsignedValue(f.Value(ins)), true
	case instructions.SPR:
		return fmt.Sprintf("spr%d", ins.SPR()), true
	case instructions.TBR:
		return fmt.Sprintf("tbr%d", ins.TBR()), true
	case instructions.LI:
		target := uint32(ins.LI())
		if !ins.AA() {
			target += cia
		}
		return addressValue(target), true
	case instructions.BD:
		target := uint32(ins.BD())
		if !ins.AA() {
			target += cia
		}
		return addressValue(target), true
	case instructions.OPCD, instructions.XO1, instructions.XO2, instructions.XO3, instructions.XO4,
		instructions.AA, instructions.LK, instructions.OE, instructions.RC, instructions.Bit30,
		instructions.NoField:
		return "", false
	}

	if f.IsMarker() {
		return "", false
	}

	// remaining fields are small constants
	return fmt.Sprintf("%d", f.Value(ins)), true
}

// displacement returns the displacement field of an instruction that
// accesses memory at a displacement from a base register. returns NoField for
// all other instructions.
func displacement(defn *instructions.Definition) instructions.Field {
	switch defn.Category {
	case instructions.Load, instructions.Store, instructions.LoadFloat,
		instructions.StoreFloat, instructions.LoadPaired, instructions.StorePaired:
	default:
		return instructions.NoField
	}
	if defn.Reads(instructions.D) {
		return instructions.D
	}
	if defn.Reads(instructions.QD) {
		return instructions.QD
	}
	return instructions.NoField
}
