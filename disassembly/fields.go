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

import "fmt"

type widths struct {
	bytecode int
	address  int
	operator int
	operand  int
}

type format struct {
	bytecode string
	address  string
	operator string
	operand  string
}

type fields struct {
	widths widths
	fmt    format
}

// update width and formatting information for entry fields.
func (fld *fields) update(e *Entry) {
	fld.widths.bytecode = max(fld.widths.bytecode, len(e.Bytecode))
	fld.widths.address = 8
	fld.widths.operator = max(fld.widths.operator, len(e.Operator))
	fld.widths.operand = max(fld.widths.operand, len(e.Operand()))

	fld.fmt.bytecode = fmt.Sprintf("%%%ds", fld.widths.bytecode)
	fld.fmt.address = fmt.Sprintf("%%0%dX", fld.widths.address)
	fld.fmt.operator = fmt.Sprintf("%%-%ds", fld.widths.operator)
	fld.fmt.operand = fmt.Sprintf("%%-%ds", fld.widths.operand)
}

// Field identifies which part of the disassembly entry is of interest.
type Field int

// List of valid fields.
const (
	FldBytecode Field = iota
	FldAddress
	FldOperator
	FldOperand
)

// GetField returns the formatted field from the specified Entry. The field
// is padded to the width of the widest entry in the disassembly.
func (dsm *Disassembly) GetField(field Field, e *Entry) string {
	switch field {
	case FldBytecode:
		return fmt.Sprintf(dsm.fields.fmt.bytecode, e.Bytecode)
	case FldAddress:
		return fmt.Sprintf(dsm.fields.fmt.address, e.Address)
	case FldOperator:
		return fmt.Sprintf(dsm.fields.fmt.operator, e.Operator)
	case FldOperand:
		return fmt.Sprintf(dsm.fields.fmt.operand, e.Operand())
	}
	return ""
}
