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
	"io"
	"strings"
)

// WriteAttr controls what is printed by the Write*() functions.
type WriteAttr struct {
	Bytecode bool

	// mark the entry at this address with an arrow. zero for no marker
	Marker uint32
}

// Write the entire disassembly to io.Writer.
func (dsm *Disassembly) Write(output io.Writer, attr WriteAttr) error {
	for _, e := range dsm.Entries {
		if err := dsm.WriteLine(output, attr, e); err != nil {
			return err
		}
	}
	return nil
}

// WriteLine writes a single entry to io.Writer.
func (dsm *Disassembly) WriteLine(output io.Writer, attr WriteAttr, e *Entry) error {
	if e == nil {
		return nil
	}

	var s strings.Builder

	if attr.Marker != 0 {
		if e.Address == attr.Marker {
			s.WriteString("> ")
		} else {
			s.WriteString("  ")
		}
	}

	s.WriteString(dsm.GetField(FldAddress, e))
	s.WriteString(" ")
	if attr.Bytecode {
		s.WriteString(dsm.GetField(FldBytecode, e))
		s.WriteString(" ")
	}
	s.WriteString(dsm.GetField(FldOperator, e))
	s.WriteString(" ")
	s.WriteString(e.Operand())

	_, err := fmt.Fprintln(output, strings.TrimRight(s.String(), " "))
	return err
}
