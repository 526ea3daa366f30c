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

// Package disassembly renders instruction words as text.
//
// Rendering is driven entirely by the instruction definitions table. The
// operands of an instruction are the fields it writes, followed by the
// fields it reads, with marker fields omitted. Load and store instructions
// show the displacement and base register in the conventional d(rA) form.
//
// Simplified mnemonics (li, mr, blr, bne and so on) are used where the
// instructions package has an alias for the instruction. The fields that
// an alias constrains are not shown.
//
// For a single instruction the Instruction() function can be used. A
// Disassembly of a block of memory or a binary file is created with
// FromMemory() or FromBytes() and can be written to an io.Writer with
// Write(), or searched with Grep().
package disassembly
