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

// Package instructions describes the instruction set of the Espresso CPU.
//
// The Definitions table is the only description of the instruction set in
// the emulator. The decoder, the interpreter dispatch table, the JIT, the
// disassembler and the tracer all work from it.
//
// An Instruction is the 32 bit instruction word as it is found in guest
// memory (after byte order conversion). Fields of the instruction are
// extracted by the accessor functions, for example:
//
//	ins := instructions.Instruction(0x38600005)
//	ins.Opcd()  // 14
//	ins.RD()    // 3
//	ins.SIMM()  // 5
//
// Fields are also described by the Field type, which knows the bit range of
// each field. Bit ranges are given in the PowerPC convention where bit 0 is
// the most significant bit of the word.
//
// Decode() returns the Definition for an instruction word. Encode() is the
// inverse for the opcode fields only; operand fields of the returned word are
// zero.
package instructions
