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

// Package interpreter executes single instructions against a State.
//
// The dispatch Table is an array of Handler functions indexed by
// instructions.ID. It is created with NewTable() and there is no package
// level table; the scheduler and the JIT are handed the Table they should
// use.
//
// A handler performs the complete effect of one instruction. Handlers never
// return an error. Conditions that the core must deal with (illegal
// instructions, system calls and traps) are raised by setting the Event
// field of the State. Access to unmapped memory faults on the host and is
// recovered by the core.
//
// Floating point results are computed by the fpu package, which rounds in
// software according to the rounding mode in the FPSCR.
package interpreter
