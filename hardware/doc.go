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

// Package hardware is the base package for the emulation of the Espresso
// processor and its address space. It contains no code itself.
//
// The memory package reserves the guest address space and maps the host
// pages that back it. The cpu package runs the cores over that memory, with
// the interpreter and jit sub-packages providing the two execution engines.
// The fpu and bits packages are helpers for the instruction implementations.
//
// The preferences package collects the user preferences for all of the
// above.
package hardware
