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

// Package jit translates runs of guest instructions into host code.
//
// Translation is written once against the Emitter interface. There are two
// backends: the closure backend, which is available everywhere and turns
// every instruction into a specialised Go closure; and the native backend,
// which assembles x86-64 machine code into an executable arena and is only
// available on linux/amd64.
//
// Only a small number of instructions have a template. Everything else is a
// call-out to the interpreter handler for the instruction, so the result of
// a block is always identical to the result of the interpreter executing the
// same instructions. The Verify mode checks this for every templated
// instruction as it is executed.
//
// Compiled blocks are kept in a cache indexed by guest address. Lookups do
// not take a lock. A block is never changed once it is in the cache; if the
// guest code changes then the blocks must be invalidated with
// InvalidateInstructionCache().
package jit
