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

// Package memory implements the guest address space. The whole 32 bit address
// space is reserved as a single block of host memory with no access
// permissions. The areas listed in the memorymap package are then made
// readable and writable.
//
// Guest address A is host address base+A. This means a guest pointer can be
// converted to a host pointer with a single addition, and back again with a
// subtraction. The Translate() and Untranslate() functions do exactly that.
//
// The guest is big-endian. All typed accessors in this package convert
// between guest and host byte order and no other part of the emulator needs
// to be concerned with it.
//
// Accesses to addresses outside the mapped areas fault on the host. When
// debug.SetPanicOnFault() is in effect for the goroutine, the fault becomes a
// panic that can be recovered. FaultAddress() converts the recovered value to
// the guest address that caused the fault.
package memory
