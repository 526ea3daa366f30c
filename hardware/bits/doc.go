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

// Package bits contains the small bit manipulation functions used throughout
// the emulation of the CPU.
//
// The PowerPC documentation numbers bits from the most significant end, with
// bit 0 being the MSB of a 32 bit word. The Mask() function takes arguments in
// that numbering because it mirrors the MB and ME fields of the rotate
// instructions. Every other function in the package uses the conventional host
// numbering, with bit 0 being the LSB.
package bits
