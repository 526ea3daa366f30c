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

// Package registers implements the register file of an Espresso core.
//
// The special registers that are made up of several fields (CR, XER, FPSCR,
// GQR and MSR) are plain integers. The fields are read and written with
// accessor functions, for example:
//
//	var x registers.XER
//	x.SetCA(true)
//	x.CA()          // true
//	uint32(x)       // 0x20000000
//
// The bit position of every field is the same as on the real hardware. This
// means the value of the register can be moved to and from a general
// purpose register (mfxer, mtxer, mffs, etc.) without any conversion.
//
// The CoreRegs type collects all the registers of a core. Its binary
// representation, produced by MarshalBinary(), is bit exact and is used by
// the JIT verifier and the monitor.
package registers
