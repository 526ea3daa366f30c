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

package registers

import (
	"github.com/jetsetilly/espresso/hardware/bits"
)

// MSR is the machine state register. Bits are numbered from the least
// significant bit.
type MSR uint32

// List of MSR bits.
const (
	MsrLE  = 0
	MsrRI  = 1
	MsrDR  = 4
	MsrIR  = 5
	MsrIP  = 6
	MsrFE1 = 8
	MsrBE  = 9
	MsrSE  = 10
	MsrFE0 = 11
	MsrME  = 12
	MsrFP  = 13
	MsrPR  = 14
	MsrEE  = 15
	MsrILE = 16
	MsrPOW = 18
)

// Label returns the canonical name for the MSR.
func (m MSR) Label() string {
	return "MSR"
}

// Bit returns the value of the MSR bit.
func (m MSR) Bit(b uint) bool {
	return bits.Bit(uint32(m), b)
}

// SetBit sets or clears the MSR bit.
func (m *MSR) SetBit(b uint, v bool) {
	*m = MSR(bits.SetBit(uint32(*m), b, v))
}
