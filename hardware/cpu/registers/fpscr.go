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
	"github.com/jetsetilly/espresso/hardware/fpu"
)

// FPSCR is the floating point status and control register.
type FPSCR uint32

// Single bit fields of the FPSCR.
const (
	NI     uint32 = 1 << 2
	XE     uint32 = 1 << 3
	ZE     uint32 = 1 << 4
	UE     uint32 = 1 << 5
	OE     uint32 = 1 << 6
	VE     uint32 = 1 << 7
	VXCVI  uint32 = 1 << 8
	VXSQRT uint32 = 1 << 9
	VXSOFT uint32 = 1 << 10
	FI     uint32 = 1 << 17
	FR     uint32 = 1 << 18
	VXVC   uint32 = 1 << 19
	VXIMZ  uint32 = 1 << 20
	VXZDZ  uint32 = 1 << 21
	VXIDI  uint32 = 1 << 22
	VXISI  uint32 = 1 << 23
	VXSNAN uint32 = 1 << 24
	XX     uint32 = 1 << 25
	ZX     uint32 = 1 << 26
	UX     uint32 = 1 << 27
	OX     uint32 = 1 << 28
	VX     uint32 = 1 << 29
	FEX    uint32 = 1 << 30
	FX     uint32 = 1 << 31

	// all invalid operation exception bits
	AllVX = VXSNAN | VXISI | VXIDI | VXZDZ | VXIMZ | VXVC | VXSOFT | VXSQRT | VXCVI

	// all exception bits. FX is set whenever one of these bits changes from
	// zero to one
	AllExceptions = AllVX | OX | UX | ZX | XX
)

// Values of the FPRF field.
const (
	FPRFNaN      uint32 = 0x01
	FPRFZero     uint32 = 0x02
	FPRFPositive uint32 = 0x04
	FPRFNegative uint32 = 0x08
	FPRFClass    uint32 = 0x10

	// the four bit FPCC part of FPRF has the same meaning as a condition
	// register field after a floating point compare
	FPRFUnordered = FPRFNaN
	FPRFEqual     = FPRFZero
	FPRFGreater   = FPRFPositive
	FPRFLess      = FPRFNegative
)

// Label returns the canonical name for the FPSCR.
func (f FPSCR) Label() string {
	return "FPSCR"
}

// Has returns true if all bits in mask are set.
func (f FPSCR) Has(mask uint32) bool {
	return uint32(f)&mask == mask
}

// Any returns true if any bit in mask is set.
func (f FPSCR) Any(mask uint32) bool {
	return uint32(f)&mask != 0
}

// Set sets all bits in mask.
func (f *FPSCR) Set(mask uint32) {
	*f = FPSCR(uint32(*f) | mask)
}

// Clear clears all bits in mask.
func (f *FPSCR) Clear(mask uint32) {
	*f = FPSCR(uint32(*f) &^ mask)
}

// Put sets or clears all bits in mask.
func (f *FPSCR) Put(mask uint32, v bool) {
	if v {
		f.Set(mask)
	} else {
		f.Clear(mask)
	}
}

// RN is the rounding mode.
func (f FPSCR) RN() fpu.RoundingMode {
	return fpu.RoundingMode(bits.Field(uint32(f), 0, 2))
}

// SetRN sets the rounding mode.
func (f *FPSCR) SetRN(m fpu.RoundingMode) {
	*f = FPSCR(bits.SetField(uint32(*f), 0, 2, uint32(m)))
}

// FPRF is the five bit floating point result flags field.
func (f FPSCR) FPRF() uint32 {
	return bits.Field(uint32(f), 12, 5)
}

// SetFPRF sets the FPRF field.
func (f *FPSCR) SetFPRF(v uint32) {
	*f = FPSCR(bits.SetField(uint32(*f), 12, 5, v))
}

// FPCC is the four bit condition code part of the FPRF field.
func (f FPSCR) FPCC() uint32 {
	return bits.Field(uint32(f), 12, 4)
}

// SetFPCC sets the FPCC field.
func (f *FPSCR) SetFPCC(v uint32) {
	*f = FPSCR(bits.SetField(uint32(*f), 12, 4, v))
}

// CR1 returns the top four bits of the FPSCR (FX, FEX, VX and OX). The value
// is copied into CR field 1 by the record form of floating point
// instructions.
func (f FPSCR) CR1() uint32 {
	return bits.Field(uint32(f), 28, 4)
}

// Field returns the four bit field n of the FPSCR. Field 0 is the most
// significant, in the same way as the condition register.
func (f FPSCR) Field(n uint32) uint32 {
	return CR(f).Field(n)
}

// SetField sets the four bit field n.
func (f *FPSCR) SetField(n uint32, v uint32) {
	cr := CR(*f)
	cr.SetField(n, v)
	*f = FPSCR(cr)
}

// UpdateSummary recalculates the VX and FEX summary bits.
func (f *FPSCR) UpdateSummary() {
	v := uint32(*f)
	f.Put(VX, v&AllVX != 0)

	fex := (f.Has(VX) && f.Has(VE)) ||
		(f.Has(OX) && f.Has(OE)) ||
		(f.Has(UX) && f.Has(UE)) ||
		(f.Has(ZX) && f.Has(ZE)) ||
		(f.Has(XX) && f.Has(XE))
	f.Put(FEX, fex)
}

// UpdateExceptions recalculates the summary bits and sets FX if any exception
// bit has changed from zero to one since the FPSCR had the value old.
func (f *FPSCR) UpdateExceptions(old FPSCR) {
	f.UpdateSummary()
	changed := (uint32(old) ^ uint32(*f)) & uint32(*f)
	if changed&AllExceptions != 0 {
		f.Set(FX)
	}
}

// ExceptionEnabled returns true if any of the exceptions in mask is enabled.
// Only the sticky exception bits (VX*, OX, UX, ZX, XX) are considered.
func (f FPSCR) ExceptionEnabled(mask uint32) bool {
	if mask&AllVX != 0 && f.Has(VE) {
		return true
	}
	if mask&OX != 0 && f.Has(OE) {
		return true
	}
	if mask&UX != 0 && f.Has(UE) {
		return true
	}
	if mask&ZX != 0 && f.Has(ZE) {
		return true
	}
	if mask&XX != 0 && f.Has(XE) {
		return true
	}
	return false
}
