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
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/jetsetilly/espresso/curated"
)

// Sentinal errors.
const (
	UnmarshalLength = "registers: unmarshal: data is %d bytes, expected %d"
)

// EspressoPVR is the value of the processor version register.
const EspressoPVR = 0x70010201

// FPR is a floating point register. PS0 doubles as the double precision
// value of the register; PS1 is only used by paired single instructions.
// Both are stored as IEEE-754 bit patterns.
type FPR struct {
	PS0 uint64
	PS1 uint64
}

// Float64 returns PS0 as a float64.
func (f FPR) Float64() float64 {
	return math.Float64frombits(f.PS0)
}

// Paired1 returns PS1 as a float64.
func (f FPR) Paired1() float64 {
	return math.Float64frombits(f.PS1)
}

// SetFloat64 sets PS0 to v.
func (f *FPR) SetFloat64(v float64) {
	f.PS0 = math.Float64bits(v)
}

// SetPaired1 sets PS1 to v.
func (f *FPR) SetPaired1(v float64) {
	f.PS1 = math.Float64bits(v)
}

// CoreRegs is the register file of a single core.
type CoreRegs struct {
	// address of the current and next instruction
	CIA uint32
	NIA uint32

	GPR [32]uint32
	FPR [32]FPR

	CR    CR
	XER   XER
	FPSCR FPSCR
	LR    uint32
	CTR   uint32
	MSR   MSR
	GQR   [8]GQR
	SR    [16]uint32
	SPRG  [4]uint32

	SRR0  uint32
	SRR1  uint32
	DAR   uint32
	DSISR uint32
	PVR   uint32
	PIR   uint32

	// miscellaneous SPRs. the values are stored but have no effect on
	// emulation
	DEC  uint32
	SDR1 uint32
	EAR  uint32
	DABR uint32
	IABR uint32
	HID0 uint32
	HID1 uint32
	HID2 uint32
	HID4 uint32
	L2CR uint32
	WPAR uint32
	DMAU uint32
	DMAL uint32
	ICTC uint32
	MMCR [2]uint32
	PMC  [4]uint32
	SIA  uint32
	THRM [3]uint32

	// reservation made by lwarx
	Reserve     bool
	ReserveData uint32
}

// Reset all registers to zero. The PVR and PIR registers are preserved.
func (r *CoreRegs) Reset() {
	pvr := r.PVR
	pir := r.PIR
	*r = CoreRegs{}
	r.PVR = pvr
	r.PIR = pir
}

// Label returns the canonical name for the register file.
func (r *CoreRegs) Label() string {
	return fmt.Sprintf("core%d", r.PIR)
}

// miscSPR returns a pointer to the storage for an SPR that has no special
// meaning. Returns nil if n is not one of those SPRs.
func (r *CoreRegs) miscSPR(n uint32) *uint32 {
	switch {
	case n >= SprSPRG0 && n <= SprSPRG3:
		return &r.SPRG[n-SprSPRG0]
	}

	switch n {
	case SprLR:
		return &r.LR
	case SprCTR:
		return &r.CTR
	case SprDSISR:
		return &r.DSISR
	case SprDAR:
		return &r.DAR
	case SprDEC:
		return &r.DEC
	case SprSDR1:
		return &r.SDR1
	case SprSRR0:
		return &r.SRR0
	case SprSRR1:
		return &r.SRR1
	case SprEAR:
		return &r.EAR
	case SprHID0:
		return &r.HID0
	case SprHID1:
		return &r.HID1
	case SprHID2:
		return &r.HID2
	case SprHID4:
		return &r.HID4
	case SprWPAR:
		return &r.WPAR
	case SprDMAU:
		return &r.DMAU
	case SprDMAL:
		return &r.DMAL
	case SprL2CR:
		return &r.L2CR
	case SprDABR:
		return &r.DABR
	case SprIABR:
		return &r.IABR
	case SprICTC:
		return &r.ICTC
	case SprMMCR0, SprUMMCR0:
		return &r.MMCR[0]
	case SprMMCR1, SprUMMCR1:
		return &r.MMCR[1]
	case SprPMC1, SprUPMC1:
		return &r.PMC[0]
	case SprPMC2, SprUPMC2:
		return &r.PMC[1]
	case SprPMC3, SprUPMC3:
		return &r.PMC[2]
	case SprPMC4, SprUPMC4:
		return &r.PMC[3]
	case SprSIA, SprUSIA:
		return &r.SIA
	case SprTHRM1:
		return &r.THRM[0]
	case SprTHRM2:
		return &r.THRM[1]
	case SprTHRM3:
		return &r.THRM[2]
	}

	return nil
}

// SPR returns the value of the special purpose register n. The time base
// registers are not part of the register file and are not handled by this
// function. Returns false if the SPR is not recognised.
func (r *CoreRegs) SPR(n uint32) (uint32, bool) {
	switch {
	case n >= SprGQR0 && n <= SprGQR7:
		return uint32(r.GQR[n-SprGQR0]), true
	case n >= SprUGQR0 && n <= SprUGQR7:
		return uint32(r.GQR[n-SprUGQR0]), true
	}

	switch n {
	case SprXER:
		return uint32(r.XER), true
	case SprPVR:
		return r.PVR, true
	case SprUPIR:
		return r.PIR, true
	}

	if p := r.miscSPR(n); p != nil {
		return *p, true
	}
	return 0, false
}

// SetSPR sets the value of the special purpose register n. The read only
// registers (PVR and UPIR) ignore the write. Returns false if the SPR is not
// recognised.
func (r *CoreRegs) SetSPR(n uint32, v uint32) bool {
	switch {
	case n >= SprGQR0 && n <= SprGQR7:
		r.GQR[n-SprGQR0] = GQR(v)
		return true
	case n >= SprUGQR0 && n <= SprUGQR7:
		r.GQR[n-SprUGQR0] = GQR(v)
		return true
	}

	switch n {
	case SprXER:
		r.XER = XER(v)
		return true
	case SprPVR, SprUPIR:
		return true
	}

	if p := r.miscSPR(n); p != nil {
		*p = v
		return true
	}
	return false
}

// MarshalBinary returns the register file in a fixed big-endian layout. The
// layout is the order of the fields in the CoreRegs type. The reservation
// flag is encoded as a single byte.
func (r *CoreRegs) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, marshalledSize)
	w32 := func(v ...uint32) {
		for _, x := range v {
			b = binary.BigEndian.AppendUint32(b, x)
		}
	}

	w32(r.CIA, r.NIA)
	w32(r.GPR[:]...)
	for _, f := range r.FPR {
		b = binary.BigEndian.AppendUint64(b, f.PS0)
		b = binary.BigEndian.AppendUint64(b, f.PS1)
	}
	w32(uint32(r.CR), uint32(r.XER), uint32(r.FPSCR), r.LR, r.CTR, uint32(r.MSR))
	for _, g := range r.GQR {
		w32(uint32(g))
	}
	w32(r.SR[:]...)
	w32(r.SPRG[:]...)
	w32(r.SRR0, r.SRR1, r.DAR, r.DSISR, r.PVR, r.PIR)
	w32(r.DEC, r.SDR1, r.EAR, r.DABR, r.IABR, r.HID0, r.HID1, r.HID2, r.HID4)
	w32(r.L2CR, r.WPAR, r.DMAU, r.DMAL, r.ICTC)
	w32(r.MMCR[:]...)
	w32(r.PMC[:]...)
	w32(r.SIA)
	w32(r.THRM[:]...)
	if r.Reserve {
		b = append(b, 1)
	} else {
		b = append(b, 0)
	}
	w32(r.ReserveData)

	return b, nil
}

// number of bytes produced by MarshalBinary()
const marshalledSize = (2+32)*4 + 32*16 + 6*4 + 8*4 + 16*4 + 4*4 + 6*4 + 9*4 + 5*4 + 2*4 + 4*4 + 4 + 3*4 + 1 + 4

// UnmarshalBinary is the inverse of MarshalBinary.
func (r *CoreRegs) UnmarshalBinary(data []byte) error {
	if len(data) != marshalledSize {
		return curated.Errorf(UnmarshalLength, len(data), marshalledSize)
	}

	r32 := func(v ...*uint32) {
		for _, x := range v {
			*x = binary.BigEndian.Uint32(data)
			data = data[4:]
		}
	}
	r32s := func(v []uint32) {
		for i := range v {
			r32(&v[i])
		}
	}

	r32(&r.CIA, &r.NIA)
	r32s(r.GPR[:])
	for i := range r.FPR {
		r.FPR[i].PS0 = binary.BigEndian.Uint64(data)
		r.FPR[i].PS1 = binary.BigEndian.Uint64(data[8:])
		data = data[16:]
	}

	var cr, xer, fpscr, msr uint32
	r32(&cr, &xer, &fpscr, &r.LR, &r.CTR, &msr)
	r.CR = CR(cr)
	r.XER = XER(xer)
	r.FPSCR = FPSCR(fpscr)
	r.MSR = MSR(msr)
	for i := range r.GQR {
		var g uint32
		r32(&g)
		r.GQR[i] = GQR(g)
	}
	r32s(r.SR[:])
	r32s(r.SPRG[:])
	r32(&r.SRR0, &r.SRR1, &r.DAR, &r.DSISR, &r.PVR, &r.PIR)
	r32(&r.DEC, &r.SDR1, &r.EAR, &r.DABR, &r.IABR, &r.HID0, &r.HID1, &r.HID2, &r.HID4)
	r32(&r.L2CR, &r.WPAR, &r.DMAU, &r.DMAL, &r.ICTC)
	r32s(r.MMCR[:])
	r32s(r.PMC[:])
	r32(&r.SIA)
	r32s(r.THRM[:])
	r.Reserve = data[0] != 0
	data = data[1:]
	r32(&r.ReserveData)

	return nil
}

// Compare returns the names of the registers that differ between the two
// register files. Only the registers that can be changed by the instructions
// handled by the JIT are compared: NIA, the GPRs, both slots of the FPRs, the
// GQRs, LR, CTR, CR, XER and FPSCR. The order of the returned list is the
// order in which those registers are listed here.
func (r *CoreRegs) Compare(o *CoreRegs) []string {
	var diff []string

	if r.NIA != o.NIA {
		diff = append(diff, fmt.Sprintf("nia %08x != %08x", r.NIA, o.NIA))
	}
	for i := range r.GPR {
		if r.GPR[i] != o.GPR[i] {
			diff = append(diff, fmt.Sprintf("r%d %08x != %08x", i, r.GPR[i], o.GPR[i]))
		}
	}
	for i := range r.FPR {
		if r.FPR[i].PS0 != o.FPR[i].PS0 {
			diff = append(diff, fmt.Sprintf("f%d.ps0 %016x != %016x", i, r.FPR[i].PS0, o.FPR[i].PS0))
		}
		if r.FPR[i].PS1 != o.FPR[i].PS1 {
			diff = append(diff, fmt.Sprintf("f%d.ps1 %016x != %016x", i, r.FPR[i].PS1, o.FPR[i].PS1))
		}
	}
	for i := range r.GQR {
		if r.GQR[i] != o.GQR[i] {
			diff = append(diff, fmt.Sprintf("gqr%d %08x != %08x", i, uint32(r.GQR[i]), uint32(o.GQR[i])))
		}
	}
	if r.LR != o.LR {
		diff = append(diff, fmt.Sprintf("lr %08x != %08x", r.LR, o.LR))
	}
	if r.CTR != o.CTR {
		diff = append(diff, fmt.Sprintf("ctr %08x != %08x", r.CTR, o.CTR))
	}
	if r.CR != o.CR {
		diff = append(diff, fmt.Sprintf("cr %08x != %08x", uint32(r.CR), uint32(o.CR)))
	}
	if r.XER != o.XER {
		diff = append(diff, fmt.Sprintf("xer %08x != %08x", uint32(r.XER), uint32(o.XER)))
	}
	if r.FPSCR != o.FPSCR {
		diff = append(diff, fmt.Sprintf("fpscr %08x != %08x", uint32(r.FPSCR), uint32(o.FPSCR)))
	}

	return diff
}

// String returns a multiline summary of the user level registers.
func (r *CoreRegs) String() string {
	s := strings.Builder{}
	fmt.Fprintf(&s, "cia=%08x nia=%08x lr=%08x ctr=%08x\n", r.CIA, r.NIA, r.LR, r.CTR)
	fmt.Fprintf(&s, "cr=%s xer=%s fpscr=%08x msr=%08x\n", r.CR, r.XER, uint32(r.FPSCR), uint32(r.MSR))
	for i := 0; i < 32; i += 4 {
		fmt.Fprintf(&s, "r%-2d=%08x r%-2d=%08x r%-2d=%08x r%-2d=%08x\n",
			i, r.GPR[i], i+1, r.GPR[i+1], i+2, r.GPR[i+2], i+3, r.GPR[i+3])
	}
	for i := 0; i < 32; i += 2 {
		fmt.Fprintf(&s, "f%-2d=%016x/%016x f%-2d=%016x/%016x\n",
			i, r.FPR[i].PS0, r.FPR[i].PS1, i+1, r.FPR[i+1].PS0, r.FPR[i+1].PS1)
	}
	for i := range r.GQR {
		if i > 0 {
			s.WriteRune(' ')
		}
		fmt.Fprintf(&s, "gqr%d=%08x", i, uint32(r.GQR[i]))
	}
	s.WriteRune('\n')
	return s.String()
}
