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

package registers_test

import (
	"testing"

	"github.com/jetsetilly/espresso/hardware/cpu/registers"
	"github.com/jetsetilly/espresso/hardware/fpu"
	"github.com/jetsetilly/espresso/test"
)

func TestCR(t *testing.T) {
	var cr registers.CR

	cr.SetField(0, registers.LT|registers.SO)
	test.ExpectEquality(t, uint32(cr), 0x90000000)
	cr.SetField(7, registers.EQ)
	test.ExpectEquality(t, uint32(cr), 0x90000002)
	cr.SetField(1, 0xff)
	test.ExpectEquality(t, uint32(cr), 0x9f000002)
	test.ExpectEquality(t, cr.Field(1), 0xf)

	// bits are numbered from the most significant bit
	cr = 0
	cr.SetBit(0, true)
	test.ExpectEquality(t, uint32(cr), 0x80000000)
	cr.SetBit(31, true)
	test.ExpectEquality(t, uint32(cr), 0x80000001)
	test.ExpectSuccess(t, cr.Bit(31))
	test.ExpectFailure(t, cr.Bit(30))
	cr.SetBit(0, false)
	test.ExpectEquality(t, uint32(cr), 0x00000001)

	cr = 0x80000002
	test.ExpectEquality(t, cr.String(), "Lges lges lges lges lges lges lges lgEs")
}

func TestXER(t *testing.T) {
	var x registers.XER

	x.SetSO(true)
	test.ExpectEquality(t, uint32(x), 0x80000000)
	x = 0
	x.SetOV(true)
	test.ExpectEquality(t, uint32(x), 0x40000000)
	x = 0
	x.SetCA(true)
	test.ExpectEquality(t, uint32(x), 0x20000000)
	x = 0
	x.SetByteCount(0xff)
	test.ExpectEquality(t, uint32(x), 0x7f)
	test.ExpectEquality(t, x.ByteCount(), 0x7f)

	// SetOverflow is sticky
	x = 0
	x.SetOverflow(true)
	test.ExpectEquality(t, uint32(x), 0xc0000000)
	x.SetOverflow(false)
	test.ExpectEquality(t, uint32(x), 0x80000000)

	x = 0xe0000000
	test.ExpectEquality(t, x.CRXR(), 0xe)
	test.ExpectEquality(t, x.String(), "SOC")
}

func TestFPSCR(t *testing.T) {
	var f registers.FPSCR

	f.SetRN(fpu.RoundNegative)
	test.ExpectEquality(t, uint32(f), 0x3)
	test.ExpectEquality(t, f.RN(), fpu.RoundNegative)

	f = 0
	f.SetFPRF(0x1f)
	test.ExpectEquality(t, uint32(f), 0x1f000)
	f = 0
	f.SetFPCC(0xf)
	test.ExpectEquality(t, uint32(f), 0xf000)

	test.ExpectEquality(t, registers.VE, 0x80)
	test.ExpectEquality(t, registers.VXCVI, 0x100)
	test.ExpectEquality(t, registers.FI, 0x20000)
	test.ExpectEquality(t, registers.FR, 0x40000)
	test.ExpectEquality(t, registers.VXSNAN, 0x1000000)
	test.ExpectEquality(t, registers.FX, 0x80000000)

	f = registers.FPSCR(registers.FX | registers.OX)
	test.ExpectEquality(t, f.CR1(), 0x9)

	// fields numbered the same way as condition register fields
	f = 0
	f.SetField(7, 0x3)
	test.ExpectEquality(t, uint32(f), 0x3)
}

func TestFPSCRSummary(t *testing.T) {
	var f registers.FPSCR

	old := f
	f.Set(registers.VXSNAN)
	f.UpdateExceptions(old)
	test.ExpectSuccess(t, f.Has(registers.VX))
	test.ExpectSuccess(t, f.Has(registers.FX))
	test.ExpectFailure(t, f.Has(registers.FEX))

	// FX is not set again if no new exception bit is set
	f.Clear(registers.FX)
	old = f
	f.Set(registers.VXSNAN)
	f.UpdateExceptions(old)
	test.ExpectFailure(t, f.Has(registers.FX))

	// enabled exception sets FEX
	f = registers.FPSCR(registers.ZE)
	old = f
	f.Set(registers.ZX)
	f.UpdateExceptions(old)
	test.ExpectSuccess(t, f.Has(registers.FEX))
	test.ExpectSuccess(t, f.ExceptionEnabled(registers.ZX))
	test.ExpectFailure(t, f.ExceptionEnabled(registers.OX))
}

func TestGQR(t *testing.T) {
	var g registers.GQR

	g.SetStType(registers.QuantS16)
	test.ExpectEquality(t, uint32(g), 0x7)
	g = 0
	g.SetStScale(0x3f)
	test.ExpectEquality(t, uint32(g), 0x3f00)
	g = 0
	g.SetLdType(registers.QuantU8)
	test.ExpectEquality(t, uint32(g), 0x40000)
	g = 0
	g.SetLdScale(0x3f)
	test.ExpectEquality(t, uint32(g), 0x3f000000)

	g = 0x3f073f07
	test.ExpectEquality(t, g.LdType(), registers.QuantS16)
	test.ExpectEquality(t, g.LdScale(), 0x3f)
	test.ExpectEquality(t, g.StType(), registers.QuantS16)
	test.ExpectEquality(t, g.StScale(), 0x3f)
	test.ExpectEquality(t, g.LdType().Size(), 2)
}

func TestMSR(t *testing.T) {
	var m registers.MSR
	m.SetBit(registers.MsrEE, true)
	test.ExpectEquality(t, uint32(m), 0x8000)
	m.SetBit(registers.MsrFP, true)
	test.ExpectEquality(t, uint32(m), 0xa000)
	test.ExpectSuccess(t, m.Bit(registers.MsrFP))
}

func TestSPR(t *testing.T) {
	var r registers.CoreRegs
	r.PVR = registers.EspressoPVR

	test.ExpectSuccess(t, r.SetSPR(registers.SprLR, 0x1234))
	test.ExpectEquality(t, r.LR, 0x1234)
	test.ExpectSuccess(t, r.SetSPR(registers.SprGQR0+2, 0x40004))
	test.ExpectEquality(t, uint32(r.GQR[2]), 0x40004)

	// user GQR is the same register
	v, ok := r.SPR(registers.SprUGQR0 + 2)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, 0x40004)

	// PVR is read only
	test.ExpectSuccess(t, r.SetSPR(registers.SprPVR, 0))
	v, _ = r.SPR(registers.SprPVR)
	test.ExpectEquality(t, v, registers.EspressoPVR)

	_, ok = r.SPR(5)
	test.ExpectFailure(t, ok)
	test.ExpectFailure(t, r.SetSPR(5, 0))

	test.ExpectEquality(t, registers.SprName(registers.SprGQR0+3), "gqr3")
	test.ExpectEquality(t, registers.SprName(8), "lr")
	test.ExpectEquality(t, registers.SprName(5), "spr5")
}

func TestMarshal(t *testing.T) {
	var r registers.CoreRegs
	r.CIA = 0x02000000
	r.NIA = 0x02000004
	r.GPR[3] = 0xdeadbeef
	r.FPR[1].PS1 = 0x3ff0000000000000
	r.CR = 0x20000000
	r.XER = 0x20000000
	r.Reserve = true
	r.ReserveData = 0x1234

	b, err := r.MarshalBinary()
	test.DemandSuccess(t, err)

	// big-endian layout
	test.ExpectEquality(t, b[0], 0x02)
	test.ExpectEquality(t, b[7], 0x04)
	test.ExpectEquality(t, b[8+3*4], 0xde)
	test.ExpectEquality(t, b[8+32*4+16+8], 0x3f)
	test.ExpectEquality(t, b[8+32*4+32*16], 0x20)

	var s registers.CoreRegs
	test.DemandSuccess(t, s.UnmarshalBinary(b))
	test.ExpectEquality(t, s, r)

	test.ExpectFailure(t, s.UnmarshalBinary(b[1:]))
}

func TestCompare(t *testing.T) {
	var a, b registers.CoreRegs
	test.ExpectEquality(t, len(a.Compare(&b)), 0)

	b.FPR[4].PS1 = 1
	b.XER = 0x20000000
	d := a.Compare(&b)
	test.DemandEquality(t, len(d), 2)
	test.ExpectEquality(t, d[0], "f4.ps1 0000000000000000 != 0000000000000001")
	test.ExpectEquality(t, d[1], "xer 00000000 != 20000000")

	// registers outside of the JIT's reach are not compared
	b = a
	b.SRR0 = 1
	test.ExpectEquality(t, len(a.Compare(&b)), 0)
}
