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

package disassembly_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/jetsetilly/espresso/curated"
	"github.com/jetsetilly/espresso/disassembly"
	"github.com/jetsetilly/espresso/hardware/cpu/instructions"
	"github.com/jetsetilly/espresso/test"
)

const origin = 0x80000000

func TestInstruction(t *testing.T) {
	for _, c := range []struct {
		word uint32
		s    string
	}{
		{0x38600005, "li r3, 5"},
		{0x7c832378, "mr r3, r4"},
		{0x80610010, "lwz r3, 0x10(r1)"},
		{0x9421fff0, "stwu r1, -0x10(r1)"},
		{0x4e800020, "blr"},
		{0x4e800021, "blrl"},
		{0x40860008, "bne cr1, @80000008"},
		{0x41820008, "beq @80000008"},
		{0x4200fffc, "bdnz @7FFFFFFC"},
		{0x7c642e15, "addo. r3, r4, r5"},
		{0xe0251000, "psq_l f1, 0(r5), 0, 1"},
		{0x00000000, ".long 0x00000000"},
	} {
		s := disassembly.Instruction(origin, instructions.Instruction(c.word))
		test.ExpectEquality(t, s, c.s, c.word)
	}
}

func TestUnaligned(t *testing.T) {
	_, err := disassembly.FromBytes(origin, []byte{0x38, 0x60, 0x00})
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, disassembly.Unaligned))
}

func program(words ...uint32) []byte {
	b := make([]byte, len(words)*4)
	for i, w := range words {
		binary.BigEndian.PutUint32(b[i*4:], w)
	}
	return b
}

func TestWrite(t *testing.T) {
	dsm, err := disassembly.FromBytes(origin, program(0x38600005, 0x4e800020))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(dsm.Entries), 2)

	e, ok := dsm.GetEntryByAddress(origin + 4)
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, e.Operator, "blr")

	_, ok = dsm.GetEntryByAddress(origin + 8)
	test.ExpectFailure(t, ok)
	_, ok = dsm.GetEntryByAddress(origin + 2)
	test.ExpectFailure(t, ok)

	var b bytes.Buffer
	test.ExpectSuccess(t, dsm.Write(&b, disassembly.WriteAttr{}))
	test.ExpectEquality(t, b.String(), "80000000 li  r3, 5\n80000004 blr\n")

	b.Reset()
	test.ExpectSuccess(t, dsm.Write(&b, disassembly.WriteAttr{Bytecode: true, Marker: origin + 4}))
	test.ExpectEquality(t, b.String(), "  80000000 38600005 li  r3, 5\n> 80000004 4E800020 blr\n")
}

func TestGrep(t *testing.T) {
	dsm, err := disassembly.FromBytes(origin, program(0x38600005, 0x80610010, 0x9421fff0, 0x4e800020))
	test.DemandSuccess(t, err)

	var b bytes.Buffer
	n, err := dsm.Grep(&b, disassembly.GrepOperand, "R1", false)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 2)

	b.Reset()
	n, err = dsm.Grep(&b, disassembly.GrepOperand, "R1", true)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 0)

	b.Reset()
	n, err = dsm.Grep(&b, disassembly.GrepOperator, "blr", true)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 1)
	test.ExpectEquality(t, b.String(), "8000000C blr\n")
}
