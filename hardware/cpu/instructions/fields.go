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

package instructions

// Field identifies a field of an instruction word. Some fields are markers
// and do not occupy any bits in the instruction. Markers are used in the
// read and write lists of a Definition to indicate implicit operands, such
// as the link register or the carry bit of XER.
type Field int

// List of valid Field values.
const (
	NoField Field = iota

	// opcode fields
	OPCD
	XO1
	XO2
	XO3
	XO4

	// register operands
	RA
	RB
	RD
	RS
	FRA
	FRB
	FRC
	FRD
	FRS
	CRBA
	CRBB
	CRBD
	CRFD
	CRFS

	// immediate operands
	D
	SIMM
	UIMM
	SH
	MB
	ME
	NB
	LI
	BD
	BO
	BI
	SPR
	TBR
	SR
	CRM
	FM
	IMM
	TO
	KCN
	QD
	W
	I
	QW
	QI
	L

	// name modifiers
	AA
	LK
	OE
	RC

	// reserved bit used by decoding rules
	Bit30

	// markers. these fields are not encoded in the instruction word
	markers
	XERCA
	XERSO
	XEROV
	CR0
	CR1
	FPRF
	FPSCR
	LR
	CTR
	MSR
	PS
	RSRV

	// the record bit and the overflow bit are implicitly set. addic. andi.
	// andis.
	AlwaysRC
	AlwaysOE

	numFields
)

type fieldInfo struct {
	name string

	// bit range using MSB numbering. start and end are inclusive
	start int
	end   int
}

var fieldTable = [numFields]fieldInfo{
	NoField: {"", -1, -1},
	OPCD:    {"opcd", 0, 5},
	XO1:     {"xo1", 21, 30},
	XO2:     {"xo2", 22, 30},
	XO3:     {"xo3", 25, 30},
	XO4:     {"xo4", 26, 30},
	RA:      {"rA", 11, 15},
	RB:      {"rB", 16, 20},
	RD:      {"rD", 6, 10},
	RS:      {"rS", 6, 10},
	FRA:     {"frA", 11, 15},
	FRB:     {"frB", 16, 20},
	FRC:     {"frC", 21, 25},
	FRD:     {"frD", 6, 10},
	FRS:     {"frS", 6, 10},
	CRBA:    {"crbA", 11, 15},
	CRBB:    {"crbB", 16, 20},
	CRBD:    {"crbD", 6, 10},
	CRFD:    {"crfD", 6, 8},
	CRFS:    {"crfS", 11, 13},
	D:       {"d", 16, 31},
	SIMM:    {"simm", 16, 31},
	UIMM:    {"uimm", 16, 31},
	SH:      {"sh", 16, 20},
	MB:      {"mb", 21, 25},
	ME:      {"me", 26, 30},
	NB:      {"nb", 16, 20},
	LI:      {"li", 6, 29},
	BD:      {"bd", 16, 29},
	BO:      {"bo", 6, 10},
	BI:      {"bi", 11, 15},
	SPR:     {"spr", 11, 20},
	TBR:     {"tbr", 11, 20},
	SR:      {"sr", 12, 15},
	CRM:     {"crm", 12, 19},
	FM:      {"fm", 7, 14},
	IMM:     {"imm", 16, 19},
	TO:      {"to", 6, 10},
	KCN:     {"kcn", 6, 29},
	QD:      {"qd", 20, 31},
	W:       {"w", 16, 16},
	I:       {"i", 17, 19},
	QW:      {"qw", 21, 21},
	QI:      {"qi", 22, 24},
	L:       {"l", 10, 10},
	AA:      {"aa", 30, 30},
	LK:      {"lk", 31, 31},
	OE:      {"oe", 21, 21},
	RC:      {"rc", 31, 31},
	Bit30:   {"bit30", 30, 30},

	markers:  {"", -1, -1},
	XERCA:    {"XER.CA", -1, -1},
	XERSO:    {"XER.SO", -1, -1},
	XEROV:    {"XER.OV", -1, -1},
	CR0:      {"CR0", -1, -1},
	CR1:      {"CR1", -1, -1},
	FPRF:     {"FPRF", -1, -1},
	FPSCR:    {"FPSCR", -1, -1},
	LR:       {"LR", -1, -1},
	CTR:      {"CTR", -1, -1},
	MSR:      {"MSR", -1, -1},
	PS:       {"PS", -1, -1},
	RSRV:     {"RSRV", -1, -1},
	AlwaysRC: {"RC", -1, -1},
	AlwaysOE: {"OE", -1, -1},
}

func (f Field) String() string {
	if f < 0 || f >= numFields {
		return "unknown field"
	}
	return fieldTable[f].name
}

// IsMarker returns true if the field does not occupy any bits in the
// instruction word.
func (f Field) IsMarker() bool {
	return f > markers && f < numFields
}

// Start returns the position of the least significant bit of the field,
// using LSB numbering.
func (f Field) Start() uint {
	return uint(31 - fieldTable[f].end)
}

// Width returns the number of bits in the field. Markers have a width of
// zero.
func (f Field) Width() uint {
	if f.IsMarker() || f == NoField {
		return 0
	}
	return uint(fieldTable[f].end - fieldTable[f].start + 1)
}

// Mask returns the bits of the instruction word occupied by the field.
func (f Field) Mask() uint32 {
	w := f.Width()
	if w == 0 {
		return 0
	}
	return uint32(1<<w-1) << f.Start()
}

// Value returns the raw value of the field in the instruction. The SPR and
// TBR fields are returned with the two halves already swapped, ie. as the
// register number. Markers always have a value of zero.
func (f Field) Value(ins Instruction) uint32 {
	switch f {
	case SPR, TBR:
		return ins.SPR()
	}
	w := f.Width()
	if w == 0 {
		return 0
	}
	return (uint32(ins) >> f.Start()) & (1<<w - 1)
}

// Insert returns the instruction with the field set to v. For the SPR and
// TBR fields v is the register number.
func (f Field) Insert(ins Instruction, v uint32) Instruction {
	switch f {
	case SPR, TBR:
		v = swapSPR(v)
	}
	m := f.Mask()
	return Instruction((uint32(ins) &^ m) | ((v << f.Start()) & m))
}
