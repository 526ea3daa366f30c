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

// ID uniquely identifies each instruction in the instruction set. The value
// can be used to index arrays of length NumIDs.
type ID int

// List of valid ID values. The order of the list is significant to the
// decoder: when more than one definition matches an instruction word the
// definition with the lowest ID is chosen.
const (
	Illegal ID = iota

	// integer arithmetic
	Add
	Addc
	Adde
	Addi
	Addic
	AddicRc
	Addis
	Addme
	Addze
	Divw
	Divwu
	Mulhw
	Mulhwu
	Mulli
	Mullw
	Neg
	Subf
	Subfc
	Subfe
	Subfic
	Subfme
	Subfze

	// integer compare
	Cmp
	Cmpi
	Cmpl
	Cmpli

	// integer logical
	And
	Andc
	Andi
	Andis
	Cntlzw
	Eqv
	Extsb
	Extsh
	Nand
	Nor
	Or
	Orc
	Ori
	Oris
	Xor
	Xori
	Xoris

	// integer rotate and shift
	Rlwimi
	Rlwinm
	Rlwnm
	Slw
	Sraw
	Srawi
	Srw

	// floating point arithmetic
	Fadd
	Fadds
	Fdiv
	Fdivs
	Fmul
	Fmuls
	Fres
	Frsqrte
	Fsub
	Fsubs
	Fsel
	Fmadd
	Fmadds
	Fmsub
	Fmsubs
	Fnmadd
	Fnmadds
	Fnmsub
	Fnmsubs
	Fctiw
	Fctiwz
	Frsp
	Fcmpo
	Fcmpu
	Mcrfs
	Mffs
	Mtfsb0
	Mtfsb1
	Mtfsf
	Mtfsfi

	// integer load and store
	Lbz
	Lbzu
	Lbzx
	Lbzux
	Lha
	Lhau
	Lhax
	Lhaux
	Lhz
	Lhzu
	Lhzx
	Lhzux
	Lwz
	Lwzu
	Lwzx
	Lwzux
	Stb
	Stbu
	Stbx
	Stbux
	Sth
	Sthu
	Sthx
	Sthux
	Stw
	Stwu
	Stwx
	Stwux
	Lhbrx
	Lwbrx
	Sthbrx
	Stwbrx
	Lmw
	Stmw
	Lswi
	Lswx
	Stswi
	Stswx

	// memory synchronisation
	Eieio
	Isync
	Lwarx
	Stwcx
	Sync

	// floating point load and store
	Lfd
	Lfdu
	Lfdx
	Lfdux
	Lfs
	Lfsu
	Lfsx
	Lfsux
	Stfd
	Stfdu
	Stfdx
	Stfdux
	Stfiwx
	Stfs
	Stfsu
	Stfsx
	Stfsux

	// floating point move
	Fabs
	Fmr
	Fnabs
	Fneg

	// branch
	B
	Bc
	Bcctr
	Bclr

	// condition register
	Crand
	Crandc
	Creqv
	Crnand
	Crnor
	Cror
	Crorc
	Crxor
	Mcrf

	// system linkage and trap. kc must be before sc
	Rfi
	Kc
	Sc
	Tw
	Twi

	// processor control
	Mcrxr
	Mfcr
	Mfmsr
	Mfspr
	Mftb
	Mtcrf
	Mtmsr
	Mtspr

	// cache management
	Dcbf
	Dcbi
	Dcbst
	Dcbt
	Dcbtst
	Dcbz
	Icbi
	DcbzL

	// segment registers, lookaside buffer and external control
	Mfsr
	Mfsrin
	Mtsr
	Mtsrin
	Tlbie
	Tlbsync
	Eciwx
	Ecowx

	// paired single load and store
	PsqL
	PsqLu
	PsqLx
	PsqLux
	PsqSt
	PsqStu
	PsqStx
	PsqStux

	// paired single arithmetic
	PsAdd
	PsDiv
	PsMul
	PsSub
	PsAbs
	PsNabs
	PsNeg
	PsSel
	PsRes
	PsRsqrte
	PsMsub
	PsMadd
	PsNmsub
	PsNmadd
	PsMr
	PsSum0
	PsSum1
	PsMuls0
	PsMuls1
	PsMadds0
	PsMadds1
	PsCmpu0
	PsCmpo0
	PsCmpu1
	PsCmpo1
	PsMerge00
	PsMerge01
	PsMerge10
	PsMerge11

	NumIDs
)

func (id ID) String() string {
	return Lookup(id).Name
}

var definitions = [NumIDs]Definition{
	Illegal: {Illegal, "", Unknown, nil, nil, nil, nil, "Illegal Instruction"},

	Add:     {Add, "add", Arithmetic, op(31, xo2(266)), fl(RD), fl(RA, RB), fl(OE, RC), "Add"},
	Addc:    {Addc, "addc", Arithmetic, op(31, xo2(10)), fl(RD, XERCA), fl(RA, RB), fl(OE, RC), "Add with Carry"},
	Adde:    {Adde, "adde", Arithmetic, op(31, xo2(138)), fl(RD, XERCA), fl(RA, RB, XERCA), fl(OE, RC), "Add Extended"},
	Addi:    {Addi, "addi", Arithmetic, op(14), fl(RD), fl(RA, SIMM), nil, "Add Immediate"},
	Addic:   {Addic, "addic", Arithmetic, op(12), fl(RD, XERCA), fl(RA, SIMM), nil, "Add Immediate with Carry"},
	AddicRc: {AddicRc, "addic.", Arithmetic, op(13), fl(RD, XERCA, CR0), fl(RA, SIMM), fl(AlwaysRC), "Add Immediate with Carry and Record"},
	Addis:   {Addis, "addis", Arithmetic, op(15), fl(RD), fl(RA, SIMM), nil, "Add Immediate Shifted"},
	Addme:   {Addme, "addme", Arithmetic, op(31, xo2(234)), fl(RD, XERCA), fl(RA, XERCA), fl(OE, RC), "Add to Minus One Extended"},
	Addze:   {Addze, "addze", Arithmetic, op(31, xo2(202)), fl(RD, XERCA), fl(RA, XERCA), fl(OE, RC), "Add to Zero Extended"},
	Divw:    {Divw, "divw", Arithmetic, op(31, xo2(491)), fl(RD), fl(RA, RB), fl(OE, RC), "Divide Word"},
	Divwu:   {Divwu, "divwu", Arithmetic, op(31, xo2(459)), fl(RD), fl(RA, RB), fl(OE, RC), "Divide Word Unsigned"},
	Mulhw:   {Mulhw, "mulhw", Arithmetic, op(31, xo2(75)), fl(RD), fl(RA, RB), fl(RC), "Multiply High Word"},
	Mulhwu:  {Mulhwu, "mulhwu", Arithmetic, op(31, xo2(11)), fl(RD), fl(RA, RB), fl(RC), "Multiply High Word Unsigned"},
	Mulli:   {Mulli, "mulli", Arithmetic, op(7), fl(RD), fl(RA, SIMM), nil, "Multiply Low Immediate"},
	Mullw:   {Mullw, "mullw", Arithmetic, op(31, xo2(235)), fl(RD), fl(RA, RB), fl(OE, RC), "Multiply Low Word"},
	Neg:     {Neg, "neg", Arithmetic, op(31, xo2(104)), fl(RD), fl(RA), fl(OE, RC), "Negate"},
	Subf:    {Subf, "subf", Arithmetic, op(31, xo2(40)), fl(RD), fl(RA, RB), fl(OE, RC), "Subtract From"},
	Subfc:   {Subfc, "subfc", Arithmetic, op(31, xo2(8)), fl(RD, XERCA), fl(RA, RB), fl(OE, RC), "Subtract From with Carry"},
	Subfe:   {Subfe, "subfe", Arithmetic, op(31, xo2(136)), fl(RD, XERCA), fl(RA, RB, XERCA), fl(OE, RC), "Subtract From Extended"},
	Subfic:  {Subfic, "subfic", Arithmetic, op(8), fl(RD, XERCA), fl(RA, SIMM), nil, "Subtract From Immediate with Carry"},
	Subfme:  {Subfme, "subfme", Arithmetic, op(31, xo2(232)), fl(RD, XERCA), fl(RA, XERCA), fl(OE, RC), "Subtract From Minus One Extended"},
	Subfze:  {Subfze, "subfze", Arithmetic, op(31, xo2(200)), fl(RD, XERCA), fl(RA, XERCA), fl(OE, RC), "Subtract From Zero Extended"},

	Cmp:   {Cmp, "cmp", Compare, op(31, xo1(0)), fl(CRFD), fl(RA, RB, XERSO), fl(L), "Compare"},
	Cmpi:  {Cmpi, "cmpi", Compare, op(11), fl(CRFD), fl(RA, SIMM, XERSO), fl(L), "Compare Immediate"},
	Cmpl:  {Cmpl, "cmpl", Compare, op(31, xo1(32)), fl(CRFD), fl(RA, RB, XERSO), fl(L), "Compare Logical"},
	Cmpli: {Cmpli, "cmpli", Compare, op(10), fl(CRFD), fl(RA, UIMM, XERSO), fl(L), "Compare Logical Immediate"},

	And:    {And, "and", Logical, op(31, xo1(28)), fl(RA), fl(RS, RB), fl(RC), "AND"},
	Andc:   {Andc, "andc", Logical, op(31, xo1(60)), fl(RA), fl(RS, RB), fl(RC), "AND with Complement"},
	Andi:   {Andi, "andi.", Logical, op(28), fl(RA, CR0), fl(RS, UIMM), fl(AlwaysRC), "AND Immediate"},
	Andis:  {Andis, "andis.", Logical, op(29), fl(RA, CR0), fl(RS, UIMM), fl(AlwaysRC), "AND Immediate Shifted"},
	Cntlzw: {Cntlzw, "cntlzw", Logical, op(31, xo1(26)), fl(RA), fl(RS), fl(RC), "Count Leading Zeroes Word"},
	Eqv:    {Eqv, "eqv", Logical, op(31, xo1(284)), fl(RA), fl(RS, RB), fl(RC), "Equivalent"},
	Extsb:  {Extsb, "extsb", Logical, op(31, xo1(954)), fl(RA), fl(RS), fl(RC), "Extend Sign Byte"},
	Extsh:  {Extsh, "extsh", Logical, op(31, xo1(922)), fl(RA), fl(RS), fl(RC), "Extend Sign Half Word"},
	Nand:   {Nand, "nand", Logical, op(31, xo1(476)), fl(RA), fl(RS, RB), fl(RC), "NAND"},
	Nor:    {Nor, "nor", Logical, op(31, xo1(124)), fl(RA), fl(RS, RB), fl(RC), "NOR"},
	Or:     {Or, "or", Logical, op(31, xo1(444)), fl(RA), fl(RS, RB), fl(RC), "OR"},
	Orc:    {Orc, "orc", Logical, op(31, xo1(412)), fl(RA), fl(RS, RB), fl(RC), "OR with Complement"},
	Ori:    {Ori, "ori", Logical, op(24), fl(RA), fl(RS, UIMM), nil, "OR Immediate"},
	Oris:   {Oris, "oris", Logical, op(25), fl(RA), fl(RS, UIMM), nil, "OR Immediate Shifted"},
	Xor:    {Xor, "xor", Logical, op(31, xo1(316)), fl(RA), fl(RS, RB), fl(RC), "XOR"},
	Xori:   {Xori, "xori", Logical, op(26), fl(RA), fl(RS, UIMM), nil, "XOR Immediate"},
	Xoris:  {Xoris, "xoris", Logical, op(27), fl(RA), fl(RS, UIMM), nil, "XOR Immediate Shifted"},

	Rlwimi: {Rlwimi, "rlwimi", Rotate, op(20), fl(RA), fl(RA, RS, SH, MB, ME), fl(RC), "Rotate Left Word Immediate then Mask Insert"},
	Rlwinm: {Rlwinm, "rlwinm", Rotate, op(21), fl(RA), fl(RS, SH, MB, ME), fl(RC), "Rotate Left Word Immediate then AND with Mask"},
	Rlwnm:  {Rlwnm, "rlwnm", Rotate, op(23), fl(RA), fl(RS, RB, MB, ME), fl(RC), "Rotate Left Word then AND with Mask"},
	Slw:    {Slw, "slw", Shift, op(31, xo1(24)), fl(RA), fl(RS, RB), fl(RC), "Shift Left Word"},
	Sraw:   {Sraw, "sraw", Shift, op(31, xo1(792)), fl(RA, XERCA), fl(RS, RB), fl(RC), "Shift Right Arithmetic Word"},
	Srawi:  {Srawi, "srawi", Shift, op(31, xo1(824)), fl(RA, XERCA), fl(RS, SH), fl(RC), "Shift Right Arithmetic Word Immediate"},
	Srw:    {Srw, "srw", Shift, op(31, xo1(536)), fl(RA), fl(RS, RB), fl(RC), "Shift Right Word"},

	Fadd:    {Fadd, "fadd", Float, op(63, xo4(21)), fl(FRD, FPRF, FPSCR), fl(FRA, FRB), fl(RC), "Floating Add"},
	Fadds:   {Fadds, "fadds", Float, op(59, xo4(21)), fl(FRD, FPRF, FPSCR), fl(FRA, FRB), fl(RC), "Floating Add Single"},
	Fdiv:    {Fdiv, "fdiv", Float, op(63, xo4(18)), fl(FRD, FPRF, FPSCR), fl(FRA, FRB), fl(RC), "Floating Divide"},
	Fdivs:   {Fdivs, "fdivs", Float, op(59, xo4(18)), fl(FRD, FPRF, FPSCR), fl(FRA, FRB), fl(RC), "Floating Divide Single"},
	Fmul:    {Fmul, "fmul", Float, op(63, xo4(25)), fl(FRD, FPRF, FPSCR), fl(FRA, FRC), fl(RC), "Floating Multiply"},
	Fmuls:   {Fmuls, "fmuls", Float, op(59, xo4(25)), fl(FRD, FPRF, FPSCR), fl(FRA, FRC), fl(RC), "Floating Multiply Single"},
	Fres:    {Fres, "fres", Float, op(59, xo4(24)), fl(FRD, FPRF, FPSCR), fl(FRB), fl(RC), "Floating Reciprocal Estimate Single"},
	Frsqrte: {Frsqrte, "frsqrte", Float, op(63, xo4(26)), fl(FRD, FPRF, FPSCR), fl(FRB), fl(RC), "Floating Reciprocal Square Root Estimate"},
	Fsub:    {Fsub, "fsub", Float, op(63, xo4(20)), fl(FRD, FPRF, FPSCR), fl(FRA, FRB), fl(RC), "Floating Subtract"},
	Fsubs:   {Fsubs, "fsubs", Float, op(59, xo4(20)), fl(FRD, FPRF, FPSCR), fl(FRA, FRB), fl(RC), "Floating Subtract Single"},
	Fsel:    {Fsel, "fsel", Float, op(63, xo4(23)), fl(FRD), fl(FRA, FRC, FRB), fl(RC), "Floating Select"},
	Fmadd:   {Fmadd, "fmadd", Float, op(63, xo4(29)), fl(FRD, FPRF, FPSCR), fl(FRA, FRC, FRB), fl(RC), "Floating Multiply-Add"},
	Fmadds:  {Fmadds, "fmadds", Float, op(59, xo4(29)), fl(FRD, FPRF, FPSCR), fl(FRA, FRC, FRB), fl(RC), "Floating Multiply-Add Single"},
	Fmsub:   {Fmsub, "fmsub", Float, op(63, xo4(28)), fl(FRD, FPRF, FPSCR), fl(FRA, FRC, FRB), fl(RC), "Floating Multiply-Subtract"},
	Fmsubs:  {Fmsubs, "fmsubs", Float, op(59, xo4(28)), fl(FRD, FPRF, FPSCR), fl(FRA, FRC, FRB), fl(RC), "Floating Multiply-Subtract Single"},
	Fnmadd:  {Fnmadd, "fnmadd", Float, op(63, xo4(31)), fl(FRD, FPRF, FPSCR), fl(FRA, FRC, FRB), fl(RC), "Floating Negative Multiply-Add"},
	Fnmadds: {Fnmadds, "fnmadds", Float, op(59, xo4(31)), fl(FRD, FPRF, FPSCR), fl(FRA, FRC, FRB), fl(RC), "Floating Negative Multiply-Add Single"},
	Fnmsub:  {Fnmsub, "fnmsub", Float, op(63, xo4(30)), fl(FRD, FPRF, FPSCR), fl(FRA, FRC, FRB), fl(RC), "Floating Negative Multiply-Subtract"},
	Fnmsubs: {Fnmsubs, "fnmsubs", Float, op(59, xo4(30)), fl(FRD, FPRF, FPSCR), fl(FRA, FRC, FRB), fl(RC), "Floating Negative Multiply-Subtract Single"},
	Fctiw:   {Fctiw, "fctiw", Float, op(63, xo1(14)), fl(FRD, FPSCR), fl(FRB), fl(RC), "Floating Convert to Integer Word"},
	Fctiwz:  {Fctiwz, "fctiwz", Float, op(63, xo1(15)), fl(FRD, FPSCR), fl(FRB), fl(RC), "Floating Convert to Integer Word with Round toward Zero"},
	Frsp:    {Frsp, "frsp", Float, op(63, xo1(12)), fl(FRD, FPRF, FPSCR), fl(FRB), fl(RC), "Floating Round to Single"},
	Fcmpo:   {Fcmpo, "fcmpo", FloatCompare, op(63, xo1(32)), fl(CRFD, FPSCR), fl(FRA, FRB), nil, "Floating Compare Ordered"},
	Fcmpu:   {Fcmpu, "fcmpu", FloatCompare, op(63, xo1(0)), fl(CRFD, FPSCR), fl(FRA, FRB), nil, "Floating Compare Unordered"},
	Mcrfs:   {Mcrfs, "mcrfs", FloatStatus, op(63, xo1(64)), fl(CRFD, FPSCR), fl(CRFS, FPSCR), nil, "Move to Condition Register from FPSCR"},
	Mffs:    {Mffs, "mffs", FloatStatus, op(63, xo1(583)), fl(FRD), fl(FPSCR), fl(RC), "Move from FPSCR"},
	Mtfsb0:  {Mtfsb0, "mtfsb0", FloatStatus, op(63, xo1(70)), fl(FPSCR), fl(CRBD), fl(RC), "Move to FPSCR Bit 0"},
	Mtfsb1:  {Mtfsb1, "mtfsb1", FloatStatus, op(63, xo1(38)), fl(FPSCR), fl(CRBD), fl(RC), "Move to FPSCR Bit 1"},
	Mtfsf:   {Mtfsf, "mtfsf", FloatStatus, op(63, xo1(711)), fl(FPSCR), fl(FM, FRB), fl(RC), "Move to FPSCR Fields"},
	Mtfsfi:  {Mtfsfi, "mtfsfi", FloatStatus, op(63, xo1(134)), fl(FPSCR), fl(CRFD, IMM), fl(RC), "Move to FPSCR Field Immediate"},

	Lbz:    {Lbz, "lbz", Load, op(34), fl(RD), fl(RA, D), nil, "Load Byte and Zero"},
	Lbzu:   {Lbzu, "lbzu", Load, op(35), fl(RD, RA), fl(RA, D), nil, "Load Byte and Zero with Update"},
	Lbzx:   {Lbzx, "lbzx", Load, op(31, xo1(87)), fl(RD), fl(RA, RB), nil, "Load Byte and Zero Indexed"},
	Lbzux:  {Lbzux, "lbzux", Load, op(31, xo1(119)), fl(RD, RA), fl(RA, RB), nil, "Load Byte and Zero with Update Indexed"},
	Lha:    {Lha, "lha", Load, op(42), fl(RD), fl(RA, D), nil, "Load Half Word Algebraic"},
	Lhau:   {Lhau, "lhau", Load, op(43), fl(RD, RA), fl(RA, D), nil, "Load Half Word Algebraic with Update"},
	Lhax:   {Lhax, "lhax", Load, op(31, xo1(343)), fl(RD), fl(RA, RB), nil, "Load Half Word Algebraic Indexed"},
	Lhaux:  {Lhaux, "lhaux", Load, op(31, xo1(375)), fl(RD, RA), fl(RA, RB), nil, "Load Half Word Algebraic with Update Indexed"},
	Lhz:    {Lhz, "lhz", Load, op(40), fl(RD), fl(RA, D), nil, "Load Half Word and Zero"},
	Lhzu:   {Lhzu, "lhzu", Load, op(41), fl(RD, RA), fl(RA, D), nil, "Load Half Word and Zero with Update"},
	Lhzx:   {Lhzx, "lhzx", Load, op(31, xo1(279)), fl(RD), fl(RA, RB), nil, "Load Half Word and Zero Indexed"},
	Lhzux:  {Lhzux, "lhzux", Load, op(31, xo1(311)), fl(RD, RA), fl(RA, RB), nil, "Load Half Word and Zero with Update Indexed"},
	Lwz:    {Lwz, "lwz", Load, op(32), fl(RD), fl(RA, D), nil, "Load Word and Zero"},
	Lwzu:   {Lwzu, "lwzu", Load, op(33), fl(RD, RA), fl(RA, D), nil, "Load Word and Zero with Update"},
	Lwzx:   {Lwzx, "lwzx", Load, op(31, xo1(23)), fl(RD), fl(RA, RB), nil, "Load Word and Zero Indexed"},
	Lwzux:  {Lwzux, "lwzux", Load, op(31, xo1(55)), fl(RD, RA), fl(RA, RB), nil, "Load Word and Zero with Update Indexed"},
	Stb:    {Stb, "stb", Store, op(38), nil, fl(RS, RA, D), nil, "Store Byte"},
	Stbu:   {Stbu, "stbu", Store, op(39), fl(RA), fl(RS, RA, D), nil, "Store Byte with Update"},
	Stbx:   {Stbx, "stbx", Store, op(31, xo1(215)), nil, fl(RS, RA, RB), nil, "Store Byte Indexed"},
	Stbux:  {Stbux, "stbux", Store, op(31, xo1(247)), fl(RA), fl(RS, RA, RB), nil, "Store Byte with Update Indexed"},
	Sth:    {Sth, "sth", Store, op(44), nil, fl(RS, RA, D), nil, "Store Half Word"},
	Sthu:   {Sthu, "sthu", Store, op(45), fl(RA), fl(RS, RA, D), nil, "Store Half Word with Update"},
	Sthx:   {Sthx, "sthx", Store, op(31, xo1(407)), nil, fl(RS, RA, RB), nil, "Store Half Word Indexed"},
	Sthux:  {Sthux, "sthux", Store, op(31, xo1(439)), fl(RA), fl(RS, RA, RB), nil, "Store Half Word with Update Indexed"},
	Stw:    {Stw, "stw", Store, op(36), nil, fl(RS, RA, D), nil, "Store Word"},
	Stwu:   {Stwu, "stwu", Store, op(37), fl(RA), fl(RS, RA, D), nil, "Store Word with Update"},
	Stwx:   {Stwx, "stwx", Store, op(31, xo1(151)), nil, fl(RS, RA, RB), nil, "Store Word Indexed"},
	Stwux:  {Stwux, "stwux", Store, op(31, xo1(183)), fl(RA), fl(RS, RA, RB), nil, "Store Word with Update Indexed"},
	Lhbrx:  {Lhbrx, "lhbrx", Load, op(31, xo1(790)), fl(RD), fl(RA, RB), nil, "Load Half Word Byte-Reverse Indexed"},
	Lwbrx:  {Lwbrx, "lwbrx", Load, op(31, xo1(534)), fl(RD), fl(RA, RB), nil, "Load Word Byte-Reverse Indexed"},
	Sthbrx: {Sthbrx, "sthbrx", Store, op(31, xo1(918)), nil, fl(RS, RA, RB), nil, "Store Half Word Byte-Reverse Indexed"},
	Stwbrx: {Stwbrx, "stwbrx", Store, op(31, xo1(662)), nil, fl(RS, RA, RB), nil, "Store Word Byte-Reverse Indexed"},
	Lmw:    {Lmw, "lmw", Load, op(46), fl(RD), fl(RA, D), nil, "Load Multiple Words"},
	Stmw:   {Stmw, "stmw", Store, op(47), nil, fl(RS, RA, D), nil, "Store Multiple Words"},
	Lswi:   {Lswi, "lswi", Load, op(31, xo1(597)), fl(RD), fl(RA, NB), nil, "Load String Word Immediate"},
	Lswx:   {Lswx, "lswx", Load, op(31, xo1(533)), fl(RD), fl(RA, RB), nil, "Load String Word Indexed"},
	Stswi:  {Stswi, "stswi", Store, op(31, xo1(725)), nil, fl(RS, RA, NB), nil, "Store String Word Immediate"},
	Stswx:  {Stswx, "stswx", Store, op(31, xo1(661)), nil, fl(RS, RA, RB), nil, "Store String Word Indexed"},

	Eieio: {Eieio, "eieio", System, op(31, xo1(854)), nil, nil, nil, "Enforce In-Order Execution of I/O"},
	Isync: {Isync, "isync", System, op(19, xo1(150)), nil, nil, nil, "Instruction Synchronise"},
	Lwarx: {Lwarx, "lwarx", Load, op(31, xo1(20)), fl(RD, RSRV), fl(RA, RB), nil, "Load Word and Reserve Indexed"},
	Stwcx: {Stwcx, "stwcx.", Store, op(31, xo1(150), is(RC, 1)), fl(RSRV, CR0), fl(RS, RA, RB), nil, "Store Word Conditional Indexed"},
	Sync:  {Sync, "sync", System, op(31, xo1(598)), nil, nil, nil, "Synchronise"},

	Lfd:    {Lfd, "lfd", LoadFloat, op(50), fl(FRD), fl(RA, D), nil, "Load Floating-Point Double"},
	Lfdu:   {Lfdu, "lfdu", LoadFloat, op(51), fl(FRD, RA), fl(RA, D), nil, "Load Floating-Point Double with Update"},
	Lfdx:   {Lfdx, "lfdx", LoadFloat, op(31, xo1(599)), fl(FRD), fl(RA, RB), nil, "Load Floating-Point Double Indexed"},
	Lfdux:  {Lfdux, "lfdux", LoadFloat, op(31, xo1(631)), fl(FRD, RA), fl(RA, RB), nil, "Load Floating-Point Double with Update Indexed"},
	Lfs:    {Lfs, "lfs", LoadFloat, op(48), fl(FRD), fl(RA, D), nil, "Load Floating-Point Single"},
	Lfsu:   {Lfsu, "lfsu", LoadFloat, op(49), fl(FRD, RA), fl(RA, D), nil, "Load Floating-Point Single with Update"},
	Lfsx:   {Lfsx, "lfsx", LoadFloat, op(31, xo1(535)), fl(FRD), fl(RA, RB), nil, "Load Floating-Point Single Indexed"},
	Lfsux:  {Lfsux, "lfsux", LoadFloat, op(31, xo1(567)), fl(FRD, RA), fl(RA, RB), nil, "Load Floating-Point Single with Update Indexed"},
	Stfd:   {Stfd, "stfd", StoreFloat, op(54), nil, fl(FRS, RA, D), nil, "Store Floating-Point Double"},
	Stfdu:  {Stfdu, "stfdu", StoreFloat, op(55), fl(RA), fl(FRS, RA, D), nil, "Store Floating-Point Double with Update"},
	Stfdx:  {Stfdx, "stfdx", StoreFloat, op(31, xo1(727)), nil, fl(FRS, RA, RB), nil, "Store Floating-Point Double Indexed"},
	Stfdux: {Stfdux, "stfdux", StoreFloat, op(31, xo1(759)), fl(RA), fl(FRS, RA, RB), nil, "Store Floating-Point Double with Update Indexed"},
	Stfiwx: {Stfiwx, "stfiwx", StoreFloat, op(31, xo1(983)), nil, fl(FRS, RA, RB), nil, "Store Floating-Point as Integer Word Indexed"},
	Stfs:   {Stfs, "stfs", StoreFloat, op(52), nil, fl(FRS, RA, D), nil, "Store Floating-Point Single"},
	Stfsu:  {Stfsu, "stfsu", StoreFloat, op(53), fl(RA), fl(FRS, RA, D), nil, "Store Floating-Point Single with Update"},
	Stfsx:  {Stfsx, "stfsx", StoreFloat, op(31, xo1(663)), nil, fl(FRS, RA, RB), nil, "Store Floating-Point Single Indexed"},
	Stfsux: {Stfsux, "stfsux", StoreFloat, op(31, xo1(695)), fl(RA), fl(FRS, RA, RB), nil, "Store Floating-Point Single with Update Indexed"},

	Fabs:  {Fabs, "fabs", Float, op(63, xo1(264)), fl(FRD), fl(FRB), fl(RC), "Floating Absolute Value"},
	Fmr:   {Fmr, "fmr", Float, op(63, xo1(72)), fl(FRD), fl(FRB), fl(RC), "Floating Move Register"},
	Fnabs: {Fnabs, "fnabs", Float, op(63, xo1(136)), fl(FRD), fl(FRB), fl(RC), "Floating Negative Absolute Value"},
	Fneg:  {Fneg, "fneg", Float, op(63, xo1(40)), fl(FRD), fl(FRB), fl(RC), "Floating Negate"},

	B:     {B, "b", Branch, op(18), nil, fl(LI), fl(AA, LK), "Branch"},
	Bc:    {Bc, "bc", Branch, op(16), fl(CTR), fl(BO, BI, BD, CTR), fl(AA, LK), "Branch Conditional"},
	Bcctr: {Bcctr, "bcctr", Branch, op(19, xo1(528)), nil, fl(BO, BI, CTR), fl(LK), "Branch Conditional to CTR"},
	Bclr:  {Bclr, "bclr", Branch, op(19, xo1(16)), fl(CTR), fl(BO, BI, LR, CTR), fl(LK), "Branch Conditional to LR"},

	Crand:  {Crand, "crand", ConditionRegister, op(19, xo1(257)), fl(CRBD), fl(CRBA, CRBB), nil, "Condition Register AND"},
	Crandc: {Crandc, "crandc", ConditionRegister, op(19, xo1(129)), fl(CRBD), fl(CRBA, CRBB), nil, "Condition Register AND with Complement"},
	Creqv:  {Creqv, "creqv", ConditionRegister, op(19, xo1(289)), fl(CRBD), fl(CRBA, CRBB), nil, "Condition Register Equivalent"},
	Crnand: {Crnand, "crnand", ConditionRegister, op(19, xo1(225)), fl(CRBD), fl(CRBA, CRBB), nil, "Condition Register NAND"},
	Crnor:  {Crnor, "crnor", ConditionRegister, op(19, xo1(33)), fl(CRBD), fl(CRBA, CRBB), nil, "Condition Register NOR"},
	Cror:   {Cror, "cror", ConditionRegister, op(19, xo1(449)), fl(CRBD), fl(CRBA, CRBB), nil, "Condition Register OR"},
	Crorc:  {Crorc, "crorc", ConditionRegister, op(19, xo1(417)), fl(CRBD), fl(CRBA, CRBB), nil, "Condition Register OR with Complement"},
	Crxor:  {Crxor, "crxor", ConditionRegister, op(19, xo1(193)), fl(CRBD), fl(CRBA, CRBB), nil, "Condition Register XOR"},
	Mcrf:   {Mcrf, "mcrf", ConditionRegister, op(19, xo1(0)), fl(CRFD), fl(CRFS), nil, "Move Condition Register Field"},

	Rfi: {Rfi, "rfi", System, op(19, xo1(50)), fl(MSR), nil, nil, "Return from Interrupt"},
	Kc:  {Kc, "kc", System, op(17, is(LK, 1)), nil, fl(KCN), nil, "Kernel Call"},
	Sc:  {Sc, "sc", System, op(17, is(Bit30, 1), is(LK, 0)), nil, nil, nil, "System Call"},
	Tw:  {Tw, "tw", Trap, op(31, xo1(4)), nil, fl(TO, RA, RB), nil, "Trap Word"},
	Twi: {Twi, "twi", Trap, op(3), nil, fl(TO, RA, SIMM), nil, "Trap Word Immediate"},

	Mcrxr: {Mcrxr, "mcrxr", ConditionRegister, op(31, xo1(512)), fl(CRFD, XERSO, XEROV, XERCA), fl(XERSO, XEROV, XERCA), nil, "Move to Condition Register from XER"},
	Mfcr:  {Mfcr, "mfcr", ConditionRegister, op(31, xo1(19)), fl(RD), nil, nil, "Move from Condition Register"},
	Mfmsr: {Mfmsr, "mfmsr", System, op(31, xo1(83)), fl(RD), fl(MSR), nil, "Move from Machine State Register"},
	Mfspr: {Mfspr, "mfspr", System, op(31, xo1(339)), fl(RD), fl(SPR), nil, "Move from Special Purpose Register"},
	Mftb:  {Mftb, "mftb", System, op(31, xo1(371)), fl(RD), fl(TBR), nil, "Move from Time Base Register"},
	Mtcrf: {Mtcrf, "mtcrf", ConditionRegister, op(31, xo1(144)), nil, fl(CRM, RS), nil, "Move to Condition Register Fields"},
	Mtmsr: {Mtmsr, "mtmsr", System, op(31, xo1(146)), fl(MSR), fl(RS), nil, "Move to Machine State Register"},
	Mtspr: {Mtspr, "mtspr", System, op(31, xo1(467)), fl(SPR), fl(RS), nil, "Move to Special Purpose Register"},

	Dcbf:   {Dcbf, "dcbf", Cache, op(31, xo1(86)), nil, fl(RA, RB), nil, "Data Cache Block Flush"},
	Dcbi:   {Dcbi, "dcbi", Cache, op(31, xo1(470)), nil, fl(RA, RB), nil, "Data Cache Block Invalidate"},
	Dcbst:  {Dcbst, "dcbst", Cache, op(31, xo1(54)), nil, fl(RA, RB), nil, "Data Cache Block Store"},
	Dcbt:   {Dcbt, "dcbt", Cache, op(31, xo1(278)), nil, fl(RA, RB), nil, "Data Cache Block Touch"},
	Dcbtst: {Dcbtst, "dcbtst", Cache, op(31, xo1(246)), nil, fl(RA, RB), nil, "Data Cache Block Touch for Store"},
	Dcbz:   {Dcbz, "dcbz", Store, op(31, xo1(1014)), nil, fl(RA, RB), nil, "Data Cache Block Clear to Zero"},
	Icbi:   {Icbi, "icbi", Cache, op(31, xo1(982)), nil, fl(RA, RB), nil, "Instruction Cache Block Invalidate"},
	DcbzL:  {DcbzL, "dcbz_l", Store, op(4, xo1(1014)), nil, fl(RA, RB), nil, "Data Cache Block Clear to Zero Locked"},

	Mfsr:    {Mfsr, "mfsr", System, op(31, xo1(595)), fl(RD), fl(SR), nil, "Move from Segment Register"},
	Mfsrin:  {Mfsrin, "mfsrin", System, op(31, xo1(659)), fl(RD), fl(RB), nil, "Move from Segment Register Indirect"},
	Mtsr:    {Mtsr, "mtsr", System, op(31, xo1(210)), nil, fl(RS, SR), nil, "Move to Segment Register"},
	Mtsrin:  {Mtsrin, "mtsrin", System, op(31, xo1(242)), nil, fl(RS, RB), nil, "Move to Segment Register Indirect"},
	Tlbie:   {Tlbie, "tlbie", Cache, op(31, xo1(306)), nil, fl(RB), nil, "Translation Lookaside Buffer Invalidate Entry"},
	Tlbsync: {Tlbsync, "tlbsync", Cache, op(31, xo1(566)), nil, nil, nil, "Translation Lookaside Buffer Synchronise"},
	Eciwx:   {Eciwx, "eciwx", System, op(31, xo1(310)), fl(RD), fl(RA, RB), nil, "External Control In Word Indexed"},
	Ecowx:   {Ecowx, "ecowx", System, op(31, xo1(438)), nil, fl(RS, RA, RB), nil, "External Control Out Word Indexed"},

	PsqL:    {PsqL, "psq_l", LoadPaired, op(56), fl(FRD), fl(RA, QD, W, I), nil, "Paired Single Quantized Load"},
	PsqLu:   {PsqLu, "psq_lu", LoadPaired, op(57), fl(FRD, RA), fl(RA, QD, W, I), nil, "Paired Single Quantized Load with Update"},
	PsqLx:   {PsqLx, "psq_lx", LoadPaired, op(4, xo3(6)), fl(FRD), fl(RA, RB, QW, QI), nil, "Paired Single Quantized Load Indexed"},
	PsqLux:  {PsqLux, "psq_lux", LoadPaired, op(4, xo3(38)), fl(FRD, RA), fl(RA, RB, QW, QI), nil, "Paired Single Quantized Load with Update Indexed"},
	PsqSt:   {PsqSt, "psq_st", StorePaired, op(60), nil, fl(FRS, RA, QD, W, I), nil, "Paired Single Quantized Store"},
	PsqStu:  {PsqStu, "psq_stu", StorePaired, op(61), fl(RA), fl(FRS, RA, QD, W, I), nil, "Paired Single Quantized Store with Update"},
	PsqStx:  {PsqStx, "psq_stx", StorePaired, op(4, xo3(7)), nil, fl(FRS, RA, RB, QW, QI), nil, "Paired Single Quantized Store Indexed"},
	PsqStux: {PsqStux, "psq_stux", StorePaired, op(4, xo3(39)), fl(RA), fl(FRS, RA, RB, QW, QI), nil, "Paired Single Quantized Store with Update Indexed"},

	PsAdd:     {PsAdd, "ps_add", Paired, op(4, xo4(21)), fl(FRD, FPRF, FPSCR), fl(FRA, FRB), fl(RC), "Paired Single Add"},
	PsDiv:     {PsDiv, "ps_div", Paired, op(4, xo4(18)), fl(FRD, FPRF, FPSCR), fl(FRA, FRB), fl(RC), "Paired Single Divide"},
	PsMul:     {PsMul, "ps_mul", Paired, op(4, xo4(25)), fl(FRD, FPRF, FPSCR), fl(FRA, FRC), fl(RC), "Paired Single Multiply"},
	PsSub:     {PsSub, "ps_sub", Paired, op(4, xo4(20)), fl(FRD, FPRF, FPSCR), fl(FRA, FRB), fl(RC), "Paired Single Subtract"},
	PsAbs:     {PsAbs, "ps_abs", Paired, op(4, xo1(264)), fl(FRD), fl(FRB), fl(RC), "Paired Single Absolute"},
	PsNabs:    {PsNabs, "ps_nabs", Paired, op(4, xo1(136)), fl(FRD), fl(FRB), fl(RC), "Paired Single Negate Absolute"},
	PsNeg:     {PsNeg, "ps_neg", Paired, op(4, xo1(40)), fl(FRD), fl(FRB), fl(RC), "Paired Single Negate"},
	PsSel:     {PsSel, "ps_sel", Paired, op(4, xo4(23)), fl(FRD), fl(FRA, FRC, FRB), fl(RC), "Paired Single Select"},
	PsRes:     {PsRes, "ps_res", Paired, op(4, xo4(24)), fl(FRD, FPRF, FPSCR), fl(FRB), fl(RC), "Paired Single Reciprocal Estimate"},
	PsRsqrte:  {PsRsqrte, "ps_rsqrte", Paired, op(4, xo4(26)), fl(FRD, FPRF, FPSCR), fl(FRB), fl(RC), "Paired Single Reciprocal Square Root Estimate"},
	PsMsub:    {PsMsub, "ps_msub", Paired, op(4, xo4(28)), fl(FRD, FPRF, FPSCR), fl(FRA, FRC, FRB), fl(RC), "Paired Single Multiply and Subtract"},
	PsMadd:    {PsMadd, "ps_madd", Paired, op(4, xo4(29)), fl(FRD, FPRF, FPSCR), fl(FRA, FRC, FRB), fl(RC), "Paired Single Multiply and Add"},
	PsNmsub:   {PsNmsub, "ps_nmsub", Paired, op(4, xo4(30)), fl(FRD, FPRF, FPSCR), fl(FRA, FRC, FRB), fl(RC), "Paired Single Negate Multiply and Subtract"},
	PsNmadd:   {PsNmadd, "ps_nmadd", Paired, op(4, xo4(31)), fl(FRD, FPRF, FPSCR), fl(FRA, FRC, FRB), fl(RC), "Paired Single Negate Multiply and Add"},
	PsMr:      {PsMr, "ps_mr", Paired, op(4, xo1(72)), fl(FRD), fl(FRB), fl(RC), "Paired Single Move Register"},
	PsSum0:    {PsSum0, "ps_sum0", Paired, op(4, xo4(10)), fl(FRD, FPRF, FPSCR), fl(FRA, FRC, FRB), fl(RC), "Paired Single Sum High"},
	PsSum1:    {PsSum1, "ps_sum1", Paired, op(4, xo4(11)), fl(FRD, FPRF, FPSCR), fl(FRA, FRC, FRB), fl(RC), "Paired Single Sum Low"},
	PsMuls0:   {PsMuls0, "ps_muls0", Paired, op(4, xo4(12)), fl(FRD, FPRF, FPSCR), fl(FRA, FRC), fl(RC), "Paired Single Multiply Scalar High"},
	PsMuls1:   {PsMuls1, "ps_muls1", Paired, op(4, xo4(13)), fl(FRD, FPRF, FPSCR), fl(FRA, FRC), fl(RC), "Paired Single Multiply Scalar Low"},
	PsMadds0:  {PsMadds0, "ps_madds0", Paired, op(4, xo4(14)), fl(FRD, FPRF, FPSCR), fl(FRA, FRC, FRB), fl(RC), "Paired Single Multiply and Add Scalar High"},
	PsMadds1:  {PsMadds1, "ps_madds1", Paired, op(4, xo4(15)), fl(FRD, FPRF, FPSCR), fl(FRA, FRC, FRB), fl(RC), "Paired Single Multiply and Add Scalar Low"},
	PsCmpu0:   {PsCmpu0, "ps_cmpu0", FloatCompare, op(4, xo1(0)), fl(CRFD, FPSCR), fl(FRA, FRB), nil, "Paired Single Compare Unordered High"},
	PsCmpo0:   {PsCmpo0, "ps_cmpo0", FloatCompare, op(4, xo1(32)), fl(CRFD, FPSCR), fl(FRA, FRB), nil, "Paired Single Compare Ordered High"},
	PsCmpu1:   {PsCmpu1, "ps_cmpu1", FloatCompare, op(4, xo1(64)), fl(CRFD, FPSCR), fl(FRA, FRB), nil, "Paired Single Compare Unordered Low"},
	PsCmpo1:   {PsCmpo1, "ps_cmpo1", FloatCompare, op(4, xo1(96)), fl(CRFD, FPSCR), fl(FRA, FRB), nil, "Paired Single Compare Ordered Low"},
	PsMerge00: {PsMerge00, "ps_merge00", Paired, op(4, xo1(528)), fl(FRD), fl(FRA, FRB), fl(RC), "Paired Single Merge High"},
	PsMerge01: {PsMerge01, "ps_merge01", Paired, op(4, xo1(560)), fl(FRD), fl(FRA, FRB), fl(RC), "Paired Single Merge Direct"},
	PsMerge10: {PsMerge10, "ps_merge10", Paired, op(4, xo1(592)), fl(FRD), fl(FRA, FRB), fl(RC), "Paired Single Merge Swapped"},
	PsMerge11: {PsMerge11, "ps_merge11", Paired, op(4, xo1(624)), fl(FRD), fl(FRA, FRB), fl(RC), "Paired Single Merge Low"},
}
