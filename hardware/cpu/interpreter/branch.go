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

package interpreter

import (
	"github.com/jetsetilly/espresso/hardware/cpu/instructions"
)

func (t *Table) registerBranch() {
	t.register(instructions.B, b)
	t.register(instructions.Bc, bc)
	t.register(instructions.Bcctr, bcctr)
	t.register(instructions.Bclr, bclr)
}

func b(st *State, ins instructions.Instruction) {
	target := uint32(ins.LI())
	if !ins.AA() {
		target += st.CIA
	}
	if ins.LK() {
		st.LR = st.CIA + 4
	}
	st.NIA = target
}

// branchCondition decrements CTR if required by the BO field and returns true
// if the branch is taken.
func (st *State) branchCondition(ins instructions.Instruction, useCTR bool) bool {
	bo := ins.BO()

	ctrOK := true
	if useCTR && bo&0x04 == 0 {
		st.CTR--
		ctrOK = (st.CTR != 0) != (bo&0x02 != 0)
	}

	condOK := bo&0x10 != 0 || st.CR.Bit(ins.BI()) == (bo&0x08 != 0)

	return ctrOK && condOK
}

func bc(st *State, ins instructions.Instruction) {
	taken := st.branchCondition(ins, true)
	if ins.LK() {
		st.LR = st.CIA + 4
	}
	if taken {
		target := uint32(ins.BD())
		if !ins.AA() {
			target += st.CIA
		}
		st.NIA = target
	}
}

// bcctr never decrements CTR.
func bcctr(st *State, ins instructions.Instruction) {
	taken := st.branchCondition(ins, false)
	target := st.CTR &^ 3
	if ins.LK() {
		st.LR = st.CIA + 4
	}
	if taken {
		st.NIA = target
	}
}

func bclr(st *State, ins instructions.Instruction) {
	taken := st.branchCondition(ins, true)

	// the target is read before LR is updated
	target := st.LR &^ 3
	if ins.LK() {
		st.LR = st.CIA + 4
	}
	if taken {
		st.NIA = target
	}
}
