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

import (
	"math/rand/v2"
	"testing"

	"github.com/jetsetilly/espresso/test"
)

func TestQuickDecode(t *testing.T) {
	// quick decode must agree with a search of the definitions
	rnd := rand.New(rand.NewPCG(1, 2))
	for range 100000 {
		ins := Instruction(rnd.Uint32())
		test.DemandEquality(t, Decode(ins), match(ins), ins)
	}

	for _, defn := range Definitions() {
		ins := Encode(defn.ID)
		test.DemandEquality(t, Decode(ins), match(ins), defn.Name)

		// fields outside the opcode have no effect on decoding
		ins |= Instruction(RA.Mask() | RB.Mask() | RD.Mask())
		ins = Instruction(uint32(ins) &^ (1<<quickBits - 1)) | Instruction(uint32(Encode(defn.ID))&(1<<quickBits-1))
		test.ExpectEquality(t, Decode(ins), match(ins), defn.Name)
	}
}
