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

package memorymap_test

import (
	"testing"

	"github.com/jetsetilly/espresso/hardware/memory/memorymap"
	"github.com/jetsetilly/espresso/test"
)

const validMemMap = `01000000 -> 01ffffff	System
02000000 -> 0fffffff	Code
10000000 -> 4fffffff	Application
e0000000 -> e3ffffff	Foreground
f4000000 -> f5ffffff	MEM1
ffc00000 -> ffc1ffff	LockedCache
`

func TestSummary(t *testing.T) {
	test.ExpectEquality(t, memorymap.Summary(), validMemMap)
}

func TestRanges(t *testing.T) {
	// ranges are in order and do not overlap
	for i := 1; i < len(memorymap.Ranges); i++ {
		test.ExpectSuccess(t, memorymap.Ranges[i-1].Memtop < memorymap.Ranges[i].Origin)
	}
}

func TestMapAddress(t *testing.T) {
	a, _ := memorymap.MapAddress(0)
	test.ExpectEquality(t, a, memorymap.Undefined)

	a, r := memorymap.MapAddress(0x02000100)
	test.ExpectEquality(t, a, memorymap.Code)
	test.ExpectEquality(t, r.Origin, memorymap.OriginCode)
	test.ExpectEquality(t, r.Size(), uint32(0x0E000000))

	a, _ = memorymap.MapAddress(memorymap.MemtopLockedCache)
	test.ExpectEquality(t, a, memorymap.LockedCache)

	a, _ = memorymap.MapAddress(memorymap.MemtopLockedCache + 1)
	test.ExpectEquality(t, a, memorymap.Undefined)

	test.ExpectSuccess(t, memorymap.IsMapped(memorymap.OriginMEM1, 4))
	test.ExpectFailure(t, memorymap.IsMapped(memorymap.MemtopMEM1-1, 4))
	test.ExpectFailure(t, memorymap.IsMapped(0xFFFFFFFC, 4))
}
