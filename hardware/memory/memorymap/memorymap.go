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

package memorymap

import "fmt"

// Area represents the different areas of memory.
type Area int

// The different memory areas in the guest address space.
const (
	Undefined Area = iota
	System
	Code
	Application
	Foreground
	MEM1
	LockedCache
)

func (a Area) String() string {
	switch a {
	case System:
		return "System"
	case Code:
		return "Code"
	case Application:
		return "Application"
	case Foreground:
		return "Foreground"
	case MEM1:
		return "MEM1"
	case LockedCache:
		return "LockedCache"
	}
	return "undefined"
}

// The origin and memory top for each area of memory. Memtop values are
// inclusive.
const (
	OriginSystem      = uint32(0x01000000)
	MemtopSystem      = uint32(0x01FFFFFF)
	OriginCode        = uint32(0x02000000)
	MemtopCode        = uint32(0x0FFFFFFF)
	OriginApplication = uint32(0x10000000)
	MemtopApplication = uint32(0x4FFFFFFF)
	OriginForeground  = uint32(0xE0000000)
	MemtopForeground  = uint32(0xE3FFFFFF)
	OriginMEM1        = uint32(0xF4000000)
	MemtopMEM1        = uint32(0xF5FFFFFF)
	OriginLockedCache = uint32(0xFFC00000)
	MemtopLockedCache = uint32(0xFFC1FFFF)
)

// Range is a contiguous area of the guest address space.
type Range struct {
	Area   Area
	Origin uint32
	Memtop uint32
}

// Size of the range in bytes.
func (r Range) Size() uint32 {
	return r.Memtop - r.Origin + 1
}

// Contains returns true if the address is inside the range.
func (r Range) Contains(addr uint32) bool {
	return addr >= r.Origin && addr <= r.Memtop
}

func (r Range) String() string {
	return fmt.Sprintf("%08x -> %08x\t%s", r.Origin, r.Memtop, r.Area)
}

// Ranges lists every mapped range in address order.
var Ranges = [...]Range{
	{Area: System, Origin: OriginSystem, Memtop: MemtopSystem},
	{Area: Code, Origin: OriginCode, Memtop: MemtopCode},
	{Area: Application, Origin: OriginApplication, Memtop: MemtopApplication},
	{Area: Foreground, Origin: OriginForeground, Memtop: MemtopForeground},
	{Area: MEM1, Origin: OriginMEM1, Memtop: MemtopMEM1},
	{Area: LockedCache, Origin: OriginLockedCache, Memtop: MemtopLockedCache},
}

// MapAddress returns the area the address falls within and the range
// describing it. Addresses outside any range return Undefined.
func MapAddress(addr uint32) (Area, Range) {
	for _, r := range Ranges {
		if r.Contains(addr) {
			return r.Area, r
		}
	}
	return Undefined, Range{}
}

// IsMapped returns true if every byte of the access is inside a single
// mapped range.
func IsMapped(addr uint32, size uint32) bool {
	a, r := MapAddress(addr)
	if a == Undefined {
		return false
	}
	if size == 0 {
		return true
	}
	end := uint64(addr) + uint64(size) - 1
	return end <= uint64(r.Memtop)
}
