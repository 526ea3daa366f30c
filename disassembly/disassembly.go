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

package disassembly

import (
	"encoding/binary"

	"github.com/jetsetilly/espresso/curated"
	"github.com/jetsetilly/espresso/hardware/cpu/instructions"
	"github.com/jetsetilly/espresso/hardware/memory"
)

// Sentinal errors.
const (
	Unaligned = "disassembly: %d bytes is not a whole number of instructions"
	Unmapped  = "disassembly: %d bytes at %08x is not in mapped memory"
)

// Disassembly represents the disassembly of a contiguous block of
// instructions.
type Disassembly struct {
	// address of the first entry
	Origin uint32

	// one entry for every word in the block
	Entries []*Entry

	// formatting information for all entries
	fields fields
}

func newDisassembly(origin uint32, n int, word func(i int) uint32) *Disassembly {
	dsm := &Disassembly{
		Origin:  origin,
		Entries: make([]*Entry, n),
	}
	for i := range n {
		e := Format(origin+uint32(i*4), instructions.Instruction(word(i)))
		dsm.Entries[i] = e
		dsm.fields.update(e)
	}
	return dsm
}

// FromBytes disassembles a big-endian binary that would be loaded at the
// origin address.
func FromBytes(origin uint32, data []byte) (*Disassembly, error) {
	if len(data)%4 != 0 {
		return nil, curated.Errorf(Unaligned, len(data))
	}
	return newDisassembly(origin, len(data)/4, func(i int) uint32 {
		return binary.BigEndian.Uint32(data[i*4:])
	}), nil
}

// FromMemory disassembles n bytes of guest memory starting at origin.
func FromMemory(mem *memory.Memory, origin uint32, n uint32) (*Disassembly, error) {
	if n%4 != 0 {
		return nil, curated.Errorf(Unaligned, n)
	}
	if !mem.IsMapped(origin, n) {
		return nil, curated.Errorf(Unmapped, n, origin)
	}
	return newDisassembly(origin, int(n/4), func(i int) uint32 {
		return mem.Read32(origin + uint32(i*4))
	}), nil
}

// GetEntryByAddress returns the disassembly entry at the specified address.
func (dsm *Disassembly) GetEntryByAddress(address uint32) (*Entry, bool) {
	if address < dsm.Origin || address&3 != 0 {
		return nil, false
	}
	idx := int((address - dsm.Origin) / 4)
	if idx >= len(dsm.Entries) {
		return nil, false
	}
	return dsm.Entries[idx], true
}
