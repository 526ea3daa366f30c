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

package jit

import (
	"sync"
	"sync/atomic"
	"unsafe"
)

// the guest address of a block is split into three index levels. the lowest
// two bits are always zero.
const (
	level1Bits = 8
	level2Bits = 8
	level3Bits = 14

	level2Shift = 2 + level3Bits
	level1Shift = level2Shift + level2Bits
)

// each entry is the index of a block in the block list plus one. zero means
// that there is no block for the address.
type level3 [1 << level3Bits]atomic.Int32
type level2 [1 << level2Bits]atomic.Pointer[level3]
type level1 [1 << level1Bits]atomic.Pointer[level2]

func split(addr uint32) (uint32, uint32, uint32) {
	return addr >> level1Shift,
		(addr >> level2Shift) & (1<<level2Bits - 1),
		(addr >> 2) & (1<<level3Bits - 1)
}

// the nominal data size of a block for the purposes of cache accounting
var blockDataSize = int(unsafe.Sizeof(Block{}))

// cache of compiled blocks. lookups are lock free. insertions and
// invalidations are serialised.
type cache struct {
	index level1

	// insertions, invalidations and clears
	crit sync.Mutex

	// blocks are appended and never changed. the list is replaced when the
	// cache is cleared
	blocks atomic.Pointer[[]*Block]

	codeSize  int
	dataSize  int
	codeLimit int
	dataLimit int
}

func newCache(codeLimit, dataLimit int) *cache {
	c := &cache{
		codeLimit: codeLimit,
		dataLimit: dataLimit,
	}
	c.blocks.Store(&[]*Block{})
	return c
}

// lookup returns the block for the address or nil if there is no valid
// block.
func (c *cache) lookup(addr uint32) *Block {
	i1, i2, i3 := split(addr)

	l2 := c.index[i1].Load()
	if l2 == nil {
		return nil
	}
	l3 := l2[i2].Load()
	if l3 == nil {
		return nil
	}
	idx := int(l3[i3].Load())
	if idx == 0 {
		return nil
	}

	// the block list may have been replaced by a concurrent clear
	blocks := *c.blocks.Load()
	if idx > len(blocks) {
		return nil
	}
	b := blocks[idx-1]
	if b.Start != addr {
		return nil
	}
	return b
}

func (c *cache) entry(addr uint32) *atomic.Int32 {
	i1, i2, i3 := split(addr)

	l2 := c.index[i1].Load()
	if l2 == nil {
		l2 = &level2{}
		c.index[i1].Store(l2)
	}
	l3 := l2[i2].Load()
	if l3 == nil {
		l3 = &level3{}
		l2[i2].Store(l3)
	}
	return &l3[i3]
}

// insert a block into the cache. returns false if the cache is full, in
// which case the block has not been inserted.
func (c *cache) insert(b *Block) bool {
	c.crit.Lock()
	defer c.crit.Unlock()

	if c.codeSize+b.CodeSize > c.codeLimit || c.dataSize+blockDataSize > c.dataLimit {
		return false
	}

	blocks := append(*c.blocks.Load(), b)
	c.blocks.Store(&blocks)
	c.codeSize += b.CodeSize
	c.dataSize += blockDataSize

	// the index is updated after the block list so that a lookup never
	// sees an index that is not in the list
	c.entry(b.Start).Store(int32(len(blocks)))

	return true
}

// invalidate all blocks that include any address in the range. returns the
// number of blocks invalidated.
func (c *cache) invalidate(addr uint32, size uint32) int {
	c.crit.Lock()
	defer c.crit.Unlock()

	var n int
	for i, b := range *c.blocks.Load() {
		if !b.overlaps(addr, size) {
			continue
		}
		e := c.entry(b.Start)
		if e.CompareAndSwap(int32(i+1), 0) {
			n++
		}
	}
	return n
}

// clear the cache of all blocks.
func (c *cache) clear() {
	c.crit.Lock()
	defer c.crit.Unlock()

	for i := range c.index {
		c.index[i].Store(nil)
	}
	c.blocks.Store(&[]*Block{})
	c.codeSize = 0
	c.dataSize = 0
}

// blockList returns the blocks that have been inserted since the last
// clear, including any that have been invalidated.
func (c *cache) blockList() []*Block {
	return *c.blocks.Load()
}

// sizes returns the current code and data sizes.
func (c *cache) sizes() (int, int) {
	c.crit.Lock()
	defer c.crit.Unlock()
	return c.codeSize, c.dataSize
}
