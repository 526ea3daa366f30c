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
	"fmt"
	"io"
	"sort"
	"time"
)

// ProfileEntry is the execution profile of a single block.
type ProfileEntry struct {
	Start    uint32
	Length   int
	CallOuts int
	Count    uint64
	Elapsed  time.Duration
}

func (p ProfileEntry) String() string {
	return fmt.Sprintf("%08x %4d %4d %10d %12v", p.Start, p.Length, p.CallOuts, p.Count, p.Elapsed)
}

// Profile returns the profile of every block in the cache that has been
// executed at least once, ordered by the time spent executing the block.
// Profiling only takes place when the OptProfile flag is set.
func (cmp *Compiler) Profile() []ProfileEntry {
	var p []ProfileEntry
	for _, b := range cmp.cache.blockList() {
		c := b.count.Load()
		if c == 0 {
			continue
		}
		p = append(p, ProfileEntry{
			Start:    b.Start,
			Length:   b.Length,
			CallOuts: b.CallOuts,
			Count:    c,
			Elapsed:  time.Duration(b.elapsed.Load()),
		})
	}

	sort.SliceStable(p, func(i, j int) bool {
		return p[i].Elapsed > p[j].Elapsed
	})

	return p
}

// WriteProfile writes the first n entries of the profile to io.Writer. All
// entries are written if n is less than one.
func (cmp *Compiler) WriteProfile(output io.Writer, n int) error {
	p := cmp.Profile()
	if n > 0 && n < len(p) {
		p = p[:n]
	}

	if _, err := fmt.Fprintf(output, "%-8s %4s %4s %10s %12s\n", "start", "len", "call", "count", "time"); err != nil {
		return err
	}
	for _, e := range p {
		if _, err := fmt.Fprintln(output, e); err != nil {
			return err
		}
	}
	return nil
}
