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

package test

import (
	"fmt"
)

// CappedWriter is an implementation of io.Writer that keeps the first size
// bytes written to it. Anything written after that is counted and discarded.
//
// Truncation is not an error. Write always reports the whole of p as
// written so that fmt.Fprint and friends never fail part way through a test.
type CappedWriter struct {
	buffer  []byte
	size    int
	dropped int
}

// NewCappedWriter is the preferred method of initialisation for the
// CappedWriter type.
func NewCappedWriter(size int) (*CappedWriter, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid size for CappedWriter (%d)", size)
	}
	return &CappedWriter{
		size:   size,
		buffer: make([]byte, 0, size),
	}, nil
}

func (c *CappedWriter) String() string {
	return string(c.buffer)
}

// Dropped returns the number of bytes discarded since the last Reset().
func (c *CappedWriter) Dropped() int {
	return c.dropped
}

// Reset empties the writer's buffer and the dropped count.
func (c *CappedWriter) Reset() {
	c.buffer = c.buffer[:0]
	c.dropped = 0
}

// Write implements io.Writer.
func (c *CappedWriter) Write(p []byte) (int, error) {
	keep := min(len(p), c.size-len(c.buffer))
	c.buffer = append(c.buffer, p[:keep]...)
	c.dropped += len(p) - keep
	return len(p), nil
}
