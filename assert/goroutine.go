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

// Package assert contains checks that are used to catch programming errors
// during development. They are not intended to catch user errors.
package assert

import (
	"bytes"
	"runtime"
	"strconv"
	"sync/atomic"
)

// GetGoRoutineID returns an identifier for the calling goroutine. It is
// (a) different between goroutines and (b) consistent for a given goroutine.
// It should only ever be used for debugging or testing purposes.
func GetGoRoutineID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	b = b[:bytes.IndexByte(b, ' ')]
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}

// Owner records the goroutine that is permitted to modify a structure. The
// zero value has no owner and Check() always succeeds.
type Owner struct {
	id atomic.Uint64
}

// Claim the structure for the calling goroutine.
func (o *Owner) Claim() {
	o.id.Store(GetGoRoutineID())
}

// Release the structure so that any goroutine may claim it.
func (o *Owner) Release() {
	o.id.Store(0)
}

// Check returns false if the structure has been claimed by a goroutine other
// than the caller.
func (o *Owner) Check() bool {
	id := o.id.Load()
	return id == 0 || id == GetGoRoutineID()
}
