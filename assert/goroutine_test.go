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

package assert_test

import (
	"testing"

	"github.com/jetsetilly/espresso/assert"
	"github.com/jetsetilly/espresso/test"
)

func TestGoRoutineID(t *testing.T) {
	a := assert.GetGoRoutineID()
	test.ExpectEquality(t, assert.GetGoRoutineID(), a)

	ch := make(chan uint64)
	go func() {
		ch <- assert.GetGoRoutineID()
	}()
	test.ExpectInequality(t, <-ch, a)
}

func TestOwner(t *testing.T) {
	var o assert.Owner
	test.ExpectSuccess(t, o.Check())

	o.Claim()
	test.ExpectSuccess(t, o.Check())

	ch := make(chan bool)
	go func() {
		ch <- o.Check()
	}()
	test.ExpectFailure(t, <-ch)

	o.Release()
	go func() {
		ch <- o.Check()
	}()
	test.ExpectSuccess(t, <-ch)
}
