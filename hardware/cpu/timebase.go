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

package cpu

import (
	"time"
)

// clock rates in Hz
const (
	BusClock      = 248625000
	TimebaseClock = BusClock / 4
)

const nanosecond = uint64(time.Second)

// NanosecondsToTimebase converts a host duration in nanoseconds to time base
// ticks.
func NanosecondsToTimebase(ns uint64) uint64 {
	return (ns/nanosecond)*TimebaseClock + (ns%nanosecond)*TimebaseClock/nanosecond
}

// TimebaseToNanoseconds is the inverse of NanosecondsToTimebase(). The
// result is rounded up so that a deadline converted to host time is never
// early.
func TimebaseToNanoseconds(tb uint64) uint64 {
	ns := (tb/TimebaseClock)*nanosecond + ((tb%TimebaseClock)*nanosecond+TimebaseClock-1)/TimebaseClock
	return ns
}

// Timebase returns the current value of the virtual time base. The time base
// is shared by all cores and starts at zero when the scheduler is created.
func (sch *Scheduler) Timebase() uint64 {
	return NanosecondsToTimebase(uint64(time.Since(sch.epoch)))
}

// untilTimebase returns a timer that fires when the time base reaches the
// value.
func (sch *Scheduler) untilTimebase(tb uint64) *time.Timer {
	d := time.Duration(TimebaseToNanoseconds(tb)) - time.Since(sch.epoch)
	return time.NewTimer(max(d, 0))
}
