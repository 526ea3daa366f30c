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

package logger

// Permission implementations indicate whether the environment making a log
// request is allowed to create new log entries.
type Permission interface {
	AllowLogging() bool
}

type allow struct{}

func (allow) AllowLogging() bool {
	return true
}

type deny struct{}

func (deny) AllowLogging() bool {
	return false
}

// Allow indicates that the logging request should be allowed. A good default
// to use if a log entry should always be made.
var Allow Permission = allow{}

// Deny never allows a log entry to be made. Useful for silencing a component
// that otherwise logs with a fixed permission.
var Deny Permission = deny{}

// Budget is a Permission that allows a fixed number of log entries. Each
// call to AllowLogging that returns true uses one entry from the budget. A
// negative budget is never exhausted.
//
// The zero value allows nothing.
type Budget int

// AllowLogging implements the Permission interface.
func (b *Budget) AllowLogging() bool {
	if *b < 0 {
		return true
	}
	if *b == 0 {
		return false
	}
	*b--
	return true
}
