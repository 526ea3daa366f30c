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

// Sentinal errors.
const (
	AccessViolation    = "cpu: access violation at %08x (cia %08x)"
	IllegalInstruction = "cpu: illegal instruction %08x at %08x"
	Unhandled          = "cpu: unhandled %v at %08x"
	Fatal              = "cpu: core %d: %v"
	NoCore             = "cpu: no core %d"
	AlreadyStarted     = "cpu: scheduler already started"
	InvokeArgument     = "cpu: invoke: unsupported argument type (%T)"
	InvokeArguments    = "cpu: invoke: too many %s arguments"
	WrongGoroutine     = "cpu: core %d: %s called from outside the core"
)
