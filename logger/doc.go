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

// Package logger is the logging package for the emulator. Log entries are
// tagged with a short component name and identical consecutive entries are
// folded into a single entry with a repeat count.
//
// There is no central log. A Logger is created with NewLogger() and passed to
// the components that need it:
//
//	log := logger.NewLogger(256)
//	log.Log(logger.Allow, "cpu", "core 1 started")
//	log.Logf(logger.Allow, "jit", "block at %08x exceeds %d instructions", addr, n)
//
// The first argument to Log() and Logf() is a Permission. A component that
// can be in a state where logging is inappropriate implements the Permission
// interface and passes itself. Otherwise logger.Allow is used.
//
// The Logger type is safe to use from multiple goroutines.
package logger
