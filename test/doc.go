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

// Package test bundles helper functions that remove common boilerplate from
// tests written for the standard go test harness.
//
// The Expect* functions report a failure with t.Errorf() and continue. The
// Demand* functions report with t.Fatalf() and should be used when the value
// being tested is needed by later parts of the test.
//
// ExpectSuccess() and ExpectFailure() interpret their argument according to
// its type. For bool values true is a success; for error values nil is a
// success. An untyped nil is considered a success because of how errors
// usually work (nil to indicate no error).
//
// All functions accept optional tags which are printed as a prefix to any
// failure message. This is useful when a test is run inside a loop.
//
// The CappedWriter and RingWriter types implement io.Writer and can be used to
// capture output for later comparison.
package test
