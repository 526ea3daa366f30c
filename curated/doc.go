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

// Package curated wraps the plain Go error type with pattern matching.
//
// Curated errors are created with the Errorf() function. Like fmt.Errorf() it
// takes a formatting pattern and placeholder values but the pattern is kept
// so that it can be tested for later. Packages in the emulator export their
// patterns as constants, for example:
//
//	const AccessViolation = "access violation: %08x"
//
//	err := curated.Errorf(AccessViolation, addr)
//
//	if curated.Is(err, AccessViolation) {
//		...
//	}
//
// The Has() function is similar to Is() but checks every curated error in the
// chain. A curated error is "in the chain" if it was used as a placeholder
// value of another curated error:
//
//	f := curated.Errorf("core 1: %v", err)
//	curated.Is(f, AccessViolation)  // false
//	curated.Has(f, AccessViolation) // true
//
// The Error() implementation normalises the message by removing duplicate
// adjacent parts. This means that "cpu: cpu: halted" is reported as
// "cpu: halted", which removes the need to think too hard about whether
// wrapping will repeat a prefix.
//
// Curated errors also implement Unwrap() so that errors.Is() and errors.As()
// from the standard library see through them to any uncurated error that was
// used as a placeholder value.
package curated
