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

// Package conformance runs code tests. A code test is a short sequence of
// instruction words with input values for some registers and the values
// expected in those registers after the code has been executed. Registers
// that are not given an expected value must be unchanged.
//
// Each test is run four times: with the register file zeroed and with every
// bit of the register file set, and for each of those with the interpreter
// and with the JIT. A test passes only if all four runs pass.
//
// See the Parse() function for the format of code test files.
package conformance
