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

// Package fpu is a software model of the arithmetic performed by the floating
// point unit of the CPU.
//
// Go does not expose the floating point environment of the host so rounding
// modes and exception flags cannot be taken from the hardware. Instead, every
// arithmetic function in this package returns the rounded result along with a
// Flags value describing what happened during rounding. The rounding mode is
// an explicit argument.
//
// Results are computed on the fast path with the native float64 operations of
// the host, with error-free transformations used to recover the rounding
// error. When the result is near the edges of the format, or when the
// operation has no cheap error term, the exact result is formed with math/big
// and rounded in software.
//
// Invalid operations (signalling NaNs, infinity minus infinity, etc.) are not
// the concern of this package. Callers detect them before calling the
// arithmetic functions, which will still return a NaN if given one.
//
// The classification functions work on the raw bit patterns of the values
// because converting a signalling NaN to a Go float on some hosts will quiet
// it.
package fpu
