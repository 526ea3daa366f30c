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

//go:build !(linux && amd64)

package jit

import "github.com/jetsetilly/espresso/curated"

// NativeAvailable is true if the native backend can be used on this
// platform.
const NativeAvailable = false

func newNativeBackend(_ int) (backend, error) {
	return nil, curated.Errorf(NativeUnavailable)
}
