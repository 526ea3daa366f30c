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

//go:build !statsview

package statsview

import (
	"io"

	"github.com/jetsetilly/espresso/curated"
)

// NotAvailable is returned by Launch when the stats server is not part of
// the build.
const NotAvailable = "statsview: not available in this build"

// Launch fails without the statsview build tag. The address is still
// resolved so that a bad address is reported in either build.
func Launch(_ io.Writer, addr string) error {
	if _, err := ResolveAddress(addr); err != nil {
		return err
	}
	return curated.Errorf(NotAvailable)
}

// Available returns true if a stats server can be launched.
func Available() bool {
	return false
}
