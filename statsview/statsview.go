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

//go:build statsview

package statsview

import (
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

const url = "/debug/statsview"

// sample interval in milliseconds. the JIT's allocation pattern is bursty so
// the default of two seconds hides most of it
const interval = 500

// Launch a new goroutine running the stats server at the address, which is
// resolved with ResolveAddress().
func Launch(output io.Writer, addr string) error {
	addr, err := ResolveAddress(addr)
	if err != nil {
		return err
	}

	viewer.SetConfiguration(viewer.WithAddr(addr), viewer.WithInterval(interval))
	mgr := statsview.New()
	go mgr.Start()

	fmt.Fprintf(output, "stats server available at http://%s%s\n", addr, url)
	return nil
}

// Available returns true if a stats server can be launched.
func Available() bool {
	return true
}
