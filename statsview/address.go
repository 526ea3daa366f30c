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

package statsview

import (
	"fmt"
	"net"
	"strconv"

	"github.com/jetsetilly/espresso/curated"
)

// DefaultAddress of the stats server.
const DefaultAddress = "localhost:12600"

// InvalidAddress is returned by ResolveAddress for an address that can't be
// used by the stats server.
const InvalidAddress = "statsview: invalid address (%s): %v"

// ResolveAddress returns the address the stats server should listen on. An
// empty string gives DefaultAddress and a missing host is localhost. The
// server is for local inspection only so any other host is rejected.
func ResolveAddress(addr string) (string, error) {
	if addr == "" {
		return DefaultAddress, nil
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "", curated.Errorf(InvalidAddress, addr, err)
	}

	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return "", curated.Errorf(InvalidAddress, addr, fmt.Errorf("port out of range"))
	}

	switch host {
	case "", "localhost":
		host = "localhost"
	case "127.0.0.1", "::1":
	default:
		return "", curated.Errorf(InvalidAddress, addr, fmt.Errorf("host must be local"))
	}

	return net.JoinHostPort(host, port), nil
}
