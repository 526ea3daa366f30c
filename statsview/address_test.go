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

package statsview_test

import (
	"io"
	"testing"

	"github.com/jetsetilly/espresso/curated"
	"github.com/jetsetilly/espresso/statsview"
	"github.com/jetsetilly/espresso/test"
)

func TestResolveAddress(t *testing.T) {
	good := map[string]string{
		"":                statsview.DefaultAddress,
		":8080":           "localhost:8080",
		"localhost:12600": "localhost:12600",
		"127.0.0.1:9000":  "127.0.0.1:9000",
		"[::1]:9000":      "[::1]:9000",
	}
	for in, out := range good {
		addr, err := statsview.ResolveAddress(in)
		test.ExpectSuccess(t, err, in)
		test.ExpectEquality(t, addr, out, in)
	}

	for _, in := range []string{"12600", "localhost", ":0", ":65536", ":http", "example.com:80", "0.0.0.0:12600"} {
		_, err := statsview.ResolveAddress(in)
		test.ExpectEquality(t, curated.Is(err, statsview.InvalidAddress), true, in)
	}
}

func TestLaunchBadAddress(t *testing.T) {
	err := statsview.Launch(io.Discard, "example.com:80")
	test.ExpectEquality(t, curated.Is(err, statsview.InvalidAddress), true)
}
