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

package commandline_test

import (
	"testing"

	"github.com/jetsetilly/espresso/curated"
	"github.com/jetsetilly/espresso/debugger/commandline"
	"github.com/jetsetilly/espresso/test"
)

func TestTokeniser(t *testing.T) {
	tk := commandline.TokeniseInput("  disasm   2000000  8 ")
	test.ExpectEquality(t, tk.String(), "disasm   2000000  8")
	test.ExpectEquality(t, tk.Remaining(), 3)

	s, ok := tk.Get()
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, s, "DISASM")

	s, ok = tk.Peek()
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, s, "2000000")
	test.ExpectEquality(t, tk.Remainder(), "2000000 8")

	a, err := tk.Address("DISASM")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, a, uint32(0x02000000))

	n, err := tk.Count("DISASM", 10)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 8)
	test.ExpectEquality(t, tk.IsEnd(), true)

	// default count at end of input
	n, err = tk.Count("DISASM", 10)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 10)

	_, err = tk.Address("DISASM")
	test.ExpectEquality(t, curated.Is(err, commandline.MissingArgument), true)

	tk.Unget()
	tk.Unget()
	s, _ = tk.Get()
	test.ExpectEquality(t, s, "2000000")

	tk.Reset()
	s, _ = tk.Get()
	test.ExpectEquality(t, s, "DISASM")
}

func TestParseAddress(t *testing.T) {
	for s, v := range map[string]uint32{
		"10":         0x10,
		"0x10":       0x10,
		"$ff":        0xff,
		"0XAB":       0xab,
		"#10":        10,
		"fbadcde0":   0xfbadcde0,
		"0x02000000": 0x02000000,
	} {
		a, err := commandline.ParseAddress(s)
		test.ExpectSuccess(t, err, s)
		test.ExpectEquality(t, a, v, s)
	}

	for _, s := range []string{"", "xyz", "#ff", "100000000"} {
		_, err := commandline.ParseAddress(s)
		test.ExpectFailure(t, err, s)
	}

	tk := commandline.TokeniseInput("mem nope")
	tk.Get()
	_, err := tk.Address("MEM")
	test.ExpectEquality(t, curated.Is(err, commandline.InvalidNumber), true)
}
