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

package paths_test

import (
	"os"
	"regexp"
	"testing"

	"github.com/jetsetilly/espresso/paths"
	"github.com/jetsetilly/espresso/test"
)

func TestPaths(t *testing.T) {
	// development builds create the base path in the current directory
	t.Chdir(t.TempDir())

	pth, err := paths.ResourcePath("foo/bar", "baz")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".espresso/foo/bar/baz")

	_, err = os.Stat(".espresso/foo/bar")
	test.ExpectSuccess(t, err)

	pth, err = paths.ResourcePath("foo/bar", "")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".espresso/foo/bar")

	pth, err = paths.ResourcePath("", "baz")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".espresso/baz")

	pth, err = paths.ResourcePath("", "")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".espresso")
}

func TestUniqueFilename(t *testing.T) {
	re := regexp.MustCompile(`^core0_crash_\d{8}_\d{6}$`)
	test.ExpectEquality(t, re.MatchString(paths.UniqueFilename("core0", " crash ")), true)

	re = regexp.MustCompile(`^core0_\d{8}_\d{6}$`)
	test.ExpectEquality(t, re.MatchString(paths.UniqueFilename("core0", "")), true)
}
