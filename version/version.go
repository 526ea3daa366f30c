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

// Package version reports the version of the program. The version number is
// set at link time with:
//
//	-ldflags "-X github.com/jetsetilly/espresso/version.number=v0.1.0"
//
// Without a number the version is "unreleased" if the binary was built from
// a VCS checkout and "local" otherwise.
package version

import (
	"fmt"
	"runtime/debug"
)

const ApplicationName = "Espresso"

// set by the linker
var number string

var (
	revision string
	version  string
	goVer    string
)

// Version returns the version string, the VCS revision and whether the
// binary is a numbered release.
func Version() (string, string, bool) {
	return version, revision, number != "" && version == number
}

// String is the single line summary printed by the VERSION mode.
func String() string {
	return fmt.Sprintf("%s %s (%s) %s", ApplicationName, version, revision, goVer)
}

func init() {
	version, revision, goVer = fromBuildInfo(number, debug.ReadBuildInfo)
}

func fromBuildInfo(number string, read func() (*debug.BuildInfo, bool)) (string, string, string) {
	var vcs bool
	var rev string
	var modified bool
	var gv string

	if info, ok := read(); ok {
		gv = info.GoVersion
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				rev = s.Value
			case "vcs.modified":
				modified = s.Value == "true"
			}
		}
	}

	switch {
	case rev == "":
		rev = "no revision information"
	case modified:
		rev = rev + "+dirty"
	}

	switch {
	case number != "":
		return number, rev, gv
	case vcs:
		return "unreleased", rev, gv
	}
	return "local", rev, gv
}
