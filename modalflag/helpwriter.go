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

package modalflag

import (
	"fmt"
	"io"
	"strings"
)

// helpWriter is used to amend the default output from the flag package.
type helpWriter struct {
	buffer strings.Builder
}

func (hw *helpWriter) help(output io.Writer, banner string, additionalHelp string) {
	if output == nil {
		return
	}

	helpLines := strings.Split(hw.buffer.String(), "\n")

	// flag package prints only the usage line when there are no flags
	if len(helpLines) <= 2 && strings.TrimSpace(helpLines[len(helpLines)-1]) == "" {
		fmt.Fprint(output, "No help available")
		if banner != "" {
			fmt.Fprintf(output, " for %s", banner)
		}
		fmt.Fprintln(output)
	} else {
		if banner != "" {
			fmt.Fprintf(output, "%s for %s mode\n", helpLines[0], banner)
		} else {
			fmt.Fprintln(output, helpLines[0])
		}
		fmt.Fprint(output, strings.Join(helpLines[1:], "\n"))
	}

	if additionalHelp != "" {
		fmt.Fprintf(output, "\n%s\n", additionalHelp)
	}
}

// Write buffers all output.
func (hw *helpWriter) Write(p []byte) (n int, err error) {
	return hw.buffer.Write(p)
}
