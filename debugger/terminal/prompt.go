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

package terminal

import (
	"fmt"
	"strings"
)

// Prompt specifies the prompt text and the prompt style.
type Prompt struct {
	// the core that is stopped in the monitor
	Core int

	// the address of the next instruction
	NIA uint32

	// short description of why the core stopped
	Reason string

	// the core is single stepping
	Stepping bool
}

func (p Prompt) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("[ core %d %08x", p.Core, p.NIA))
	if p.Reason != "" {
		s.WriteString(fmt.Sprintf(" (%s)", p.Reason))
	}
	s.WriteString(" ]")

	if p.Stepping {
		s.WriteString(" >> ")
	} else {
		s.WriteString(" > ")
	}

	return s.String()
}
