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

package colorterm

import (
	"io"
	"slices"
	"unicode"

	"github.com/jetsetilly/espresso/curated"
	"github.com/jetsetilly/espresso/debugger/terminal"
	"github.com/jetsetilly/espresso/debugger/terminal/colorterm/easyterm"
	"github.com/jetsetilly/espresso/debugger/terminal/colorterm/easyterm/ansi"
)

// lineEditor reads a line of input from a terminal in raw mode.
type lineEditor struct {
	out     io.Writer
	history []string
}

func (ed *lineEditor) print(s string) {
	_, _ = io.WriteString(ed.out, s)
}

// read input until carriage return. the input line is redrawn after every
// key press.
func (ed *lineEditor) read(in io.RuneReader, prompt string) (string, error) {
	var input []rune
	cursor := 0

	// the input being edited is kept when scrolling through the history
	history := len(ed.history)
	var latest []rune

	recall := func(s []rune) {
		input = slices.Clone(s)
		cursor = len(input)
	}

	for {
		ed.print("\r")
		ed.print(ansi.ClearLine)
		ed.print(ansi.PenStyles["bold"])
		ed.print(prompt)
		ed.print(ansi.NormalPen)
		ed.print(string(input))
		ed.print("\r")
		ed.print(ansi.CursorMove(len(prompt) + cursor))

		r, _, err := in.ReadRune()
		if err != nil {
			return "", err
		}

		switch r {
		case easyterm.KeyInterrupt:
			ed.print("\r\n")
			return "", curated.Errorf(terminal.UserInterrupt)

		case easyterm.KeyEndOfFile:
			if len(input) == 0 {
				ed.print("\r\n")
				return "", io.EOF
			}

		case easyterm.KeyCarriageReturn:
			ed.print("\r\n")
			s := string(input)
			if s != "" && (len(ed.history) == 0 || ed.history[len(ed.history)-1] != s) {
				ed.history = append(ed.history, s)
			}
			return s, nil

		case easyterm.KeyBackspace, easyterm.KeyCtrlH:
			if cursor > 0 {
				input = slices.Delete(input, cursor-1, cursor)
				cursor--
				history = len(ed.history)
			}

		case easyterm.KeyEsc:
			r, _, err := in.ReadRune()
			if err != nil {
				return "", err
			}
			if r != easyterm.EscCursor {
				continue
			}

			r, _, err = in.ReadRune()
			if err != nil {
				return "", err
			}

			switch r {
			case easyterm.CursorUp:
				if history > 0 {
					if history == len(ed.history) {
						latest = slices.Clone(input)
					}
					history--
					recall([]rune(ed.history[history]))
				}
			case easyterm.CursorDown:
				if history < len(ed.history)-1 {
					history++
					recall([]rune(ed.history[history]))
				} else if history == len(ed.history)-1 {
					history++
					recall(latest)
				}
			case easyterm.CursorForward:
				if cursor < len(input) {
					cursor++
				}
			case easyterm.CursorBackward:
				if cursor > 0 {
					cursor--
				}
			case easyterm.CursorHome:
				cursor = 0
			case easyterm.CursorEnd:
				cursor = len(input)
			case easyterm.EscDelete:
				// the sequence ends with a tilde
				if _, _, err := in.ReadRune(); err != nil {
					return "", err
				}
				if cursor < len(input) {
					input = slices.Delete(input, cursor, cursor+1)
					history = len(ed.history)
				}
			}

		default:
			if unicode.IsPrint(r) {
				input = slices.Insert(input, cursor, r)
				cursor++
				history = len(ed.history)
			}
		}
	}
}
