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

// Package ansi defines the escape sequences used by the color terminal.
package ansi

import (
	"fmt"
	"strings"
)

var colors = map[string]int{
	"BLACK":   0,
	"RED":     1,
	"GREEN":   2,
	"YELLOW":  3,
	"BLUE":    4,
	"MAGENTA": 5,
	"CYAN":    6,
	"WHITE":   7,
	"NORMAL":  9,
}

const (
	targetPen         = 3
	targetPaper       = 4
	targetBrightPen   = 9
	targetBrightPaper = 10
)

var attributes = map[string]string{
	"BOLD":      "1",
	"DIM":       "2",
	"UNDERLINE": "4",
	"INVERSE":   "7",
	"STRIKE":    "9",
	"NORMAL":    "",
}

// Pens are the bright colours.
var Pens map[string]string

// DimPens are the normal colours.
var DimPens map[string]string

// PenStyles are the attributes.
var PenStyles map[string]string

// NormalPen resets the colour and attributes.
const NormalPen = "\033[m"

func init() {
	Pens = make(map[string]string)
	DimPens = make(map[string]string)
	PenStyles = make(map[string]string)

	for _, c := range []string{"red", "green", "yellow", "blue", "magenta", "cyan", "white"} {
		Pens[c], _ = ColorBuild(c, "", "", true, false)
		DimPens[c], _ = ColorBuild(c, "", "", false, false)
	}
	for _, a := range []string{"bold", "dim", "underline"} {
		PenStyles[a], _ = ColorBuild("", "", a, false, false)
	}
}

// ColorBuild creates the ANSI sequence for the pen, paper and attribute.
// Any of the three can be empty.
func ColorBuild(pen, paper, attribute string, brightPen, brightPaper bool) (string, error) {
	var params []string

	if pen != "" {
		c, ok := colors[strings.ToUpper(pen)]
		if !ok {
			return "", fmt.Errorf("unknown ANSI pen (%s)", pen)
		}
		t := targetPen
		if brightPen {
			t = targetBrightPen
		}
		params = append(params, fmt.Sprintf("%d%d", t, c))
	}

	if paper != "" {
		c, ok := colors[strings.ToUpper(paper)]
		if !ok {
			return "", fmt.Errorf("unknown ANSI paper (%s)", paper)
		}
		t := targetPaper
		if brightPaper {
			t = targetBrightPaper
		}
		params = append(params, fmt.Sprintf("%d%d", t, c))
	}

	if attribute != "" {
		a, ok := attributes[strings.ToUpper(attribute)]
		if !ok {
			return "", fmt.Errorf("unknown ANSI attribute (%s)", attribute)
		}
		if a != "" {
			params = append(params, a)
		}
	}

	return fmt.Sprintf("\033[%sm", strings.Join(params, ";")), nil
}

// ClearLine clears the current line.
const ClearLine = "\033[2K"

// CursorStore stores the current cursor position.
const CursorStore = "\033[s"

// CursorRestore restores the cursor position previously stored with
// CursorStore.
const CursorRestore = "\033[u"

// CursorForwardOne moves the cursor forward one character.
const CursorForwardOne = "\033[1C"

// CursorBackwardOne moves the cursor backward one character.
const CursorBackwardOne = "\033[1D"

// CursorMove moves the cursor n characters. Forwards if n is positive and
// backwards if n is negative.
func CursorMove(n int) string {
	if n < 0 {
		return fmt.Sprintf("\033[%dD", -n)
	} else if n > 0 {
		return fmt.Sprintf("\033[%dC", n)
	}
	return ""
}
