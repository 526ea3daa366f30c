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

// Package commandline splits monitor input into tokens and parses the
// numeric arguments of commands.
package commandline

import (
	"strconv"
	"strings"

	"github.com/jetsetilly/espresso/curated"
)

// Sentinal errors.
const (
	MissingArgument = "commandline: %s: missing argument"
	InvalidNumber   = "commandline: %s: invalid number (%s)"
)

// Tokens represents tokenised input. This can be used to walk through the
// input string (using Get()) for eas(ier) parsing.
type Tokens struct {
	input  string
	tokens []string
	curr   int
}

// String representation of tokens.
func (tk *Tokens) String() string {
	return tk.input
}

// Reset begins the token traversal process from the beginning.
func (tk *Tokens) Reset() {
	tk.curr = 0
}

// IsEnd returns true if we're at the end of the token list.
func (tk Tokens) IsEnd() bool {
	return tk.curr >= len(tk.tokens)
}

// Remainder returns the remaining tokens as a string.
func (tk Tokens) Remainder() string {
	return strings.Join(tk.tokens[tk.curr:], " ")
}

// Remaining returns the number of tokens remaining.
func (tk Tokens) Remaining() int {
	return len(tk.tokens) - tk.curr
}

// Get returns the next token in the list, and a success boolean - if the end
// of the token list has been reached, the function returns false instead of
// true.
func (tk *Tokens) Get() (string, bool) {
	if tk.curr >= len(tk.tokens) {
		return "", false
	}
	tk.curr++
	return tk.tokens[tk.curr-1], true
}

// Unget walks backwards in the token list.
func (tk *Tokens) Unget() {
	if tk.curr > 0 {
		tk.curr--
	}
}

// Peek returns the next token in the list (without advancing the list), and a
// success boolean - if the end of the token list has been reached, the
// function returns false instead of true.
func (tk Tokens) Peek() (string, bool) {
	if tk.curr >= len(tk.tokens) {
		return "", false
	}
	return tk.tokens[tk.curr], true
}

// Address returns the next token as an unsigned 32 bit number. Addresses
// are hexadecimal unless they are prefixed with a '#', in which case they are
// decimal.
func (tk *Tokens) Address(command string) (uint32, error) {
	s, ok := tk.Get()
	if !ok {
		return 0, curated.Errorf(MissingArgument, command)
	}
	v, err := ParseAddress(s)
	if err != nil {
		return 0, curated.Errorf(InvalidNumber, command, s)
	}
	return v, nil
}

// Count returns the next token as a decimal number. The default value is
// returned if there are no more tokens.
func (tk *Tokens) Count(command string, def int) (int, error) {
	s, ok := tk.Get()
	if !ok {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, curated.Errorf(InvalidNumber, command, s)
	}
	return v, nil
}

// ParseAddress parses a hexadecimal value with an optional 0x or $ prefix, or
// a decimal value prefixed with '#'.
func ParseAddress(s string) (uint32, error) {
	if d, ok := strings.CutPrefix(s, "#"); ok {
		v, err := strconv.ParseUint(d, 10, 32)
		return uint32(v), err
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	v, err := strconv.ParseUint(s, 16, 32)
	return uint32(v), err
}

// TokeniseInput creates and returns a new Tokens instance.
func TokeniseInput(input string) *Tokens {
	tk := new(Tokens)

	// remove leading/trailing space
	input = strings.TrimSpace(input)
	tk.input = input

	// divide user input into tokens. removes excess white space
	tk.tokens = strings.Fields(input)

	// the command is not case sensitive
	if len(tk.tokens) > 0 {
		tk.tokens[0] = strings.ToUpper(tk.tokens[0])
	}

	return tk
}
