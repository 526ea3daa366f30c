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

package main

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/espresso/debugger/commandline"
)

// a raw binary and the address to load it at
type load struct {
	file string
	addr uint32
}

// loadList implements the flag.Value interface for the repeatable -load
// flag. each value is of the form file@address
type loadList []load

func (l *loadList) String() string {
	s := make([]string, len(*l))
	for i, ld := range *l {
		s[i] = fmt.Sprintf("%s@%08x", ld.file, ld.addr)
	}
	return strings.Join(s, " ")
}

func (l *loadList) Set(v string) error {
	i := strings.LastIndex(v, "@")
	if i <= 0 || i == len(v)-1 {
		return fmt.Errorf("load must be of the form file@address (%s)", v)
	}

	addr, err := commandline.ParseAddress(v[i+1:])
	if err != nil {
		return fmt.Errorf("invalid load address (%s)", v[i+1:])
	}

	*l = append(*l, load{file: v[:i], addr: addr})
	return nil
}
