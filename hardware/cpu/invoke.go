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

package cpu

import (
	"github.com/jetsetilly/espresso/curated"
)

// CallbackAddress is the return address of guest functions called by
// Invoke(). The address is never mapped.
const CallbackAddress = uint32(0xfbadcde0)

// number of registers used for arguments
const (
	maxIntArgs   = 8
	maxFloatArgs = 8
)

// Invoke calls the guest function at the target address and runs the core
// until the function returns. Integer arguments are passed in r3 to r10 and
// floating point arguments in f1 to f8, in the order in which they appear.
//
// Returns the values of r3 and f1. All registers are restored to their
// values before the call.
//
// Invoke must only be called on the goroutine of the core, ie. from a
// handler.
func (c *Core) Invoke(target uint32, args ...any) (uint32, float64, error) {
	if !c.owner.Check() {
		return 0, 0, curated.Errorf(WrongGoroutine, c.ID, "Invoke")
	}

	st := c.State
	saved := st.CoreRegs
	defer func() {
		st.CoreRegs = saved
	}()

	var r, f int
	for _, a := range args {
		if v, ok := floatArg(a); ok {
			if f >= maxFloatArgs {
				return 0, 0, curated.Errorf(InvokeArguments, "float")
			}
			st.FPR[1+f].SetFloat64(v)
			st.FPR[1+f].SetPaired1(v)
			f++
			continue
		}

		v, ok := intArg(a)
		if !ok {
			return 0, 0, curated.Errorf(InvokeArgument, a)
		}
		if r >= maxIntArgs {
			return 0, 0, curated.Errorf(InvokeArguments, "integer")
		}
		st.GPR[3+r] = v
		r++
	}

	st.LR = CallbackAddress
	st.NIA = target

	for st.NIA != CallbackAddress {
		if c.sch.halting.Load() {
			return 0, 0, nil
		}
		if err := c.step(); err != nil {
			return 0, 0, err
		}
	}

	return st.GPR[3], st.FPR[1].Float64(), nil
}

func intArg(a any) (uint32, bool) {
	switch v := a.(type) {
	case int:
		return uint32(v), true
	case int8:
		return uint32(v), true
	case int16:
		return uint32(v), true
	case int32:
		return uint32(v), true
	case uint:
		return uint32(v), true
	case uint8:
		return uint32(v), true
	case uint16:
		return uint32(v), true
	case uint32:
		return v, true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func floatArg(a any) (float64, bool) {
	switch v := a.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}
