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

package scripting

import (
	"os"

	lua "github.com/yuin/gopher-lua"

	"github.com/jetsetilly/espresso/hardware/cpu"
)

// the longest string read by mem.readstring()
const maxString = 4096

// checkAddress returns the address argument. raises an error if the access
// is not to mapped memory.
func (s *Script) checkAddress(L *lua.LState, n int, size uint32) uint32 {
	addr := uint32(int64(L.CheckNumber(n)))
	if !s.sch.Memory().IsMapped(addr, size) {
		L.RaiseError("address %08x is not mapped", addr)
	}
	return addr
}

func checkUint32(L *lua.LState, n int) uint32 {
	return uint32(int64(L.CheckNumber(n)))
}

// memoryModule returns the table of functions that access guest memory.
func (s *Script) memoryModule() *lua.LTable {
	mem := s.sch.Memory()

	return s.L.SetFuncs(s.L.NewTable(), map[string]lua.LGFunction{
		"read8": func(L *lua.LState) int {
			L.Push(lua.LNumber(mem.Read8(s.checkAddress(L, 1, 1))))
			return 1
		},
		"read16": func(L *lua.LState) int {
			L.Push(lua.LNumber(mem.Read16(s.checkAddress(L, 1, 2))))
			return 1
		},
		"read32": func(L *lua.LState) int {
			L.Push(lua.LNumber(mem.Read32(s.checkAddress(L, 1, 4))))
			return 1
		},
		"readfloat": func(L *lua.LState) int {
			L.Push(lua.LNumber(mem.ReadFloat64(s.checkAddress(L, 1, 8))))
			return 1
		},
		"write8": func(L *lua.LState) int {
			mem.Write8(s.checkAddress(L, 1, 1), uint8(checkUint32(L, 2)))
			return 0
		},
		"write16": func(L *lua.LState) int {
			mem.Write16(s.checkAddress(L, 1, 2), uint16(checkUint32(L, 2)))
			return 0
		},
		"write32": func(L *lua.LState) int {
			addr := s.checkAddress(L, 1, 4)
			mem.Write32(addr, checkUint32(L, 2))
			s.sch.InvalidateInstructionCache(addr, 4)
			return 0
		},
		"writefloat": func(L *lua.LState) int {
			mem.WriteFloat64(s.checkAddress(L, 1, 8), float64(L.CheckNumber(2)))
			return 0
		},

		// strings are terminated with a zero byte
		"readstring": func(L *lua.LState) int {
			addr := s.checkAddress(L, 1, 1)
			b := make([]byte, 0, 64)
			for len(b) < maxString && mem.IsMapped(addr, 1) {
				v := mem.Read8(addr)
				if v == 0 {
					break
				}
				b = append(b, v)
				addr++
			}
			L.Push(lua.LString(b))
			return 1
		},
		"writestring": func(L *lua.LState) int {
			str := L.CheckString(2)
			addr := s.checkAddress(L, 1, uint32(len(str)+1))
			for i := 0; i < len(str); i++ {
				mem.Write8(addr+uint32(i), str[i])
			}
			mem.Write8(addr+uint32(len(str)), 0)
			return 0
		},

		// load a raw binary file. returns the number of bytes loaded
		"load": func(L *lua.LState) int {
			path := L.CheckString(1)
			addr := checkUint32(L, 2)
			data, err := os.ReadFile(path)
			if err != nil {
				L.RaiseError("%v", err)
			}
			if err := mem.Load(addr, data); err != nil {
				L.RaiseError("%v", err)
			}
			s.sch.InvalidateInstructionCache(addr, uint32(len(data)))
			L.Push(lua.LNumber(len(data)))
			return 1
		},
	})
}

// cpuModule returns the table of functions that control the scheduler.
func (s *Script) cpuModule() *lua.LTable {
	return s.L.SetFuncs(s.L.NewTable(), map[string]lua.LGFunction{
		"cores": func(L *lua.LState) int {
			L.Push(lua.LNumber(len(s.sch.Cores())))
			return 1
		},
		"entry": func(L *lua.LState) int {
			if err := s.sch.SetEntryPoint(L.CheckInt(1), checkUint32(L, 2)); err != nil {
				L.RaiseError("%v", err)
			}
			return 0
		},

		// the function is called before the instruction at the address is
		// executed. a nil function removes the breakpoint
		"breakpoint": func(L *lua.LState) int {
			addr := checkUint32(L, 1)
			fn := L.OptFunction(2, nil)
			if fn == nil {
				delete(s.callbacks, addr)
				s.sch.RemoveBreakpoint(addr, cpu.SystemBreakpoint)
				return 0
			}
			s.callbacks[addr] = fn
			s.sch.AddBreakpoint(addr, cpu.SystemBreakpoint)
			return 0
		},
		"interrupt": func(L *lua.LState) int {
			if err := s.sch.Interrupt(L.CheckInt(1), checkUint32(L, 2)); err != nil {
				L.RaiseError("%v", err)
			}
			return 0
		},
		"halt": func(L *lua.LState) int {
			s.sch.Halt()
			return 0
		},
	})
}

// coreTable returns the table passed to breakpoint callbacks.
func (s *Script) coreTable(c *cpu.Core) *lua.LTable {
	st := c.State

	tbl := s.L.SetFuncs(s.L.NewTable(), map[string]lua.LGFunction{
		"gpr": func(L *lua.LState) int {
			L.Push(lua.LNumber(st.GPR[checkRegister(L, 1)]))
			return 1
		},
		"setgpr": func(L *lua.LState) int {
			st.GPR[checkRegister(L, 1)] = checkUint32(L, 2)
			return 0
		},
		"fpr": func(L *lua.LState) int {
			L.Push(lua.LNumber(st.FPR[checkRegister(L, 1)].Float64()))
			return 1
		},
		"setfpr": func(L *lua.LState) int {
			st.FPR[checkRegister(L, 1)].SetFloat64(float64(L.CheckNumber(2)))
			return 0
		},
		"nia": func(L *lua.LState) int {
			L.Push(lua.LNumber(st.NIA))
			return 1
		},
		"setnia": func(L *lua.LState) int {
			st.NIA = checkUint32(L, 1)
			return 0
		},
		"lr": func(L *lua.LState) int {
			L.Push(lua.LNumber(st.LR))
			return 1
		},

		// invoke(address, integers, floats) calls a guest function. the
		// optional tables are the integer and floating point arguments.
		// returns r3 and f1
		"invoke": func(L *lua.LState) int {
			target := checkUint32(L, 1)

			var args []any
			if ints := L.OptTable(2, nil); ints != nil {
				ints.ForEach(func(_, v lua.LValue) {
					args = append(args, uint32(int64(lua.LVAsNumber(v))))
				})
			}
			if floats := L.OptTable(3, nil); floats != nil {
				floats.ForEach(func(_, v lua.LValue) {
					args = append(args, float64(lua.LVAsNumber(v)))
				})
			}

			r, f, err := c.Invoke(target, args...)
			if err != nil {
				L.RaiseError("%v", err)
			}
			L.Push(lua.LNumber(r))
			L.Push(lua.LNumber(f))
			return 2
		},
	})

	s.L.SetField(tbl, "id", lua.LNumber(c.ID))

	return tbl
}

func checkRegister(L *lua.LState, n int) int {
	r := L.CheckInt(n)
	if r < 0 || r > 31 {
		L.ArgError(n, "register must be between 0 and 31")
	}
	return r
}
