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
	"strings"
	"sync"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"

	"github.com/jetsetilly/espresso/curated"
	"github.com/jetsetilly/espresso/hardware/cpu"
	"github.com/jetsetilly/espresso/logger"
)

// Sentinal errors.
const (
	ScriptError   = "scripting: %s: %v"
	CallbackError = "scripting: breakpoint %08x: %v"
)

// Script is a Lua script that prepares the guest before the scheduler is
// started and that reacts to breakpoints while the scheduler is running.
type Script struct {
	L   *lua.LState
	sch *cpu.Scheduler
	log *logger.Logger

	// the Lua state can only be used by one goroutine at a time. the owner
	// is the ID of the core holding the lock plus one, so that a callback
	// that invokes a guest function can reach another breakpoint on the same
	// core
	crit  sync.Mutex
	owner atomic.Int32

	// breakpoint callbacks indexed by address
	callbacks map[uint32]*lua.LFunction
}

// NewScript is the preferred method of initialisation for the Script type.
func NewScript(sch *cpu.Scheduler, log *logger.Logger) *Script {
	s := &Script{
		L:         lua.NewState(),
		sch:       sch,
		log:       log,
		callbacks: make(map[uint32]*lua.LFunction),
	}

	s.L.SetGlobal("log", s.L.NewFunction(s.luaLog))
	s.L.SetGlobal("mem", s.memoryModule())
	s.L.SetGlobal("cpu", s.cpuModule())

	return s
}

// Close the Lua state.
func (s *Script) Close() {
	s.crit.Lock()
	defer s.crit.Unlock()
	s.L.Close()
}

// LoadFile runs the script in the file. The script should not be run after
// the scheduler has been started.
func (s *Script) LoadFile(path string) error {
	s.crit.Lock()
	defer s.crit.Unlock()

	if err := s.L.DoFile(path); err != nil {
		return curated.Errorf(ScriptError, path, err)
	}
	s.log.Logf(logger.Allow, "lua", "loaded %s", path)
	return nil
}

// LoadString runs the script in the string. The name is used in error
// messages.
func (s *Script) LoadString(name string, src string) error {
	s.crit.Lock()
	defer s.crit.Unlock()

	if err := s.L.DoString(src); err != nil {
		return curated.Errorf(ScriptError, name, err)
	}
	return nil
}

// Breakpoint calls the callback for the breakpoint at the NIA of the core.
// The callback is called with a table of functions that access the core.
//
// Returns true if the callback returned true, meaning that the core should
// stop in the monitor.
func (s *Script) Breakpoint(c *cpu.Core) (bool, error) {
	release := s.enter(c.ID)
	defer release()

	addr := c.State.NIA
	fn, ok := s.callbacks[addr]
	if !ok {
		return false, nil
	}

	err := s.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, s.coreTable(c))
	if err != nil {
		return false, curated.Errorf(CallbackError, addr, err)
	}

	ret := s.L.Get(-1)
	s.L.Pop(1)

	return lua.LVAsBool(ret), nil
}

// enter takes the lock for the Lua state.
func (s *Script) enter(core int) func() {
	id := int32(core) + 1
	if s.owner.Load() == id {
		return func() {}
	}
	s.crit.Lock()
	s.owner.Store(id)
	return func() {
		s.owner.Store(0)
		s.crit.Unlock()
	}
}

func (s *Script) luaLog(L *lua.LState) int {
	n := L.GetTop()
	detail := make([]string, n)
	for i := 1; i <= n; i++ {
		detail[i-1] = L.Get(i).String()
	}
	s.log.Log(logger.Allow, "lua", strings.Join(detail, " "))
	return 0
}
