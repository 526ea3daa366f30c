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

// Package scripting runs Lua scripts for the RUN mode of the command line
// tool. A script runs before the scheduler is started and usually writes
// guest memory and sets entry points. It can also register functions to be
// called when a core reaches an address.
//
// Scripts see three globals:
//
//	log(...)            add an entry to the log
//	mem                 read8, read16, read32, readfloat, readstring, write8,
//	                    write16, write32, writefloat, writestring, load
//	cpu                 cores, entry, breakpoint, interrupt, halt
//
// A breakpoint function is called with a table for the core, with the
// functions gpr, setgpr, fpr, setfpr, nia, setnia, lr and invoke, and the
// field id. If the function returns true the core stops in the monitor, if
// the monitor is enabled.
//
//	cpu.entry(0, 0x02000000)
//	cpu.breakpoint(0x02000100, function(core)
//		log("r3 is", core.gpr(3))
//		local r = core.invoke(0x02000200, {core.gpr(3), 10})
//		core.setgpr(3, r)
//	end)
package scripting
