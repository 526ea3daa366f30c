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

// Package debugger implements the monitor, an interactive command line
// interface to a running Scheduler.
//
// The monitor is entered through the Breakpoint() function, which has the
// signature required by the Breakpoint field of cpu.Handlers. The core that
// reached the breakpoint is suspended while the monitor reads commands from
// the terminal. Commands that inspect or change the core run immediately and
// the monitor reads another command. STEP, CONTINUE and HALT resume the core.
//
// Input and output is through the terminal.Terminal interface. The plainterm
// package is suitable for redirected input and for testing. The colorterm
// package adds line editing and history for real terminals.
//
// Only one core can be in the monitor at a time. Other cores reaching a
// breakpoint wait until the monitor is free.
package debugger
