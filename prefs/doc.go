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

// Package prefs holds the typed preference values used to configure the
// emulator, and the Disk type that persists them.
//
// Preference values are declared as fields of a component's preferences
// structure and registered with a Disk under a dotted key:
//
//	var mode prefs.String
//	dsk.Add("cpu.jit.mode", &mode)
//
// The file format is a line per preference, after a short boilerplate
// warning:
//
//	cpu.jit.mode :: enabled
//
// Values can be overridden for the lifetime of the process from the command
// line. PushCommandLineStack() takes a string of the form
// "key::value; key::value" and the values are consumed by the next call to
// Disk.Load().
package prefs
