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

package preferences

import (
	"github.com/jetsetilly/espresso/hardware/cpu"
	"github.com/jetsetilly/espresso/logger"
	"github.com/jetsetilly/espresso/prefs"
)

// Preferences defines and collates all the preference values used by the
// hardware.
type Preferences struct {
	dsk *prefs.Disk
	log *logger.Logger

	// number of cores created by the scheduler
	Cores prefs.Int

	// number of entries in the trace buffer of each core. zero disables
	// tracing. tracing forces the interpreter to be used
	Trace prefs.Int

	// directory for the files written when a core fails. no files are
	// written if the value is empty
	Diagnostics prefs.String

	JIT *JITPreferences
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. Values are loaded from the file at the path, if it
// exists, and from the command line preferences stack.
func NewPreferences(path string, log *logger.Logger) (*Preferences, error) {
	p := &Preferences{
		log: log,
		JIT: &JITPreferences{log: log},
	}

	var err error
	p.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, err
	}

	p.Cores.SetHookPre(func(v prefs.Value) error {
		return positive("cpu.cores", v, 1)
	})
	p.Trace.SetHookPre(func(v prefs.Value) error {
		return positive("cpu.trace", v, 0)
	})

	p.SetDefaults()

	err = p.dsk.Add("cpu.cores", &p.Cores)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("cpu.trace", &p.Trace)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("cpu.diagnostics", &p.Diagnostics)
	if err != nil {
		return nil, err
	}
	err = p.JIT.add(p.dsk)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load()
	if err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all settings to default values.
func (p *Preferences) SetDefaults() {
	p.Cores.Set(3)
	p.Trace.Set(0)
	p.Diagnostics.Set("")
	p.JIT.SetDefaults()
}

// Load current hardware preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save current hardware preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// SchedulerConfig returns the configuration for a new cpu.Scheduler.
func (p *Preferences) SchedulerConfig() cpu.Config {
	return cpu.Config{
		Cores:       p.Cores.Get().(int),
		TraceSize:   p.Trace.Get().(int),
		Diagnostics: p.Diagnostics.String(),
	}
}
