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
	"fmt"
	"strings"

	"github.com/jetsetilly/espresso/hardware/cpu/jit"
	"github.com/jetsetilly/espresso/logger"
	"github.com/jetsetilly/espresso/prefs"
)

// JITPreferences are the preference values for the JIT compiler.
type JITPreferences struct {
	log *logger.Logger

	// enabled, disabled or verify
	Mode prefs.String

	// optimisation flags separated by commas. flags that are not recognised
	// are logged and ignored
	Opt prefs.String

	// address of the only instruction to check in verify mode. zero means
	// every instruction
	VerifyAddress prefs.Int

	// limits of the code cache in bytes
	CodeSize prefs.Int
	DataSize prefs.Int

	// maximum number of instructions in a block
	BlockSize prefs.Int
}

func (p *JITPreferences) add(dsk *prefs.Disk) error {
	p.Mode.SetHookPre(func(v prefs.Value) error {
		_, err := jit.ParseMode(fmt.Sprintf("%v", v))
		return err
	})
	p.CodeSize.SetHookPre(func(v prefs.Value) error {
		return positive("cpu.jit.codesize", v, 1)
	})
	p.DataSize.SetHookPre(func(v prefs.Value) error {
		return positive("cpu.jit.datasize", v, 1)
	})
	p.BlockSize.SetHookPre(func(v prefs.Value) error {
		return positive("cpu.jit.blocksize", v, 1)
	})

	err := dsk.Add("cpu.jit.mode", &p.Mode)
	if err != nil {
		return err
	}
	err = dsk.Add("cpu.jit.opt", &p.Opt)
	if err != nil {
		return err
	}
	err = dsk.Add("cpu.jit.verifyaddr", &p.VerifyAddress)
	if err != nil {
		return err
	}
	err = dsk.Add("cpu.jit.codesize", &p.CodeSize)
	if err != nil {
		return err
	}
	err = dsk.Add("cpu.jit.datasize", &p.DataSize)
	if err != nil {
		return err
	}
	err = dsk.Add("cpu.jit.blocksize", &p.BlockSize)
	if err != nil {
		return err
	}
	return nil
}

// SetDefaults reverts the JIT settings to default values.
func (p *JITPreferences) SetDefaults() {
	cfg := jit.DefaultConfig()
	p.Mode.Set(cfg.Mode.String())
	p.Opt.Set(strings.Join([]string{jit.OptNative.String(), jit.OptMerge.String()}, ","))
	p.VerifyAddress.Set(int(cfg.VerifyAddress))
	p.CodeSize.Set(cfg.CodeSize)
	p.DataSize.Set(cfg.DataSize)
	p.BlockSize.Set(cfg.BlockSize)
}

// Config returns the configuration for a new jit.Compiler.
func (p *JITPreferences) Config() jit.Config {
	// the mode has been checked by the hook
	mode, _ := jit.ParseMode(p.Mode.String())

	opt, unknown := jit.ParseOpt(p.Opt.String())
	for _, u := range unknown {
		p.log.Logf(logger.Allow, "prefs", "unknown jit optimisation: %s", u)
	}

	return jit.Config{
		Mode:          mode,
		Opt:           opt,
		VerifyAddress: uint32(p.VerifyAddress.Get().(int)),
		CodeSize:      p.CodeSize.Get().(int),
		DataSize:      p.DataSize.Get().(int),
		BlockSize:     p.BlockSize.Get().(int),
	}
}

// positive checks that an integer preference is not less than the minimum.
// values that are not integers are checked by the prefs.Int type.
func positive(key string, v prefs.Value, min int) error {
	n, ok := v.(int)
	if !ok {
		return nil
	}
	if n < min {
		return fmt.Errorf("%s: must be at least %d (%d)", key, min, n)
	}
	return nil
}
