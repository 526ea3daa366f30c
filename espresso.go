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
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"sync/atomic"

	"github.com/jetsetilly/espresso/conformance"
	"github.com/jetsetilly/espresso/debugger"
	"github.com/jetsetilly/espresso/debugger/commandline"
	"github.com/jetsetilly/espresso/debugger/terminal"
	"github.com/jetsetilly/espresso/debugger/terminal/colorterm"
	"github.com/jetsetilly/espresso/debugger/terminal/plainterm"
	"github.com/jetsetilly/espresso/disassembly"
	"github.com/jetsetilly/espresso/hardware/cpu"
	"github.com/jetsetilly/espresso/hardware/cpu/instructions"
	"github.com/jetsetilly/espresso/hardware/cpu/interpreter"
	"github.com/jetsetilly/espresso/hardware/cpu/jit"
	"github.com/jetsetilly/espresso/hardware/memory"
	"github.com/jetsetilly/espresso/hardware/memory/memorymap"
	"github.com/jetsetilly/espresso/hardware/preferences"
	"github.com/jetsetilly/espresso/logger"
	"github.com/jetsetilly/espresso/modalflag"
	"github.com/jetsetilly/espresso/paths"
	"github.com/jetsetilly/espresso/prefs"
	"github.com/jetsetilly/espresso/scripting"
	"github.com/jetsetilly/espresso/statsview"
	"github.com/jetsetilly/espresso/version"
)

// exit values
const (
	exitOK         = 0
	exitParseError = 10
	exitModeError  = 20
)

// name of the preferences file in the resource path
const prefsFile = "preferences"

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "DISASM", "TEST", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(exitOK)

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(exitParseError)
	}

	status := exitOK

	switch md.Mode() {
	case "RUN":
		status, err = run(md)

	case "DISASM":
		err = disasm(md)

	case "TEST":
		err = codeTest(md)

	case "VERSION":
		fmt.Println(version.String())
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		os.Exit(exitModeError)
	}

	os.Exit(status)
}

// flags shared by the RUN and TEST modes
type commonFlags struct {
	prefs *string
	echo  *bool
}

func addCommonFlags(md *modalflag.Modes) commonFlags {
	return commonFlags{
		prefs: md.AddString("prefs", "", "preferences for this run (key::value; ...)"),
		echo:  md.AddBool("log", false, "echo log to stdout"),
	}
}

// preferences are loaded from the preferences file and from the -prefs flag
func (cf commonFlags) preferences(log *logger.Logger) (*preferences.Preferences, error) {
	if *cf.echo {
		log.SetEcho(logger.NewColorizer(os.Stdout), true)
	}

	pth, err := paths.ResourcePath("", prefsFile)
	if err != nil {
		return nil, err
	}

	prefs.PushCommandLineStack(*cf.prefs)
	p, err := preferences.NewPreferences(pth, log)
	unused := prefs.PopCommandLineStack()
	if err != nil {
		return nil, err
	}
	if unused != "" {
		log.Logf(logger.Allow, "prefs", "unused preferences: %s", unused)
	}

	return p, nil
}

func run(md *modalflag.Modes) (int, error) {
	md.NewMode()

	log := logger.NewLogger(1000)
	common := addCommonFlags(md)

	var loads loadList
	md.AddVar(&loads, "load", "raw binary to load (file@address). can be repeated")
	entry := md.AddString("entry", "", "entry point of core 0. the address of the first load by default")
	script := md.AddString("script", "", "lua script to run before starting")
	monitor := md.AddBool("monitor", false, "stop in the monitor at the entry point")
	termType := md.AddString("term", "COLOR", "terminal type for the monitor: COLOR, PLAIN")
	profile := md.AddInt("profile", 0, "number of JIT blocks to list after running (requires profile optimisation)")
	statsUsage := "run stats server at local address (eg. :12600)"
	if !statsview.Available() {
		statsUsage = "stats server (not available in this build)"
	}
	stats := md.AddString("statsview", "", statsUsage)
	cpuProfile := md.AddString("cpuprofile", "", "write host cpu profile to file")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return exitOK, err
	}

	if len(md.RemainingArgs()) > 0 {
		return exitOK, fmt.Errorf("too many arguments for %s mode", md)
	}

	if *stats != "" {
		if err := statsview.Launch(os.Stdout, *stats); err != nil {
			return exitOK, err
		}
	}

	prf, err := common.preferences(log)
	if err != nil {
		return exitOK, err
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			return exitOK, err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return exitOK, err
		}
		defer pprof.StopCPUProfile()
	}

	mem, err := memory.NewMemory()
	if err != nil {
		return exitOK, err
	}
	defer mem.Destroy()

	table := interpreter.NewTable()
	cmp, err := jit.NewCompiler(prf.JIT.Config(), table, log)
	if err != nil {
		return exitOK, err
	}
	defer cmp.Destroy()

	var sch *cpu.Scheduler
	var scr *scripting.Script
	var mon *debugger.Monitor

	// the status of the first core to make a system call
	var status atomic.Int32
	status.Store(-1)

	handlers := cpu.Handlers{
		Breakpoint: func(c *cpu.Core, flags cpu.BreakpointFlags) error {
			stop := flags&(cpu.UserBreakpoint|cpu.StepBreakpoint) != 0
			if scr != nil && flags&cpu.SystemBreakpoint != 0 {
				s, err := scr.Breakpoint(c)
				if err != nil {
					return err
				}
				stop = stop || s
			}
			if stop && mon != nil {
				return mon.Breakpoint(c, flags)
			}
			return nil
		},

		// a system call ends the program. r3 is the exit status
		SystemCall: func(c *cpu.Core, _ instructions.Instruction) error {
			status.CompareAndSwap(-1, int32(c.State.GPR[3]))
			log.Logf(logger.Allow, "run", "core %d: exit with status %d", c.ID, int32(c.State.GPR[3]))
			sch.Halt()
			return nil
		},
	}

	sch, err = cpu.NewScheduler(prf.SchedulerConfig(), mem, table, cmp, handlers, log)
	if err != nil {
		return exitOK, err
	}

	for _, l := range loads {
		data, err := os.ReadFile(l.file)
		if err != nil {
			return exitOK, err
		}
		if err := mem.Load(l.addr, data); err != nil {
			return exitOK, err
		}
		sch.InvalidateInstructionCache(l.addr, uint32(len(data)))
		log.Logf(logger.Allow, "run", "loaded %s at %08x (%d bytes)", l.file, l.addr, len(data))
	}

	var entryAddr uint32
	switch {
	case *entry != "":
		entryAddr, err = commandline.ParseAddress(*entry)
		if err != nil {
			return exitOK, fmt.Errorf("invalid entry point (%s)", *entry)
		}
	case len(loads) > 0:
		entryAddr = loads[0].addr
	}
	if *entry != "" || len(loads) > 0 {
		if err := sch.SetEntryPoint(0, entryAddr); err != nil {
			return exitOK, err
		}
	}

	if *script != "" {
		scr = scripting.NewScript(sch, log)
		defer scr.Close()
		if err := scr.LoadFile(*script); err != nil {
			return exitOK, err
		}
	}

	if *monitor {
		var term terminal.Terminal
		switch strings.ToUpper(*termType) {
		default:
			fmt.Printf("! unknown terminal type (%s) defaulting to plain\n", *termType)
			fallthrough
		case "PLAIN":
			term = plainterm.NewPlainTerminal(nil, nil)
		case "COLOR":
			term = &colorterm.ColorTerminal{}
		}

		if err := term.Initialise(); err != nil {
			log.Logf(logger.Allow, "monitor", "%v: using plain terminal", err)
			term = plainterm.NewPlainTerminal(nil, nil)
		}
		defer term.CleanUp()

		mon = debugger.NewMonitor(sch, term, log)
		if *entry != "" || len(loads) > 0 {
			sch.AddBreakpoint(entryAddr, cpu.UserBreakpoint)
		}
	}

	// ctrl-c halts the scheduler. the monitor handles ctrl-c itself while
	// it is reading input
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Stop(intChan)
	go func() {
		for range intChan {
			log.Log(logger.Allow, "run", "interrupted")
			sch.Halt()
		}
	}()

	if err := sch.Start(); err != nil {
		return exitOK, err
	}
	err = sch.Join()

	if *profile > 0 {
		if perr := cmp.WriteProfile(os.Stdout, *profile); perr != nil {
			log.Log(logger.Allow, "run", perr)
		}
	}

	if err != nil {
		return exitOK, err
	}

	return max(0, int(status.Load())), nil
}

func disasm(md *modalflag.Modes) error {
	md.NewMode()

	base := md.AddString("base", fmt.Sprintf("%08x", memorymap.OriginCode), "address at which the binary would be loaded")
	bytecode := md.AddBool("bytecode", false, "include bytecode in disassembly")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("binary file required for %s mode", md)
	case 1:
		origin, err := commandline.ParseAddress(*base)
		if err != nil {
			return fmt.Errorf("invalid base address (%s)", *base)
		}

		data, err := os.ReadFile(md.GetArg(0))
		if err != nil {
			return err
		}

		dsm, err := disassembly.FromBytes(origin, data)
		if err != nil {
			return err
		}

		return dsm.Write(md.Output, disassembly.WriteAttr{Bytecode: *bytecode})
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}
}

func codeTest(md *modalflag.Modes) error {
	md.NewMode()

	log := logger.NewLogger(1000)
	common := addCommonFlags(md)
	verbose := md.AddBool("verbose", false, "list every failure")
	logLimit := md.AddInt("loglimit", -1, "number of failures to log. negative for no limit")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	dir := "."
	switch len(md.RemainingArgs()) {
	case 0:
	case 1:
		dir = md.GetArg(0)
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	prf, err := common.preferences(log)
	if err != nil {
		return err
	}

	r, err := conformance.NewRunner(prf.JIT.Config(), log)
	if err != nil {
		return err
	}
	defer r.Destroy()
	r.LimitFailureLog(*logLimit)

	res, err := r.RunDir(dir, md.Output)
	if err != nil {
		return err
	}

	if *verbose {
		for _, f := range res.Failures {
			fmt.Fprintf(md.Output, "! %s\n", f)
		}
	}
	fmt.Fprintf(md.Output, "%s\n", res)

	if res.Failed > 0 {
		return fmt.Errorf("%d code tests failed", res.Failed)
	}
	return nil
}
