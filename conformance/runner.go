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

package conformance

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime/debug"
	"slices"
	"strings"

	"github.com/jetsetilly/espresso/curated"
	"github.com/jetsetilly/espresso/hardware/cpu"
	"github.com/jetsetilly/espresso/hardware/cpu/interpreter"
	"github.com/jetsetilly/espresso/hardware/cpu/jit"
	"github.com/jetsetilly/espresso/hardware/cpu/registers"
	"github.com/jetsetilly/espresso/hardware/memory"
	"github.com/jetsetilly/espresso/hardware/memory/memorymap"
	"github.com/jetsetilly/espresso/logger"
)

// Sentinal errors.
const (
	ParseError = "conformance: %s:%d: %v"
	FileError  = "conformance: %v"
	NoTests    = "conformance: no test files in %s"
)

// Extension of code test files.
const Extension = ".codetest"

// the maximum number of steps (instructions or blocks) a test can take
// before it is considered to have failed
const maxSteps = 100000

// Run identifies one of the four runs of each test.
type Run struct {
	// every byte of the register file is 0xff at the start of the run,
	// rather than zero
	Ones bool

	JIT bool
}

func (r Run) String() string {
	state := "0x00"
	if r.Ones {
		state = "0xff"
	}
	if r.JIT {
		return fmt.Sprintf("%s with JIT", state)
	}
	return fmt.Sprintf("%s with interpreter", state)
}

// each test is run with these settings
var runs = []Run{
	{Ones: false, JIT: false},
	{Ones: true, JIT: false},
	{Ones: false, JIT: true},
	{Ones: true, JIT: true},
}

// Failure describes why a test failed.
type Failure struct {
	Test   string
	Run    Run
	Reason []string
}

func (f Failure) String() string {
	return fmt.Sprintf("%s (%s): %s", f.Test, f.Run, strings.Join(f.Reason, "; "))
}

// Results of running tests.
type Results struct {
	Passed   int
	Failed   int
	Failures []Failure
}

func (res Results) String() string {
	return fmt.Sprintf("%d passed, %d failed", res.Passed, res.Failed)
}

func (res *Results) add(o Results) {
	res.Passed += o.Passed
	res.Failed += o.Failed
	res.Failures = append(res.Failures, o.Failures...)
}

// Runner executes code tests with the interpreter and with the JIT.
type Runner struct {
	log   *logger.Logger
	mem   *memory.Memory
	table *interpreter.Table
	jit   *jit.Compiler

	// the number of failures that may still be logged
	logBudget logger.Budget
}

// NewRunner is the preferred method of initialisation for the Runner type.
// A JIT mode of jit.Disabled in the configuration is treated as
// jit.Enabled.
func NewRunner(cfg jit.Config, log *logger.Logger) (*Runner, error) {
	if cfg.Mode == jit.Disabled {
		cfg.Mode = jit.Enabled
	}

	mem, err := memory.NewMemory()
	if err != nil {
		return nil, err
	}

	r := &Runner{
		log:   log,
		mem:   mem,
		table: interpreter.NewTable(),

		logBudget: -1,
	}

	r.jit, err = jit.NewCompiler(cfg, r.table, log)
	if err != nil {
		_ = mem.Destroy()
		return nil, err
	}

	return r, nil
}

// Destroy releases the resources used by the Runner.
func (r *Runner) Destroy() error {
	err := r.jit.Destroy()
	if merr := r.mem.Destroy(); err == nil {
		err = merr
	}
	return err
}

// LimitFailureLog sets the number of failures that will be logged by the
// Runner. Failures beyond the limit are still returned in the Results. A
// negative limit removes the limit.
func (r *Runner) LimitFailureLog(n int) {
	r.logBudget = logger.Budget(n)
}

// RunDir runs the tests in every code test file in the directory. Files are
// run in name order.
func (r *Runner) RunDir(dir string, output io.Writer) (Results, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*"+Extension))
	if err != nil {
		return Results{}, curated.Errorf(FileError, err)
	}
	if len(files) == 0 {
		return Results{}, curated.Errorf(NoTests, dir)
	}
	slices.Sort(files)

	var res Results
	for _, f := range files {
		fr, err := r.RunFile(f, output)
		if err != nil {
			return res, err
		}
		res.add(fr)
	}

	return res, nil
}

// RunFile runs the tests in a single code test file.
func (r *Runner) RunFile(path string, output io.Writer) (Results, error) {
	tests, err := ParseFile(path)
	if err != nil {
		return Results{}, err
	}
	return r.Run(tests, output), nil
}

// Run the tests. A line for each test is written to output. The output can
// be nil.
func (r *Runner) Run(tests []*Test, output io.Writer) Results {
	if output == nil {
		output = io.Discard
	}

	// the code of each test is placed after the code of the previous test
	// with a blr at the end of each test
	addr := make([]uint32, len(tests))
	next := memorymap.OriginCode
	for i, t := range tests {
		addr[i] = next
		for _, w := range t.Code {
			r.mem.Write32(next, w)
			next += 4
		}
		r.mem.Write32(next, blr)
		next += 4
	}
	r.jit.InvalidateInstructionCache(memorymap.OriginCode, next-memorymap.OriginCode)

	var res Results
	for i, t := range tests {
		var failed bool
		for _, run := range runs {
			reason := r.execute(t, addr[i], run)
			if len(reason) > 0 {
				failed = true
				f := Failure{Test: t.Name, Run: run, Reason: reason}
				res.Failures = append(res.Failures, f)
				r.log.Log(&r.logBudget, "test", f)
			}
		}

		if failed {
			res.Failed++
			fmt.Fprintf(output, "FAILED %s\n", t.Name)
		} else {
			res.Passed++
			fmt.Fprintf(output, "PASSED %s\n", t.Name)
		}
	}

	return res
}

const blr = 0x4e800020

// execute a test once. returns the reasons for failure, if any.
func (r *Runner) execute(t *Test, addr uint32, run Run) (reason []string) {
	st := &interpreter.State{
		Mem: r.mem,
	}
	if run.Ones {
		ones(&st.CoreRegs)
	}

	for tgt, v := range t.In {
		set(st, tgt, v.Bits)
	}

	original := st.CoreRegs
	st.NIA = addr
	st.LR = cpu.CallbackAddress

	old := debug.SetPanicOnFault(true)
	defer debug.SetPanicOnFault(old)

	defer func() {
		if rec := recover(); rec != nil {
			if a, ok := r.mem.FaultAddress(rec); ok {
				reason = append(reason, fmt.Sprintf("access violation at %08x (cia %08x)", a, st.CIA))
				return
			}
			reason = append(reason, fmt.Sprintf("%v", rec))
		}
	}()

	for steps := 0; st.NIA != cpu.CallbackAddress; steps++ {
		if steps >= maxSteps {
			return []string{fmt.Sprintf("did not return after %d steps", maxSteps)}
		}
		if !r.mem.IsMapped(st.NIA, 4) {
			return []string{fmt.Sprintf("access violation at %08x (cia %08x)", st.NIA, st.CIA)}
		}

		if run.JIT {
			r.jit.Execute(st)
		} else {
			r.table.Step(st)
		}

		if st.Event != interpreter.NoEvent {
			return []string{fmt.Sprintf("unexpected %s at %08x", st.Event, st.CIA)}
		}
	}

	for tgt := range NumTargets {
		got := get(st, tgt)
		if v, ok := t.Out[tgt]; ok {
			if !v.Equal(got) {
				reason = append(reason, fmt.Sprintf("expected %s to be %s but got %#x", tgt, v, got))
			}
		} else if want := get(&interpreter.State{CoreRegs: original}, tgt); got != want {
			reason = append(reason, fmt.Sprintf("expected %s to be unchanged but %#x != %#x", tgt, got, want))
		}
	}

	return reason
}

// ones sets every bit of the register file.
func ones(regs *registers.CoreRegs) {
	data, err := regs.MarshalBinary()
	if err != nil {
		panic(err)
	}
	for i := range data {
		data[i] = 0xff
	}
	if err := regs.UnmarshalBinary(data); err != nil {
		panic(err)
	}
}

func get(st *interpreter.State, tgt Target) uint64 {
	switch {
	case tgt >= GPR && tgt < FPR:
		return uint64(st.GPR[tgt-GPR])
	case tgt >= FPR && tgt < CRF:
		return st.FPR[tgt-FPR].PS0
	case tgt >= CRF && tgt < XERSO:
		return uint64(st.CR.Field(uint32(tgt - CRF)))
	}

	var b bool
	switch tgt {
	case XERSO:
		b = st.XER.SO()
	case XEROV:
		b = st.XER.OV()
	case XERCA:
		b = st.XER.CA()
	case XERBC:
		return uint64(st.XER.ByteCount())
	}
	if b {
		return 1
	}
	return 0
}

func set(st *interpreter.State, tgt Target, v uint64) {
	switch {
	case tgt >= GPR && tgt < FPR:
		st.GPR[tgt-GPR] = uint32(v)
	case tgt >= FPR && tgt < CRF:
		st.FPR[tgt-FPR].PS0 = v
	case tgt >= CRF && tgt < XERSO:
		st.CR.SetField(uint32(tgt-CRF), uint32(v))
	case tgt == XERSO:
		st.XER.SetSO(v != 0)
	case tgt == XEROV:
		st.XER.SetOV(v != 0)
	case tgt == XERCA:
		st.XER.SetCA(v != 0)
	case tgt == XERBC:
		st.XER.SetByteCount(uint32(v))
	}
}
