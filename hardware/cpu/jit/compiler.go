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

package jit

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jetsetilly/espresso/curated"
	"github.com/jetsetilly/espresso/disassembly"
	"github.com/jetsetilly/espresso/hardware/cpu/instructions"
	"github.com/jetsetilly/espresso/hardware/cpu/interpreter"
	"github.com/jetsetilly/espresso/hardware/memory"
	"github.com/jetsetilly/espresso/logger"
)

// Sentinal errors.
const (
	Divergence        = "jit: divergence at %08x (%s): %s"
	BadOperand        = "jit: invalid operand (%v)"
	BadOperation      = "jit: invalid operation (%v)"
	ArenaFailed       = "jit: executable memory: %v"
	ArenaFull         = "jit: executable memory full (%d bytes)"
	NativeUnavailable = "jit: native backend not available on this platform"
	UnknownMode       = "jit: unknown mode (%s)"
)

// Mode selects how guest code is executed.
type Mode int

// List of valid Mode values.
const (
	// every instruction is executed by the interpreter
	Disabled Mode = iota

	// blocks are compiled and executed
	Enabled

	// every instruction is compiled and executed and the result compared
	// with the interpreter
	Verify
)

func (m Mode) String() string {
	switch m {
	case Disabled:
		return "disabled"
	case Enabled:
		return "enabled"
	case Verify:
		return "verify"
	}
	return "unknown"
}

// ParseMode is the inverse of the Mode.String() function.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "disabled":
		return Disabled, nil
	case "enabled":
		return Enabled, nil
	case "verify":
		return Verify, nil
	}
	return Disabled, curated.Errorf(UnknownMode, s)
}

// Opt is a set of optimisation flags.
type Opt int

// List of valid Opt flags.
const (
	// use the native backend if it is available
	OptNative Opt = 1 << iota

	// continue a block through unconditional direct branches that do not
	// set the link register
	OptMerge

	// count block executions and the time spent in each block
	OptProfile
)

var optNames = []struct {
	opt  Opt
	name string
}{
	{OptNative, "native"},
	{OptMerge, "merge"},
	{OptProfile, "profile"},
}

func (o Opt) String() string {
	var s []string
	for _, n := range optNames {
		if o&n.opt == n.opt {
			s = append(s, n.name)
		}
	}
	if len(s) == 0 {
		return "none"
	}
	return strings.Join(s, ",")
}

// ParseOpt parses a list of optimisation flags separated by commas or
// spaces. Flags that are not recognised are returned in the second value.
func ParseOpt(s string) (Opt, []string) {
	var o Opt
	var unknown []string

	for _, f := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' '
	}) {
		f = strings.ToLower(f)
		found := false
		for _, n := range optNames {
			if n.name == f {
				o |= n.opt
				found = true
				break
			}
		}
		if !found && f != "none" {
			unknown = append(unknown, f)
		}
	}

	return o, unknown
}

// Config for a new Compiler.
type Config struct {
	Mode Mode
	Opt  Opt

	// only instructions at this address are verified in Verify mode. zero
	// means all addresses
	VerifyAddress uint32

	// limits of the code cache in bytes. the cache is cleared when either
	// limit would be exceeded
	CodeSize int
	DataSize int

	// maximum number of guest instructions in a block
	BlockSize int
}

// DefaultConfig returns the configuration used when there are no
// preferences.
func DefaultConfig() Config {
	return Config{
		Mode:      Enabled,
		CodeSize:  256 * 1024 * 1024,
		DataSize:  64 * 1024 * 1024,
		BlockSize: 64,
	}
}

// Block is a compiled run of guest instructions.
type Block struct {
	// address of the first instruction
	Start uint32

	// number of guest instructions and how many of those are executed by
	// the interpreter
	Length   int
	CallOuts int

	// size of the host code in bytes
	CodeSize int

	spans []span
	run   run

	// profiling
	count   atomic.Uint64
	elapsed atomic.Int64
}

func (b *Block) overlaps(addr uint32, size uint32) bool {
	for _, s := range b.spans {
		if s.overlaps(addr, size) {
			return true
		}
	}
	return false
}

func (b *Block) String() string {
	return fmt.Sprintf("%08x: %d instructions (%d call-outs)", b.Start, b.Length, b.CallOuts)
}

// backend creates emitters for a code generation method.
type backend interface {
	String() string
	newEmitter() emitter

	// all code has been discarded
	reset() error

	destroy() error
}

// Compiler translates guest code into host code and executes it.
type Compiler struct {
	table *interpreter.Table
	log   *logger.Logger

	mode          Mode
	opt           Opt
	verifyAddress uint32
	blockSize     int

	backend backend
	cache   *cache

	// serialises translation
	translating sync.Mutex
}

// NewCompiler is the preferred method of initialisation for the Compiler
// type.
func NewCompiler(cfg Config, table *interpreter.Table, log *logger.Logger) (*Compiler, error) {
	cmp := &Compiler{
		table:         table,
		log:           log,
		mode:          cfg.Mode,
		opt:           cfg.Opt,
		verifyAddress: cfg.VerifyAddress,
		blockSize:     max(cfg.BlockSize, 1),
		backend:       closureBackend{},
		cache:         newCache(cfg.CodeSize, cfg.DataSize),
	}

	// one instruction per block when verifying
	if cmp.mode == Verify {
		cmp.blockSize = 1
		cmp.opt &^= OptMerge
	}

	if cmp.opt&OptNative == OptNative {
		b, err := newNativeBackend(cfg.CodeSize)
		if err != nil {
			log.Logf(logger.Allow, "jit", "%v: using closure backend", err)
			cmp.opt &^= OptNative
		} else {
			cmp.backend = b
		}
	}

	log.Logf(logger.Allow, "jit", "%s: %s backend, optimisations: %s", cmp.mode, cmp.backend, cmp.opt)

	return cmp, nil
}

// Destroy releases the resources used by the Compiler.
func (cmp *Compiler) Destroy() error {
	cmp.cache.clear()
	return cmp.backend.destroy()
}

// Mode returns the mode of the compiler.
func (cmp *Compiler) Mode() Mode {
	return cmp.mode
}

// Execute the block of guest code at NIA, compiling it first if necessary.
// The instruction at NIA must be in mapped memory.
//
// On return the CIA and NIA of the State are as they would be after the
// interpreter had executed the same instructions. Execution leaves the block
// early if an instruction raises an event.
func (cmp *Compiler) Execute(st *interpreter.State) {
	b := cmp.cache.lookup(st.NIA)
	if b == nil {
		b = cmp.compile(st.Mem, st.NIA)
	}

	if cmp.mode == Verify {
		cmp.verify(b, st)
		return
	}

	cmp.execute(b, st)
}

func (cmp *Compiler) execute(b *Block, st *interpreter.State) {
	if cmp.opt&OptProfile != OptProfile {
		b.run(st)
		return
	}

	t := time.Now()
	b.run(st)
	b.elapsed.Add(int64(time.Since(t)))
	b.count.Add(1)
}

func (cmp *Compiler) compile(mem *memory.Memory, addr uint32) *Block {
	cmp.translating.Lock()
	defer cmp.translating.Unlock()

	// another core may have compiled the block while this core was waiting
	if b := cmp.cache.lookup(addr); b != nil {
		return b
	}

	b, err := cmp.build(mem, addr)
	if err == nil && cmp.cache.insert(b) {
		return b
	}
	if err != nil && !curated.Is(err, ArenaFull) {
		panic(err)
	}

	cmp.log.Log(logger.Allow, "jit", "code cache full: clearing")
	cmp.clear()

	b, err = cmp.build(mem, addr)
	if err != nil {
		panic(err)
	}

	// a block that is too large for an empty cache is executed but never
	// cached
	_ = cmp.cache.insert(b)

	return b
}

func (cmp *Compiler) build(mem *memory.Memory, addr uint32) (*Block, error) {
	e := cmp.backend.newEmitter()
	tr := cmp.translate(mem, addr, e)

	r, size, err := e.finish(tr.next)
	if err != nil {
		return nil, err
	}

	return &Block{
		Start:    addr,
		Length:   tr.length,
		CallOuts: tr.callOuts,
		CodeSize: size,
		spans:    tr.spans,
		run:      r,
	}, nil
}

func (cmp *Compiler) clear() {
	cmp.cache.clear()
	if err := cmp.backend.reset(); err != nil {
		panic(err)
	}
}

// InvalidateInstructionCache discards all compiled blocks that contain any
// instruction in the address range. The next execution of those addresses
// compiles them again.
func (cmp *Compiler) InvalidateInstructionCache(addr uint32, size uint32) {
	if n := cmp.cache.invalidate(addr, size); n > 0 {
		cmp.log.Logf(logger.Allow, "jit", "invalidated %d blocks in %08x to %08x", n, addr, addr+size)
	}
}

// CacheSize returns the number of bytes of code and data in the cache.
func (cmp *Compiler) CacheSize() (int, int) {
	return cmp.cache.sizes()
}

// verify a single instruction block against the interpreter. blocks that
// contain a call-out are executed once without verification because the
// instruction may access memory.
func (cmp *Compiler) verify(b *Block, st *interpreter.State) {
	cia := st.NIA
	if b.CallOuts > 0 || (cmp.verifyAddress != 0 && cia != cmp.verifyAddress) {
		cmp.execute(b, st)
		return
	}

	ref := *st
	cmp.execute(b, st)
	cmp.table.Step(&ref)

	if diff := st.CoreRegs.Compare(&ref.CoreRegs); len(diff) > 0 {
		ins := instructions.Instruction(st.Mem.Read32(cia))
		err := curated.Errorf(Divergence, cia, disassembly.Instruction(cia, ins), strings.Join(diff, ", "))
		cmp.log.Log(logger.Allow, "verify", err)
		panic(err)
	}
}
