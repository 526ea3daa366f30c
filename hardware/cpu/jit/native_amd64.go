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

//go:build linux

package jit

import (
	"encoding/binary"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/jetsetilly/espresso/curated"
	"github.com/jetsetilly/espresso/hardware/cpu/instructions"
	"github.com/jetsetilly/espresso/hardware/cpu/interpreter"
	"github.com/jetsetilly/espresso/hardware/cpu/registers"
	"golang.org/x/sys/unix"
)

// NativeAvailable is true if the native backend can be used on this
// platform.
const NativeAvailable = true

// offsets of the fields in the register file addressed by native code
var (
	offCIA uint32
	offNIA uint32
	offGPR uint32
	offLR  uint32
	offCTR uint32
)

func init() {
	var r registers.CoreRegs
	offCIA = uint32(unsafe.Offsetof(r.CIA))
	offNIA = uint32(unsafe.Offsetof(r.NIA))
	offGPR = uint32(unsafe.Offsetof(r.GPR))
	offLR = uint32(unsafe.Offsetof(r.LR))
	offCTR = uint32(unsafe.Offsetof(r.CTR))
}

// arena is the executable memory for native blocks. code is never written
// to a page once it has been made executable. each block is given whole
// pages.
type arena struct {
	mem  []byte
	used int

	// mappings replaced by reset(). other cores may still be executing
	// code in them so they are only released by destroy()
	retired [][]byte
}

func newArena(size int) (*arena, error) {
	a := &arena{}
	if err := a.mmap(size); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *arena) mmap(size int) error {
	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON|unix.MAP_NORESERVE)
	if err != nil {
		return curated.Errorf(ArenaFailed, err)
	}
	a.mem = mem
	a.used = 0
	return nil
}

// write code to the arena. returns the address of the code and the number
// of bytes of arena used.
func (a *arena) write(code []byte) (uintptr, int, error) {
	page := unix.Getpagesize()
	n := (len(code) + page - 1) &^ (page - 1)
	if a.used+n > len(a.mem) {
		return 0, 0, curated.Errorf(ArenaFull, len(a.mem))
	}

	region := a.mem[a.used : a.used+n]
	copy(region, code)
	if err := unix.Mprotect(region, unix.PROT_READ|unix.PROT_EXEC); err != nil {
		return 0, 0, curated.Errorf(ArenaFailed, err)
	}
	a.used += n

	return uintptr(unsafe.Pointer(&region[0])), n, nil
}

func (a *arena) reset() error {
	a.retired = append(a.retired, a.mem)
	return a.mmap(len(a.mem))
}

func (a *arena) destroy() error {
	var err error
	for _, m := range append(a.retired, a.mem) {
		if e := unix.Munmap(m); e != nil && err == nil {
			err = curated.Errorf(ArenaFailed, e)
		}
	}
	a.retired = nil
	a.mem = nil
	return err
}

// nativeBackend creates blocks of x86-64 machine code. each native block is
// called with a pointer to the register file as its only argument.
type nativeBackend struct {
	arena *arena
}

func newNativeBackend(codeSize int) (backend, error) {
	a, err := newArena(max(codeSize, unix.Getpagesize()))
	if err != nil {
		return nil, err
	}
	return &nativeBackend{arena: a}, nil
}

func (*nativeBackend) String() string {
	return "native"
}

func (b *nativeBackend) newEmitter() emitter {
	return &nativeEmitter{backend: b}
}

func (b *nativeBackend) reset() error {
	return b.arena.reset()
}

func (b *nativeBackend) destroy() error {
	return b.arena.destroy()
}

// x86 register numbers
const (
	eax = 0
	ecx = 1
)

// assembler for the small subset of x86-64 used by the templates. all
// register file accesses are [rdi+disp32].
type assembler struct {
	code []byte
}

func (a *assembler) emit(b ...byte) {
	a.code = append(a.code, b...)
}

func (a *assembler) imm32(v uint32) {
	a.code = binary.LittleEndian.AppendUint32(a.code, v)
}

func offset(o Operand) uint32 {
	switch o.Kind {
	case GPR:
		return offGPR + o.Value*4
	case LinkRegister:
		return offLR
	case CountRegister:
		return offCTR
	}
	panic(curated.Errorf(BadOperand, o))
}

// mov r32, operand
func (a *assembler) load(r byte, o Operand) {
	if o.Kind == Immediate {
		a.emit(0xb8 + r)
		a.imm32(o.Value)
		return
	}
	a.emit(0x8b, 0x87|r<<3)
	a.imm32(offset(o))
}

// mov operand, r32
func (a *assembler) store(o Operand, r byte) {
	a.storeAt(offset(o), r)
}

// mov dword [rdi+off], r32
func (a *assembler) storeAt(off uint32, r byte) {
	a.emit(0x89, 0x87|r<<3)
	a.imm32(off)
}

// mov dword [rdi+off], imm32
func (a *assembler) storeImm(off uint32, v uint32) {
	a.emit(0xc7, 0x87)
	a.imm32(off)
	a.imm32(v)
}

// xor eax, eax; ret
func (a *assembler) ret() {
	a.emit(0x31, 0xc0, 0xc3)
}

type nativeEmitter struct {
	backend  *nativeBackend
	asm      assembler
	cia      uint32
	branched bool
	callOut  *callOut
}

func (e *nativeEmitter) begin(cia uint32) {
	e.cia = cia
}

// a call-out ends the native block so that the dispatcher can run the
// handler
func (e *nativeEmitter) closed() bool {
	return e.branched || e.callOut != nil
}

func (e *nativeEmitter) EmitMove(dst, src Operand) {
	e.asm.load(eax, src)
	e.asm.store(dst, eax)
}

func (e *nativeEmitter) EmitArith(op ArithOp, dst, a, b Operand) {
	e.asm.load(eax, a)
	e.asm.load(ecx, b)

	switch op {
	case ArithAdd:
		e.asm.emit(0x01, 0xc8)
	case ArithSub:
		e.asm.emit(0x29, 0xc8)
	case ArithMul:
		e.asm.emit(0x0f, 0xaf, 0xc1)
	case ArithAnd:
		e.asm.emit(0x21, 0xc8)
	case ArithAndc:
		e.asm.emit(0xf7, 0xd1, 0x21, 0xc8)
	case ArithOr:
		e.asm.emit(0x09, 0xc8)
	case ArithOrc:
		e.asm.emit(0xf7, 0xd1, 0x09, 0xc8)
	case ArithXor:
		e.asm.emit(0x31, 0xc8)
	case ArithNand:
		e.asm.emit(0x21, 0xc8, 0xf7, 0xd0)
	case ArithNor:
		e.asm.emit(0x09, 0xc8, 0xf7, 0xd0)
	case ArithEqv:
		e.asm.emit(0x31, 0xc8, 0xf7, 0xd0)
	case ArithRotl:
		e.asm.emit(0xd3, 0xc0)
	default:
		panic(curated.Errorf(BadOperation, op))
	}

	e.asm.store(dst, eax)
}

func (e *nativeEmitter) EmitBranch(target Operand, link bool) {
	e.asm.load(eax, target)
	if link {
		e.asm.storeImm(offLR, e.cia+4)
	}
	e.asm.storeAt(offNIA, eax)
	e.asm.storeImm(offCIA, e.cia)
	e.asm.ret()
	e.branched = true
}

func (e *nativeEmitter) EmitCallOut(h interpreter.Handler, ins instructions.Instruction) {
	e.callOut = &callOut{cia: e.cia, h: h, ins: ins}
}

func (e *nativeEmitter) finish(next uint32) (run, int, error) {
	if !e.branched && (len(e.asm.code) > 0 || e.callOut == nil) {
		if e.callOut != nil {
			next = e.callOut.cia
		}
		e.asm.storeImm(offCIA, e.cia)
		e.asm.storeImm(offNIA, next)
		e.asm.ret()
	}

	var entry uintptr
	var size int
	if len(e.asm.code) > 0 {
		var err error
		entry, size, err = e.backend.arena.write(e.asm.code)
		if err != nil {
			return nil, 0, err
		}
	}

	c := e.callOut
	return func(st *interpreter.State) {
		if entry != 0 {
			purego.SyscallN(entry, uintptr(unsafe.Pointer(&st.CoreRegs)))
		}
		if c != nil {
			c.execute(st)
		}
	}, size, nil
}
