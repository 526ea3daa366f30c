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

	"github.com/jetsetilly/espresso/hardware/bits"
	"github.com/jetsetilly/espresso/hardware/cpu/instructions"
	"github.com/jetsetilly/espresso/hardware/cpu/interpreter"
)

// OperandKind says where the value of an Operand comes from.
type OperandKind int

// List of valid OperandKind values.
const (
	NoOperand OperandKind = iota
	GPR
	Immediate
	LinkRegister
	CountRegister
)

// Operand is a source or destination of an emitted operation.
type Operand struct {
	Kind OperandKind

	// register number for GPR operands, the value for Immediate operands
	Value uint32
}

// Reg returns an Operand for general purpose register n.
func Reg(n uint32) Operand {
	return Operand{Kind: GPR, Value: n}
}

// Imm returns an Operand for an immediate value.
func Imm(v uint32) Operand {
	return Operand{Kind: Immediate, Value: v}
}

// Operands for the special purpose registers.
var (
	LR  = Operand{Kind: LinkRegister}
	CTR = Operand{Kind: CountRegister}
)

func (o Operand) String() string {
	switch o.Kind {
	case GPR:
		return fmt.Sprintf("r%d", o.Value)
	case Immediate:
		return fmt.Sprintf("#%08x", o.Value)
	case LinkRegister:
		return "lr"
	case CountRegister:
		return "ctr"
	}
	return "none"
}

// ArithOp is an operation with two 32 bit operands and a 32 bit result. None
// of the operations change any flags.
type ArithOp int

// List of valid ArithOp values.
const (
	ArithAdd ArithOp = iota
	ArithSub
	ArithMul
	ArithAnd
	ArithAndc
	ArithOr
	ArithOrc
	ArithXor
	ArithNand
	ArithNor
	ArithEqv

	// rotate left by the low five bits of the second operand
	ArithRotl
)

func (op ArithOp) String() string {
	switch op {
	case ArithAdd:
		return "add"
	case ArithSub:
		return "sub"
	case ArithMul:
		return "mul"
	case ArithAnd:
		return "and"
	case ArithAndc:
		return "andc"
	case ArithOr:
		return "or"
	case ArithOrc:
		return "orc"
	case ArithXor:
		return "xor"
	case ArithNand:
		return "nand"
	case ArithNor:
		return "nor"
	case ArithEqv:
		return "eqv"
	case ArithRotl:
		return "rotl"
	}
	return "unknown"
}

// Apply performs the operation on the two values.
func (op ArithOp) Apply(a, b uint32) uint32 {
	switch op {
	case ArithAdd:
		return a + b
	case ArithSub:
		return a - b
	case ArithMul:
		return a * b
	case ArithAnd:
		return a & b
	case ArithAndc:
		return a &^ b
	case ArithOr:
		return a | b
	case ArithOrc:
		return a | ^b
	case ArithXor:
		return a ^ b
	case ArithNand:
		return ^(a & b)
	case ArithNor:
		return ^(a | b)
	case ArithEqv:
		return ^(a ^ b)
	case ArithRotl:
		return bits.RotateLeft32(a, b&0x1f)
	}
	panic(fmt.Sprintf("jit: unknown arithmetic operation (%d)", op))
}

// Emitter is the interface to a code generating backend. The translation of
// guest instructions is written once against this interface.
//
// Immediate operands are never used as a destination. A branch ends the
// block; a call-out may end the block depending on the backend.
type Emitter interface {
	// dst = src
	EmitMove(dst, src Operand)

	// dst = a op b
	EmitArith(op ArithOp, dst, a, b Operand)

	// nia = target. if link is true then the link register is set to the
	// address of the instruction following the branch, after the target
	// has been read
	EmitBranch(target Operand, link bool)

	// run the interpreter handler for the instruction
	EmitCallOut(h interpreter.Handler, ins instructions.Instruction)
}

// emitter is the interface used by the front end. it extends Emitter with
// the functions that delimit instructions and blocks.
type emitter interface {
	Emitter

	// begin is called before the operations for the instruction at cia are
	// emitted
	begin(cia uint32)

	// closed returns true if the backend will not accept any more
	// instructions for the block
	closed() bool

	// finish the block. the next argument is the address of the instruction
	// following the block, used when the block does not end with a branch
	finish(next uint32) (run, int, error)
}

// run executes the code of a block.
type run func(st *interpreter.State)

// callOut is an instruction executed by the interpreter on behalf of a
// block.
type callOut struct {
	cia uint32
	h   interpreter.Handler
	ins instructions.Instruction
}

// execute the call-out. returns false if the instruction changed the flow of
// execution or raised an event.
func (c callOut) execute(st *interpreter.State) bool {
	st.CIA = c.cia
	st.NIA = c.cia + 4
	c.h(st, c.ins)
	return st.Event == interpreter.NoEvent && st.NIA == c.cia+4
}
