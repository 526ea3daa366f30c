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
	"unsafe"

	"github.com/jetsetilly/espresso/curated"
	"github.com/jetsetilly/espresso/hardware/cpu/instructions"
	"github.com/jetsetilly/espresso/hardware/cpu/interpreter"
)

// step is the code for part of an instruction. returns false if execution
// should leave the block.
type step func(st *interpreter.State) bool

// the nominal code size of a step for the purposes of cache accounting
const stepSize = int(unsafe.Sizeof(step(nil)))

// closureBackend creates blocks of Go closures. it is available on every
// platform.
type closureBackend struct{}

func (closureBackend) String() string {
	return "closure"
}

func (closureBackend) newEmitter() emitter {
	return &closureEmitter{}
}

func (closureBackend) reset() error {
	return nil
}

func (closureBackend) destroy() error {
	return nil
}

type closureEmitter struct {
	steps    []step
	cia      uint32
	branched bool
}

func (e *closureEmitter) begin(cia uint32) {
	e.cia = cia
}

func (e *closureEmitter) closed() bool {
	return e.branched
}

type getter func(st *interpreter.State) uint32

func get(o Operand) getter {
	switch o.Kind {
	case GPR:
		n := o.Value
		return func(st *interpreter.State) uint32 { return st.GPR[n] }
	case Immediate:
		v := o.Value
		return func(_ *interpreter.State) uint32 { return v }
	case LinkRegister:
		return func(st *interpreter.State) uint32 { return st.LR }
	case CountRegister:
		return func(st *interpreter.State) uint32 { return st.CTR }
	}
	panic(curated.Errorf(BadOperand, o))
}

// pointer returns the storage for a destination operand.
func pointer(st *interpreter.State, o Operand) *uint32 {
	switch o.Kind {
	case GPR:
		return &st.GPR[o.Value]
	case LinkRegister:
		return &st.LR
	case CountRegister:
		return &st.CTR
	}
	panic(curated.Errorf(BadOperand, o))
}

func (e *closureEmitter) EmitMove(dst, src Operand) {
	if dst.Kind == Immediate || dst.Kind == NoOperand {
		panic(curated.Errorf(BadOperand, dst))
	}

	if dst.Kind == GPR && src.Kind == GPR {
		d, s := dst.Value, src.Value
		e.steps = append(e.steps, func(st *interpreter.State) bool {
			st.GPR[d] = st.GPR[s]
			return true
		})
		return
	}

	g := get(src)
	e.steps = append(e.steps, func(st *interpreter.State) bool {
		*pointer(st, dst) = g(st)
		return true
	})
}

func (e *closureEmitter) EmitArith(op ArithOp, dst, a, b Operand) {
	if dst.Kind != GPR {
		panic(curated.Errorf(BadOperand, dst))
	}
	d := dst.Value

	// the common forms of register and immediate operands are specialised
	switch {
	case a.Kind == GPR && b.Kind == Immediate && op == ArithAdd:
		r, v := a.Value, b.Value
		e.steps = append(e.steps, func(st *interpreter.State) bool {
			st.GPR[d] = st.GPR[r] + v
			return true
		})
	case a.Kind == GPR && b.Kind == Immediate:
		r, v := a.Value, b.Value
		e.steps = append(e.steps, func(st *interpreter.State) bool {
			st.GPR[d] = op.Apply(st.GPR[r], v)
			return true
		})
	case a.Kind == GPR && b.Kind == GPR:
		ra, rb := a.Value, b.Value
		e.steps = append(e.steps, func(st *interpreter.State) bool {
			st.GPR[d] = op.Apply(st.GPR[ra], st.GPR[rb])
			return true
		})
	default:
		ga, gb := get(a), get(b)
		e.steps = append(e.steps, func(st *interpreter.State) bool {
			st.GPR[d] = op.Apply(ga(st), gb(st))
			return true
		})
	}
}

func (e *closureEmitter) EmitBranch(target Operand, link bool) {
	g := get(target)
	cia := e.cia
	e.steps = append(e.steps, func(st *interpreter.State) bool {
		t := g(st)
		if link {
			st.LR = cia + 4
		}
		st.CIA = cia
		st.NIA = t
		return false
	})
	e.branched = true
}

func (e *closureEmitter) EmitCallOut(h interpreter.Handler, ins instructions.Instruction) {
	c := callOut{cia: e.cia, h: h, ins: ins}
	e.steps = append(e.steps, c.execute)
}

func (e *closureEmitter) finish(next uint32) (run, int, error) {
	if !e.branched {
		cia := e.cia
		e.steps = append(e.steps, func(st *interpreter.State) bool {
			st.CIA = cia
			st.NIA = next
			return false
		})
	}

	steps := e.steps
	return func(st *interpreter.State) {
		for _, s := range steps {
			if !s(st) {
				return
			}
		}
	}, len(steps) * stepSize, nil
}
