// Package jvmgen lowers Instant programs to JVM bytecode in Jasmin form.
// Operands are evaluated deeper first so that the operand stack never grows
// past the depth computed by Annotate.
package jvmgen

import (
	"math"

	"github.com/raymyers/instc/pkg/ast"
	"github.com/raymyers/instc/pkg/jasmin"
)

// State is the code generation state threaded through a translation
type State struct {
	Slots *SlotAllocator
	code  []jasmin.Instruction
}

// NewState creates an empty generation state
func NewState() *State {
	return &State{Slots: NewSlotAllocator()}
}

// Emit appends instructions to the generated code
func (s *State) Emit(insts ...jasmin.Instruction) {
	s.code = append(s.code, insts...)
}

// Code returns the instructions emitted so far
func (s *State) Code() []jasmin.Instruction {
	return s.code
}

// PushConstant selects the shortest instruction that pushes n
func PushConstant(n int32) jasmin.Instruction {
	switch {
	case n == -1 || (n >= 1 && n <= 5):
		return jasmin.Iconst{Value: n}
	case n >= math.MinInt8 && n <= math.MaxInt8:
		return jasmin.Bipush{Value: n}
	case n >= math.MinInt16 && n <= math.MaxInt16:
		return jasmin.Sipush{Value: n}
	default:
		return jasmin.Ldc{Value: n}
	}
}

func arithInstruction(op ast.Operator) jasmin.Instruction {
	switch op {
	case ast.OpAdd:
		return jasmin.Iadd{}
	case ast.OpSub:
		return jasmin.Isub{}
	case ast.OpMul:
		return jasmin.Imul{}
	case ast.OpDiv:
		return jasmin.Idiv{}
	default:
		panic("jvmgen: unknown operator")
	}
}

// NeedsSwap reports whether the operands of o end up in reverse order on the
// stack and the operator cares about it
func NeedsSwap(o Op) bool {
	return o.RightFirst() && !o.Op.Commutative()
}

// TranslateExpr emits code that leaves the value of n on top of the stack
func TranslateExpr(s *State, n Node) error {
	switch e := n.(type) {
	case Const:
		s.Emit(PushConstant(e.Value))
	case Var:
		slot, ok := s.Slots.LookupVar(e.Name)
		if !ok {
			return &ast.UndeclaredVariableError{Name: e.Name}
		}
		s.Emit(jasmin.Iload{Slot: slot})
	case Op:
		first, second := e.Left, e.Right
		if e.RightFirst() {
			first, second = e.Right, e.Left
		}
		if err := TranslateExpr(s, first); err != nil {
			return err
		}
		if err := TranslateExpr(s, second); err != nil {
			return err
		}
		if NeedsSwap(e) {
			s.Emit(jasmin.Swap{})
		}
		s.Emit(arithInstruction(e.Op))
	default:
		panic("jvmgen: unknown annotated expression")
	}
	return nil
}

// TranslateStmt emits code for a single statement. The stack is empty
// before and after.
func TranslateStmt(s *State, st Stmt) error {
	switch stmt := st.(type) {
	case Store:
		// The slot is mapped after the value so that x = x; still fails.
		if err := TranslateExpr(s, stmt.Expr); err != nil {
			return err
		}
		s.Emit(jasmin.Istore{Slot: s.Slots.MapVar(stmt.Name)})
	case Print:
		if stmt.Expr.Depth() == 1 {
			s.Emit(jasmin.PrintSink)
			if err := TranslateExpr(s, stmt.Expr); err != nil {
				return err
			}
		} else {
			if err := TranslateExpr(s, stmt.Expr); err != nil {
				return err
			}
			s.Emit(jasmin.PrintSink, jasmin.Swap{})
		}
		s.Emit(jasmin.PrintCall)
	default:
		panic("jvmgen: unknown annotated statement")
	}
	return nil
}
