// Package llvmgen lowers Instant programs to LLVM IR.
// Every variable gets an alloca on its first assignment and is loaded on
// every read; operations write fresh temporaries in source order.
package llvmgen

import (
	"strings"

	"github.com/raymyers/instc/pkg/ast"
	"github.com/raymyers/instc/pkg/llvm"
)

// Translator holds the state of one program translation
type Translator struct {
	regs     *RegAllocator
	assigned map[string]bool
	code     []llvm.Instruction
}

// NewTranslator creates a translator with no variables
func NewTranslator() *Translator {
	return &Translator{
		regs:     NewRegAllocator(),
		assigned: make(map[string]bool),
	}
}

// Regs returns the register allocator used by the translator
func (t *Translator) Regs() *RegAllocator {
	return t.regs
}

// Code returns the instructions emitted so far
func (t *Translator) Code() []llvm.Instruction {
	return t.code
}

func (t *Translator) emit(inst llvm.Instruction) {
	t.code = append(t.code, inst)
}

func opcode(op ast.Operator) llvm.Opcode {
	switch op {
	case ast.OpAdd:
		return llvm.Add
	case ast.OpSub:
		return llvm.Sub
	case ast.OpMul:
		return llvm.Mul
	case ast.OpDiv:
		return llvm.SDiv
	default:
		panic("llvmgen: unknown operator")
	}
}

// TranslateExpr emits code for e and returns the operand holding its value.
// Literals become immediates and emit nothing.
func (t *Translator) TranslateExpr(e ast.Expr) (llvm.Value, error) {
	switch expr := e.(type) {
	case ast.Literal:
		return llvm.Const(expr.Value), nil
	case ast.Variable:
		if !t.assigned[expr.Name] {
			return nil, &ast.UndeclaredVariableError{Name: expr.Name}
		}
		dst := t.regs.FreshLoad(expr.Name)
		t.emit(llvm.Load{Dst: dst, Ptr: t.regs.Slot(expr.Name)})
		return dst, nil
	case ast.BinaryOp:
		left, err := t.TranslateExpr(expr.Left)
		if err != nil {
			return nil, err
		}
		right, err := t.TranslateExpr(expr.Right)
		if err != nil {
			return nil, err
		}
		dst := t.regs.Fresh()
		t.emit(llvm.BinOp{Dst: dst, Op: opcode(expr.Op), Left: left, Right: right})
		return dst, nil
	default:
		panic("llvmgen: unknown expression type")
	}
}

// TranslateStmt emits code for a single statement
func (t *Translator) TranslateStmt(s ast.Stmt) error {
	switch stmt := s.(type) {
	case ast.Assign:
		slot, fresh := t.regs.MapVar(stmt.Name)
		if fresh {
			t.emit(llvm.Alloca{Dst: slot})
		}
		v, err := t.TranslateExpr(stmt.Expr)
		if err != nil {
			return err
		}
		t.emit(llvm.Store{Val: v, Ptr: slot})
		t.assigned[stmt.Name] = true
	case ast.Print:
		v, err := t.TranslateExpr(stmt.Expr)
		if err != nil {
			return err
		}
		t.emit(llvm.Call{Callee: llvm.PrintInt, Arg: v})
	default:
		panic("llvmgen: unknown statement type")
	}
	return nil
}

// TranslateProgram lowers a program to a module with a main function that
// runs the statements in order and returns 0. No module is produced if any
// statement fails.
func TranslateProgram(prog *ast.Program) (*llvm.Module, error) {
	t := NewTranslator()
	for _, s := range prog.Stmts {
		if err := t.TranslateStmt(s); err != nil {
			return nil, err
		}
	}
	return llvm.NewMainModule(t.Code()), nil
}

// Compile lowers a program and renders it as LLVM IR text
func Compile(prog *ast.Program) (string, error) {
	m, err := TranslateProgram(prog)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	llvm.NewPrinter(&sb).PrintModule(m)
	return sb.String(), nil
}
