package llvm

import (
	"errors"
	"math"
	"testing"
)

func TestMachineRun(t *testing.T) {
	fn := &Function{Name: "main", Code: []Instruction{
		Alloca{Dst: "loc.y"},
		Store{Val: Const(5), Ptr: "loc.y"},
		Load{Dst: "y.1", Ptr: "loc.y"},
		Load{Dst: "y.2", Ptr: "loc.y"},
		BinOp{Dst: "r1", Op: Sub, Left: Reg("y.2"), Right: Const(1)},
		BinOp{Dst: "r2", Op: Mul, Left: Reg("y.1"), Right: Reg("r1")},
		Call{Callee: PrintInt, Arg: Reg("r2")},
		Ret{Val: Const(3)},
	}}

	m := NewMachine()
	ret, err := m.Run(fn)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ret != 3 {
		t.Errorf("ret = %d, want 3", ret)
	}
	if len(m.Output) != 1 || m.Output[0] != 20 {
		t.Errorf("output = %v, want [20]", m.Output)
	}
}

func TestMachineArithmetic(t *testing.T) {
	tests := []struct {
		name string
		op   Opcode
		a, b int32
		want int32
	}{
		{"add", Add, 7, 3, 10},
		{"sub", Sub, 7, 3, 4},
		{"mul", Mul, 7, 3, 21},
		{"sdiv", SDiv, 7, 3, 2},
		{"sdiv negative truncates", SDiv, -7, 2, -3},
		{"mul wraps", Mul, math.MaxInt32, 2, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := RunModule(NewMainModule([]Instruction{
				BinOp{Dst: "r1", Op: tt.op, Left: Const(tt.a), Right: Const(tt.b)},
				Call{Callee: PrintInt, Arg: Reg("r1")},
			}))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(out) != 1 || out[0] != tt.want {
				t.Errorf("output = %v, want [%d]", out, tt.want)
			}
		})
	}
}

func TestMachineErrors(t *testing.T) {
	tests := []struct {
		name    string
		code    []Instruction
		wantErr error
	}{
		{"undefined register", []Instruction{Call{Callee: PrintInt, Arg: Reg("r9")}}, ErrUndefinedValue},
		{"load before store", []Instruction{Alloca{Dst: "loc.x"}, Load{Dst: "x.1", Ptr: "loc.x"}}, ErrLoadBeforeStore},
		{"load without alloca", []Instruction{Load{Dst: "x.1", Ptr: "loc.x"}}, ErrNotPointer},
		{"store without alloca", []Instruction{Store{Val: Const(1), Ptr: "loc.x"}}, ErrNotPointer},
		{"division by zero", []Instruction{BinOp{Dst: "r1", Op: SDiv, Left: Const(1), Right: Const(0)}}, ErrDivisionByZero},
		{"unknown callee", []Instruction{Call{Callee: "puts", Arg: Const(1)}}, ErrUnknownCallee},
		{"redefined register", []Instruction{
			BinOp{Dst: "r1", Op: Add, Left: Const(1), Right: Const(1)},
			BinOp{Dst: "r1", Op: Add, Left: Const(1), Right: Const(1)},
		}, ErrRedefinedValue},
		{"redefined alloca", []Instruction{Alloca{Dst: "loc.x"}, Alloca{Dst: "loc.x"}}, ErrRedefinedValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMachine().Run(&Function{Name: "main", Code: tt.code})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRunModuleWithoutMain(t *testing.T) {
	if _, err := RunModule(&Module{}); !errors.Is(err, ErrNoMainFunction) {
		t.Errorf("expected ErrNoMainFunction, got %v", err)
	}
}
