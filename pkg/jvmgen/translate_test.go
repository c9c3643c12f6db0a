package jvmgen

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/raymyers/instc/pkg/ast"
	"github.com/raymyers/instc/pkg/jasmin"
	"github.com/raymyers/instc/pkg/parser"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return prog
}

func TestPushConstant(t *testing.T) {
	tests := []struct {
		n    int32
		want jasmin.Instruction
	}{
		{-1, jasmin.Iconst{Value: -1}},
		{1, jasmin.Iconst{Value: 1}},
		{5, jasmin.Iconst{Value: 5}},
		{0, jasmin.Bipush{Value: 0}},
		{6, jasmin.Bipush{Value: 6}},
		{-2, jasmin.Bipush{Value: -2}},
		{127, jasmin.Bipush{Value: 127}},
		{-128, jasmin.Bipush{Value: -128}},
		{128, jasmin.Sipush{Value: 128}},
		{-129, jasmin.Sipush{Value: -129}},
		{32767, jasmin.Sipush{Value: 32767}},
		{-32768, jasmin.Sipush{Value: -32768}},
		{32768, jasmin.Ldc{Value: 32768}},
		{-32769, jasmin.Ldc{Value: -32769}},
		{2147483647, jasmin.Ldc{Value: 2147483647}},
	}
	for _, tt := range tests {
		if got := PushConstant(tt.n); got != tt.want {
			t.Errorf("PushConstant(%d) = %#v, want %#v", tt.n, got, tt.want)
		}
	}
}

func TestTranslateProgramCode(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		code   []jasmin.Instruction
		limits jasmin.Limits
	}{
		{
			name: "assign and print",
			src:  "x = 2 + 2; x;",
			code: []jasmin.Instruction{
				jasmin.Iconst{Value: 2}, jasmin.Iconst{Value: 2}, jasmin.Iadd{}, jasmin.Istore{Slot: 1},
				jasmin.PrintSink, jasmin.Iload{Slot: 1}, jasmin.PrintCall,
			},
			limits: jasmin.Limits{Stack: 3, Locals: 2},
		},
		{
			name: "equal depth keeps source order",
			src:  "a = 10; b = 3; a - b;",
			code: []jasmin.Instruction{
				jasmin.Bipush{Value: 10}, jasmin.Istore{Slot: 1},
				jasmin.Iconst{Value: 3}, jasmin.Istore{Slot: 2},
				jasmin.Iload{Slot: 1}, jasmin.Iload{Slot: 2}, jasmin.Isub{},
				jasmin.PrintSink, jasmin.Swap{}, jasmin.PrintCall,
			},
			limits: jasmin.Limits{Stack: 4, Locals: 3},
		},
		{
			name: "commutative right first",
			src:  "y = 5; y * (y - 1);",
			code: []jasmin.Instruction{
				jasmin.Iconst{Value: 5}, jasmin.Istore{Slot: 1},
				jasmin.Iload{Slot: 1}, jasmin.Iconst{Value: 1}, jasmin.Isub{},
				jasmin.Iload{Slot: 1}, jasmin.Imul{},
				jasmin.PrintSink, jasmin.Swap{}, jasmin.PrintCall,
			},
			limits: jasmin.Limits{Stack: 4, Locals: 2},
		},
		{
			name: "non-commutative right first swaps",
			src:  "1 - (2 - 3);",
			code: []jasmin.Instruction{
				jasmin.Iconst{Value: 2}, jasmin.Iconst{Value: 3}, jasmin.Isub{},
				jasmin.Iconst{Value: 1}, jasmin.Swap{}, jasmin.Isub{},
				jasmin.PrintSink, jasmin.Swap{}, jasmin.PrintCall,
			},
			limits: jasmin.Limits{Stack: 4, Locals: 1},
		},
		{
			name:   "empty program",
			src:    "",
			code:   nil,
			limits: jasmin.Limits{Stack: 0, Locals: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class, err := TranslateProgram(mustParse(t, tt.src), "Prog")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			main := class.FindMethod("main")
			if main == nil {
				t.Fatal("main method not found")
			}
			want := append(append([]jasmin.Instruction{}, tt.code...), jasmin.Return{})
			if !reflect.DeepEqual(main.Code, want) {
				t.Errorf("code mismatch\ngot:  %s\nwant: %s", spew.Sdump(main.Code), spew.Sdump(want))
			}
			if *main.Limits != tt.limits {
				t.Errorf("limits = %+v, want %+v", *main.Limits, tt.limits)
			}
		})
	}
}

func TestNeedsSwap(t *testing.T) {
	ops := []ast.Operator{ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv}
	shallow := lit(1)
	deep := ast.Bin(lit(2), ast.OpAdd, lit(3))

	for _, op := range ops {
		for _, rightDeep := range []bool{false, true} {
			var expr ast.Expr
			if rightDeep {
				expr = ast.Bin(shallow, op, deep)
			} else {
				expr = ast.Bin(deep, op, shallow)
			}
			got := NeedsSwap(Annotate(expr).(Op))
			want := rightDeep && (op == ast.OpSub || op == ast.OpDiv)
			if got != want {
				t.Errorf("%s rightDeep=%v: NeedsSwap = %v, want %v", op, rightDeep, got, want)
			}
		}
	}
}

func TestSlotsAreStable(t *testing.T) {
	class, err := TranslateProgram(mustParse(t, "a = 1; b = 2; a = b; c = a; b;"), "S")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	main := class.FindMethod("main")
	var stores []int
	for _, inst := range main.Code {
		if s, ok := inst.(jasmin.Istore); ok {
			stores = append(stores, s.Slot)
		}
	}
	if want := []int{1, 2, 1, 3}; !reflect.DeepEqual(stores, want) {
		t.Errorf("store slots = %v, want %v", stores, want)
	}
	if main.Limits.Locals != 4 {
		t.Errorf("locals = %d, want 4", main.Limits.Locals)
	}
}

func TestUndeclaredVariable(t *testing.T) {
	for _, src := range []string{"z;", "x = x;", "a = 1; a + b;"} {
		t.Run(src, func(t *testing.T) {
			class, err := TranslateProgram(mustParse(t, src), "U")
			if class != nil {
				t.Errorf("expected no class, got %v", class)
			}
			if !errors.Is(err, ast.ErrUndeclaredVariable) {
				t.Fatalf("expected ErrUndeclaredVariable, got %v", err)
			}
			var uv *ast.UndeclaredVariableError
			if !errors.As(err, &uv) {
				t.Fatalf("expected *UndeclaredVariableError, got %T", err)
			}
		})
	}
}

func TestCompile(t *testing.T) {
	out, err := Compile(mustParse(t, "x = 2 + 2; x;"), "Foo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		".class public Foo\n",
		".limit stack 3\n",
		".limit locals 2\n",
		"\tistore_1\n",
		"\treturn\n.end method\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if _, err := Compile(mustParse(t, "z;"), "Foo"); err == nil {
		t.Error("expected error for undeclared variable")
	}
}
