package jvmgen

import (
	"strings"

	"github.com/raymyers/instc/pkg/ast"
	"github.com/raymyers/instc/pkg/jasmin"
)

// TranslateProgram lowers a program to a class whose static main method runs
// the statements in order. No class is produced if any statement fails.
func TranslateProgram(prog *ast.Program, className string) (*jasmin.Class, error) {
	stmts := AnnotateProgram(prog)
	s := NewState()
	for _, st := range stmts {
		if err := TranslateStmt(s, st); err != nil {
			return nil, err
		}
	}
	limits := jasmin.Limits{
		Stack:  StackLimit(stmts),
		Locals: s.Slots.LocalsLimit(),
	}
	return jasmin.NewMainClass(className, s.Code(), limits), nil
}

// Compile lowers a program and renders it as Jasmin source
func Compile(prog *ast.Program, className string) (string, error) {
	class, err := TranslateProgram(prog, className)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	jasmin.NewPrinter(&sb).PrintClass(class)
	return sb.String(), nil
}
