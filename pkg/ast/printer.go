// Package ast provides AST printing functionality
package ast

import (
	"fmt"
	"io"
)

// Printer outputs the AST as Instant source text
type Printer struct {
	w io.Writer
}

// NewPrinter creates a new AST printer
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// PrintProgram prints a complete program, one statement per line
func (p *Printer) PrintProgram(prog *Program) {
	for _, stmt := range prog.Stmts {
		p.PrintStmt(stmt)
		fmt.Fprintln(p.w, ";")
	}
}

// PrintStmt prints a single statement without the trailing separator
func (p *Printer) PrintStmt(stmt Stmt) {
	switch s := stmt.(type) {
	case Assign:
		fmt.Fprintf(p.w, "%s = ", s.Name)
		p.PrintExpr(s.Expr)
	case Print:
		p.PrintExpr(s.Expr)
	default:
		fmt.Fprintf(p.w, "/* unknown statement %T */", stmt)
	}
}

// PrintExpr prints an expression. Binary operations are always
// parenthesized so the output does not depend on operator precedence.
func (p *Printer) PrintExpr(expr Expr) {
	switch e := expr.(type) {
	case Literal:
		fmt.Fprintf(p.w, "%d", e.Value)
	case Variable:
		fmt.Fprint(p.w, e.Name)
	case BinaryOp:
		fmt.Fprint(p.w, "(")
		p.PrintExpr(e.Left)
		fmt.Fprintf(p.w, " %s ", e.Op)
		p.PrintExpr(e.Right)
		fmt.Fprint(p.w, ")")
	default:
		fmt.Fprintf(p.w, "/* unknown expression %T */", expr)
	}
}
