package jvmgen

import (
	"fmt"
	"io"
	"strings"
)

// Printer outputs annotated trees, one node per line with its depth
type Printer struct {
	w      io.Writer
	indent int
}

// NewPrinter creates a new annotated tree printer
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// PrintProgram prints every annotated statement followed by the stack limit
func (p *Printer) PrintProgram(stmts []Stmt) {
	for _, s := range stmts {
		p.PrintStmt(s)
	}
	fmt.Fprintf(p.w, "limit %d\n", StackLimit(stmts))
}

// PrintStmt prints an annotated statement and its expression tree
func (p *Printer) PrintStmt(s Stmt) {
	switch stmt := s.(type) {
	case Store:
		p.line(s.Depth(), "store %s", stmt.Name)
		p.nested(stmt.Expr)
	case Print:
		p.line(s.Depth(), "print")
		p.nested(stmt.Expr)
	}
}

// PrintNode prints an annotated expression tree
func (p *Printer) PrintNode(n Node) {
	switch e := n.(type) {
	case Const:
		p.line(n.Depth(), "%d", e.Value)
	case Var:
		p.line(n.Depth(), "%s", e.Name)
	case Op:
		order := "left first"
		if e.RightFirst() {
			order = "right first"
		}
		p.line(n.Depth(), "%s (%s)", e.Op, order)
		p.nested(e.Left)
		p.nested(e.Right)
	}
}

func (p *Printer) nested(n Node) {
	p.indent++
	p.PrintNode(n)
	p.indent--
}

func (p *Printer) line(depth int, format string, args ...any) {
	fmt.Fprintf(p.w, "%s[%d] %s\n", strings.Repeat("  ", p.indent), depth, fmt.Sprintf(format, args...))
}
