// Stack depth analysis.
// Builds a tree parallel to the AST in which every expression node carries
// the number of operand stack slots needed to evaluate it when the deeper
// operand is always evaluated first.

package jvmgen

import "github.com/raymyers/instc/pkg/ast"

// Node is an expression annotated with its stack depth
type Node interface {
	Depth() int
	implNode()
}

// Const is an annotated integer literal
type Const struct {
	Value int32
}

// Var is an annotated variable reference
type Var struct {
	Name string
}

// Op is an annotated binary operation
type Op struct {
	Left  Node
	Op    ast.Operator
	Right Node
	depth int
}

func (Const) Depth() int { return 1 }
func (Var) Depth() int   { return 1 }
func (o Op) Depth() int  { return o.depth }

func (Const) implNode() {}
func (Var) implNode()   {}
func (Op) implNode()    {}

// RightFirst reports whether the right operand is evaluated before the left
// one. Ties keep source order.
func (o Op) RightFirst() bool {
	return o.Right.Depth() > o.Left.Depth()
}

// Stmt is a statement whose expression has been annotated
type Stmt interface {
	Depth() int
	implStmt()
}

// Store assigns an annotated expression to a variable
type Store struct {
	Name string
	Expr Node
}

// Print prints an annotated expression
type Print struct {
	Expr Node
}

// The stored value occupies one more slot while istore is prepared.
func (s Store) Depth() int { return s.Expr.Depth() + 1 }

// The PrintStream reference needs a slot below the value, and one more while
// it is exchanged with a value that was computed first.
func (p Print) Depth() int { return p.Expr.Depth() + 2 }

func (Store) implStmt() {}
func (Print) implStmt() {}

// OpDepth returns the stack depth of an operation whose operands need l and
// r slots. The deeper operand is evaluated first, and its result then
// occupies one slot below the other operand.
func OpDepth(l, r int) int {
	if l == r {
		return l + 1
	}
	return max(l, r)
}

// Annotate builds the annotated tree for an expression. The source tree is
// not modified.
func Annotate(e ast.Expr) Node {
	switch expr := e.(type) {
	case ast.Literal:
		return Const{Value: expr.Value}
	case ast.Variable:
		return Var{Name: expr.Name}
	case ast.BinaryOp:
		left := Annotate(expr.Left)
		right := Annotate(expr.Right)
		return Op{
			Left:  left,
			Op:    expr.Op,
			Right: right,
			depth: OpDepth(left.Depth(), right.Depth()),
		}
	default:
		panic("jvmgen: unknown expression type")
	}
}

// AnnotateStmt annotates the expression of a statement
func AnnotateStmt(s ast.Stmt) Stmt {
	switch stmt := s.(type) {
	case ast.Assign:
		return Store{Name: stmt.Name, Expr: Annotate(stmt.Expr)}
	case ast.Print:
		return Print{Expr: Annotate(stmt.Expr)}
	default:
		panic("jvmgen: unknown statement type")
	}
}

// AnnotateProgram annotates every statement of a program, in order
func AnnotateProgram(prog *ast.Program) []Stmt {
	stmts := make([]Stmt, len(prog.Stmts))
	for i, s := range prog.Stmts {
		stmts[i] = AnnotateStmt(s)
	}
	return stmts
}

// StackLimit returns the operand stack size a method running stmts must
// declare: the largest statement depth, or 0 for no statements.
func StackLimit(stmts []Stmt) int {
	limit := 0
	for _, s := range stmts {
		limit = max(limit, s.Depth())
	}
	return limit
}
