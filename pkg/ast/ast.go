// Package ast defines the abstract syntax tree for Instant programs.
package ast

// Node is the base interface for all AST nodes
type Node interface {
	implAstNode()
}

// Expr is the interface for all expression nodes
type Expr interface {
	Node
	implAstExpr()
}

// Stmt is the interface for all statement nodes
type Stmt interface {
	Node
	implAstStmt()
}

// Operator represents a binary arithmetic operator
type Operator int

const (
	OpAdd Operator = iota
	OpSub
	OpMul
	OpDiv
)

func (op Operator) String() string {
	names := []string{"+", "-", "*", "/"}
	if int(op) < len(names) {
		return names[op]
	}
	return "?"
}

// Commutative reports whether the operands of op may be exchanged
// without changing the result.
func (op Operator) Commutative() bool {
	return op == OpAdd || op == OpMul
}

// Literal is a 32-bit integer constant
type Literal struct {
	Value int32
}

// Variable is a reference to a named variable
type Variable struct {
	Name string
}

// BinaryOp applies Op to Left and Right
type BinaryOp struct {
	Left  Expr
	Op    Operator
	Right Expr
}

// Assign stores the value of Expr into the variable Name
type Assign struct {
	Name string
	Expr Expr
}

// Print evaluates Expr and prints the result
type Print struct {
	Expr Expr
}

// Program is a sequence of statements forming one compilation unit
type Program struct {
	Stmts []Stmt
}

func (Literal) implAstNode()  {}
func (Variable) implAstNode() {}
func (BinaryOp) implAstNode() {}
func (Assign) implAstNode()   {}
func (Print) implAstNode()    {}

func (Literal) implAstExpr()  {}
func (Variable) implAstExpr() {}
func (BinaryOp) implAstExpr() {}

func (Assign) implAstStmt() {}
func (Print) implAstStmt()  {}

// Bin is shorthand for constructing a BinaryOp
func Bin(left Expr, op Operator, right Expr) BinaryOp {
	return BinaryOp{Left: left, Op: op, Right: right}
}
