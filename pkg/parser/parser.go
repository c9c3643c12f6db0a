// Package parser implements a recursive descent parser for Instant
package parser

import (
	"fmt"
	"strconv"

	"github.com/raymyers/instc/pkg/ast"
	"github.com/raymyers/instc/pkg/lexer"
)

// Parser parses Instant source code into an AST
type Parser struct {
	l         *lexer.Lexer
	curToken  lexer.Token
	peekToken lexer.Token
	errors    []string
}

// New creates a new Parser for the given lexer
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	// Read two tokens to initialize curToken and peekToken
	p.nextToken()
	p.nextToken()
	return p
}

// ErrorList holds the messages of a failed parse
type ErrorList []string

func (e ErrorList) Error() string {
	switch len(e) {
	case 0:
		return "no errors"
	case 1:
		return e[0]
	}
	return fmt.Sprintf("%s (and %d more errors)", e[0], len(e)-1)
}

// Parse parses a complete program from source text.
// The returned error is an ErrorList when the input is malformed.
func Parse(input string) (*ast.Program, error) {
	p := New(lexer.New(input))
	prog := p.ParseProgram()
	if len(p.Errors()) > 0 {
		return nil, ErrorList(p.Errors())
	}
	return prog, nil
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

// Errors returns the list of parsing errors
func (p *Parser) Errors() []string {
	return p.errors
}

func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, fmt.Sprintf("line %d, col %d: %s",
		p.curToken.Line, p.curToken.Column, msg))
}

func (p *Parser) curTokenIs(t lexer.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t lexer.TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) expect(t lexer.TokenType) bool {
	if p.curTokenIs(t) {
		p.nextToken()
		return true
	}
	p.addError(fmt.Sprintf("expected %s, got %s", t, p.describeCur()))
	return false
}

func (p *Parser) describeCur() string {
	switch p.curToken.Type {
	case lexer.TokenIdent, lexer.TokenInt, lexer.TokenIllegal:
		return fmt.Sprintf("%s %q", p.curToken.Type, p.curToken.Literal)
	}
	return p.curToken.Type.String()
}

// synchronize skips to the next statement separator after an error
func (p *Parser) synchronize() {
	for !p.curTokenIs(lexer.TokenSemicolon) && !p.curTokenIs(lexer.TokenEOF) {
		p.nextToken()
	}
}

// ParseProgram parses statements separated by ';'. A trailing ';' is allowed.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{Stmts: []ast.Stmt{}}

	for !p.curTokenIs(lexer.TokenEOF) {
		stmt := p.ParseStatement()
		if stmt == nil {
			p.synchronize()
		} else {
			prog.Stmts = append(prog.Stmts, stmt)
		}

		if p.curTokenIs(lexer.TokenEOF) {
			break
		}
		if !p.curTokenIs(lexer.TokenSemicolon) {
			p.addError(fmt.Sprintf("expected ;, got %s", p.describeCur()))
			p.synchronize()
		}
		p.nextToken() // consume ';'
	}

	return prog
}

// ParseStatement parses an assignment or an expression statement
func (p *Parser) ParseStatement() ast.Stmt {
	if p.curTokenIs(lexer.TokenIdent) && p.peekTokenIs(lexer.TokenAssign) {
		name := p.curToken.Literal
		p.nextToken() // consume identifier
		p.nextToken() // consume '='
		expr := p.ParseExpression()
		if expr == nil {
			return nil
		}
		return ast.Assign{Name: name, Expr: expr}
	}

	expr := p.ParseExpression()
	if expr == nil {
		return nil
	}
	return ast.Print{Expr: expr}
}

// ParseExpression parses an expression with Instant precedence:
// '+' binds loosest and associates to the right, '-' associates to the
// left, '*' and '/' bind tightest and associate to the left.
func (p *Parser) ParseExpression() ast.Expr {
	return p.parseAdditive()
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseSubtractive()
	if left == nil {
		return nil
	}
	if !p.curTokenIs(lexer.TokenPlus) {
		return left
	}
	p.nextToken()
	right := p.parseAdditive()
	if right == nil {
		return nil
	}
	return ast.Bin(left, ast.OpAdd, right)
}

func (p *Parser) parseSubtractive() ast.Expr {
	left := p.parseMultiplicative()
	for left != nil && p.curTokenIs(lexer.TokenMinus) {
		p.nextToken()
		right := p.parseMultiplicative()
		if right == nil {
			return nil
		}
		left = ast.Bin(left, ast.OpSub, right)
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parsePrimary()
	for left != nil && (p.curTokenIs(lexer.TokenStar) || p.curTokenIs(lexer.TokenSlash)) {
		op := ast.OpMul
		if p.curTokenIs(lexer.TokenSlash) {
			op = ast.OpDiv
		}
		p.nextToken()
		right := p.parsePrimary()
		if right == nil {
			return nil
		}
		left = ast.Bin(left, op, right)
	}
	return left
}

func (p *Parser) parsePrimary() ast.Expr {
	switch p.curToken.Type {
	case lexer.TokenInt:
		lit := p.curToken.Literal
		value, err := strconv.ParseInt(lit, 10, 32)
		if err != nil {
			p.addError(fmt.Sprintf("integer literal %s out of range", lit))
			return nil
		}
		p.nextToken()
		return ast.Literal{Value: int32(value)}
	case lexer.TokenIdent:
		name := p.curToken.Literal
		p.nextToken()
		return ast.Variable{Name: name}
	case lexer.TokenLParen:
		p.nextToken() // consume '('
		expr := p.ParseExpression()
		if expr == nil {
			return nil
		}
		if !p.expect(lexer.TokenRParen) {
			return nil
		}
		return expr
	}

	p.addError(fmt.Sprintf("expected expression, got %s", p.describeCur()))
	return nil
}
