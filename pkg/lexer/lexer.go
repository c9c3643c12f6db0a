package lexer

// Lexer tokenizes Instant source code
type Lexer struct {
	input  string
	offset int  // offset of ch in input
	ch     byte // character under the cursor, 0 at end of input
	line   int
	column int
}

// punctuation maps single-character tokens to their types
var punctuation = map[byte]TokenType{
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenStar,
	'/': TokenSlash,
	'=': TokenAssign,
	'(': TokenLParen,
	')': TokenRParen,
	';': TokenSemicolon,
}

// New creates a new Lexer for the given input
func New(input string) *Lexer {
	l := &Lexer{input: input, offset: -1, line: 1}
	l.advance()
	return l
}

// advance moves the cursor one character forward, tracking line and column
func (l *Lexer) advance() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.offset < len(l.input) {
		l.offset++
	}
	l.column++
	l.ch = l.at(l.offset)
}

func (l *Lexer) at(i int) byte {
	if i < len(l.input) {
		return l.input[i]
	}
	return 0
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	if msg := l.skipTrivia(); msg != "" {
		return Token{Type: TokenIllegal, Literal: msg, Line: l.line, Column: l.column}
	}

	tok := Token{Line: l.line, Column: l.column}
	start := l.offset
	switch {
	case l.ch == 0:
		tok.Type = TokenEOF
		return tok
	case isLetter(l.ch):
		tok.Type = TokenIdent
		for isLetter(l.ch) || isDigit(l.ch) {
			l.advance()
		}
	case isDigit(l.ch):
		tok.Type = TokenInt
		for isDigit(l.ch) {
			l.advance()
		}
	default:
		tok.Type = TokenIllegal
		if t, ok := punctuation[l.ch]; ok {
			tok.Type = t
		}
		l.advance()
	}
	tok.Literal = l.input[start:l.offset]
	return tok
}

// Tokenize returns every token up to and including EOF
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens
		}
	}
}

// skipTrivia skips whitespace, line comments and block comments. It returns
// a message if a block comment is not closed before the end of input.
func (l *Lexer) skipTrivia() string {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r':
			l.advance()
		case l.ch == '/' && l.at(l.offset+1) == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.advance()
			}
		case l.ch == '/' && l.at(l.offset+1) == '*':
			l.advance()
			l.advance()
			for !(l.ch == '*' && l.at(l.offset+1) == '/') {
				if l.ch == 0 {
					return "unterminated comment"
				}
				l.advance()
			}
			l.advance()
			l.advance()
		default:
			return ""
		}
	}
}

// Identifiers are restricted to ASCII so they can be used verbatim in
// generated symbol names.
func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
