package lexer

import "testing"

func TestNextToken(t *testing.T) {
	input := `x = 2 + 2; x;`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{TokenIdent, "x"},
		{TokenAssign, "="},
		{TokenInt, "2"},
		{TokenPlus, "+"},
		{TokenInt, "2"},
		{TokenSemicolon, ";"},
		{TokenIdent, "x"},
		{TokenSemicolon, ";"},
		{TokenEOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestOperators(t *testing.T) {
	input := `+ - * / = ( ) ;`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{TokenPlus, "+"},
		{TokenMinus, "-"},
		{TokenStar, "*"},
		{TokenSlash, "/"},
		{TokenAssign, "="},
		{TokenLParen, "("},
		{TokenRParen, ")"},
		{TokenSemicolon, ";"},
		{TokenEOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType || tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - expected %s %q, got %s %q",
				i, tt.expectedType, tt.expectedLiteral, tok.Type, tok.Literal)
		}
	}
}

func TestIdentifiersAndNumbers(t *testing.T) {
	tests := []struct {
		input   string
		typ     TokenType
		literal string
	}{
		{"abc", TokenIdent, "abc"},
		{"_tmp", TokenIdent, "_tmp"},
		{"a_1", TokenIdent, "a_1"},
		{"Xyz9", TokenIdent, "Xyz9"},
		{"0", TokenInt, "0"},
		{"2147483648", TokenInt, "2147483648"},
		{"@", TokenIllegal, "@"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := New(tt.input).NextToken()
			if tok.Type != tt.typ {
				t.Errorf("type = %s, want %s", tok.Type, tt.typ)
			}
			if tok.Literal != tt.literal {
				t.Errorf("literal = %q, want %q", tok.Literal, tt.literal)
			}
		})
	}
}

func TestComments(t *testing.T) {
	input := `// leading comment
a = 1; /* block
comment */ a;
// trailing`

	tokens := New(input).Tokenize()
	want := []TokenType{
		TokenIdent, TokenAssign, TokenInt, TokenSemicolon,
		TokenIdent, TokenSemicolon, TokenEOF,
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(want), tokens)
	}
	for i, typ := range want {
		if tokens[i].Type != typ {
			t.Errorf("tokens[%d] = %s, want %s", i, tokens[i].Type, typ)
		}
	}
}

func TestLineAndColumn(t *testing.T) {
	input := "a = 1;\n  b;"

	tests := []struct {
		literal string
		line    int
		column  int
	}{
		{"a", 1, 1},
		{"=", 1, 3},
		{"1", 1, 5},
		{";", 1, 6},
		{"b", 2, 3},
		{";", 2, 4},
	}

	l := New(input)
	for _, tt := range tests {
		tok := l.NextToken()
		if tok.Literal != tt.literal {
			t.Fatalf("literal = %q, want %q", tok.Literal, tt.literal)
		}
		if tok.Line != tt.line || tok.Column != tt.column {
			t.Errorf("%q at %d:%d, want %d:%d", tt.literal, tok.Line, tok.Column, tt.line, tt.column)
		}
	}
}

func TestTokenTypeString(t *testing.T) {
	if got := TokenSemicolon.String(); got != ";" {
		t.Errorf("TokenSemicolon.String() = %q, want %q", got, ";")
	}
	if got := TokenType(999).String(); got != "UNKNOWN" {
		t.Errorf("TokenType(999).String() = %q, want %q", got, "UNKNOWN")
	}
}

func TestUnterminatedComment(t *testing.T) {
	tokens := New("a; /* never closed").Tokenize()
	want := []TokenType{TokenIdent, TokenSemicolon, TokenIllegal, TokenEOF}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(want), tokens)
	}
	for i, typ := range want {
		if tokens[i].Type != typ {
			t.Errorf("tokens[%d] = %s, want %s", i, tokens[i].Type, typ)
		}
	}
	if tokens[2].Literal != "unterminated comment" {
		t.Errorf("literal = %q", tokens[2].Literal)
	}
}

func TestEmptyInput(t *testing.T) {
	tok := New("").NextToken()
	if tok.Type != TokenEOF || tok.Line != 1 || tok.Column != 1 {
		t.Errorf("got %s at %d:%d, want EOF at 1:1", tok.Type, tok.Line, tok.Column)
	}
}
