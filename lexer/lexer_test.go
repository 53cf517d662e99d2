package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize_Operators(t *testing.T) {
	toks := Tokenize(`+ - * / % ** = == != < <= > >= & | ^ ~ += -= *= /= ++ -- =>`)
	types := typesOf(toks)
	assert.Equal(t, []TokenType{
		PLUS, MINUS, STAR, SLASH, PERCENT, POWER, ASSIGN, EQ, NEQ,
		LT, LE, GT, GE, AMP, PIPE, CARET, TILDE,
		PLUS_ASSIGN, MINUS_ASSIGN, STAR_ASSIGN, SLASH_ASSIGN,
		INCR, DECR, FARROW, EOF,
	}, types)
}

func TestTokenize_Delimiters(t *testing.T) {
	toks := Tokenize(`( ) { } [ ] , : .`)
	types := typesOf(toks)
	assert.Equal(t, []TokenType{
		LPAREN, RPAREN, LBRACE, RBRACE, LBRACKET, RBRACKET, COMMA, COLON, DOT, EOF,
	}, types)
}

func TestTokenize_NumberAndString(t *testing.T) {
	toks := Tokenize(`42 3.5 "hi\nthere" 'single'`)
	assert.Equal(t, NUMBER, toks[0].Type)
	assert.Equal(t, 42.0, toks[0].Number)
	assert.Equal(t, NUMBER, toks[1].Type)
	assert.Equal(t, 3.5, toks[1].Number)
	assert.Equal(t, STRING, toks[2].Type)
	assert.Equal(t, "hi\nthere", toks[2].Lit)
	assert.Equal(t, STRING, toks[3].Type)
	assert.Equal(t, "single", toks[3].Lit)
}

func TestTokenize_Keywords(t *testing.T) {
	toks := Tokenize(`let const fn class new self if elif else for in while return break continue match case end true false nil and or not include try catch finally throw`)
	types := typesOf(toks)
	assert.Equal(t, []TokenType{
		LET, CONST, FN, CLASS, NEW, SELF, IF, ELIF, ELSE, FOR, IN, WHILE,
		RETURN, BREAK, CONTINUE, MATCH, CASE, END, TRUE, FALSE, NIL,
		AND, OR, NOT, INCLUDE, TRY, CATCH, FINALLY, THROW, EOF,
	}, types)
}

func TestTokenize_IdentifierNotKeyword(t *testing.T) {
	toks := Tokenize(`letter ifdef _under9`)
	for _, tok := range toks[:3] {
		assert.Equal(t, IDENT, tok.Type)
	}
}

func TestTokenize_CommentSkipped(t *testing.T) {
	toks := Tokenize("1 # a trailing comment\n2")
	types := typesOf(toks)
	assert.Equal(t, []TokenType{NUMBER, NEWLINE, NUMBER, EOF}, types)
}

func TestTokenize_UnknownCharacterSkipped(t *testing.T) {
	// '@' is not part of the grammar; lexing should report it as an
	// ILLEGAL token and keep going, never aborting (lexer totality).
	toks := Tokenize(`1 @ 2`)
	types := typesOf(toks)
	assert.Equal(t, []TokenType{NUMBER, ILLEGAL, NUMBER, EOF}, types)
}

func TestTokenize_AlwaysEndsInEOF(t *testing.T) {
	for _, src := range []string{``, `   `, `let x = 1`, "\n\n\n"} {
		toks := Tokenize(src)
		assert.NotEmpty(t, toks)
		assert.Equal(t, EOF, toks[len(toks)-1].Type)
	}
}

func TestTokenize_LineColumnTracking(t *testing.T) {
	toks := Tokenize("1\n  2")
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 1, toks[0].Column)
	numTwo := toks[2]
	assert.Equal(t, NUMBER, numTwo.Type)
	assert.Equal(t, 2, numTwo.Line)
	assert.Equal(t, 3, numTwo.Column)
}

func typesOf(toks []Token) []TokenType {
	out := make([]TokenType, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}
