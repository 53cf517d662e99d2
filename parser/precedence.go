/*
File    : verlang/parser/precedence.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package parser

import "github.com/akashmaji946/verlang/lexer"

// Precedence levels, lowest to highest. Higher binds tighter. This
// mirrors the table in the language reference: assignment is lowest
// and right-associative, postfix operators (call/index/attribute) are
// highest.
const (
	LOWEST = iota
	ASSIGN // = += -= *= /=
	LOGIC_OR
	LOGIC_AND
	BIT_OR
	BIT_XOR
	BIT_AND
	EQUALITY   // == !=
	COMPARISON // < <= > >=
	ADDITIVE   // + -
	MULTIPLICATIVE // * / %
	POWER          // ** (right-assoc)
	PREFIX         // unary - not ~ ++ --
	POSTFIX        // call index attribute ++ --
)

func precedenceOf(t lexer.TokenType) int {
	switch t {
	case lexer.ASSIGN, lexer.PLUS_ASSIGN, lexer.MINUS_ASSIGN, lexer.STAR_ASSIGN, lexer.SLASH_ASSIGN:
		return ASSIGN
	case lexer.OR:
		return LOGIC_OR
	case lexer.AND:
		return LOGIC_AND
	case lexer.PIPE:
		return BIT_OR
	case lexer.CARET:
		return BIT_XOR
	case lexer.AMP:
		return BIT_AND
	case lexer.EQ, lexer.NEQ:
		return EQUALITY
	case lexer.LT, lexer.LE, lexer.GT, lexer.GE:
		return COMPARISON
	case lexer.PLUS, lexer.MINUS:
		return ADDITIVE
	case lexer.STAR, lexer.SLASH, lexer.PERCENT:
		return MULTIPLICATIVE
	case lexer.POWER:
		return POWER
	case lexer.LPAREN, lexer.LBRACKET, lexer.DOT, lexer.INCR, lexer.DECR:
		return POSTFIX
	default:
		return LOWEST
	}
}

// rightAssoc reports whether the infix operator at this precedence
// binds right-to-left (assignment and power).
func rightAssoc(t lexer.TokenType) bool {
	switch t {
	case lexer.ASSIGN, lexer.PLUS_ASSIGN, lexer.MINUS_ASSIGN, lexer.STAR_ASSIGN, lexer.SLASH_ASSIGN, lexer.POWER:
		return true
	default:
		return false
	}
}

// nextPrecedence returns the minimum precedence parseInfix should hand to
// parseExpression when parsing t's right operand: one level below t's own
// for a right-associative operator, so a chain like a = b = c or 2 ** 2 **
// 3 recurses back into the same operator and binds right; t's own level
// otherwise, so a chain of left-associative operators stops recursing and
// binds left instead.
func nextPrecedence(t lexer.TokenType) int {
	if rightAssoc(t) {
		return precedenceOf(t) - 1
	}
	return precedenceOf(t)
}
