package parser

import "fmt"

type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF

	// Identifiers + literals
	ID
	NUMBER
	STRING

	// Keywords
	FUNC
	CLASS
	VAR
	CONST
	NAMESPACE
	USE
	AS
	NATIVE
	IF
	ELSE
	RETURN

	// Operators
	PLUS
	MINUS
	MULTIPLY
	DIVIDE
	POW
	NOT

	// Assignment operators
	ASSIGN
	PLUS_ASSIGN
	MINUS_ASSIGN
	MULTIPLY_ASSIGN
	DIVIDE_ASSIGN
	POW_ASSIGN

	// Comparison operators
	EQUAL
	NOT_EQUAL
	LESS
	LESS_EQUAL
	GREATER
	GREATER_EQUAL

	// Separators
	DOT
	COMMA
	COLON
	R_ARROW

	// Brackets
	SQUARE_LEFT
	SQUARE_RIGHT
	BRACE_LEFT
	BRACE_RIGHT
	PAREN_LEFT
	PAREN_RIGHT
)

var tokenNames = [...]string{
	ILLEGAL:         "ILLEGAL",
	EOF:             "EOF",
	ID:              "ID",
	NUMBER:          "NUMBER",
	STRING:          "STRING",
	FUNC:            "FUNC",
	CLASS:           "CLASS",
	VAR:             "VAR",
	CONST:           "CONST",
	NAMESPACE:       "NAMESPACE",
	USE:             "USE",
	AS:              "AS",
	NATIVE:          "NATIVE",
	IF:              "IF",
	ELSE:            "ELSE",
	RETURN:          "RETURN",
	PLUS:            "PLUS",
	MINUS:           "MINUS",
	MULTIPLY:        "MULTIPLY",
	DIVIDE:          "DIVIDE",
	POW:             "POW",
	NOT:             "NOT",
	ASSIGN:          "ASSIGN",
	PLUS_ASSIGN:     "PLUS_ASSIGN",
	MINUS_ASSIGN:    "MINUS_ASSIGN",
	MULTIPLY_ASSIGN: "MULTIPLY_ASSIGN",
	DIVIDE_ASSIGN:   "DIVIDE_ASSIGN",
	POW_ASSIGN:      "POW_ASSIGN",
	EQUAL:           "EQUAL",
	NOT_EQUAL:       "NOT_EQUAL",
	LESS:            "LESS",
	LESS_EQUAL:      "LESS_EQUAL",
	GREATER:         "GREATER",
	GREATER_EQUAL:   "GREATER_EQUAL",
	DOT:             "DOT",
	COMMA:           "COMMA",
	COLON:           "COLON",
	R_ARROW:         "R_ARROW",
	SQUARE_LEFT:     "SQUARE_LEFT",
	SQUARE_RIGHT:    "SQUARE_RIGHT",
	BRACE_LEFT:      "BRACE_LEFT",
	BRACE_RIGHT:     "BRACE_RIGHT",
	PAREN_LEFT:      "PAREN_LEFT",
	PAREN_RIGHT:     "PAREN_RIGHT",
}

func (tt TokenType) String() string {
	if tt >= 0 && int(tt) < len(tokenNames) && tokenNames[tt] != "" {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

type Position struct {
	Line   int // 1-based
	Column int // 1-based, counted in runes
	Offset int // 0-based rune index in input
}

// Before reports whether p comes strictly before other in the source.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
