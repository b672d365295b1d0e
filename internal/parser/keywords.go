package parser

var KEYWORDS = map[string]TokenType{
	"func":      FUNC,
	"class":     CLASS,
	"var":       VAR,
	"const":     CONST,
	"namespace": NAMESPACE,
	"use":       USE,
	"as":        AS,
	"native":    NATIVE,
	"if":        IF,
	"else":      ELSE,
	"return":    RETURN,
}

func lookupIdentifier(text string) TokenType {
	if t, ok := KEYWORDS[text]; ok {
		return t
	}
	return ID
}
