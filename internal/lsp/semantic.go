package lsp

import (
	"strings"
	"unicode/utf8"

	"silicon/internal/parser"
)

// SemanticTokenTypes is the legend advertised to clients; token entries refer
// to it by index.
var SemanticTokenTypes = []string{
	"namespace",
	"type",
	"function",
	"variable",
	"parameter",
	"property",
	"keyword",
	"number",
	"string",
	"operator",
}

// SemanticTokenModifiers is a bit set, bit i meaning SemanticTokenModifiers[i].
var SemanticTokenModifiers = []string{
	"declaration",
	"readonly",
}

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into SemanticTokenTypes
// TokenModifiers is a bitmask based on SemanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

const (
	modDeclaration = 1 << iota
	modReadonly
)

// collectSemanticTokens classifies the token stream of one file. Identifiers
// are classified from their neighbours, which keeps highlighting available
// for files that do not parse.
func collectSemanticTokens(tokens []parser.Token) []SemanticToken {
	var (
		result []SemanticToken
		path   string // "namespace", "use" or "type" while inside a dotted name
	)

	for i, tok := range tokens {
		var prev, next parser.Token
		if i > 0 {
			prev = tokens[i-1]
		}
		if i+1 < len(tokens) {
			next = tokens[i+1]
		}

		switch tok.Type {
		case parser.EOF, parser.DOT:
			continue
		case parser.NAMESPACE, parser.USE:
			result = append(result, makeToken(tok, "keyword", 0))
			path = tok.Lexeme
			continue
		case parser.ID:
			tokenType, modifiers := classifyIdentifier(prev, tok, next, path)
			result = append(result, makeToken(tok, tokenType, modifiers))
			if next.Type == parser.DOT && path == "" && tokenType == "type" {
				path = "type"
			}
			if next.Type == parser.DOT && path != "" {
				continue
			}
		case parser.NUMBER:
			result = append(result, makeToken(tok, "number", 0))
		case parser.STRING:
			// multi-line tokens need a capability clients rarely offer
			if !strings.Contains(tok.Text(), "\n") {
				result = append(result, makeToken(tok, "string", 0))
			}
		default:
			if _, keyword := parser.KEYWORDS[tok.Lexeme]; keyword {
				result = append(result, makeToken(tok, "keyword", 0))
			} else if isOperator(tok.Type) {
				result = append(result, makeToken(tok, "operator", 0))
			}
		}
		path = ""
	}

	return result
}

func classifyIdentifier(prev, tok, next parser.Token, path string) (string, int) {
	switch path {
	case "namespace":
		return "namespace", modDeclaration
	case "use":
		if next.Type == parser.DOT {
			return "namespace", 0
		}
		return "type", 0
	case "type":
		return "type", 0
	}

	if tok.Lexeme == "true" || tok.Lexeme == "false" {
		return "keyword", 0
	}

	switch prev.Type {
	case parser.CLASS:
		return "type", modDeclaration
	case parser.AS:
		return "type", modDeclaration
	case parser.FUNC:
		return "function", modDeclaration
	case parser.VAR:
		return "variable", modDeclaration
	case parser.CONST:
		return "variable", modDeclaration | modReadonly
	case parser.COLON, parser.R_ARROW:
		return "type", 0
	case parser.DOT:
		if next.Type == parser.PAREN_LEFT {
			return "function", 0
		}
		return "property", 0
	case parser.PAREN_LEFT, parser.COMMA:
		if next.Type == parser.COLON {
			return "parameter", modDeclaration
		}
	}

	if next.Type == parser.PAREN_LEFT {
		return "function", 0
	}
	return "variable", 0
}

func isOperator(tt parser.TokenType) bool {
	switch tt {
	case parser.PLUS, parser.MINUS, parser.MULTIPLY, parser.DIVIDE, parser.POW, parser.NOT,
		parser.ASSIGN, parser.PLUS_ASSIGN, parser.MINUS_ASSIGN, parser.MULTIPLY_ASSIGN,
		parser.DIVIDE_ASSIGN, parser.POW_ASSIGN,
		parser.EQUAL, parser.NOT_EQUAL, parser.LESS, parser.LESS_EQUAL, parser.GREATER,
		parser.GREATER_EQUAL, parser.R_ARROW:
		return true
	}
	return false
}

// makeToken creates a semantic token covering tok.
func makeToken(tok parser.Token, tokenType string, modifiers int) SemanticToken {
	return SemanticToken{
		Line:           uint32(tok.Position.Line - 1),   // LSP uses 0-based line numbers
		StartChar:      uint32(tok.Position.Column - 1), // LSP uses 0-based column numbers
		Length:         uint32(utf8.RuneCountInString(tok.Text())),
		TokenType:      indexOf(tokenType, SemanticTokenTypes),
		TokenModifiers: modifiers,
	}
}

// encodeSemanticTokens packs tokens into the LSP wire format, where each entry
// is relative to the one before it.
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	data := make([]uint32, 0, len(tokens)*5)
	var prevLine, prevStart uint32

	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		deltaStart := token.StartChar
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		}

		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), uint32(token.TokenModifiers))
		prevLine = token.Line
		prevStart = token.StartChar
	}
	return data
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
