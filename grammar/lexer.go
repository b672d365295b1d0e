package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var SiliconLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `#[^\n]*`, nil},

		// Strings may span lines and have no escapes
		{"String", `"[^"]*"`, nil},

		// Keywords and identifiers
		{"Ident", `\p{L}[\p{L}0-9_]*`, nil},

		{"Int", `[0-9]+`, nil},

		// Longest spellings first
		{"Operator", `->|==|!=|<=|>=|\+=|-=|\*=|/=|\^=|[-+*/^<>=!]`, nil},

		{"Punctuation", `[.,:\[\]{}()]`, nil},

		{"Whitespace", `\s+`, nil},
	},
})
