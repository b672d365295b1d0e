package parser

import (
	"fmt"
	"strconv"
	"unicode"
)

type Token struct {
	Type     TokenType
	Lexeme   string // identifiers, keywords and operators
	Literal  any    // int64 for NUMBER, quoted text for STRING
	Position Position
}

// Text returns the source spelling of the token, whichever payload holds it.
func (t Token) Text() string {
	switch v := t.Literal.(type) {
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	}
	if t.Type == EOF {
		return "end of file"
	}
	return t.Lexeme
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q at %s", t.Type, t.Text(), t.Position)
}

type ScanErrorKind int

const (
	UnterminatedString ScanErrorKind = iota + 1
	UnrecognizedCharacter
	NumberOutOfRange
)

func (k ScanErrorKind) String() string {
	switch k {
	case UnterminatedString:
		return "UnterminatedString"
	case UnrecognizedCharacter:
		return "UnrecognizedCharacter"
	case NumberOutOfRange:
		return "NumberOutOfRange"
	default:
		return "ScanErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// ScanError is fatal to the file being scanned: no partial token stream is
// returned alongside it.
type ScanError struct {
	Kind     ScanErrorKind
	Message  string
	Position Position // line, column, offset
	Length   int      // how many characters it covers
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("%s: %s", e.Position, e.Message)
}

type operatorPattern struct {
	lexeme    string
	tokenType TokenType
}

// Candidates are tried in order and the first full match wins, so every
// multi-character spelling must precede its single-character prefix.
var operators = map[rune][]operatorPattern{
	'+': {{"+=", PLUS_ASSIGN}, {"+", PLUS}},
	'-': {{"-=", MINUS_ASSIGN}, {"->", R_ARROW}, {"-", MINUS}},
	'*': {{"*=", MULTIPLY_ASSIGN}, {"*", MULTIPLY}},
	'/': {{"/=", DIVIDE_ASSIGN}, {"/", DIVIDE}},
	'^': {{"^=", POW_ASSIGN}, {"^", POW}},
	'=': {{"==", EQUAL}, {"=", ASSIGN}},
	'!': {{"!=", NOT_EQUAL}, {"!", NOT}},
	'<': {{"<=", LESS_EQUAL}, {"<", LESS}},
	'>': {{">=", GREATER_EQUAL}, {">", GREATER}},
	'.': {{".", DOT}},
	',': {{",", COMMA}},
	':': {{":", COLON}},
	'[': {{"[", SQUARE_LEFT}},
	']': {{"]", SQUARE_RIGHT}},
	'{': {{"{", BRACE_LEFT}},
	'}': {{"}", BRACE_RIGHT}},
	'(': {{"(", PAREN_LEFT}},
	')': {{")", PAREN_RIGHT}},
}

type Scanner struct {
	source  []rune
	tokens  []Token
	current int
	line    int
	column  int
	start   Position
}

func NewScanner(source string) *Scanner {
	return &Scanner{
		source: []rune(source),
		line:   1,
		column: 1,
	}
}

// Lex converts source text into tokens terminated by exactly one EOF token.
func Lex(source string) ([]Token, error) {
	return NewScanner(source).ScanTokens()
}

func (s *Scanner) ScanTokens() ([]Token, error) {
	s.tokens = nil
	s.current = 0
	s.line = 1
	s.column = 1

	for {
		s.skipWhitespace()
		if s.isAtEnd() {
			break
		}
		s.start = s.pos()
		if err := s.scanToken(s.advance()); err != nil {
			s.tokens = nil
			return nil, err
		}
	}

	s.tokens = append(s.tokens, Token{Type: EOF, Position: s.pos()})
	tokens := s.tokens
	s.tokens = nil
	return tokens, nil
}

func (s *Scanner) scanToken(c rune) error {
	if patterns, ok := operators[c]; ok {
		for _, op := range patterns {
			if s.pattern(op.lexeme) {
				s.addToken(op.tokenType, op.lexeme, nil)
				return nil
			}
		}
	}

	switch {
	case c == '"':
		return s.scanString()
	case c == '#':
		s.scanComment()
		return nil
	case isDigit(c):
		return s.scanNumber()
	case unicode.IsLetter(c):
		s.scanIdentifier()
		return nil
	}

	return &ScanError{
		Kind:     UnrecognizedCharacter,
		Message:  fmt.Sprintf("unrecognized character %q", c),
		Position: s.start,
		Length:   1,
	}
}

// pattern reports whether the rest of lexeme follows the character just
// consumed, and consumes it if so.
func (s *Scanner) pattern(lexeme string) bool {
	want := []rune(lexeme)
	for i := 1; i < len(want); i++ {
		if s.peek(i-1) != want[i] {
			return false
		}
	}
	for i := 1; i < len(want); i++ {
		s.advance()
	}
	return true
}

func (s *Scanner) skipWhitespace() {
	for {
		switch s.peek(0) {
		case ' ', '\t', '\r', '\n', '\f':
			s.advance()
		default:
			return
		}
	}
}

func (s *Scanner) scanIdentifier() {
	for isIdentifierPart(s.peek(0)) {
		s.advance()
	}
	text := string(s.source[s.start.Offset:s.current])
	s.addToken(lookupIdentifier(text), text, nil)
}

func (s *Scanner) scanNumber() error {
	for isDigit(s.peek(0)) {
		s.advance()
	}
	text := string(s.source[s.start.Offset:s.current])
	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return &ScanError{
			Kind:     NumberOutOfRange,
			Message:  fmt.Sprintf("number literal %s does not fit in 64 bits", text),
			Position: s.start,
			Length:   len(text),
		}
	}
	s.addToken(NUMBER, "", value)
	return nil
}

func (s *Scanner) scanString() error {
	for s.peek(0) != '"' {
		if s.isAtEnd() {
			return &ScanError{
				Kind:     UnterminatedString,
				Message:  "unterminated string",
				Position: s.start,
				Length:   s.current - s.start.Offset,
			}
		}
		s.advance()
	}
	s.advance()

	s.addToken(STRING, "", string(s.source[s.start.Offset:s.current]))
	return nil
}

func (s *Scanner) scanComment() {
	for s.peek(0) != '\n' && !s.isAtEnd() {
		s.advance()
	}
}

func (s *Scanner) advance() rune {
	if s.isAtEnd() {
		return 0
	}
	c := s.source[s.current]
	s.current++
	if c == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return c
}

// peek returns the character offset places ahead, or NUL past the end.
func (s *Scanner) peek(offset int) rune {
	if s.current+offset >= len(s.source) {
		return 0
	}
	return s.source[s.current+offset]
}

func (s *Scanner) addToken(tokenType TokenType, lexeme string, literal any) {
	s.tokens = append(s.tokens, Token{
		Type:     tokenType,
		Lexeme:   lexeme,
		Literal:  literal,
		Position: s.start,
	})
}

func (s *Scanner) pos() Position {
	return Position{Line: s.line, Column: s.column, Offset: s.current}
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

// Helper functions.

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func isIdentifierPart(c rune) bool {
	return unicode.IsLetter(c) || isDigit(c) || c == '_'
}
