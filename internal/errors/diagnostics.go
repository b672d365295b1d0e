package errors

import (
	"fmt"
	"sort"
	"strings"

	"silicon/internal/ast"
)

// DiagnosticBuilder provides a fluent interface for assembling a CompilerError
type DiagnosticBuilder struct {
	err CompilerError
}

func NewDiagnostic(code, message string, pos ast.Position) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

func NewWarning(code, message string, pos ast.Position) *DiagnosticBuilder {
	b := NewDiagnostic(code, message, pos)
	b.err.Level = Warning
	return b
}

func (b *DiagnosticBuilder) WithLength(length int) *DiagnosticBuilder {
	b.err.Length = length
	return b
}

func (b *DiagnosticBuilder) WithSuggestion(message string) *DiagnosticBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

func (b *DiagnosticBuilder) WithReplacement(message, replacement string) *DiagnosticBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message, Replacement: replacement})
	return b
}

func (b *DiagnosticBuilder) WithRelated(pos ast.Position) *DiagnosticBuilder {
	b.err.Related = &pos
	return b
}

func (b *DiagnosticBuilder) WithNote(note string) *DiagnosticBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

func (b *DiagnosticBuilder) WithHelp(help string) *DiagnosticBuilder {
	b.err.HelpText = help
	return b
}

func (b *DiagnosticBuilder) Build() CompilerError {
	return b.err
}

// Parser diagnostics

func MissingNamespace(pos ast.Position) CompilerError {
	return NewDiagnostic(ErrorMissingNamespace, "missing namespace declaration", pos).
		WithReplacement("start the file with a namespace", "namespace my.package").
		WithNote("every declaration is indexed under its file's namespace").
		Build()
}

// UnexpectedToken reports message at pos. When found looks like a misspelt
// keyword, the closest keywords are suggested.
func UnexpectedToken(message string, pos ast.Position, found string, keywords []string) CompilerError {
	builder := NewDiagnostic(ErrorUnexpectedToken, message, pos).
		WithLength(max(1, len([]rune(found))))

	if similar := findSimilarNames(found, keywords); len(similar) > 0 {
		builder = builder.WithSuggestion(didYouMean(similar))
	}
	return builder.Build()
}

func DuplicateDeclaration(message string, pos ast.Position, previous *ast.Position) CompilerError {
	builder := NewDiagnostic(ErrorDuplicateDeclaration, message, pos).
		WithHelp("rename one of the declarations; the first one is kept")
	if previous != nil {
		builder = builder.WithRelated(*previous)
	}
	return builder.Build()
}

func MalformedDeclaration(message string, pos ast.Position) CompilerError {
	return NewDiagnostic(ErrorMalformedDeclaration, message, pos).Build()
}

// Lexer diagnostics

func UnterminatedString(pos ast.Position, length int) CompilerError {
	return NewDiagnostic(ErrorUnterminatedString, "unterminated string literal", pos).
		WithLength(length).
		WithSuggestion(`add a closing '"'`).
		WithNote("string literals may span lines but must be closed before the end of the file").
		Build()
}

func UnrecognizedCharacter(message string, pos ast.Position) CompilerError {
	return NewDiagnostic(ErrorUnrecognizedCharacter, message, pos).
		WithHelp("comments start with '#'").
		Build()
}

func NumberOutOfRange(message string, pos ast.Position, length int) CompilerError {
	return NewDiagnostic(ErrorNumberOutOfRange, message, pos).
		WithLength(length).
		WithNote("integer literals are signed 64-bit").
		Build()
}

// Symbol table diagnostics

// SymbolNotFound reports a lookup miss, suggesting declared names that are
// close to the one requested.
func SymbolNotFound(name string, pos ast.Position, declared []string) CompilerError {
	builder := NewDiagnostic(ErrorSymbolNotFound, fmt.Sprintf("no declaration named '%s'", name), pos).
		WithLength(len([]rune(name)))

	if similar := findSimilarNames(name, declared); len(similar) > 0 {
		builder = builder.WithSuggestion(didYouMean(similar))
	}
	return builder.Build()
}

func SymbolWrongKind(name, want, got string, pos ast.Position) CompilerError {
	return NewDiagnostic(ErrorSymbolWrongKind, fmt.Sprintf("'%s' is a %s, not a %s", name, got, want), pos).
		WithLength(len([]rune(name))).
		Build()
}

// Tooling diagnostics

func ReadFailure(filename string, cause error) CompilerError {
	return NewDiagnostic(ErrorReadFailure, fmt.Sprintf("cannot read %s: %v", filename, cause),
		ast.Position{Filename: filename}).Build()
}

func InvalidConfig(path string, cause error) CompilerError {
	return NewDiagnostic(ErrorInvalidConfig, fmt.Sprintf("invalid configuration %s: %v", path, cause),
		ast.Position{Filename: path}).Build()
}

func GrammarMismatch(message string, pos ast.Position) CompilerError {
	return NewWarning(WarningGrammarMismatch, message, pos).
		WithNote("the reference grammar and the parser accept different programs").
		Build()
}

func didYouMean(similar []string) string {
	if len(similar) == 1 {
		return fmt.Sprintf("did you mean '%s'?", similar[0])
	}
	return fmt.Sprintf("did you mean one of: '%s'?", strings.Join(similar, "', '"))
}

func findSimilarNames(target string, candidates []string) []string {
	if target == "" {
		return nil
	}

	var similar []string
	for _, candidate := range candidates {
		if candidate == target || len(candidate) <= 2 {
			continue
		}
		if levenshteinDistance(target, candidate) <= 2 {
			similar = append(similar, candidate)
		}
	}
	sort.Strings(similar)
	return similar
}

// levenshteinDistance counts rune edits, keeping only the previous row.
func levenshteinDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}
