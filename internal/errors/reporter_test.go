package errors

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"silicon/internal/ast"
)

func init() {
	color.NoColor = true
}

const source = `namespace demo
clas Foo {}
var x = 1`

func TestErrorReporter(t *testing.T) {
	reporter := NewErrorReporter("demo.si", source)

	err := UnexpectedToken("expected class, var, const or func declaration, found 'clas'",
		ast.Position{Filename: "demo.si", Line: 2, Column: 1}, "clas", []string{"class", "const", "func"})
	formatted := reporter.FormatError(err)

	assert.Contains(t, formatted, "error["+ErrorUnexpectedToken+"]")
	assert.Contains(t, formatted, "found 'clas'")
	assert.Contains(t, formatted, "demo.si:2:1")
	assert.Contains(t, formatted, "  1 │ namespace demo")
	assert.Contains(t, formatted, "  2 │ clas Foo {}")
	assert.Contains(t, formatted, "    │ ^^^^")
	assert.Contains(t, formatted, "did you mean 'class'?")
}

func TestDuplicateDeclarationShowsFirst(t *testing.T) {
	reporter := NewErrorReporter("demo.si", source)
	first := ast.Position{Line: 2, Column: 1}

	err := DuplicateDeclaration("x is already declared at 2:1", ast.Position{Line: 3, Column: 1}, &first)
	require.NotNil(t, err.Related)
	assert.Equal(t, ErrorDuplicateDeclaration, err.Code)

	formatted := reporter.FormatError(err)
	assert.Contains(t, formatted, "note: first declared at demo.si:2:1")
	assert.Contains(t, formatted, "help: rename one of the declarations")
}

func TestWarningFormatting(t *testing.T) {
	reporter := NewErrorReporter("demo.si", source)

	err := GrammarMismatch("grammar rejects this file", ast.Position{Line: 1, Column: 1})
	formatted := reporter.FormatError(err)

	assert.Contains(t, formatted, "warning[W0001]")
	assert.Contains(t, formatted, "reference grammar")
	assert.True(t, IsWarning(err.Code))
}

func TestFormatErrorsLimitAndSummary(t *testing.T) {
	reporter := NewErrorReporter("demo.si", source)
	errs := []CompilerError{
		MalformedDeclaration("first", ast.Position{Line: 1, Column: 1}),
		MalformedDeclaration("second", ast.Position{Line: 2, Column: 1}),
		MalformedDeclaration("third", ast.Position{Line: 3, Column: 1}),
	}

	out := reporter.FormatErrors(errs, 2)
	assert.Contains(t, out, "first")
	assert.Contains(t, out, "second")
	assert.NotContains(t, out, "third")
	assert.Contains(t, out, "note: 1 more diagnostics not shown")
	assert.True(t, strings.HasSuffix(out, "error: could not parse demo.si due to 3 previous errors\n"))

	assert.Contains(t, reporter.FormatErrors(errs, 0), "third")
	assert.Equal(t, "error: could not parse demo.si due to 1 previous error\n", reporter.Summary(errs[:1]))
	assert.Empty(t, reporter.Summary(nil))
}

func TestErrorPositionOutsideSource(t *testing.T) {
	reporter := NewErrorReporter("demo.si", source)
	err := ReadFailure("missing.si", stderrors.New("no such file"))

	formatted := reporter.FormatError(err)
	assert.Contains(t, formatted, "error[E0900]: cannot read missing.si: no such file")
	assert.NotContains(t, formatted, "^")
}

func TestCompilerErrorString(t *testing.T) {
	err := MissingNamespace(ast.Position{Filename: "a.si", Line: 1, Column: 1})
	assert.Equal(t, "a.si:1:1: error[E0100]: missing namespace declaration", err.Error())
}

func TestErrorMarkerCreation(t *testing.T) {
	reporter := NewErrorReporter("demo.si", source)

	marker := reporter.createMarker(5, 8, Error)
	assert.Equal(t, 4, strings.Count(marker, " "))
	assert.Equal(t, 8, strings.Count(marker, "^"))

	assert.Equal(t, "^", reporter.createMarker(1, 0, Error))
}

func TestLexerDiagnostics(t *testing.T) {
	pos := ast.Position{Line: 1, Column: 9}

	unterminated := UnterminatedString(pos, 4)
	assert.Equal(t, ErrorUnterminatedString, unterminated.Code)
	assert.Equal(t, 4, unterminated.Length)

	unrecognized := UnrecognizedCharacter("unrecognized character '@'", pos)
	assert.Equal(t, ErrorUnrecognizedCharacter, unrecognized.Code)

	outOfRange := NumberOutOfRange("too big", pos, 20)
	assert.Equal(t, "Lexer", GetErrorCategory(outOfRange.Code))
}

func TestSymbolDiagnostics(t *testing.T) {
	pos := ast.Position{Line: 1, Column: 1}

	err := SymbolNotFound("demo.Fo", pos, []string{"demo.Foo", "demo.bar"})
	assert.Equal(t, ErrorSymbolNotFound, err.Code)
	require.Len(t, err.Suggestions, 1)
	assert.Equal(t, "did you mean 'demo.Foo'?", err.Suggestions[0].Message)

	wrong := SymbolWrongKind("demo.Foo", "TYPE", "FUNCTION", pos)
	assert.Equal(t, "'demo.Foo' is a FUNCTION, not a TYPE", wrong.Message)
	assert.Equal(t, "Symbol Table", GetErrorCategory(wrong.Code))
}

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, levenshteinDistance("hello", "hello"))
	assert.Equal(t, 1, levenshteinDistance("hello", "hallo"))
	assert.Equal(t, 1, levenshteinDistance("hello", "helo"))
	assert.Equal(t, 5, levenshteinDistance("hello", ""))
	assert.Equal(t, 3, levenshteinDistance("kitten", "sitting"))
	assert.Equal(t, 1, levenshteinDistance("größe", "gröse"))
}

func TestSimilarNameFinding(t *testing.T) {
	keywords := []string{"class", "const", "func", "native", "namespace"}

	assert.Equal(t, []string{"class"}, findSimilarNames("clas", keywords))
	assert.Equal(t, []string{"const"}, findSimilarNames("cnst", keywords))
	assert.Empty(t, findSimilarNames("verydifferent", keywords))
	assert.Empty(t, findSimilarNames("class", keywords))
	assert.Empty(t, findSimilarNames("", keywords))
}

func TestErrorCategories(t *testing.T) {
	assert.Equal(t, "Parser", GetErrorCategory(ErrorMissingNamespace))
	assert.Equal(t, "Tooling", GetErrorCategory(ErrorInvalidConfig))
	assert.Equal(t, "Warning", GetErrorCategory(WarningGrammarMismatch))
	assert.Equal(t, "Unknown", GetErrorCategory("E0500"))
	assert.Equal(t, "Unknown error code", GetErrorDescription("E9999"))
	assert.False(t, IsWarning(""))
}
