package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"silicon/internal/ast"
)

// ErrorLevel represents the severity of an error
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
)

// CompilerError is a diagnostic ready for rendering, either on a terminal or
// over LSP.
type CompilerError struct {
	Level       ErrorLevel
	Code        string       // Error code like E0101
	Message     string       // Primary error message
	Position    ast.Position // Location in source
	Length      int          // Length of the problematic region, in runes
	Related     *ast.Position
	Suggestions []Suggestion
	Notes       []string
	HelpText    string
}

func (e CompilerError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s[%s]: %s",
		e.Position.Filename, e.Position.Line, e.Position.Column, e.Level, e.Code, e.Message)
}

// Suggestion represents a suggested fix
type Suggestion struct {
	Message     string
	Replacement string // optional
}

// ErrorReporter renders diagnostics against the source they refer to.
type ErrorReporter struct {
	filename string
	lines    []string
}

func NewErrorReporter(filename, source string) *ErrorReporter {
	return &ErrorReporter{
		filename: filename,
		lines:    strings.Split(source, "\n"),
	}
}

// FormatErrors renders up to limit diagnostics followed by a one-line
// summary. A limit of zero or less renders all of them.
func (er *ErrorReporter) FormatErrors(errs []CompilerError, limit int) string {
	var result strings.Builder

	shown := errs
	if limit > 0 && len(errs) > limit {
		shown = errs[:limit]
	}
	for _, err := range shown {
		result.WriteString(er.FormatError(err))
	}
	if hidden := len(errs) - len(shown); hidden > 0 {
		result.WriteString(fmt.Sprintf("%s: %d more diagnostics not shown\n\n",
			er.getLevelColor(Note)(string(Note)), hidden))
	}

	result.WriteString(er.Summary(errs))
	return result.String()
}

// Summary returns the trailing "could not parse" line, or an empty string
// when errs holds no errors.
func (er *ErrorReporter) Summary(errs []CompilerError) string {
	errorCount, warningCount := 0, 0
	for _, err := range errs {
		switch err.Level {
		case Error:
			errorCount++
		case Warning:
			warningCount++
		}
	}

	switch {
	case errorCount > 0:
		return fmt.Sprintf("%s: could not parse %s due to %s\n",
			er.getLevelColor(Error)(string(Error)), er.filename, plural(errorCount, "previous error"))
	case warningCount > 0:
		return fmt.Sprintf("%s: %s generated %s\n",
			er.getLevelColor(Warning)(string(Warning)), er.filename, plural(warningCount, "warning"))
	default:
		return ""
	}
}

// FormatError formats a compiler error with Rust-like styling
func (er *ErrorReporter) FormatError(err CompilerError) string {
	var result strings.Builder

	levelColor := er.getLevelColor(err.Level)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	// Header: error[E0101]: message
	if err.Code != "" {
		result.WriteString(fmt.Sprintf("%s[%s]: %s\n",
			levelColor(string(err.Level)), err.Code, err.Message))
	} else {
		result.WriteString(fmt.Sprintf("%s: %s\n",
			levelColor(string(err.Level)), err.Message))
	}

	lineNumberWidth := er.getLineNumberWidth(err.Position.Line)
	indent := strings.Repeat(" ", lineNumberWidth)

	result.WriteString(fmt.Sprintf("%s %s %s:%d:%d\n",
		indent, dim("-->"), er.filename, err.Position.Line, err.Position.Column))
	result.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))

	if err.Position.Line > 1 && err.Position.Line-1 <= len(er.lines) {
		result.WriteString(fmt.Sprintf("%s %s %s\n",
			dim(fmt.Sprintf("%*d", lineNumberWidth, err.Position.Line-1)),
			dim("│"),
			er.lines[err.Position.Line-2]))
	}

	if err.Position.Line > 0 && err.Position.Line <= len(er.lines) {
		result.WriteString(fmt.Sprintf("%s %s %s\n",
			bold(fmt.Sprintf("%*d", lineNumberWidth, err.Position.Line)),
			dim("│"),
			er.lines[err.Position.Line-1]))

		marker := er.createMarker(err.Position.Column, err.Length, err.Level)
		result.WriteString(fmt.Sprintf("%s %s %s\n", indent, dim("│"), marker))
	}

	if err.Related != nil {
		noteColor := er.getLevelColor(Note)
		result.WriteString(fmt.Sprintf("%s %s %s first declared at %s:%d:%d\n",
			indent, dim("│"), noteColor("note:"), er.filename, err.Related.Line, err.Related.Column))
	}

	if len(err.Suggestions) > 0 {
		suggestionColor := color.New(color.FgCyan).SprintFunc()
		for i, suggestion := range err.Suggestions {
			if i == 0 {
				result.WriteString(fmt.Sprintf("%s %s: %s\n",
					indent, suggestionColor("help"), suggestion.Message))
			} else {
				result.WriteString(fmt.Sprintf("%s       %s\n", indent, suggestion.Message))
			}
			if suggestion.Replacement != "" {
				result.WriteString(fmt.Sprintf("%s %s %s\n",
					indent, suggestionColor("│"), suggestionColor(suggestion.Replacement)))
			}
		}
	}

	for _, note := range err.Notes {
		noteColor := color.New(color.FgBlue).SprintFunc()
		result.WriteString(fmt.Sprintf("%s %s %s %s\n",
			indent, dim("│"), noteColor("note:"), note))
	}

	if err.HelpText != "" {
		helpColor := color.New(color.FgGreen).SprintFunc()
		result.WriteString(fmt.Sprintf("%s %s %s %s\n",
			indent, dim("│"), helpColor("help:"), err.HelpText))
	}

	result.WriteString("\n")
	return result.String()
}

func (er *ErrorReporter) getLevelColor(level ErrorLevel) func(...any) string {
	switch level {
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

// createMarker underlines length runes starting at column.
func (er *ErrorReporter) createMarker(column, length int, level ErrorLevel) string {
	if length <= 0 {
		length = 1
	}
	spaces := strings.Repeat(" ", max(0, column-1))
	return spaces + er.getLevelColor(level)(strings.Repeat("^", length))
}

func (er *ErrorReporter) getLineNumberWidth(line int) int {
	width := len(fmt.Sprintf("%d", line))
	if width < 3 {
		width = 3 // minimum width for visual alignment
	}
	return width
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
