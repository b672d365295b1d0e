package lsp

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"
	"silicon/internal/ast"
	"silicon/internal/errors"
)

const diagnosticSource = "silicon"

// ConvertDiagnostics transforms front-end diagnostics into LSP diagnostics for
// IDE display. Suggestions and notes are folded into the message, and the
// first declaration of a duplicate becomes related information.
func ConvertDiagnostics(uri protocol.DocumentUri, diags []errors.CompilerError) []protocol.Diagnostic {
	diagnostics := make([]protocol.Diagnostic, 0, len(diags))

	for _, diag := range diags {
		converted := protocol.Diagnostic{
			Range:    toRange(diag.Position, diag.Length),
			Severity: ptrSeverity(toSeverity(diag.Level)),
			Code:     &protocol.IntegerOrString{Value: diag.Code},
			Source:   ptrString(diagnosticSource),
			Message:  message(diag),
		}

		if diag.Related != nil {
			converted.RelatedInformation = []protocol.DiagnosticRelatedInformation{{
				Location: protocol.Location{URI: uri, Range: toRange(*diag.Related, 1)},
				Message:  "first declared here",
			}}
		}
		diagnostics = append(diagnostics, converted)
	}

	return diagnostics
}

func message(diag errors.CompilerError) string {
	parts := []string{diag.Message}
	for _, suggestion := range diag.Suggestions {
		parts = append(parts, suggestion.Message)
	}
	parts = append(parts, diag.Notes...)
	return strings.Join(parts, "\n")
}

func toSeverity(level errors.ErrorLevel) protocol.DiagnosticSeverity {
	switch level {
	case errors.Warning:
		return protocol.DiagnosticSeverityWarning
	case errors.Note:
		return protocol.DiagnosticSeverityInformation
	default:
		return protocol.DiagnosticSeverityError
	}
}

// toRange converts a 1-based position into a 0-based LSP range spanning
// length characters on the same line.
func toRange(pos ast.Position, length int) protocol.Range {
	line := uint32(max(pos.Line-1, 0))
	start := uint32(max(pos.Column-1, 0))
	return protocol.Range{
		Start: protocol.Position{Line: line, Character: start},
		End:   protocol.Position{Line: line, Character: start + uint32(max(length, 1))},
	}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
