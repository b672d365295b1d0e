package lsp_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"silicon/internal/lsp"
)

const uri = "file:///work/app/core.si"

const symbolSource = `namespace app.core
class Foo : Base {
    const limit: Int = 10
    func size(n: Int) -> Int { return n }
}
var count = 0
native func hash() -> Int`

type published struct {
	method string
	params *protocol.PublishDiagnosticsParams
}

func newContext(sent *[]published) *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			p, _ := params.(*protocol.PublishDiagnosticsParams)
			*sent = append(*sent, published{method: method, params: p})
		},
	}
}

func open(t *testing.T, h *lsp.SiliconHandler, ctx *glsp.Context, text string) {
	t.Helper()
	err := h.TextDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "silicon", Version: 1, Text: text},
	})
	require.NoError(t, err)
}

func TestInitializeAdvertisesCapabilities(t *testing.T) {
	h := lsp.NewSiliconHandler(nil, "1.2.3")

	res, err := h.Initialize(&glsp.Context{}, &protocol.InitializeParams{})
	require.NoError(t, err)

	result, ok := res.(*protocol.InitializeResult)
	require.True(t, ok)
	assert.Equal(t, true, result.Capabilities.DocumentSymbolProvider)
	require.NotNil(t, result.ServerInfo)
	assert.Equal(t, "silicon", result.ServerInfo.Name)
	assert.Equal(t, "1.2.3", *result.ServerInfo.Version)

	tokens, ok := result.Capabilities.SemanticTokensProvider.(*protocol.SemanticTokensOptions)
	require.True(t, ok)
	assert.Equal(t, lsp.SemanticTokenTypes, tokens.Legend.TokenTypes)
}

func TestDidOpenPublishesEmptyDiagnosticsForValidFile(t *testing.T) {
	var sent []published
	ctx := newContext(&sent)
	h := lsp.NewSiliconHandler(nil, "dev")

	open(t, h, ctx, symbolSource)

	require.Len(t, sent, 1)
	assert.Equal(t, protocol.ServerTextDocumentPublishDiagnostics, sent[0].method)
	require.NotNil(t, sent[0].params)
	assert.Equal(t, uri, sent[0].params.URI)
	assert.Empty(t, sent[0].params.Diagnostics)
	assert.NotNil(t, sent[0].params.Diagnostics)
}

func TestDuplicateDeclarationDiagnostic(t *testing.T) {
	var sent []published
	ctx := newContext(&sent)
	h := lsp.NewSiliconHandler(nil, "dev")

	open(t, h, ctx, "namespace a\nclass Foo {}\nfunc Foo() {}")

	require.Len(t, sent, 1)
	diags := sent[0].params.Diagnostics
	require.Len(t, diags, 1)

	diag := diags[0]
	assert.Equal(t, protocol.DiagnosticSeverityError, *diag.Severity)
	assert.Equal(t, "E0102", diag.Code.Value)
	assert.Equal(t, "silicon", *diag.Source)
	assert.Equal(t, uint32(2), diag.Range.Start.Line)

	require.Len(t, diag.RelatedInformation, 1)
	assert.Equal(t, uri, diag.RelatedInformation[0].Location.URI)
	assert.Equal(t, uint32(1), diag.RelatedInformation[0].Location.Range.Start.Line)
	assert.Equal(t, uint32(0), diag.RelatedInformation[0].Location.Range.Start.Character)
}

func TestScanErrorDiagnostic(t *testing.T) {
	var sent []published
	ctx := newContext(&sent)
	h := lsp.NewSiliconHandler(nil, "dev")

	open(t, h, ctx, "namespace a\nvar s = @")

	diags := sent[0].params.Diagnostics
	require.Len(t, diags, 1)
	assert.Equal(t, "E0111", diags[0].Code.Value)
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 1, Character: 8},
		End:   protocol.Position{Line: 1, Character: 9},
	}, diags[0].Range)
	assert.Contains(t, diags[0].Message, "unrecognized character '@'")
}

func TestDidChangeClearsDiagnostics(t *testing.T) {
	var sent []published
	ctx := newContext(&sent)
	h := lsp.NewSiliconHandler(nil, "dev")

	open(t, h, ctx, "namespace a\nvar x")
	require.Len(t, sent[0].params.Diagnostics, 1)

	err := h.TextDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "namespace a\nvar x = 1"}},
	})
	require.NoError(t, err)

	require.Len(t, sent, 2)
	assert.Empty(t, sent[1].params.Diagnostics)
}

func TestDidCloseClearsDiagnostics(t *testing.T) {
	var sent []published
	ctx := newContext(&sent)
	h := lsp.NewSiliconHandler(nil, "dev")

	open(t, h, ctx, "namespace a\nvar x")
	err := h.TextDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)

	require.Len(t, sent, 2)
	assert.Empty(t, sent[1].params.Diagnostics)
}

func TestDocumentSymbols(t *testing.T) {
	var sent []published
	ctx := newContext(&sent)
	h := lsp.NewSiliconHandler(nil, "dev")
	open(t, h, ctx, symbolSource)

	res, err := h.TextDocumentDocumentSymbol(ctx, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)

	symbols, ok := res.([]protocol.DocumentSymbol)
	require.True(t, ok)
	require.Len(t, symbols, 3)

	foo := symbols[0]
	assert.Equal(t, "Foo", foo.Name)
	assert.Equal(t, protocol.SymbolKindClass, foo.Kind)
	assert.Equal(t, ": Base", *foo.Detail)
	assert.Equal(t, protocol.Position{Line: 1, Character: 0}, foo.Range.Start)
	assert.Equal(t, protocol.Position{Line: 4, Character: 1}, foo.Range.End)

	require.Len(t, foo.Children, 2)
	assert.Equal(t, "limit", foo.Children[0].Name)
	assert.Equal(t, protocol.SymbolKindConstant, foo.Children[0].Kind)
	assert.Equal(t, "Int", *foo.Children[0].Detail)
	assert.Equal(t, "size", foo.Children[1].Name)
	assert.Equal(t, protocol.SymbolKindMethod, foo.Children[1].Kind)
	assert.Equal(t, "(n: Int) -> Int", *foo.Children[1].Detail)

	assert.Equal(t, "count", symbols[1].Name)
	assert.Equal(t, protocol.SymbolKindVariable, symbols[1].Kind)
	assert.Nil(t, symbols[1].Detail)

	assert.Equal(t, "hash", symbols[2].Name)
	assert.Equal(t, protocol.SymbolKindFunction, symbols[2].Kind)
	assert.Equal(t, "() -> Int", *symbols[2].Detail)
}

func TestDocumentSymbolsWithoutNamespace(t *testing.T) {
	var sent []published
	ctx := newContext(&sent)
	h := lsp.NewSiliconHandler(nil, "dev")
	open(t, h, ctx, "class Foo {}")

	res, err := h.TextDocumentDocumentSymbol(ctx, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	assert.Empty(t, res)
}

const tokenSource = `namespace app.core
use silicon.io.File as F
class Foo : Base {
    const limit: Int = 10
    func size(n: Int) -> Int { return n + limit }
}`

func TestTextDocumentSemanticTokensFull(t *testing.T) {
	path := filepath.Join(t.TempDir(), "core.si")
	require.NoError(t, os.WriteFile(path, []byte(tokenSource), 0o644))
	fileURI := "file://" + filepath.ToSlash(path)

	var sent []published
	ctx := newContext(&sent)
	h := lsp.NewSiliconHandler(nil, "dev")

	tokens, err := h.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: fileURI},
	})
	require.NoError(t, err, "TextDocumentSemanticTokensFull returned error")
	require.NotNil(t, tokens)

	// the unopened document was read from disk and checked
	require.Len(t, sent, 1)
	assert.Empty(t, sent[0].params.Diagnostics)

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err, "Failed to decode semantic tokens")
	require.Len(t, decoded, 27)

	assertToken(t, &decoded[0], 1, 1, 9, "keyword", nil)
	assertToken(t, &decoded[1], 1, 11, 3, "namespace", []string{"declaration"})
	assertToken(t, &decoded[2], 1, 15, 4, "namespace", []string{"declaration"})
	assertToken(t, &decoded[3], 2, 1, 3, "keyword", nil)
	assertToken(t, &decoded[4], 2, 5, 7, "namespace", nil)
	assertToken(t, &decoded[5], 2, 13, 2, "namespace", nil)
	assertToken(t, &decoded[6], 2, 16, 4, "type", nil)
	assertToken(t, &decoded[7], 2, 21, 2, "keyword", nil)
	assertToken(t, &decoded[8], 2, 24, 1, "type", []string{"declaration"})
	assertToken(t, &decoded[9], 3, 1, 5, "keyword", nil)
	assertToken(t, &decoded[10], 3, 7, 3, "type", []string{"declaration"})
	assertToken(t, &decoded[11], 3, 13, 4, "type", nil)
	assertToken(t, &decoded[12], 4, 5, 5, "keyword", nil)
	assertToken(t, &decoded[13], 4, 11, 5, "variable", []string{"declaration", "readonly"})
	assertToken(t, &decoded[14], 4, 18, 3, "type", nil)
	assertToken(t, &decoded[15], 4, 22, 1, "operator", nil)
	assertToken(t, &decoded[16], 4, 24, 2, "number", nil)
	assertToken(t, &decoded[17], 5, 5, 4, "keyword", nil)
	assertToken(t, &decoded[18], 5, 10, 4, "function", []string{"declaration"})
	assertToken(t, &decoded[19], 5, 15, 1, "parameter", []string{"declaration"})
	assertToken(t, &decoded[20], 5, 18, 3, "type", nil)
	assertToken(t, &decoded[21], 5, 23, 2, "operator", nil)
	assertToken(t, &decoded[22], 5, 26, 3, "type", nil)
	assertToken(t, &decoded[23], 5, 32, 6, "keyword", nil)
	assertToken(t, &decoded[24], 5, 39, 1, "variable", nil)
	assertToken(t, &decoded[25], 5, 41, 1, "operator", nil)
	assertToken(t, &decoded[26], 5, 43, 5, "variable", nil)
}

func TestSemanticTokensDottedSupertype(t *testing.T) {
	var sent []published
	ctx := newContext(&sent)
	h := lsp.NewSiliconHandler(nil, "dev")
	open(t, h, ctx, "namespace a\nclass Foo : silicon.lang.Base {\n  var s = \"hi\"\n  func f() { s.size() }\n}")

	tokens, err := h.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)

	byPos := map[[2]uint32]DecodedToken{}
	for _, tok := range decoded {
		byPos[[2]uint32{tok.Line, tok.Char}] = tok
	}
	assert.Equal(t, "type", byPos[[2]uint32{2, 13}].Type)
	assert.Equal(t, "type", byPos[[2]uint32{2, 21}].Type)
	assert.Equal(t, "type", byPos[[2]uint32{2, 26}].Type)
	assert.Equal(t, "string", byPos[[2]uint32{3, 11}].Type)
	assert.Equal(t, uint32(4), byPos[[2]uint32{3, 11}].Length)
	assert.Equal(t, "variable", byPos[[2]uint32{4, 14}].Type)
	assert.Equal(t, "function", byPos[[2]uint32{4, 16}].Type)
}

func TestSemanticTokensOnScanError(t *testing.T) {
	var sent []published
	ctx := newContext(&sent)
	h := lsp.NewSiliconHandler(nil, "dev")
	open(t, h, ctx, "namespace a\nvar s = \"open")

	tokens, err := h.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	assert.Empty(t, tokens.Data)
}

func TestSemanticTokensMissingFile(t *testing.T) {
	h := lsp.NewSiliconHandler(nil, "dev")
	_, err := h.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///does/not/exist.si"},
	})
	assert.Error(t, err)
}

type DecodedToken struct {
	Index     int
	Line      uint32
	Char      uint32
	Length    uint32
	Type      string
	Modifiers []string
}

func decodeSemanticTokens(raw []uint32) ([]DecodedToken, error) {
	if len(raw)%5 != 0 {
		return nil, fmt.Errorf("raw token data length %d is not a multiple of 5", len(raw))
	}

	var (
		decoded []DecodedToken
		line    uint32
		char    uint32
	)

	for i := 0; i < len(raw); i += 5 {
		deltaLine := raw[i]
		deltaStart := raw[i+1]
		length := raw[i+2]
		tokenTypeIdx := raw[i+3]
		tokenModMask := raw[i+4]

		if deltaLine == 0 {
			char += deltaStart
		} else {
			line += deltaLine
			char = deltaStart
		}

		var modifiers []string
		for j, name := range lsp.SemanticTokenModifiers {
			if tokenModMask&(1<<j) != 0 {
				modifiers = append(modifiers, name)
			}
		}

		decoded = append(decoded, DecodedToken{
			Index:     i / 5,
			Line:      line + 1, // LSP uses 0-based indexing
			Char:      char + 1, // LSP uses 0-based indexing
			Length:    length,
			Type:      lsp.SemanticTokenTypes[tokenTypeIdx],
			Modifiers: modifiers,
		})
	}

	return decoded, nil
}

func assertToken(t *testing.T, token *DecodedToken, expectedLine, expectedChar, expectedLength uint32, expectedType string, expectedModifiers []string) {
	require.Equal(t, expectedLine, token.Line, "line mismatch (expected line %d)", expectedLine)
	require.Equal(t, expectedChar, token.Char, "char mismatch (expected char %d)", expectedChar)
	require.Equal(t, expectedLength, token.Length, "length mismatch")
	require.Equal(t, expectedType, token.Type, "type mismatch")
	require.ElementsMatch(t, expectedModifiers, token.Modifiers, "modifiers mismatch")
}
