package lsp

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"silicon/internal/ast"
	"silicon/internal/config"
	"silicon/internal/driver"
	"silicon/internal/parser"
)

var log = commonlog.GetLogger("silicon.lsp")

// SiliconHandler implements the LSP server handlers for the Silicon language
type SiliconHandler struct {
	mu      sync.RWMutex
	cfg     *config.Config
	version string
	results map[string]*driver.Result // keyed by document URI
}

// NewSiliconHandler creates a handler that checks documents with cfg.
func NewSiliconHandler(cfg *config.Config, version string) *SiliconHandler {
	if cfg == nil {
		cfg = config.Default()
	}
	return &SiliconHandler{
		cfg:     cfg,
		version: version,
		results: make(map[string]*driver.Result),
	}
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities
func (h *SiliconHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("initialize")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			DocumentSymbolProvider: true,
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    "silicon",
			Version: &h.version,
		},
	}, nil
}

// Initialized is called after the client receives the server's capabilities and completes initialization
func (h *SiliconHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("initialized")
	return nil
}

// Shutdown handles the LSP shutdown request
func (h *SiliconHandler) Shutdown(ctx *glsp.Context) error {
	log.Info("shutdown")
	return nil
}

func (h *SiliconHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// TextDocumentDidOpen handles file open notifications from the editor
func (h *SiliconHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Debugf("opened %s", params.TextDocument.URI)
	return h.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
}

// TextDocumentDidChange handles file change notifications from the editor.
// Only full-document sync is advertised, so the last change holds the text.
func (h *SiliconHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Debugf("changed %s", params.TextDocument.URI)

	if len(params.ContentChanges) == 0 {
		return nil
	}
	var text string
	switch change := params.ContentChanges[len(params.ContentChanges)-1].(type) {
	case protocol.TextDocumentContentChangeEventWhole:
		text = change.Text
	case *protocol.TextDocumentContentChangeEventWhole:
		text = change.Text
	case protocol.TextDocumentContentChangeEvent:
		text = change.Text
	case *protocol.TextDocumentContentChangeEvent:
		text = change.Text
	default:
		return fmt.Errorf("unsupported content change %T", change)
	}
	return h.update(ctx, params.TextDocument.URI, text)
}

// TextDocumentDidClose forgets the document and clears its diagnostics.
func (h *SiliconHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Debugf("closed %s", params.TextDocument.URI)

	uri := params.TextDocument.URI
	h.mu.Lock()
	delete(h.results, uri)
	h.mu.Unlock()

	publish(ctx, uri, []protocol.Diagnostic{})
	return nil
}

// TextDocumentDocumentSymbol lists the file's declarations, with class
// members nested under their class.
func (h *SiliconHandler) TextDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	result, err := h.getOrUpdate(ctx, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	symbols := []protocol.DocumentSymbol{}
	if result.File == nil {
		return symbols, nil
	}

	decls := make([]ast.Decl, 0, len(result.File.Statements))
	for _, decl := range result.File.Statements {
		decls = append(decls, decl)
	}
	sortByPosition(decls)

	for _, decl := range decls {
		symbols = append(symbols, documentSymbol(decl, false))
	}
	return symbols, nil
}

// TextDocumentSemanticTokensFull handles semantic token requests for the entire document
func (h *SiliconHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	result, err := h.getOrUpdate(ctx, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	tokens, err := parser.Lex(result.Source)
	if err != nil {
		// the scan error is already published as a diagnostic
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}
	return &protocol.SemanticTokens{Data: encodeSemanticTokens(collectSemanticTokens(tokens))}, nil
}

// update checks text as the new content of uri and publishes the outcome.
// Diagnostics are always sent so that fixed problems are cleared.
func (h *SiliconHandler) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) error {
	path, err := uriToPath(uri)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", uri, err)
	}

	result := driver.CheckSource(path, text, h.cfg)

	h.mu.Lock()
	h.results[uri] = result
	h.mu.Unlock()

	publish(ctx, uri, ConvertDiagnostics(uri, result.Diagnostics))
	return nil
}

// getOrUpdate returns the last result for uri, reading the document from
// disk when the client never opened it.
func (h *SiliconHandler) getOrUpdate(ctx *glsp.Context, uri protocol.DocumentUri) (*driver.Result, error) {
	h.mu.RLock()
	result, ok := h.results[uri]
	h.mu.RUnlock()
	if ok {
		return result, nil
	}

	path, err := uriToPath(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", uri, err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	if err := h.update(ctx, uri, string(content)); err != nil {
		return nil, err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.results[uri], nil
}

func documentSymbol(decl ast.Decl, member bool) protocol.DocumentSymbol {
	start := toRange(decl.NodePos(), 1).Start
	symbol := protocol.DocumentSymbol{
		Name:           decl.DeclName(),
		Range:          protocol.Range{Start: start, End: start},
		SelectionRange: protocol.Range{Start: start, End: start},
	}

	switch n := decl.(type) {
	case *ast.TypeNode:
		symbol.Kind = protocol.SymbolKindClass
		if !n.SuperType.IsRoot() {
			symbol.Detail = ptrString(": " + n.SuperType.CanonicalName)
		}
		if n.Body != nil {
			symbol.Range.End = blockEnd(n.Body)
			for _, stmt := range n.Body.Statements {
				if member, ok := stmt.(ast.Decl); ok {
					symbol.Children = append(symbol.Children, documentSymbol(member, true))
				}
			}
		}
	case *ast.FunctionNode:
		symbol.Kind = protocol.SymbolKindFunction
		if member {
			symbol.Kind = protocol.SymbolKindMethod
		}
		symbol.Detail = ptrString(signature(n))
		if n.Block != nil {
			symbol.Range.End = blockEnd(n.Block)
		}
	case *ast.VariableNode:
		switch {
		case n.Const:
			symbol.Kind = protocol.SymbolKindConstant
		case member:
			symbol.Kind = protocol.SymbolKindField
		default:
			symbol.Kind = protocol.SymbolKindVariable
		}
		if n.Type != nil {
			symbol.Detail = ptrString(n.Type.CanonicalName)
		}
	}
	return symbol
}

func signature(fn *ast.FunctionNode) string {
	params := make([]string, 0, len(fn.Params))
	for _, param := range fn.Params {
		params = append(params, param.Name+": "+param.Type.CanonicalName)
	}
	sig := "(" + strings.Join(params, ", ") + ")"
	if fn.Return != nil {
		sig += " -> " + fn.Return.CanonicalName
	}
	return sig
}

// blockEnd is the position just past the closing brace.
func blockEnd(block *ast.BlockNode) protocol.Position {
	return toRange(block.EndPos, 1).End
}

func sortByPosition(decls []ast.Decl) {
	sort.Slice(decls, func(i, j int) bool {
		return decls[i].NodePos().Offset < decls[j].NodePos().Offset
	})
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}
	if u.Scheme != "" && u.Scheme != "file" {
		return "", fmt.Errorf("unsupported URI scheme %q", u.Scheme)
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...) to get C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func publish(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	log.Debugf("publishing %d diagnostics for %s", len(diagnostics), uri)

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
