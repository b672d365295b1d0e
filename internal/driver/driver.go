// Package driver runs the front-end over one source file on behalf of a host
// (the CLI or the language server) and turns every failure into a rendered
// diagnostic.
package driver

import (
	stderrors "errors"
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/tliron/commonlog"
	"silicon/grammar"
	"silicon/internal/ast"
	"silicon/internal/config"
	"silicon/internal/errors"
	"silicon/internal/filedb"
	"silicon/internal/parser"
)

var log = commonlog.GetLogger("silicon.driver")

// Result is everything one run learned about a file.
type Result struct {
	Path        string
	Source      string
	File        *ast.FileNode
	DB          *filedb.FileDB
	Diagnostics []errors.CompilerError
	Duration    time.Duration
}

// Failed reports whether any diagnostic is an error. Warnings alone do not
// fail a run.
func (r *Result) Failed() bool {
	for _, diag := range r.Diagnostics {
		if diag.Level == errors.Error {
			return true
		}
	}
	return false
}

// Report renders the diagnostics against the source, showing at most limit
// of them.
func (r *Result) Report(limit int) string {
	reporter := errors.NewErrorReporter(r.Path, r.Source)
	return reporter.FormatErrors(r.Diagnostics, limit)
}

// Check reads path and runs the front-end over it.
func Check(path string, cfg *config.Config) *Result {
	start := time.Now()
	log.Debugf("reading %s", path)

	source, err := os.ReadFile(path)
	if err != nil {
		log.Errorf("read %s: %s", path, err)
		return &Result{
			Path:        path,
			Diagnostics: []errors.CompilerError{errors.ReadFailure(path, err)},
			Duration:    time.Since(start),
		}
	}

	result := CheckSource(path, string(source), cfg)
	result.Duration = time.Since(start)
	return result
}

// CheckSource runs the front-end over source, which is reported as path.
func CheckSource(path, source string, cfg *config.Config) *Result {
	if cfg == nil {
		cfg = config.Default()
	}
	start := time.Now()
	result := &Result{Path: path, Source: source}

	file, db, err := parser.ParseSource(path, source)
	result.File, result.DB = file, db
	if err != nil {
		result.Diagnostics = Diagnose(path, err)
		log.Infof("%s: %d diagnostics", path, len(result.Diagnostics))
	} else {
		log.Debugf("%s: parsed namespace %s with %d declarations", path, file.Namespace, db.Len())
	}

	if cfg.CrossCheck && err == nil {
		result.Diagnostics = append(result.Diagnostics, crossCheck(path, source, file)...)
	}

	result.Duration = time.Since(start)
	return result
}

// Diagnose converts an error returned by parser.ParseSource into diagnostics.
// Errors of any other type become a single read failure.
func Diagnose(path string, err error) []errors.CompilerError {
	var scanErr *parser.ScanError
	if stderrors.As(err, &scanErr) {
		return []errors.CompilerError{fromScanError(path, scanErr)}
	}

	var parseErrs parser.ParseErrors
	if stderrors.As(err, &parseErrs) {
		diags := make([]errors.CompilerError, 0, len(parseErrs))
		for _, parseErr := range parseErrs {
			diags = append(diags, fromParseError(path, parseErr))
		}
		return diags
	}

	return []errors.CompilerError{errors.ReadFailure(path, err)}
}

func fromScanError(path string, err *parser.ScanError) errors.CompilerError {
	pos := position(path, err.Position)
	switch err.Kind {
	case parser.UnterminatedString:
		return errors.UnterminatedString(pos, err.Length)
	case parser.NumberOutOfRange:
		return errors.NumberOutOfRange(err.Message, pos, err.Length)
	default:
		return errors.UnrecognizedCharacter(err.Message, pos)
	}
}

func fromParseError(path string, err parser.ParseError) errors.CompilerError {
	pos := position(path, err.Position)
	switch err.Kind {
	case parser.MissingNamespace:
		return errors.MissingNamespace(pos)
	case parser.DuplicateDeclaration:
		var previous *ast.Position
		if err.Previous != nil {
			prev := position(path, *err.Previous)
			previous = &prev
		}
		return errors.DuplicateDeclaration(err.Message, pos, previous)
	case parser.MalformedDeclaration:
		return errors.MalformedDeclaration(err.Message, pos)
	default:
		return errors.UnexpectedToken(err.Message, pos, err.Found, keywords())
	}
}

func position(path string, pos parser.Position) ast.Position {
	return ast.Position{Filename: path, Offset: pos.Offset, Line: pos.Line, Column: pos.Column}
}

func keywords() []string {
	words := make([]string, 0, len(parser.KEYWORDS))
	for word := range parser.KEYWORDS {
		words = append(words, word)
	}
	sort.Strings(words)
	return words
}

// crossCheck parses source again with the reference grammar and warns when
// the two parsers disagree on which top-level names the file declares.
func crossCheck(path, source string, file *ast.FileNode) []errors.CompilerError {
	log.Debugf("%s: cross-checking against reference grammar", path)

	ref, err := grammar.Parse(path, source)
	if err != nil {
		return []errors.CompilerError{
			errors.GrammarMismatch(fmt.Sprintf("reference grammar rejects the file: %v", err), file.Pos),
		}
	}

	want := ref.Names()
	sort.Strings(want)
	got := file.Names()
	if slices.Equal(want, got) {
		return nil
	}

	log.Warningf("%s: grammar declares %v, parser declares %v", path, want, got)
	return []errors.CompilerError{
		errors.GrammarMismatch(fmt.Sprintf("reference grammar declares [%s], parser declares [%s]",
			strings.Join(want, " "), strings.Join(got, " ")), file.Pos),
	}
}

// Kind names accepted by Lookup.
const (
	KindAny      = ""
	KindClass    = "class"
	KindFunction = "func"
	KindVariable = "var"
)

// Lookup resolves name in the result's symbol table. A name without the
// file's namespace is qualified first. kind restricts the declaration kind;
// KindAny accepts all of them.
func Lookup(result *Result, name, kind string) (ast.Decl, error) {
	pos := ast.Position{Filename: result.Path, Line: 1, Column: 1}
	if result.DB == nil {
		return nil, errors.SymbolNotFound(name, pos, nil)
	}

	db := result.DB
	canonical := name
	if _, err := db.Lookup(canonical); err != nil && db.Namespace() != "" &&
		!strings.HasPrefix(name, db.Namespace()+".") {
		canonical = db.Canonical(name)
	}

	var (
		decl ast.Decl
		err  error
	)
	switch kind {
	case KindClass:
		decl, err = db.LookupType(canonical)
	case KindFunction:
		decl, err = db.LookupFunction(canonical)
	case KindVariable:
		decl, err = db.LookupVariable(canonical)
	case KindAny:
		decl, err = db.Lookup(canonical)
	default:
		return nil, fmt.Errorf("unknown declaration kind %q", kind)
	}
	if err == nil {
		return decl, nil
	}

	var symErr *filedb.SymbolError
	if stderrors.As(err, &symErr) && symErr.Kind == filedb.WrongKind {
		found, _ := db.Lookup(canonical)
		if found != nil {
			pos = found.NodePos()
		}
		return nil, errors.SymbolWrongKind(canonical, kindName(symErr.Want), kindName(symErr.Got), pos)
	}
	return nil, errors.SymbolNotFound(canonical, pos, db.Names())
}

func kindName(nt ast.NodeType) string {
	switch nt {
	case ast.TYPE:
		return "class"
	case ast.FUNCTION:
		return "function"
	case ast.VARIABLE:
		return "variable"
	default:
		return strings.ToLower(nt.String())
	}
}
