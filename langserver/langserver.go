// Package langserver implements a Language Server Protocol server that
// reports PDDL parse and semantic errors as diagnostics.
package langserver

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/dhamidi/pddlc/pddl"
	"github.com/dhamidi/pddlc/pddl/parser"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "pddlc"

var log = commonlog.GetLogger(lsName)

type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string

	// Open documents by path, plus the most recent successfully parsed
	// domain and problem, so a domain/problem pair open in the same
	// session gets cross-file semantic checking.
	documents map[string][]byte
	domain    *parser.Domain
	problem   *parser.Problem
}

func NewServer(version string) *Server {
	s := &Server{
		version:   version,
		documents: map[string][]byte{},
	}

	s.handler = protocol.Handler{
		Initialize:            s.initialize,
		Initialized:           s.initialized,
		Shutdown:              s.shutdown,
		SetTrace:              s.setTrace,
		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,
		TextDocumentDidSave:   s.textDocumentDidSave,
	}

	s.server = server.NewServer(&s.handler, lsName, false)

	return s
}

func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	s.update(ctx, params.TextDocument.URI, path, []byte(params.TextDocument.Text))
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			s.update(ctx, params.TextDocument.URI, path, []byte(textChange.Text))
		}
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	delete(s.documents, path)
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		s.update(ctx, params.TextDocument.URI, path, []byte(*params.Text))
	}
	return nil
}

// update re-checks one document and publishes its diagnostics.
func (s *Server) update(ctx *glsp.Context, uri string, path string, content []byte) {
	s.documents[path] = content
	diagnostics := s.check(path, content)
	if diagnostics == nil {
		// An empty list clears stale diagnostics on the client.
		diagnostics = []protocol.Diagnostic{}
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func (s *Server) check(path string, content []byte) []protocol.Diagnostic {
	file, err := parser.ParseFile(content, path)
	if err != nil {
		log.Debugf("parse %s: %s", path, err)
		return []protocol.Diagnostic{toDiagnostic(err)}
	}

	if file.Domain != nil {
		s.domain = file.Domain
	}
	if file.Problem != nil {
		s.problem = file.Problem
	}
	if s.domain == nil || s.problem == nil {
		return nil
	}

	abstract, err := pddl.Build(s.domain, s.problem)
	if err != nil {
		if diag, ok := routeDiagnostic(err, path); ok {
			return []protocol.Diagnostic{diag}
		}
		return nil
	}
	if _, err := pddl.Normalize(abstract); err != nil {
		log.Errorf("normalize %s: %s", path, err)
	}
	return nil
}

// routeDiagnostic keeps a semantic error on the document that owns its
// span, so editing the domain does not flag the problem file and vice
// versa.
func routeDiagnostic(err error, path string) (protocol.Diagnostic, bool) {
	semantic, ok := err.(*pddl.SemanticError)
	if !ok {
		return protocol.Diagnostic{}, false
	}
	if semantic.Span.Start.File != path {
		return protocol.Diagnostic{}, false
	}
	return toDiagnostic(err), true
}

func toDiagnostic(err error) protocol.Diagnostic {
	var span parser.Span
	switch e := err.(type) {
	case *parser.LexError:
		span = e.Span
	case *parser.ParseError:
		span = e.Span
	case *pddl.SemanticError:
		span = e.Span
	}

	severity := protocol.DiagnosticSeverityError
	source := lsName
	return protocol.Diagnostic{
		Range:    toRange(span),
		Severity: &severity,
		Source:   &source,
		Message:  err.Error(),
	}
}

func toRange(span parser.Span) protocol.Range {
	return protocol.Range{
		Start: toPosition(span.Start),
		End:   toPosition(span.End),
	}
}

func toPosition(pos parser.Position) protocol.Position {
	line := pos.Line - 1
	if line < 0 {
		line = 0
	}
	column := pos.Column - 1
	if column < 0 {
		column = 0
	}
	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(column),
	}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
