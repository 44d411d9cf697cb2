package p4lsdaemon

import (
	"context"
	"fmt"

	"github.com/p4lang/p4ls/src/p4ls/internal/errors"
	"github.com/p4lang/p4ls/src/p4ls/mapper"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

// DidOpen handles the opening of a new document in the editor. The editor's
// buffer becomes the source of truth for the document until DidClose.
func (c *controller) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return fmt.Errorf("getting session from context: %w", err)
	}

	doc := s.Workspaces.Document(uri.URI(params.TextDocument.URI))
	content := params.TextDocument.Text

	unit := c.analyzer.FileID(string(doc.URI()))
	c.analyzer.Update(unit, content)
	doc.OpenOrUpdate(content, unit)

	c.publishDiagnostics(ctx, params.TextDocument.URI, content, unit)
	return nil
}

// DidChange applies incremental edits to an open document's buffer and
// re-analyzes the result.
func (c *controller) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return fmt.Errorf("getting session from context: %w", err)
	}

	doc := s.Workspaces.Document(uri.URI(params.TextDocument.URI))
	buffer, ok := doc.Buffer()
	if !ok {
		return &errors.DocumentNotFoundError{Document: protocol.TextDocumentIdentifier{URI: params.TextDocument.URI}}
	}

	content, err := mapper.ApplyContentChanges(buffer, params.ContentChanges)
	if err != nil {
		return fmt.Errorf("applying content changes to %q: %w", params.TextDocument.URI, err)
	}

	unit := c.analyzer.FileID(string(doc.URI()))
	c.analyzer.Update(unit, content)
	doc.OpenOrUpdate(content, unit)

	c.publishDiagnostics(ctx, params.TextDocument.URI, content, unit)
	return nil
}

// DidClose releases editor ownership of the document. Published analysis is
// retained, but stale diagnostics for the closed buffer are cleared.
func (c *controller) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return fmt.Errorf("getting session from context: %w", err)
	}

	doc := s.Workspaces.Document(uri.URI(params.TextDocument.URI))
	doc.Close()

	clearParams := &protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	}
	if err := c.ideGateway.PublishDiagnostics(ctx, clearParams); err != nil {
		c.logger.Warnw("clearing diagnostics", "fileUri", params.TextDocument.URI, "error", err)
	}
	return nil
}

// DidSave republishes diagnostics for the saved document.
func (c *controller) DidSave(ctx context.Context, params *protocol.DidSaveTextDocumentParams) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return fmt.Errorf("getting session from context: %w", err)
	}

	doc := s.Workspaces.Document(uri.URI(params.TextDocument.URI))
	buffer, ok := doc.Buffer()
	if !ok {
		return nil
	}

	unit := c.analyzer.FileID(string(doc.URI()))
	c.publishDiagnostics(ctx, params.TextDocument.URI, buffer, unit)
	return nil
}

// DidChangeWatchedFiles reconciles analysis state with file events observed
// by the editor. Deletions drop state immediately; other events queue a
// background re-index unless the editor owns the document.
func (c *controller) DidChangeWatchedFiles(ctx context.Context, params *protocol.DidChangeWatchedFilesParams) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return fmt.Errorf("getting session from context: %w", err)
	}

	for _, event := range params.Changes {
		docURI := uri.URI(event.URI)
		switch protocol.FileChangeType(event.Type) {
		case protocol.FileChangeTypeDeleted:
			s.Workspaces.Remove(docURI)
			c.analyzer.Delete(string(docURI))
		default:
			s.Workspaces.Refresh(docURI)
		}
	}
	return nil
}
