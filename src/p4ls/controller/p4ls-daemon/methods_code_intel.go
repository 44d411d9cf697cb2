package p4lsdaemon

import (
	"context"
	"fmt"

	"github.com/p4lang/p4ls/src/p4ls/internal/analyzer"
	"github.com/p4lang/p4ls/src/p4ls/internal/errors"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

// Hover returns the position under the cursor in human readable form.
func (c *controller) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind: protocol.Markdown,
			Value: fmt.Sprintf("Hovering over Ln *%d*, Col *%d*.",
				params.Position.Line, params.Position.Character),
		},
	}, nil
}

// Completion offers each identifier appearing in the document as a candidate.
// The request blocks until an analysis of the document is available, so a
// completion issued right after opening a large workspace waits for the
// document's first index rather than returning nothing.
func (c *controller) Completion(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting session from context: %w", err)
	}

	doc := s.Workspaces.Document(uri.URI(params.TextDocument.URI))
	unit, err := doc.Analysis(ctx)
	if err != nil {
		c.logger.Errorw("could not query completions",
			"fileUri", string(params.TextDocument.URI),
			"error", err)
		return nil, errors.NewHandlerError("could not query completions for document")
	}

	seen := make(map[string]struct{})
	items := make([]protocol.CompletionItem, 0)
	for _, lexeme := range c.analyzer.Lexemes(unit) {
		if lexeme.Kind != analyzer.TokenIdentifier {
			continue
		}
		if _, ok := seen[lexeme.Text]; ok {
			continue
		}
		seen[lexeme.Text] = struct{}{}
		items = append(items, protocol.CompletionItem{
			Label: lexeme.Text,
			Kind:  protocol.CompletionItemKindText,
		})
	}

	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        items,
	}, nil
}
