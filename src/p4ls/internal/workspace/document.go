package workspace

import (
	"context"
	"errors"
	"sync"

	"github.com/p4lang/p4ls/src/p4ls/internal/analyzer"
	"github.com/p4lang/p4ls/src/p4ls/internal/future"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

// ErrIndexUnexpected is published to a document's analysis slot when the
// background indexing pipeline fails.
var ErrIndexUnexpected = errors.New("an unexpected error occurred during file indexing")

// Document tracks one file URI: whether an editor currently owns its
// contents, and the most recently published analysis unit.
//
// While a buffer is open, the editor is the source of truth for the document
// and background indexing results are discarded.
type Document struct {
	ident protocol.TextDocumentIdentifier

	mu       sync.RWMutex
	buffer   *string
	analysis *future.CompletionSource[analyzer.FileID]
}

func newDocument(ident protocol.TextDocumentIdentifier) *Document {
	return &Document{
		ident:    ident,
		analysis: future.New[analyzer.FileID](),
	}
}

// Identifier returns the document's identifier.
func (d *Document) Identifier() protocol.TextDocumentIdentifier {
	return d.ident
}

// URI returns the document's URI.
func (d *Document) URI() uri.URI {
	return uri.URI(d.ident.URI)
}

// IsOpenInEditor reports whether an editor currently owns this document's contents.
func (d *Document) IsOpenInEditor() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.buffer != nil
}

// Buffer returns the live editor buffer, if any.
func (d *Document) Buffer() (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.buffer == nil {
		return "", false
	}
	return *d.buffer, true
}

// OpenOrUpdate records the editor buffer and publishes the analysis unit
// produced for it. The editor path always wins over background indexing.
func (d *Document) OpenOrUpdate(buffer string, unit analyzer.FileID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.buffer = &buffer
	d.publishLocked(unit)
}

// Close releases editor ownership. The published analysis is retained so
// that readers keep getting the cached unit.
func (d *Document) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.buffer = nil
}

// Analysis returns the most recently published analysis unit, blocking until
// one is available. An indexing failure published to a pending document is
// returned as an error.
func (d *Document) Analysis(ctx context.Context) (analyzer.FileID, error) {
	d.mu.RLock()
	analysis := d.analysis
	d.mu.RUnlock()

	return analysis.Await(ctx)
}

// publishLocked implements the republish policy around the single-assignment
// completion source: a pending source is completed, a successfully completed
// source is updated in place, and a source holding an error is replaced
// wholesale with a fresh pre-completed one. Completion itself therefore
// happens exactly once per source while newer units can be published
// indefinitely.
func (d *Document) publishLocked(unit analyzer.FileID) {
	if !d.analysis.Completed() {
		// Cannot fail: d.mu serializes every completion of this source.
		d.analysis.SetValue(unit)
		return
	}

	if err := d.analysis.Mutate(unit); err != nil {
		d.analysis = future.NewCompleted(unit)
	}
}

// tryPublishFromIndexer commits and publishes a background analysis result
// unless the editor owns the document. commit runs under the document lock,
// so a concurrent OpenOrUpdate cannot interleave between the ownership check
// and the publish; whichever side runs second determines the final state,
// and the editor side always re-publishes its own buffer.
func (d *Document) tryPublishFromIndexer(commit func() analyzer.FileID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.buffer != nil {
		return false
	}
	d.publishLocked(commit())
	return true
}

// publishError completes a still-pending analysis slot with err. A document
// that already holds a published unit keeps it; the cached result remains
// servable and the failure is only logged by the caller.
func (d *Document) publishError(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.analysis.Completed() {
		d.analysis.SetError(err)
	}
}
