// Package workspace models the documents opened or indexed under each
// workspace folder, and keeps their analysis results fresh in the background.
package workspace

import (
	"context"
	"fmt"
	"sync"

	"github.com/p4lang/p4ls/src/p4ls/internal/analyzer"
	"github.com/p4lang/p4ls/src/p4ls/internal/fs"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/zap"
)

// Workspace is one indexed root folder and its documents. Each workspace owns
// a single background worker, so background analysis within a workspace is
// strictly serialized while workspaces stay independent of one another.
type Workspace struct {
	folder   protocol.WorkspaceFolder
	fs       fs.WorkspaceFS
	analyzer analyzer.Analyzer
	logger   *zap.SugaredLogger

	mu        sync.Mutex
	documents map[uri.URI]*Document

	queue *indexQueue
	done  chan struct{}
}

// NewWorkspace creates a workspace for folder and starts its background worker.
func NewWorkspace(folder protocol.WorkspaceFolder, workspaceFS fs.WorkspaceFS, a analyzer.Analyzer, logger *zap.SugaredLogger) *Workspace {
	w := &Workspace{
		folder:    folder,
		fs:        workspaceFS,
		analyzer:  a,
		logger:    logger,
		documents: make(map[uri.URI]*Document),
		queue:     newIndexQueue(),
		done:      make(chan struct{}),
	}

	go w.runIndexer()
	return w
}

// URI returns the workspace's root URI.
func (w *Workspace) URI() uri.URI {
	return uri.URI(w.folder.URI)
}

// Name returns the workspace's display name.
func (w *Workspace) Name() string {
	return w.folder.Name
}

// String implements fmt.Stringer.
func (w *Workspace) String() string {
	return fmt.Sprintf("[%s](%s)", w.folder.Name, w.folder.URI)
}

// Document looks up a document by URI, creating and enqueueing it for
// background indexing if it is not yet known. Creation and enqueue are atomic
// with respect to concurrent lookups of the same URI.
func (w *Workspace) Document(docURI uri.URI) *Document {
	w.mu.Lock()
	defer w.mu.Unlock()

	if doc, ok := w.documents[docURI]; ok {
		return doc
	}

	w.logger.Infow("creating missing document entry",
		"workspaceUri", w.folder.URI,
		"fileUri", string(docURI))

	doc := newDocument(protocol.TextDocumentIdentifier{URI: protocol.DocumentURI(docURI)})
	w.documents[docURI] = doc
	w.queue.push(doc)
	return doc
}

// Refresh queues the document for background re-indexing, creating it if it
// is not yet known. Documents owned by an editor are left alone; the next
// editor update supersedes whatever changed on disk.
func (w *Workspace) Refresh(docURI uri.URI) {
	w.mu.Lock()
	defer w.mu.Unlock()

	doc, ok := w.documents[docURI]
	if !ok {
		doc = newDocument(protocol.TextDocumentIdentifier{URI: protocol.DocumentURI(docURI)})
		w.documents[docURI] = doc
	}
	if doc.IsOpenInEditor() {
		return
	}
	w.queue.push(doc)
}

// Remove forgets the document. Work already queued for it will fail its
// contents fetch and be skipped by the worker.
func (w *Workspace) Remove(docURI uri.URI) {
	w.mu.Lock()
	defer w.mu.Unlock()

	delete(w.documents, docURI)
}

// Index enumerates every analyzable document under the workspace root and
// queues each for background indexing. Existing entries are replaced.
func (w *Workspace) Index(ctx context.Context) error {
	identifiers, err := w.fs.EnumerateFolder(ctx, w.URI())
	if err != nil {
		return fmt.Errorf("enumerating workspace %s: %w", w, err)
	}
	if len(identifiers) == 0 {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, ident := range identifiers {
		doc := newDocument(ident)
		w.documents[uri.URI(ident.URI)] = doc
		w.queue.push(doc)
	}
	return nil
}

// Close stops the background worker after it drains the queued work.
func (w *Workspace) Close() {
	w.queue.close()
	<-w.done
}

// runIndexer drains the index queue. Fetch and analysis failures are logged
// and the worker moves on to the next item; the worker terminates only when
// the queue is closed.
func (w *Workspace) runIndexer() {
	defer close(w.done)

	for {
		doc, ok := w.queue.pop()
		if !ok {
			return
		}

		// The editor took ownership after this work item was queued; its
		// buffer is now the source of truth, so the stale item is dropped.
		if doc.IsOpenInEditor() {
			continue
		}

		w.logger.Infow("background indexing", "fileUri", string(doc.URI()))

		contents, err := w.fs.FileContents(context.Background(), doc.URI())
		if err != nil {
			w.logger.Errorw("failed to retrieve file contents",
				"fileUri", string(doc.URI()), "error", err)
			continue
		}

		if err := w.indexDocument(doc, contents); err != nil {
			w.logger.Errorw("background analysis failed",
				"fileUri", string(doc.URI()), "error", err)
			doc.publishError(ErrIndexUnexpected)
		}
	}
}

// indexDocument analyzes contents and publishes the resulting unit. The
// commit runs under the document's lock and is skipped entirely if the
// editor took ownership while the contents were being fetched; the editor's
// buffer is the source of truth from that point on.
func (w *Workspace) indexDocument(doc *Document, contents string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("analysis panic: %v", r)
		}
	}()

	doc.tryPublishFromIndexer(func() analyzer.FileID {
		unit := w.analyzer.FileID(string(doc.URI()))
		w.analyzer.Update(unit, contents)
		return unit
	})
	return nil
}
