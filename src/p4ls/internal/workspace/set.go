package workspace

import (
	"context"
	"fmt"
	"strings"

	"github.com/p4lang/p4ls/src/p4ls/internal/analyzer"
	"github.com/p4lang/p4ls/src/p4ls/internal/fs"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// _catchAllName labels the implicit workspace used when the session was
// initialized without workspace folders.
const _catchAllName = "<*>"

// ProgressReporter reports long-running workspace operations to the client.
// Reporting failures are never fatal to the operation being reported.
type ProgressReporter interface {
	Begin(ctx context.Context, title string) (*protocol.ProgressToken, error)
	Report(ctx context.Context, token *protocol.ProgressToken, message string) error
	End(ctx context.Context, token *protocol.ProgressToken, message string) error
}

// Set routes document URIs to their owning Workspace.
//
// A set built without folders owns a single catch-all workspace rooted at the
// filesystem root; every URI resolves to it and indexing is disabled.
type Set struct {
	hasFolders bool
	workspaces map[uri.URI]*Workspace
	logger     *zap.SugaredLogger
}

// NewSet creates one Workspace per folder, or the catch-all workspace when
// folders is empty.
func NewSet(workspaceFS fs.WorkspaceFS, a analyzer.Analyzer, logger *zap.SugaredLogger, folders []protocol.WorkspaceFolder) *Set {
	hasFolders := len(folders) > 0
	if !hasFolders {
		folders = []protocol.WorkspaceFolder{{Name: _catchAllName, URI: "file:///"}}
	}

	workspaces := make(map[uri.URI]*Workspace, len(folders))
	for _, folder := range folders {
		workspaces[uri.URI(folder.URI)] = NewWorkspace(folder, workspaceFS, a, logger)
	}

	return &Set{
		hasFolders: hasFolders,
		workspaces: workspaces,
		logger:     logger,
	}
}

// HasFolders reports whether the set was initialized with explicit workspace folders.
func (s *Set) HasFolders() bool {
	return s.hasFolders
}

// Document retrieves the document for docURI from its owning workspace,
// creating it if needed. Documents may be requested in sessions opened
// without workspace folders; those resolve to the unindexed catch-all
// workspace.
//
// With explicit folders configured, every requested URI must descend from
// one of them; a miss is a contract violation by the caller and panics.
func (s *Set) Document(docURI uri.URI) *Document {
	if !s.hasFolders {
		for _, workspace := range s.workspaces {
			return workspace.Document(docURI)
		}
	}

	for root, workspace := range s.workspaces {
		if isDescendantPath(root, docURI) {
			return workspace.Document(docURI)
		}
	}

	s.logger.Errorw("failed to locate a workspace for a given file", "fileUri", string(docURI))
	panic(fmt.Sprintf("no workspace owns %q", docURI))
}

// Refresh queues docURI for background re-indexing in its owning workspace.
// URIs outside every configured folder are ignored; watched-file events may
// cover paths this server does not analyze.
func (s *Set) Refresh(docURI uri.URI) {
	for root, workspace := range s.workspaces {
		if !s.hasFolders || isDescendantPath(root, docURI) {
			workspace.Refresh(docURI)
			return
		}
	}
}

// Remove forgets docURI in its owning workspace, if any.
func (s *Set) Remove(docURI uri.URI) {
	for root, workspace := range s.workspaces {
		if !s.hasFolders || isDescendantPath(root, docURI) {
			workspace.Remove(docURI)
			return
		}
	}
}

// Index asynchronously indexes the contents of each workspace, reporting
// per-workspace progress. Returns immediately if the set was initialized
// without workspace folders.
func (s *Set) Index(ctx context.Context, progress ProgressReporter) error {
	if !s.hasFolders {
		return nil
	}

	token, err := progress.Begin(ctx, "Indexing")
	if err != nil {
		s.logger.Warnw("progress reporting unavailable", "error", err)
	}

	var errs error
	for _, workspace := range s.workspaces {
		if err := progress.Report(ctx, token, workspace.String()); err != nil {
			s.logger.Warnw("progress report failed", "error", err)
		}

		if err := workspace.Index(ctx); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	if err := progress.End(ctx, token, ""); err != nil {
		s.logger.Warnw("progress end failed", "error", err)
	}
	return errs
}

// Close stops every workspace's background worker.
func (s *Set) Close() {
	for _, workspace := range s.workspaces {
		workspace.Close()
	}
}

// isDescendantPath reports whether target lives under root.
func isDescendantPath(root, target uri.URI) bool {
	base := strings.TrimSuffix(string(root), "/")
	if string(target) == base {
		return true
	}
	return strings.HasPrefix(string(target), base+"/")
}
