// Package fs wraps the filesystem operations used by p4ls.
package fs

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/fx"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Extension of the documents surfaced by folder enumeration.
const _documentExtension = ".p4"

// WorkspaceFS provides document enumeration and content access for workspace
// folders, plus the plain file operations used elsewhere in the service.
type WorkspaceFS interface {
	// EnumerateFolder returns an identifier for every analyzable document under root.
	EnumerateFolder(ctx context.Context, root uri.URI) ([]protocol.TextDocumentIdentifier, error)
	// FileContents returns the on-disk contents of the document at docURI.
	FileContents(ctx context.Context, docURI uri.URI) (string, error)

	DirExists(path string) (bool, error)
	FileExists(path string) (bool, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data string) error
	Remove(name string) error
}

type fsImpl struct{}

// New creates a new WorkspaceFS.
func New() WorkspaceFS {
	return fsImpl{}
}

// EnumerateFolder walks the folder rooted at root and collects every document
// with the analyzable extension. Unreadable subtrees are skipped rather than
// failing the enumeration.
func (fsImpl) EnumerateFolder(ctx context.Context, root uri.URI) ([]protocol.TextDocumentIdentifier, error) {
	identifiers := make([]protocol.TextDocumentIdentifier, 0)

	err := filepath.WalkDir(root.Filename(), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), _documentExtension) {
			return nil
		}

		identifiers = append(identifiers, protocol.TextDocumentIdentifier{
			URI: protocol.DocumentURI(uri.File(path)),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return identifiers, nil
}

// FileContents reads the current on-disk contents of a document.
func (fsImpl) FileContents(ctx context.Context, docURI uri.URI) (string, error) {
	data, err := os.ReadFile(docURI.Filename())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (fsImpl) DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

func (fsImpl) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

func (fsImpl) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

func (fsImpl) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (fsImpl) WriteFile(name string, data string) error {
	return os.WriteFile(name, []byte(data), 0644)
}

func (fsImpl) Remove(name string) error {
	return os.Remove(name)
}
