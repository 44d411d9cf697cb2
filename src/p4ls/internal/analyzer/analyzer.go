// Package analyzer maintains per-file analysis state for P4 sources.
//
// The analyzer is deterministic: identical (FileID, content) inputs always
// produce identical lexemes and diagnostics.
package analyzer

import (
	"sync"

	"go.uber.org/fx"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// FileID identifies one analyzed file for the lifetime of the process.
type FileID int32

// Severity of a diagnostic.
type Severity int

// Diagnostic severities, ordered most to least severe.
const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityHint
)

// Diagnostic is a single analysis finding, located by byte offsets into the
// file's input.
type Diagnostic struct {
	Start    int
	End      int
	Severity Severity
	Message  string
}

// Analyzer analyzes file contents and answers queries about the results.
type Analyzer interface {
	// FileID returns the stable id for a file URI, allocating one on first use.
	FileID(uri string) FileID
	// Update replaces the analyzed contents of a file.
	Update(id FileID, content string)
	// Delete discards all analysis state for a file URI.
	Delete(uri string)
	// Input returns the last content passed to Update for the file.
	Input(id FileID) (string, bool)
	// Lexemes returns the lexical tokens of the file's current content.
	Lexemes(id FileID) []Lexeme
	// Diagnostics returns the findings for the file's current content.
	Diagnostics(id FileID) []Diagnostic
}

type fileEntry struct {
	uri         string
	input       string
	lexemes     []Lexeme
	diagnostics []Diagnostic
}

type analyzer struct {
	mu     sync.RWMutex
	ids    map[string]FileID
	files  map[FileID]*fileEntry
	nextID FileID
}

// New creates an empty Analyzer.
func New() Analyzer {
	return &analyzer{
		ids:   make(map[string]FileID),
		files: make(map[FileID]*fileEntry),
	}
}

func (a *analyzer) FileID(uri string) FileID {
	a.mu.Lock()
	defer a.mu.Unlock()

	if id, ok := a.ids[uri]; ok {
		return id
	}

	a.nextID++
	id := a.nextID
	a.ids[uri] = id
	a.files[id] = &fileEntry{uri: uri}
	return id
}

func (a *analyzer) Update(id FileID, content string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	entry, ok := a.files[id]
	if !ok {
		entry = &fileEntry{}
		a.files[id] = entry
	}

	entry.input = content
	entry.lexemes, entry.diagnostics = lex(content)
}

func (a *analyzer) Delete(uri string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	id, ok := a.ids[uri]
	if !ok {
		return
	}
	delete(a.ids, uri)
	delete(a.files, id)
}

func (a *analyzer) Input(id FileID) (string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	entry, ok := a.files[id]
	if !ok {
		return "", false
	}
	return entry.input, true
}

func (a *analyzer) Lexemes(id FileID) []Lexeme {
	a.mu.RLock()
	defer a.mu.RUnlock()

	entry, ok := a.files[id]
	if !ok {
		return nil
	}
	return entry.lexemes
}

func (a *analyzer) Diagnostics(id FileID) []Diagnostic {
	a.mu.RLock()
	defer a.mu.RUnlock()

	entry, ok := a.files[id]
	if !ok {
		return nil
	}
	return entry.diagnostics
}
