package mapper

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/p4lang/p4ls/src/p4ls/internal/analyzer"
	protocolmapper "github.com/p4lang/p4ls/src/p4ls/internal/protocol"
	"go.lsp.dev/protocol"
)

// ApplyContentChanges applies the given content change events to a given text string.
// A change whose range is unset replaces the whole document.
func ApplyContentChanges(initialText string, changes []protocol.TextDocumentContentChangeEvent) (string, error) {
	content := []byte(initialText)
	for _, change := range changes {
		if change.Range == nil {
			content = []byte(change.Text)
			continue
		}
		m := protocolmapper.NewTextOffsetMapper(content)
		start, err := m.PositionOffset(change.Range.Start)
		if err != nil {
			return "", fmt.Errorf("unable to apply changes: %w", err)
		}
		end, err := m.PositionOffset(change.Range.End)
		if err != nil {
			return "", fmt.Errorf("unable to apply changes: %w", err)
		}
		if end < start {
			return "", fmt.Errorf("unable to apply changes: range end %v precedes start %v", change.Range.End, change.Range.Start)
		}
		var buf bytes.Buffer
		buf.Write(content[:start])
		buf.Write([]byte(change.Text))
		buf.Write(content[end:])
		content = buf.Bytes()
	}

	return string(content), nil
}

// PositionsToRange creates a Range from the given start and end positions.
func PositionsToRange(start protocol.Position, end protocol.Position) protocol.Range {
	return protocol.Range{Start: start, End: end}
}

// DiagnosticsToProtocol converts analyzer findings for the given content into
// LSP diagnostics, ordered by start position. Findings whose offsets do not
// resolve within content are dropped.
func DiagnosticsToProtocol(content string, diagnostics []analyzer.Diagnostic) []protocol.Diagnostic {
	m := protocolmapper.NewTextOffsetMapper([]byte(content))
	out := make([]protocol.Diagnostic, 0, len(diagnostics))
	for _, d := range diagnostics {
		start, err := m.OffsetPosition(d.Start)
		if err != nil {
			continue
		}
		end, err := m.OffsetPosition(d.End)
		if err != nil {
			continue
		}
		out = append(out, protocol.Diagnostic{
			Range:    PositionsToRange(start, end),
			Severity: SeverityToProtocol(d.Severity),
			Source:   "p4ls",
			Message:  d.Message,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Range.Start, out[j].Range.Start
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Character < b.Character
	})
	return out
}

// SeverityToProtocol maps an analyzer severity to its LSP equivalent.
func SeverityToProtocol(s analyzer.Severity) protocol.DiagnosticSeverity {
	switch s {
	case analyzer.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	case analyzer.SeverityInfo:
		return protocol.DiagnosticSeverityInformation
	case analyzer.SeverityHint:
		return protocol.DiagnosticSeverityHint
	default:
		return protocol.DiagnosticSeverityError
	}
}
