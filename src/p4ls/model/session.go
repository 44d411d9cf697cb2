// Package model contains the storage representations used by repositories.
package model

import (
	"github.com/gofrs/uuid"
	"github.com/p4lang/p4ls/src/p4ls/internal/workspace"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

// Session is the stored form of an IDE session.
type Session struct {
	UUID             uuid.UUID
	InitializeParams *protocol.InitializeParams
	Conn             *jsonrpc2.Conn
	Workspaces       *workspace.Set
	TraceValue       protocol.TraceValue
}
