// Package entity contains the domain types for the p4ls service.
package entity

import (
	"github.com/gofrs/uuid"
	"github.com/p4lang/p4ls/src/p4ls/internal/workspace"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

type keyType string

// SessionContextKey indicates the key used to carry the session UUID in a context.
const SessionContextKey keyType = "SessionUUID"

// Session represents a single IDE connection and the state shared by its
// request handlers.
type Session struct {
	UUID             uuid.UUID                  `json:"uuid" zap:"uuid"`
	InitializeParams *protocol.InitializeParams `json:"-" zap:"-"`
	Conn             *jsonrpc2.Conn             `json:"-" zap:"-"`
	Workspaces       *workspace.Set             `json:"-" zap:"-"`
	TraceValue       protocol.TraceValue        `json:"traceValue" zap:"traceValue"`
}
