// Package mapper converts between transport, entity, and model representations.
package mapper

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/p4lang/p4ls/src/p4ls/entity"
	"github.com/p4lang/p4ls/src/p4ls/internal/errors"
	"github.com/p4lang/p4ls/src/p4ls/model"
	"go.lsp.dev/jsonrpc2"
)

// UUIDToSession returns a fresh Session entity for a new connection.
func UUIDToSession(id uuid.UUID, conn *jsonrpc2.Conn) *entity.Session {
	return &entity.Session{
		UUID: id,
		Conn: conn,
	}
}

// SessionToModel converts a Session entity to its stored form.
func SessionToModel(s *entity.Session) *model.Session {
	return &model.Session{
		UUID:             s.UUID,
		InitializeParams: s.InitializeParams,
		Conn:             s.Conn,
		Workspaces:       s.Workspaces,
		TraceValue:       s.TraceValue,
	}
}

// ModelToSession converts a stored session back to its entity form.
func ModelToSession(s *model.Session) (*entity.Session, error) {
	return &entity.Session{
		UUID:             s.UUID,
		InitializeParams: s.InitializeParams,
		Conn:             s.Conn,
		Workspaces:       s.Workspaces,
		TraceValue:       s.TraceValue,
	}, nil
}

// ContextToSessionUUID extracts the session UUID carried by ctx.
func ContextToSessionUUID(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(entity.SessionContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, &errors.MissingSessionKeyError{}
	}
	return id, nil
}
