// Package p4lsdaemon connects inbound JSON-RPC traffic to the p4ls-daemon
// controller. Each connection gets its own session and lifecycle state
// machine, so methods are only reachable in the states the protocol allows.
package p4lsdaemon

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid"
	tally "github.com/uber-go/tally/v4"
	controller "github.com/p4lang/p4ls/src/p4ls/controller/p4ls-daemon"
	"github.com/p4lang/p4ls/src/p4ls/entity"
	"github.com/p4lang/p4ls/src/p4ls/internal/jsonrpcfx"
	"go.lsp.dev/jsonrpc2"
)

// ConnectionManager is the inbound surface of the p4ls-daemon service.
type ConnectionManager = jsonrpcfx.ConnectionManager

// New constructs the service's connection manager and registers it with the
// JSON-RPC module.
func New(ctrl controller.Controller, jsonrpcmod jsonrpcfx.JSONRPCModule, stats tally.Scope) (ConnectionManager, error) {
	c := jsonRPCConnectionManager{
		ctrl:  ctrl,
		stats: stats.SubScope("json_rpc"),
	}
	if err := jsonrpcmod.RegisterConnectionManager(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

type jsonRPCConnectionManager struct {
	ctrl  controller.Controller
	stats tally.Scope
}

// NewConnection will store a new connection and return a router that includes its UUID.
func (c *jsonRPCConnectionManager) NewConnection(ctx context.Context, conn *jsonrpc2.Conn) (router jsonrpcfx.Router, err error) {
	id, err := c.ctrl.InitSession(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("error while creating new connection: %w", err)
	}

	r := jsonRPCRouter{
		machine: newSessionMachine(c.ctrl),
		uuid:    id,
		stats:   c.stats,
	}

	return &r, nil
}

// RemoveConnection cleans up a closed connection.
func (c *jsonRPCConnectionManager) RemoveConnection(ctx context.Context, id uuid.UUID) error {
	// Ensure session is removed even if no Exit call has been received.
	ctx = context.WithValue(ctx, entity.SessionContextKey, id)
	return c.ctrl.EndSession(ctx, id)
}
