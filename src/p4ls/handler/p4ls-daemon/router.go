package p4lsdaemon

import (
	"context"
	goerrors "errors"

	"github.com/gofrs/uuid"
	tally "github.com/uber-go/tally/v4"
	"github.com/p4lang/p4ls/src/p4ls/entity"
	"github.com/p4lang/p4ls/src/p4ls/internal/fsm"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

type jsonRPCRouter struct {
	machine *fsm.Machine
	uuid    uuid.UUID
	stats   tally.Scope
}

// HandleReq handles routing for a single request.
//
// All routing goes through the session's state machine, so a method arriving
// in a state where it is not applicable is rejected without touching the
// controller.
func (r *jsonRPCRouter) HandleReq(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	ctx = context.WithValue(ctx, entity.SessionContextKey, r.uuid)
	r.stats.Tagged(map[string]string{"method": req.Method()}).Counter("requests").Inc(1)

	// Reply first to ensure that a reply is sent before the controller initiates a shutdown.
	if req.Method() == protocol.MethodExit {
		reply(ctx, nil, nil)
		_, _, err := r.machine.Dispatch(ctx, req.Method(), req.Params())
		return err
	}

	result, _, err := r.machine.Dispatch(ctx, req.Method(), req.Params())
	if err != nil {
		r.stats.Tagged(map[string]string{"method": req.Method()}).Counter("errors").Inc(1)

		var stateErr *fsm.StateError
		if goerrors.As(err, &stateErr) {
			return reply(ctx, nil, jsonrpc2.NewError(jsonrpc2.InvalidRequest, stateErr.Error()))
		}
		return reply(ctx, nil, err)
	}

	return reply(ctx, result, nil)
}

func (r *jsonRPCRouter) UUID() uuid.UUID {
	return r.uuid
}
