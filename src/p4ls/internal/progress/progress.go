// Package progress reports long-running server work to the IDE via the
// $/progress protocol.
package progress

import (
	"context"
	"fmt"

	"github.com/p4lang/p4ls/src/p4ls/factory"
	notifier "github.com/p4lang/p4ls/src/p4ls/gateway/ide-client"
	"github.com/p4lang/p4ls/src/p4ls/internal/workspace"
	"go.lsp.dev/protocol"
	"go.uber.org/fx"
)

// Module provides a workspace progress reporter for Fx applications.
var Module = fx.Provide(New)

type reporter struct {
	ideGateway notifier.Gateway
}

// New returns a ProgressReporter that surfaces work done progress in the IDE.
func New(ideGateway notifier.Gateway) workspace.ProgressReporter {
	return &reporter{ideGateway: ideGateway}
}

// Begin creates a new progress token with the client and starts reporting under it.
func (r *reporter) Begin(ctx context.Context, title string) (*protocol.ProgressToken, error) {
	token := protocol.NewProgressToken(factory.UUID().String())
	if err := r.ideGateway.WorkDoneProgressCreate(ctx, &protocol.WorkDoneProgressCreateParams{Token: *token}); err != nil {
		return nil, fmt.Errorf("creating progress token: %w", err)
	}

	if err := r.ideGateway.Progress(ctx, &protocol.ProgressParams{
		Token: *token,
		Value: &protocol.WorkDoneProgressBegin{
			Kind:  protocol.WorkDoneProgressKindBegin,
			Title: title,
		},
	}); err != nil {
		return nil, fmt.Errorf("starting progress: %w", err)
	}
	return token, nil
}

// Report sends a progress update under an existing token.
func (r *reporter) Report(ctx context.Context, token *protocol.ProgressToken, message string) error {
	if token == nil {
		return fmt.Errorf("reporting progress without a token")
	}
	return r.ideGateway.Progress(ctx, &protocol.ProgressParams{
		Token: *token,
		Value: &protocol.WorkDoneProgressReport{
			Kind:    protocol.WorkDoneProgressKindReport,
			Message: message,
		},
	})
}

// End closes out reporting under a token.
func (r *reporter) End(ctx context.Context, token *protocol.ProgressToken, message string) error {
	if token == nil {
		return fmt.Errorf("ending progress without a token")
	}
	return r.ideGateway.Progress(ctx, &protocol.ProgressParams{
		Token: *token,
		Value: &protocol.WorkDoneProgressEnd{
			Kind:    protocol.WorkDoneProgressKindEnd,
			Message: message,
		},
	})
}
