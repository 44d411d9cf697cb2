package p4lsdaemon

import (
	"context"
	"fmt"

	"github.com/p4lang/p4ls/src/p4ls/entity"
	"github.com/p4lang/p4ls/src/p4ls/internal/workspace"
	"go.lsp.dev/protocol"
)

// Initialize will store information about a new connection and perform any setup needed.
func (c *controller) Initialize(ctx context.Context, params *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting session from context: %w", err)
	}

	s.InitializeParams = params
	s.TraceValue = params.Trace
	s.Workspaces = workspace.NewSet(c.fs, c.analyzer, c.logger, params.WorkspaceFolders)

	if err := c.sessions.Set(ctx, s); err != nil {
		return nil, fmt.Errorf("setting updated session state: %w", err)
	}

	return &protocol.InitializeResult{
		ServerInfo: &protocol.ServerInfo{
			Name: _serverName,
		},
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindIncremental,
				Save:      &protocol.SaveOptions{},
			},
			HoverProvider:      true,
			CompletionProvider: &protocol.CompletionOptions{},
		},
	}, nil
}

// Initialized handles any actions that need to occur immediately after initialization.
func (c *controller) Initialized(ctx context.Context, params *protocol.InitializedParams) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return fmt.Errorf("getting session from context: %w", err)
	}

	c.ideGateway.ShowMessage(ctx, &protocol.ShowMessageParams{
		Message: fmt.Sprintf("Connection to %s is now initialized.", _serverName),
		Type:    protocol.MessageTypeInfo,
	})

	// Workspace indexing runs beyond the lifetime of this request, so it
	// gets a fresh context carrying the same session.
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		indexCtx := context.WithValue(context.Background(), entity.SessionContextKey, s.UUID)
		if err := s.Workspaces.Index(indexCtx, c.progress); err != nil {
			c.logger.Errorw("workspace indexing failed", "error", err)
		}
	}()

	return nil
}

// Shutdown is sent just before Exit to indicate that the session will exit.
func (c *controller) Shutdown(ctx context.Context) error {
	return nil
}

// Exit will be used to either clean up from an individual connection, or shutdown the whole server.
func (c *controller) Exit(ctx context.Context) error {
	if c.fullShutdown == true {
		// Zero out the timer to trigger immediate shutdown.
		c.idleTimerMu.Lock()
		c.idleTimer.Reset(0)
		c.idleTimerMu.Unlock()
		return nil
	}

	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return fmt.Errorf("error during session exit: %w", err)
	}

	return c.EndSession(ctx, s.UUID)
}

// SetTrace updates the session's trace value, which controls how verbose the
// server's trace notifications to this client should be.
func (c *controller) SetTrace(ctx context.Context, params *protocol.SetTraceParams) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return fmt.Errorf("getting session from context: %w", err)
	}

	s.TraceValue = params.Value
	if err := c.sessions.Set(ctx, s); err != nil {
		return fmt.Errorf("setting updated session state: %w", err)
	}
	return nil
}
