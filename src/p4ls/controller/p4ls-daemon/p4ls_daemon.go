// Package p4lsdaemon implements the p4ls-daemon business logic.
package p4lsdaemon

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	ideclient "github.com/p4lang/p4ls/src/p4ls/gateway/ide-client"
	"github.com/p4lang/p4ls/src/p4ls/internal/analyzer"
	"github.com/p4lang/p4ls/src/p4ls/internal/fs"
	"github.com/p4lang/p4ls/src/p4ls/internal/workspace"
	"github.com/p4lang/p4ls/src/p4ls/mapper"
	"github.com/p4lang/p4ls/src/p4ls/repository/session"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	_serverName = "P4 Language Server"

	// Configuration keys
	_idleTimeoutMinutesKey = "idleTimeoutMinutes"
)

// Module provides the daemon controller for Fx applications.
var Module = fx.Provide(New)

// Controller orchestrates the business logic for each request.
type Controller interface {
	// LSP lifecycle methods defined per protocol.
	Initialize(ctx context.Context, params *protocol.InitializeParams) (*protocol.InitializeResult, error)
	Initialized(ctx context.Context, params *protocol.InitializedParams) error
	Shutdown(ctx context.Context) error
	Exit(ctx context.Context) error
	SetTrace(ctx context.Context, params *protocol.SetTraceParams) error

	// Document related methods.
	DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error
	DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error
	DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error
	DidSave(ctx context.Context, params *protocol.DidSaveTextDocumentParams) error
	DidChangeWatchedFiles(ctx context.Context, params *protocol.DidChangeWatchedFilesParams) error

	// Codeintel related methods.
	Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error)
	Completion(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error)

	// Custom methods for use within this service.
	RequestFullShutdown(ctx context.Context) error
	InitSession(ctx context.Context, conn *jsonrpc2.Conn) (uuid.UUID, error)
	EndSession(ctx context.Context, uuid uuid.UUID) error
}

// Params are inbound parameters to initialize a new controller.
type Params struct {
	fx.In

	Shutdowner fx.Shutdowner
	Sessions   session.Repository
	IdeGateway ideclient.Gateway
	Logger     *zap.SugaredLogger
	Config     config.Provider
	FS         fs.WorkspaceFS
	Analyzer   analyzer.Analyzer
	Progress   workspace.ProgressReporter
}

type controller struct {
	sessions           session.Repository
	shutdowner         fx.Shutdowner
	fullShutdown       bool
	idleTimer          *time.Timer
	idleTimerMu        sync.Mutex
	idleTimeoutMinutes time.Duration
	logger             *zap.SugaredLogger
	ideGateway         ideclient.Gateway
	fs                 fs.WorkspaceFS
	analyzer           analyzer.Analyzer
	progress           workspace.ProgressReporter
	wg                 sync.WaitGroup
}

// New constructs a new top-level controller for the service.
func New(p Params) (Controller, error) {
	ctx := context.Background()

	var timeoutMinutesRaw int64
	if err := p.Config.Get(_idleTimeoutMinutesKey).Populate(&timeoutMinutesRaw); err != nil || timeoutMinutesRaw == 0 {
		return nil, fmt.Errorf("unable to get idle timeout from config: %w", err)
	}

	c := &controller{
		sessions:   p.Sessions,
		shutdowner: p.Shutdowner,
		logger:     p.Logger,
		ideGateway: p.IdeGateway,
		fs:         p.FS,
		analyzer:   p.Analyzer,
		progress:   p.Progress,

		idleTimeoutMinutes: time.Duration(timeoutMinutesRaw) * time.Minute,
	}
	c.refreshIdleTimer(ctx)

	return c, nil
}

// InitSession creates a new empty session and returns its UUID.
func (c *controller) InitSession(ctx context.Context, conn *jsonrpc2.Conn) (uuid.UUID, error) {
	defer c.refreshIdleTimer(ctx)

	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	session := mapper.UUIDToSession(id, conn)
	if err := c.ideGateway.RegisterClient(ctx, id, conn); err != nil {
		return uuid.Nil, err
	}

	if err := c.sessions.Set(ctx, session); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// EndSession includes any cleanup at the end of the session, during or after the last JSON-RPC request.
func (c *controller) EndSession(ctx context.Context, uuid uuid.UUID) error {
	defer c.refreshIdleTimer(ctx)

	var errs error
	s, err := c.sessions.Get(ctx, uuid)
	if err == nil && s.Workspaces != nil {
		// Stop the session's background workers before forgetting it.
		s.Workspaces.Close()
	} else if err != nil {
		errs = multierr.Append(errs, err)
	}

	if err := c.ideGateway.DeregisterClient(ctx, uuid); err != nil {
		errs = multierr.Append(errs, err)
	}

	return multierr.Append(errs, c.sessions.Delete(ctx, uuid))
}

// RequestFullShutdown will set the controller to treat subsequent Shutdown and
// Exit requests as requests to exit the entire process.
func (c *controller) RequestFullShutdown(ctx context.Context) error {
	c.fullShutdown = true

	return nil
}

// refreshIdleTimer ensures that the service shuts down after a defined inactivity period with no connections.
func (c *controller) refreshIdleTimer(ctx context.Context) error {
	c.idleTimerMu.Lock()
	defer c.idleTimerMu.Unlock()

	// First call initializes new timer and leaves it running prior to first connection.
	if c.idleTimer == nil {
		c.idleTimer = time.NewTimer(c.idleTimeoutMinutes)
		go func() {
			<-c.idleTimer.C
			c.logger.Info("Shutdown signal received.")
			if err := c.shutdowner.Shutdown(); err != nil {
				os.Exit(1)
			}
		}()
		return nil
	}

	// Subsequent calls stop the timer and reset it only if no connections are active.
	currentSessions, err := c.sessions.SessionCount(ctx)
	if err != nil {
		return fmt.Errorf("error resetting timeout: %w", err)
	}

	c.idleTimer.Stop()
	if currentSessions == 0 {
		c.idleTimer.Reset(c.idleTimeoutMinutes)
	}
	return nil
}

// publishDiagnostics sends the current analyzer findings for a document to
// the IDE. Failures are logged; diagnostics delivery is best effort.
func (c *controller) publishDiagnostics(ctx context.Context, docURI protocol.DocumentURI, content string, unit analyzer.FileID) {
	params := &protocol.PublishDiagnosticsParams{
		URI:         docURI,
		Diagnostics: mapper.DiagnosticsToProtocol(content, c.analyzer.Diagnostics(unit)),
	}
	if err := c.ideGateway.PublishDiagnostics(ctx, params); err != nil {
		c.logger.Warnw("publishing diagnostics", "fileUri", docURI, "error", err)
	}
}
