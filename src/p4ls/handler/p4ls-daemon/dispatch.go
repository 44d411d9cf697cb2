package p4lsdaemon

import (
	"context"

	controller "github.com/p4lang/p4ls/src/p4ls/controller/p4ls-daemon"
	"github.com/p4lang/p4ls/src/p4ls/internal/fsm"
	"go.lsp.dev/protocol"
)

// MethodRequestFullShutdown directs the server to shut down on the next JSON-RPC 'exit' method call.
const MethodRequestFullShutdown = "p4ls/requestFullShutdown"

// newSessionMachine builds the lifecycle state machine for one connection.
// Each state registers exactly the methods the protocol allows there;
// anything else is rejected with the state left unchanged.
func newSessionMachine(ctrl controller.Controller) *fsm.Machine {
	initialize := func(ctx context.Context, state fsm.State, params *protocol.InitializeParams) (*protocol.InitializeResult, error) {
		return ctrl.Initialize(ctx, params)
	}
	exit := func(ctx context.Context, state fsm.State, params *struct{}) error {
		return ctrl.Exit(ctx)
	}
	requestFullShutdown := func(ctx context.Context, state fsm.State, params *struct{}) (interface{}, error) {
		return nil, ctrl.RequestFullShutdown(ctx)
	}

	uninitialized := fsm.NewDispatcher(fsm.StateActiveUninitialized)
	fsm.Request(uninitialized, protocol.MethodInitialize, initialize, fsm.WithTransition(fsm.StateInitializing))
	fsm.Request(uninitialized, MethodRequestFullShutdown, requestFullShutdown)
	fsm.Notification(uninitialized, protocol.MethodExit, exit, fsm.WithTransition(fsm.StateStopped))

	initializing := fsm.NewDispatcher(fsm.StateInitializing)
	// A repeated initialize is answered again without changing state.
	fsm.Request(initializing, protocol.MethodInitialize, initialize)
	fsm.Notification(initializing, protocol.MethodInitialized, func(ctx context.Context, state fsm.State, params *protocol.InitializedParams) error {
		return ctrl.Initialized(ctx, params)
	}, fsm.WithTransition(fsm.StateActiveInitialized))
	fsm.Notification(initializing, protocol.MethodExit, exit, fsm.WithTransition(fsm.StateStopped))

	active := fsm.NewDispatcher(fsm.StateActiveInitialized)
	fsm.Request(active, protocol.MethodShutdown, func(ctx context.Context, state fsm.State, params *struct{}) (interface{}, error) {
		return nil, ctrl.Shutdown(ctx)
	}, fsm.WithTransition(fsm.StateShuttingDown))
	fsm.Request(active, MethodRequestFullShutdown, requestFullShutdown)
	fsm.Notification(active, protocol.MethodExit, exit, fsm.WithTransition(fsm.StateStopped))
	fsm.Notification(active, protocol.MethodSetTrace, func(ctx context.Context, state fsm.State, params *protocol.SetTraceParams) error {
		return ctrl.SetTrace(ctx, params)
	})

	fsm.Notification(active, protocol.MethodTextDocumentDidOpen, func(ctx context.Context, state fsm.State, params *protocol.DidOpenTextDocumentParams) error {
		return ctrl.DidOpen(ctx, params)
	})
	fsm.Notification(active, protocol.MethodTextDocumentDidChange, func(ctx context.Context, state fsm.State, params *protocol.DidChangeTextDocumentParams) error {
		return ctrl.DidChange(ctx, params)
	})
	fsm.Notification(active, protocol.MethodTextDocumentDidClose, func(ctx context.Context, state fsm.State, params *protocol.DidCloseTextDocumentParams) error {
		return ctrl.DidClose(ctx, params)
	})
	fsm.Notification(active, protocol.MethodTextDocumentDidSave, func(ctx context.Context, state fsm.State, params *protocol.DidSaveTextDocumentParams) error {
		return ctrl.DidSave(ctx, params)
	})
	fsm.Notification(active, protocol.MethodWorkspaceDidChangeWatchedFiles, func(ctx context.Context, state fsm.State, params *protocol.DidChangeWatchedFilesParams) error {
		return ctrl.DidChangeWatchedFiles(ctx, params)
	})

	fsm.Request(active, protocol.MethodTextDocumentHover, func(ctx context.Context, state fsm.State, params *protocol.HoverParams) (*protocol.Hover, error) {
		return ctrl.Hover(ctx, params)
	})
	fsm.Request(active, protocol.MethodTextDocumentCompletion, func(ctx context.Context, state fsm.State, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
		return ctrl.Completion(ctx, params)
	})

	shuttingDown := fsm.NewDispatcher(fsm.StateShuttingDown)
	fsm.Notification(shuttingDown, protocol.MethodExit, exit, fsm.WithTransition(fsm.StateStopped))

	return fsm.NewMachine(uninitialized, initializing, active, shuttingDown)
}
