package p4lsdaemon

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/p4lang/p4ls/src/p4ls/factory"
	"github.com/p4lang/p4ls/src/p4ls/internal/fsm"
	"go.lsp.dev/protocol"
	"go.uber.org/mock/gomock"
)

func TestSessionLifecycleFlow(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	r, c := newTestRouter(t, ctrl)

	c.EXPECT().Initialize(gomock.Any(), gomock.Any()).Return(&protocol.InitializeResult{}, nil)
	c.EXPECT().Initialized(gomock.Any(), gomock.Any()).Return(nil)
	c.EXPECT().DidOpen(gomock.Any(), gomock.Any()).Return(nil)
	c.EXPECT().Hover(gomock.Any(), gomock.Any()).Return(&protocol.Hover{}, nil)
	c.EXPECT().Shutdown(gomock.Any()).Return(nil)
	c.EXPECT().Exit(gomock.Any()).Return(nil)

	steps := []struct {
		method string
		params interface{}
		want   fsm.State
	}{
		{protocol.MethodInitialize, protocol.InitializeParams{}, fsm.StateInitializing},
		{protocol.MethodInitialized, protocol.InitializedParams{}, fsm.StateActiveInitialized},
		{protocol.MethodTextDocumentDidOpen, protocol.DidOpenTextDocumentParams{}, fsm.StateActiveInitialized},
		{protocol.MethodTextDocumentHover, protocol.HoverParams{}, fsm.StateActiveInitialized},
		{protocol.MethodShutdown, nil, fsm.StateShuttingDown},
		{protocol.MethodExit, nil, fsm.StateStopped},
	}

	for _, step := range steps {
		err := r.HandleReq(ctx, newMockReplier(), factory.JSONRPCRequest(step.method, step.params))
		assert.NoError(t, err, "method %s", step.method)
		assert.Equal(t, step.want, r.machine.State(), "state after %s", step.method)
	}
	assert.False(t, r.machine.IsActive())
}

func TestRepeatedInitializeKeepsState(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	r, c := newTestRouter(t, ctrl)

	c.EXPECT().Initialize(gomock.Any(), gomock.Any()).Return(&protocol.InitializeResult{}, nil).Times(2)
	c.EXPECT().Initialized(gomock.Any(), gomock.Any()).Return(nil)

	assert.NoError(t, r.HandleReq(ctx, newMockReplier(), factory.JSONRPCRequest(protocol.MethodInitialize, protocol.InitializeParams{})))
	assert.Equal(t, fsm.StateInitializing, r.machine.State())

	assert.NoError(t, r.HandleReq(ctx, newMockReplier(), factory.JSONRPCRequest(protocol.MethodInitialize, protocol.InitializeParams{})))
	assert.Equal(t, fsm.StateInitializing, r.machine.State())

	assert.NoError(t, r.HandleReq(ctx, newMockReplier(), factory.JSONRPCNotification(protocol.MethodInitialized, protocol.InitializedParams{})))
	assert.Equal(t, fsm.StateActiveInitialized, r.machine.State())

	// A second initialized is not applicable and leaves the state alone.
	err := r.HandleReq(ctx, newMockReplier(), factory.JSONRPCNotification(protocol.MethodInitialized, protocol.InitializedParams{}))
	assert.Error(t, err)
	assert.Equal(t, fsm.StateActiveInitialized, r.machine.State())
}

func TestHandlerErrorBlocksTransition(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	r, c := newTestRouter(t, ctrl)

	c.EXPECT().Initialize(gomock.Any(), gomock.Any()).Return(nil, assert.AnError)

	err := r.HandleReq(ctx, newMockReplier(), factory.JSONRPCRequest(protocol.MethodInitialize, protocol.InitializeParams{}))
	assert.Error(t, err)
	assert.Equal(t, fsm.StateActiveUninitialized, r.machine.State())
}

func TestShuttingDownRejectsDocumentMethods(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	r, c := newTestRouter(t, ctrl)

	c.EXPECT().Initialize(gomock.Any(), gomock.Any()).Return(&protocol.InitializeResult{}, nil)
	c.EXPECT().Initialized(gomock.Any(), gomock.Any()).Return(nil)
	c.EXPECT().Shutdown(gomock.Any()).Return(nil)

	for _, method := range []string{protocol.MethodInitialize, protocol.MethodInitialized, protocol.MethodShutdown} {
		assert.NoError(t, r.HandleReq(ctx, newMockReplier(), factory.JSONRPCRequest(method, nil)))
	}

	err := r.HandleReq(ctx, newMockReplier(), factory.JSONRPCRequest(protocol.MethodTextDocumentDidOpen, protocol.DidOpenTextDocumentParams{}))
	assert.Error(t, err)
	assert.Equal(t, fsm.StateShuttingDown, r.machine.State())
}

func TestRequestFullShutdown(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	r, c := newTestRouter(t, ctrl)

	c.EXPECT().RequestFullShutdown(gomock.Any()).Return(nil)
	c.EXPECT().Exit(gomock.Any()).Return(nil)

	assert.NoError(t, r.HandleReq(ctx, newMockReplier(), factory.JSONRPCRequest(MethodRequestFullShutdown, nil)))
	assert.Equal(t, fsm.StateActiveUninitialized, r.machine.State())

	assert.NoError(t, r.HandleReq(ctx, newMockReplier(), factory.JSONRPCNotification(protocol.MethodExit, nil)))
	assert.Equal(t, fsm.StateStopped, r.machine.State())
}

func TestNotificationMethodsReachController(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	r, c := newTestRouter(t, ctrl)

	c.EXPECT().Initialize(gomock.Any(), gomock.Any()).Return(&protocol.InitializeResult{}, nil)
	c.EXPECT().Initialized(gomock.Any(), gomock.Any()).Return(nil)
	assert.NoError(t, r.HandleReq(ctx, newMockReplier(), factory.JSONRPCRequest(protocol.MethodInitialize, protocol.InitializeParams{})))
	assert.NoError(t, r.HandleReq(ctx, newMockReplier(), factory.JSONRPCNotification(protocol.MethodInitialized, protocol.InitializedParams{})))

	c.EXPECT().DidChange(gomock.Any(), gomock.Any()).Return(nil)
	c.EXPECT().DidClose(gomock.Any(), gomock.Any()).Return(nil)
	c.EXPECT().DidSave(gomock.Any(), gomock.Any()).Return(nil)
	c.EXPECT().DidChangeWatchedFiles(gomock.Any(), gomock.Any()).Return(nil)
	c.EXPECT().SetTrace(gomock.Any(), gomock.Any()).Return(nil)
	c.EXPECT().Completion(gomock.Any(), gomock.Any()).Return(&protocol.CompletionList{}, nil)

	notifications := []struct {
		method string
		params interface{}
	}{
		{protocol.MethodTextDocumentDidChange, protocol.DidChangeTextDocumentParams{}},
		{protocol.MethodTextDocumentDidClose, protocol.DidCloseTextDocumentParams{}},
		{protocol.MethodTextDocumentDidSave, protocol.DidSaveTextDocumentParams{}},
		{protocol.MethodWorkspaceDidChangeWatchedFiles, protocol.DidChangeWatchedFilesParams{}},
		{protocol.MethodSetTrace, protocol.SetTraceParams{Value: protocol.TraceOff}},
	}
	for _, n := range notifications {
		assert.NoError(t, r.HandleReq(ctx, newMockReplier(), factory.JSONRPCNotification(n.method, n.params)))
	}

	assert.NoError(t, r.HandleReq(ctx, newMockReplier(), factory.JSONRPCRequest(protocol.MethodTextDocumentCompletion, protocol.CompletionParams{})))
}
