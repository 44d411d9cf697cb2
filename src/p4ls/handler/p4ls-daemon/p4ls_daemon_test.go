package p4lsdaemon

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	tally "github.com/uber-go/tally/v4"
	"github.com/p4lang/p4ls/src/p4ls/controller/p4ls-daemon/p4lsdaemonmock"
	"github.com/p4lang/p4ls/src/p4ls/factory"
	"github.com/p4lang/p4ls/src/p4ls/internal/jsonrpc2mock"
	"github.com/p4lang/p4ls/src/p4ls/internal/jsonrpcfx"
	"github.com/p4lang/p4ls/src/p4ls/mapper"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNew(t *testing.T) {
	t.Run("registration success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		jsonRPCMock := jsonrpcfx.NewMockJSONRPCModule(ctrl)
		jsonRPCMock.EXPECT().RegisterConnectionManager(gomock.Any()).Return(nil)

		testScope := tally.NewTestScope("testing", make(map[string]string, 0))

		c := p4lsdaemonmock.NewMockController(ctrl)
		mgr, err := New(c, jsonRPCMock, testScope)
		assert.NoError(t, err)
		assert.NotNil(t, mgr)
	})

	t.Run("registration failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		jsonRPCMock := jsonrpcfx.NewMockJSONRPCModule(ctrl)
		jsonRPCMock.EXPECT().RegisterConnectionManager(gomock.Any()).Return(errors.New("already set"))

		testScope := tally.NewTestScope("testing", make(map[string]string, 0))

		c := p4lsdaemonmock.NewMockController(ctrl)
		_, err := New(c, jsonRPCMock, testScope)
		assert.Error(t, err)
	})
}

func TestNewConnection(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	c := p4lsdaemonmock.NewMockController(ctrl)
	testScope := tally.NewTestScope("testing", make(map[string]string, 0))

	mgr := jsonRPCConnectionManager{
		stats: testScope,
		ctrl:  c,
	}

	mockConn := jsonrpc2mock.NewMockConn(ctrl)
	var conn jsonrpc2.Conn = mockConn

	t.Run("create success", func(t *testing.T) {
		c.EXPECT().InitSession(gomock.Any(), gomock.Any()).Return(factory.UUID(), nil)
		router, err := mgr.NewConnection(ctx, &conn)
		assert.IsType(t, &jsonRPCRouter{}, router)
		assert.NoError(t, err)
	})

	t.Run("create failure", func(t *testing.T) {
		c.EXPECT().InitSession(gomock.Any(), gomock.Any()).Return(uuid.Nil, errors.New("error"))
		_, err := mgr.NewConnection(ctx, &conn)
		assert.Error(t, err)
	})
}

func TestRemoveConnection(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	c := p4lsdaemonmock.NewMockController(ctrl)
	id := factory.UUID()
	c.EXPECT().EndSession(gomock.Any(), id).DoAndReturn(func(ctx context.Context, id uuid.UUID) error {
		resultID, err := mapper.ContextToSessionUUID(ctx)
		assert.NoError(t, err)
		assert.Equal(t, id, resultID)
		return nil
	})

	mgr := jsonRPCConnectionManager{
		ctrl: c,
	}

	assert.NoError(t, mgr.RemoveConnection(ctx, id))
}

func newMockReplier() jsonrpc2.Replier {
	return func(ctx context.Context, result interface{}, err error) error {
		return err
	}
}
