package p4lsdaemon

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/p4lang/p4ls/src/p4ls/entity"
	"github.com/p4lang/p4ls/src/p4ls/factory"
	"github.com/p4lang/p4ls/src/p4ls/internal/analyzer"
	"github.com/p4lang/p4ls/src/p4ls/internal/fxmock"
	"github.com/p4lang/p4ls/src/p4ls/gateway/ide-client/ideclientmock"
	"github.com/p4lang/p4ls/src/p4ls/repository/session/repositorymock"
	"go.lsp.dev/protocol"
	"go.uber.org/config"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type sampleConfig map[string]interface{}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockShutdowner := fxmock.NewMockShutdowner(ctrl)

	s := &entity.Session{
		UUID: factory.UUID(),
	}
	ctx := context.WithValue(context.Background(), entity.SessionContextKey, s.UUID)

	sessionRepository := repositorymock.NewMockRepository(ctrl)
	sessionRepository.EXPECT().GetFromContext(gomock.Any()).Return(s, nil).AnyTimes()

	mockParams := Params{
		Shutdowner: mockShutdowner,
		Logger:     zap.NewNop().Sugar(),
		Sessions:   sessionRepository,
	}

	t.Run("config includes timeout", func(t *testing.T) {
		mockConfig, _ := config.NewStaticProvider(sampleConfig{
			_idleTimeoutMinutesKey: 5,
		})
		mockParams.Config = mockConfig

		assert.NotPanics(t, func() {
			mockShutdowner.EXPECT().Shutdown().Return(nil)
			c, _ := New(mockParams)
			c.RequestFullShutdown(ctx)
			c.Exit(ctx)

			// Small delay to allow shutdown goroutine to complete.
			time.Sleep(100 * time.Millisecond)
		})
	})

	t.Run("config missing timeout", func(t *testing.T) {
		mockConfig, _ := config.NewStaticProvider(sampleConfig{})
		mockParams.Config = mockConfig

		_, err := New(mockParams)
		assert.Error(t, err)
	})
}

func TestPublishDiagnostics(t *testing.T) {
	ctrl := gomock.NewController(t)

	a := analyzer.New()
	unit := a.FileID("file:///workspace/sample.p4")
	a.Update(unit, "header h {\n  bit<8 f;\n}\n")

	t.Run("diagnostics delivered", func(t *testing.T) {
		mockIdeGateway := ideclientmock.NewMockGateway(ctrl)
		mockIdeGateway.EXPECT().PublishDiagnostics(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, params *protocol.PublishDiagnosticsParams) error {
				assert.Equal(t, protocol.DocumentURI("file:///workspace/sample.p4"), params.URI)
				return nil
			})

		c := controller{
			logger:     zap.NewNop().Sugar(),
			analyzer:   a,
			ideGateway: mockIdeGateway,
		}
		c.publishDiagnostics(context.Background(), "file:///workspace/sample.p4", "header h {\n  bit<8 f;\n}\n", unit)
	})

	t.Run("gateway failure is not fatal", func(t *testing.T) {
		mockIdeGateway := ideclientmock.NewMockGateway(ctrl)
		mockIdeGateway.EXPECT().PublishDiagnostics(gomock.Any(), gomock.Any()).Return(assert.AnError)

		c := controller{
			logger:     zap.NewNop().Sugar(),
			analyzer:   a,
			ideGateway: mockIdeGateway,
		}
		assert.NotPanics(t, func() {
			c.publishDiagnostics(context.Background(), "file:///workspace/sample.p4", "header h {\n  bit<8 f;\n}\n", unit)
		})
	})
}
