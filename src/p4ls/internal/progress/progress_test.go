package progress

import (
	"context"
	"errors"
	"testing"

	"github.com/p4lang/p4ls/src/p4ls/gateway/ide-client/ideclientmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/protocol"
	"go.uber.org/mock/gomock"
)

func TestBegin(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ideGateway := ideclientmock.NewMockGateway(ctrl)
		ideGateway.EXPECT().WorkDoneProgressCreate(ctx, gomock.Any()).Return(nil)
		ideGateway.EXPECT().Progress(ctx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, params *protocol.ProgressParams) error {
				begin := params.Value.(*protocol.WorkDoneProgressBegin)
				assert.Equal(t, "Indexing", begin.Title)
				return nil
			})

		token, err := New(ideGateway).Begin(ctx, "Indexing")
		require.NoError(t, err)
		assert.NotNil(t, token)
	})

	t.Run("token creation rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ideGateway := ideclientmock.NewMockGateway(ctrl)
		ideGateway.EXPECT().WorkDoneProgressCreate(ctx, gomock.Any()).Return(errors.New("sample"))

		token, err := New(ideGateway).Begin(ctx, "Indexing")
		assert.Error(t, err)
		assert.Nil(t, token)
	})

	t.Run("begin notification fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ideGateway := ideclientmock.NewMockGateway(ctrl)
		ideGateway.EXPECT().WorkDoneProgressCreate(ctx, gomock.Any()).Return(nil)
		ideGateway.EXPECT().Progress(ctx, gomock.Any()).Return(errors.New("sample"))

		_, err := New(ideGateway).Begin(ctx, "Indexing")
		assert.Error(t, err)
	})
}

func TestReport(t *testing.T) {
	ctx := context.Background()
	token := protocol.NewProgressToken("sample-token")

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ideGateway := ideclientmock.NewMockGateway(ctrl)
		ideGateway.EXPECT().Progress(ctx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, params *protocol.ProgressParams) error {
				report := params.Value.(*protocol.WorkDoneProgressReport)
				assert.Equal(t, "file:///workspace", report.Message)
				return nil
			})

		err := New(ideGateway).Report(ctx, token, "file:///workspace")
		assert.NoError(t, err)
	})

	t.Run("nil token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ideGateway := ideclientmock.NewMockGateway(ctrl)

		err := New(ideGateway).Report(ctx, nil, "file:///workspace")
		assert.Error(t, err)
	})
}

func TestEnd(t *testing.T) {
	ctx := context.Background()
	token := protocol.NewProgressToken("sample-token")

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ideGateway := ideclientmock.NewMockGateway(ctrl)
		ideGateway.EXPECT().Progress(ctx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, params *protocol.ProgressParams) error {
				_, ok := params.Value.(*protocol.WorkDoneProgressEnd)
				assert.True(t, ok)
				return nil
			})

		err := New(ideGateway).End(ctx, token, "")
		assert.NoError(t, err)
	})

	t.Run("nil token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ideGateway := ideclientmock.NewMockGateway(ctrl)

		err := New(ideGateway).End(ctx, nil, "")
		assert.Error(t, err)
	})
}
