package workspace

import (
	"context"
	"testing"

	"github.com/p4lang/p4ls/src/p4ls/internal/analyzer"
	"github.com/p4lang/p4ls/src/p4ls/internal/fs/fsmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeProgress struct {
	begun    int
	reports  []string
	ended    int
	beginErr error
}

func (f *fakeProgress) Begin(ctx context.Context, title string) (*protocol.ProgressToken, error) {
	f.begun++
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	token := protocol.NewProgressToken("test-token")
	return token, nil
}

func (f *fakeProgress) Report(ctx context.Context, token *protocol.ProgressToken, message string) error {
	f.reports = append(f.reports, message)
	return nil
}

func (f *fakeProgress) End(ctx context.Context, token *protocol.ProgressToken, message string) error {
	f.ended++
	return nil
}

func newTestSet(t *testing.T, folders []protocol.WorkspaceFolder) (*Set, *fsmock.MockWorkspaceFS) {
	t.Helper()
	ctrl := gomock.NewController(t)
	fsMock := fsmock.NewMockWorkspaceFS(ctrl)

	s := NewSet(fsMock, analyzer.New(), zap.NewNop().Sugar(), folders)
	t.Cleanup(s.Close)
	return s, fsMock
}

func TestSetRoutingTotality(t *testing.T) {
	folders := []protocol.WorkspaceFolder{
		{Name: "f1", URI: "file:///repos/one"},
		{Name: "f2", URI: "file:///repos/two"},
	}
	s, fsMock := newTestSet(t, folders)
	fsMock.EXPECT().FileContents(gomock.Any(), gomock.Any()).Return("", assert.AnError).AnyTimes()

	assert.True(t, s.HasFolders())

	tests := []struct {
		name   string
		docURI uri.URI
		folder string
	}{
		{name: "descendant of first folder", docURI: "file:///repos/one/router.p4", folder: "file:///repos/one"},
		{name: "nested descendant", docURI: "file:///repos/two/sub/dir/switch.p4", folder: "file:///repos/two"},
		{name: "folder root itself", docURI: "file:///repos/one", folder: "file:///repos/one"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := s.Document(tt.docURI)
			require.NotNil(t, doc)

			// The same document must come back from the owning workspace.
			assert.Same(t, doc, s.workspaces[uri.URI(tt.folder)].Document(tt.docURI))
		})
	}
}

func TestSetRoutingMissIsFatal(t *testing.T) {
	folders := []protocol.WorkspaceFolder{
		{Name: "f1", URI: "file:///repos/one"},
	}
	s, _ := newTestSet(t, folders)

	assert.Panics(t, func() {
		s.Document("file:///elsewhere/loose.p4")
	})
}

func TestSetSiblingPrefixIsNotDescendant(t *testing.T) {
	folders := []protocol.WorkspaceFolder{
		{Name: "f1", URI: "file:///repos/one"},
	}
	s, _ := newTestSet(t, folders)

	// "one-more" shares a string prefix with "one" but is not a descendant.
	assert.Panics(t, func() {
		s.Document("file:///repos/one-more/file.p4")
	})
}

func TestSetCatchAll(t *testing.T) {
	s, fsMock := newTestSet(t, nil)
	fsMock.EXPECT().FileContents(gomock.Any(), gomock.Any()).Return("", assert.AnError).AnyTimes()

	assert.False(t, s.HasFolders())

	// Every URI resolves to the catch-all workspace.
	doc := s.Document("file:///anywhere/at/all.p4")
	assert.NotNil(t, doc)
}

func TestSetIndexWithoutFoldersIsNoOp(t *testing.T) {
	s, fsMock := newTestSet(t, nil)

	// No enumeration, no progress, no queue activity.
	progress := &fakeProgress{}
	require.NoError(t, s.Index(context.Background(), progress))
	assert.Zero(t, progress.begun)

	fsMock.EXPECT().FileContents(gomock.Any(), gomock.Any()).Times(0)
}

func TestSetIndexReportsPerWorkspaceProgress(t *testing.T) {
	folders := []protocol.WorkspaceFolder{
		{Name: "f1", URI: "file:///repos/one"},
		{Name: "f2", URI: "file:///repos/two"},
	}
	s, fsMock := newTestSet(t, folders)
	fsMock.EXPECT().EnumerateFolder(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)

	progress := &fakeProgress{}
	require.NoError(t, s.Index(context.Background(), progress))

	assert.Equal(t, 1, progress.begun)
	assert.Equal(t, 1, progress.ended)
	assert.Len(t, progress.reports, 2)
}

func TestSetIndexProgressFailureIsNonFatal(t *testing.T) {
	folders := []protocol.WorkspaceFolder{
		{Name: "f1", URI: "file:///repos/one"},
	}
	s, fsMock := newTestSet(t, folders)
	fsMock.EXPECT().EnumerateFolder(gomock.Any(), gomock.Any()).Return(nil, nil)

	progress := &fakeProgress{beginErr: assert.AnError}
	assert.NoError(t, s.Index(context.Background(), progress))
}
