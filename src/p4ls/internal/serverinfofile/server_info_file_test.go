package serverinfofile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/config"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
)

func newConfigProvider(t *testing.T, yaml string) config.Provider {
	t.Helper()
	provider, err := config.NewYAML(config.Source(strings.NewReader(yaml)))
	require.NoError(t, err)
	return provider
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		configYAML string
		wantErr    bool
	}{
		{
			name:       "path configured",
			configYAML: "serverInfoFilePath: /tmp/p4ls-test-info.json\n",
		},
		{
			name:       "path not configured disables the file",
			configYAML: "logging:\n  level: info\n",
		},
		{
			name:       "incorrectly formatted value",
			configYAML: "serverInfoFilePath:\n  nested: value\n",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(Params{
				Lifecycle: fxtest.NewLifecycle(t),
				Config:    newConfigProvider(t, tt.configYAML),
				Logger:    zap.NewNop().Sugar(),
			})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOnStop(t *testing.T) {
	t.Run("file removed", func(t *testing.T) {
		tempFile, err := os.CreateTemp("", "test")
		require.NoError(t, err)
		defer os.Remove(tempFile.Name())

		m := module{
			logger:   zap.NewNop().Sugar(),
			infofile: tempFile.Name(),
		}

		_, err = os.Stat(tempFile.Name())
		assert.NoError(t, err)

		// Ensure no error return and file no longer present on disk.
		err = m.OnStop(context.Background())
		assert.NoError(t, err)
		_, err = os.Stat(tempFile.Name())
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("file removal error", func(t *testing.T) {
		m := module{
			logger:   zap.NewNop().Sugar(),
			infofile: filepath.Join(t.TempDir(), "does-not-exist.json"),
		}
		assert.Error(t, m.OnStop(context.Background()))
	})
}

func TestUpdateField(t *testing.T) {
	t.Run("multiple successful updates", func(t *testing.T) {
		infofile := filepath.Join(t.TempDir(), "info.json")

		m := module{
			infofile:     infofile,
			logger:       zap.NewNop().Sugar(),
			fileContents: make(map[string]string),
		}

		require.NoError(t, m.UpdateField("lsp-address", "127.0.0.1:29177"))
		require.NoError(t, m.UpdateField("version", "dev"))

		data, err := os.ReadFile(infofile)
		require.NoError(t, err)
		var contents map[string]string
		require.NoError(t, json.Unmarshal(data, &contents))
		assert.Equal(t, "127.0.0.1:29177", contents["lsp-address"])
		assert.Equal(t, "dev", contents["version"])
	})

	t.Run("updates without a configured path are discarded", func(t *testing.T) {
		m := module{
			logger:       zap.NewNop().Sugar(),
			fileContents: make(map[string]string),
		}
		assert.NoError(t, m.UpdateField("lsp-address", "127.0.0.1:29177"))
		assert.Empty(t, m.fileContents)
	})

	t.Run("write failure", func(t *testing.T) {
		m := module{
			infofile:     filepath.Join(t.TempDir(), "missing-dir", "info.json"),
			logger:       zap.NewNop().Sugar(),
			fileContents: make(map[string]string),
		}
		assert.Error(t, m.UpdateField("lsp-address", "127.0.0.1:29177"))
	})
}

func TestNewRecordsPID(t *testing.T) {
	infofile := filepath.Join(t.TempDir(), "info.json")
	provider := newConfigProvider(t, "serverInfoFilePath: "+infofile+"\n")

	sif, err := New(Params{
		Lifecycle: fxtest.NewLifecycle(t),
		Config:    provider,
		Logger:    zap.NewNop().Sugar(),
	})
	require.NoError(t, err)

	require.NoError(t, sif.UpdateField("lsp-address", "127.0.0.1:29177"))

	data, err := os.ReadFile(infofile)
	require.NoError(t, err)
	var contents map[string]string
	require.NoError(t, json.Unmarshal(data, &contents))
	assert.NotEmpty(t, contents["pid"])
}
