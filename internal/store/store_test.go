package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cordialhq/cordial/internal/config"
)

func TestResolveDSN(t *testing.T) {
	t.Run("URLUsesRawValue", func(t *testing.T) {
		cfg := config.StoreConfig{
			URL:       "libsql://example.turso.io",
			AuthToken: "token123",
		}

		dsn, err := resolveDSN(cfg)
		require.NoError(t, err)
		require.Equal(t, "libsql://example.turso.io?authToken=token123", dsn)
	})

	t.Run("URLWithExistingQuery", func(t *testing.T) {
		cfg := config.StoreConfig{
			URL:       "libsql://example.turso.io?foo=bar",
			AuthToken: "token123",
		}

		dsn, err := resolveDSN(cfg)
		require.NoError(t, err)
		require.Equal(t, "libsql://example.turso.io?authToken=token123&foo=bar", dsn)
	})

	t.Run("PathWithFilePrefix", func(t *testing.T) {
		cfg := config.StoreConfig{Path: "file:./cordial.db"}

		dsn, err := resolveDSN(cfg)
		require.NoError(t, err)
		require.Equal(t, "file:./cordial.db", dsn)
	})

	t.Run("BarePathGetsFileScheme", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data", "cordial.db")
		cfg := config.StoreConfig{Path: path}

		dsn, err := resolveDSN(cfg)
		require.NoError(t, err)
		require.Equal(t, "file:"+path, dsn)

		// The parent directory is created so sql.Open can succeed.
		info, err := os.Stat(filepath.Dir(path))
		require.NoError(t, err)
		require.True(t, info.IsDir())
	})

	t.Run("PathMissing", func(t *testing.T) {
		cfg := config.StoreConfig{}

		_, err := resolveDSN(cfg)
		require.Error(t, err)
	})

	t.Run("MemoryPath", func(t *testing.T) {
		cfg := config.StoreConfig{Path: ":memory:"}

		dsn, err := resolveDSN(cfg)
		require.NoError(t, err)
		require.Equal(t, ":memory:", dsn)
	})
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.StoreConfig{Driver: "postgres", Path: ":memory:"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported store driver")
}
