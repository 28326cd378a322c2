// Package sqlitetest provisions an isolated, migrated SQLite store per test.
package sqlitetest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fastygo/users/internal/config"
	"github.com/fastygo/users/internal/infrastructure/sqlite"
)

// NewConnector returns a connector to a fresh database file under t.TempDir().
func NewConnector(t testing.TB) *sqlite.Connector {
	t.Helper()

	conn, err := sqlite.NewConnector(config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "users.db"),
	})
	require.NoError(t, err)
	require.NoError(t, sqlite.Migrate(context.Background(), conn))
	return conn
}
