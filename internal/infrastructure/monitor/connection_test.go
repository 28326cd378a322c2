package monitor

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fastygo/users/internal/infrastructure/sqlite/sqlitetest"
)

type openerFunc func(ctx context.Context) (*sql.DB, error)

func (f openerFunc) Open(ctx context.Context) (*sql.DB, error) { return f(ctx) }

func TestCheck_HealthyOnEmptyStore(t *testing.T) {
	m := New(sqlitetest.NewConnector(t), time.Second, nil)

	status := m.Check(context.Background())
	assert.True(t, status.SQLite)
	assert.Empty(t, status.Error)
	assert.False(t, status.LastCheck.IsZero())
}

func TestCheck_UnhealthyWhenOpenFails(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	m := New(openerFunc(func(context.Context) (*sql.DB, error) {
		return nil, errors.New("unable to open database file")
	}), 0, zap.New(core))

	status := m.Check(context.Background())
	assert.False(t, status.SQLite)
	assert.Equal(t, "unable to open database file", status.Error)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "sqlite health check failed", logs.All()[0].Message)
}
