package monitor

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// Opener is satisfied by sqlite.Connector.
type Opener interface {
	Open(ctx context.Context) (*sql.DB, error)
}

// Monitor checks storage on demand; it keeps no connection between checks.
type Monitor struct {
	db      Opener
	timeout time.Duration
	logger  *zap.Logger
}

func New(db Opener, timeout time.Duration, logger *zap.Logger) *Monitor {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		db:      db,
		timeout: timeout,
		logger:  logger,
	}
}

// Check opens the store and verifies the users table answers a query.
func (m *Monitor) Check(ctx context.Context) Status {
	status := Status{LastCheck: time.Now()}
	if err := m.checkSQLite(ctx); err != nil {
		m.logger.Warn("sqlite health check failed", zap.Error(err))
		status.Error = err.Error()
		return status
	}
	status.SQLite = true
	return status
}

func (m *Monitor) checkSQLite(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	db, err := m.db.Open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	var one int
	return db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users)`).Scan(&one)
}
