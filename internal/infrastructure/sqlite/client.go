package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/fastygo/users/internal/config"
)

const driverName = "sqlite"

// Connector opens a fresh SQLite handle per call. It is the only holder of the
// storage location and is passed explicitly to whoever needs the database.
type Connector struct {
	path        string
	busyTimeout time.Duration
}

// NewConnector validates the configured path; it does not touch the file.
func NewConnector(cfg config.DatabaseConfig) (*Connector, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, errors.New("sqlite: database path is required")
	}
	busy := cfg.BusyTimeout
	if busy <= 0 {
		busy = 5 * time.Second
	}
	return &Connector{
		path:        filepath.Clean(cfg.Path),
		busyTimeout: busy,
	}, nil
}

// Path returns the database file location.
func (c *Connector) Path() string {
	return c.path
}

// DSN returns the modernc.org/sqlite data source name including pragmas.
func (c *Connector) DSN() string {
	return fmt.Sprintf("%s?_pragma=busy_timeout(%d)", c.path, c.busyTimeout.Milliseconds())
}

// Open returns a verified handle limited to a single connection.
// Callers own the handle and must Close it.
func (c *Connector) Open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open(driverName, c.DSN())
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	return db, nil
}
