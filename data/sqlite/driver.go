// Package sqlite provides a SQLite driver for posts/data.
//
// This driver uses mattn/go-sqlite3 (github.com/mattn/go-sqlite3) as the underlying
// database/sql driver with CGO. It registers itself automatically when imported:
//
//	import _ "github.com/ncobase/posts/data/sqlite"
//
// Example connection strings:
//
//	"file:posts.db?cache=shared&mode=rwc&_journal_mode=WAL"
//	"posts.db"
//	"file::memory:?cache=shared"
package sqlite

import (
	"context"

	"github.com/ncobase/posts/data"
	"github.com/ncobase/posts/data/config"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// driver implements data.DatabaseDriver for SQLite.
type driver struct{}

// Name returns the driver identifier used in configuration files.
func (d *driver) Name() string {
	return "sqlite"
}

// Connect opens the database described by a *config.Database. Without an
// explicit pool size a single connection is used, which serialises writers
// and keeps in-memory databases shared.
func (d *driver) Connect(ctx context.Context, cfg any) (any, error) {
	if dbCfg, ok := cfg.(*config.Database); ok && dbCfg.MaxOpenConn <= 0 {
		single := *dbCfg
		single.MaxOpenConn = 1
		cfg = &single
	}
	return data.OpenSQL(ctx, "sqlite3", "sqlite", cfg)
}

// Close terminates the SQLite connection and releases resources.
func (d *driver) Close(conn any) error {
	return data.CloseSQL("sqlite", conn)
}

// Ping verifies the SQLite connection is alive and functional.
func (d *driver) Ping(ctx context.Context, conn any) error {
	return data.PingSQL(ctx, "sqlite", conn)
}

// init registers the SQLite driver with the data package.
func init() {
	data.RegisterDatabaseDriver(&driver{})
}
