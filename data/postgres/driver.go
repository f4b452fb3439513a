// Package postgres provides a PostgreSQL driver for posts/data backed by the
// pgx database/sql adapter.
//
//	import _ "github.com/ncobase/posts/data/postgres"
package postgres

import (
	"context"

	"github.com/ncobase/posts/data"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
)

type driver struct{}

func (d *driver) Name() string {
	return "postgres"
}

func (d *driver) Connect(ctx context.Context, cfg any) (any, error) {
	return data.OpenSQL(ctx, "pgx", "postgres", cfg)
}

func (d *driver) Close(conn any) error {
	return data.CloseSQL("postgres", conn)
}

func (d *driver) Ping(ctx context.Context, conn any) error {
	return data.PingSQL(ctx, "postgres", conn)
}

func init() {
	data.RegisterDatabaseDriver(&driver{})
}
