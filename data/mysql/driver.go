// Package mysql provides a MySQL driver for posts/data.
//
// Timestamps are scanned into time.Time, so the DSN must carry parseTime=true:
//
//	"user:pass@tcp(localhost:3306)/posts?parseTime=true&loc=UTC"
package mysql

import (
	"context"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/ncobase/posts/data"
	"github.com/ncobase/posts/data/config"
)

type driver struct{}

func (d *driver) Name() string {
	return "mysql"
}

func (d *driver) Connect(ctx context.Context, cfg any) (any, error) {
	if dbCfg, ok := cfg.(*config.Database); ok && dbCfg.Source != "" {
		source, err := withParseTime(dbCfg.Source)
		if err != nil {
			return nil, err
		}
		withTime := *dbCfg
		withTime.Source = source
		cfg = &withTime
	}
	return data.OpenSQL(ctx, "mysql", "mysql", cfg)
}

// withParseTime forces parseTime on a DSN.
func withParseTime(dsn string) (string, error) {
	parsed, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("mysql: invalid dsn: %w", err)
	}
	parsed.ParseTime = true
	return parsed.FormatDSN(), nil
}

func (d *driver) Close(conn any) error {
	return data.CloseSQL("mysql", conn)
}

func (d *driver) Ping(ctx context.Context, conn any) error {
	return data.PingSQL(ctx, "mysql", conn)
}

func init() {
	data.RegisterDatabaseDriver(&driver{})
}
