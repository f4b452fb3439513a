// Package data owns the backend connections the post store runs on. Drivers
// register themselves from their own packages (see data/all) and are chosen
// by configuration.
package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/wire"
	"github.com/ncobase/posts/data/config"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// ProviderSet is the wire provider set for the data package.
var ProviderSet = wire.NewSet(New)

// Data represents the data layer implementation. Only the members selected by
// the configuration are set.
type Data struct {
	Store  string
	Driver string

	DB    *sql.DB
	Mongo *mongo.Database
	Redis *redis.Client

	closers []func() error
}

// New opens the connections the configuration asks for. The cleanup closes
// them in reverse order.
func New(cfg *config.Config) (*Data, func(), error) {
	if cfg == nil {
		return nil, nil, errors.New("data: config is nil")
	}

	ctx := context.Background()
	d := &Data{Store: cfg.Store}

	var err error
	switch cfg.Store {
	case config.StoreMemory:
	case config.StoreDatabase:
		err = d.openDatabase(ctx, cfg.Database)
	case config.StoreMongoDB:
		err = d.openMongo(ctx, cfg.MongoDB)
	default:
		err = fmt.Errorf("data: unknown store %q", cfg.Store)
	}

	if err == nil && cfg.Redis != nil && cfg.Redis.Addr != "" {
		err = d.openRedis(ctx, cfg.Redis)
	}

	if err != nil {
		_ = d.Close()
		return nil, nil, err
	}

	return d, func() {
		if err := d.Close(); err != nil {
			fmt.Printf("cleanup errors: %v\n", err)
		}
	}, nil
}

func (d *Data) openDatabase(ctx context.Context, cfg *config.Database) error {
	if cfg == nil {
		return errors.New("data: database config is nil")
	}
	d.Driver = NormalizeDriver(cfg.Driver)

	driver, err := GetDatabaseDriver(d.Driver)
	if err != nil {
		return err
	}
	conn, err := driver.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	db, ok := conn.(*sql.DB)
	if !ok {
		_ = driver.Close(conn)
		return fmt.Errorf("data: driver %s is not a sql driver", d.Driver)
	}

	d.DB = db
	d.closers = append(d.closers, func() error { return driver.Close(db) })
	return nil
}

func (d *Data) openMongo(ctx context.Context, cfg *config.MongoDB) error {
	if cfg == nil {
		return errors.New("data: mongodb config is nil")
	}
	d.Driver = "mongodb"

	driver, err := GetDatabaseDriver(d.Driver)
	if err != nil {
		return err
	}
	conn, err := driver.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	client, ok := conn.(*mongo.Client)
	if !ok {
		_ = driver.Close(conn)
		return errors.New("data: mongodb driver returned an unexpected connection")
	}

	name := cfg.Database
	if name == "" {
		name = "posts"
	}
	d.Mongo = client.Database(name)
	d.closers = append(d.closers, func() error { return driver.Close(client) })
	return nil
}

func (d *Data) openRedis(ctx context.Context, cfg *config.Redis) error {
	driver, err := GetCacheDriver("redis")
	if err != nil {
		return err
	}
	conn, err := driver.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	client, ok := conn.(*redis.Client)
	if !ok {
		_ = driver.Close(conn)
		return errors.New("data: redis driver returned an unexpected connection")
	}

	d.Redis = client
	d.closers = append(d.closers, func() error { return driver.Close(client) })
	return nil
}

// Close closes every open connection, newest first.
func (d *Data) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	d.closers = nil
	return errors.Join(errs...)
}
