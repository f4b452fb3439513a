// Package mongodb provides a MongoDB driver for posts/data. Connect returns a
// *mongo.Client.
//
//	import _ "github.com/ncobase/posts/data/mongodb"
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/ncobase/posts/data"
	"github.com/ncobase/posts/data/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type driver struct{}

func (d *driver) Name() string {
	return "mongodb"
}

func (d *driver) Connect(ctx context.Context, cfg any) (any, error) {
	mongoCfg, ok := cfg.(*config.MongoDB)
	if !ok || mongoCfg == nil {
		return nil, fmt.Errorf("mongodb: invalid configuration type, expected *config.MongoDB")
	}

	if mongoCfg.URI == "" {
		return nil, errors.New("mongodb: URI is empty")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoCfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongodb: failed to connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb: failed to ping server: %w", err)
	}

	return client, nil
}

func (d *driver) Close(conn any) error {
	client, ok := conn.(*mongo.Client)
	if !ok {
		return fmt.Errorf("mongodb: invalid connection type, expected *mongo.Client")
	}

	if err := client.Disconnect(context.Background()); err != nil {
		return fmt.Errorf("mongodb: failed to disconnect: %w", err)
	}

	return nil
}

func (d *driver) Ping(ctx context.Context, conn any) error {
	client, ok := conn.(*mongo.Client)
	if !ok {
		return fmt.Errorf("mongodb: invalid connection type, expected *mongo.Client")
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongodb: ping failed: %w", err)
	}

	return nil
}

func init() {
	data.RegisterDatabaseDriver(&driver{})
}
