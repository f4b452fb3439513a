//go:build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/ncobase/posts/config"
	"github.com/ncobase/posts/core/post"
	"github.com/ncobase/posts/data"
	"github.com/ncobase/posts/internal/server"
	"github.com/ncobase/posts/logging/logger"
)

// InitializeApp wires the server with its store, logger and configuration.
// The cleanup closes the store, the data layer and the log file in that order.
func InitializeApp() (*App, func(), error) {
	panic(wire.Build(
		config.ProviderSet,
		logger.ProviderSet,
		data.ProviderSet,
		post.ProviderSet,
		server.New,
		NewApp,
	))
}

// InitializeData opens only the data layer, for maintenance commands.
func InitializeData() (*data.Data, func(), error) {
	panic(wire.Build(
		config.ProviderSet,
		data.ProviderSet,
	))
}
