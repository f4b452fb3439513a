package config

import (
	"github.com/google/wire"
	dc "github.com/ncobase/posts/data/config"
	lc "github.com/ncobase/posts/logging/logger/config"
)

// ProviderSet is the wire provider set for the config package.
// It provides the main *Config and extracts sub-configurations for
// other modules to use.
var ProviderSet = wire.NewSet(
	GetConfig,
	ProvideServerConfig,
	ProvideLoggerConfig,
	ProvideDataConfig,
	ProvideObservesConfig,
)

// ProvideServerConfig provides the HTTP server configuration.
func ProvideServerConfig(cfg *Config) *Server {
	return cfg.Server
}

// ProvideLoggerConfig provides the logger configuration.
func ProvideLoggerConfig(cfg *Config) *lc.Config {
	return cfg.Logger
}

// ProvideDataConfig provides the data layer configuration.
func ProvideDataConfig(cfg *Config) *dc.Config {
	return cfg.Data
}

// ProvideObservesConfig provides the Sentry and tracer configuration.
func ProvideObservesConfig(cfg *Config) *Observes {
	return cfg.Observes
}
