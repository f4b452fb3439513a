package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ncobase/posts/config"
	"github.com/ncobase/posts/data"
	"github.com/ncobase/posts/internal/server"
	"github.com/ncobase/posts/logging/logger"
	"github.com/ncobase/posts/logging/observes"
	"github.com/ncobase/posts/version"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

// App bundles the wired components the serve command runs.
type App struct {
	Config *config.Config
	Logger *logger.Logger
	Data   *data.Data
	Server *server.Server
}

// NewApp creates an App from its wired components.
func NewApp(cfg *config.Config, log *logger.Logger, d *data.Data, srv *server.Server) *App {
	return &App{
		Config: cfg,
		Logger: log,
		Data:   d,
		Server: srv,
	}
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives, then drains
// in-flight requests.
func (a *App) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cleanup, err := observes.Init(observesOptions(a.Config))
	if err != nil {
		return err
	}
	defer cleanup()

	config.Watch(a.Config, func(next *config.Config) {
		if next.Logger == nil {
			return
		}
		a.Logger.SetLevel(logrus.Level(next.Logger.Level))
		a.Logger.Info(context.Background(), "config reloaded", "level", a.Logger.GetLevel().String())
	})

	srv := a.Server.HTTPServer()
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info(context.Background(), "server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.Logger.Info(context.Background(), "shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.Logger.Error(shutdownCtx, "server forced to shutdown", logger.ErrorKey, err)
		return err
	}
	a.Logger.Info(context.Background(), "server exited")
	return nil
}

func observesOptions(cfg *config.Config) *observes.Options {
	if cfg == nil || cfg.Observes == nil {
		return nil
	}

	opts := &observes.Options{}
	if s := cfg.Observes.Sentry; s != nil {
		opts.Sentry = &observes.SentryOptions{
			Dsn:         s.Endpoint,
			Name:        cfg.AppName,
			Release:     s.Release,
			Environment: s.Environment,
		}
	}
	if t := cfg.Observes.Tracer; t != nil {
		opts.Tracer = &observes.TracerOption{
			URL:                t.Endpoint,
			Name:               t.ServiceName,
			Version:            version.Version,
			Environment:        t.Environment,
			SamplingRate:       t.SamplingRate,
			BatchTimeout:       t.BatchTimeout,
			ExportTimeout:      t.ExportTimeout,
			MaxExportBatchSize: t.MaxExportBatchSize,
		}
	}
	return opts
}
