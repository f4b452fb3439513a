// Package observes wires error reporting (Sentry) and distributed tracing
// (OpenTelemetry) and offers span helpers for the request path.
package observes

import (
	"context"
	"time"
)

// Options selects which observers to start. Nil members are skipped.
type Options struct {
	Sentry *SentryOptions
	Tracer *TracerOption
}

// Init starts the configured observers and returns a cleanup that flushes
// them.
func Init(opts *Options) (func(), error) {
	if opts == nil {
		return func() {}, nil
	}

	if err := NewSentry(opts.Sentry); err != nil {
		return nil, err
	}

	var shutdown func(context.Context) error
	if opts.Tracer != nil && opts.Tracer.URL != "" {
		var err error
		if shutdown, err = NewTracer(opts.Tracer); err != nil {
			return nil, err
		}
	}

	return func() {
		FlushSentry(2 * time.Second)
		if shutdown != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(ctx)
		}
	}, nil
}
