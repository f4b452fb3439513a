package observes

import (
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
)

type SentryOptions struct {
	Dsn         string
	Name        string
	Release     string
	Environment string
}

// NewSentry is the register sentry
func NewSentry(opt *SentryOptions) error {
	// if not exist sentry config, skip initialization
	if opt == nil || opt.Dsn == "" {
		return nil
	}

	return sentry.Init(sentry.ClientOptions{
		Dsn:              opt.Dsn,
		AttachStacktrace: true,
		TracesSampleRate: 1.0,
		ServerName:       opt.Name,
		Release:          opt.Release,
		Environment:      opt.Environment,
	})
}

// CaptureFault reports a server-side failure. It is a no-op when Sentry was
// never initialised.
func CaptureFault(r *http.Request, status int, message string) {
	hub := sentry.CurrentHub().Clone()
	if hub.Client() == nil {
		return
	}
	hub.WithScope(func(scope *sentry.Scope) {
		if r != nil {
			scope.SetRequest(r)
			scope.SetTag("route", r.URL.Path)
		}
		scope.SetTag("status", http.StatusText(status))
		scope.SetLevel(sentry.LevelError)
		hub.CaptureMessage(message)
	})
}

// FlushSentry waits for buffered events to be sent.
func FlushSentry(timeout time.Duration) {
	sentry.Flush(timeout)
}
