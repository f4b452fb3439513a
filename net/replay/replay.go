// Package replay buffers an inbound request body once so it can be inspected
// and then read again, unconsumed, by whoever handles the request next.
package replay

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ncobase/posts/ecode"
)

// DefaultMaxBytes bounds how much of a body Capture will buffer.
const DefaultMaxBytes int64 = 1 << 20

// ErrNotReplayable is returned by Rewind when the body was never captured.
// It means the pipeline is wired wrongly, not that the request is bad.
var ErrNotReplayable = errors.New("replay: request body was not captured")

// Body is an in-memory, seekable request body.
type Body struct {
	*bytes.Reader
	raw []byte
}

// Close implements io.Closer. The buffer stays readable after Close.
func (b *Body) Close() error { return nil }

// Bytes returns the captured payload.
func (b *Body) Bytes() []byte { return b.raw }

func newBody(raw []byte) *Body {
	return &Body{Reader: bytes.NewReader(raw), raw: raw}
}

// Capture reads the full payload of r into memory and swaps r.Body for a
// seekable copy positioned at the start. Calling Capture again returns the
// same bytes without touching the transport. A body larger than maxBytes
// yields ecode.ErrTooLarge; maxBytes <= 0 means DefaultMaxBytes.
func Capture(r *http.Request, maxBytes int64) ([]byte, error) {
	if b, ok := r.Body.(*Body); ok {
		if _, err := b.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		return b.raw, nil
	}

	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	var raw []byte
	if r.Body != nil && r.Body != http.NoBody {
		var err error
		raw, err = io.ReadAll(io.LimitReader(r.Body, maxBytes+1))
		_ = r.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("replay: read body: %w", err)
		}
		if int64(len(raw)) > maxBytes {
			return nil, ecode.ErrTooLarge.Withf("request body exceeds %d bytes", maxBytes)
		}
	}

	install(r, raw)
	return raw, nil
}

// Rewind resets a captured body to its start.
func Rewind(r *http.Request) error {
	b, ok := r.Body.(*Body)
	if !ok {
		return ErrNotReplayable
	}
	_, err := b.Seek(0, io.SeekStart)
	return err
}

func install(r *http.Request, raw []byte) {
	r.Body = newBody(raw)
	r.ContentLength = int64(len(raw))
	r.GetBody = func() (io.ReadCloser, error) {
		return newBody(raw), nil
	}
}
