package resp

import (
	"errors"
	"net/http"

	"github.com/ncobase/posts/ecode"
)

// BadRequest indicates a bad request.
func BadRequest(message string, details ...string) *Envelope {
	return newEnvelope(http.StatusBadRequest, ecode.RequestErr, message, nil, details...)
}

// NotFound indicates that the requested resource is not found.
func NotFound(message string, details ...string) *Envelope {
	return newEnvelope(http.StatusNotFound, ecode.NothingFound, message, nil, details...)
}

// Conflict indicates a concurrency conflict.
func Conflict(message string, details ...string) *Envelope {
	return newEnvelope(http.StatusConflict, ecode.Conflict, message, nil, details...)
}

// PayloadTooLarge indicates the request body exceeded the configured limit.
func PayloadTooLarge(message string, details ...string) *Envelope {
	return newEnvelope(http.StatusRequestEntityTooLarge, ecode.PayloadTooLarge, message, nil, details...)
}

// InternalServer indicates a server error.
func InternalServer(message string, details ...string) *Envelope {
	return newEnvelope(http.StatusInternalServerError, ecode.ServerErr, message, nil, details...)
}

// ServiceUnavailable indicates a dependency is down.
func ServiceUnavailable(message string, details ...string) *Envelope {
	return newEnvelope(http.StatusServiceUnavailable, ecode.ServiceUnavailable, message, nil, details...)
}

// Classify converts a failure into an envelope. Coded errors keep their code
// and message; anything else is an unclassified fault reported as 500 with
// its own text. Classify never panics.
func Classify(err error) *Envelope {
	if err == nil {
		return InternalServer(ecode.Text(ecode.ServerErr))
	}

	var ce *ecode.Error
	if !errors.As(err, &ce) || ce.Code == ecode.OK {
		return InternalServer(err.Error())
	}

	var details []string
	if cause := ce.Unwrap(); cause != nil {
		details = append(details, cause.Error())
	}
	return newEnvelope(ecode.ToHTTPStatus(ce.Code), ce.Code, ce.Message, nil, details...)
}
