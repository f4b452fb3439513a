package resp

import (
	"encoding/json"
	"net/http"

	"github.com/ncobase/posts/ecode"
)

// Envelope is the uniform result wrapper. Build one per request with the
// constructors in this package and treat it as read-only afterwards.
type Envelope struct {
	Status        int      `json:"-"`
	Code          int      `json:"code"`
	IsSuccess     bool     `json:"is_success"`
	Message       string   `json:"message,omitempty"`
	ErrorMessages []string `json:"error_messages"`
	Result        any      `json:"result,omitempty"`
}

// newEnvelope creates a new envelope. Any status outside 2xx/3xx or a non-zero
// code produces a failure envelope whose result is dropped.
func newEnvelope(status, code int, message string, result any, details ...string) *Envelope {
	if status < 200 || status >= 400 || code != ecode.OK {
		if code == ecode.OK {
			code = ecode.RequestErr
		}
		if message == "" {
			message = ecode.Text(code)
		}
		msgs := make([]string, 0, len(details)+1)
		msgs = append(msgs, message)
		msgs = append(msgs, details...)
		return &Envelope{
			Status:        status,
			Code:          code,
			IsSuccess:     false,
			Message:       message,
			ErrorMessages: msgs,
		}
	}

	return &Envelope{
		Status:        status,
		Code:          ecode.OK,
		IsSuccess:     true,
		Message:       message,
		ErrorMessages: []string{},
		Result:        result,
	}
}

// Success builds a 200 envelope. An optional message replaces the default.
func Success(result any, message ...string) *Envelope {
	return WithStatusCode(http.StatusOK, result, message...)
}

// Created builds a 201 envelope.
func Created(result any, message ...string) *Envelope {
	return WithStatusCode(http.StatusCreated, result, message...)
}

// WithStatusCode builds a success envelope with a custom status code.
func WithStatusCode(status int, result any, message ...string) *Envelope {
	msg := ""
	if len(message) > 0 {
		msg = message[0]
	}
	return newEnvelope(status, ecode.OK, msg, result)
}

// Write writes the envelope as JSON with its status code.
func Write(w http.ResponseWriter, e *Envelope) {
	if e == nil {
		e = InternalServer(ecode.Text(ecode.ServerErr))
	}
	status := e.Status
	if status == 0 {
		status = http.StatusOK
	}
	WriteJSON(w, status, e)
}

// WriteJSON writes any value as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode JSON response", http.StatusInternalServerError)
	}
}
