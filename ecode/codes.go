package ecode

import "net/http"

// Business codes.
const (
	OK                 = 0
	RequestErr         = -400
	ParamErr           = -401
	AccessDenied       = -403
	NothingFound       = -404
	MethodNotAllowed   = -405
	Conflict           = -409
	PayloadTooLarge    = -413
	ServerErr          = -500
	ServiceUnavailable = -503
)

var texts = map[int]string{
	OK:                 "ok",
	RequestErr:         "Invalid request",
	ParamErr:           "Invalid parameters",
	AccessDenied:       "Access denied",
	NothingFound:       "Resource not found",
	MethodNotAllowed:   "Method not allowed",
	Conflict:           "Resource conflict",
	PayloadTooLarge:    "Request body too large",
	ServerErr:          "Internal server error",
	ServiceUnavailable: "Service unavailable",
}

var statuses = map[int]int{
	OK:                 http.StatusOK,
	RequestErr:         http.StatusBadRequest,
	ParamErr:           http.StatusBadRequest,
	AccessDenied:       http.StatusForbidden,
	NothingFound:       http.StatusNotFound,
	MethodNotAllowed:   http.StatusMethodNotAllowed,
	Conflict:           http.StatusConflict,
	PayloadTooLarge:    http.StatusRequestEntityTooLarge,
	ServerErr:          http.StatusInternalServerError,
	ServiceUnavailable: http.StatusServiceUnavailable,
}

// Text returns the default message for a code.
func Text(code int) string {
	if t, ok := texts[code]; ok {
		return t
	}
	return texts[ServerErr]
}

// ToHTTPStatus maps a business code to its transport status.
// Unknown codes map to 500.
func ToHTTPStatus(code int) int {
	if s, ok := statuses[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}
