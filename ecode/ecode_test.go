package ecode

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHTTPStatus(t *testing.T) {
	cases := map[int]int{
		OK:              http.StatusOK,
		RequestErr:      http.StatusBadRequest,
		ParamErr:        http.StatusBadRequest,
		NothingFound:    http.StatusNotFound,
		Conflict:        http.StatusConflict,
		PayloadTooLarge: http.StatusRequestEntityTooLarge,
		ServerErr:       http.StatusInternalServerError,
		-9999:           http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, ToHTTPStatus(code), "code %d", code)
	}
}

func TestTextFallsBackToServerError(t *testing.T) {
	assert.Equal(t, "Resource conflict", Text(Conflict))
	assert.Equal(t, Text(ServerErr), Text(12345))
}

func TestErrorWrapKeepsCode(t *testing.T) {
	err := fmt.Errorf("load post: %w", ErrNotFound.Wrap(sql.ErrNoRows))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.True(t, Is(err, NothingFound))
	assert.False(t, Is(err, Conflict))
	assert.Contains(t, err.Error(), "resource not found")
}

func TestWithfChangesMessageOnly(t *testing.T) {
	err := ErrInvalidID.Withf("invalid post id %q", "abc")
	assert.Equal(t, ParamErr, err.Code)
	assert.Equal(t, `invalid post id "abc"`, err.Error())
	assert.Equal(t, "invalid post id", ErrInvalidID.Message)
}

func TestMessageHelpers(t *testing.T) {
	assert.Equal(t, "post 3 does not exist", NotExist("post 3"))
	assert.Equal(t, "post 3 deleted", Deleted("post 3"))
}
