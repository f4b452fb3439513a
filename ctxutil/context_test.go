package ctxutil

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestEnsureTraceID(t *testing.T) {
	ctx, id := EnsureTraceID(context.Background())
	assert.NotEmpty(t, id)
	assert.Equal(t, id, GetTraceID(ctx))

	again, same := EnsureTraceID(ctx)
	assert.Equal(t, id, same)
	assert.Equal(t, ctx, again)
}

func TestGinContextValues(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	ctx := WithGinContext(context.Background(), c)
	got, ok := GetGinContext(ctx)
	assert.True(t, ok)
	assert.Same(t, c, got)

	SetTraceID(ctx, "abc")
	val, exists := c.Get(string(TraceIDKey))
	assert.True(t, exists)
	assert.Equal(t, "abc", val)

	// values set on the gin context are visible through the embedding context
	assert.Equal(t, "abc", GetTraceID(ctx))
}

func TestMissingValues(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))
	_, ok := GetGinContext(context.Background())
	assert.False(t, ok)
}
