package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/ncobase/posts/ctxutil"
	"github.com/ncobase/posts/logging/logger/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger() (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	l := &Logger{Logger: logrus.New()}
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetOutput(buf)
	l.SetLevel(logrus.DebugLevel)
	return l, buf
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestContextFields(t *testing.T) {
	l, buf := newBufferLogger()
	l.SetVersion("1.2.3")

	ctx := ctxutil.SetTraceID(context.Background(), "trace-1")
	l.Info(ctx, "post created", "id", int64(7), "error", errors.New("boom"))

	entry := decode(t, buf)
	assert.Equal(t, "post created", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "trace-1", entry["trace_id"])
	assert.Equal(t, "1.2.3", entry["version"])
	assert.Equal(t, float64(7), entry["id"])
	assert.Equal(t, "boom", entry["error"])
}

func TestDanglingKey(t *testing.T) {
	l, buf := newBufferLogger()
	l.Warn(context.Background(), "odd", "lonely")

	entry := decode(t, buf)
	assert.Equal(t, "lonely", entry["!BADKEY"])
	assert.Equal(t, "warning", entry["level"])
}

func TestLevelFiltering(t *testing.T) {
	l, buf := newBufferLogger()
	l.SetLevel(logrus.WarnLevel)

	l.Info(context.Background(), "hidden")
	l.Debug(context.Background(), "hidden")
	assert.Zero(t, buf.Len())

	l.Error(context.Background(), "shown")
	assert.NotZero(t, buf.Len())
}

func TestInitFile(t *testing.T) {
	l := &Logger{Logger: logrus.New()}
	dir := t.TempDir()

	cleanup, err := l.Init(&config.Config{
		Level:      int(logrus.InfoLevel),
		Format:     "json",
		Output:     "file",
		OutputFile: dir + "/posts.log",
	})
	require.NoError(t, err)
	require.NotNil(t, l.logFile)

	l.Info(context.Background(), "to file")
	cleanup()
	assert.Nil(t, l.logFile)
	// cleanup is idempotent
	cleanup()
}

func TestInitNilConfig(t *testing.T) {
	l := &Logger{Logger: logrus.New()}
	cleanup, err := l.Init(nil)
	require.NoError(t, err)
	cleanup()
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
}

func TestDiscard(t *testing.T) {
	l := Discard()
	assert.Equal(t, io.Discard, l.Out)
	l.Error(context.Background(), "nothing")
}

func TestElasticSearchHook(t *testing.T) {
	var (
		gotIndex      string
		gotDataStream bool
		gotDoc        map[string]any
	)
	cfg := &config.Config{IndexName: "logs-posts", RotateDaily: true, DateSuffix: "2006.01.02"}
	hook := newElasticSearchHook(cfg, func(index string, body *bytes.Reader, dataStream bool) error {
		gotIndex = index
		gotDataStream = dataStream
		raw, _ := io.ReadAll(body)
		return json.Unmarshal(raw, &gotDoc)
	})

	l, _ := newBufferLogger()
	l.AddHook(hook)
	l.AddHook(hook)
	assert.Len(t, l.Hooks[logrus.InfoLevel], 1)

	entry := logrus.NewEntry(l.Logger).WithField("id", 3).WithField("message", "ignored")
	entry.Time = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	entry.Level = logrus.InfoLevel
	entry.Message = "hello"
	require.NoError(t, hook.Fire(entry))

	assert.Equal(t, "logs-posts-2024.06.01", gotIndex)
	assert.True(t, gotDataStream)
	assert.Equal(t, "hello", gotDoc["message"])
	assert.Equal(t, "info", gotDoc["level"])
	assert.Equal(t, float64(3), gotDoc["id"])
}

func TestNewElasticSearchHookWithoutConfig(t *testing.T) {
	_, err := NewElasticSearchHook(&config.Config{})
	assert.Error(t, err)
}
