package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ncobase/posts/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Go Version:")

	out, err = run(t, "version", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"goVersion"`)
}

func TestMigrateCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	body := "data:\n  store: sqlite\n  database:\n    source: \"" + filepath.Join(dir, "posts.db") + "\"\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o600))
	t.Cleanup(func() { config.SetPath("") })

	out, err := run(t, "-c", cfgPath, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "posts table ready on sqlite")
}

func TestMigrateCommandNeedsSQL(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("data:\n  store: memory\n"), 0o600))
	t.Cleanup(func() { config.SetPath("") })

	_, err := run(t, "-c", cfgPath, "migrate")
	assert.Error(t, err)
}

func TestUnknownCommand(t *testing.T) {
	_, err := run(t, "nope")
	assert.Error(t, err)
}

func TestObservesOptions(t *testing.T) {
	assert.Nil(t, observesOptions(nil))

	opts := observesOptions(&config.Config{
		AppName: "posts",
		Observes: &config.Observes{
			Sentry: &config.Sentry{Endpoint: "https://key@sentry.example/1", Environment: "prod"},
			Tracer: &config.Tracer{Endpoint: "localhost:4317", ServiceName: "posts", SamplingRate: 0.5, BatchTimeout: time.Second},
		},
	})
	require.NotNil(t, opts)
	assert.Equal(t, "https://key@sentry.example/1", opts.Sentry.Dsn)
	assert.Equal(t, "posts", opts.Sentry.Name)
	assert.Equal(t, "localhost:4317", opts.Tracer.URL)
	assert.Equal(t, 0.5, opts.Tracer.SamplingRate)
	assert.Equal(t, time.Second, opts.Tracer.BatchTimeout)
}

func TestNewApp(t *testing.T) {
	cfg := &config.Config{AppName: "posts"}
	app := NewApp(cfg, nil, nil, nil)
	assert.Same(t, cfg, app.Config)
	assert.Nil(t, app.Server)
}
