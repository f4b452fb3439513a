package data

import (
	"context"
	"testing"

	"github.com/ncobase/posts/data/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock driver for testing
type mockDatabaseDriver struct {
	name   string
	closed int
}

func (d *mockDatabaseDriver) Name() string { return d.name }
func (d *mockDatabaseDriver) Connect(ctx context.Context, cfg any) (any, error) {
	return "mock-connection", nil
}
func (d *mockDatabaseDriver) Close(conn any) error                     { d.closed++; return nil }
func (d *mockDatabaseDriver) Ping(ctx context.Context, conn any) error { return nil }

func resetDatabaseDrivers(t *testing.T) {
	t.Helper()
	databaseDriversMu.Lock()
	saved := databaseDrivers
	databaseDrivers = make(map[string]DatabaseDriver)
	databaseDriversMu.Unlock()

	t.Cleanup(func() {
		databaseDriversMu.Lock()
		databaseDrivers = saved
		databaseDriversMu.Unlock()
	})
}

func TestRegisterDatabaseDriver(t *testing.T) {
	resetDatabaseDrivers(t)

	RegisterDatabaseDriver(&mockDatabaseDriver{name: "test-db"})

	retrieved, err := GetDatabaseDriver("test-db")
	require.NoError(t, err)
	assert.Equal(t, "test-db", retrieved.Name())
	assert.Equal(t, []string{"test-db"}, ListDatabaseDrivers())
}

func TestRegisterDatabaseDriverPanics(t *testing.T) {
	resetDatabaseDrivers(t)

	assert.Panics(t, func() { RegisterDatabaseDriver(nil) })
	assert.Panics(t, func() { RegisterDatabaseDriver(&mockDatabaseDriver{}) })

	RegisterDatabaseDriver(&mockDatabaseDriver{name: "duplicate"})
	assert.Panics(t, func() { RegisterDatabaseDriver(&mockDatabaseDriver{name: "duplicate"}) })
}

func TestGetDriverNotFound(t *testing.T) {
	resetDatabaseDrivers(t)

	_, err := GetDatabaseDriver("nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data/nonexistent")

	_, err = GetCacheDriver("nonexistent")
	assert.Error(t, err)
}

func TestNormalizeDriver(t *testing.T) {
	assert.Equal(t, "sqlite", NormalizeDriver("sqlite3"))
	assert.Equal(t, "postgres", NormalizeDriver("PostgreSQL"))
	assert.Equal(t, "postgres", NormalizeDriver("pgx"))
	assert.Equal(t, "mysql", NormalizeDriver("mariadb"))
	assert.Equal(t, "mongodb", NormalizeDriver("mongo"))
	assert.Equal(t, "sqlite", NormalizeDriver("sqlite"))
}

func TestNewMemoryStoreOpensNothing(t *testing.T) {
	d, cleanup, err := New(&config.Config{Store: config.StoreMemory, Redis: &config.Redis{}})
	require.NoError(t, err)
	defer cleanup()

	assert.Nil(t, d.DB)
	assert.Nil(t, d.Mongo)
	assert.Nil(t, d.Redis)
}

func TestNewErrors(t *testing.T) {
	_, _, err := New(nil)
	assert.Error(t, err)

	_, _, err = New(&config.Config{Store: "cassandra"})
	assert.Error(t, err)

	resetDatabaseDrivers(t)
	_, _, err = New(&config.Config{Store: config.StoreDatabase, Database: &config.Database{Driver: "sqlite"}})
	assert.Error(t, err)
}

func TestNewRejectsNonSQLConnection(t *testing.T) {
	resetDatabaseDrivers(t)
	mock := &mockDatabaseDriver{name: "fake"}
	RegisterDatabaseDriver(mock)

	_, _, err := New(&config.Config{Store: config.StoreDatabase, Database: &config.Database{Driver: "fake"}})
	assert.Error(t, err)
	assert.Equal(t, 1, mock.closed)
}

func TestOpenSQLRejectsBadConfig(t *testing.T) {
	_, err := OpenSQL(context.Background(), "sqlite3", "sqlite", "nope")
	assert.Error(t, err)

	_, err = OpenSQL(context.Background(), "sqlite3", "sqlite", &config.Database{})
	assert.Error(t, err)

	assert.Error(t, CloseSQL("sqlite", 1))
	assert.Error(t, PingSQL(context.Background(), "sqlite", 1))
}
