package data

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ncobase/posts/data/config"
)

// Driver interfaces define contracts for different backend types.
// Following the design pattern of database/sql, drivers register themselves
// using init() functions and are looked up at runtime based on configuration.

// DatabaseDriver defines the interface for database drivers, relational or
// document.
type DatabaseDriver interface {
	// Name returns the driver identifier (e.g., "postgres", "mysql", "sqlite", "mongodb")
	Name() string

	// Connect establishes a new connection using the provided configuration.
	Connect(ctx context.Context, cfg any) (any, error)

	// Close terminates the connection and releases resources.
	Close(conn any) error

	// Ping verifies the connection is alive and functional.
	Ping(ctx context.Context, conn any) error
}

// CacheDriver defines the interface for cache/key-value store drivers.
type CacheDriver interface {
	// Name returns the driver identifier (e.g., "redis")
	Name() string

	// Connect establishes a new cache connection.
	Connect(ctx context.Context, cfg any) (any, error)

	// Close terminates the cache connection.
	Close(conn any) error

	// Ping verifies the cache connection is alive.
	Ping(ctx context.Context, conn any) error
}

// Global driver registries with mutex protection for concurrent access.
var (
	databaseDrivers   = make(map[string]DatabaseDriver)
	databaseDriversMu sync.RWMutex

	cacheDrivers   = make(map[string]CacheDriver)
	cacheDriversMu sync.RWMutex
)

// RegisterDatabaseDriver makes a database driver available by the provided name.
// It is intended to be called from the init function in driver packages.
//
// If RegisterDatabaseDriver is called twice with the same name or if driver is nil,
// it panics.
func RegisterDatabaseDriver(driver DatabaseDriver) {
	databaseDriversMu.Lock()
	defer databaseDriversMu.Unlock()

	if driver == nil {
		panic("data: RegisterDatabaseDriver driver is nil")
	}

	name := driver.Name()
	if name == "" {
		panic("data: RegisterDatabaseDriver driver name is empty")
	}

	if _, exists := databaseDrivers[name]; exists {
		panic(fmt.Sprintf("data: RegisterDatabaseDriver called twice for driver %s", name))
	}

	databaseDrivers[name] = driver
}

// RegisterCacheDriver makes a cache driver available by the provided name.
// It follows the same pattern as RegisterDatabaseDriver.
func RegisterCacheDriver(driver CacheDriver) {
	cacheDriversMu.Lock()
	defer cacheDriversMu.Unlock()

	if driver == nil {
		panic("data: RegisterCacheDriver driver is nil")
	}

	name := driver.Name()
	if name == "" {
		panic("data: RegisterCacheDriver driver name is empty")
	}

	if _, exists := cacheDrivers[name]; exists {
		panic(fmt.Sprintf("data: RegisterCacheDriver called twice for driver %s", name))
	}

	cacheDrivers[name] = driver
}

// GetDatabaseDriver retrieves a registered database driver by name.
// It returns an error with helpful instructions if the driver is not found.
func GetDatabaseDriver(name string) (DatabaseDriver, error) {
	databaseDriversMu.RLock()
	defer databaseDriversMu.RUnlock()

	driver, ok := databaseDrivers[name]
	if !ok {
		return nil, fmt.Errorf(
			"data: database driver %q not registered\n\n"+
				"Did you forget to import the driver package?\n"+
				"Add to your imports:\n"+
				"    _ \"github.com/ncobase/posts/data/%s\"\n\n"+
				"Available drivers: %v",
			name, name, sortedKeys(databaseDrivers),
		)
	}

	return driver, nil
}

// GetCacheDriver retrieves a registered cache driver by name.
func GetCacheDriver(name string) (CacheDriver, error) {
	cacheDriversMu.RLock()
	defer cacheDriversMu.RUnlock()

	driver, ok := cacheDrivers[name]
	if !ok {
		return nil, fmt.Errorf(
			"data: cache driver %q not registered (available: %v)",
			name, sortedKeys(cacheDrivers),
		)
	}

	return driver, nil
}

// ListDatabaseDrivers returns the names of all registered database drivers.
func ListDatabaseDrivers() []string {
	databaseDriversMu.RLock()
	defer databaseDriversMu.RUnlock()
	return sortedKeys(databaseDrivers)
}

func sortedKeys[T any](m map[string]T) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NormalizeDriver maps driver aliases to registered driver names.
func NormalizeDriver(name string) string {
	switch strings.ToLower(name) {
	case "sqlite3":
		return "sqlite"
	case "postgresql", "pgx":
		return "postgres"
	case "mariadb":
		return "mysql"
	case "mongo":
		return "mongodb"
	}
	return strings.ToLower(name)
}

// OpenSQL opens a pooled database/sql handle for the named sql driver,
// applies the pool settings and pings it. SQL driver packages share it.
func OpenSQL(ctx context.Context, driverName, prefix string, cfg any) (*sql.DB, error) {
	dbCfg, ok := cfg.(*config.Database)
	if !ok {
		return nil, fmt.Errorf("%s: invalid configuration type, expected *config.Database", prefix)
	}

	if dbCfg.Source == "" {
		return nil, fmt.Errorf("%s: connection source is empty", prefix)
	}

	db, err := sql.Open(driverName, dbCfg.Source)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open connection: %w", prefix, err)
	}

	if dbCfg.MaxIdleConn > 0 {
		db.SetMaxIdleConns(dbCfg.MaxIdleConn)
	}
	if dbCfg.MaxOpenConn > 0 {
		db.SetMaxOpenConns(dbCfg.MaxOpenConn)
	}
	if dbCfg.ConnMaxLifeTime > 0 {
		db.SetConnMaxLifetime(dbCfg.ConnMaxLifeTime)
	}

	// Verify the connection works
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: failed to ping database: %w", prefix, err)
	}

	return db, nil
}

// CloseSQL closes a handle returned by OpenSQL.
func CloseSQL(prefix string, conn any) error {
	db, ok := conn.(*sql.DB)
	if !ok {
		return fmt.Errorf("%s: invalid connection type, expected *sql.DB", prefix)
	}

	if err := db.Close(); err != nil {
		return fmt.Errorf("%s: failed to close connection: %w", prefix, err)
	}

	return nil
}

// PingSQL pings a handle returned by OpenSQL.
func PingSQL(ctx context.Context, prefix string, conn any) error {
	db, ok := conn.(*sql.DB)
	if !ok {
		return fmt.Errorf("%s: invalid connection type, expected *sql.DB", prefix)
	}

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("%s: ping failed: %w", prefix, err)
	}

	return nil
}
