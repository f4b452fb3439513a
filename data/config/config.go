package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Store backends
const (
	StoreMemory   = "memory"
	StoreDatabase = "database"
	StoreMongoDB  = "mongodb"
)

// Config data config struct
type Config struct {
	// Store is memory, database (sqlite/postgres/mysql per Database.Driver)
	// or mongodb. The SQL driver names are accepted as aliases of database;
	// an alias overrides a Database.Driver of another family.
	Store     string `yaml:"store" json:"store"`
	*Database `yaml:"database" json:"database"`
	*Redis    `yaml:"redis" json:"redis"`
	*MongoDB  `yaml:"mongodb" json:"mongodb"`
}

// GetConfig returns data config
func GetConfig(v *viper.Viper) *Config {
	cfg := &Config{
		Store:    strings.ToLower(v.GetString("data.store")),
		Database: getDatabaseConfig(v),
		Redis:    getRedisConfigs(v),
		MongoDB:  getMongoDBConfigs(v),
	}
	switch cfg.Store {
	case "":
		cfg.Store = StoreMemory
	case "sqlite", "sqlite3", "postgres", "postgresql", "mysql":
		if sqlFamily(cfg.Database.Driver) != sqlFamily(cfg.Store) {
			cfg.Database.Driver = cfg.Store
		}
		cfg.Store = StoreDatabase
	case "mongo":
		cfg.Store = StoreMongoDB
	}
	return cfg
}

// sqlFamily folds driver spellings that open the same database.
func sqlFamily(driver string) string {
	switch d := strings.ToLower(driver); d {
	case "sqlite3":
		return "sqlite"
	case "postgresql", "pgx":
		return "postgres"
	case "mariadb":
		return "mysql"
	default:
		return d
	}
}
