package config

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults registers a default for every key so environment overrides
// resolve even without a config file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "posts")
	v.SetDefault("environment", "debug")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.max_body_bytes", 1<<20)

	v.SetDefault("logger.level", 4)
	v.SetDefault("logger.format", "text")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.output_file", "")
	v.SetDefault("logger.index_name", "")
	v.SetDefault("logger.rotate_daily", false)
	v.SetDefault("logger.elasticsearch.addresses", []string{})
	v.SetDefault("logger.elasticsearch.username", "")
	v.SetDefault("logger.elasticsearch.password", "")

	v.SetDefault("data.store", "memory")
	v.SetDefault("data.database.driver", "")
	v.SetDefault("data.database.source", "")
	v.SetDefault("data.database.max_idle_conn", 10)
	v.SetDefault("data.database.max_open_conn", 50)
	v.SetDefault("data.database.conn_max_life_time", time.Hour)
	v.SetDefault("data.database.migrate", true)
	v.SetDefault("data.mongodb.uri", "")
	v.SetDefault("data.mongodb.database", "posts")
	v.SetDefault("data.redis.addr", "")
	v.SetDefault("data.redis.password", "")
	v.SetDefault("data.redis.db", 0)
	v.SetDefault("data.redis.ttl", 5*time.Minute)

	v.SetDefault("observes.sentry.endpoint", "")
	v.SetDefault("observes.tracer.endpoint", "")
}
