package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	dc "github.com/ncobase/posts/data/config"
	lc "github.com/ncobase/posts/logging/logger/config"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. POSTS_SERVER_PORT.
const EnvPrefix = "POSTS"

var (
	config *Config
	path   string
	mu     sync.RWMutex
)

// Config represents the configuration implementation.
type Config struct {
	AppName     string
	Environment string
	Server      *Server
	Logger      *lc.Config
	Data        *dc.Config
	Observes    *Observes
	Viper       *viper.Viper
}

// SetPath sets the config file used by GetConfig. Empty means search the
// default locations.
func SetPath(p string) {
	mu.Lock()
	defer mu.Unlock()
	path = p
	config = nil
}

// GetConfig returns the process configuration, loading it on first use.
func GetConfig() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()
	if config == nil {
		cfg, err := LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize config: %w", err)
		}
		config = cfg
	}
	return config, nil
}

// LoadConfig loads the configuration from the file. Without an explicit
// path it searches ".", "/etc/posts" and "$HOME/.posts" for config.yaml and
// falls back to defaults when none exists.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/posts")
		v.AddConfigPath("$HOME/.posts")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		AppName:     v.GetString("app_name"),
		Environment: v.GetString("environment"),
		Server:      getServerConfig(v),
		Logger:      lc.GetConfig(v),
		Data:        dc.GetConfig(v),
		Observes:    getObservesConfig(v),
		Viper:       v,
	}
}

// IsProduction reports whether the service runs in release mode.
func (c *Config) IsProduction() bool {
	switch strings.ToLower(c.Environment) {
	case "production", "release", "prod":
		return true
	}
	return false
}

// Watch watches the file behind cfg and calls callback with the reloaded
// configuration on every change. Only settings read per use (such as the
// logger level) take effect without a restart.
func Watch(cfg *Config, callback func(*Config)) {
	if cfg == nil || cfg.Viper == nil || cfg.Viper.ConfigFileUsed() == "" {
		return
	}
	v := cfg.Viper
	v.OnConfigChange(func(fsnotify.Event) {
		next := fromViper(v)
		mu.Lock()
		if config == cfg {
			config = next
		}
		mu.Unlock()
		callback(next)
	})
	v.WatchConfig()
}
