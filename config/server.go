package config

import (
	"net"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Server server config struct
type Server struct {
	Host         string        `json:"host" yaml:"host"`
	Port         int           `json:"port" yaml:"port"`
	ReadTimeout  time.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`
	MaxBodyBytes int64         `json:"max_body_bytes" yaml:"max_body_bytes"`
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

func getServerConfig(v *viper.Viper) *Server {
	return &Server{
		Host:         getStringOrDefault(v, "server.host", "0.0.0.0"),
		Port:         getIntOrDefault(v, "server.port", 8080),
		ReadTimeout:  getDurationOrDefault(v, "server.read_timeout", 15*time.Second),
		WriteTimeout: getDurationOrDefault(v, "server.write_timeout", 15*time.Second),
		MaxBodyBytes: int64(getIntOrDefault(v, "server.max_body_bytes", 1<<20)),
	}
}
