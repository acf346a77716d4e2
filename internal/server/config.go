// internal/server/config.go
package server

import (
	"net"
	"os"
	"strconv"
)

// Config holds the server settings. MaxClients of 0 means unlimited; a
// silent peer holds its goroutine and registry slot indefinitely, so bounded
// deployments should set a cap.
type Config struct {
	Host         string
	Port         string
	StorageDir   string
	MaxFrameSize int
	MaxClients   int
}

func defaultConfig() Config {
	return Config{
		Port:         "8888",
		StorageDir:   "uploads",
		MaxFrameSize: 1 << 20,
		MaxClients:   0,
	}
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	cfg := defaultConfig()
	return &cfg
}

// NewConfigFromEnv builds a Config from environment variables, falling back
// to defaults for anything unset or unparseable.
func NewConfigFromEnv() *Config {
	cfg := defaultConfig()

	if host := os.Getenv("SERVER_HOST"); host != "" {
		cfg.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Port = port
	}
	if dir := os.Getenv("STORAGE_DIR"); dir != "" {
		cfg.StorageDir = dir
	}
	if size := os.Getenv("MAX_FRAME_SIZE"); size != "" {
		cfg.MaxFrameSize = parsePositiveInt(size, cfg.MaxFrameSize)
	}
	if max := os.Getenv("MAX_CLIENTS"); max != "" {
		cfg.MaxClients = parsePositiveInt(max, cfg.MaxClients)
	}

	return &cfg
}

func parsePositiveInt(value string, defaultValue int) int {
	if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
		return parsed
	}
	return defaultValue
}

// Addr returns the listen address for the configured host and port.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}
