// Package config provides configuration parsing and validation for the
// native performance core's own tunable knobs (UDP batching, throttle
// defaults, connection pool sizing, logging).
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete core configuration.
type Config struct {
	Log  LogConfig  `yaml:"log"`
	UDP  UDPConfig  `yaml:"udp"`
	Rate RateConfig `yaml:"rate"`
	Pool PoolConfig `yaml:"pool"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// UDPConfig configures the batch UDP engine.
type UDPConfig struct {
	// Port to bind; 0 selects an ephemeral port.
	Port uint16 `yaml:"port"`
	// BatchSize is the number of packets RecvBatch/SendBatch operate on
	// per syscall.
	BatchSize int `yaml:"batch_size"`
	// SocketBufferBytes is the requested SO_RCVBUF/SO_SNDBUF size.
	SocketBufferBytes int `yaml:"socket_buffer_bytes"`
}

// RateConfig configures the default token-bucket throttle applied to
// outbound traffic.
type RateConfig struct {
	// BytesPerSecond is the throttler's rate; 0 disables throttling.
	BytesPerSecond uint64 `yaml:"bytes_per_second"`
}

// PoolConfig configures the TCP connection pool.
type PoolConfig struct {
	Size        int           `yaml:"size"`
	DialTimeout time.Duration `yaml:"dial_timeout"`
}

// Default returns a Config populated with the core's default values.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		UDP: UDPConfig{
			Port:              0,
			BatchSize:         32,
			SocketBufferBytes: 4 * 1024 * 1024,
		},
		Rate: RateConfig{
			BytesPerSecond: 0,
		},
		Pool: PoolConfig{
			Size:        8,
			DialTimeout: 100 * time.Millisecond,
		},
	}
}

// Load reads and parses a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses configuration from YAML bytes, starting from Default()
// and overlaying whatever the document sets.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if !isValidLogLevel(c.Log.Level) {
		return fmt.Errorf("invalid log.level: %s (must be debug, info, warn, or error)", c.Log.Level)
	}
	if !isValidLogFormat(c.Log.Format) {
		return fmt.Errorf("invalid log.format: %s (must be text or json)", c.Log.Format)
	}
	if c.UDP.BatchSize <= 0 {
		return fmt.Errorf("udp.batch_size must be positive, got %d", c.UDP.BatchSize)
	}
	if c.UDP.SocketBufferBytes < 0 {
		return fmt.Errorf("udp.socket_buffer_bytes must not be negative, got %d", c.UDP.SocketBufferBytes)
	}
	if c.Pool.Size <= 0 {
		return fmt.Errorf("pool.size must be positive, got %d", c.Pool.Size)
	}
	if c.Pool.DialTimeout <= 0 {
		return fmt.Errorf("pool.dial_timeout must be positive, got %s", c.Pool.DialTimeout)
	}
	return nil
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

func isValidLogFormat(format string) bool {
	switch format {
	case "text", "json":
		return true
	default:
		return false
	}
}
