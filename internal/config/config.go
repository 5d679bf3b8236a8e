// Package config loads server configuration from YAML with environment
// variable overrides (ORACLE_ prefix, dots become underscores).
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration for the oracle server.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Database DatabaseConfig `mapstructure:"database"`
	Queue    QueueConfig    `mapstructure:"queue"`
	Match    MatchConfig    `mapstructure:"match"`
}

// ServerConfig holds the listen addresses and gateway settings.
type ServerConfig struct {
	WebSocket       WebSocketConfig `mapstructure:"websocket"`
	Ops             OpsConfig       `mapstructure:"ops"`
	ShutdownTimeout time.Duration   `mapstructure:"shutdown_timeout"`

	// JoinTokenHash is a bcrypt hash; when set, websocket clients must
	// present the matching token to join. Generate with `hash-token`.
	JoinTokenHash string `mapstructure:"join_token_hash"`
}

// WebSocketConfig tunes the websocket gateway.
type WebSocketConfig struct {
	Address      string        `mapstructure:"address"`
	PingInterval time.Duration `mapstructure:"ping_interval"`
	PongWait     time.Duration `mapstructure:"pong_wait"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	SendBuffer   int           `mapstructure:"send_buffer"`
}

// OpsConfig is the operational gRPC endpoint (health checks).
type OpsConfig struct {
	Address string `mapstructure:"address"`
}

// LoggingConfig selects log level and output format.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DatabaseConfig points at the card-definition database. An empty URL
// disables database-backed deck resolution.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// QueueConfig selects the resolution-queue backend.
type QueueConfig struct {
	Backend string      `mapstructure:"backend"`
	Redis   RedisConfig `mapstructure:"redis"`
}

// RedisConfig holds connection settings for the redis queue backend.
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// MatchConfig sets the defaults new matches start with.
type MatchConfig struct {
	StartingLife int `mapstructure:"starting_life"`
	OpeningHand  int `mapstructure:"opening_hand"`
}

// Load reads configuration from the given file path. An empty path falls
// back to config/config.yaml if present; a missing file is only an error
// when the path was explicit. Environment variables override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("ORACLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Queue.Backend {
	case "memory":
	case "redis":
		if c.Queue.Redis.Address == "" {
			return fmt.Errorf("queue backend redis requires queue.redis.address")
		}
	default:
		return fmt.Errorf("unknown queue backend %q (want memory or redis)", c.Queue.Backend)
	}
	if c.Server.WebSocket.Address == "" {
		return fmt.Errorf("server.websocket.address is required")
	}
	if c.Server.WebSocket.PongWait <= c.Server.WebSocket.PingInterval {
		return fmt.Errorf("server.websocket.pong_wait must exceed ping_interval")
	}
	if c.Match.StartingLife < 1 {
		return fmt.Errorf("match.starting_life must be positive")
	}
	if c.Match.OpeningHand < 0 {
		return fmt.Errorf("match.opening_hand must not be negative")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.websocket.address", ":8080")
	v.SetDefault("server.websocket.ping_interval", 30*time.Second)
	v.SetDefault("server.websocket.pong_wait", 60*time.Second)
	v.SetDefault("server.websocket.write_timeout", 10*time.Second)
	v.SetDefault("server.websocket.send_buffer", 256)
	v.SetDefault("server.ops.address", ":9090")
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.join_token_hash", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("database.url", "")

	v.SetDefault("queue.backend", "memory")
	v.SetDefault("queue.redis.address", "")
	v.SetDefault("queue.redis.password", "")
	v.SetDefault("queue.redis.db", 0)

	v.SetDefault("match.starting_life", 20)
	v.SetDefault("match.opening_hand", 7)
}
