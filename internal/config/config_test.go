package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.WebSocket.Address)
	assert.Equal(t, 30*time.Second, cfg.Server.WebSocket.PingInterval)
	assert.Equal(t, 60*time.Second, cfg.Server.WebSocket.PongWait)
	assert.Equal(t, ":9090", cfg.Server.Ops.Address)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "memory", cfg.Queue.Backend)
	assert.Equal(t, 20, cfg.Match.StartingLife)
	assert.Equal(t, 7, cfg.Match.OpeningHand)
	assert.Empty(t, cfg.Database.URL)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
server:
  websocket:
    address: ":7777"
    ping_interval: 15s
    pong_wait: 45s
  ops:
    address: ":7778"
  join_token_hash: "$2a$10$abcdefghijklmnopqrstuv"
logging:
  level: debug
  format: console
database:
  url: postgres://localhost:5432/oracle
queue:
  backend: redis
  redis:
    address: localhost:6379
    db: 2
match:
  starting_life: 40
  opening_hand: 7
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7777", cfg.Server.WebSocket.Address)
	assert.Equal(t, 15*time.Second, cfg.Server.WebSocket.PingInterval)
	assert.Equal(t, 45*time.Second, cfg.Server.WebSocket.PongWait)
	assert.Equal(t, ":7778", cfg.Server.Ops.Address)
	assert.Equal(t, "$2a$10$abcdefghijklmnopqrstuv", cfg.Server.JoinTokenHash)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "postgres://localhost:5432/oracle", cfg.Database.URL)
	assert.Equal(t, "redis", cfg.Queue.Backend)
	assert.Equal(t, "localhost:6379", cfg.Queue.Redis.Address)
	assert.Equal(t, 2, cfg.Queue.Redis.DB)
	assert.Equal(t, 40, cfg.Match.StartingLife)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("ORACLE_SERVER_WEBSOCKET_ADDRESS", ":6543")
	t.Setenv("ORACLE_LOGGING_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":6543", cfg.Server.WebSocket.Address)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadValidation(t *testing.T) {
	cases := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown backend",
			yaml:    "queue:\n  backend: kafka\n",
			wantErr: "unknown queue backend",
		},
		{
			name:    "redis without address",
			yaml:    "queue:\n  backend: redis\n",
			wantErr: "requires queue.redis.address",
		},
		{
			name:    "pong wait too short",
			yaml:    "server:\n  websocket:\n    ping_interval: 30s\n    pong_wait: 10s\n",
			wantErr: "pong_wait must exceed ping_interval",
		},
		{
			name:    "zero starting life",
			yaml:    "match:\n  starting_life: 0\n",
			wantErr: "starting_life must be positive",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.yaml))
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}
