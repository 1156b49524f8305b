package config

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTableSeeds(t *testing.T) {
	seeds, err := ParseTableSeeds(" Table 1:4, Bar 2:2 ,,")
	require.NoError(t, err)
	assert.Equal(t, []TableSeed{{Name: "Table 1", Seats: 4}, {Name: "Bar 2", Seats: 2}}, seeds)

	seeds, err = ParseTableSeeds("")
	require.NoError(t, err)
	assert.Empty(t, seeds)

	for _, raw := range []string{"Table 1", ":4", "Table 1:zero", "Table 1:0"} {
		_, err := ParseTableSeeds(raw)
		assert.Error(t, err, raw)
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "TOKEN_TTL", "SEED_TABLES", "RATE_LIMIT", "MONITOR_INTERVAL", "REDIS_DB", "REDIS_ADDR", "AMQP_URL", "AMQP_QUEUE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 50, cfg.RateLimit)
	assert.Len(t, cfg.SeedTables, 2)
	assert.Empty(t, cfg.RedisAddr)
	assert.Empty(t, cfg.AMQPURL)
	assert.Equal(t, "floor.events", cfg.AMQPQueue)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("SEED_TABLES", "Terrace 1:6")
	t.Setenv("RATE_LIMIT", "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []TableSeed{{Name: "Terrace 1", Seats: 6}}, cfg.SeedTables)
	assert.Equal(t, 5, cfg.RateLimit)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("TOKEN_TTL", "forever")

	_, err := Load()
	assert.Error(t, err)
}

func TestInitDBUnknownDriver(t *testing.T) {
	_, err := InitDB(Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(Config{RedisAddr: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	mr.Close()
	_, err = NewRedisClient(Config{RedisAddr: mr.Addr()})
	assert.Error(t, err)
}
