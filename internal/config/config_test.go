package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	require.Equal(t, "storefront", cfg.ServiceName)
	require.Equal(t, 8080, cfg.ServerPort)
	require.Equal(t, "product", cfg.ESIndex)
	require.Equal(t, "uploads", cfg.UploadDir)
	require.Nil(t, cfg.KafkaBrokers)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092 ,")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg := Load()
	require.Equal(t, 9090, cfg.ServerPort)
	require.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	require.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestEnvIntDefaultBadValue(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	require.Equal(t, 8080, EnvIntDefault("SERVER_PORT", 8080))
}

func TestCSV(t *testing.T) {
	require.Nil(t, CSV(""))
	require.Equal(t, []string{"a"}, CSV("a"))
	require.Equal(t, []string{"a", "b"}, CSV(" a ,b"))
}
