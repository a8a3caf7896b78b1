package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "predictions.db", cfg.DBPath)
	assert.Equal(t, "https://api.weatherapi.com/v1", cfg.WeatherAPIURL)
	assert.Empty(t, cfg.WeatherAPIKey)
	assert.Equal(t, 5*time.Second, cfg.WeatherTimeout)
	assert.Equal(t, 100, cfg.HistoryLimit)
	assert.Equal(t, time.Minute, cfg.LearningInterval)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "hazard-alerts", cfg.KafkaAlertTopic)
	assert.False(t, cfg.KafkaEnabled)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("DB_PATH", "/var/lib/rescuex/predictions.db")
	t.Setenv("WEATHER_API_URL", "http://localhost:8181/v1")
	t.Setenv("WEATHER_API_KEY", "secret")
	t.Setenv("WEATHER_TIMEOUT", "2s")
	t.Setenv("HISTORY_LIMIT", "250")
	t.Setenv("LEARNING_INTERVAL", "5m")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_ALERT_TOPIC", "alerts")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "/var/lib/rescuex/predictions.db", cfg.DBPath)
	assert.Equal(t, "http://localhost:8181/v1", cfg.WeatherAPIURL)
	assert.Equal(t, "secret", cfg.WeatherAPIKey)
	assert.Equal(t, 2*time.Second, cfg.WeatherTimeout)
	assert.Equal(t, 250, cfg.HistoryLimit)
	assert.Equal(t, 5*time.Minute, cfg.LearningInterval)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "alerts", cfg.KafkaAlertTopic)
	assert.True(t, cfg.KafkaEnabled, "brokers imply Kafka is enabled")
}

func TestLoad_KafkaExplicitlyDisabled(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker1:9092")
	t.Setenv("KAFKA_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.KafkaEnabled)
}

func TestLoad_KafkaEnabledWithoutBrokers(t *testing.T) {
	t.Setenv("KAFKA_ENABLED", "true")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeLearningInterval(t *testing.T) {
	t.Setenv("LEARNING_INTERVAL", "-1m")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LEARNING_INTERVAL")
}

func TestLoad_HistoryLimitBounds(t *testing.T) {
	t.Setenv("HISTORY_LIMIT", "0")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("HISTORY_LIMIT", "1001")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HISTORY_LIMIT")
}
