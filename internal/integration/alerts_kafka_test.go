//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/ARUNKUMAR069/RescueX/internal/adapter/kafka"
	"github.com/ARUNKUMAR069/RescueX/internal/domain"
	"github.com/ARUNKUMAR069/RescueX/internal/observability"
)

const testAlertTopic = "test-hazard-alerts"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka launches a single-node Kafka container and returns its broker
// address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("test-cluster"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err, "resolve kafka brokers")
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err, "dial kafka")
	defer conn.Close()

	require.NoError(t, conn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// TestAlertPublisherRoundTrip publishes a prediction's findings through the
// real broker and verifies only Severe and Extreme findings arrive, with the
// expected key, headers, and payload.
func TestAlertPublisherRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testAlertTopic)

	publisher := kafka.NewAlertPublisher([]string{broker}, testAlertTopic,
		discardLogger(), observability.NewMetricsForTesting())
	t.Cleanup(func() { _ = publisher.Close() })

	issued := time.Now().UTC().Truncate(time.Second)
	findings := []domain.HazardFinding{
		{HazardType: "Flash Flood", Probability: 0.7, Severity: domain.SeveritySevere, Description: "flash flood test"},
		{HazardType: "Minor Flood", Probability: 0.45, Severity: domain.SeverityLow, Description: "below alert threshold"},
		{HazardType: "Extreme Heat Wave", Probability: 0.9, Severity: domain.SeverityExtreme, Description: "heat test"},
	}
	require.NoError(t, publisher.PublishAlerts(ctx, "mumbai", findings, issued))

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testAlertTopic,
		GroupID:     fmt.Sprintf("test-alerts-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	received := make([]kafka.AlertEvent, 0, 2)
	headers := make([]map[string]string, 0, 2)
	for len(received) < 2 {
		readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
		msg, err := consumer.ReadMessage(readCtx)
		readCancel()
		require.NoError(t, err, "read alert from topic")

		assert.Equal(t, []byte("mumbai"), msg.Key)

		var event kafka.AlertEvent
		require.NoError(t, json.Unmarshal(msg.Value, &event))
		received = append(received, event)

		h := make(map[string]string, len(msg.Headers))
		for _, header := range msg.Headers {
			h[header.Key] = string(header.Value)
		}
		headers = append(headers, h)
	}

	assert.Equal(t, "Flash Flood", received[0].HazardType)
	assert.Equal(t, domain.SeveritySevere, received[0].Severity)
	assert.NotEmpty(t, received[0].ID)
	assert.Equal(t, "Flash Flood", headers[0]["hazard_type"])
	assert.Equal(t, issued.Format(time.RFC3339), headers[0]["issued_at"])

	assert.Equal(t, "Extreme Heat Wave", received[1].HazardType)
	assert.Equal(t, domain.SeverityExtreme, received[1].Severity)

	// The Low finding was filtered out: no third message arrives.
	readCtx, readCancel := context.WithTimeout(ctx, 5*time.Second)
	_, err := consumer.ReadMessage(readCtx)
	readCancel()
	assert.Error(t, err, "expected no message for low-severity finding")
}
