package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/ARUNKUMAR069/RescueX/internal/domain"
	"github.com/ARUNKUMAR069/RescueX/internal/observability"
)

// AlertEvent is the wire form of a published hazard alert.
type AlertEvent struct {
	ID          string    `json:"id"`
	Location    string    `json:"location"`
	HazardType  string    `json:"hazard_type"`
	Probability float64   `json:"probability"`
	Severity    string    `json:"severity"`
	Description string    `json:"description"`
	IssuedAt    time.Time `json:"issued_at"`
}

// AlertPublisher produces hazard alerts to a Kafka topic. Only Severe and
// Extreme findings are published; lower tiers stay in the API response.
type AlertPublisher struct {
	writer  *kafkago.Writer
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewAlertPublisher creates a Kafka producer for the alert topic.
func NewAlertPublisher(brokers []string, topic string, logger *slog.Logger, metrics *observability.Metrics) *AlertPublisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &AlertPublisher{writer: w, logger: logger, metrics: metrics}
}

// PublishAlerts publishes the alert-worthy findings from one prediction in a
// single WriteMessages call. Findings below Severe are skipped silently; zero
// alert-worthy findings is a no-op.
func (p *AlertPublisher) PublishAlerts(ctx context.Context, location string, findings []domain.HazardFinding, issuedAt time.Time) error {
	var msgs []kafkago.Message
	for _, f := range findings {
		if !alertWorthy(f) {
			continue
		}
		msg, err := serializeAlert(AlertEvent{
			ID:          uuid.NewString(),
			Location:    location,
			HazardType:  f.HazardType,
			Probability: f.Probability,
			Severity:    f.Severity,
			Description: f.Description,
			IssuedAt:    issuedAt,
		})
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	if len(msgs) == 0 {
		return nil
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		p.metrics.AlertErrors.Inc()
		return fmt.Errorf("publish alerts: %w", err)
	}

	p.metrics.AlertsPublished.Add(float64(len(msgs)))
	p.logger.Info("alerts published", "location", location, "count", len(msgs))
	return nil
}

func (p *AlertPublisher) Close() error {
	return p.writer.Close()
}

func alertWorthy(f domain.HazardFinding) bool {
	return f.Severity == domain.SeveritySevere || f.Severity == domain.SeverityExtreme
}

// serializeAlert marshals an AlertEvent into a Kafka message keyed by
// location so alerts for one place stay ordered within a partition.
func serializeAlert(event AlertEvent) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize alert: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(event.Location),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "hazard_type", Value: []byte(event.HazardType)},
			{Key: "severity", Value: []byte(event.Severity)},
			{Key: "issued_at", Value: []byte(event.IssuedAt.Format(time.RFC3339))},
		},
	}, nil
}
