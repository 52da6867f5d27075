// Package alerts handles Kafka event production for alert lifecycle events.
package alerts

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cybersecalert/correlator-backend/model"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// AlertProducer handles sending alert lifecycle events to Kafka
type AlertProducer struct {
	Writer *kafka.Writer
}

// NewAlertProducer initializes a new Kafka writer for alert events
func NewAlertProducer(brokers []string, topic string) *AlertProducer {
	return &AlertProducer{
		Writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// PublishAlertCreated sends the event to the Kafka topic
func (p *AlertProducer) PublishAlertCreated(ctx context.Context, alert model.Alert) error {

	// Construct the Event Contract
	event := AlertCreatedEvent{
		EventType:     "alert.created",
		EventID:       uuid.New().String(),
		EventTime:     time.Now().UTC(),
		SchemaVersion: "v1",
		Alert:         alert,
	}

	// Marshal to JSON
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	// Messages are keyed by tenant so one tenant's alerts stay ordered
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(alert.TenantID),
		Value: payload,
	})
}

// Close cleans up the Kafka writer
func (p *AlertProducer) Close() error {
	return p.Writer.Close()
}
