// Package alerts defines types for Kafka event production of alert lifecycle events.
package alerts

import (
	"time"

	"github.com/cybersecalert/correlator-backend/model"
)

// AlertCreatedEvent represents an alert creation event published to Kafka.
type AlertCreatedEvent struct {
	EventType     string    `json:"event_type"`
	EventID       string    `json:"event_id"`
	EventTime     time.Time `json:"event_time"`
	SchemaVersion string    `json:"schema_version"`

	Alert model.Alert `json:"alert"`
}
