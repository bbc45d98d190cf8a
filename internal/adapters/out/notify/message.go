// Package notify delivers order status changes outside the service: to a Kafka topic when a
// broker is configured, otherwise to the structured log.
package notify

import (
	"encoding/json"
	"time"

	"printshop/internal/core/ports"
)

// StatusChangedType is the "type" field of every status change message.
const StatusChangedType = "order.status_changed"

// StatusChangedMessage is the JSON body of a status change.
type StatusChangedMessage struct {
	Type          string    `json:"type"`
	OrderID       string    `json:"orderId"`
	TrackingCode  string    `json:"trackingCode"`
	CustomerEmail string    `json:"customerEmail"`
	Status        string    `json:"status"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	OccurredAt    time.Time `json:"occurredAt"`
}

func messageFromEvent(e ports.StatusChangedEvent) StatusChangedMessage {
	return StatusChangedMessage{
		Type:          StatusChangedType,
		OrderID:       e.OrderID.String(),
		TrackingCode:  e.TrackingCode.String(),
		CustomerEmail: e.CustomerEmail,
		Status:        e.Status.String(),
		Title:         e.Title,
		Description:   e.Description,
		OccurredAt:    e.At.UTC(),
	}
}

func encode(e ports.StatusChangedEvent) ([]byte, error) {
	return json.Marshal(messageFromEvent(e))
}
