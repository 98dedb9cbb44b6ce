package orders

import (
	"encoding/json"
	"time"
)

const (
	TopicOrderCreated = "order.created"
	EventOrderCreated = "OrderCreated"
)

// EventPublisher is the outbound event feed. Publishing is fire-and-forget;
// nothing in this system consumes the feed, it exists for external
// subscribers.
type EventPublisher interface {
	Publish(key, value []byte)
}

// Envelope wraps every published event. Payload holds the event-specific
// body.
type Envelope struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Producer   string          `json:"producer"`
	Payload    json.RawMessage `json:"payload"`
}

type OrderCreatedPayload struct {
	OrderID string      `json:"order_id"`
	Items   []OrderItem `json:"items"`
	Total   float64     `json:"total"`
	Status  Status      `json:"status"`
}
