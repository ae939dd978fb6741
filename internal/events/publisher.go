// Package events publishes order lifecycle notifications. Publishing is
// best effort and optional: a nil Publisher disables it.
package events

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

const OrderSubmittedTopic = "orderdesk.orders.submitted"

// OrderSubmittedEvent is emitted after the sink acknowledges a dispatch.
type OrderSubmittedEvent struct {
	EventType   string    `json:"event_type"`
	OrderID     string    `json:"order_id"`
	Branch      string    `json:"branch"`
	SalesPerson string    `json:"sales_person"`
	ItemCount   int       `json:"item_count"`
	Subtotal    float64   `json:"subtotal"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, subject string, payload []byte) error
}

type NATSPublisher struct {
	conn *nats.Conn
}

func Connect(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, subject string, payload []byte) error {
	return p.conn.Publish(subject, payload)
}

func (p *NATSPublisher) Close() {
	p.conn.Close()
}
