package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"storefront-service/internal/models"
)

const (
	streamOrders = "ORDERS"

	SubjectOrderCreated = "order.created"
	SubjectOrderPaid    = "order.paid"
)

// OrderEvent is the audit-trail payload published for order lifecycle
// changes.
type OrderEvent struct {
	OrderID     string    `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	UserID      string    `json:"userId"`
	Total       float64   `json:"total"`
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
}

// Publisher publishes order events to NATS JetStream. It is optional
// infrastructure: handlers treat a nil *Publisher as "no eventing".
type Publisher struct {
	conn   *nats.Conn
	js     nats.JetStreamContext
	logger *logrus.Entry
}

// NewPublisher connects to NATS and ensures the orders stream exists.
func NewPublisher(natsURL string, logger *logrus.Logger) (*Publisher, error) {
	conn, err := nats.Connect(natsURL,
		nats.Name("storefront-service"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to get JetStream context: %w", err)
	}

	if _, err := js.AddStream(&nats.StreamConfig{
		Name:     streamOrders,
		Subjects: []string{"order.>"},
	}); err != nil {
		// Stream may already exist; publishing will surface real failures.
		logger.WithError(err).Warn("Failed to ensure orders stream")
	}

	return &Publisher{
		conn:   conn,
		js:     js,
		logger: logger.WithField("component", "order-events"),
	}, nil
}

// Close drains the NATS connection.
func (p *Publisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}

// PublishOrderCreated publishes an order.created event.
func (p *Publisher) PublishOrderCreated(ctx context.Context, order *models.Order) error {
	return p.publish(ctx, SubjectOrderCreated, order)
}

// PublishOrderPaid publishes an order.paid event.
func (p *Publisher) PublishOrderPaid(ctx context.Context, order *models.Order) error {
	return p.publish(ctx, SubjectOrderPaid, order)
}

func (p *Publisher) publish(ctx context.Context, subject string, order *models.Order) error {
	event := OrderEvent{
		OrderID:     order.ID.String(),
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID.String(),
		Total:       order.Total,
		Status:      string(order.Status),
		Timestamp:   time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	if _, err := p.js.Publish(subject, data, nats.Context(ctx)); err != nil {
		p.logger.WithError(err).WithField("subject", subject).Warn("Failed to publish order event")
		return err
	}
	return nil
}
