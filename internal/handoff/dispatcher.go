// Package handoff turns persisted orders into outward notifications: a pre-filled chat
// link for the shopper or customer and an event on the order topic.
//
// Nothing here is allowed to fail an order. Publish errors are logged and dropped.
package handoff

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/pkg/broker"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	EventOrderPlaced        = "OrderPlaced"
	EventOrderStatusChanged = "OrderStatusChanged"
)

type Config struct {
	ChatNumber    string
	StoreName     string
	CountryCode   string
	DeliveryLines []string
}

type Event struct {
	EventID   string      `json:"event_id"`
	EventType string      `json:"event_type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

type StatusChangedPayload struct {
	OrderID        string            `json:"order_id"`
	CustomerName   string            `json:"customer_name"`
	PreviousStatus model.OrderStatus `json:"previous_status"`
	Status         model.OrderStatus `json:"status"`
}

// Handoff is what the shopper gets back after checkout.
type Handoff struct {
	Message  string `json:"message"`
	ChatLink string `json:"chat_link"`
}

type Dispatcher struct {
	cfg       Config
	publisher broker.Publisher
	logger    logger.ZapLogger
}

// NewDispatcher accepts a nil publisher; events are then skipped.
func NewDispatcher(cfg Config, publisher broker.Publisher, log logger.ZapLogger) *Dispatcher {
	return &Dispatcher{cfg: cfg, publisher: publisher, logger: log}
}

// OrderPlaced builds the chat handoff for order and publishes an OrderPlaced event when the
// order was persisted (order.ID set).
func (d *Dispatcher) OrderPlaced(ctx context.Context, order *model.Order) Handoff {
	msg := OrderMessage(order, d.cfg.DeliveryLines)
	h := Handoff{Message: msg, ChatLink: ChatLink(d.cfg.ChatNumber, msg)}

	if order.ID != "" {
		d.publish(ctx, order.ID, EventOrderPlaced, order)
	}
	return h
}

// StatusChanged publishes the transition and, for deliveries to a known phone number,
// returns a chat link that notifies the customer. The link is "" otherwise.
func (d *Dispatcher) StatusChanged(ctx context.Context, order *model.Order, previous model.OrderStatus) string {
	d.publish(ctx, order.ID, EventOrderStatusChanged, StatusChangedPayload{
		OrderID:        order.ID,
		CustomerName:   order.CustomerName,
		PreviousStatus: previous,
		Status:         order.Status,
	})

	if order.Status != model.OrderStatusDelivered || order.CustomerPhone == nil {
		return ""
	}
	phone := NormalizePhone(*order.CustomerPhone, d.cfg.CountryCode)
	if phone == "" {
		return ""
	}
	return ChatLink(phone, DeliveredMessage(order.CustomerName, d.cfg.StoreName))
}

func (d *Dispatcher) publish(ctx context.Context, key, eventType string, payload interface{}) {
	if d.publisher == nil {
		return
	}

	data, err := json.Marshal(Event{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		d.logger.Error("Failed to marshal order event", zap.String("event_type", eventType), zap.Error(err))
		return
	}

	if err := d.publisher.Publish(ctx, key, data); err != nil {
		d.logger.Warn("Failed to publish order event",
			zap.String("event_type", eventType),
			zap.String("order_id", key),
			zap.Error(err),
		)
	}
}
