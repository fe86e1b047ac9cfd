// Package notify publishes advisory POS events to RabbitMQ. Publish failures
// are logged and dropped: events never gate or roll back anything.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"chickey-pos/internal/connections/rabbitmq"
	"chickey-pos/internal/domain"
	"chickey-pos/internal/logger"
)

const (
	Exchange          = "pos.events"
	KeyOrderPlaced    = "order.placed"
	KeyInventoryShort = "inventory.low_stock"
)

// Publisher is nil-safe: a nil *Publisher drops everything, which is how the
// service runs when RabbitMQ is unreachable at boot.
type Publisher struct {
	client *rabbitmq.Client
	lg     *logger.Logger
}

func New(client *rabbitmq.Client, lg *logger.Logger) (*Publisher, error) {
	if err := client.DeclareTopicExchange(Exchange); err != nil {
		return nil, err
	}
	return &Publisher{client: client, lg: lg}, nil
}

func (p *Publisher) OrderPlaced(o domain.Order) {
	if p == nil {
		return
	}
	p.publish(KeyOrderPlaced, domain.OrderPlacedEvent{
		OrderID:   o.ID,
		Items:     o.Lines,
		Total:     o.Total,
		Timestamp: o.Timestamp,
	})
}

func (p *Publisher) LowStock(items []domain.InventoryItem) {
	if p == nil {
		return
	}
	for _, it := range items {
		p.publish(KeyInventoryShort, domain.LowStockEvent{
			InventoryItemID: it.ID,
			Name:            it.Name,
			Quantity:        it.Quantity,
			MinLevel:        it.MinLevel,
			Unit:            it.Unit,
		})
	}
}

func (p *Publisher) publish(key string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		p.lg.Error("event_marshal_failed", err, map[string]any{"routing_key": key})
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.client.Publish(ctx, Exchange, key, body); err != nil {
		p.lg.Error("event_publish_failed", err, map[string]any{"routing_key": key})
		return
	}
	p.lg.Debug("event_published", map[string]any{"routing_key": key})
}
