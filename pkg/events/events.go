package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	redisclient "github.com/pratododia/cardapio-backend/pkg/redis"
)

// Menu event types carried over the live stream.
const (
	TypeDishCreated  = "dish_created"
	TypeDishDeleted  = "dish_deleted"
	TypeDishUpdated  = "dish_updated"
	TypeStockChanged = "stock_changed"
)

// MenuEvent describes a change to the public menu or a dish's stock.
type MenuEvent struct {
	Type           string    `json:"type"`
	DishID         uuid.UUID `json:"dish_id"`
	RemainingStock *int      `json:"remaining_stock,omitempty"`
	Active         *bool     `json:"active,omitempty"`
	At             time.Time `json:"at"`
}

// Publisher broadcasts menu events to live subscribers.
type Publisher interface {
	PublishMenuEvent(ctx context.Context, event MenuEvent) error
}

type redisPublisher struct {
	client *redisclient.Client
}

// NewRedisPublisher publishes menu events on the shared redis channel.
func NewRedisPublisher(client *redisclient.Client) Publisher {
	return &redisPublisher{client: client}
}

func (p *redisPublisher) PublishMenuEvent(ctx context.Context, event MenuEvent) error {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal menu event: %w", err)
	}
	return p.client.Publish(ctx, p.client.MenuEventsChannel(), payload)
}

// NoopPublisher drops every event. Used when redis is unavailable and in tests.
type NoopPublisher struct{}

func (NoopPublisher) PublishMenuEvent(context.Context, MenuEvent) error { return nil }

// StockChanged builds a stock level event for a dish.
func StockChanged(dishID uuid.UUID, remaining int) MenuEvent {
	return MenuEvent{
		Type:           TypeStockChanged,
		DishID:         dishID,
		RemainingStock: &remaining,
		At:             time.Now().UTC(),
	}
}
