// Package mq fans order status events out to in-process subscribers and,
// when Redis is configured, publishes them on a channel so other instances
// can observe the same stream.
package mq

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

const statusChannel = "order-status-events"

// StatusEvent reports a single order status transition.
type StatusEvent struct {
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber,omitempty"`
	Status      string `json:"status"`
}

type Listener func(StatusEvent)

type Bus struct {
	mu        sync.RWMutex
	listeners []Listener
	conn      *redis.Client // optional
}

func NewBus() *Bus {
	return &Bus{}
}

// WithRedis attaches a Redis connection used to mirror events on a pub/sub
// channel. Publish failures are logged and do not block delivery to local
// listeners.
func (b *Bus) WithRedis(conn *redis.Client) *Bus {
	b.conn = conn
	return b
}

func (b *Bus) Subscribe(l Listener) {
	b.mu.Lock()
	b.listeners = append(b.listeners, l)
	b.mu.Unlock()
}

// Emit delivers the event to every local listener and mirrors it to Redis
// when configured.
func (b *Bus) Emit(ctx context.Context, ev StatusEvent) {
	b.mu.RLock()
	listeners := make([]Listener, len(b.listeners))
	copy(listeners, b.listeners)
	b.mu.RUnlock()

	for _, l := range listeners {
		l(ev)
	}

	if b.conn == nil {
		return
	}
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("mq: failed to marshal status event: %v", err)
		return
	}
	if err := b.conn.Publish(ctx, statusChannel, data).Err(); err != nil {
		log.Printf("mq: failed to publish status event: %v", err)
	}
}
