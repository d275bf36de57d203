package lifecycle

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"brewhouse/kv"
	"brewhouse/models"
	"brewhouse/mq"
)

// DefaultReadyDelay is how long after assembly an order is marked ready.
const DefaultReadyDelay = 10 * time.Second

// Scheduler runs the single automatic transition, preparing -> ready, as a
// cancelable one-shot timer per order. Timers are keyed by order id and the
// fired callback re-reads the order from the gateway, so a stale in-memory
// snapshot can never be acted on.
type Scheduler struct {
	KV    kv.Store
	Bus   *mq.Bus
	Delay time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewScheduler(store kv.Store, bus *mq.Bus, delay time.Duration) *Scheduler {
	if delay <= 0 {
		delay = DefaultReadyDelay
	}
	return &Scheduler{
		KV:     store,
		Bus:    bus,
		Delay:  delay,
		timers: make(map[string]*time.Timer),
	}
}

// ScheduleReady arms the preparing -> ready timer for an order id. Arming
// again for the same id replaces the previous timer.
func (s *Scheduler) ScheduleReady(orderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[orderID]; ok {
		t.Stop()
	}
	s.timers[orderID] = time.AfterFunc(s.Delay, func() {
		s.fire(orderID)
	})
}

// Cancel disarms a pending timer, if any.
func (s *Scheduler) Cancel(orderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[orderID]; ok {
		t.Stop()
		delete(s.timers, orderID)
	}
}

// Stop disarms every pending timer during shutdown.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

func (s *Scheduler) fire(orderID string) {
	s.mu.Lock()
	delete(s.timers, orderID)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var order models.Order
	err := kv.GetJSON(ctx, s.KV, kv.OrderPrefix+orderID, &order)
	if errors.Is(err, kv.ErrNotFound) {
		log.Printf("lifecycle: order %s vanished before ready transition", orderID)
		return
	}
	if err != nil {
		log.Printf("lifecycle: failed to load order %s: %v", orderID, err)
		return
	}

	// The operator may already have advanced the order.
	if order.Status != StatusPreparing {
		return
	}
	order.Status = StatusReady
	if err := s.KV.Set(ctx, kv.OrderPrefix+orderID, order); err != nil {
		log.Printf("lifecycle: failed to persist ready transition for %s: %v", orderID, err)
		return
	}
	if s.Bus != nil {
		s.Bus.Emit(ctx, mq.StatusEvent{OrderID: order.ID, OrderNumber: order.OrderNumber, Status: order.Status})
	}
}
