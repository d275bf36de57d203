// Package tracker pushes order status transitions to websocket
// subscribers. Each connection watches a single order id.
package tracker

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"brewhouse/mq"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type client struct {
	orderID string
	send    chan []byte
}

// Hub fans status events out to the clients watching each order.
type Hub struct {
	register   chan *client
	unregister chan *client
	events     chan mq.StatusEvent
	done       chan struct{}

	stopOnce sync.Once
}

func NewHub(bus *mq.Bus) *Hub {
	h := &Hub{
		register:   make(chan *client),
		unregister: make(chan *client),
		events:     make(chan mq.StatusEvent, 16),
		done:       make(chan struct{}),
	}
	bus.Subscribe(func(ev mq.StatusEvent) {
		select {
		case h.events <- ev:
		case <-h.done:
		}
	})
	return h
}

func (h *Hub) Run() {
	clients := make(map[*client]struct{})
	for {
		select {
		case c := <-h.register:
			clients[c] = struct{}{}
		case c := <-h.unregister:
			if _, ok := clients[c]; ok {
				delete(clients, c)
				close(c.send)
			}
		case ev := <-h.events:
			data, err := json.Marshal(ev)
			if err != nil {
				log.Printf("tracker: failed to marshal event: %v", err)
				continue
			}
			for c := range clients {
				if c.orderID != ev.OrderID {
					continue
				}
				select {
				case c.send <- data:
				default:
					// slow consumer, drop it
					delete(clients, c)
					close(c.send)
				}
			}
		case <-h.done:
			for c := range clients {
				close(c.send)
			}
			return
		}
	}
}

func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// Track handles GET /ws/orders/:orderid — upgrades the connection and
// streams {orderId, status} frames until the client goes away.
func (h *Hub) Track(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderid")
	if orderID == "" {
		http.Error(w, "Order id is required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("tracker: upgrade failed: %v", err)
		return
	}

	c := &client{orderID: orderID, send: make(chan []byte, 8)}
	h.register <- c

	// reader: only used to observe the close
	go func() {
		defer func() {
			select {
			case h.unregister <- c:
			case <-h.done:
			}
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	go func() {
		defer conn.Close()
		for data := range c.send {
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}
	}()
}
