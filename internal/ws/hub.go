package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/waseem96525/GPStrackingapp/internal/model"
)

const redisChannel = "gpstracking:locations"

// Hub fans accepted location samples out to every connected observer.
//
// Delivery runs through a single event loop, so each observer receives events
// in the order they were published (the order samples were accepted). Each
// observer owns an independent bounded send buffer; a full or closed buffer
// drops events for that observer only and never blocks the publisher or the
// other observers. There is no backlog: observers connecting late must query
// the latest-locations endpoint themselves.
//
// When a Redis client is provided, events are published through Redis Pub/Sub
// so multiple instances deliver to their local observers. With a nil client
// the hub runs local-only.
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client
	broadcast  chan *model.WSEvent

	rdb *redis.Client
}

// NewHub creates a new broadcast hub. rdb may be nil for local-only fan-out.
func NewHub(rdb *redis.Client) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *model.WSEvent, 256),
		rdb:        rdb,
	}
}

// Run starts the Hub's main event loop
func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.subscribeRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.addClient(client)

		case client := <-h.unregister:
			h.removeClient(client)

		case event := <-h.broadcast:
			h.broadcastToLocal(event)
		}
	}
}

// Register queues a client for registration with the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister queues a client for removal; its send buffer is closed and any
// queued deliveries are dropped.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Publish hands an event to the hub without blocking the caller. If the hub
// backlog is full the event is dropped for every local observer; the submit
// path never waits on observers.
func (h *Hub) Publish(event *model.WSEvent) {
	if h.rdb != nil {
		h.publishToRedis(event)
		return
	}

	select {
	case h.broadcast <- event:
	default:
		log.Printf("⚠️  Broadcast backlog full, dropping %s event", event.Type)
	}
}

// ClientCount returns the number of connected observers on this instance
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	log.Printf("✅ Observer connected: %s (total: %d)", client.ID, len(h.clients))
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		log.Printf("❌ Observer disconnected: %s (total: %d)", client.ID, len(h.clients))
	}
}

// broadcastToLocal delivers an event to every connected local observer with a
// non-blocking send. An observer whose buffer is full is disconnected rather
// than allowed to stall the rest.
func (h *Hub) broadcastToLocal(event *model.WSEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshaling broadcast event: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			delete(h.clients, client)
			close(client.send)
		}
	}
}

// ========== Redis Pub/Sub for Horizontal Scaling ==========

// publishToRedis publishes an event to Redis for cross-instance delivery
func (h *Hub) publishToRedis(event *model.WSEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshaling for Redis: %v", err)
		return
	}

	if err := h.rdb.Publish(context.Background(), redisChannel, data).Err(); err != nil {
		log.Printf("Error publishing to Redis: %v", err)
	}
}

// subscribeRedis subscribes to Redis and delivers events to local observers
func (h *Hub) subscribeRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, redisChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	log.Println("📡 Redis Pub/Sub subscriber started")

	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-ch:
			var event model.WSEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("Error unmarshaling Redis message: %v", err)
				continue
			}
			h.broadcastToLocal(&event)
		}
	}
}
