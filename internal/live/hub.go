package live

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisPubSubChannel = "choir_snapshots"

// Event is one message pushed to subscribers. Snapshot events always carry
// the full replacement state of their topic, never a delta.
type Event struct {
	Type    string      `json:"type"` // "snapshot", "error"
	Topic   string      `json:"topic"`
	Payload interface{} `json:"payload"`
}

// Hub manages WebSocket clients and fans full-snapshot events out to every
// subscriber of a topic. Topic entries are reference counted: the first
// subscriber creates the entry, the last one leaving tears it down.
type Hub struct {
	// Registered clients grouped by topic
	topics map[string]map[*Client]bool

	// Register/unregister channels
	register   chan *Client
	unregister chan *Client

	subscribe   chan *subscription
	unsubscribe chan *subscription

	// Broadcast to one topic's subscribers
	broadcast chan *Event

	// Single-client delivery (initial snapshots). Client send channels
	// are written and closed only inside Run, so these go through the
	// loop too.
	deliver chan *delivery

	mu          sync.RWMutex
	clients     map[*Client]bool
	redisClient *redis.Client
	instanceID  string
	ctx         context.Context
	cancel      context.CancelFunc
}

type redisMessage struct {
	Origin string `json:"origin"`
	Event  *Event `json:"event"`
}

type subscription struct {
	client *Client
	topic  string
}

type delivery struct {
	client *Client
	data   []byte
}

// NewHub creates a new Hub
func NewHub(redisClient *redis.Client) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		topics:      make(map[string]map[*Client]bool),
		clients:     make(map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		subscribe:   make(chan *subscription),
		unsubscribe: make(chan *subscription),
		broadcast:   make(chan *Event, 256),
		deliver:     make(chan *delivery, 64),
		redisClient: redisClient,
		instanceID:  uuid.New().String(),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Subscribe attaches a client to a topic stream
func (h *Hub) Subscribe(client *Client, topic string) {
	h.subscribe <- &subscription{client: client, topic: topic}
}

// Unsubscribe detaches a client from a topic stream
func (h *Hub) Unsubscribe(client *Client, topic string) {
	h.unsubscribe <- &subscription{client: client, topic: topic}
}

// SubscriberCount returns the number of live subscribers of a topic
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	// Start Redis relay if Redis is available
	if h.redisClient != nil {
		go h.subscribeRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				for topic := range client.topics {
					h.dropSubscriber(topic, client)
				}
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case sub := <-h.subscribe:
			h.mu.Lock()
			if h.clients[sub.client] {
				if h.topics[sub.topic] == nil {
					h.topics[sub.topic] = make(map[*Client]bool)
				}
				h.topics[sub.topic][sub.client] = true
				sub.client.topics[sub.topic] = true
			}
			h.mu.Unlock()

		case sub := <-h.unsubscribe:
			h.mu.Lock()
			delete(sub.client.topics, sub.topic)
			h.dropSubscriber(sub.topic, sub.client)
			h.mu.Unlock()

		case d := <-h.deliver:
			h.mu.Lock()
			// A client dropped before its delivery was serviced loses
			// the message; its send channel is already closed
			if h.clients[d.client] {
				select {
				case d.client.send <- d.data:
				default:
				}
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.mu.Lock()
			if subscribers, ok := h.topics[event.Topic]; ok {
				data, err := json.Marshal(event)
				if err == nil {
					for client := range subscribers {
						select {
						case client.send <- data:
						default:
							// Slow consumer: drop it entirely
							for topic := range client.topics {
								h.dropSubscriber(topic, client)
							}
							close(client.send)
							delete(h.clients, client)
						}
					}
				}
			}
			h.mu.Unlock()

		case <-h.ctx.Done():
			return
		}
	}
}

// dropSubscriber removes a client from a topic and deletes the topic entry
// when the last subscriber leaves. Callers hold h.mu.
func (h *Hub) dropSubscriber(topic string, client *Client) {
	if subscribers, ok := h.topics[topic]; ok {
		delete(subscribers, client)
		if len(subscribers) == 0 {
			delete(h.topics, topic)
		}
	}
}

// Publish fans a full snapshot out to every subscriber of topic
// (local + Redis publish for other instances)
func (h *Hub) Publish(topic string, payload interface{}) {
	event := &Event{Type: "snapshot", Topic: topic, Payload: payload}

	// Local broadcast
	h.broadcast <- event

	// Publish to Redis for multi-instance support
	if h.redisClient != nil {
		msg := &redisMessage{Origin: h.instanceID, Event: event}
		data, err := json.Marshal(msg)
		if err == nil {
			h.redisClient.Publish(h.ctx, redisPubSubChannel, data) //nolint:errcheck
		}
	}
}

// deliverTo hands one client's message to the run loop. Nothing outside
// Run may write to a client's send channel; Run also closes it.
func (h *Hub) deliverTo(client *Client, data []byte) {
	select {
	case h.deliver <- &delivery{client: client, data: data}:
	case <-h.ctx.Done():
	}
}

// PublishError sends an error event to a topic's subscribers. Only the
// board post stream surfaces subscription failures; other topics fail
// silently, so callers opt in explicitly.
func (h *Hub) PublishError(topic string, message string) {
	h.broadcast <- &Event{Type: "error", Topic: topic, Payload: message}
}

// subscribeRedis listens for snapshots published by other instances
func (h *Hub) subscribeRedis() {
	pubsub := h.redisClient.Subscribe(h.ctx, redisPubSubChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var rm redisMessage
			if err := json.Unmarshal([]byte(msg.Payload), &rm); err == nil && rm.Event != nil {
				// Skip own messages (already broadcast locally),
				// only relay what other instances published
				if rm.Origin != h.instanceID {
					h.broadcast <- rm.Event
				}
			}
		case <-h.ctx.Done():
			return
		}
	}
}

// Stop gracefully shuts down the hub
func (h *Hub) Stop() {
	h.cancel()
}
