package live

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// SnapshotLoader fetches the current full snapshot of a topic, sent to a
// subscriber immediately after it subscribes.
type SnapshotLoader func(topic string) (interface{}, error)

// controlMessage is the only client→server message shape: topic
// subscription management.
type controlMessage struct {
	Action string `json:"action"` // "subscribe" | "unsubscribe"
	Topic  string `json:"topic"`
}

// TopicFilter decides whether this connection may subscribe to a topic.
// A nil filter allows everything.
type TopicFilter func(topic string) bool

// Client represents a single WebSocket connection
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	loader SnapshotLoader
	allow  TopicFilter

	// topics this client subscribes to; owned by the hub goroutine
	topics map[string]bool
}

// NewClient creates a new WebSocket client
func NewClient(hub *Hub, conn *websocket.Conn, loader SnapshotLoader, allow TopicFilter) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, 256),
		loader: loader,
		allow:  allow,
		topics: make(map[string]bool),
	}
}

// ReadPump reads subscription control messages (and handles pong/close)
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var msg controlMessage
		if err := json.Unmarshal(data, &msg); err != nil || msg.Topic == "" {
			continue
		}

		switch msg.Action {
		case "subscribe":
			if c.allow != nil && !c.allow(msg.Topic) {
				continue
			}
			c.hub.Subscribe(c, msg.Topic)
			c.sendInitialSnapshot(msg.Topic)
		case "unsubscribe":
			c.hub.Unsubscribe(c, msg.Topic)
		}
	}
}

// sendInitialSnapshot pushes the current topic state to this client only,
// so a new subscriber does not wait for the next mutation.
func (c *Client) sendInitialSnapshot(topic string) {
	if c.loader == nil {
		return
	}
	payload, err := c.loader(topic)
	if err != nil {
		// Subscription failures are silent except for board post streams
		if strings.HasPrefix(topic, "board:") {
			c.enqueue(&Event{Type: "error", Topic: topic, Payload: "게시글을 불러오지 못했습니다"})
		}
		return
	}
	c.enqueue(&Event{Type: "snapshot", Topic: topic, Payload: payload})
}

func (c *Client) enqueue(event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	c.hub.deliverTo(c, data)
}

// WritePump sends messages to the WebSocket
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{}) //nolint:errcheck
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message) //nolint:errcheck
			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
