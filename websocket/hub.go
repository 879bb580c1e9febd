// websocket/hub.go
package websocket

import (
	"errors"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type MessageType string

const (
	MessageTypeUploadProgress  MessageType = "UPLOAD_PROGRESS"
	MessageTypeUploadCompleted MessageType = "UPLOAD_COMPLETED"
	MessageTypeSubscribe       MessageType = "SUBSCRIBE_BATCH"
	MessageTypeUnsubscribe     MessageType = "UNSUBSCRIBE_BATCH"
	MessageTypeError           MessageType = "ERROR"
)

type WebSocketMessage struct {
	Type      MessageType `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
	BatchID   string      `json:"batchId,omitempty"`
}

type Client struct {
	ID      uuid.UUID
	Email   string
	Conn    *websocket.Conn
	Hub     *Hub
	Send    chan WebSocketMessage
	Batches map[string]bool
	mu      sync.RWMutex
}

type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.removeLocked(client)
			h.mu.Unlock()
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// removeLocked drops client and closes its queue once. h.mu must be held.
func (h *Hub) removeLocked(client *Client) {
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.Send)
	}
}

var (
	errClientGone      = errors.New("client is no longer registered")
	errClientQueueFull = errors.New("client send channel is full")
)

// deliver queues message for client without blocking. The read lock keeps
// removeLocked from closing client.Send while the send is attempted.
func (h *Hub) deliver(client *Client, message WebSocketMessage) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if !h.clients[client] {
		return errClientGone
	}
	select {
	case client.Send <- message:
		return nil
	default:
		return errClientQueueFull
	}
}

// BroadcastToBatch sends message to every client watching batchID. Clients
// whose queue is full are dropped.
func (h *Hub) BroadcastToBatch(batchID string, message WebSocketMessage) {
	message.BatchID = batchID
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now()
	}

	var slow []*Client
	for _, client := range h.GetBatchSubscribers(batchID) {
		if errors.Is(h.deliver(client, message), errClientQueueFull) {
			slow = append(slow, client)
		}
	}
	if len(slow) == 0 {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, client := range slow {
		h.removeLocked(client)
	}
}

// PublishToBatch wraps payload in a message of type msgType.
func (h *Hub) PublishToBatch(batchID string, msgType MessageType, payload interface{}) {
	h.BroadcastToBatch(batchID, WebSocketMessage{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now(),
	})
}

// GetClientCount returns the number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// GetBatchSubscribers returns all clients watching a batch
func (h *Hub) GetBatchSubscribers(batchID string) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var subscribers []*Client
	for client := range h.clients {
		if client.IsSubscribedToBatch(batchID) {
			subscribers = append(subscribers, client)
		}
	}
	return subscribers
}

func (c *Client) SubscribeToBatch(batchID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Batches == nil {
		c.Batches = make(map[string]bool)
	}
	c.Batches[batchID] = true
}

func (c *Client) UnsubscribeFromBatch(batchID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.Batches, batchID)
}

func (c *Client) IsSubscribedToBatch(batchID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, exists := c.Batches[batchID]
	return exists
}
