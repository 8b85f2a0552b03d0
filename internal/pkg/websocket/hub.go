package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Hub maintains the set of active clients and broadcasts messages to the clients
type Hub struct {
	// Registered clients organized by department ID
	clients map[int64]map[*Client]bool

	// Channel for inbound messages from clients
	broadcast chan *Message

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	// Mutex for message listeners
	listenersMu sync.RWMutex

	// Message listeners
	messageListeners []chan *Message

	// Logger for Hub operations
	logger zerolog.Logger
}

// Message represents a message sent over WebSocket
type Message struct {
	// Type of message, currently always "text"
	Type string `json:"type"`

	// Department room this message belongs to
	DepartmentID int64 `json:"departmentId"`

	// User who sent the message
	SenderID int64 `json:"senderId"`

	// Display name of the sender
	SenderName string `json:"senderName,omitempty"`

	// Message content
	Content string `json:"content"`

	// Timestamp when the message was sent
	Timestamp time.Time `json:"timestamp"`

	// Message ID from the database, set once persisted
	ID int64 `json:"id,omitempty"`
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:        make(chan *Message),
		register:         make(chan *Client),
		unregister:       make(chan *Client),
		clients:          make(map[int64]map[*Client]bool),
		messageListeners: []chan *Message{},
		logger:           logger,
	}
}

// Run starts the hub, handling client registrations and broadcasts
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	departmentID := client.departmentID
	if _, ok := h.clients[departmentID]; !ok {
		h.clients[departmentID] = make(map[*Client]bool)
	}
	h.clients[departmentID][client] = true

	h.logger.Info().
		Int64("departmentID", departmentID).
		Int64("userID", client.userID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	departmentID := client.departmentID
	if _, ok := h.clients[departmentID]; ok {
		if _, ok := h.clients[departmentID][client]; ok {
			delete(h.clients[departmentID], client)
			close(client.send)

			if len(h.clients[departmentID]) == 0 {
				delete(h.clients, departmentID)
			}

			h.logger.Info().
				Int64("departmentID", departmentID).
				Int64("userID", client.userID).
				Str("addr", client.conn.RemoteAddr().String()).
				Msg("Client unregistered")
		}
	}
}

func (h *Hub) broadcastMessage(message *Message) {
	// Listeners first, so persistence sees the message even when the
	// room is otherwise empty
	h.notifyMessageListeners(message)

	h.mu.RLock()
	defer h.mu.RUnlock()

	departmentID := message.DepartmentID
	clients, ok := h.clients[departmentID]
	if !ok {
		h.logger.Debug().
			Int64("departmentID", departmentID).
			Msg("No clients in department room for broadcast")
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("departmentID", departmentID).
			Msg("Failed to marshal message for broadcast")
		return
	}

	for client := range clients {
		select {
		case client.send <- data:
		default:
			// Client's send buffer is full; drop the connection
			h.mu.RUnlock()
			h.unregister <- client
			h.mu.RLock()
		}
	}

	h.logger.Debug().
		Int64("departmentID", departmentID).
		Int("clientCount", len(clients)).
		Msg("Message broadcasted to department room")
}

func (h *Hub) notifyMessageListeners(message *Message) {
	h.listenersMu.RLock()
	defer h.listenersMu.RUnlock()

	for _, listener := range h.messageListeners {
		select {
		case listener <- message:
		default:
			h.logger.Warn().Msg("Skipped slow message listener")
		}
	}
}

// BroadcastToDepartment sends a message to all connected clients in a department room
func (h *Hub) BroadcastToDepartment(message *Message) {
	h.broadcast <- message
}

// GetClientsCount returns the number of connected clients for a department room
func (h *Hub) GetClientsCount(departmentID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.clients[departmentID]; ok {
		return len(clients)
	}
	return 0
}

// AddMessageListener registers a channel to receive all messages
func (h *Hub) AddMessageListener(listener chan *Message) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()

	h.messageListeners = append(h.messageListeners, listener)
	h.logger.Info().Msg("Added new message listener")
}

// RemoveMessageListener removes a listener from the hub
func (h *Hub) RemoveMessageListener(listener chan *Message) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()

	for i, l := range h.messageListeners {
		if l == listener {
			h.messageListeners[i] = h.messageListeners[len(h.messageListeners)-1]
			h.messageListeners = h.messageListeners[:len(h.messageListeners)-1]
			h.logger.Info().Msg("Removed message listener")
			break
		}
	}
}
