package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/sesa/portal/internal/app/models"
	"github.com/sesa/portal/internal/pkg/websocket"
)

// ChatStore is the chat message persistence used by ChatService
type ChatStore interface {
	Create(ctx context.Context, message *models.ChatMessage) error
	GetRecentByDepartment(ctx context.Context, departmentID int64, limit int) ([]models.ChatMessage, error)
}

// DefaultChatHistoryLimit bounds how many messages a room replays
const DefaultChatHistoryLimit = 50

// ChatService persists department chat traffic flowing through the hub
type ChatService struct {
	chatStore ChatStore
	hub       *websocket.Hub
	messages  chan *websocket.Message
	logger    zerolog.Logger
}

// NewChatService creates a new chat service
func NewChatService(chatStore ChatStore, hub *websocket.Hub, logger zerolog.Logger) *ChatService {
	return &ChatService{
		chatStore: chatStore,
		hub:       hub,
		messages:  make(chan *websocket.Message, 64),
		logger:    logger,
	}
}

// Start subscribes to the hub and persists every broadcast message.
// Runs until the context is cancelled.
func (s *ChatService) Start(ctx context.Context) {
	s.hub.AddMessageListener(s.messages)

	go func() {
		defer s.hub.RemoveMessageListener(s.messages)

		for {
			select {
			case msg := <-s.messages:
				s.persist(msg)
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (s *ChatService) persist(msg *websocket.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	record := &models.ChatMessage{
		DepartmentID: msg.DepartmentID,
		UserID:       msg.SenderID,
		Content:      msg.Content,
	}

	if err := s.chatStore.Create(ctx, record); err != nil {
		s.logger.Error().Err(err).
			Int64("departmentID", msg.DepartmentID).
			Int64("senderID", msg.SenderID).
			Msg("Failed to persist chat message")
		return
	}

	msg.ID = record.ID
}

// GetHistory returns the most recent messages in a department room in
// chronological order
func (s *ChatService) GetHistory(ctx context.Context, departmentID int64, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 || limit > 200 {
		limit = DefaultChatHistoryLimit
	}

	return s.chatStore.GetRecentByDepartment(ctx, departmentID, limit)
}
