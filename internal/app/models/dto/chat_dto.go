package dto

import (
	"time"

	"github.com/sesa/portal/internal/app/models"
)

// ChatMessageResponse represents a single chat message
type ChatMessageResponse struct {
	ID           int64     `json:"id"`
	DepartmentID int64     `json:"departmentId"`
	UserID       int64     `json:"userId"`
	AuthorName   string    `json:"authorName,omitempty"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ChatHistoryResponse represents recent messages in a department room
type ChatHistoryResponse struct {
	Messages []ChatMessageResponse `json:"messages"`
}

// FromChatMessage converts a models.ChatMessage to a ChatMessageResponse
func FromChatMessage(m *models.ChatMessage) ChatMessageResponse {
	if m == nil {
		return ChatMessageResponse{}
	}
	return ChatMessageResponse{
		ID:           m.ID,
		DepartmentID: m.DepartmentID,
		UserID:       m.UserID,
		AuthorName:   m.AuthorName,
		Content:      m.Content,
		CreatedAt:    m.CreatedAt,
	}
}
