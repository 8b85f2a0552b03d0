package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sesa/portal/internal/app/models"
)

// ChatRepository handles department chat message persistence
type ChatRepository struct {
	db *pgxpool.Pool
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{
		db: db,
	}
}

// Create stores a chat message
func (r *ChatRepository) Create(ctx context.Context, message *models.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (department_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		message.DepartmentID, message.UserID, message.Content,
	).Scan(&message.ID, &message.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating chat message: %w", err)
	}

	return nil
}

// GetRecentByDepartment returns the latest messages in a room in
// chronological order
func (r *ChatRepository) GetRecentByDepartment(ctx context.Context, departmentID int64, limit int) ([]models.ChatMessage, error) {
	query := `
		SELECT m.id, m.department_id, m.user_id, m.content, m.created_at,
		       COALESCE(p.full_name, '') as author_name
		FROM (
			SELECT id, department_id, user_id, content, created_at
			FROM chat_messages
			WHERE department_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		) m
		LEFT JOIN profiles p ON m.user_id = p.user_id
		ORDER BY m.created_at ASC
	`

	rows, err := r.db.Query(ctx, query, departmentID, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying chat messages: %w", err)
	}
	defer rows.Close()

	var messages []models.ChatMessage
	for rows.Next() {
		var message models.ChatMessage
		if err := rows.Scan(
			&message.ID, &message.DepartmentID, &message.UserID,
			&message.Content, &message.CreatedAt, &message.AuthorName,
		); err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}
