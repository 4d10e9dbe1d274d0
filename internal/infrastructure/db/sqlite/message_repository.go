package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/digitalget/services-site/internal/core/domain"
	"github.com/digitalget/services-site/internal/core/ports"
)

// MessageRepository reads the reserved chat tables for backoffice views.
type MessageRepository struct {
	db *sql.DB
}

var _ ports.MessageRepository = (*MessageRepository)(nil)

func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Recent(ctx context.Context, limit int) ([]domain.MessageWithSender, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT m.id, m.conversation_id, m.sender_id, m.content, m.created_at, m.read_at, a.full_name
		 FROM messages m
		 JOIN accounts a ON a.id = m.sender_id
		 ORDER BY m.id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var messages []domain.MessageWithSender
	for rows.Next() {
		var m domain.MessageWithSender
		var readAt sql.NullTime
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Content,
			&m.CreatedAt, &readAt, &m.SenderName); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		if readAt.Valid {
			m.ReadAt = readAt.Time
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *MessageRepository) RecentConversations(ctx context.Context, limit int) ([]domain.Conversation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_one_id, user_two_id, created_at, updated_at
		 FROM conversations ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query conversations: %w", err)
	}
	defer rows.Close()

	var conversations []domain.Conversation
	for rows.Next() {
		var c domain.Conversation
		if err := rows.Scan(&c.ID, &c.UserOneID, &c.UserTwoID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		conversations = append(conversations, c)
	}
	return conversations, rows.Err()
}

func (r *MessageRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return count, nil
}
