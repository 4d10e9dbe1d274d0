package ports

import (
	"context"

	"github.com/digitalget/services-site/internal/core/domain"
)

// MessageRepository reads the reserved chat tables for backoffice views.
type MessageRepository interface {
	Recent(ctx context.Context, limit int) ([]domain.MessageWithSender, error)
	RecentConversations(ctx context.Context, limit int) ([]domain.Conversation, error)
	Count(ctx context.Context) (int64, error)
}
