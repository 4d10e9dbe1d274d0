package domain

import "time"

// Message and Conversation back the chat tables reserved for the future
// client messaging feature. The backoffice only reads them today.

type Message struct {
	ID             int64
	ConversationID int64
	SenderID       int64
	Content        string
	CreatedAt      time.Time
	ReadAt         time.Time
}

// MessageWithSender is a message joined with its sender's display name.
type MessageWithSender struct {
	Message
	SenderName string
}

type Conversation struct {
	ID        int64
	UserOneID int64
	UserTwoID int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
