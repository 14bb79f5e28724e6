package models

import "time"

const DefaultConversationTitle = "Chat with Meggy"

type Conversation struct {
	ID        string
	UserID    string
	AgentID   string
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Message struct {
	ID             string
	ConversationID string
	Role           string
	Content        string
	TokensUsed     *int
	Model          string
	CreatedAt      time.Time
}
