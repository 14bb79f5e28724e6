package models

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is append-only; within a conversation messages are ordered by
// CreatedAt.
type Message struct {
	ID           string    `json:"id"`
	Conversation string    `json:"conversation"`
	Role         Role      `json:"role"`
	Content      string    `json:"content"`
	TokensUsed   *int      `json:"tokens_used,omitempty"`
	Model        string    `json:"model,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// MessagePreview is the last-message summary shown in conversation lists.
type MessagePreview struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Conversation belongs to exactly one agent. Messages is filled on detail
// reads; MessageCount and LastMessage on list reads.
type Conversation struct {
	ID           string          `json:"id"`
	Agent        string          `json:"agent"`
	Title        string          `json:"title"`
	Messages     []Message       `json:"messages,omitempty"`
	MessageCount *int            `json:"message_count,omitempty"`
	LastMessage  *MessagePreview `json:"last_message,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type CreateConversationRequest struct {
	Agent string `json:"agent"`
	Title string `json:"title,omitempty"`
}

type UpdateConversationRequest struct {
	Title *string `json:"title,omitempty"`
}

type SendMessageRequest struct {
	Content string `json:"content"`
}

// SendMessageResponse carries both sides of a single chat round trip.
type SendMessageResponse struct {
	UserMessage      Message `json:"user_message"`
	AssistantMessage Message `json:"assistant_message"`
}
