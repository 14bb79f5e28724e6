package conversations

import (
	"context"

	"github.com/dmitrijs2005/meggy/internal/server/models"
)

// Repository stores conversations and their append-only messages, scoped
// per user.
type Repository interface {
	Create(ctx context.Context, conv *models.Conversation) (*models.Conversation, error)
	Get(ctx context.Context, userID, id string) (*models.Conversation, error)
	// List returns the user's conversations, most recently updated first.
	List(ctx context.Context, userID string) ([]models.Conversation, error)
	Update(ctx context.Context, conv *models.Conversation) (*models.Conversation, error)
	// Delete removes the conversation together with its messages.
	Delete(ctx context.Context, userID, id string) error
	// DeleteByAgent removes every conversation held with agentID.
	DeleteByAgent(ctx context.Context, userID, agentID string) error

	// AddMessages appends msgs in order and moves the conversation's
	// UpdatedAt to the last message's CreatedAt.
	AddMessages(ctx context.Context, userID, conversationID string, msgs ...*models.Message) error
	// Messages returns one conversation's messages in creation order, or all
	// of the user's messages when conversationID is empty.
	Messages(ctx context.Context, userID, conversationID string) ([]models.Message, error)
	GetMessage(ctx context.Context, userID, id string) (*models.Message, error)
}
