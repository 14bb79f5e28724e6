package hooks

import (
	"context"

	"github.com/dmitrijs2005/meggy/internal/client/models"
	"github.com/dmitrijs2005/meggy/internal/client/query"
	"github.com/dmitrijs2005/meggy/internal/client/services"
)

// Conversations exposes the conversation and message endpoints through the
// cache.
type Conversations struct {
	svc   services.ConversationService
	cache *query.Cache
}

func NewConversations(svc services.ConversationService, cache *query.Cache) *Conversations {
	return &Conversations{svc: svc, cache: cache}
}

func (c *Conversations) List(ctx context.Context) ([]models.Conversation, error) {
	return query.Fetch(ctx, c.cache, ConversationsKey(), c.svc.List)
}

func (c *Conversations) Get(ctx context.Context, id string) (*models.Conversation, error) {
	return query.Fetch(ctx, c.cache, ConversationKey(id), func(ctx context.Context) (*models.Conversation, error) {
		return c.svc.Get(ctx, id)
	})
}

func (c *Conversations) Messages(ctx context.Context, conversationID string) ([]models.Message, error) {
	return query.Fetch(ctx, c.cache, MessagesKey(conversationID), func(ctx context.Context) ([]models.Message, error) {
		return c.svc.Messages(ctx, conversationID)
	})
}

func (c *Conversations) Create(ctx context.Context, req models.CreateConversationRequest) (*models.Conversation, error) {
	return query.Mutate(ctx, c.cache, func(ctx context.Context) (*models.Conversation, error) {
		return c.svc.Create(ctx, req)
	}, ConversationsKey())
}

func (c *Conversations) Update(ctx context.Context, id string, req models.UpdateConversationRequest) (*models.Conversation, error) {
	return query.Mutate(ctx, c.cache, func(ctx context.Context) (*models.Conversation, error) {
		return c.svc.Update(ctx, id, req)
	}, ConversationsKey(), ConversationKey(id))
}

func (c *Conversations) Delete(ctx context.Context, id string) error {
	_, err := query.Mutate(ctx, c.cache, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.svc.Delete(ctx, id)
	}, ConversationsKey())
	return err
}

// SendMessage stales the conversation, the list (its preview and order
// change) and the message list.
func (c *Conversations) SendMessage(ctx context.Context, id string, req models.SendMessageRequest) (*models.SendMessageResponse, error) {
	return query.Mutate(ctx, c.cache, func(ctx context.Context) (*models.SendMessageResponse, error) {
		return c.svc.SendMessage(ctx, id, req)
	}, ConversationKey(id), ConversationsKey(), MessagesKey(id))
}
