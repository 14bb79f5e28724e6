package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/meggy/internal/client/client"
	"github.com/dmitrijs2005/meggy/internal/client/models"
)

const (
	conversationsPath = "/conversations/"
	messagesPath      = "/messages/"
)

// ConversationService is a stateless wrapper over the /conversations and
// /messages endpoints.
// List and Messages follow the server's pagination and return every item.
type ConversationService interface {
	List(ctx context.Context) ([]models.Conversation, error)
	Get(ctx context.Context, id string) (*models.Conversation, error)
	Create(ctx context.Context, req models.CreateConversationRequest) (*models.Conversation, error)
	Update(ctx context.Context, id string, req models.UpdateConversationRequest) (*models.Conversation, error)
	Delete(ctx context.Context, id string) error
	// SendMessage posts a user message and returns it together with the
	// assistant's reply.
	SendMessage(ctx context.Context, id string, req models.SendMessageRequest) (*models.SendMessageResponse, error)
	Messages(ctx context.Context, conversationID string) ([]models.Message, error)
}

type conversationService struct {
	client *client.Client
}

func NewConversationService(c *client.Client) ConversationService {
	return &conversationService{client: c}
}

func conversationPath(id string) string {
	return conversationsPath + url.PathEscape(id) + "/"
}

func (s *conversationService) List(ctx context.Context) ([]models.Conversation, error) {
	convs, err := listAll[models.Conversation](ctx, s.client, conversationsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return convs, nil
}

func (s *conversationService) Get(ctx context.Context, id string) (*models.Conversation, error) {
	if err := requireID("conversation", id); err != nil {
		return nil, err
	}
	c, err := client.Get[models.Conversation](ctx, s.client, conversationPath(id), nil)
	if err != nil {
		return nil, fmt.Errorf("get conversation %s: %w", id, err)
	}
	return &c, nil
}

func (s *conversationService) Create(ctx context.Context, req models.CreateConversationRequest) (*models.Conversation, error) {
	if err := requireID("agent", req.Agent); err != nil {
		return nil, err
	}
	c, err := client.Post[models.Conversation](ctx, s.client, conversationsPath, req)
	if err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	return &c, nil
}

func (s *conversationService) Update(ctx context.Context, id string, req models.UpdateConversationRequest) (*models.Conversation, error) {
	if err := requireID("conversation", id); err != nil {
		return nil, err
	}
	c, err := client.Patch[models.Conversation](ctx, s.client, conversationPath(id), req)
	if err != nil {
		return nil, fmt.Errorf("update conversation %s: %w", id, err)
	}
	return &c, nil
}

func (s *conversationService) Delete(ctx context.Context, id string) error {
	if err := requireID("conversation", id); err != nil {
		return err
	}
	if err := s.client.Delete(ctx, conversationPath(id)); err != nil {
		return fmt.Errorf("delete conversation %s: %w", id, err)
	}
	return nil
}

func (s *conversationService) SendMessage(ctx context.Context, id string, req models.SendMessageRequest) (*models.SendMessageResponse, error) {
	if err := requireID("conversation", id); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, client.Invalid("message content is required")
	}
	resp, err := client.Post[models.SendMessageResponse](ctx, s.client, conversationPath(id)+"send_message/", req)
	if err != nil {
		return nil, fmt.Errorf("send message to %s: %w", id, err)
	}
	return &resp, nil
}

func (s *conversationService) Messages(ctx context.Context, conversationID string) ([]models.Message, error) {
	if err := requireID("conversation", conversationID); err != nil {
		return nil, err
	}
	q := url.Values{"conversation": {conversationID}}
	msgs, err := listAll[models.Message](ctx, s.client, messagesPath, q)
	if err != nil {
		return nil, fmt.Errorf("list messages of %s: %w", conversationID, err)
	}
	return msgs, nil
}
