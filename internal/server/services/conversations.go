package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/meggy/internal/common"
	"github.com/dmitrijs2005/meggy/internal/server/models"
	"github.com/dmitrijs2005/meggy/internal/server/repositories/repomanager"
)

// PlaceholderReply stands in for the assistant; the server performs no LLM
// calls.
const PlaceholderReply = "This is a placeholder response. LLM integration coming soon."

// ConversationSummary is a list row: the conversation plus message stats.
type ConversationSummary struct {
	models.Conversation
	MessageCount int
	LastMessage  *models.Message
}

// ConversationDetail is a conversation with its full history.
type ConversationDetail struct {
	models.Conversation
	Messages []models.Message
}

type ConversationService struct {
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewConversationService(m repomanager.RepositoryManager) *ConversationService {
	return &ConversationService{repomanager: m, now: time.Now}
}

func (s *ConversationService) List(ctx context.Context, userID string) ([]ConversationSummary, error) {
	repo := s.repomanager.Conversations()

	convs, err := repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]ConversationSummary, 0, len(convs))
	for _, c := range convs {
		msgs, err := repo.Messages(ctx, userID, c.ID)
		if err != nil {
			return nil, err
		}
		row := ConversationSummary{Conversation: c, MessageCount: len(msgs)}
		if n := len(msgs); n > 0 {
			row.LastMessage = &msgs[n-1]
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *ConversationService) Get(ctx context.Context, userID, id string) (*ConversationDetail, error) {
	repo := s.repomanager.Conversations()

	c, err := repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	msgs, err := repo.Messages(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return &ConversationDetail{Conversation: *c, Messages: msgs}, nil
}

func (s *ConversationService) Create(ctx context.Context, userID, agentID, title string) (*ConversationDetail, error) {
	if err := s.checkAgent(ctx, userID, agentID); err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = models.DefaultConversationTitle
	}
	if err := checkTitle(title); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	c, err := s.repomanager.Conversations().Create(ctx, &models.Conversation{
		UserID:    userID,
		AgentID:   agentID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating conversation: %w", err)
	}
	return &ConversationDetail{Conversation: *c, Messages: []models.Message{}}, nil
}

// Update changes the title and/or agent. Nil leaves the field alone.
func (s *ConversationService) Update(ctx context.Context, userID, id string, title, agentID *string) (*ConversationDetail, error) {
	repo := s.repomanager.Conversations()

	c, err := repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if title != nil {
		t := strings.TrimSpace(*title)
		if t == "" {
			return nil, common.Invalid("title", "This field may not be blank.")
		}
		if err := checkTitle(t); err != nil {
			return nil, err
		}
		c.Title = t
	}
	if agentID != nil {
		if err := s.checkAgent(ctx, userID, *agentID); err != nil {
			return nil, err
		}
		c.AgentID = *agentID
	}
	c.UpdatedAt = s.now().UTC()

	if _, err := repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, id)
}

func (s *ConversationService) Delete(ctx context.Context, userID, id string) error {
	return s.repomanager.Conversations().Delete(ctx, userID, id)
}

// SendMessage stores the user's message and a placeholder assistant reply
// tagged with the agent's model.
func (s *ConversationService) SendMessage(ctx context.Context, userID, id, content string) (user, reply *models.Message, err error) {
	repo := s.repomanager.Conversations()

	c, err := repo.Get(ctx, userID, id)
	if err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, nil, &common.ValidationError{Message: "Content is required"}
	}

	var model string
	if agent, err := s.repomanager.Agents().Get(ctx, userID, c.AgentID); err == nil {
		model = agent.Model
	}

	now := s.now().UTC()
	user = &models.Message{Role: "user", Content: content, CreatedAt: now}
	reply = &models.Message{Role: "assistant", Content: PlaceholderReply, Model: model, CreatedAt: now}
	if err := repo.AddMessages(ctx, userID, id, user, reply); err != nil {
		return nil, nil, err
	}
	return user, reply, nil
}

// Messages lists one conversation's messages, or all of the user's when
// conversationID is empty.
func (s *ConversationService) Messages(ctx context.Context, userID, conversationID string) ([]models.Message, error) {
	return s.repomanager.Conversations().Messages(ctx, userID, conversationID)
}

func (s *ConversationService) GetMessage(ctx context.Context, userID, id string) (*models.Message, error) {
	return s.repomanager.Conversations().GetMessage(ctx, userID, id)
}

func (s *ConversationService) checkAgent(ctx context.Context, userID, agentID string) error {
	if agentID == "" {
		return common.Invalid("agent", "This field is required.")
	}
	if _, err := s.repomanager.Agents().Get(ctx, userID, agentID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.Invalid("agent", fmt.Sprintf("Invalid pk %q - object does not exist.", agentID))
		}
		return err
	}
	return nil
}

func checkTitle(title string) error {
	if len([]rune(title)) > 200 {
		return common.Invalid("title", "Ensure this field has no more than 200 characters.")
	}
	return nil
}
