package httpapi

import (
	wire "github.com/dmitrijs2005/meggy/internal/client/models"
	"github.com/dmitrijs2005/meggy/internal/server/models"
	"github.com/dmitrijs2005/meggy/internal/server/services"
)

// The handlers answer with the client's wire types so both sides share one
// definition of the REST contract.

func userOut(u *models.User) wire.User {
	return wire.User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func agentOut(a *models.Agent) wire.Agent {
	return wire.Agent{
		ID:           a.ID,
		Name:         a.Name,
		Description:  a.Description,
		LLMProvider:  wire.LLMProvider(a.LLMProvider),
		Model:        a.Model,
		Temperature:  a.Temperature,
		MaxTokens:    a.MaxTokens,
		SystemPrompt: a.SystemPrompt,
		IsDefault:    a.IsDefault,
		IsActive:     a.IsActive,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func messageOut(m *models.Message) wire.Message {
	return wire.Message{
		ID:           m.ID,
		Conversation: m.ConversationID,
		Role:         wire.Role(m.Role),
		Content:      m.Content,
		TokensUsed:   m.TokensUsed,
		Model:        m.Model,
		CreatedAt:    m.CreatedAt,
	}
}

func conversationOut(c *models.Conversation) wire.Conversation {
	return wire.Conversation{
		ID:        c.ID,
		Agent:     c.AgentID,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func detailOut(d *services.ConversationDetail) wire.Conversation {
	out := conversationOut(&d.Conversation)
	out.Messages = make([]wire.Message, 0, len(d.Messages))
	for i := range d.Messages {
		out.Messages = append(out.Messages, messageOut(&d.Messages[i]))
	}
	return out
}

func summaryOut(s *services.ConversationSummary) wire.Conversation {
	out := conversationOut(&s.Conversation)
	count := s.MessageCount
	out.MessageCount = &count
	if m := s.LastMessage; m != nil {
		out.LastMessage = &wire.MessagePreview{Role: wire.Role(m.Role), Content: m.Content, CreatedAt: m.CreatedAt}
	}
	return out
}
