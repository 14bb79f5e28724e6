package conversations

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/meggy/internal/common"
	"github.com/dmitrijs2005/meggy/internal/server/models"
)

type MemoryRepository struct {
	mu       sync.RWMutex
	convs    map[string]models.Conversation
	messages map[string][]models.Message
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		convs:    make(map[string]models.Conversation),
		messages: make(map[string][]models.Message),
	}
}

func (r *MemoryRepository) Create(_ context.Context, conv *models.Conversation) (*models.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := *conv
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	r.convs[c.ID] = c
	return &c, nil
}

func (r *MemoryRepository) getLocked(userID, id string) (models.Conversation, error) {
	c, ok := r.convs[id]
	if !ok || c.UserID != userID {
		return models.Conversation{}, common.ErrorNotFound
	}
	return c, nil
}

func (r *MemoryRepository) Get(_ context.Context, userID, id string) (*models.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, err := r.getLocked(userID, id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *MemoryRepository) List(_ context.Context, userID string) ([]models.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Conversation, 0)
	for _, c := range r.convs {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (r *MemoryRepository) Update(_ context.Context, conv *models.Conversation) (*models.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.getLocked(conv.UserID, conv.ID); err != nil {
		return nil, err
	}
	c := *conv
	r.convs[c.ID] = c
	return &c, nil
}

func (r *MemoryRepository) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.getLocked(userID, id); err != nil {
		return err
	}
	delete(r.convs, id)
	delete(r.messages, id)
	return nil
}

func (r *MemoryRepository) DeleteByAgent(_ context.Context, userID, agentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, c := range r.convs {
		if c.UserID == userID && c.AgentID == agentID {
			delete(r.convs, id)
			delete(r.messages, id)
		}
	}
	return nil
}

func (r *MemoryRepository) AddMessages(_ context.Context, userID, conversationID string, msgs ...*models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.getLocked(userID, conversationID)
	if err != nil {
		return err
	}

	for _, m := range msgs {
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		m.ConversationID = conversationID
		r.messages[conversationID] = append(r.messages[conversationID], *m)
		if m.CreatedAt.After(c.UpdatedAt) {
			c.UpdatedAt = m.CreatedAt
		}
	}
	r.convs[conversationID] = c
	return nil
}

func (r *MemoryRepository) Messages(_ context.Context, userID, conversationID string) ([]models.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if conversationID != "" {
		if _, err := r.getLocked(userID, conversationID); err != nil {
			return nil, err
		}
		return append(make([]models.Message, 0), r.messages[conversationID]...), nil
	}

	out := make([]models.Message, 0)
	for id, c := range r.convs {
		if c.UserID == userID {
			out = append(out, r.messages[id]...)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepository) GetMessage(_ context.Context, userID, id string) (*models.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for convID, msgs := range r.messages {
		if r.convs[convID].UserID != userID {
			continue
		}
		for _, m := range msgs {
			if m.ID == id {
				return &m, nil
			}
		}
	}
	return nil, common.ErrorNotFound
}
