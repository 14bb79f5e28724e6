package agents

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/meggy/internal/common"
	"github.com/dmitrijs2005/meggy/internal/server/models"
)

type MemoryRepository struct {
	mu     sync.Mutex
	agents map[string]models.Agent
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{agents: make(map[string]models.Agent)}
}

func (r *MemoryRepository) Create(_ context.Context, agent *models.Agent) (*models.Agent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insertLocked(*agent), nil
}

func (r *MemoryRepository) insertLocked(a models.Agent) *models.Agent {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.IsDefault {
		r.clearDefaultLocked(a.UserID, a.ID)
	}
	r.agents[a.ID] = a
	return &a
}

func (r *MemoryRepository) clearDefaultLocked(userID, keepID string) {
	for id, a := range r.agents {
		if a.UserID == userID && id != keepID && a.IsDefault {
			a.IsDefault = false
			r.agents[id] = a
		}
	}
}

func (r *MemoryRepository) Get(_ context.Context, userID, id string) (*models.Agent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.agents[id]
	if !ok || a.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return &a, nil
}

// List returns the user's agents, oldest first.
func (r *MemoryRepository) List(_ context.Context, userID string) ([]models.Agent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Agent, 0)
	for _, a := range r.agents {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepository) Update(_ context.Context, agent *models.Agent) (*models.Agent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.agents[agent.ID]
	if !ok || cur.UserID != agent.UserID {
		return nil, common.ErrorNotFound
	}
	return r.insertLocked(*agent), nil
}

func (r *MemoryRepository) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.agents[id]
	if !ok || a.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.agents, id)
	return nil
}

func (r *MemoryRepository) EnsureDefault(_ context.Context, userID string, fallback *models.Agent) (*models.Agent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.agents {
		if a.UserID == userID && a.IsDefault {
			return &a, nil
		}
	}

	a := *fallback
	a.UserID = userID
	a.IsDefault = true
	return r.insertLocked(a), nil
}
