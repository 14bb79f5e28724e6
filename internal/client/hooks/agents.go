package hooks

import (
	"context"

	"github.com/dmitrijs2005/meggy/internal/client/models"
	"github.com/dmitrijs2005/meggy/internal/client/query"
	"github.com/dmitrijs2005/meggy/internal/client/services"
)

// Agents exposes the agent endpoints through the cache.
type Agents struct {
	svc   services.AgentService
	cache *query.Cache
}

func NewAgents(svc services.AgentService, cache *query.Cache) *Agents {
	return &Agents{svc: svc, cache: cache}
}

func (a *Agents) List(ctx context.Context) ([]models.Agent, error) {
	return query.Fetch(ctx, a.cache, AgentsKey(), a.svc.List)
}

// Get is disabled (query.ErrDisabled) while id is empty.
func (a *Agents) Get(ctx context.Context, id string) (*models.Agent, error) {
	return query.Fetch(ctx, a.cache, AgentKey(id), func(ctx context.Context) (*models.Agent, error) {
		return a.svc.Get(ctx, id)
	})
}

func (a *Agents) Default(ctx context.Context) (*models.Agent, error) {
	return query.Fetch(ctx, a.cache, DefaultAgentKey(), a.svc.Default)
}

func (a *Agents) Create(ctx context.Context, req models.CreateAgentRequest) (*models.Agent, error) {
	return query.Mutate(ctx, a.cache, func(ctx context.Context) (*models.Agent, error) {
		return a.svc.Create(ctx, req)
	}, AgentsKey())
}

func (a *Agents) Update(ctx context.Context, id string, req models.UpdateAgentRequest) (*models.Agent, error) {
	return query.Mutate(ctx, a.cache, func(ctx context.Context) (*models.Agent, error) {
		return a.svc.Update(ctx, id, req)
	}, AgentsKey(), AgentKey(id))
}

func (a *Agents) Delete(ctx context.Context, id string) error {
	_, err := query.Mutate(ctx, a.cache, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, a.svc.Delete(ctx, id)
	}, AgentsKey())
	return err
}
