package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/meggy/internal/client/client"
	"github.com/dmitrijs2005/meggy/internal/client/models"
)

const agentsPath = "/agents/"

// AgentService is a stateless wrapper over the /agents endpoints.
type AgentService interface {
	// List returns every agent, following the server's pagination.
	List(ctx context.Context) ([]models.Agent, error)
	Get(ctx context.Context, id string) (*models.Agent, error)
	// Default returns the user's default agent; the server creates one on
	// first use.
	Default(ctx context.Context) (*models.Agent, error)
	Create(ctx context.Context, req models.CreateAgentRequest) (*models.Agent, error)
	Update(ctx context.Context, id string, req models.UpdateAgentRequest) (*models.Agent, error)
	Delete(ctx context.Context, id string) error
}

type agentService struct {
	client *client.Client
}

func NewAgentService(c *client.Client) AgentService {
	return &agentService{client: c}
}

func agentPath(id string) string {
	return agentsPath + url.PathEscape(id) + "/"
}

func requireID(kind, id string) error {
	if strings.TrimSpace(id) == "" {
		return client.Invalid("%s id is required", kind)
	}
	return nil
}

func (s *agentService) List(ctx context.Context) ([]models.Agent, error) {
	agents, err := listAll[models.Agent](ctx, s.client, agentsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	return agents, nil
}

func (s *agentService) Get(ctx context.Context, id string) (*models.Agent, error) {
	if err := requireID("agent", id); err != nil {
		return nil, err
	}
	a, err := client.Get[models.Agent](ctx, s.client, agentPath(id), nil)
	if err != nil {
		return nil, fmt.Errorf("get agent %s: %w", id, err)
	}
	return &a, nil
}

func (s *agentService) Default(ctx context.Context) (*models.Agent, error) {
	a, err := client.Get[models.Agent](ctx, s.client, agentsPath+"default/", nil)
	if err != nil {
		return nil, fmt.Errorf("get default agent: %w", err)
	}
	return &a, nil
}

func (s *agentService) Create(ctx context.Context, req models.CreateAgentRequest) (*models.Agent, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, client.Invalid("agent name is required")
	}
	if req.LLMProvider != "" && !req.LLMProvider.Valid() {
		return nil, client.Invalid("unknown llm provider %q", req.LLMProvider)
	}
	a, err := client.Post[models.Agent](ctx, s.client, agentsPath, req)
	if err != nil {
		return nil, fmt.Errorf("create agent: %w", err)
	}
	return &a, nil
}

func (s *agentService) Update(ctx context.Context, id string, req models.UpdateAgentRequest) (*models.Agent, error) {
	if err := requireID("agent", id); err != nil {
		return nil, err
	}
	if req.LLMProvider != nil && !req.LLMProvider.Valid() {
		return nil, client.Invalid("unknown llm provider %q", *req.LLMProvider)
	}
	a, err := client.Patch[models.Agent](ctx, s.client, agentPath(id), req)
	if err != nil {
		return nil, fmt.Errorf("update agent %s: %w", id, err)
	}
	return &a, nil
}

func (s *agentService) Delete(ctx context.Context, id string) error {
	if err := requireID("agent", id); err != nil {
		return err
	}
	if err := s.client.Delete(ctx, agentPath(id)); err != nil {
		return fmt.Errorf("delete agent %s: %w", id, err)
	}
	return nil
}
