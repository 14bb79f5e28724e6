package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/meggy/internal/common"
	"github.com/dmitrijs2005/meggy/internal/server/models"
	"github.com/dmitrijs2005/meggy/internal/server/repositories/repomanager"
)

var providers = map[string]bool{"openai": true, "ollama": true}

// AgentFields is a create or partial-update payload; nil fields are left
// alone (update) or defaulted (create).
type AgentFields struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	LLMProvider  *string  `json:"llm_provider"`
	Model        *string  `json:"model"`
	Temperature  *float64 `json:"temperature"`
	MaxTokens    *int     `json:"max_tokens"`
	SystemPrompt *string  `json:"system_prompt"`
	IsDefault    *bool    `json:"is_default"`
	IsActive     *bool    `json:"is_active"`
}

type AgentService struct {
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewAgentService(m repomanager.RepositoryManager) *AgentService {
	return &AgentService{repomanager: m, now: time.Now}
}

func (s *AgentService) List(ctx context.Context, userID string) ([]models.Agent, error) {
	return s.repomanager.Agents().List(ctx, userID)
}

func (s *AgentService) Get(ctx context.Context, userID, id string) (*models.Agent, error) {
	return s.repomanager.Agents().Get(ctx, userID, id)
}

func (s *AgentService) Create(ctx context.Context, userID string, f AgentFields) (*models.Agent, error) {
	now := s.now().UTC()
	a := newAgent(userID, now)

	if f.Name == nil {
		return nil, common.Invalid("name", "This field is required.")
	}
	if err := apply(a, f); err != nil {
		return nil, err
	}

	created, err := s.repomanager.Agents().Create(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("error creating agent: %w", err)
	}
	return created, nil
}

func (s *AgentService) Update(ctx context.Context, userID, id string, f AgentFields) (*models.Agent, error) {
	repo := s.repomanager.Agents()

	a, err := repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := apply(a, f); err != nil {
		return nil, err
	}
	a.UpdatedAt = s.now().UTC()

	return repo.Update(ctx, a)
}

// Delete removes the agent and the conversations held with it.
func (s *AgentService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repomanager.Agents().Delete(ctx, userID, id); err != nil {
		return err
	}
	return s.repomanager.Conversations().DeleteByAgent(ctx, userID, id)
}

// Default returns the user's default agent, creating one on first use.
func (s *AgentService) Default(ctx context.Context, userID string) (*models.Agent, error) {
	a := newAgent(userID, s.now().UTC())
	a.Name = models.DefaultAgentName
	return s.repomanager.Agents().EnsureDefault(ctx, userID, a)
}

func newAgent(userID string, now time.Time) *models.Agent {
	return &models.Agent{
		UserID:      userID,
		LLMProvider: models.DefaultProvider,
		Model:       models.DefaultModel,
		Temperature: models.DefaultTemperature,
		MaxTokens:   models.DefaultMaxTokens,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// apply validates f and copies the set fields onto a.
func apply(a *models.Agent, f AgentFields) error {
	verr := &common.ValidationError{}

	if f.Name != nil {
		name := strings.TrimSpace(*f.Name)
		switch {
		case name == "":
			verr.Add("name", "This field may not be blank.")
		case len([]rune(name)) > 100:
			verr.Add("name", "Ensure this field has no more than 100 characters.")
		default:
			a.Name = name
		}
	}
	if f.Description != nil {
		a.Description = *f.Description
	}
	if f.LLMProvider != nil {
		if providers[*f.LLMProvider] {
			a.LLMProvider = *f.LLMProvider
		} else {
			verr.Add("llm_provider", fmt.Sprintf("%q is not a valid choice.", *f.LLMProvider))
		}
	}
	if f.Model != nil {
		if m := strings.TrimSpace(*f.Model); m != "" {
			a.Model = m
		} else {
			verr.Add("model", "This field may not be blank.")
		}
	}
	if f.Temperature != nil {
		if t := *f.Temperature; t >= 0 && t <= 2 {
			a.Temperature = t
		} else {
			verr.Add("temperature", "Ensure this value is between 0 and 2.")
		}
	}
	if f.MaxTokens != nil {
		if *f.MaxTokens > 0 {
			a.MaxTokens = *f.MaxTokens
		} else {
			verr.Add("max_tokens", "Ensure this value is greater than or equal to 1.")
		}
	}
	if f.SystemPrompt != nil {
		a.SystemPrompt = *f.SystemPrompt
	}
	if f.IsDefault != nil {
		a.IsDefault = *f.IsDefault
	}
	if f.IsActive != nil {
		a.IsActive = *f.IsActive
	}

	if !verr.Empty() {
		return verr
	}
	return nil
}
