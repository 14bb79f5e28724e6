package models

import "time"

type LLMProvider string

const (
	ProviderOpenAI LLMProvider = "openai"
	ProviderOllama LLMProvider = "ollama"
)

// Valid reports whether p is one of the providers the backend accepts.
func (p LLMProvider) Valid() bool {
	return p == ProviderOpenAI || p == ProviderOllama
}

type Agent struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	LLMProvider  LLMProvider `json:"llm_provider"`
	Model        string      `json:"model"`
	Temperature  float64     `json:"temperature"`
	MaxTokens    int         `json:"max_tokens"`
	SystemPrompt string      `json:"system_prompt"`
	IsDefault    bool        `json:"is_default"`
	IsActive     bool        `json:"is_active"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// CreateAgentRequest leaves optional fields out of the payload when unset,
// so the server applies its own defaults.
type CreateAgentRequest struct {
	Name         string      `json:"name"`
	Description  string      `json:"description,omitempty"`
	LLMProvider  LLMProvider `json:"llm_provider,omitempty"`
	Model        string      `json:"model,omitempty"`
	Temperature  *float64    `json:"temperature,omitempty"`
	MaxTokens    *int        `json:"max_tokens,omitempty"`
	SystemPrompt string      `json:"system_prompt,omitempty"`
	IsDefault    bool        `json:"is_default,omitempty"`
}

// UpdateAgentRequest is a partial update: only non-nil fields are sent.
type UpdateAgentRequest struct {
	Name         *string      `json:"name,omitempty"`
	Description  *string      `json:"description,omitempty"`
	LLMProvider  *LLMProvider `json:"llm_provider,omitempty"`
	Model        *string      `json:"model,omitempty"`
	Temperature  *float64     `json:"temperature,omitempty"`
	MaxTokens    *int         `json:"max_tokens,omitempty"`
	SystemPrompt *string      `json:"system_prompt,omitempty"`
	IsDefault    *bool        `json:"is_default,omitempty"`
	IsActive     *bool        `json:"is_active,omitempty"`
}

// Empty reports whether the update carries no fields at all.
func (r UpdateAgentRequest) Empty() bool {
	return r.Name == nil && r.Description == nil && r.LLMProvider == nil &&
		r.Model == nil && r.Temperature == nil && r.MaxTokens == nil &&
		r.SystemPrompt == nil && r.IsDefault == nil && r.IsActive == nil
}
