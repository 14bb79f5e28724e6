package models

import "time"

// Defaults applied to agents created without explicit settings.
const (
	DefaultAgentName   = "Bruno"
	DefaultProvider    = "ollama"
	DefaultModel       = "llama3.2:latest"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 2000
)

type Agent struct {
	ID           string
	UserID       string
	Name         string
	Description  string
	LLMProvider  string
	Model        string
	Temperature  float64
	MaxTokens    int
	SystemPrompt string
	IsDefault    bool
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
