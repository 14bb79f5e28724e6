// Package repomanager bundles the server repositories behind one handle.
package repomanager

import (
	"github.com/dmitrijs2005/meggy/internal/server/repositories/agents"
	"github.com/dmitrijs2005/meggy/internal/server/repositories/conversations"
	"github.com/dmitrijs2005/meggy/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users() users.Repository
	Agents() agents.Repository
	Conversations() conversations.Repository
}

// InMemoryRepositoryManager keeps all state in process memory. It is lost
// on restart.
type InMemoryRepositoryManager struct {
	users         *users.MemoryRepository
	agents        *agents.MemoryRepository
	conversations *conversations.MemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users:         users.NewMemoryRepository(),
		agents:        agents.NewMemoryRepository(),
		conversations: conversations.NewMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) Users() users.Repository { return m.users }

func (m *InMemoryRepositoryManager) Agents() agents.Repository { return m.agents }

func (m *InMemoryRepositoryManager) Conversations() conversations.Repository {
	return m.conversations
}
