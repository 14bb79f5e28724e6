package services

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/meggy/internal/server/auth"
	"github.com/dmitrijs2005/meggy/internal/server/repositories/repomanager"
)

type fixture struct {
	rm     *repomanager.InMemoryRepositoryManager
	tokens *auth.Issuer
	users  *UserService
	agents *AgentService
	convs  *ConversationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	rm := repomanager.NewInMemoryRepositoryManager()
	tokens := auth.NewIssuer("test-secret", time.Hour, 24*time.Hour)
	return &fixture{
		rm:     rm,
		tokens: tokens,
		users:  NewUserService(rm, tokens).WithBcryptCost(bcrypt.MinCost),
		agents: NewAgentService(rm),
		convs:  NewConversationService(rm),
	}
}

func ptr[T any](v T) *T { return &v }
