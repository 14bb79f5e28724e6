package agents

import (
	"context"

	"github.com/dmitrijs2005/meggy/internal/server/models"
)

// Repository stores agents per user. Saving an agent with IsDefault set
// clears the flag on the user's other agents in the same step, so a user
// has at most one default.
type Repository interface {
	Create(ctx context.Context, agent *models.Agent) (*models.Agent, error)
	Get(ctx context.Context, userID, id string) (*models.Agent, error)
	List(ctx context.Context, userID string) ([]models.Agent, error)
	Update(ctx context.Context, agent *models.Agent) (*models.Agent, error)
	Delete(ctx context.Context, userID, id string) error
	// EnsureDefault returns the user's default agent, inserting fallback as
	// the default when there is none.
	EnsureDefault(ctx context.Context, userID string, fallback *models.Agent) (*models.Agent, error)
}
