package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/meggy/internal/common"
	"github.com/dmitrijs2005/meggy/internal/server/models"
)

func TestAgentService_CreateDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.agents.Create(ctx, "u1", AgentFields{Name: ptr("  Coder ")})
	require.NoError(t, err)
	assert.Equal(t, "Coder", a.Name)
	assert.Equal(t, models.DefaultProvider, a.LLMProvider)
	assert.Equal(t, models.DefaultModel, a.Model)
	assert.Equal(t, models.DefaultTemperature, a.Temperature)
	assert.Equal(t, models.DefaultMaxTokens, a.MaxTokens)
	assert.True(t, a.IsActive)
	assert.False(t, a.IsDefault)
}

func TestAgentService_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.agents.Create(ctx, "u1", AgentFields{})
	var verr *common.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "name")

	_, err = f.agents.Create(ctx, "u1", AgentFields{
		Name:        ptr("X"),
		LLMProvider: ptr("anthropic"),
		Temperature: ptr(2.5),
		MaxTokens:   ptr(0),
	})
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "llm_provider")
	assert.Contains(t, verr.Fields, "temperature")
	assert.Contains(t, verr.Fields, "max_tokens")
}

func TestAgentService_UpdateAndSingleDefault(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.agents.Create(ctx, "u1", AgentFields{Name: ptr("A"), IsDefault: ptr(true)})
	require.NoError(t, err)
	second, err := f.agents.Create(ctx, "u1", AgentFields{Name: ptr("B")})
	require.NoError(t, err)

	updated, err := f.agents.Update(ctx, "u1", second.ID, AgentFields{IsDefault: ptr(true), Model: ptr("gpt-4o")})
	require.NoError(t, err)
	assert.True(t, updated.IsDefault)
	assert.Equal(t, "gpt-4o", updated.Model)
	assert.Equal(t, "B", updated.Name)

	got, err := f.agents.Get(ctx, "u1", first.ID)
	require.NoError(t, err)
	assert.False(t, got.IsDefault)

	def, err := f.agents.Default(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, second.ID, def.ID)

	_, err = f.agents.Update(ctx, "u2", second.ID, AgentFields{Name: ptr("stolen")})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestAgentService_DefaultCreatedLazily(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	def, err := f.agents.Default(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultAgentName, def.Name)
	assert.Equal(t, "ollama", def.LLMProvider)
	assert.Equal(t, "llama3.2:latest", def.Model)
	assert.True(t, def.IsDefault)

	again, err := f.agents.Default(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, def.ID, again.ID)

	list, err := f.agents.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAgentService_DeleteCascadesConversations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.agents.Create(ctx, "u1", AgentFields{Name: ptr("A")})
	require.NoError(t, err)
	c, err := f.convs.Create(ctx, "u1", a.ID, "")
	require.NoError(t, err)

	require.NoError(t, f.agents.Delete(ctx, "u1", a.ID))
	_, err = f.convs.Get(ctx, "u1", c.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
