package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/meggy/internal/common"
	"github.com/dmitrijs2005/meggy/internal/server/auth"
)

func TestUserService_RegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, pair, err := f.users.Register(ctx, "ann@example.com", "Ann", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, "password123", string(u.PasswordHash))

	claims, err := f.tokens.Verify(pair.AccessToken, auth.TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "ann@example.com", claims.Email)
	_, err = f.tokens.Verify(pair.RefreshToken, auth.TypeRefresh)
	require.NoError(t, err)

	logged, _, err := f.users.Login(ctx, "ann@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)
}

func TestUserService_RegisterValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _, err := f.users.Register(ctx, "not-an-email", "", "short")
	var verr *common.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "password")

	_, _, err = f.users.Register(ctx, "ann@example.com", "Ann", "password123")
	require.NoError(t, err)
	_, _, err = f.users.Register(ctx, "ann@example.com", "Other", "password123")
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"user with this email already exists."}, verr.Fields["email"])
}

func TestUserService_LoginFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, _, err := f.users.Register(ctx, "ann@example.com", "Ann", "password123")
	require.NoError(t, err)

	_, _, err = f.users.Login(ctx, "", "")
	var verr *common.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Email and password are required", verr.Message)

	for _, tc := range []struct{ email, password string }{
		{"ann@example.com", "wrong-password"},
		{"nobody@example.com", "password123"},
	} {
		_, _, err = f.users.Login(ctx, tc.email, tc.password)
		var aerr *common.AuthError
		require.True(t, errors.As(err, &aerr), "%v", err)
		assert.Equal(t, "Invalid credentials", aerr.Msg)
		assert.ErrorIs(t, err, common.ErrorUnauthorized)
	}
}

func TestUserService_Refresh(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, pair, err := f.users.Register(ctx, "ann@example.com", "Ann", "password123")
	require.NoError(t, err)

	access, err := f.users.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	got, err := f.users.Authenticate(ctx, access)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = f.users.Refresh(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, common.ErrorUnauthorized, "access token is not a refresh token")

	_, err = f.users.Refresh(ctx, "")
	var verr *common.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestUserService_Authenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, pair, err := f.users.Register(ctx, "ann@example.com", "Ann", "password123")
	require.NoError(t, err)

	_, err = f.users.Authenticate(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = f.users.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	// Token for a user this server never stored.
	stray, err := f.tokens.AccessToken("ghost", "ghost@example.com")
	require.NoError(t, err)
	_, err = f.users.Authenticate(ctx, stray)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}
