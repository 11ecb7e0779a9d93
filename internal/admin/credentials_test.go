package admin_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"portfolio-backend/internal/admin"
	"portfolio-backend/internal/supabase"
	"portfolio-backend/internal/supabase/supabasetest"
)

func storeWithPassword(password string) *supabasetest.Store {
	store := supabasetest.New()
	store.Seed(admin.SettingsTable, map[string]any{"id": 1, "password": password})
	return store
}

func TestMatches(t *testing.T) {
	assert.True(t, admin.Matches("secret", "secret"))
	assert.False(t, admin.Matches("secret", "Secret"))
	assert.False(t, admin.Matches("secret", "secret "))
	assert.False(t, admin.Matches("secret", ""))

	hash, err := admin.HashPassword("secret")
	require.NoError(t, err)
	assert.True(t, admin.IsHash(hash))
	assert.True(t, admin.Matches(hash, "secret"))
	assert.False(t, admin.Matches(hash, "wrong"))
	assert.False(t, admin.Matches(hash, hash))

	_, err = admin.HashPassword("")
	assert.Error(t, err)
}

func TestCredentials_Verify(t *testing.T) {
	ctx := context.Background()
	creds := admin.NewCredentials(storeWithPassword("secret"))

	assert.NoError(t, creds.Verify(ctx, "secret"))
	assert.ErrorIs(t, creds.Verify(ctx, "wrong"), admin.ErrIncorrectPassword)
}

func TestCredentials_VerifyHashed(t *testing.T) {
	hash, err := admin.HashPassword("secret")
	require.NoError(t, err)
	creds := admin.NewCredentials(storeWithPassword(hash))

	assert.NoError(t, creds.Verify(context.Background(), "secret"))
	assert.ErrorIs(t, creds.Verify(context.Background(), "wrong"), admin.ErrIncorrectPassword)
}

func TestCredentials_Unverifiable(t *testing.T) {
	ctx := context.Background()

	t.Run("no backend", func(t *testing.T) {
		err := admin.NewCredentials(supabase.Fallback()).Verify(ctx, "secret")
		assert.ErrorIs(t, err, admin.ErrUnverifiable)
		assert.Equal(t, "Unable to verify. Check Supabase config.", err.Error())
	})

	t.Run("missing record", func(t *testing.T) {
		err := admin.NewCredentials(supabasetest.New()).Verify(ctx, "secret")
		assert.ErrorIs(t, err, admin.ErrUnverifiable)
	})

	t.Run("store error", func(t *testing.T) {
		store := storeWithPassword("secret")
		store.FailWhen(func(supabase.Plan) bool { return true }, &supabase.Error{Code: "42501", Message: "permission denied"})
		assert.ErrorIs(t, admin.NewCredentials(store).Verify(ctx, "secret"), admin.ErrUnverifiable)
	})

	t.Run("cancelled", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		err := admin.NewCredentials(storeWithPassword("secret")).Verify(cancelled, "secret")
		assert.ErrorIs(t, err, admin.ErrConnection)
	})
}
