package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"portfolio-backend/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("REORDER_POLICY", "")
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.SupabaseURL)
	assert.Equal(t, "projects", cfg.ProjectsBucket)
	assert.Equal(t, "resume", cfg.ResumeBucket)
	assert.Equal(t, config.ReorderBestEffort, cfg.ReorderPolicy)
	assert.Equal(t, 2*time.Hour, cfg.AdminSessionTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.False(t, cfg.S3Enabled())
}

func TestLoad_PublishableKeyAlias(t *testing.T) {
	t.Setenv("SUPABASE_ANON_KEY", "")
	t.Setenv("SUPABASE_PUBLISHABLE_KEY", "pk-123")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "pk-123", cfg.SupabaseKey)
}

func TestLoad_CORSOriginsTrimmed(t *testing.T) {
	t.Setenv("CORS_ORIGINS", " https://a.dev/ ,https://b.dev,, ")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.dev", "https://b.dev"}, cfg.CORSOrigins)
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("ADMIN_SESSION_TTL", "soon")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, cfg.AdminSessionTTL)
}

func TestValidate(t *testing.T) {
	valid := func() *config.Config {
		return &config.Config{
			ReorderPolicy:      config.ReorderAllOrNothing,
			AdminSessionTTL:    time.Hour,
			LoginRatePerMinute: 5,
		}
	}

	assert.NoError(t, valid().Validate())

	cfg := valid()
	cfg.ReorderPolicy = "sometimes"
	assert.ErrorContains(t, cfg.Validate(), "REORDER_POLICY")

	cfg = valid()
	cfg.AdminSessionTTL = 0
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Environment = "production"
	assert.ErrorContains(t, cfg.Validate(), "ADMIN_JWT_SECRET")

	cfg.AdminJWTSecret = "s3cret"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_MissingSupabaseIsNotAnError(t *testing.T) {
	cfg := &config.Config{
		SupabaseURL:        "not a url",
		ReorderPolicy:      config.ReorderBestEffort,
		AdminSessionTTL:    time.Minute,
		LoginRatePerMinute: 1,
	}
	assert.NoError(t, cfg.Validate())
}
