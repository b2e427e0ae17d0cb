package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, "production", cfg.Server.AppEnv)
	assert.Equal(t, "Contact Messages", cfg.Airtable.ContactTable)
	assert.Equal(t, "Newsletter Subscribers", cfg.Airtable.SubscribersTable)
	assert.Equal(t, 10, cfg.Airtable.TimeoutSeconds)
	assert.Equal(t, 300, cfg.Cache.SubscriberTTLSeconds)
	assert.Equal(t, "cloudnotes-api", cfg.Observability.ServiceName)
	assert.Contains(t, cfg.Server.AllowedOrigins, "https://cloudnotes.dev")
}

func TestLoad_StoreDisabledWithoutCredentials(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Airtable.StoreEnabled())
}

func TestLoad_StoreEnabledWithCredentials(t *testing.T) {
	t.Setenv("AIRTABLE_PERSONAL_ACCESS_TOKEN", "pat_test_token")
	t.Setenv("AIRTABLE_BASE_ID", "appTestBase")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Airtable.StoreEnabled())
	assert.Equal(t, "pat_test_token", cfg.Airtable.PersonalAccessToken)
	assert.Equal(t, "appTestBase", cfg.Airtable.BaseID)
}

func TestLoad_RejectsHalfConfiguredStore(t *testing.T) {
	t.Run("token_without_base", func(t *testing.T) {
		t.Setenv("AIRTABLE_PERSONAL_ACCESS_TOKEN", "pat_test_token")
		t.Setenv("AIRTABLE_BASE_ID", "")

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "AIRTABLE_BASE_ID")
	})

	t.Run("base_without_token", func(t *testing.T) {
		t.Setenv("AIRTABLE_PERSONAL_ACCESS_TOKEN", "")
		t.Setenv("AIRTABLE_BASE_ID", "appTestBase")

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "AIRTABLE_PERSONAL_ACCESS_TOKEN")
	})
}

func TestLoad_ParsesCORSOrigins(t *testing.T) {
	t.Setenv("ALLOWED_CORS_ORIGINS", "https://a.example.com, https://b.example.com ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.AllowedOrigins)
}

func TestLoad_RejectsProfilingWithoutEndpoint(t *testing.T) {
	t.Setenv("O11Y_PROFILING_ENABLED", "true")
	t.Setenv("O11Y_PROFILING_ENDPOINT", "")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "O11Y_PROFILING_ENDPOINT")
}

func TestConfig_EnvironmentHelpers(t *testing.T) {
	cfg := &Config{Server: ServerConfig{AppEnv: "production", GinMode: "release"}}
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())

	cfg.Server.AppEnv = "development"
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}
