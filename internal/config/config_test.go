package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "vale-service", cfg.App.Name)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 12*time.Hour, cfg.JWT.Expiration)
	assert.False(t, cfg.Database.Enabled())
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("VALE_APP_PORT", "9000")
	t.Setenv("VALE_DATABASE_HOST", "db.internal")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.App.Port)
	assert.True(t, cfg.Database.Enabled())
	assert.Contains(t, cfg.Database.DSN(), "db.internal:5432")
}
