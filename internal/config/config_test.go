package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, "1", cfg.DefaultOwnerID)
	assert.Equal(t, "INR", cfg.Currency)
	assert.Equal(t, "2", cfg.InitialMarkupPercent.String())
	assert.Equal(t, "5", cfg.AccumulateMarkupPercent.String())
	assert.Equal(t, "@every 1h", cfg.SnapshotSchedule)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestFromViper_Environment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("INITIAL_MARKUP_PERCENT", "3.5")
	t.Setenv("ALLOW_CROSS_SITE_DEV", "true")
	t.Setenv("SNAPSHOT_SCHEDULE", "")
	t.Setenv("CURRENCY", "usd")

	cfg, err := fromViper(viper.New())
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "3.5", cfg.InitialMarkupPercent.String())
	assert.True(t, cfg.AllowCrossSiteDev)
	assert.Empty(t, cfg.SnapshotSchedule)
	assert.Equal(t, "USD", cfg.Currency)
}

func TestFromViper_Rejects(t *testing.T) {
	t.Setenv("ACCUMULATE_MARKUP_PERCENT", "-1")
	_, err := fromViper(viper.New())
	assert.Error(t, err)

	t.Setenv("ACCUMULATE_MARKUP_PERCENT", "5")
	t.Setenv("CURRENCY", "ZZZ")
	_, err = fromViper(viper.New())
	assert.Error(t, err)
}
