package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LINE_CHANNEL_SECRET", "secret")
	t.Setenv("LINE_CHANNEL_ACCESS_TOKEN", "token")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 8, cfg.CompletionThreshold)
	assert.Equal(t, 30*time.Second, cfg.LockTTL)
	assert.False(t, cfg.DistributedLock)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LINE_CHANNEL_SECRET", "secret")
	t.Setenv("LINE_CHANNEL_ACCESS_TOKEN", "token")
	t.Setenv("PORT", "9000")
	t.Setenv("COMPLETION_THRESHOLD", "12")
	t.Setenv("SESSION_TTL", "24h")
	t.Setenv("DISTRIBUTED_LOCK", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 12, cfg.CompletionThreshold)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.DistributedLock)
}

func TestLoad_MissingCredentials(t *testing.T) {
	t.Setenv("LINE_CHANNEL_SECRET", "")
	t.Setenv("LINE_CHANNEL_ACCESS_TOKEN", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate_ThresholdMustBePositive(t *testing.T) {
	cfg := &Config{
		ChannelSecret:       "s",
		ChannelAccessToken:  "t",
		CompletionThreshold: 0,
	}
	assert.Error(t, cfg.Validate())
}
