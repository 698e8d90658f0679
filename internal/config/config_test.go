package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"HTTP_ADDR", "DATABASE_URL", "LOG_MODE", "GIN_MODE", "DEFAULT_USER_ID",
		"SCHEDULER_ENABLED", "TELEGRAM_TOKEN", "TELEGRAM_CHAT_ID",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":3001", cfg.HTTPAddr)
	require.Equal(t, "daily_tasks.db", cfg.DatabaseURL)
	require.Equal(t, "default_user", cfg.DefaultUserID)
	require.True(t, cfg.SchedulerEnabled)
	require.Empty(t, cfg.TelegramToken)
}

func TestLoadTelegramRequiresChat(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "123:abc")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("TELEGRAM_CHAT_ID", "-100200300")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, int64(-100200300), cfg.TelegramChatID)
}

func TestLoadRejectsBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("SCHEDULER_ENABLED", "maybe")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("SCHEDULER_ENABLED", "off")
	t.Setenv("TELEGRAM_CHAT_ID", "chat")
	_, err = Load()
	require.Error(t, err)
}

func TestSchedulerCanBeDisabled(t *testing.T) {
	clearEnv(t)
	t.Setenv("SCHEDULER_ENABLED", "false")
	cfg, err := Load()
	require.NoError(t, err)
	require.False(t, cfg.SchedulerEnabled)
}

func TestNewLogger(t *testing.T) {
	for _, mode := range []string{"prod", "dev", ""} {
		log, err := NewLogger(mode)
		require.NoError(t, err)
		require.NotNil(t, log)
	}
}
