package config_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/salary-ticker/config"
	"github.com/warp/salary-ticker/settings"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"SALARY_TICKER_DATA_DIR", "SALARY_TICKER_PORT", "SALARY_TICKER_BACKEND",
		"SALARY_TICKER_DB", "TELEGRAM_TOKEN", "TELEGRAM_CHAT_ID",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load("test", nil)
	require.NoError(t, err)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, config.BackendFile, cfg.Backend)
	assert.Equal(t, filepath.Join("./data", "salary-ticker.db"), cfg.DBPath)
	assert.Empty(t, cfg.TelegramToken)
}

func TestLoad_EnvThenFlags(t *testing.T) {
	clearEnv(t)
	t.Setenv("SALARY_TICKER_PORT", "9000")
	t.Setenv("SALARY_TICKER_DATA_DIR", "/tmp/ticker")
	t.Setenv("TELEGRAM_CHAT_ID", "-100123")

	cfg, err := config.Load("test", []string{"-port=3000", "-backend=sqlite"})
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Port, "flag wins over env")
	assert.Equal(t, "/tmp/ticker", cfg.DataDir)
	assert.Equal(t, config.BackendSQLite, cfg.Backend)
	assert.Equal(t, int64(-100123), cfg.TelegramChatID)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	_, err := config.Load("test", []string{"-backend=redis"})
	assert.ErrorIs(t, err, config.ErrUnknownBackend)

	t.Setenv("SALARY_TICKER_PORT", "eighty")
	_, err = config.Load("test", nil)
	assert.Error(t, err)
}

func TestOpenStores(t *testing.T) {
	clearEnv(t)
	ctx := context.Background()

	for _, backend := range []string{config.BackendFile, config.BackendSQLite, config.BackendMemory} {
		t.Run(backend, func(t *testing.T) {
			cfg, err := config.Load("test", []string{"-data=" + t.TempDir(), "-backend=" + backend})
			require.NoError(t, err)

			stores, err := cfg.OpenStores()
			require.NoError(t, err)
			defer stores.Close()

			_, err = stores.Settings.Load(ctx)
			assert.ErrorIs(t, err, settings.ErrNotFound)
		})
	}
}
