package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, "local", cfg.Accounts.Driver)
	assert.Equal(t, 2*time.Hour, cfg.Notifications.Interval)
	assert.Equal(t, 24*time.Hour, cfg.Notifications.Retention)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "MEMORY")
	v.Set("HTTP_PORT", "9090")
	v.Set("NOTIFY_INTERVAL_MINUTES", "5")
	v.Set("ACCOUNTS_DRIVER", "remote")
	v.Set("ACCOUNTS_FUNCTIONS_URL", "https://example.test/functions/v1/")

	cfg, err := FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 5*time.Minute, cfg.Notifications.Interval)
	assert.Equal(t, "https://example.test/functions/v1", cfg.Accounts.FunctionsURL)
}

func TestFromViper_RemoteAccountsRequireURL(t *testing.T) {
	v := viper.New()
	v.Set("ACCOUNTS_DRIVER", "remote")

	_, err := FromViper(v)
	assert.Error(t, err)
}

func TestFromViper_UnknownStorageDriver(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "mongo")

	_, err := FromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "lumina", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/lumina?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
