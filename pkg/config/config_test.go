package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.True(t, cfg.App.IsDevelopment())
	assert.Equal(t, StoragePostgres, cfg.App.StorageDriver)
	assert.Equal(t, DefaultTimezone, cfg.App.Timezone)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 10*time.Second, cfg.Postal.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.Postal.CacheTTL)
	assert.Empty(t, cfg.Redis.URL)
	assert.Empty(t, cfg.JWT.Secret)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "Memory")
	v.Set("HTTP_PORT", "9090")
	v.Set("DB_PORT", "not-a-number")
	v.Set("APP_ENV", "production")
	v.Set("POSTAL_TIMEOUT_SECONDS", "3")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.App.StorageDriver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.False(t, cfg.App.IsDevelopment())
	assert.Equal(t, 3*time.Second, cfg.Postal.Timeout)
}

func TestFromViper_Invalidos(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "mongo")
	_, err := fromViper(v)
	assert.Error(t, err)

	v = viper.New()
	v.Set("APP_TIMEZONE", "Marte/Olympus")
	_, err = fromViper(v)
	assert.Error(t, err)
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/w", Name: "shop", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fw@db:5432/shop?sslmode=disable", c.DSN())
}
