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

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.True(t, cfg.Storage.Migrate)
	assert.True(t, cfg.Ledger.AllowNegativeSeed)
	assert.Equal(t, 50, cfg.Ledger.RecentLimit)
	assert.Equal(t, "0.0.0.0:5000", cfg.HTTP.Addr())
	assert.Empty(t, cfg.JWT.Secret)
}

func TestFromViper_EnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("LEDGER_ALLOW_NEGATIVE_SEED", "false")
	t.Setenv("LEDGER_RECENT_LIMIT", "10")
	t.Setenv("PORT", "8081")
	t.Setenv("NEON_CONNECT", "postgres://u:p@neon.example/dairy")

	v := viper.New()
	v.AutomaticEnv()
	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.False(t, cfg.Ledger.AllowNegativeSeed)
	assert.Equal(t, 10, cfg.Ledger.RecentLimit)
	assert.Equal(t, 8081, cfg.HTTP.Port)
	assert.Equal(t, "postgres://u:p@neon.example/dairy", cfg.DB.ConnectionString())
}

func TestFromViper_DriverInvalido(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "mongo")
	_, err := fromViper(v)
	require.Error(t, err)
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "dairy", Password: "p@ss/word", DBName: "dairy", SSLMode: "disable"}
	assert.Equal(t, "postgres://dairy:p%40ss%2Fword@db:5432/dairy?sslmode=disable", c.DSN())
}
