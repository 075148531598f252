package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandEnv(t *testing.T) {
	t.Setenv("TEST_DB_HOST", "db.internal")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"env var set", "host: ${TEST_DB_HOST}", "host: db.internal"},
		{"env var set overrides default", "host: ${TEST_DB_HOST:localhost}", "host: db.internal"},
		{"default used when unset", "host: ${TEST_UNSET_VAR:localhost}", "host: localhost"},
		{"no default and unset keeps placeholder", "host: ${TEST_UNSET_VAR}", "host: ${TEST_UNSET_VAR}"},
		{"empty default expands to empty", "password: ${TEST_UNSET_PW:}", "password: "},
		{"plain text untouched", "host: localhost", "host: localhost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expandEnv(tt.in))
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	// 运行目录下没有 configs/ 时走纯默认值路径
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "novel-translate-api", cfg.App.Name)
	assert.Equal(t, 4000, cfg.Server.HTTP.Port)
	assert.Equal(t, "localhost", cfg.Database.Postgres.Host)
	assert.Equal(t, 19530, cfg.Vector.Milvus.Port)
	assert.Equal(t, "nomic-embed-text", cfg.Clients.Embedding.Model)
	assert.Equal(t, "qwen2.5:3b", cfg.Clients.Generation.Model)
	assert.Equal(t, int64(100000), cfg.Messaging.RedisStream.MaxLen)
	assert.True(t, cfg.Observability.Metrics.Enabled)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SERVER_HTTP_PORT", "8080")
	t.Setenv("DATABASE_POSTGRES_HOST", "pg.internal")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTP.Port)
	assert.Equal(t, "pg.internal", cfg.Database.Postgres.Host)
}
