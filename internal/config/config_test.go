package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, BackendSupabase, cfg.StoreBackend)
	assert.Equal(t, "trends", cfg.TrendsTable)
	assert.Equal(t, "https://www.reddit.com/r/trending/hot.json?limit=10", cfg.RedditTrendsURL)
	assert.Equal(t, time.Duration(0), cfg.FetchTimeout)
	assert.Equal(t, 10*time.Second, cfg.PersistTimeout)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://abc.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon")
	t.Setenv("PORT", "8081")
	t.Setenv("FETCH_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://abc.supabase.co", cfg.SupabaseURL)
	assert.Equal(t, "anon", cfg.SupabaseKey)
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
store_backend = "redis"
trends_table = "daily_trends"
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, BackendRedis, cfg.StoreBackend)
	assert.Equal(t, "daily_trends", cfg.TrendsTable)
}

func TestValidate(t *testing.T) {
	base := Config{TrendsTable: "trends", DatabaseDSN: "postgres://x", RedisURL: "redis://x"}

	tests := map[string]struct {
		mutate  func(c *Config)
		wantErr bool
	}{
		"supabase without key": {
			mutate:  func(c *Config) { c.StoreBackend = BackendSupabase; c.SupabaseURL = "https://x" },
			wantErr: true,
		},
		"supabase complete": {
			mutate: func(c *Config) {
				c.StoreBackend = BackendSupabase
				c.SupabaseURL = "https://x"
				c.SupabaseKey = "k"
			},
		},
		"postgres":    {mutate: func(c *Config) { c.StoreBackend = BackendPostgres }},
		"redis":       {mutate: func(c *Config) { c.StoreBackend = BackendRedis }},
		"unknown":     {mutate: func(c *Config) { c.StoreBackend = "mongo" }, wantErr: true},
		"empty table": {mutate: func(c *Config) { c.StoreBackend = BackendRedis; c.TrendsTable = "" }, wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateUnknownBackend(t *testing.T) {
	err := Config{StoreBackend: "mongo", TrendsTable: "trends"}.Validate()
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, Config{LogLevel: "debug"}.SlogLevel())
	assert.Equal(t, slog.LevelWarn, Config{LogLevel: "WARN"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, Config{LogLevel: "loud"}.SlogLevel())
}
