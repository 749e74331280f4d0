package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	m, err := New(path)
	require.NoError(t, err)

	cfg := m.Get()
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, 60*time.Second, cfg.Relay.DefaultTTL)
	assert.Equal(t, 1, cfg.Relay.DefaultMaxViews)
	assert.Equal(t, 5*time.Second, cfg.Relay.SweepInterval)

	// A second manager reads the file just written.
	m2, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Relay, m2.Get().Relay)
}

func TestNew_BackfillsPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	// A hand-edited file from before sweep_interval and shards existed.
	partial := `{
		"app": {"listen_addr": ":9090"},
		"relay": {"default_ttl": 120000000000}
	}`
	require.NoError(t, os.WriteFile(path, []byte(partial), 0644))

	m, err := New(path)
	require.NoError(t, err)

	cfg := m.Get()
	assert.Equal(t, ":9090", cfg.App.ListenAddr)
	assert.Equal(t, 2*time.Minute, cfg.Relay.DefaultTTL)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.Relay.SweepInterval)
	assert.Equal(t, 8, cfg.Relay.Shards)
	assert.Equal(t, 4, cfg.Relay.TokenBytes)
}

func TestNew_RejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := New(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(cfg *Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			modify: func(cfg *Config) {},
		},
		{
			name:    "bad log level",
			modify:  func(cfg *Config) { cfg.App.LogLevel = "verbose" },
			wantErr: "app.log_level",
		},
		{
			name:    "bad gin mode",
			modify:  func(cfg *Config) { cfg.App.GinMode = "production" },
			wantErr: "app.gin_mode",
		},
		{
			name:    "missing listen addr",
			modify:  func(cfg *Config) { cfg.App.ListenAddr = "" },
			wantErr: "app.listen_addr",
		},
		{
			name:    "zero default ttl",
			modify:  func(cfg *Config) { cfg.Relay.DefaultTTL = 0 },
			wantErr: "relay.default_ttl",
		},
		{
			name:    "max ttl below default",
			modify:  func(cfg *Config) { cfg.Relay.MaxTTL = time.Second },
			wantErr: "relay.max_ttl",
		},
		{
			name:    "zero default views",
			modify:  func(cfg *Config) { cfg.Relay.DefaultMaxViews = 0 },
			wantErr: "relay.default_max_views",
		},
		{
			name:    "token too short",
			modify:  func(cfg *Config) { cfg.Relay.TokenBytes = 1 },
			wantErr: "relay.token_bytes",
		},
		{
			name:    "zero sweep interval",
			modify:  func(cfg *Config) { cfg.Relay.SweepInterval = 0 },
			wantErr: "relay.sweep_interval",
		},
		{
			name:    "zero shards",
			modify:  func(cfg *Config) { cfg.Relay.Shards = 0 },
			wantErr: "relay.shards",
		},
		{
			name:    "one-sided limiter",
			modify:  func(cfg *Config) { cfg.Limiter.Per = 0 },
			wantErr: "limiter.requests",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Manager{}
			cfg := m.GetDefault()
			tt.modify(cfg)

			err := m.validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestManager_Update(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	m, err := New(path)
	require.NoError(t, err)

	require.NoError(t, m.Update(func(cfg *Config) {
		cfg.Relay.DefaultTTL = 2 * time.Minute
	}))
	assert.Equal(t, 2*time.Minute, m.Get().Relay.DefaultTTL)

	err = m.Update(func(cfg *Config) {
		cfg.Relay.Shards = 0
	})
	assert.ErrorContains(t, err, "relay.shards")
}
