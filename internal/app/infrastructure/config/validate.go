package config

import (
	"errors"
	"fmt"
)

func (m *Manager) validate(cfg *Config) error {
	// app
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if cfg.App.LogLevel != "" && !validLevels[cfg.App.LogLevel] {
		return fmt.Errorf("app.log_level must be one of debug, info, warn, error; got %s", cfg.App.LogLevel)
	}

	validModes := map[string]bool{"debug": true, "release": true, "test": true}
	if cfg.App.GinMode != "" && !validModes[cfg.App.GinMode] {
		return fmt.Errorf("app.gin_mode must be one of debug, release, test; got %s", cfg.App.GinMode)
	}

	if cfg.App.ListenAddr == "" {
		return errors.New("app.listen_addr is required")
	}

	// relay
	if cfg.Relay.DefaultTTL <= 0 {
		return errors.New("relay.default_ttl must be positive")
	}
	if cfg.Relay.MaxTTL < cfg.Relay.DefaultTTL {
		return errors.New("relay.max_ttl must be >= relay.default_ttl")
	}
	if cfg.Relay.DefaultMaxViews < 1 {
		return errors.New("relay.default_max_views must be >= 1")
	}
	if cfg.Relay.MaxViewsLimit < cfg.Relay.DefaultMaxViews {
		return errors.New("relay.max_views_limit must be >= relay.default_max_views")
	}
	if cfg.Relay.TokenBytes < 2 || cfg.Relay.TokenBytes > 32 {
		return errors.New("relay.token_bytes must be [2,32]")
	}
	if cfg.Relay.SweepInterval <= 0 {
		return errors.New("relay.sweep_interval must be positive")
	}
	if cfg.Relay.Shards < 1 {
		return errors.New("relay.shards must be >= 1")
	}

	// limiter
	if (cfg.Limiter.Requests != 0 && cfg.Limiter.Per == 0) || (cfg.Limiter.Requests == 0 && cfg.Limiter.Per != 0) {
		return errors.New("limiter.requests and limiter.per must both be set or both be zero")
	}
	if cfg.Limiter.Burst < 0 {
		return errors.New("limiter.burst must be >= 0")
	}

	return nil
}
