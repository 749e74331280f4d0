package config

import "time"

func (m *Manager) GetDefault() *Config {
	return &Config{
		App: App{
			LogLevel:   "info",
			GinMode:    "release",
			ListenAddr: ":8080",
		},
		Relay: Relay{
			DefaultTTL:      60 * time.Second,
			MaxTTL:          24 * time.Hour,
			DefaultMaxViews: 1,
			MaxViewsLimit:   100,
			TokenBytes:      4,
			SweepInterval:   5 * time.Second,
			Shards:          8,
		},
		Limiter: Limiter{
			Requests: 30,
			Per:      time.Minute,
			Burst:    10,
		},
	}
}
