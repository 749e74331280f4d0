package config

import "time"

type Config struct {
	App     App     `json:"app"`
	Relay   Relay   `json:"relay"`
	Limiter Limiter `json:"limiter"`
}

type App struct {
	LogLevel   string `json:"log_level"`
	GinMode    string `json:"gin_mode"`
	ListenAddr string `json:"listen_addr"`
	AuthToken  string `json:"auth_token"` // protects /metrics and pprof; empty leaves them open
}

type Relay struct {
	DefaultTTL      time.Duration `json:"default_ttl"`
	MaxTTL          time.Duration `json:"max_ttl"`
	DefaultMaxViews int           `json:"default_max_views"`
	MaxViewsLimit   int           `json:"max_views_limit"`
	TokenBytes      int           `json:"token_bytes"`
	SweepInterval   time.Duration `json:"sweep_interval"`
	Shards          int           `json:"shards"`
}

type Limiter struct {
	Requests int           `json:"requests"`
	Per      time.Duration `json:"per"`
	Burst    int           `json:"burst"`
}
