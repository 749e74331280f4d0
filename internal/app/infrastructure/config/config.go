package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Manager owns the relay's JSON config file. On first run it bootstraps the
// file with defaults; afterwards it serves reads and serialized updates,
// writing every change back atomically.
type Manager struct {
	mu   sync.RWMutex
	cfg  *Config
	path string
}

func New(path string) (*Manager, error) {
	m := &Manager{path: path}

	var err error
	m.cfg, err = m.load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load relay config %s: %w", path, err)
	}

	if errors.Is(err, os.ErrNotExist) {
		m.cfg = m.GetDefault()
		if err := m.saveLocked(); err != nil {
			return nil, fmt.Errorf("bootstrap relay config %s: %w", path, err)
		}
	}

	return m, nil
}

func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.cfg
}

func (m *Manager) Update(modify func(cfg *Config)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cfg == nil {
		return errors.New("no config loaded")
	}

	modify(m.cfg)

	if err := m.validate(m.cfg); err != nil {
		return fmt.Errorf("invalid config update: %w", err)
	}
	return m.saveLocked()
}

func (m *Manager) load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("no config path provided")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}

	m.fillMissing(&cfg)
	if err := m.validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	return &cfg, nil
}

// fillMissing backfills keys absent from a hand-edited file, so a config
// written before a relay option existed keeps loading after an upgrade.
// Limiter fields stay untouched: zero there means unlimited.
func (m *Manager) fillMissing(cfg *Config) {
	def := m.GetDefault()

	if cfg.App.LogLevel == "" {
		cfg.App.LogLevel = def.App.LogLevel
	}
	if cfg.App.GinMode == "" {
		cfg.App.GinMode = def.App.GinMode
	}

	if cfg.Relay.DefaultTTL == 0 {
		cfg.Relay.DefaultTTL = def.Relay.DefaultTTL
	}
	if cfg.Relay.MaxTTL == 0 {
		cfg.Relay.MaxTTL = def.Relay.MaxTTL
	}
	if cfg.Relay.DefaultMaxViews == 0 {
		cfg.Relay.DefaultMaxViews = def.Relay.DefaultMaxViews
	}
	if cfg.Relay.MaxViewsLimit == 0 {
		cfg.Relay.MaxViewsLimit = def.Relay.MaxViewsLimit
	}
	if cfg.Relay.TokenBytes == 0 {
		cfg.Relay.TokenBytes = def.Relay.TokenBytes
	}
	if cfg.Relay.SweepInterval == 0 {
		cfg.Relay.SweepInterval = def.Relay.SweepInterval
	}
	if cfg.Relay.Shards == 0 {
		cfg.Relay.Shards = def.Relay.Shards
	}
}

func (m *Manager) saveLocked() error {
	if m.path == "" {
		return errors.New("no config file loaded")
	}
	if m.cfg == nil {
		return errors.New("no config to save")
	}

	data, err := json.MarshalIndent(m.cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return m.writeAtomic(m.path, data, 0644)
}

func (m *Manager) writeAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d", base, time.Now().UnixNano()))

	if err := os.WriteFile(tmp, data, perm); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
