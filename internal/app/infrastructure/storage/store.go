package storage

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"time"

	"msgrelay/internal/app/ports"
	"msgrelay/pkg/logger"
)

var (
	// ErrInvalidConfig rejects a Put with a non-positive TTL or view count.
	ErrInvalidConfig = errors.New("storage: ttl and max views must be positive")
	// ErrCapacity means the id space yielded no free token within the retry budget.
	ErrCapacity = errors.New("storage: no free message id")
)

// idRetryBudget bounds collision retries in Put. With 4-byte tokens and any
// realistic live-record count this is never expected to run out.
const idRetryBudget = 5

// Store holds ephemeral messages keyed by token. Records die either when
// their last view is taken or when their TTL lapses; the two paths are
// indistinguishable to readers. Shards keep unrelated ids from contending
// on one lock, while same-id operations serialize on the shard mutex.
type Store struct {
	shards []shard
	tokens ports.TokenPort
	log    logger.Logger

	now     func() time.Time
	onSweep func(removed int)
}

type Option func(*Store)

// WithNow replaces the wall clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithSweepObserver is called after every sweep pass with the number of
// records removed, including zero.
func WithSweepObserver(fn func(removed int)) Option {
	return func(s *Store) {
		s.onSweep = fn
	}
}

func New(log logger.Logger, tokens ports.TokenPort, nShards int, opts ...Option) *Store {
	if nShards <= 0 {
		nShards = 1
	}

	s := &Store{
		shards: make([]shard, nShards),
		tokens: tokens,
		log:    log,
		now:    time.Now,
	}
	for i := range s.shards {
		s.shards[i].records = make(map[string]*record)
		s.shards[i].expires = make(expHeap, 0)
		heap.Init(&s.shards[i].expires)
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Put stores payload under a fresh token and returns it. The record becomes
// unreachable after ttl has passed or after maxViews successful Take calls,
// whichever comes first.
func (s *Store) Put(payload string, ttl time.Duration, maxViews int) (string, error) {
	if ttl <= 0 || maxViews <= 0 {
		return "", ErrInvalidConfig
	}

	for attempt := 0; attempt < idRetryBudget; attempt++ {
		id, err := s.tokens.Generate()
		if err != nil {
			return "", fmt.Errorf("generate id: %w", err)
		}

		expiresAt := s.now().Add(ttl).UnixNano()

		sh := s.getShard(id)
		sh.mu.Lock()
		if _, exists := sh.records[id]; exists {
			sh.mu.Unlock()
			continue
		}
		sh.records[id] = &record{payload: payload, expiresAt: expiresAt, viewsLeft: maxViews}
		heap.Push(&sh.expires, expEntry{id: id, expiresAt: expiresAt})
		sh.mu.Unlock()

		return id, nil
	}

	return "", ErrCapacity
}

// Take consumes one view of id. It reports false when the record is absent,
// view-exhausted or past its TTL; the caller cannot tell which. The final
// view deletes the record inside the same critical section, so concurrent
// callers racing for it see exactly one winner.
func (s *Store) Take(id string) (string, bool) {
	sh := s.getShard(id)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	rec, ok := sh.records[id]
	if !ok {
		return "", false
	}
	if rec.expiresAt <= s.now().UnixNano() {
		delete(sh.records, id)
		return "", false
	}

	rec.viewsLeft--
	if rec.viewsLeft <= 0 {
		delete(sh.records, id)
	}
	return rec.payload, true
}

// Sweep removes every record whose TTL has lapsed and returns how many it
// removed. Heap entries left behind by Take, or superseded by a reused id,
// are skipped by re-checking the live record's own deadline. Safe to call
// at any time, any number of times; correctness of Put/Take never depends
// on it.
func (s *Store) Sweep() int {
	now := s.now().UnixNano()

	removed := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.Lock()
		for len(sh.expires) > 0 && sh.expires[0].expiresAt <= now {
			ent := heap.Pop(&sh.expires).(expEntry)

			rec, ok := sh.records[ent.id]
			if !ok || rec.expiresAt > now {
				continue
			}
			delete(sh.records, ent.id)
			removed++
		}
		sh.mu.Unlock()
	}

	if s.onSweep != nil {
		s.onSweep(removed)
	}
	return removed
}

// Len counts records that are still alive: present, views left, TTL not yet
// lapsed. Expired records awaiting a sweep are not counted.
func (s *Store) Len() int {
	now := s.now().UnixNano()

	n := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.RLock()
		for _, rec := range sh.records {
			if rec.expiresAt > now {
				n++
			}
		}
		sh.mu.RUnlock()
	}
	return n
}

// ExpiresAt reports the deadline of a live record without consuming a view.
func (s *Store) ExpiresAt(id string) (time.Time, bool) {
	sh := s.getShard(id)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	rec, ok := sh.records[id]
	if !ok || rec.expiresAt <= s.now().UnixNano() {
		return time.Time{}, false
	}
	// Normalize to UTC so callers compare deadlines by instant, not by the
	// Location attached by time.Unix.
	return time.Unix(0, rec.expiresAt).UTC(), true
}

// Run sweeps on a fixed cadence until ctx is cancelled. One pass runs
// immediately so a long-lived process does not hold expired records for a
// full tick after startup.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		s.log.Warn("sweeper disabled: interval must be positive", "interval", interval.String())
		return
	}

	s.sweepOnce()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Debug("sweeper stopped")
			return
		case <-ticker.C:
			s.sweepOnce()
		}
	}
}

func (s *Store) sweepOnce() {
	if removed := s.Sweep(); removed > 0 {
		s.log.Info("expired messages swept", "count", removed)
	}
}
