package middlewares

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/maypok86/otter/v2"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/time/rate"
)

// clientIdleTTL evicts a client's limiter after this long without requests.
const clientIdleTTL = 10 * time.Minute

type Middlewares struct {
	limit rate.Limit
	burst int

	// limiters are held per hashed client key and dropped after idle TTL,
	// so the set never grows past the active client population.
	clients *otter.Cache[string, *rate.Limiter]

	// hashKey is a per-process random blake2b key; raw client IPs are never
	// stored or logged, only their keyed hashes.
	hashKey []byte
}

func New(requests int, per time.Duration, burst int) *Middlewares {
	m := &Middlewares{
		limit: rate.Inf,
		burst: burst,
		clients: otter.Must(&otter.Options[string, *rate.Limiter]{
			ExpiryCalculator: otter.ExpiryAccessing[string, *rate.Limiter](clientIdleTTL),
		}),
		hashKey: make([]byte, 32),
	}

	if requests > 0 && per > 0 {
		m.limit = rate.Every(per / time.Duration(requests))
	}
	if m.burst <= 0 {
		m.burst = 1
	}

	if _, err := rand.Read(m.hashKey); err != nil {
		panic("middlewares: crypto/rand failed: " + err.Error())
	}

	return m
}

func (m *Middlewares) clientKey(ip string) string {
	h, _ := blake2b.New256(m.hashKey)
	h.Write([]byte(ip))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

func (m *Middlewares) limiterFor(ip string) *rate.Limiter {
	key := m.clientKey(ip)
	// SetIfAbsent returns the existing limiter when two requests from the
	// same client race on first contact, so they share one token bucket.
	lim, _ := m.clients.SetIfAbsent(key, rate.NewLimiter(m.limit, m.burst))
	return lim
}
