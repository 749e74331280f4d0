package ports

import "time"

// RelayPort is the ephemeral message store as seen by the transport layer.
// A message is reachable only while it still has views left and its TTL has
// not lapsed; Take consumes exactly one view per successful call.
type RelayPort interface {
	Put(payload string, ttl time.Duration, maxViews int) (string, error)
	Take(id string) (string, bool)
	Sweep() int
	Len() int
	ExpiresAt(id string) (time.Time, bool)
}
