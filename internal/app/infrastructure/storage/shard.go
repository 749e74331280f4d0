package storage

import (
	"hash/fnv"
	"sync"
)

type shard struct {
	mu      sync.RWMutex
	records map[string]*record
	expires expHeap
}

func (s *Store) getShard(id string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return &s.shards[h.Sum32()%uint32(len(s.shards))]
}
