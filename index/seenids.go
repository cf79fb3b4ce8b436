package index

import (
	"sync"

	"github.com/minio/highwayhash"
)

const numSeenShards = 256

var zeroHighwaySeed [highwayhash.Size]byte

// SeenIDs is a concurrent, idempotent set of record ids, grown during phase
// 1 and consulted (and further grown) during phase 2, per §5: it is the one
// structure both phases write to concurrently, so every operation is
// lock-protected per shard rather than assuming single-writer discipline.
type SeenIDs struct {
	shards [numSeenShards]seenIDsShard
}

type seenIDsShard struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

// NewSeenIDs returns an empty SeenIDs set.
func NewSeenIDs() *SeenIDs {
	s := &SeenIDs{}
	for i := range s.shards {
		s.shards[i].ids = make(map[string]struct{})
	}
	return s
}

func seenShardFor(id string) int {
	sum := highwayhash.Sum([]byte(id), zeroHighwaySeed[:])
	return int(sum[0])
}

// Contains reports whether id has already been recorded.
func (s *SeenIDs) Contains(id string) bool {
	shard := &s.shards[seenShardFor(id)]
	shard.mu.Lock()
	defer shard.mu.Unlock()
	_, ok := shard.ids[id]
	return ok
}

// Add records id, returning true if this call was the first to do so
// (idempotent: repeated Add calls for the same id return false after the
// first).
func (s *SeenIDs) Add(id string) bool {
	shard := &s.shards[seenShardFor(id)]
	shard.mu.Lock()
	defer shard.mu.Unlock()
	if _, ok := shard.ids[id]; ok {
		return false
	}
	shard.ids[id] = struct{}{}
	return true
}
