// Package index implements the shared, concurrency-safe state the scanners
// and recruiter accumulate into: the canonical-repeat ReadIndex with its
// repeat-string interner, the cross-phase SeenIDs set, and the PatternSet.
//
// ReadIndex and SeenIDs are sharded by a hash of their key, in the style of
// github.com/grailbio/bio/fusion's kmerIndex: the top bits of a farmhash
// (ReadIndex) or the first byte of a highwayhash (SeenIDs) pick a shard,
// each shard guarded by its own mutex, to keep phase 1's
// per-record writers from serializing on a single lock. Unlike kmerIndex,
// which hand-rolls an open-addressed table in an anonymous mmap to pack
// millions of fixed-size int entries as densely as possible, ReadIndex
// buckets hold variable-length []*holder.ReadHolder slices, so a shard is
// simply a mutex-guarded Go map: the memory-density problem kmerIndex solves
// for doesn't apply here.
package index

import (
	"sync"

	farm "github.com/dgryski/go-farm"
	"github.com/grailbio/crispr/holder"
)

const numShards = 256

// ReadIndex maps each distinct canonical repeat string to the ordered list
// of ReadHolders exhibiting it, as described in §4.6: insertion order
// within a bucket is preserved, and the canonical repeat string is assigned
// a stable, non-zero token on first sight (token 0 means "absent"). Tokens
// are dense within a shard only: the low byte holds the shard index, so the
// tokens of the whole index are not a dense range starting at 1.
type ReadIndex struct {
	shards [numShards]readIndexShard
}

type readIndexShard struct {
	mu      sync.Mutex
	tokens  map[string]uint32
	buckets map[uint32][]*holder.ReadHolder
}

// NewReadIndex returns an empty ReadIndex.
func NewReadIndex() *ReadIndex {
	idx := &ReadIndex{}
	for i := range idx.shards {
		idx.shards[i].tokens = make(map[string]uint32)
		idx.shards[i].buckets = make(map[uint32][]*holder.ReadHolder)
	}
	return idx
}

func shardFor(key string) int {
	return int(farm.Hash64([]byte(key)) >> 56)
}

// Insert canonicalizes h (per holder.ReadHolder.Canonicalize), interns its
// first interval's repeat string, and appends h to that token's bucket. It
// returns the token assigned to the canonical repeat.
func (idx *ReadIndex) Insert(h *holder.ReadHolder) uint32 {
	h.Canonicalize()
	canonical := h.RepeatString(0)

	shard := &idx.shards[shardFor(canonical)]
	shard.mu.Lock()
	defer shard.mu.Unlock()

	token, ok := shard.tokens[canonical]
	if !ok {
		// Tokens are dense per-shard counters offset so that, across all
		// shards, token 0 never recurs: shard index packed into the low
		// byte, the per-shard sequence number in the rest.
		token = uint32(len(shard.tokens)+1)<<8 | uint32(shardFor(canonical)&0xff)
		shard.tokens[canonical] = token
	}
	shard.buckets[token] = append(shard.buckets[token], h)
	return token
}

// Bucket returns the ReadHolders filed under canonical, or nil if none have
// been published.
func (idx *ReadIndex) Bucket(canonical string) []*holder.ReadHolder {
	shard := &idx.shards[shardFor(canonical)]
	shard.mu.Lock()
	defer shard.mu.Unlock()
	return shard.buckets[shard.tokens[canonical]]
}

// Len returns the total number of published ReadHolders across every
// bucket.
func (idx *ReadIndex) Len() int {
	n := 0
	for i := range idx.shards {
		idx.shards[i].mu.Lock()
		for _, b := range idx.shards[i].buckets {
			n += len(b)
		}
		idx.shards[i].mu.Unlock()
	}
	return n
}

// Each calls fn once per (canonicalRepeat, bucket) pair across every shard.
// Iteration order across buckets is unspecified.
func (idx *ReadIndex) Each(fn func(canonical string, reads []*holder.ReadHolder)) {
	for i := range idx.shards {
		shard := &idx.shards[i]
		shard.mu.Lock()
		for canonical, token := range shard.tokens {
			fn(canonical, shard.buckets[token])
		}
		shard.mu.Unlock()
	}
}
