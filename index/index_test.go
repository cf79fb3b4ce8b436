package index

import (
	"sync"
	"testing"

	"github.com/grailbio/crispr/holder"
	"github.com/stretchr/testify/assert"
)

func TestReadIndexInsertAndBucket(t *testing.T) {
	idx := NewReadIndex()

	h1 := holder.New("r1", "AAAACCCCAAAA")
	h1.AddInterval(0, 4)
	h1.AddInterval(8, 12)

	h2 := holder.New("r2", "AAAATTTTAAAA")
	h2.AddInterval(0, 4)
	h2.AddInterval(8, 12)

	idx.Insert(h1)
	idx.Insert(h2)

	bucket := idx.Bucket("AAAA")
	assert.Len(t, bucket, 2)
	assert.Equal(t, "r1", bucket[0].ID)
	assert.Equal(t, "r2", bucket[1].ID)
	assert.Equal(t, 2, idx.Len())
}

func TestReadIndexCanonicalizesBeforeBucketing(t *testing.T) {
	idx := NewReadIndex()
	// "TTTT"'s canonical form is "AAAA" (revcomp("TTTT")=="AAAA" < "TTTT"),
	// so this read must flip before it lands in the "AAAA" bucket.
	h := holder.New("r1", "TTTTCCCCTTTT")
	h.AddInterval(0, 4)
	h.AddInterval(8, 12)

	idx.Insert(h)
	assert.Len(t, idx.Bucket("AAAA"), 1)
	assert.Nil(t, idx.Bucket("TTTT"))
}

func TestReadIndexConcurrentInsert(t *testing.T) {
	idx := NewReadIndex()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h := holder.New("r", "AAAACCCCAAAA")
			h.AddInterval(0, 4)
			h.AddInterval(8, 12)
			idx.Insert(h)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 100, idx.Len())
}

func TestSeenIDsIdempotent(t *testing.T) {
	s := NewSeenIDs()
	assert.False(t, s.Contains("r1"))
	assert.True(t, s.Add("r1"))
	assert.True(t, s.Contains("r1"))
	assert.False(t, s.Add("r1"))
}

func TestPatternSetDedupesAndPreservesOrder(t *testing.T) {
	p := NewPatternSet()
	p.Add("AAAA")
	p.Add("CCCC")
	p.Add("AAAA")
	assert.Equal(t, []string{"AAAA", "CCCC"}, p.Snapshot())
	assert.Equal(t, 2, p.Len())
}
