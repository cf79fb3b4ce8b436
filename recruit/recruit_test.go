package recruit

import (
	"testing"

	"github.com/grailbio/crispr/index"
	"github.com/grailbio/crispr/seqio"
	"github.com/stretchr/testify/assert"
)

func TestRecruitInsertsOnExactPatternMatch(t *testing.T) {
	idx := index.NewReadIndex()
	seen := index.NewSeenIDs()
	r := New([]string{"GTTTCCGTCCCCTCATGGGGGACGGAAAC"}, idx, seen)

	rec := seqio.Record{ID: "read1", Seq: "TTTT" + "GTTTCCGTCCCCTCATGGGGGACGGAAAC" + "AAAA"}
	outcome := r.Recruit(rec)

	assert.True(t, outcome.Recruited)
	assert.Equal(t, 1, idx.Len())
	assert.True(t, seen.Contains("read1"))
}

func TestRecruitSkipsReadWithNoMatch(t *testing.T) {
	idx := index.NewReadIndex()
	seen := index.NewSeenIDs()
	r := New([]string{"GTTTCCGTCCCCTCATGGGGGACGGAAAC"}, idx, seen)

	rec := seqio.Record{ID: "read2", Seq: "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"}
	outcome := r.Recruit(rec)

	assert.False(t, outcome.Recruited)
	assert.Equal(t, 0, idx.Len())
	assert.False(t, seen.Contains("read2"))
}

func TestRecruitSkipsAlreadySeenRead(t *testing.T) {
	idx := index.NewReadIndex()
	seen := index.NewSeenIDs()
	seen.Add("read3")
	r := New([]string{"GTTTCCGTCCCCTCATGGGGGACGGAAAC"}, idx, seen)

	rec := seqio.Record{ID: "read3", Seq: "TTTT" + "GTTTCCGTCCCCTCATGGGGGACGGAAAC" + "AAAA"}
	outcome := r.Recruit(rec)

	assert.False(t, outcome.Recruited)
	assert.True(t, outcome.AlreadySeen)
	assert.Equal(t, 0, idx.Len())
}
