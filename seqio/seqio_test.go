package seqio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFastqSourceReadsRecords(t *testing.T) {
	data := "@read1 comment here\n" +
		"ACGTACGT\n" +
		"+\n" +
		"IIIIIIII\n" +
		"@read2\n" +
		"TTTTGGGG\n" +
		"+\n" +
		"JJJJJJJJ\n"
	src := newFastqSource(strings.NewReader(data), nil)

	rec, ok, err := src.Next()
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, Record{ID: "read1", Comment: "comment here", Seq: "ACGTACGT", Quality: "IIIIIIII"}, rec)

	rec, ok, err = src.Next()
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, Record{ID: "read2", Comment: "", Seq: "TTTTGGGG", Quality: "JJJJJJJJ"}, rec)

	_, ok, err = src.Next()
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestFastqSourceRejectsTruncated(t *testing.T) {
	data := "@read1\nACGT\n"
	src := newFastqSource(strings.NewReader(data), nil)
	_, ok, err := src.Next()
	assert.False(t, ok)
	assert.Equal(t, ErrShortFastq, err)
}

func TestFastaSourceReadsMultilineRecords(t *testing.T) {
	data := ">seq1 some comment\n" +
		"ACGT\n" +
		"ACGT\n" +
		">seq2\n" +
		"TTTT\n"
	src := newFastaSource(strings.NewReader(data), nil)

	rec, ok, err := src.Next()
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, Record{ID: "seq1", Comment: "some comment", Seq: "ACGTACGT"}, rec)

	rec, ok, err = src.Next()
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, Record{ID: "seq2", Comment: "", Seq: "TTTT"}, rec)

	_, ok, err = src.Next()
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestNewSourceForFirstByteDetectsFormat(t *testing.T) {
	fastqSrc, err := newSourceForFirstByte(strings.NewReader("@r1\nACGT\n+\nIIII\n"), nil)
	assert.NoError(t, err)
	_, ok := fastqSrc.(*fastqSource)
	assert.True(t, ok)

	fastaSrc, err := newSourceForFirstByte(strings.NewReader(">r1\nACGT\n"), nil)
	assert.NoError(t, err)
	_, ok = fastaSrc.(*fastaSource)
	assert.True(t, ok)

	_, err = newSourceForFirstByte(strings.NewReader("garbage"), nil)
	assert.Error(t, err)
}
