// Package seqio streams FASTA and FASTQ records, transparently decompressing
// gzip input and abstracting over local paths, "-" (stdin), and any other
// scheme github.com/grailbio/base/file supports (e.g. s3://).
package seqio

import "context"

// Record is one sequencing read: an id, its sequence, and optionally a
// free-form comment and a byte-per-base quality string. Quality is empty
// for FASTA input.
type Record struct {
	ID      string
	Comment string
	Seq     string
	Quality string
}

// Source yields Records from an underlying stream, one at a time.
type Source interface {
	// Next returns the next record. ok is false, with a nil error, at normal
	// end of stream; err is non-nil only on a stream-level failure.
	Next() (rec Record, ok bool, err error)
	// Close releases resources held by the Source.
	Close(ctx context.Context) error
}
