package seqio

import (
	"bufio"
	"context"
	"io"

	"github.com/pkg/errors"
)

// ErrInvalidFastq is returned when a FASTQ record's structural markers
// ('@' id line, '+' separator line) are missing.
var ErrInvalidFastq = errors.New("seqio: invalid FASTQ record")

// ErrShortFastq is returned when a FASTQ record is truncated mid-way
// through its four lines.
var ErrShortFastq = errors.New("seqio: truncated FASTQ record")

// fastqSource reads FASTQ records, in the style of
// github.com/grailbio/bio/encoding/fastq.Scanner, generalized to produce
// Records directly instead of a fixed Read struct.
type fastqSource struct {
	closer io.Closer
	b      *bufio.Scanner
}

func newFastqSource(r io.Reader, closer io.Closer) *fastqSource {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &fastqSource{closer: closer, b: s}
}

func (f *fastqSource) Next() (Record, bool, error) {
	if !f.b.Scan() {
		return Record{}, false, f.b.Err()
	}
	idLine := f.b.Text()
	if len(idLine) == 0 || idLine[0] != '@' {
		return Record{}, false, ErrInvalidFastq
	}
	id, comment := splitIDAndComment(idLine[1:])

	seq, err := f.scanLine()
	if err != nil {
		return Record{}, false, err
	}

	sepLine, err := f.scanLine()
	if err != nil {
		return Record{}, false, err
	}
	if len(sepLine) == 0 || sepLine[0] != '+' {
		return Record{}, false, ErrInvalidFastq
	}

	qual, err := f.scanLine()
	if err != nil {
		return Record{}, false, err
	}

	return Record{ID: id, Comment: comment, Seq: seq, Quality: qual}, true, nil
}

// scanLine reads one line, translating a premature end of stream into
// ErrShortFastq instead of the clean-EOF signal Next's first Scan uses.
func (f *fastqSource) scanLine() (string, error) {
	if !f.b.Scan() {
		if err := f.b.Err(); err != nil {
			return "", err
		}
		return "", ErrShortFastq
	}
	return f.b.Text(), nil
}

func (f *fastqSource) Close(ctx context.Context) error {
	if f.closer == nil {
		return nil
	}
	return f.closer.Close()
}

func splitIDAndComment(line string) (id, comment string) {
	for i := 0; i < len(line); i++ {
		if line[i] == ' ' || line[i] == '\t' {
			return line[:i], line[i+1:]
		}
	}
	return line, ""
}
