package seqio

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidFasta is returned when a FASTA record's header line is missing
// its leading '>'.
var ErrInvalidFasta = errors.New("seqio: invalid FASTA record")

// fastaSource streams FASTA records, unlike
// github.com/grailbio/bio/encoding/fasta's eager whole-file Fasta type: it
// buffers only the current record's sequence lines, which suits the
// pipeline's single forward pass over a read stream.
type fastaSource struct {
	closer io.Closer
	b      *bufio.Scanner

	pendingHeader string
	havePending   bool
	atEOF         bool
}

func newFastaSource(r io.Reader, closer io.Closer) *fastaSource {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &fastaSource{closer: closer, b: s}
}

func (f *fastaSource) Next() (Record, bool, error) {
	header := f.pendingHeader
	f.pendingHeader = ""
	f.havePending = false
	if header == "" {
		if f.atEOF {
			return Record{}, false, nil
		}
		for {
			if !f.b.Scan() {
				f.atEOF = true
				return Record{}, false, f.b.Err()
			}
			line := f.b.Text()
			if line == "" {
				continue
			}
			if line[0] != '>' {
				return Record{}, false, ErrInvalidFasta
			}
			header = line
			break
		}
	}

	id, comment := splitIDAndComment(header[1:])
	var seq strings.Builder
	for f.b.Scan() {
		line := f.b.Text()
		if len(line) > 0 && line[0] == '>' {
			f.pendingHeader = line
			f.havePending = true
			break
		}
		seq.WriteString(strings.TrimSpace(line))
	}
	if !f.havePending {
		if err := f.b.Err(); err != nil {
			return Record{}, false, err
		}
		f.atEOF = true
	}
	return Record{ID: id, Comment: comment, Seq: seq.String()}, true, nil
}

func (f *fastaSource) Close(ctx context.Context) error {
	if f.closer == nil {
		return nil
	}
	return f.closer.Close()
}
