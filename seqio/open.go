package seqio

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// Open returns a Source streaming the FASTA or FASTQ records at path. path
// of "-" reads standard input. Gzip-compressed input is detected by file
// extension and transparently decompressed.
func Open(ctx context.Context, path string) (Source, error) {
	var (
		raw    io.Reader
		closer io.Closer
	)
	if path == "-" {
		raw = os.Stdin
	} else {
		f, err := file.Open(ctx, path)
		if err != nil {
			return nil, errors.Wrapf(err, "seqio: open %s", path)
		}
		raw = f.Reader(ctx)
		closer = fileCloser{ctx: ctx, f: f}
	}

	r := bufio.NewReader(raw)
	if path != "-" && fileio.DetermineType(path) == fileio.Gzip {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, errors.Wrapf(err, "seqio: gzip %s", path)
		}
		return newSourceForFirstByte(gz, closer)
	}

	// "-" may also be gzip-compressed; sniff the magic bytes rather than
	// relying on the (absent) extension.
	if path == "-" {
		peek, err := r.Peek(2)
		if err == nil && len(peek) == 2 && peek[0] == 0x1f && peek[1] == 0x8b {
			gz, err := gzip.NewReader(r)
			if err != nil {
				return nil, errors.Wrap(err, "seqio: gzip stdin")
			}
			return newSourceForFirstByte(gz, closer)
		}
	}
	return newSourceForFirstByte(r, closer)
}

// newSourceForFirstByte sniffs the first non-whitespace byte of r to decide
// between FASTA ('>') and FASTQ ('@') framing.
func newSourceForFirstByte(r io.Reader, closer io.Closer) (Source, error) {
	br := bufio.NewReader(r)
	b, err := br.Peek(1)
	for err == nil && (b[0] == ' ' || b[0] == '\t' || b[0] == '\r' || b[0] == '\n') {
		br.Discard(1)
		b, err = br.Peek(1)
	}
	if err != nil {
		if err == io.EOF {
			return newFastaSource(br, closer), nil
		}
		return nil, errors.Wrap(err, "seqio: detect format")
	}
	switch b[0] {
	case '@':
		return newFastqSource(br, closer), nil
	case '>':
		return newFastaSource(br, closer), nil
	default:
		return nil, errors.Errorf("seqio: unrecognized record framing byte %q", b[0])
	}
}

type fileCloser struct {
	ctx context.Context
	f   file.File
}

func (c fileCloser) Close() error { return c.f.Close(c.ctx) }
