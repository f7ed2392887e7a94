// Package output formats hits in the legacy tabular format (spec.md
// §4.7) and opens the configured output sink, transparently wrapping
// it in a zstd writer when the path ends in ".zst".
//
// Grounded on internal/output/text.go's one-line-per-record style and
// on vertti-fastqpacker/internal/compress/compress.go for the zstd
// writer wiring, giving klauspost/compress/zstd a call site distinct
// from fastaio's gzip reader.
package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	"stspcr-core/hit"
)

// WriteHit formats one hit as `{label}\t{pos1}..{pos2}\t{sts_id}\t
// ({strand})[\t{annotation}]`, appending the annotation field only
// when it is non-empty.
func WriteHit(w io.Writer, h hit.Hit) error {
	_, err := fmt.Fprintf(w, "%s\t%d..%d\t%s\t(%s)", h.TargetLabel, h.Start, h.End, h.STS.ID, h.Strand)
	if err != nil {
		return err
	}
	if h.STS.Annotation != "" {
		if _, err := fmt.Fprintf(w, "\t%s", h.STS.Annotation); err != nil {
			return err
		}
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// WriteHits formats hits in order, flushing w after each line when
// flushEach is set (spec.md §4.7: "on the sink being stdout, each hit
// SHOULD be flushed promptly to support piping").
func WriteHits(w *bufio.Writer, hits []hit.Hit, flushEach bool) error {
	for _, h := range hits {
		if err := WriteHit(w, h); err != nil {
			return err
		}
		if flushEach {
			if err := w.Flush(); err != nil {
				return err
			}
		}
	}
	return w.Flush()
}

// Sink is an opened output destination, ready for buffered writes.
type Sink struct {
	w       *bufio.Writer
	closers []io.Closer
	IsStdio bool
}

// Open resolves the "stdout" sentinel (spec.md's CLI supplement) and
// transparently zstd-compresses paths ending in ".zst".
func Open(path string) (*Sink, error) {
	if path == "" || path == "stdout" || path == "-" {
		return &Sink{w: bufio.NewWriter(os.Stdout), IsStdio: true}, nil
	}
	fh, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	if strings.HasSuffix(path, ".zst") {
		zw, err := zstd.NewWriter(fh)
		if err != nil {
			_ = fh.Close()
			return nil, fmt.Errorf("zstd writer for %s: %w", path, err)
		}
		return &Sink{w: bufio.NewWriter(zw), closers: []io.Closer{zw, fh}}, nil
	}
	return &Sink{w: bufio.NewWriter(fh), closers: []io.Closer{fh}}, nil
}

// Writer returns the sink's buffered writer.
func (s *Sink) Writer() *bufio.Writer { return s.w }

// Close flushes the buffer and closes any underlying file/compressor.
func (s *Sink) Close() error {
	if err := s.w.Flush(); err != nil {
		return err
	}
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			return err
		}
	}
	return nil
}
