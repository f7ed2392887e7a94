// Package fastaio loads FASTA target sequences (spec.md §6 "FASTA
// input file"), transparently decompressing gzip payloads.
//
// Grounded on core/fasta/open.go's gzip-magic-number detection (kept
// verbatim in spirit) and original_source/src/merpcr/io/fasta.py's
// load_file, which this package's character filter reproduces: strip
// whitespace and digits, keep only the IUPAC DNA letters plus X
// (see allowedBases).
package fastaio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Record is one parsed FASTA target sequence.
type Record struct {
	Label   string // first whitespace-delimited token of the header
	Header  string // raw header line, without the leading '>'
	Payload []byte
}

const allowedBases = "ACGTBDHKMNRSVWXY"

var isAllowed [256]bool

func init() {
	for _, c := range allowedBases {
		isAllowed[c] = true
		isAllowed[c+32] = true
	}
}

// Open returns a decompressing reader for path: gzip-transparent by
// magic number or ".gz" suffix, "-" for stdin, otherwise a plain file.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	var sig [2]byte
	n, _ := fh.Read(sig[:])
	if _, err := fh.Seek(0, io.SeekStart); err != nil {
		_ = fh.Close()
		return nil, err
	}
	if (n == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		return &multiCloser{Reader: gr, closers: []io.Closer{gr, fh}}, nil
	}
	return fh, nil
}

type multiCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Load reads every FASTA record from path. A file yielding zero
// records is a successful, empty result (spec.md §7).
func Load(path string) ([]Record, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = rc.Close() }()

	var (
		records []Record
		header  string
		payload []byte
	)
	flush := func() {
		if header == "" {
			return
		}
		records = append(records, Record{Label: label(header), Header: header, Payload: payload})
	}

	sc := bufio.NewScanner(rc)
	sc.Buffer(make([]byte, 0, 1<<20), 1<<30)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		if line[0] == '>' {
			flush()
			header = strings.TrimSpace(line[1:])
			payload = nil
			continue
		}
		payload = append(payload, filterBases(line)...)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	flush()
	return records, nil
}

func filterBases(line string) []byte {
	out := make([]byte, 0, len(line))
	for i := 0; i < len(line); i++ {
		c := line[i]
		if isAllowed[c] {
			out = append(out, c)
		}
	}
	return out
}

func label(header string) string {
	if i := strings.IndexAny(header, " \t"); i >= 0 {
		return header[:i]
	}
	return header
}
