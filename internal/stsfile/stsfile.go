// Package stsfile loads the STS definition file (spec.md §6): a
// tab-delimited text file, one record per line, `#`-comments and blank
// lines ignored.
//
// Grounded on core/primer/loader.go's LoadTSV field-count parsing,
// generalized to the STS record shape (id, primer1, primer2, size,
// optional annotation) and to merPCR's load_sts_file size-range
// parsing via stspcr-core/sts.ParseSize.
package stsfile

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"stspcr-core/oligo"
	corests "stspcr-core/sts"
)

// LoadReport counts malformed lines skipped during load, distinct from
// stspcr-core/sts.Report which counts preprocessor-stage rejections.
type LoadReport struct {
	Loaded        int
	Malformed     int
	InvalidPrimer int      // primer contains a character outside the IUPAC alphabet
	MalformedAt   []string // "path:line: reason"
}

// Load parses path into a library of STS records plus a LoadReport. A
// file with zero valid records is a caller-level configuration error
// (spec.md §7); Load itself never fails for that reason alone.
func Load(path string, defaultSize int) ([]*corests.STS, LoadReport, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, LoadReport{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = fh.Close() }()

	var (
		lib []*corests.STS
		rep LoadReport
	)
	sc := bufio.NewScanner(fh)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.SplitN(line, "\t", 5)
		if len(f) < 4 {
			f = strings.Fields(line)
		}
		if len(f) < 4 {
			rep.Malformed++
			rep.MalformedAt = append(rep.MalformedAt, fmt.Sprintf("%s:%d: expected at least 4 fields, got %d", path, ln, len(f)))
			continue
		}
		size, err := corests.ParseSize(f[3], defaultSize)
		if err != nil {
			rep.Malformed++
			rep.MalformedAt = append(rep.MalformedAt, fmt.Sprintf("%s:%d: %v", path, ln, err))
			continue
		}
		primer1, err := oligo.Validate(f[1])
		if err != nil {
			rep.InvalidPrimer++
			rep.MalformedAt = append(rep.MalformedAt, fmt.Sprintf("%s:%d: primer1: %v", path, ln, err))
			continue
		}
		primer2, err := oligo.Validate(f[2])
		if err != nil {
			rep.InvalidPrimer++
			rep.MalformedAt = append(rep.MalformedAt, fmt.Sprintf("%s:%d: primer2: %v", path, ln, err))
			continue
		}
		s := &corests.STS{
			ID:      f[0],
			Primer1: primer1,
			Primer2: primer2,
			PCRSize: size,
		}
		if len(f) == 5 {
			s.Annotation = f[4]
		}
		lib = append(lib, s)
		rep.Loaded++
	}
	if err := sc.Err(); err != nil {
		return nil, rep, fmt.Errorf("read %s: %w", path, err)
	}
	return lib, rep, nil
}
