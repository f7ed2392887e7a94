// Package sts defines the STS (Sequence-Tagged Site) data model and the
// primer preprocessor that turns a loaded STS library into the indexed
// primer records the hash index is built from.
//
// Grounded on core/primer/loader.go's Pair type (id/forward/reverse/
// min/max fields) and on original_source/src/merpcr/core/engine.py's
// load_sts_file / _hash_value, which this package's Prepare reproduces
// in Go: leftmost-unambiguous-window hash-site selection, the
// pcr-size-vs-primer-length reconciliation rule, and the floor-divided
// range midpoint.
package sts

import (
	"fmt"

	"stspcr-core/oligo"
)

// Direction tags an indexed primer record's orientation.
type Direction byte

const (
	FWD Direction = iota
	REV
)

func (d Direction) String() string {
	if d == FWD {
		return "+"
	}
	return "-"
}

// STS is one Sequence-Tagged Site definition: a pair of primers
// separated by an approximately-known amplicon size.
type STS struct {
	ID         string
	Primer1    string // 5' -> 3'
	Primer2    string // 5' -> 3'
	PCRSize    int
	Annotation string
}

// Record is an indexed primer record derived from one STS (§4.2).
// Two are produced per successfully preprocessed STS: one FWD, one REV.
type Record struct {
	STS        *STS
	Dir        Direction
	HashOffset int    // offset within the anchor primer where the k-mer sits
	HashValue  uint64 // precomputed hash of the k-mer, valid only if Hashable
	Hashable   bool   // false => primer is wholly ambiguous, use fallback list
	Anchor     string // the sequence actually searched for (primer1, or revcomp(primer2))
	Partner    string // the sequence searched for within the margin window
}

// Reject explains why an STS did not yield any indexed record.
type Reject struct {
	STSID  string
	Reason string
}

// Report summarizes the outcome of preprocessing an STS library,
// mirroring merPCR's end-of-load summary counters.
type Report struct {
	Loaded       int
	TooShort     int // primer length < W
	WhollyAmbig  int // neither anchor has an unambiguous W-window; the STS is rejected
	SizeAdjusted int // pcr_size silently raised to fit both primers
	Rejects      []Reject
}

// Prepare builds indexed primer records for every STS in lib, given
// word size w. It never fails outright: per-record problems are
// recorded in the returned Report and the offending STS is skipped.
func Prepare(lib []*STS, w int) ([]*Record, Report) {
	var (
		out Report
		recs []*Record
	)
	for _, s := range lib {
		if len(s.Primer1) < w || len(s.Primer2) < w {
			out.TooShort++
			out.Rejects = append(out.Rejects, Reject{s.ID, "primer shorter than word size"})
			continue
		}
		// merPCR's pcr_size-vs-primer-length reconciliation: the
		// declared amplicon size can't even fit both primers, so raise
		// it to their combined length rather than reject the STS.
		minSize := len(s.Primer1) + len(s.Primer2)
		if s.PCRSize < minSize {
			s.PCRSize = minSize
			out.SizeAdjusted++
		}

		rc2 := oligo.ReverseComplement(s.Primer2)
		fwd, fwdOK := anchorRecord(s, FWD, s.Primer1, rc2, w)
		rev, revOK := anchorRecord(s, REV, rc2, s.Primer1, w)

		if !fwdOK && !revOK {
			out.WhollyAmbig++
			out.Rejects = append(out.Rejects, Reject{s.ID, "primer wholly ambiguous: no concrete hash window"})
			continue
		}
		if fwdOK {
			recs = append(recs, fwd)
		} else {
			recs = append(recs, &Record{STS: s, Dir: FWD, Anchor: s.Primer1, Partner: rc2, Hashable: false})
		}
		if revOK {
			recs = append(recs, rev)
		} else {
			recs = append(recs, &Record{STS: s, Dir: REV, Anchor: rc2, Partner: s.Primer1, Hashable: false})
		}
		out.Loaded++
	}
	return recs, out
}

// anchorRecord finds the leftmost unambiguous W-window in anchor and
// builds a hashable Record for it. ok is false if no such window exists.
func anchorRecord(s *STS, dir Direction, anchor, partner string, w int) (*Record, bool) {
	j, hv, ok := leftmostHash(anchor, w)
	if !ok {
		return nil, false
	}
	return &Record{
		STS:        s,
		Dir:        dir,
		HashOffset: j,
		HashValue:  hv,
		Hashable:   true,
		Anchor:     anchor,
		Partner:    partner,
	}, true
}

// leftmostHash scans seq left to right for the first window of length
// w containing no ambiguous base, returning its offset and 2-bit-packed
// hash value.
func leftmostHash(seq string, w int) (offset int, hash uint64, ok bool) {
	if len(seq) < w {
		return 0, 0, false
	}
	validRun := 0
	var h uint64
	mask := (uint64(1) << uint(2*w)) - 1
	for i := 0; i < len(seq); i++ {
		c := oligo.Code2(seq[i])
		if c == oligo.Invalid {
			validRun = 0
			h = 0
			continue
		}
		h = ((h << 2) | uint64(c)) & mask
		validRun++
		if validRun >= w {
			return i - w + 1, h, true
		}
	}
	return 0, 0, false
}

// ParseSize parses a declared amplicon size, either a bare integer or
// an "a-b" range (midpoint used, floor-rounded, matching merPCR's
// Python `//` integer division).
func ParseSize(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	var lo, hi int
	if n, _ := fmt.Sscanf(raw, "%d-%d", &lo, &hi); n == 2 {
		return (lo + hi) / 2, nil
	}
	if _, err := fmt.Sscanf(raw, "%d", &lo); err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", raw, err)
	}
	return lo, nil
}
