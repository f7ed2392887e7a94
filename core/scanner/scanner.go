// Package scanner walks a target sequence with a rolling k-mer hash,
// probes the hash index at every hashable position, and verifies
// candidate hits with the comparator (spec.md §4.5).
//
// Grounded on original_source/src/merpcr/core/engine.py's
// _process_thread (the rolling hash / valid_run state machine) and
// _match_sts (primary-then-partner verification within a margin
// window), reworked into the array-based, allocation-light style of
// core/engine/engine.go's candidate verification loop.
package scanner

import (
	"stspcr-core/comparator"
	"stspcr-core/hit"
	"stspcr-core/index"
	"stspcr-core/oligo"
	"stspcr-core/sts"
)

// Config bundles the tunables the scanner and comparator share
// (spec.md §6 configuration surface).
type Config struct {
	W             int
	Margin        int
	MaxMismatches int
	ProtectLen    int
	IUPAC         bool
	DefaultSize   int
}

func (c Config) policy() comparator.Policy {
	return comparator.Policy{MaxMismatches: c.MaxMismatches, ProtectLen: c.ProtectLen, IUPAC: c.IUPAC}
}

// Scan walks target (0-based, global offset `base` bases into the
// owning target sequence) and returns every verified hit, with
// coordinates expressed in target-sequence-global 1-based terms.
func Scan(label string, target []byte, base int, idx *index.Index, cfg Config) []hit.Hit {
	if len(target) < cfg.W {
		return scanFallback(label, target, base, idx.Fallback, cfg)
	}

	var hits []hit.Hit

	validRun := 0
	var h uint64
	mask := (uint64(1) << uint(2*cfg.W)) - 1

	for p := 0; p < len(target); p++ {
		c := oligo.Code2(target[p])
		if c == oligo.Invalid {
			validRun = 0
			h = 0
		} else {
			h = ((h << 2) | uint64(c)) & mask
			validRun++
		}
		if validRun >= cfg.W {
			for _, rec := range idx.Lookup(h) {
				start1 := p - cfg.W + 1 - rec.HashOffset
				hits = append(hits, tryAnchorAt(label, target, base, start1, rec, cfg)...)
			}
		}
		for _, rec := range idx.Fallback {
			start1 := p - len(rec.Anchor) + 1
			hits = append(hits, tryAnchorAt(label, target, base, start1, rec, cfg)...)
		}
	}
	return hits
}

func scanFallback(label string, target []byte, base int, fallback []*sts.Record, cfg Config) []hit.Hit {
	var hits []hit.Hit
	for p := 0; p < len(target); p++ {
		for _, rec := range fallback {
			hits = append(hits, tryAnchorAt(label, target, base, p-len(rec.Anchor)+1, rec, cfg)...)
		}
	}
	return hits
}

// tryAnchorAt verifies rec's anchor primer at 0-based offset start1
// within target, then searches every partner position within the
// margin window, emitting one hit per satisfying position (§4.5:
// "each produces a distinct hit").
func tryAnchorAt(label string, target []byte, base, start1 int, rec *sts.Record, cfg Config) []hit.Hit {
	pol := cfg.policy()
	ancLen := len(rec.Anchor)
	if start1 < 0 || start1+ancLen > len(target) {
		return nil
	}
	if !comparator.Compare(rec.Anchor, string(target[start1:start1+ancLen]), rec.Dir, pol) {
		return nil
	}

	partnerLen := len(rec.Partner)
	pcrSize := rec.STS.PCRSize
	margin := cfg.Margin
	lo := start1 + pcrSize - margin - partnerLen
	hi := start1 + pcrSize + margin - partnerLen
	if lo < 0 {
		lo = 0
	}
	if hi > len(target)-partnerLen {
		hi = len(target) - partnerLen
	}
	partnerDir := opposite(rec.Dir)
	var out []hit.Hit
	for ps := lo; ps <= hi; ps++ {
		if ps < 0 || ps+partnerLen > len(target) {
			continue
		}
		if !comparator.Compare(rec.Partner, string(target[ps:ps+partnerLen]), partnerDir, pol) {
			continue
		}
		lo0, hi0 := start1, start1+ancLen
		if ps < lo0 {
			lo0 = ps
		}
		if ps+partnerLen > hi0 {
			hi0 = ps + partnerLen
		}
		out = append(out, hit.Hit{
			TargetLabel: label,
			Start:       base + lo0 + 1,
			End:         base + hi0,
			STS:         rec.STS,
			Strand:      rec.Dir,
			AnchorStart: base + start1,
		})
	}
	return out
}

func opposite(d sts.Direction) sts.Direction {
	if d == sts.FWD {
		return sts.REV
	}
	return sts.FWD
}
