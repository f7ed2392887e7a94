// Package hit defines the Hit type emitted by the scanner and the
// dedup key used by the partitioner's collector, per spec.md §3
// ("Hit") and §4.5's tie-breaking rule.
package hit

import "stspcr-core/sts"

// Hit is one verified STS match against a target sequence.
type Hit struct {
	TargetLabel string
	Start       int // 1-based, inclusive
	End         int // 1-based, inclusive
	STS         *sts.STS
	Strand      sts.Direction

	// AnchorStart is the anchor primer's own 0-based, target-global
	// start position (spec.md §4.5 step 1's "start1"), independent of
	// Start/End which widen to cover the partner match too. The
	// partitioner's worker-boundary accept rule (§4.6) is keyed on
	// this field, not on Start.
	AnchorStart int
}

// Key is the five-tuple that determines hit identity: two hits are
// the same iff all five fields agree (spec.md §3).
type Key struct {
	Target string
	Start  int
	End    int
	STSID  string
	Strand sts.Direction
}

// Key returns h's identity key.
func (h Hit) Key() Key {
	return Key{Target: h.TargetLabel, Start: h.Start, End: h.End, STSID: h.STS.ID, Strand: h.Strand}
}
