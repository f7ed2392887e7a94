package partition

import (
	"context"
	"strings"
	"testing"

	"stspcr-core/hit"
	"stspcr-core/index"
	"stspcr-core/oligo"
	"stspcr-core/scanner"
	"stspcr-core/sts"
)

func buildIndexAndOverlap(t *testing.T, s *sts.STS, w, margin int) (*index.Index, int) {
	t.Helper()
	recs, rep := sts.Prepare([]*sts.STS{s}, w)
	if rep.Loaded != 1 {
		t.Fatalf("unexpected prepare report: %+v", rep)
	}
	return index.Build(recs, w), Overlap(recs, margin)
}

func plant(primer1, primer2 string, at, pcrSize, total int) []byte {
	buf := []byte(strings.Repeat("A", total))
	copy(buf[at+pcrSize-len(primer2):], []byte(oligo.ReverseComplement(primer2)))
	copy(buf[at:], primer1)
	return buf
}

func TestRunSingleThreadedBelowThreshold(t *testing.T) {
	s := &sts.STS{ID: "S1", Primer1: "AAAACCCCGG", Primer2: "TTTTGGGGCC", PCRSize: 60}
	idx, overlap := buildIndexAndOverlap(t, s, 6, 3)
	target := plant(s.Primer1, s.Primer2, 10, s.PCRSize, 1000)

	cfg := scanner.Config{W: 6, Margin: 3}
	hits, err := Run(context.Background(), "t", target, idx, cfg, 4, overlap)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(hits) == 0 {
		t.Fatalf("expected a hit even with threads forced to 1 below threshold")
	}
}

func TestRunMultiThreadedMatchesSingleThreaded(t *testing.T) {
	s := &sts.STS{ID: "S1", Primer1: "AAAACCCCGG", Primer2: "TTTTGGGGCC", PCRSize: 60}
	idx, overlap := buildIndexAndOverlap(t, s, 6, 3)

	total := SmallSequenceThreshold + 50_000
	target := plant(s.Primer1, s.Primer2, total/2, s.PCRSize, total)
	cfg := scanner.Config{W: 6, Margin: 3}

	single, err := Run(context.Background(), "t", target, idx, cfg, 1, overlap)
	if err != nil {
		t.Fatalf("Run(1): %v", err)
	}
	multi, err := Run(context.Background(), "t", target, idx, cfg, 4, overlap)
	if err != nil {
		t.Fatalf("Run(4): %v", err)
	}
	if len(single) != len(multi) {
		t.Fatalf("hit count differs by thread count: single=%d multi=%d", len(single), len(multi))
	}
	seen := map[[2]int]bool{}
	for _, h := range single {
		seen[[2]int{h.Start, h.End}] = true
	}
	for _, h := range multi {
		if !seen[[2]int{h.Start, h.End}] {
			t.Fatalf("multi-threaded hit %+v missing from single-threaded result", h)
		}
	}
}

func TestRunMultiThreadedMatchesSingleThreadedWithLargeMargin(t *testing.T) {
	// A margin larger than pcrSize lets tryAnchorAt's partner window
	// extend before the anchor's own start, so AnchorStart (not the
	// widened hit span) must drive the worker-boundary accept rule for
	// this to stay thread-count-invariant.
	s := &sts.STS{ID: "S1", Primer1: "AAAACCCCGG", Primer2: "TTTTGGGGCC", PCRSize: 20}
	margin := 200
	idx, overlap := buildIndexAndOverlap(t, s, 6, margin)

	total := SmallSequenceThreshold + 50_000
	target := plant(s.Primer1, s.Primer2, total/2, s.PCRSize, total)
	cfg := scanner.Config{W: 6, Margin: margin}

	single, err := Run(context.Background(), "t", target, idx, cfg, 1, overlap)
	if err != nil {
		t.Fatalf("Run(1): %v", err)
	}
	for _, threads := range []int{2, 3, 4} {
		multi, err := Run(context.Background(), "t", target, idx, cfg, threads, overlap)
		if err != nil {
			t.Fatalf("Run(%d): %v", threads, err)
		}
		if len(single) != len(multi) {
			t.Fatalf("threads=%d: hit count differs: single=%d multi=%d", threads, len(single), len(multi))
		}
		seen := map[hit.Key]bool{}
		for _, h := range single {
			seen[h.Key()] = true
		}
		for _, h := range multi {
			if !seen[h.Key()] {
				t.Fatalf("threads=%d: hit %+v missing from single-threaded result", threads, h)
			}
		}
	}
}

func TestMergeDedupedDropsRepeatedTuples(t *testing.T) {
	s := &sts.STS{ID: "S1"}
	h := hit.Hit{TargetLabel: "t", Start: 10, End: 30, STS: s, Strand: sts.FWD}
	buffers := [][]hit.Hit{{h, h}, {h}}

	out := mergeDeduped(buffers)
	if len(out) != 1 {
		t.Fatalf("expected exactly one surviving hit, got %d: %+v", len(out), out)
	}
}

func TestOverlapComputation(t *testing.T) {
	recs := []*sts.Record{
		{STS: &sts.STS{PCRSize: 100}, Anchor: "ACGTACGT", Partner: "ACGTACGTAC"},
	}
	if got := Overlap(recs, 10); got != 100+10+10 {
		t.Fatalf("Overlap = %d, want %d", got, 120)
	}
}
