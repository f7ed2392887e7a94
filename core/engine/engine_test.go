package engine

import (
	"context"
	"strings"
	"testing"

	"stspcr-core/oligo"
	"stspcr-core/sts"
)

func defaultConfig() Config {
	return Config{WordSize: 6, Margin: 3, MaxMismatches: 0, ProtectLen: 0, DefaultSize: 240, Threads: 1}
}

func TestConfigValidate(t *testing.T) {
	bad := defaultConfig()
	bad.WordSize = 20
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected error for out-of-range word size")
	}
}

func plantTarget(primer1, primer2 string, at, pcrSize, total int) []byte {
	buf := []byte(strings.Repeat("A", total))
	rc := []byte(oligo.ReverseComplement(primer2))
	copy(buf[at+pcrSize-len(primer2):], rc)
	copy(buf[at:], primer1)
	return buf
}

func TestEngineSearchFindsPlantedHit(t *testing.T) {
	s := &sts.STS{ID: "S1", Primer1: "AAAACCCCGG", Primer2: "TTTTGGGGCC", PCRSize: 60}
	e, err := New([]*sts.STS{s}, defaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	target := plantTarget(s.Primer1, s.Primer2, 10, s.PCRSize, 120)

	hits, err := e.Search(context.Background(), "t", target)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) == 0 {
		t.Fatalf("expected a hit for planted STS")
	}
}

func TestEngineRejectsTooShortPrimer(t *testing.T) {
	good := &sts.STS{ID: "ok", Primer1: "AAAACCCCGG", Primer2: "TTTTGGGGCC", PCRSize: 60}
	bad := &sts.STS{ID: "short", Primer1: "AC", Primer2: "TTTTGGGGCC", PCRSize: 60}
	e, err := New([]*sts.STS{good, bad}, defaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if e.Report.TooShort != 1 {
		t.Fatalf("expected TooShort=1, got %+v", e.Report)
	}
}

func TestEngineDeterministicAcrossRuns(t *testing.T) {
	s := &sts.STS{ID: "S2", Primer1: "ACGTACGTAC", Primer2: "TGCATGCATG", PCRSize: 50}
	cfg := defaultConfig()
	target := plantTarget(s.Primer1, s.Primer2, 5, s.PCRSize, 100)

	e1, _ := New([]*sts.STS{s}, cfg)
	h1, err := e1.Search(context.Background(), "t", target)
	if err != nil {
		t.Fatalf("Search 1: %v", err)
	}
	e2, _ := New([]*sts.STS{s}, cfg)
	h2, err := e2.Search(context.Background(), "t", target)
	if err != nil {
		t.Fatalf("Search 2: %v", err)
	}
	if len(h1) != len(h2) {
		t.Fatalf("non-deterministic hit count: %d vs %d", len(h1), len(h2))
	}
	for i := range h1 {
		if h1[i] != h2[i] {
			t.Fatalf("non-deterministic hit %d: %+v vs %+v", i, h1[i], h2[i])
		}
	}
}
