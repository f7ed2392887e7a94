package stsfile

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "t.sts")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadFields(t *testing.T) {
	p := writeTemp(t, "# comment\nS1\tAAAACCCC\tGGGGTTTT\t20\nS2\tACGTACGT\tTGCATGCA\t100-201\tnote here\n\n")
	lib, rep, err := Load(p, 240)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rep.Loaded != 2 || rep.Malformed != 0 {
		t.Fatalf("unexpected report: %+v", rep)
	}
	if lib[0].PCRSize != 20 {
		t.Errorf("S1 PCRSize = %d", lib[0].PCRSize)
	}
	if lib[1].PCRSize != 150 {
		t.Errorf("S2 PCRSize (floor midpoint) = %d, want 150", lib[1].PCRSize)
	}
	if lib[1].Annotation != "note here" {
		t.Errorf("S2 annotation = %q", lib[1].Annotation)
	}
}

func TestLoadSkipsMalformed(t *testing.T) {
	p := writeTemp(t, "S1\tAAAA\n")
	lib, rep, err := Load(p, 240)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(lib) != 0 || rep.Malformed != 1 {
		t.Fatalf("expected malformed skip, got lib=%d rep=%+v", len(lib), rep)
	}
}

func TestLoadRejectsInvalidPrimerCharacter(t *testing.T) {
	p := writeTemp(t, "S1\tAAAAC1CC\tGGGGTTTT\t20\n")
	lib, rep, err := Load(p, 240)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(lib) != 0 || rep.InvalidPrimer != 1 {
		t.Fatalf("expected primer with digit to be rejected, got lib=%d rep=%+v", len(lib), rep)
	}
}
