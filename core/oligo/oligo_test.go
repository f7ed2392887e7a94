package oligo

import "testing"

func TestCode2(t *testing.T) {
	cases := map[byte]byte{'A': 0, 'c': 1, 'G': 2, 't': 3, 'N': Invalid, 'x': Invalid}
	for b, want := range cases {
		if got := Code2(b); got != want {
			t.Errorf("Code2(%q) = %d, want %d", b, got, want)
		}
	}
}

func TestComplementInvolution(t *testing.T) {
	if Complement(Complement('A')) != 'A' {
		t.Fatalf("complement not involutive for A")
	}
	if Complement(Complement('r')) != 'r' {
		t.Fatalf("complement not involutive for lowercase r")
	}
}

func TestReverseComplement(t *testing.T) {
	cases := map[string]string{
		"ATGC":     "GCAT",
		"AAAA":     "TTTT",
		"CGCG":     "CGCG",
		"ATCGATCG": "CGATCGAT",
	}
	for in, want := range cases {
		if got := ReverseComplement(in); got != want {
			t.Errorf("ReverseComplement(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIUPACMatch(t *testing.T) {
	if !IUPACMatch('N', 'A') {
		t.Error("N should match A")
	}
	if !IUPACMatch('R', 'A') || !IUPACMatch('R', 'G') {
		t.Error("R should match A and G")
	}
	if IUPACMatch('R', 'C') {
		t.Error("R should not match C")
	}
}

func TestIsAmbiguous(t *testing.T) {
	if IsAmbiguous('A') {
		t.Error("A is concrete")
	}
	if !IsAmbiguous('N') {
		t.Error("N is ambiguous")
	}
}

func TestValidate(t *testing.T) {
	s, err := Validate(" a c g t ")
	if err != nil || s != "ACGT" {
		t.Fatalf("Validate = %q, %v", s, err)
	}
	if _, err := Validate("ACGX"); err == nil {
		t.Fatalf("expected error for invalid base")
	}
	if _, err := Validate(""); err == nil {
		t.Fatalf("expected error for empty oligo")
	}
}
