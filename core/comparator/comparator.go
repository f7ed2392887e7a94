// Package comparator verifies a candidate primer against a target
// window with a bounded mismatch budget and a 3'-protected tail,
// grounded on original_source/src/merpcr/core/engine.py's
// _compare_seqs and on core/primer/match.go's mismatch-counting style.
package comparator

import (
	"stspcr-core/oligo"
	"stspcr-core/sts"
)

// Policy holds the tunable comparator parameters (§6 configuration
// surface): mismatch budget, 3'-protection length, and IUPAC mode.
type Policy struct {
	MaxMismatches int
	ProtectLen    int
	IUPAC         bool
}

// Compare reports whether primer p matches target window t (equal
// length) under policy, given p's biological direction dir. D = FWD
// protects the last ProtectLen bases of p; D = REV protects the first
// ProtectLen bases.
func Compare(p, t string, dir sts.Direction, pol Policy) bool {
	if len(p) != len(t) {
		return false
	}
	n := len(p)
	protectFrom, protectTo := protectedRange(n, pol.ProtectLen, dir)

	mismatches := 0
	for i := 0; i < n; i++ {
		ok := matchAt(p[i], t[i], pol.IUPAC)
		if !ok {
			if i >= protectFrom && i < protectTo {
				return false
			}
			mismatches++
			if mismatches > pol.MaxMismatches {
				return false
			}
		}
	}
	return true
}

// protectedRange returns the half-open [from, to) index range of the
// protected zone within a primer of length n.
func protectedRange(n, protectLen int, dir sts.Direction) (from, to int) {
	if protectLen <= 0 {
		return 0, 0
	}
	if protectLen > n {
		protectLen = n
	}
	if dir == sts.FWD {
		return n - protectLen, n
	}
	return 0, protectLen
}

func matchAt(p, t byte, iupac bool) bool {
	if iupac {
		return oligo.IUPACMatch(p, t)
	}
	pu, tu := upper(p), upper(t)
	if oligo.IsAmbiguous(pu) || oligo.IsAmbiguous(tu) {
		return false
	}
	return pu == tu
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 32
	}
	return b
}
