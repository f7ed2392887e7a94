// Package oligo implements the nucleotide codec and IUPAC ambiguity
// tables shared by every other core package: a 2-bit encoding for the
// concrete bases, a byte-wise complement table covering IUPAC letters,
// and a set-intersection match rule for ambiguity-aware comparison.
package oligo

// Invalid is returned by Code2 for any byte that is not one of A/C/G/T
// (case-insensitive).
const Invalid = 0xff

var code2Table [256]byte

func init() {
	for i := range code2Table {
		code2Table[i] = Invalid
	}
	code2Table['A'], code2Table['a'] = 0, 0
	code2Table['C'], code2Table['c'] = 1, 1
	code2Table['G'], code2Table['g'] = 2, 2
	code2Table['T'], code2Table['t'] = 3, 3
}

// Code2 maps a base to its 2-bit code, or Invalid if b is not A/C/G/T.
func Code2(b byte) byte {
	return code2Table[b]
}

// complementTable holds the IUPAC-aware complement of every uppercase
// byte value. Unambiguous pairs (A<->T, C<->G) plus the ambiguity
// pairs (R<->Y, M<->K, B<->V, D<->H) and the self-complementary codes
// (S, W, N). Any byte outside the recognized alphabet complements to 'N'.
var complementTable [256]byte

func init() {
	for i := range complementTable {
		complementTable[i] = 'N'
	}
	pairs := map[byte]byte{
		'A': 'T', 'T': 'A', 'C': 'G', 'G': 'C',
		'R': 'Y', 'Y': 'R', 'M': 'K', 'K': 'M',
		'B': 'V', 'V': 'B', 'D': 'H', 'H': 'D',
		'S': 'S', 'W': 'W', 'N': 'N',
	}
	for upper, comp := range pairs {
		complementTable[upper] = comp
		complementTable[upper+32] = comp // lowercase
	}
}

// Complement returns the IUPAC complement of b, preserving case.
func Complement(b byte) byte {
	c := complementTable[b]
	if b >= 'a' && b <= 'z' {
		return c + 32
	}
	return c
}

// ReverseComplement returns the reverse complement of seq.
func ReverseComplement(seq string) string {
	n := len(seq)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[n-1-i] = Complement(seq[i])
	}
	return string(out)
}

// iupacSets maps every recognized IUPAC letter (upper or lower) to the
// bitmask of concrete bases it denotes: bit 0=A, 1=C, 2=G, 3=T.
var iupacSets [256]byte

func init() {
	const (
		bA = 1 << 0
		bC = 1 << 1
		bG = 1 << 2
		bT = 1 << 3
	)
	sets := map[byte]byte{
		'A': bA, 'C': bC, 'G': bG, 'T': bT,
		'R': bA | bG, 'Y': bC | bT, 'M': bA | bC, 'K': bG | bT,
		'S': bC | bG, 'W': bA | bT,
		'B': bC | bG | bT, 'D': bA | bG | bT, 'H': bA | bC | bT, 'V': bA | bC | bG,
		'N': bA | bC | bG | bT,
	}
	for b, mask := range sets {
		iupacSets[b] = mask
		iupacSets[b+32] = mask
	}
}

// IsAmbiguous reports whether b is anything other than a single
// concrete base: an IUPAC ambiguity letter or an unrecognized byte.
func IsAmbiguous(b byte) bool {
	mask := iupacSets[b]
	return mask == 0 || mask&(mask-1) != 0
}

// Known reports whether b is a recognized IUPAC letter (upper or lower).
func Known(b byte) bool {
	return iupacSets[b] != 0
}

// IUPACMatch reports whether the concrete-base sets denoted by a and b
// intersect. Unrecognized bytes denote the empty set and never match.
func IUPACMatch(a, b byte) bool {
	return iupacSets[a]&iupacSets[b] != 0
}
