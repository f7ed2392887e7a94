// Package index implements the hash index over indexed primer records
// (§4.3): a dense array of bucket offsets into a flat record arena for
// small word sizes, and a sparse hash-map-backed variant for larger
// ones, chosen so the 4^W key space never forces an oversized slice.
//
// The dense path is grounded on the two-pass counting-sort bucket
// layout common to CSR-style adjacency structures; the sparse path is
// grounded on github.com/pi/goal/hash's UintHashMap, a uint->uint
// directory-of-buckets map designed for exactly this dense-numeric-key
// workload. Both paths preserve original STS-library insertion order
// within a bucket, since the map only ever needs to store a linked
// list's head.
package index

import (
	"github.com/pi/goal/hash"

	"stspcr-core/sts"
)

// denseThreshold is the largest word size for which a plain slice of
// bucket offsets (4^W entries) is used instead of a sparse map, per
// spec.md §4.3 ("W <= 13").
const denseThreshold = 13

// Index maps a k-mer word value to the indexed primer records sharing
// that hash, plus the fallback list of wholly-ambiguous primers.
type Index struct {
	w        int
	arena    []*sts.Record // flat record arena, insertion order
	next     []int32       // arena[i]'s predecessor in its bucket's chain, or -1
	dense    []int32       // key -> head index into arena/next, or -1; nil if sparse
	sparse   *hash.UintHashMap // key+1 -> 1+head index into arena/next; nil if dense
	Fallback []*sts.Record
}

// Build constructs an Index over records for word size w.
func Build(records []*sts.Record, w int) *Index {
	idx := &Index{w: w}
	for _, r := range records {
		if !r.Hashable {
			idx.Fallback = append(idx.Fallback, r)
			continue
		}
		idx.insert(r)
	}
	return idx
}

func (idx *Index) insert(r *sts.Record) {
	arenaPos := int32(len(idx.arena))
	idx.arena = append(idx.arena, r)
	idx.next = append(idx.next, -1)

	key := r.HashValue
	if idx.w <= denseThreshold {
		if idx.dense == nil {
			idx.dense = make([]int32, 1<<uint(2*idx.w))
			for i := range idx.dense {
				idx.dense[i] = -1
			}
		}
		idx.next[arenaPos] = idx.dense[key]
		idx.dense[key] = arenaPos
		return
	}
	if idx.sparse == nil {
		idx.sparse = hash.NewUintHashMap()
	}
	head := idx.sparse.Get(uint(key) + 1) // 0 == absent
	idx.next[arenaPos] = int32(head) - 1
	idx.sparse.Put(uint(key)+1, uint(arenaPos)+1)
}

// Lookup returns the records sharing hash value h, in original
// insertion order (oldest first).
func (idx *Index) Lookup(h uint64) []*sts.Record {
	var head int32 = -1
	if idx.w <= denseThreshold {
		if idx.dense == nil || h >= uint64(len(idx.dense)) {
			return nil
		}
		head = idx.dense[h]
	} else {
		if idx.sparse == nil {
			return nil
		}
		v := idx.sparse.Get(uint(h) + 1)
		if v == 0 {
			return nil
		}
		head = int32(v) - 1
	}
	if head == -1 {
		return nil
	}
	// Walk the chain (most-recently-inserted first) then reverse so
	// callers observe original library order.
	var rev []*sts.Record
	for p := head; p != -1; p = idx.next[p] {
		rev = append(rev, idx.arena[p])
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}

// WordSize returns the word size the index was built for.
func (idx *Index) WordSize() int { return idx.w }
