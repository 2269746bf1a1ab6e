/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package ltfmindex

import (
	"sort"

	"github.com/baku4/lt-fm-index-sub001/alphabet"
	"github.com/baku4/lt-fm-index-sub001/bwm"
	"github.com/baku4/lt-fm-index-sub001/count"
	"github.com/baku4/lt-fm-index-sub001/suffixarray"
)

// Index is a built, immutable locate-table augmented FM-index: every
// query method is read-only and safe to call from multiple goroutines
// without external synchronization, since nothing here is ever
// mutated after Build returns.
type Index[P Position, W bwm.Word] struct {
	table        *alphabet.Table
	matrix       *bwm.Matrix[W, P]
	sa           *suffixarray.Array[P]
	counts       *count.Table[P]
	seed         *count.SeedTable[P]
	textLen      P
	primaryIndex P
}

// Len returns the length of the original, unindexed text.
func (this *Index[P, W]) Len() P { return this.textLen }

// Table exposes the character-encoding table, e.g. for serialization.
func (this *Index[P, W]) Table() *alphabet.Table { return this.table }

// Matrix exposes the rank dictionary, e.g. for serialization.
func (this *Index[P, W]) Matrix() *bwm.Matrix[W, P] { return this.matrix }

// SuffixArray exposes the sampled suffix array, e.g. for serialization.
func (this *Index[P, W]) SuffixArray() *suffixarray.Array[P] { return this.sa }

// Counts exposes the count array, e.g. for serialization.
func (this *Index[P, W]) Counts() *count.Table[P] { return this.counts }

// Seed exposes the k-mer seed table, nil if none was built, e.g. for
// serialization.
func (this *Index[P, W]) Seed() *count.SeedTable[P] { return this.seed }

// PrimaryIndex exposes the row the sentinel used to occupy, e.g. for
// serialization.
func (this *Index[P, W]) PrimaryIndex() P { return this.primaryIndex }

// FromComponents reassembles an Index from its previously-serialized
// parts, without repeating the work Build does (suffix-array
// construction, BWT derivation, rank-dictionary vectorization). The
// serialize package is this function's only intended caller.
func FromComponents[P Position, W bwm.Word](
	table *alphabet.Table,
	matrix *bwm.Matrix[W, P],
	sa *suffixarray.Array[P],
	counts *count.Table[P],
	seed *count.SeedTable[P],
	textLen, primaryIndex P,
) *Index[P, W] {
	return &Index[P, W]{
		table:        table,
		matrix:       matrix,
		sa:           sa,
		counts:       counts,
		seed:         seed,
		textLen:      textLen,
		primaryIndex: primaryIndex,
	}
}

// Count returns the number of times pattern occurs in the indexed
// text. An empty pattern matches at every position.
func (this *Index[P, W]) Count(pattern []byte) P {
	if len(pattern) == 0 {
		return this.textLen
	}

	l, r := this.backwardSearch(pattern)
	if r <= l {
		return 0
	}
	return r - l
}

// Locate returns every starting offset where pattern occurs in the
// indexed text, in ascending order. Ascending order is a deliberate
// choice over backward search's natural row order, which is sorted by
// suffix content, not by text position: callers scanning hits
// left-to-right (the common case for downstream alignment or masking)
// would otherwise have to sort the results themselves anyway.
func (this *Index[P, W]) Locate(pattern []byte) []P {
	if len(pattern) == 0 {
		out := make([]P, this.textLen)
		for i := range out {
			out[i] = P(i)
		}
		return out
	}

	l, r := this.backwardSearch(pattern)
	if r <= l {
		return nil
	}

	locations := make([]P, 0, r-l)
	for row := l; row < r; row++ {
		locations = append(locations, this.locationOfRow(row))
	}

	sort.Sort(byAscendingPosition[P](locations))
	return locations
}

// byAscendingPosition sorts a slice of positions into ascending order.
type byAscendingPosition[P Position] []P

func (this byAscendingPosition[P]) Len() int { return len(this) }

func (this byAscendingPosition[P]) Less(i, j int) bool { return this[i] < this[j] }

func (this byAscendingPosition[P]) Swap(i, j int) { this[i], this[j] = this[j], this[i] }

// step narrows the backward-search interval [l, r) by one more pattern
// character c, translating the sentinel-included row numbers l and r
// into this Index's sentinel-removed rank dictionary before querying
// it: a row past the primary index sits one slot higher in the
// conceptual, sentinel-included matrix than in the physical one.
func (this *Index[P, W]) step(l, r P, c uint8) (P, P) {
	base := this.counts.Base(c)

	adjL := l
	if l > this.primaryIndex {
		adjL--
	}
	adjR := r
	if r > this.primaryIndex {
		adjR--
	}

	return base + this.matrix.Rank(adjL, c), base + this.matrix.Rank(adjR, c)
}

// backwardSearch encodes pattern and narrows [0, N+1) one character at
// a time, right-to-left. When a seed table is present and the pattern
// is at least as long as its k, the pattern's last k characters (the
// first k the search consumes) are resolved by a single lookup instead
// of k individual steps.
func (this *Index[P, W]) backwardSearch(pattern []byte) (P, P) {
	encoded := make([]uint8, len(pattern))
	copy(encoded, pattern)
	this.table.Encode(encoded)

	wildcard := this.table.Wildcard()
	for _, c := range encoded {
		if c == wildcard {
			return 0, 0
		}
	}

	var l, r P = 0, this.textLen + 1
	start := len(encoded)

	if this.seed != nil && len(encoded) >= this.seed.K() {
		k := this.seed.K()
		tail := encoded[len(encoded)-k:]
		sl, sr, ok := this.seed.Lookup(tail)
		if !ok {
			return 0, 0
		}
		l, r = sl, sr
		start = len(encoded) - k
	}

	for i := start - 1; i >= 0; i-- {
		if l >= r {
			break
		}
		l, r = this.step(l, r, encoded[i])
	}

	return l, r
}

// lfStep maps row i, expressed in the sentinel-included numbering, to
// the row whose suffix is one character shorter (the standard LF
// mapping). The primary index row holds the sentinel in the BWT, so its
// LF image is row 0, the sentinel's own suffix row; that row is
// returned directly without querying the rank dictionary.
func (this *Index[P, W]) lfStep(i P) P {
	if i == this.primaryIndex {
		return 0
	}

	j := i
	if i > this.primaryIndex {
		j--
	}

	c := this.matrix.CharAt(j)
	return this.counts.Base(c) + this.matrix.Rank(j, c)
}

// locationOfRow resolves row i to a text offset by walking LF-mapping
// steps until a sampled suffix-array entry is reached, then adding
// back the number of steps taken.
func (this *Index[P, W]) locationOfRow(i P) P {
	var offset P
	cur := i

	for {
		if cur == this.primaryIndex {
			return offset % this.textLen
		}

		j := cur
		if cur > this.primaryIndex {
			j--
		}

		if v, ok := this.sa.LocationOf(j); ok {
			return (v + offset) % this.textLen
		}

		cur = this.lfStep(cur)
		offset++
	}
}

// Clone returns a deep copy. Because an Index is never mutated after
// Build, most callers can share one safely instead of cloning; Clone
// exists for callers that need an independently lifetime-managed copy,
// e.g. to hand to code that also holds a *serialize handle on it.
func (this *Index[P, W]) Clone() *Index[P, W] {
	clone := &Index[P, W]{
		table:        alphabet.FromRaw(this.table.Raw(), this.table.Size),
		matrix:       this.matrix.Clone(),
		sa:           this.sa.Clone(),
		counts:       this.counts.Clone(),
		textLen:      this.textLen,
		primaryIndex: this.primaryIndex,
	}
	if this.seed != nil {
		clone.seed = this.seed.Clone()
	}
	return clone
}

// Equal reports whether this and other were built from the same text
// under the same configuration: every field is compared structurally,
// not by pointer identity.
func (this *Index[P, W]) Equal(other *Index[P, W]) bool {
	if this.textLen != other.textLen || this.primaryIndex != other.primaryIndex {
		return false
	}
	if !this.table.Equal(other.table) {
		return false
	}
	if !this.matrix.Equal(other.matrix) {
		return false
	}
	if !this.sa.Equal(other.sa) {
		return false
	}
	if !this.counts.Equal(other.counts) {
		return false
	}
	if (this.seed == nil) != (other.seed == nil) {
		return false
	}
	if this.seed != nil && !this.seed.Equal(other.seed) {
		return false
	}
	return true
}
