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
// Package count implements the count array and k-mer seed table
// (component F): the per-character cumulative occurrence counts every
// backward-search step needs as its base offset, plus an optional
// precomputed lookup table that lets a long enough pattern skip the
// first k narrowing steps entirely.
package count

import ltfmindex "github.com/baku4/lt-fm-index-sub001"

// Table holds, for every character index c, the number of characters
// strictly smaller than c across the indexed text (excluding the
// sentinel, which this package's callers account for separately: the
// sentinel always sorts first, so a backward-search base offset is
// 1+cumulative[c], never cumulative[c] alone).
type Table[P ltfmindex.Position] struct {
	classCount int
	cumulative []P
}

// Build tallies bwt (the sentinel already removed) into a cumulative
// count array over classCount character indices.
func Build[P ltfmindex.Position](bwt []uint8, classCount int) *Table[P] {
	occ := make([]P, classCount)
	for _, c := range bwt {
		occ[c]++
	}

	cumulative := make([]P, classCount)
	for c := 1; c < classCount; c++ {
		cumulative[c] = cumulative[c-1] + occ[c-1]
	}

	return &Table[P]{classCount: classCount, cumulative: cumulative}
}

// Base returns the backward-search offset for character c: one slot for
// the sentinel plus the count of every character smaller than c.
func (this *Table[P]) Base(c uint8) P {
	var one P = 1
	return one + this.cumulative[c]
}

// ClassCount returns the alphabet size (including the wildcard) this
// table was built over.
func (this *Table[P]) ClassCount() int { return this.classCount }

// Cumulative exposes the underlying cumulative counts, e.g. for
// serialization.
func (this *Table[P]) Cumulative() []P { return this.cumulative }

// FromRaw rebuilds a Table from a previously-serialized cumulative
// count array.
func FromRaw[P ltfmindex.Position](classCount int, cumulative []P) *Table[P] {
	return &Table[P]{classCount: classCount, cumulative: cumulative}
}

// Clone returns a deep copy.
func (this *Table[P]) Clone() *Table[P] {
	return &Table[P]{classCount: this.classCount, cumulative: append([]P(nil), this.cumulative...)}
}

// Equal reports whether this and other hold the same cumulative counts.
func (this *Table[P]) Equal(other *Table[P]) bool {
	if this.classCount != other.classCount || len(this.cumulative) != len(other.cumulative) {
		return false
	}
	for i, v := range this.cumulative {
		if v != other.cumulative[i] {
			return false
		}
	}
	return true
}

// StepFunc narrows a backward-search interval [l, r) by one more
// pattern character c, applied right-to-left exactly as the index's own
// backward search does. SeedTable uses it to precompute k-mer
// intervals; it is normally a thin closure over the facade's sentinel-
// aware rank step.
type StepFunc[P ltfmindex.Position] func(l, r P, c uint8) (P, P)

// SeedTable precomputes the backward-search interval reached after
// consuming every possible k-length substring, keyed by the substring
// read in its natural left-to-right order. A pattern at least k long
// can look up its trailing k characters and resume backward search from
// the cached interval instead of repeating those k steps. Intervals for
// k-mers that never occur in the text are absent: Lookup reports that
// directly rather than returning an empty-but-present range, so the
// search can short-circuit to "zero results" without even consulting
// the rank dictionary.
type SeedTable[P ltfmindex.Position] struct {
	k          int
	classCount int
	intervals  map[string][2]P
}

// BuildSeedTable extends k-mers one character at a time, starting from
// the full [0, fullLen) interval. At each length it prunes: an interval
// that has already collapsed to empty is dropped rather than extended,
// since no string ending in a non-occurring substring can occur either. This
// keeps the table's size bounded by the number of distinct k-mers that
// actually occur in the text, not classCount^k.
func BuildSeedTable[P ltfmindex.Position](k, classCount int, step StepFunc[P], fullLen P) *SeedTable[P] {
	type entry struct {
		consumed []uint8
		l, r     P
	}

	wildcard := classCount - 1

	cur := []entry{{nil, 0, fullLen}}
	for length := 0; length < k; length++ {
		next := make([]entry, 0, len(cur)*classCount)
		for _, e := range cur {
			for c := 0; c < classCount; c++ {
				if c == wildcard {
					continue
				}
				l, r := step(e.l, e.r, uint8(c))
				if l >= r {
					continue
				}
				consumed := make([]uint8, len(e.consumed)+1)
				copy(consumed, e.consumed)
				consumed[len(e.consumed)] = uint8(c)
				next = append(next, entry{consumed, l, r})
			}
		}
		cur = next
	}

	st := &SeedTable[P]{k: k, classCount: classCount, intervals: make(map[string][2]P, len(cur))}
	for _, e := range cur {
		key := make([]byte, k)
		for i, c := range e.consumed {
			// consumed[i] was the (i+1)-th character applied to step(),
			// i.e. the k-mer's character at natural position k-1-i.
			key[k-1-i] = byte(c)
		}
		st.intervals[string(key)] = [2]P{e.l, e.r}
	}

	return st
}

// K returns the fixed k-mer length this table was built for.
func (this *SeedTable[P]) K() int { return this.k }

// ClassCount returns the alphabet size this table was built over.
func (this *SeedTable[P]) ClassCount() int { return this.classCount }

// Lookup returns the cached interval for kmer (read left-to-right, must
// have length K()). ok is false if kmer never occurs in the indexed
// text, or if its length doesn't match K().
func (this *SeedTable[P]) Lookup(kmer []uint8) (l, r P, ok bool) {
	if len(kmer) != this.k {
		return 0, 0, false
	}

	wildcard := uint8(this.classCount - 1)
	raw := make([]byte, this.k)
	for i, c := range kmer {
		if c == wildcard {
			return 0, 0, false
		}
		raw[i] = byte(c)
	}

	v, found := this.intervals[string(raw)]
	if !found {
		var zero P
		return zero, zero, false
	}

	return v[0], v[1], true
}

// Intervals exposes the underlying k-mer interval map, e.g. for
// serialization. The returned map is shared, not copied: callers must
// not mutate it.
func (this *SeedTable[P]) Intervals() map[string][2]P { return this.intervals }

// FromRawSeedTable rebuilds a SeedTable from a previously-serialized
// k-mer interval map.
func FromRawSeedTable[P ltfmindex.Position](k, classCount int, intervals map[string][2]P) *SeedTable[P] {
	return &SeedTable[P]{k: k, classCount: classCount, intervals: intervals}
}

// Clone returns a deep copy.
func (this *SeedTable[P]) Clone() *SeedTable[P] {
	clone := &SeedTable[P]{k: this.k, classCount: this.classCount, intervals: make(map[string][2]P, len(this.intervals))}
	for k, v := range this.intervals {
		clone.intervals[k] = v
	}
	return clone
}

// Equal reports whether this and other hold identical k-mer intervals.
func (this *SeedTable[P]) Equal(other *SeedTable[P]) bool {
	if this.k != other.k || this.classCount != other.classCount || len(this.intervals) != len(other.intervals) {
		return false
	}
	for k, v := range this.intervals {
		ov, ok := other.intervals[k]
		if !ok || v != ov {
			return false
		}
	}
	return true
}
