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
package count

import "testing"

func TestTableBaseMatchesCumulativeCount(t *testing.T) {
	bwt := []uint8{0, 1, 2, 3, 0, 0, 1, 2, 3, 2, 1, 0, 3, 3, 2, 1}
	const classCount = 4

	tbl := Build[uint32](bwt, classCount)

	for c := uint8(0); c < classCount; c++ {
		want := uint32(1)
		for _, ch := range bwt {
			if ch < c {
				want++
			}
		}
		if got := tbl.Base(c); got != want {
			t.Fatalf("Base(%d) = %d, want %d", c, got, want)
		}
	}
}

func TestTableCloneEqual(t *testing.T) {
	bwt := []uint8{0, 1, 2, 0, 1, 2}
	tbl := Build[uint64](bwt, 3)
	clone := tbl.Clone()

	if !tbl.Equal(clone) {
		t.Fatal("clone should equal the original")
	}
	clone.cumulative[1]++
	if tbl.Equal(clone) {
		t.Fatal("mutating the clone should not affect the original")
	}
}

// naiveStepFor builds a backward search step over a tiny Table for a
// text with no primary-index bookkeeping at all (rank is a linear scan
// of bwt), enough to exercise
// BuildSeedTable's pruning and Lookup without pulling in the bwm package.
func naiveStepFor(bwt []uint8, classCount int) StepFunc[uint32] {
	tbl := Build[uint32](bwt, classCount)
	// rank(p, c) = occurrences of c in bwt[:p], computed on the fly.
	rank := func(p uint32, c uint8) uint32 {
		var n uint32
		for i := uint32(0); i < p && int(i) < len(bwt); i++ {
			if bwt[i] == c {
				n++
			}
		}
		return n
	}
	return func(l, r uint32, c uint8) (uint32, uint32) {
		base := tbl.Base(c)
		return base + rank(l, c), base + rank(r, c)
	}
}

func TestSeedTableLookupMatchesDirectStep(t *testing.T) {
	bwt := []uint8{0, 1, 2, 1, 0, 2, 1, 0, 2, 1}
	const classCount = 3
	const k = 2

	step := naiveStepFor(bwt, classCount)
	fullLen := uint32(len(bwt) + 1)
	st := BuildSeedTable[uint32](k, classCount, step, fullLen)

	if st.K() != k {
		t.Fatalf("K() = %d, want %d", st.K(), k)
	}

	for a := 0; a < classCount; a++ {
		for b := 0; b < classCount; b++ {
			kmer := []uint8{uint8(a), uint8(b)}

			// classCount-1 is the wildcard index: k-mers containing it are
			// never seeded, even where step alone would give a non-empty
			// interval.
			if a == classCount-1 || b == classCount-1 {
				if gotL, gotR, ok := st.Lookup(kmer); ok {
					t.Fatalf("kmer %v contains the wildcard: expected absent, got (%d,%d)", kmer, gotL, gotR)
				}
				continue
			}

			l, r := uint32(0), fullLen
			l, r = step(l, r, kmer[1])
			if l < r {
				l, r = step(l, r, kmer[0])
			}

			gotL, gotR, ok := st.Lookup(kmer)
			if l >= r {
				if ok {
					t.Fatalf("kmer %v: expected absent, got (%d,%d)", kmer, gotL, gotR)
				}
				continue
			}
			if !ok {
				t.Fatalf("kmer %v: expected present interval (%d,%d), got absent", kmer, l, r)
			}
			if gotL != l || gotR != r {
				t.Fatalf("kmer %v: Lookup = (%d,%d), want (%d,%d)", kmer, gotL, gotR, l, r)
			}
		}
	}
}

func TestSeedTableLookupWrongLength(t *testing.T) {
	bwt := []uint8{0, 1, 0, 1}
	step := naiveStepFor(bwt, 2)
	st := BuildSeedTable[uint32](2, 2, step, uint32(len(bwt)+1))

	if _, _, ok := st.Lookup([]uint8{0}); ok {
		t.Fatal("Lookup with wrong-length kmer should report not found")
	}
}

func TestSeedTableCloneEqual(t *testing.T) {
	bwt := []uint8{0, 1, 2, 0, 1, 2, 1, 0}
	step := naiveStepFor(bwt, 3)
	st := BuildSeedTable[uint32](2, 3, step, uint32(len(bwt)+1))
	clone := st.Clone()

	if !st.Equal(clone) {
		t.Fatal("clone should equal the original")
	}
	for k := range clone.intervals {
		clone.intervals[k] = [2]uint32{99, 100}
		break
	}
	if st.Equal(clone) {
		t.Fatal("mutating the clone's intervals should not affect the original")
	}
}
