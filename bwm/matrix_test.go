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
package bwm

import "testing"

// classCount=4 (two bit planes), wildcard=3. Text "ACGTACGT" bwt-ish
// stream just for exercising block boundaries at width 32.
func TestMatrixRankAgainstLinearScan(t *testing.T) {
	bwt := []uint8{0, 1, 2, 3, 0, 0, 1, 2, 3, 2, 1, 0, 3, 3, 2, 1, 0, 0, 1, 1, 2, 2, 3, 3, 0, 1, 2, 3, 0, 1, 2, 3, 1, 2}
	const classCount = 4
	const wildcard = 3

	m := Build[uint32, uint32](bwt, classCount, wildcard, 0)

	for c := uint8(0); c < classCount; c++ {
		for p := 0; p <= len(bwt); p++ {
			want := uint32(0)
			for _, ch := range bwt[:p] {
				if ch == c {
					want++
				}
			}
			got := m.Rank(uint32(p), c)
			if got != want {
				t.Fatalf("Rank(%d, %d) = %d, want %d", p, c, got, want)
			}
		}
	}
}

func TestMatrixCharAtMatchesSource(t *testing.T) {
	bwt := make([]uint8, 70)
	for i := range bwt {
		bwt[i] = uint8(i % 4)
	}
	const classCount = 4
	const wildcard = 3

	m := Build[uint32, uint32](bwt, classCount, wildcard, 0)

	for p := 0; p < len(bwt); p++ {
		if got := m.CharAt(uint32(p)); got != bwt[p] {
			t.Fatalf("CharAt(%d) = %d, want %d", p, got, bwt[p])
		}
	}
}

func TestMatrixCloneEqual(t *testing.T) {
	bwt := []uint8{0, 1, 2, 3, 0, 1, 2, 3, 0, 1}
	m := Build[uint64, uint64](bwt, 4, 3, 5)
	clone := m.Clone()

	if !m.Equal(clone) {
		t.Fatal("clone should be structurally equal to the original")
	}

	clone.blocks[0].planes[0] ^= 1
	if m.Equal(clone) {
		t.Fatal("mutating the clone should not affect the original's Equal result")
	}
}

func TestMatrixHandlesWidthMismatchedLength(t *testing.T) {
	// length not a multiple of the 32-bit word width
	bwt := make([]uint8, 35)
	for i := range bwt {
		bwt[i] = uint8(i % 3)
	}
	m := Build[uint32, uint32](bwt, 3, 2, 0)

	total := m.Rank(uint32(len(bwt)), 0)
	want := uint32(0)
	for _, c := range bwt {
		if c == 0 {
			want++
		}
	}
	if total != want {
		t.Fatalf("Rank at full length = %d, want %d", total, want)
	}
}
