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

import ltfmindex "github.com/baku4/lt-fm-index-sub001"

// Matrix is the rank dictionary built over a Burrows-Wheeler-transformed
// text (component D): a sequence of fixed-width Blocks plus one running
// checkpoint per block boundary, so that Rank resolves in O(1) block
// lookups plus one word-parallel popcount. Matrix is unaware of the
// sentinel row removed from the BWT during construction; its PrimaryIndex
// field merely records where that row used to sit, for callers (the
// backward-search facade) that must adjust row numbers and occasionally
// short-circuit instead of querying the dictionary at all.
type Matrix[W Word, P ltfmindex.Position] struct {
	planeCount int
	blocks     []*Block[W]
	// checkpoints[k] holds, for each real character index, the exclusive
	// occurrence count in bwt[0 : k*blockWidth). len(checkpoints) ==
	// len(blocks)+1, with the last entry equal to the column totals.
	checkpoints [][]P
	length      P
	// PrimaryIndex is the row, in the original (sentinel-included) sorted
	// order, where the sentinel itself used to sit. Backward search uses
	// it to translate row numbers into this Matrix's physical coordinates.
	PrimaryIndex P
}

// Build vectorizes bwt (the sentinel already removed, length N) into
// fixed-width blocks and tallies running checkpoints. wildcard pads the
// final, possibly short, chunk so every Block gets a full W-wide input;
// padded cells carry the wildcard index and are excluded from the
// returned total counts by trimming them back to the true length N.
func Build[W Word, P ltfmindex.Position](bwt []uint8, classCount int, wildcard uint8, primaryIndex P) *Matrix[W, P] {
	n := len(bwt)
	planeCount := planeCountFor(classCount)
	width := wordBits[W]()

	blockCount := 0
	if n > 0 {
		blockCount = (n + width - 1) / width
	}

	m := &Matrix[W, P]{
		planeCount:   planeCount,
		blocks:       make([]*Block[W], blockCount),
		checkpoints:  make([][]P, blockCount+1),
		length:       P(n),
		PrimaryIndex: primaryIndex,
	}

	running := make([]P, classCount)
	m.checkpoints[0] = append([]P(nil), running...)

	for k := 0; k < blockCount; k++ {
		start := k * width
		end := start + width
		if end > n {
			end = n
		}
		chunk := make([]uint8, width)
		copy(chunk, bwt[start:end])
		for i := end - start; i < width; i++ {
			chunk[i] = wildcard
		}

		counters := make([]P, classCount)
		m.blocks[k] = Vectorize[W, P](chunk, planeCount, counters)

		for c := 0; c < classCount; c++ {
			running[c] += counters[c]
		}
		// padded cells beyond the true chunk length were tallied above as
		// wildcard occurrences; undo that so checkpoints reflect only real
		// bwt content. Vectorize counts exactly one extra wildcard hit per
		// padded cell.
		if pad := width - (end - start); pad > 0 {
			running[int(wildcard)] -= P(pad)
		}

		m.checkpoints[k+1] = append([]P(nil), running...)
	}

	return m
}

func planeCountFor(classCount int) int {
	planes := 0
	for (1 << planes) < classCount {
		planes++
	}
	if planes == 0 {
		planes = 1
	}
	return planes
}

// Len returns N, the number of real (non-sentinel) characters indexed.
func (this *Matrix[W, P]) Len() P { return this.length }

// PlaneCount returns b, the number of bit planes each block carries.
func (this *Matrix[W, P]) PlaneCount() int { return this.planeCount }

// Blocks exposes the underlying blocks, e.g. for serialization.
func (this *Matrix[W, P]) Blocks() []*Block[W] { return this.blocks }

// RawCheckpoints exposes the underlying checkpoint rows, e.g. for
// serialization.
func (this *Matrix[W, P]) RawCheckpoints() [][]P { return this.checkpoints }

// FromRaw rebuilds a Matrix from previously-serialized blocks and
// checkpoints. Callers must supply data produced by Build (or a prior
// Clone/FromRaw round trip); FromRaw performs no validation of its own.
func FromRaw[W Word, P ltfmindex.Position](planeCount int, blocks []*Block[W], checkpoints [][]P, length P, primaryIndex P) *Matrix[W, P] {
	return &Matrix[W, P]{
		planeCount:   planeCount,
		blocks:       blocks,
		checkpoints:  checkpoints,
		length:       length,
		PrimaryIndex: primaryIndex,
	}
}

// Rank returns the number of occurrences of character c within the
// physical prefix bwt[0:p]. p must be a physical row in [0, N], never a
// row expressed in the sentinel-included numbering.
func (this *Matrix[W, P]) Rank(p P, c uint8) P {
	width := P(wordBits[W]())
	block := p / width
	rem := uint32(p % width)

	base := this.checkpoints[block][c]
	if rem == 0 {
		return base
	}
	return base + P(this.blocks[block].GetRemainCountOf(rem, c))
}

// CharAt returns the character index stored at physical row p (p in
// [0, N)).
func (this *Matrix[W, P]) CharAt(p P) uint8 {
	width := P(wordBits[W]())
	block := p / width
	rem := uint32(p % width)
	return this.blocks[block].GetChridxOf(rem)
}

// Clone returns a deep copy: every block's bit planes and every
// checkpoint row are copied, not shared.
func (this *Matrix[W, P]) Clone() *Matrix[W, P] {
	clone := &Matrix[W, P]{
		planeCount:   this.planeCount,
		blocks:       make([]*Block[W], len(this.blocks)),
		checkpoints:  make([][]P, len(this.checkpoints)),
		length:       this.length,
		PrimaryIndex: this.PrimaryIndex,
	}
	for i, b := range this.blocks {
		clone.blocks[i] = PlanesFrom(append([]W(nil), b.Planes()...))
	}
	for i, cp := range this.checkpoints {
		clone.checkpoints[i] = append([]P(nil), cp...)
	}
	return clone
}

// Equal reports whether this and other hold identical blocks and
// checkpoints.
func (this *Matrix[W, P]) Equal(other *Matrix[W, P]) bool {
	if this.planeCount != other.planeCount || this.length != other.length ||
		this.PrimaryIndex != other.PrimaryIndex || len(this.blocks) != len(other.blocks) {
		return false
	}
	for i, b := range this.blocks {
		ob := other.blocks[i]
		if len(b.Planes()) != len(ob.Planes()) {
			return false
		}
		for p, plane := range b.Planes() {
			if plane != ob.Planes()[p] {
				return false
			}
		}
	}
	for i, cp := range this.checkpoints {
		ocp := other.checkpoints[i]
		if len(cp) != len(ocp) {
			return false
		}
		for c, v := range cp {
			if v != ocp[c] {
				return false
			}
		}
	}
	return true
}
