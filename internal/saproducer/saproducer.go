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
// Package saproducer builds the suffix array and Burrows-Wheeler
// transform an LtFmIndex is constructed from (component I). It
// implements the default, in-process producer: a prefix-doubling
// suffix array construction (O(n log^2 n) via repeated rank-pair
// sorting) appending one sentinel character guaranteed to sort before
// every real character index. Swapping in a faster construction
// (DC3, SA-IS) later only touches this package.
package saproducer

import "sort"

const sentinel = -1

// Result carries everything the index build needs to hand off to the
// rank dictionary and sampled suffix array: the BWT with its sentinel
// row already excised, where that row used to sit, and the suffix
// array expressed in the same excised, physical row order.
type Result struct {
	// BWT has length N: one entry per real character, in BWM row order,
	// with the row that used to hold the sentinel removed.
	BWT []uint8
	// PrimaryIndex is the row, in the sentinel-included sorted order,
	// where the sentinel used to sit.
	PrimaryIndex int
	// SuffixArray has length N; SuffixArray[j] is the text offset whose
	// BWT lives at physical row j (the same row-removal applied to BWT).
	SuffixArray []int
}

// Produce builds a Result from text, already encoded into character
// indices by the caller's alphabet table (component A).
func Produce(text []uint8) Result {
	n := len(text)
	ext := make([]int, n+1)
	for i, c := range text {
		ext[i] = int(c)
	}
	ext[n] = sentinel

	sa := suffixArray(ext)
	nExt := n + 1

	bwtFull := make([]int, nExt)
	for i, s := range sa {
		prev := s - 1
		if prev < 0 {
			prev += nExt
		}
		bwtFull[i] = ext[prev]
	}

	primaryIndex := -1
	for i, c := range bwtFull {
		if c == sentinel {
			primaryIndex = i
			break
		}
	}

	bwt := make([]uint8, n)
	fullSA := make([]int, n)
	out := 0
	for i := 0; i < nExt; i++ {
		if i == primaryIndex {
			continue
		}
		bwt[out] = uint8(bwtFull[i])
		fullSA[out] = sa[i]
		out++
	}

	return Result{BWT: bwt, PrimaryIndex: primaryIndex, SuffixArray: fullSA}
}

// suffixArray computes the suffix array of ext (where ext's last
// element, the sentinel, compares lower than every other value) via
// prefix doubling: rank suffixes by their first 2^k characters, then
// double k until ranks are unique.
func suffixArray(ext []int) []int {
	n := len(ext)
	sa := make([]int, n)
	rank := make([]int, n)
	tmp := make([]int, n)

	for i := range sa {
		sa[i] = i
		rank[i] = ext[i]
	}

	for k := 1; k < n; k *= 2 {
		rankAt := func(i int) int {
			if i >= n {
				return -1
			}
			return rank[i]
		}

		sort.Sort(byRankPair{sa: sa, rank: rank, rankAt: rankAt, k: k})

		tmp[sa[0]] = 0
		for i := 1; i < n; i++ {
			prev, cur := sa[i-1], sa[i]
			same := rank[prev] == rank[cur] && rankAt(prev+k) == rankAt(cur+k)
			if same {
				tmp[cur] = tmp[prev]
			} else {
				tmp[cur] = tmp[prev] + 1
			}
		}
		copy(rank, tmp)

		if rank[sa[n-1]] == n-1 {
			break
		}
	}

	return sa
}

// byRankPair sorts sa by the (rank[.], rankAt[.+k]) pair, the rank-doubling
// comparison suffixArray repeats at every k.
type byRankPair struct {
	sa     []int
	rank   []int
	rankAt func(int) int
	k      int
}

func (this byRankPair) Len() int {
	return len(this.sa)
}

func (this byRankPair) Less(a, b int) bool {
	ia, ib := this.sa[a], this.sa[b]
	if this.rank[ia] != this.rank[ib] {
		return this.rank[ia] < this.rank[ib]
	}
	return this.rankAt(ia+this.k) < this.rankAt(ib+this.k)
}

func (this byRankPair) Swap(a, b int) {
	this.sa[a], this.sa[b] = this.sa[b], this.sa[a]
}
