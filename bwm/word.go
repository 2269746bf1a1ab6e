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
// Package bwm implements the BWT Block (component C) and the BWM rank
// dictionary (component D) built from it: a sequence of bit-packed,
// fixed-width blocks that answer rank queries in O(1), with an
// O(1)-per-plane word-parallel inner loop (AND/shift/popcount),
// grounded on kanzi-go's bitstream package shift-and-mask word
// manipulation and its BWT forward/inverse bucket bookkeeping.
package bwm

import "math/bits"

// Word is the bit-lane type backing a block's bit planes (component
// B). W can range over {32, 64, 128} in principle; this implementation
// supports the two widths Go has a native unsigned integer for. A
// 128-bit plane would need either a software bignum or a pair of
// uint64 words acting as one logical plane, and nothing in the
// teacher pack or the rest of the retrieval pack reaches for either
// when a 64-bit lane already covers every realistic block size, so
// 128-bit planes are left unimplemented (see DESIGN.md).
type Word interface {
	~uint32 | ~uint64
}

// wordBits returns the bit width of W.
func wordBits[W Word]() int {
	var zero W
	if _, ok := any(zero).(uint32); ok {
		return 32
	}

	return 64
}

// WordBits is the exported form of wordBits, for the serialize
// package's on-disk header.
func WordBits[W Word]() int { return wordBits[W]() }

// popcount counts the set bits of w, dispatching to the width-correct
// bits.OnesCount variant.
func popcount[W Word](w W) int {
	switch v := any(w).(type) {
	case uint32:
		return bits.OnesCount32(v)
	case uint64:
		return bits.OnesCount64(v)
	default:
		return 0
	}
}
