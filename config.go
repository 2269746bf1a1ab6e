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
	"github.com/baku4/lt-fm-index-sub001/alphabet"
	"github.com/baku4/lt-fm-index-sub001/bwm"
	"github.com/baku4/lt-fm-index-sub001/count"
	"github.com/baku4/lt-fm-index-sub001/internal/saproducer"
	"github.com/baku4/lt-fm-index-sub001/suffixarray"
)

// Config gathers every Build-time choice the Rust `BuildConfig`
// front-end used to take as method-chained setters: the character
// classes (component A), how densely the suffix array is sampled
// (component E), and how many trailing pattern characters the seed
// table (component F) precomputes.
type Config struct {
	// CharacterClasses groups bytes that should be treated as the same
	// symbol (e.g. upper/lowercase). A byte absent from every class
	// falls back to the implicit wildcard index.
	CharacterClasses [][]byte
	// SuffixArraySamplingRatio is r: only every r-th suffix-array entry
	// is stored. 1 stores all of them. Must be positive.
	SuffixArraySamplingRatio int
	// LookupKmerSize is k: the fixed length of pattern suffix the seed
	// table precomputes an interval for. 0 disables seeding; every
	// query then walks the full pattern through backward search.
	LookupKmerSize int
	// Listener, if set, receives Build stage-transition events.
	Listener Listener
}

// DefaultConfig returns a Config with no character-class folding, a
// suffix array sampled every 2nd position, and no k-mer seeding.
func DefaultConfig() Config {
	return Config{SuffixArraySamplingRatio: 2}
}

func (this Config) validate() error {
	if len(this.CharacterClasses)+1 > alphabet.MaxClasses+1 {
		return NewError(InvalidAlphabet, "too many character classes")
	}
	if this.SuffixArraySamplingRatio <= 0 {
		return NewError(SuffixArraySamplingRatioZero, "suffix array sampling ratio must be positive")
	}
	return nil
}

// validateKmerSize checks LookupKmerSize against the range that's
// meaningful for Position width P: 0 disables seeding outright; a
// nonzero size must be at least 2 and at most half P's bit width (16
// for 32-bit positions, 32 for 64-bit ones).
func validateKmerSize[P Position](k int) error {
	if k == 0 {
		return nil
	}
	maxK := positionWidth[P]() * 4
	if k < 2 || k > maxK {
		return NewError(KmerSizeOutOfRange, "k-mer seed size out of range for this Position width")
	}
	return nil
}

// Build encodes text under cfg's character classes and constructs a
// queryable Index: the suffix array and BWT (component I), the rank
// dictionary (components B-D), the sampled suffix array (component E),
// the count array (component F), and, if cfg.LookupKmerSize > 0, its
// seed table. P sizes every stored position and count; W sizes the
// rank dictionary's bit-packed words. text is copied before encoding,
// so the caller's slice is left untouched.
func Build[P Position, W bwm.Word](text []byte, cfg Config) (*Index[P, W], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := validateKmerSize[P](cfg.LookupKmerSize); err != nil {
		return nil, err
	}

	table, err := alphabet.Build(cfg.CharacterClasses)
	if err != nil {
		return nil, NewError(InvalidAlphabet, err.Error())
	}

	encoded := make([]byte, len(text))
	copy(encoded, text)
	table.Encode(encoded)

	notify(cfg.Listener, EVT_SUFFIX_ARRAY_START, int64(len(text)))
	produced := saproducer.Produce(encoded)
	notify(cfg.Listener, EVT_SUFFIX_ARRAY_END, int64(len(text)))

	fullSA := make([]P, len(produced.SuffixArray))
	for i, v := range produced.SuffixArray {
		fullSA[i] = P(v)
	}
	sampled := suffixarray.Build[P](fullSA, cfg.SuffixArraySamplingRatio)

	notify(cfg.Listener, EVT_RANK_DICT_START, int64(table.Size))
	matrix := bwm.Build[W, P](produced.BWT, table.Size, table.Wildcard(), P(produced.PrimaryIndex))
	notify(cfg.Listener, EVT_RANK_DICT_END, int64(table.Size))

	counts := count.Build[P](produced.BWT, table.Size)

	idx := &Index[P, W]{
		table:        table,
		matrix:       matrix,
		sa:           sampled,
		counts:       counts,
		textLen:      P(len(produced.BWT)),
		primaryIndex: P(produced.PrimaryIndex),
	}

	if cfg.LookupKmerSize > 0 {
		notify(cfg.Listener, EVT_SEED_TABLE_START, int64(cfg.LookupKmerSize))
		idx.seed = count.BuildSeedTable[P](cfg.LookupKmerSize, table.Size, idx.step, idx.textLen+1)
		notify(cfg.Listener, EVT_SEED_TABLE_END, int64(cfg.LookupKmerSize))
	}

	return idx, nil
}
