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
// Package suffixarray implements the sampled suffix array (component
// E): the suffix-array entry of every r-th physical BWM row, instead of
// all N positions. A located row resolves to a text offset by walking
// LF-mapping steps until it reaches a sampled row; because samples are
// taken by row rather than by text position, that walk is not bounded
// by r.
package suffixarray

import ltfmindex "github.com/baku4/lt-fm-index-sub001"

// Array stores SA[0], SA[r], SA[2r], ... keyed by physical BWM row.
// Rows not on the sampling stride are not stored; resolving one
// requires walking forward via LF-mapping (done by the facade, which
// owns the rank dictionary and the sentinel bookkeeping this package
// has no business knowing about) until a sampled row is reached.
type Array[P ltfmindex.Position] struct {
	ratio   int
	samples []P
}

// Build samples full, the complete suffix array expressed in physical
// BWM row order (full[j] is the text offset whose BWM row is j), every
// ratio rows. ratio must be at least 1; ratio 1 stores every row, which
// trades all compression for O(1) location lookups.
func Build[P ltfmindex.Position](full []P, ratio int) *Array[P] {
	if ratio < 1 {
		ratio = 1
	}

	count := (len(full) + ratio - 1) / ratio
	samples := make([]P, 0, count)
	for j := 0; j < len(full); j += ratio {
		samples = append(samples, full[j])
	}

	return &Array[P]{ratio: ratio, samples: samples}
}

// Ratio returns the sampling stride r.
func (this *Array[P]) Ratio() int { return this.ratio }

// LocationOf returns the sampled text offset at physical row j, if j
// sits on the sampling stride.
func (this *Array[P]) LocationOf(j P) (P, bool) {
	if int(j)%this.ratio != 0 {
		var zero P
		return zero, false
	}

	idx := int(j) / this.ratio
	if idx < 0 || idx >= len(this.samples) {
		var zero P
		return zero, false
	}

	return this.samples[idx], true
}

// Samples exposes the raw sampled values, e.g. for serialization.
func (this *Array[P]) Samples() []P { return this.samples }

// FromSamples rebuilds an Array from previously-serialized samples.
func FromSamples[P ltfmindex.Position](samples []P, ratio int) *Array[P] {
	return &Array[P]{ratio: ratio, samples: samples}
}

// Clone returns a deep copy: the sample slice is copied, not shared.
func (this *Array[P]) Clone() *Array[P] {
	return &Array[P]{ratio: this.ratio, samples: append([]P(nil), this.samples...)}
}

// Equal reports whether this and other store the same ratio and
// samples.
func (this *Array[P]) Equal(other *Array[P]) bool {
	if this.ratio != other.ratio || len(this.samples) != len(other.samples) {
		return false
	}
	for i, v := range this.samples {
		if v != other.samples[i] {
			return false
		}
	}
	return true
}
