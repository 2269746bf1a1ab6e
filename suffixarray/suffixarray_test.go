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
package suffixarray

import "testing"

func TestArrayLocationOfOnStride(t *testing.T) {
	full := []uint32{7, 3, 9, 1, 5, 0, 8, 2, 6, 4}
	const ratio = 3

	arr := Build[uint32](full, ratio)
	if arr.Ratio() != ratio {
		t.Fatalf("Ratio() = %d, want %d", arr.Ratio(), ratio)
	}

	for j, want := range full {
		got, ok := arr.LocationOf(uint32(j))
		if j%ratio == 0 {
			if !ok || got != want {
				t.Fatalf("LocationOf(%d) = (%d,%v), want (%d,true)", j, got, ok, want)
			}
		} else if ok {
			t.Fatalf("LocationOf(%d) should be absent off the sampling stride, got %d", j, got)
		}
	}
}

func TestArrayRatioOne(t *testing.T) {
	full := []uint32{2, 0, 1}
	arr := Build[uint32](full, 1)

	for j, want := range full {
		got, ok := arr.LocationOf(uint32(j))
		if !ok || got != want {
			t.Fatalf("LocationOf(%d) = (%d,%v), want (%d,true)", j, got, ok, want)
		}
	}
}

func TestArrayCloneEqual(t *testing.T) {
	full := []uint64{5, 4, 3, 2, 1, 0}
	arr := Build[uint64](full, 2)
	clone := arr.Clone()

	if !arr.Equal(clone) {
		t.Fatal("clone should equal the original")
	}
	clone.samples[0] = 999
	if arr.Equal(clone) {
		t.Fatal("mutating the clone's samples should not affect the original")
	}
}

func TestArrayFromSamplesRoundTrip(t *testing.T) {
	full := []uint32{10, 20, 30, 40, 50}
	arr := Build[uint32](full, 2)

	rebuilt := FromSamples[uint32](arr.Samples(), arr.Ratio())
	if !arr.Equal(rebuilt) {
		t.Fatal("FromSamples(Samples(), Ratio()) should reconstruct an equal Array")
	}
}
