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
package alphabet

import "testing"

func TestBuildBasic(t *testing.T) {
	classes := [][]byte{[]byte("Aa"), []byte("Cc"), []byte("Gg"), []byte("Tt")}

	tbl, err := Build(classes)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if tbl.Size != 5 {
		t.Fatalf("expected Size 5 (4 classes + wildcard), got %d", tbl.Size)
	}

	cases := map[byte]uint8{
		'A': 0, 'a': 0,
		'C': 1, 'c': 1,
		'G': 2, 'g': 2,
		'T': 3, 't': 3,
		'N': 4, 'x': 4, 0: 4,
	}

	for b, want := range cases {
		if got := tbl.IdxOf(b); got != want {
			t.Errorf("IdxOf(%q) = %d, want %d", b, got, want)
		}
	}

	if tbl.Wildcard() != 4 {
		t.Errorf("Wildcard() = %d, want 4", tbl.Wildcard())
	}
}

func TestBuildLastClassWins(t *testing.T) {
	// 'x' appears in both classes; the later one should win.
	classes := [][]byte{[]byte("x"), []byte("xy")}

	tbl, err := Build(classes)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if got := tbl.IdxOf('x'); got != 1 {
		t.Errorf("IdxOf('x') = %d, want 1 (last-write-wins)", got)
	}
}

func TestBuildRejectsEmptyClass(t *testing.T) {
	_, err := Build([][]byte{[]byte("A"), {}})
	if err == nil {
		t.Fatal("expected error for empty class, got nil")
	}
}

func TestBuildRejectsTooManyClasses(t *testing.T) {
	classes := make([][]byte, 256)
	for i := range classes {
		classes[i] = []byte{byte(i)}
	}

	if _, err := Build(classes); err == nil {
		t.Fatal("expected error for 256 classes + wildcard > 256, got nil")
	}
}

func TestEncodeInPlace(t *testing.T) {
	tbl, err := Build([][]byte{[]byte("Aa"), []byte("Cc"), []byte("Gg"), []byte("Tt")})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	text := []byte("ACGTN")
	tbl.Encode(text)

	want := []uint8{0, 1, 2, 3, 4}
	for i, w := range want {
		if text[i] != w {
			t.Errorf("text[%d] = %d, want %d", i, text[i], w)
		}
	}
}

func TestFromRawRoundTrip(t *testing.T) {
	tbl, err := Build([][]byte{[]byte("Aa"), []byte("Cc")})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	rebuilt := FromRaw(tbl.Raw(), tbl.Size)

	for b := 0; b < 256; b++ {
		if rebuilt.IdxOf(byte(b)) != tbl.IdxOf(byte(b)) {
			t.Fatalf("byte %d mismatch after FromRaw", b)
		}
	}
}
