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
package serialize

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	ltfmindex "github.com/baku4/lt-fm-index-sub001"
)

var dnaClasses = [][]byte{{'A'}, {'C'}, {'G'}, {'T'}}

func buildTestIndex(t *testing.T, text []byte, kmerSize int) *ltfmindex.Index[uint32, uint32] {
	t.Helper()
	cfg := ltfmindex.Config{CharacterClasses: dnaClasses, SuffixArraySamplingRatio: 2, LookupKmerSize: kmerSize}
	idx, err := ltfmindex.Build[uint32, uint32](text, cfg)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return idx
}

func assertCountLocateEqual(t *testing.T, a, b *ltfmindex.Index[uint32, uint32], patterns [][]byte) {
	t.Helper()
	for _, p := range patterns {
		if a.Count(p) != b.Count(p) {
			t.Fatalf("Count(%q) disagrees: %d vs %d", p, a.Count(p), b.Count(p))
		}
		la, lb := a.Locate(p), b.Locate(p)
		if len(la) != len(lb) {
			t.Fatalf("Locate(%q) length disagrees: %v vs %v", p, la, lb)
		}
		for i := range la {
			if la[i] != lb[i] {
				t.Fatalf("Locate(%q) disagrees at %d: %v vs %v", p, i, la, lb)
			}
		}
	}
}

func TestClassicSaveLoadRoundTrip(t *testing.T) {
	text := []byte("GATTACAGATTACAGATTACA")
	idx := buildTestIndex(t, text, 3)

	var buf bytes.Buffer
	if err := Save[uint32, uint32](&buf, idx); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load[uint32, uint32](bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !idx.Equal(loaded) {
		t.Fatal("loaded index is not structurally equal to the original")
	}

	assertCountLocateEqual(t, idx, loaded, [][]byte{
		[]byte("GATTACA"), []byte("ATT"), []byte("CCCC"), nil, []byte("A"),
	})
}

func TestClassicSaveLoadWithoutSeedTable(t *testing.T) {
	text := []byte("ACGTACGTACGTACGT")
	idx := buildTestIndex(t, text, 0)

	var buf bytes.Buffer
	if err := Save[uint32, uint32](&buf, idx); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load[uint32, uint32](bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !idx.Equal(loaded) {
		t.Fatal("loaded index is not structurally equal to the original")
	}
}

func TestClassicLoadRejectsZeroCopyBytes(t *testing.T) {
	text := []byte("ACGTACGT")
	idx := buildTestIndex(t, text, 0)

	var buf bytes.Buffer
	if err := SaveZeroCopy[uint32, uint32](&buf, idx); err != nil {
		t.Fatalf("SaveZeroCopy failed: %v", err)
	}

	if _, err := Load[uint32, uint32](bytes.NewReader(buf.Bytes())); err == nil {
		t.Fatal("Load should reject zero-copy-format bytes")
	}
}

func TestClassicLoadDetectsCorruption(t *testing.T) {
	text := []byte("ACGTACGTACGT")
	idx := buildTestIndex(t, text, 2)

	var buf bytes.Buffer
	if err := Save[uint32, uint32](&buf, idx); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	corrupted := append([]byte(nil), buf.Bytes()...)
	corrupted[len(corrupted)-1] ^= 0xFF

	if _, err := Load[uint32, uint32](bytes.NewReader(corrupted)); err == nil {
		t.Fatal("Load should reject a corrupted checksum")
	}
}

func TestClassicLoadRejectsWidthMismatch(t *testing.T) {
	text := []byte("ACGTACGT")
	idx := buildTestIndex(t, text, 0)

	var buf bytes.Buffer
	if err := Save[uint32, uint32](&buf, idx); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := Load[uint64, uint32](bytes.NewReader(buf.Bytes())); err == nil {
		t.Fatal("Load should reject a P-width mismatch")
	}
}

func TestZeroCopySaveOpenRoundTrip(t *testing.T) {
	text := []byte("GATTACAGATTACAGATTACAGATTACA")
	idx := buildTestIndex(t, text, 3)

	dir := t.TempDir()
	path := filepath.Join(dir, "index.ltfm")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	if err := SaveZeroCopy[uint32, uint32](f, idx); err != nil {
		t.Fatalf("SaveZeroCopy failed: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing temp file: %v", err)
	}

	loaded, handle, err := OpenZeroCopy[uint32, uint32](path)
	if err != nil {
		t.Fatalf("OpenZeroCopy failed: %v", err)
	}
	defer handle.Close()

	if !idx.Equal(loaded) {
		t.Fatal("zero-copy-loaded index is not structurally equal to the original")
	}

	assertCountLocateEqual(t, idx, loaded, [][]byte{
		[]byte("GATTACA"), []byte("ATT"), []byte("CCCC"), nil,
	})
}

func TestZeroCopyOpenRejectsClassicBytes(t *testing.T) {
	text := []byte("ACGTACGT")
	idx := buildTestIndex(t, text, 0)

	dir := t.TempDir()
	path := filepath.Join(dir, "index.ltfm")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	if err := Save[uint32, uint32](f, idx); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing temp file: %v", err)
	}

	if _, _, err := OpenZeroCopy[uint32, uint32](path); err == nil {
		t.Fatal("OpenZeroCopy should reject classic-format bytes")
	}
}
