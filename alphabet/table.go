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
// Package alphabet implements the character-encoding table (component
// A): a flat 256-entry lookup that folds a user-declared alphabet,
// with optional equivalence classes, into small integer character
// indices, defaulting unlisted bytes to an implicit wildcard index.
package alphabet

import "fmt"

// MaxClasses is the largest number of non-wildcard classes a Table can
// hold: the wildcard always occupies one more slot, and both must fit
// in a byte-indexed table (C+1 <= 256).
const MaxClasses = 255

// Table maps raw bytes to internal character indices in [0, C], where
// C is the wildcard index (classes.len()). It is built once and never
// mutated afterward.
type Table struct {
	entries [256]uint8
	// Size is C+1: the number of distinct classes including the
	// wildcard.
	Size int
}

// Build folds classes (an ordered list of byte sets, one per
// non-wildcard character index) into a Table. Every byte not listed
// in any class defaults to the wildcard index len(classes). If a byte
// appears in more than one class, the last class that lists it wins.
//
// Build returns an error if there would be more than 256 total classes
// (including the wildcard) or if any class is empty; the root package's
// Build reports that error as InvalidAlphabet.
func Build(classes [][]byte) (*Table, error) {
	if len(classes)+1 > 256 {
		return nil, fmt.Errorf("too many character classes: %d classes plus wildcard exceeds 256", len(classes))
	}

	t := &Table{Size: len(classes) + 1}
	wildcard := uint8(len(classes))

	for i := range t.entries {
		t.entries[i] = wildcard
	}

	for classIdx, class := range classes {
		if len(class) == 0 {
			return nil, fmt.Errorf("character class %d is empty", classIdx)
		}

		for _, b := range class {
			t.entries[b] = uint8(classIdx)
		}
	}

	return t, nil
}

// IdxOf returns the character index assigned to byte b: a value in
// [0, Size-1], where Size-1 is the wildcard index. O(1), total.
func (this *Table) IdxOf(b byte) uint8 {
	return this.entries[b]
}

// Wildcard returns the implicit wildcard character index, C.
func (this *Table) Wildcard() uint8 {
	return uint8(this.Size - 1)
}

// Encode maps every byte of text in place to its character index,
// as the component's data flow ("raw text -> A encodes in place")
// requires.
func (this *Table) Encode(text []byte) {
	for i, b := range text {
		text[i] = this.entries[b]
	}
}

// Raw returns the underlying 256-entry table, e.g. for serialization.
func (this *Table) Raw() [256]uint8 {
	return this.entries
}

// FromRaw rebuilds a Table from a previously-serialized 256-entry
// table and its declared size (C+1).
func FromRaw(entries [256]uint8, size int) *Table {
	return &Table{entries: entries, Size: size}
}

// Equal reports whether this and other map every byte identically.
func (this *Table) Equal(other *Table) bool {
	return this.Size == other.Size && this.entries == other.entries
}
