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

// Position is the parametric unsigned integer used for SA positions,
// counts, and offsets. Two width families are valid: P32 for
// texts up to ~4 GiB, P64 for longer texts. The width is fixed per
// index instance at Build time and is persisted by serialize so a
// saved index always reopens with the same width.
type Position interface {
	~uint32 | ~uint64
}

// P32 and P64 are the two position widths a caller may instantiate
// Index, Config, and the serialize entry points with.
type (
	P32 = uint32
	P64 = uint64
)

// positionWidth returns the byte width of P: 4 for the uint32 family,
// 8 for the uint64 family. Used by Build's k-mer size check and by
// serialize to size on-disk fields without a runtime type switch per
// call.
func positionWidth[P Position]() int {
	var zero P
	if _, ok := any(zero).(uint32); ok {
		return 4
	}

	return 8
}

// PositionWidth is the exported form of positionWidth, for the
// serialize package's on-disk header.
func PositionWidth[P Position]() int { return positionWidth[P]() }
