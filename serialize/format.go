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
// Package serialize implements the on-disk layouts for a built Index
// (component H): a classic length-prefixed format written and read
// through an ordinary io.Writer/io.Reader, and a zero-copy layout whose
// numeric arrays are cast directly out of a memory-mapped (or, on
// platforms without mmap, fully buffered) file with no intermediate
// copy. The two formats are intentionally not mutually readable: Load
// only recognizes the classic header, OpenZeroCopy only recognizes the
// zero-copy one.
package serialize

import (
	"bytes"
	"encoding/binary"
	"io"

	ltfmindex "github.com/baku4/lt-fm-index-sub001"
	"github.com/baku4/lt-fm-index-sub001/bwm"
)

const (
	classicMagic = "LFMC"
	zeroCopyMagic0, zeroCopyMagic1 = 'F', 'I'
	formatMajor = 1
	formatMinor = 0
)

func putWidth(buf *bytes.Buffer, width int, v uint64) {
	if width == 4 {
		var tmp [4]byte
		binary.LittleEndian.PutUint32(tmp[:], uint32(v))
		buf.Write(tmp[:])
		return
	}
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	buf.Write(tmp[:])
}

func getWidth(r io.Reader, width int) (uint64, error) {
	if width == 4 {
		var tmp [4]byte
		if _, err := io.ReadFull(r, tmp[:]); err != nil {
			return 0, err
		}
		return uint64(binary.LittleEndian.Uint32(tmp[:])), nil
	}
	var tmp [8]byte
	if _, err := io.ReadFull(r, tmp[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(tmp[:]), nil
}

// headerWidths returns the on-disk byte widths for P and W, recorded
// in every header so Load/OpenZeroCopy can detect a width mismatch
// before trusting any length field that follows.
func headerWidths[P ltfmindex.Position, W bwm.Word]() (positionWidth, wordWidth int) {
	return ltfmindex.PositionWidth[P](), bwm.WordBits[W]() / 8
}

// warnUnsupportedMinor reports a minor format version newer than this
// build understands. Readers still proceed: a minor-version bump is
// defined to only ever add fields a reader may safely ignore, so this
// is a warning, not a rejection, unlike an unsupported major version.
func warnUnsupportedMinor(listeners []ltfmindex.Listener, minor byte) {
	if minor <= formatMinor {
		return
	}
	for _, listener := range listeners {
		if listener == nil {
			continue
		}
		listener.ProcessEvent(ltfmindex.NewEvent(ltfmindex.EVT_UNSUPPORTED_MINOR_VERSION, int64(minor)))
	}
}
