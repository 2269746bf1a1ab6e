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
	"encoding/binary"
	"io"
	"unsafe"

	ltfmindex "github.com/baku4/lt-fm-index-sub001"
	"github.com/baku4/lt-fm-index-sub001/alphabet"
	"github.com/baku4/lt-fm-index-sub001/bwm"
	"github.com/baku4/lt-fm-index-sub001/count"
	"github.com/baku4/lt-fm-index-sub001/suffixarray"
)

// zeroCopyHeaderSize is one 8-byte word of magic/version/reserved
// followed by 18 uint64 fields: 8 + 18*8 = 152, already 8-aligned.
const zeroCopyHeaderSize = 152

// The big numeric sections (block planes, checkpoints, suffix-array
// samples, cumulative counts) are written in the host's native byte
// order and read back by casting the backing buffer directly, with no
// per-element copy: OpenZeroCopy's whole reason to exist is to make
// opening a multi-gigabyte index a mmap syscall plus a handful of
// pointer casts, not a pass over every stored integer. This makes the
// zero-copy layout non-portable across machines of differing
// endianness, unlike the classic format's explicit little-endian
// fields; that tradeoff is the point of the format, not an oversight.
// The small, variably-shaped k-mer seed table is the one section
// copied normally: its entries are keyed by byte strings, which have
// no fixed-width in-memory layout to cast into.
type zeroCopyHeader struct {
	positionWidth, wordWidth        uint64
	alphabetSize                    uint64
	textLen, primaryIndex           uint64
	planeCount, blockCount          uint64
	saRatio, saSampleCount          uint64
	hasSeed, seedK, seedEntryCount  uint64
	blocksOffset, checkpointsOffset uint64
	samplesOffset, cumulativeOffset uint64
	seedOffset, alphabetTableOffset uint64
}

func align8(n int) int { return (n + 7) &^ 7 }

// SaveZeroCopy writes idx to w in the zero-copy layout: a fixed header
// naming every section's byte offset, followed by the sections
// themselves at 8-byte-aligned boundaries so OpenZeroCopy can cast
// them back without realigning anything.
func SaveZeroCopy[P ltfmindex.Position, W bwm.Word](w io.Writer, idx *ltfmindex.Index[P, W]) error {
	positionWidth, wordWidth := headerWidths[P, W]()
	table := idx.Table()
	matrix := idx.Matrix()
	sa := idx.SuffixArray()
	counts := idx.Counts()
	seed := idx.Seed()

	blocks := matrix.Blocks()
	checkpoints := matrix.RawCheckpoints()
	samples := sa.Samples()
	cumulative := counts.Cumulative()

	blocksBytes := len(blocks) * matrix.PlaneCount() * wordWidth
	checkpointsBytes := len(checkpoints) * table.Size * positionWidth
	samplesBytes := len(samples) * positionWidth
	cumulativeBytes := len(cumulative) * positionWidth

	offset := align8(zeroCopyHeaderSize)
	alphabetTableOffset := offset
	offset = align8(offset + 256)
	blocksOffset := offset
	offset = align8(offset + blocksBytes)
	checkpointsOffset := offset
	offset = align8(offset + checkpointsBytes)
	samplesOffset := offset
	offset = align8(offset + samplesBytes)
	cumulativeOffset := offset
	offset = align8(offset + cumulativeBytes)

	var seedOffset, seedK, seedEntryCount, hasSeed int
	if seed != nil {
		hasSeed = 1
		seedK = seed.K()
		seedEntryCount = len(seed.Intervals())
		seedOffset = offset
		offset = align8(offset + seedEntryCount*(seedK+2*positionWidth))
	}

	h := zeroCopyHeader{
		positionWidth: uint64(positionWidth), wordWidth: uint64(wordWidth),
		alphabetSize: uint64(table.Size),
		textLen:      uint64(idx.Len()), primaryIndex: uint64(idx.PrimaryIndex()),
		planeCount: uint64(matrix.PlaneCount()), blockCount: uint64(len(blocks)),
		saRatio: uint64(sa.Ratio()), saSampleCount: uint64(len(samples)),
		hasSeed: uint64(hasSeed), seedK: uint64(seedK), seedEntryCount: uint64(seedEntryCount),
		blocksOffset: uint64(blocksOffset), checkpointsOffset: uint64(checkpointsOffset),
		samplesOffset: uint64(samplesOffset), cumulativeOffset: uint64(cumulativeOffset),
		seedOffset: uint64(seedOffset), alphabetTableOffset: uint64(alphabetTableOffset),
	}

	var out bytes.Buffer
	out.Write([]byte{zeroCopyMagic0, zeroCopyMagic1, formatMajor, formatMinor, 0, 0, 0, 0})
	for _, v := range []uint64{
		h.positionWidth, h.wordWidth, h.alphabetSize, h.textLen, h.primaryIndex,
		h.planeCount, h.blockCount, h.saRatio, h.saSampleCount,
		h.hasSeed, h.seedK, h.seedEntryCount,
		h.blocksOffset, h.checkpointsOffset, h.samplesOffset, h.cumulativeOffset,
		h.seedOffset, h.alphabetTableOffset,
	} {
		var tmp [8]byte
		binary.LittleEndian.PutUint64(tmp[:], v)
		out.Write(tmp[:])
	}

	padTo(&out, alphabetTableOffset)
	raw := table.Raw()
	out.Write(raw[:])

	padTo(&out, blocksOffset)
	for _, block := range blocks {
		for _, plane := range block.Planes() {
			writeNative(&out, wordWidth, uint64(plane))
		}
	}

	padTo(&out, checkpointsOffset)
	for _, row := range checkpoints {
		for _, v := range row {
			writeNative(&out, positionWidth, uint64(v))
		}
	}

	padTo(&out, samplesOffset)
	for _, v := range samples {
		writeNative(&out, positionWidth, uint64(v))
	}

	padTo(&out, cumulativeOffset)
	for _, v := range cumulative {
		writeNative(&out, positionWidth, uint64(v))
	}

	if seed != nil {
		// Seed entries mix a variable-length byte key with fixed-width
		// bounds, so a key of odd length leaves the following bounds
		// misaligned for a pointer cast; they are written and read back
		// with ordinary little-endian encoding instead of the native
		// unsafe cast the four large numeric sections use.
		padTo(&out, seedOffset)
		for key, bounds := range seed.Intervals() {
			out.WriteString(key)
			putWidth(&out, positionWidth, uint64(bounds[0]))
			putWidth(&out, positionWidth, uint64(bounds[1]))
		}
	}

	padTo(&out, offset)

	if _, err := w.Write(out.Bytes()); err != nil {
		return ltfmindex.WrapError(ltfmindex.IoFailure, "writing zero-copy index", err)
	}
	return nil
}

func padTo(buf *bytes.Buffer, target int) {
	for buf.Len() < target {
		buf.WriteByte(0)
	}
}

// writeNative writes v's low width bytes in the host's native byte
// order, so a later unsafe pointer cast over the same bytes reproduces
// v exactly. This is the one place this package does not go through
// encoding/binary: the zero-copy format's entire point is that the
// bytes on disk ARE the in-memory representation.
func writeNative(buf *bytes.Buffer, width int, v uint64) {
	if width == 4 {
		x := uint32(v)
		buf.Write(unsafe.Slice((*byte)(unsafe.Pointer(&x)), 4))
		return
	}
	buf.Write(unsafe.Slice((*byte)(unsafe.Pointer(&v)), 8))
}

// parseZeroCopy interprets data (a whole zero-copy file, however it
// was obtained) in place: only the header, the alphabet table, and the
// seed table (if any) are copied out; the four large numeric sections
// are sliced directly over data via unsafe.Slice. An unrecognized
// minor version does not fail the parse; it is reported to listener,
// if any is given, via EVT_UNSUPPORTED_MINOR_VERSION.
func parseZeroCopy[P ltfmindex.Position, W bwm.Word](data []byte, listener ...ltfmindex.Listener) (*ltfmindex.Index[P, W], error) {
	if len(data) < zeroCopyHeaderSize {
		return nil, ltfmindex.NewError(ltfmindex.CorruptFormat, "zero-copy index shorter than its header")
	}
	if data[0] != zeroCopyMagic0 || data[1] != zeroCopyMagic1 {
		return nil, ltfmindex.NewError(ltfmindex.CorruptFormat, "not a zero-copy-format index")
	}
	if data[2] != formatMajor {
		return nil, ltfmindex.NewError(ltfmindex.UnsupportedVersion, "unsupported zero-copy format major version")
	}
	warnUnsupportedMinor(listener, data[3])

	fields := make([]uint64, 18)
	for i := range fields {
		off := 8 + i*8
		fields[i] = binary.LittleEndian.Uint64(data[off : off+8])
	}
	h := zeroCopyHeader{
		positionWidth: fields[0], wordWidth: fields[1], alphabetSize: fields[2],
		textLen: fields[3], primaryIndex: fields[4],
		planeCount: fields[5], blockCount: fields[6],
		saRatio: fields[7], saSampleCount: fields[8],
		hasSeed: fields[9], seedK: fields[10], seedEntryCount: fields[11],
		blocksOffset: fields[12], checkpointsOffset: fields[13],
		samplesOffset: fields[14], cumulativeOffset: fields[15],
		seedOffset: fields[16], alphabetTableOffset: fields[17],
	}

	wantPositionWidth, wantWordWidth := headerWidths[P, W]()
	if int(h.positionWidth) != wantPositionWidth || int(h.wordWidth) != wantWordWidth {
		return nil, ltfmindex.NewError(ltfmindex.UnsupportedVersion, "P/W width mismatch against the saved index")
	}

	classCount := int(h.alphabetSize)
	var raw [256]byte
	copy(raw[:], data[h.alphabetTableOffset:h.alphabetTableOffset+256])
	table := alphabet.FromRaw(raw, classCount)

	blockCount := int(h.blockCount)
	planeCount := int(h.planeCount)
	var blockWords []W
	if blockCount*planeCount > 0 {
		blockWords = unsafe.Slice((*W)(unsafe.Pointer(&data[h.blocksOffset])), blockCount*planeCount)
	}
	blocks := make([]*bwm.Block[W], blockCount)
	for i := 0; i < blockCount; i++ {
		blocks[i] = bwm.PlanesFrom(blockWords[i*planeCount : (i+1)*planeCount])
	}

	rowCount := blockCount + 1
	var checkpointValues []P
	if rowCount*classCount > 0 {
		checkpointValues = unsafe.Slice((*P)(unsafe.Pointer(&data[h.checkpointsOffset])), rowCount*classCount)
	}
	checkpoints := make([][]P, rowCount)
	for i := 0; i < rowCount; i++ {
		checkpoints[i] = checkpointValues[i*classCount : (i+1)*classCount]
	}

	var samples []P
	if h.saSampleCount > 0 {
		samples = unsafe.Slice((*P)(unsafe.Pointer(&data[h.samplesOffset])), int(h.saSampleCount))
	}

	var cumulative []P
	if classCount > 0 {
		cumulative = unsafe.Slice((*P)(unsafe.Pointer(&data[h.cumulativeOffset])), classCount)
	}

	matrix := bwm.FromRaw[W, P](planeCount, blocks, checkpoints, P(h.textLen), P(h.primaryIndex))
	sa := suffixarray.FromSamples[P](samples, int(h.saRatio))
	counts := count.FromRaw[P](classCount, cumulative)

	var seed *count.SeedTable[P]
	if h.hasSeed != 0 {
		k := int(h.seedK)
		recordWidth := k + 2*wantPositionWidth
		intervals := make(map[string][2]P, h.seedEntryCount)
		base := int(h.seedOffset)
		for i := uint64(0); i < h.seedEntryCount; i++ {
			recOff := base + int(i)*recordWidth
			key := string(data[recOff : recOff+k])
			lv := leValue(data[recOff+k:], wantPositionWidth)
			rv := leValue(data[recOff+k+wantPositionWidth:], wantPositionWidth)
			intervals[key] = [2]P{P(lv), P(rv)}
		}
		seed = count.FromRawSeedTable[P](k, classCount, intervals)
	}

	return ltfmindex.FromComponents[P, W](table, matrix, sa, counts, seed, P(h.textLen), P(h.primaryIndex)), nil
}

func leValue(data []byte, width int) uint64 {
	if width == 4 {
		return uint64(binary.LittleEndian.Uint32(data[:4]))
	}
	return binary.LittleEndian.Uint64(data[:8])
}
