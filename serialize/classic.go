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
	"io"

	ltfmindex "github.com/baku4/lt-fm-index-sub001"
	"github.com/baku4/lt-fm-index-sub001/alphabet"
	"github.com/baku4/lt-fm-index-sub001/bwm"
	"github.com/baku4/lt-fm-index-sub001/count"
	"github.com/baku4/lt-fm-index-sub001/suffixarray"
)

// Save writes idx to w in the classic length-prefixed format: a small
// fixed header (magic, format version, body length), a single
// checksummed body that opens with the P/W widths and then holds every
// component in turn, and an XXHash64
// footer over the body so Load can detect truncation or bit rot
// without a caller-supplied checksum of their own.
func Save[P ltfmindex.Position, W bwm.Word](w io.Writer, idx *ltfmindex.Index[P, W]) error {
	positionWidth, wordWidth := headerWidths[P, W]()

	var body bytes.Buffer
	body.WriteByte(byte(positionWidth))
	body.WriteByte(byte(wordWidth))

	table := idx.Table()
	putWidth(&body, 4, uint64(table.Size))
	raw := table.Raw()
	body.Write(raw[:])

	putWidth(&body, positionWidth, uint64(idx.Len()))
	putWidth(&body, positionWidth, uint64(idx.PrimaryIndex()))

	writeMatrix(&body, positionWidth, wordWidth, idx.Matrix())
	writeSuffixArray(&body, positionWidth, idx.SuffixArray())
	writeCounts(&body, positionWidth, idx.Counts())
	writeSeed(&body, positionWidth, idx.Seed())

	bodyBytes := body.Bytes()
	checksum := xxHash64(0, bodyBytes)

	if _, err := io.WriteString(w, classicMagic); err != nil {
		return ltfmindex.WrapError(ltfmindex.IoFailure, "writing classic magic", err)
	}
	if _, err := w.Write([]byte{formatMajor, formatMinor}); err != nil {
		return ltfmindex.WrapError(ltfmindex.IoFailure, "writing format version", err)
	}

	var lenBuf bytes.Buffer
	putWidth(&lenBuf, 8, uint64(len(bodyBytes)))
	if _, err := w.Write(lenBuf.Bytes()); err != nil {
		return ltfmindex.WrapError(ltfmindex.IoFailure, "writing body length", err)
	}
	if _, err := w.Write(bodyBytes); err != nil {
		return ltfmindex.WrapError(ltfmindex.IoFailure, "writing body", err)
	}

	var sumBuf bytes.Buffer
	putWidth(&sumBuf, 8, checksum)
	if _, err := w.Write(sumBuf.Bytes()); err != nil {
		return ltfmindex.WrapError(ltfmindex.IoFailure, "writing checksum footer", err)
	}

	return nil
}

// Load reads back an Index previously written by Save. It refuses
// bytes written by SaveZeroCopy (wrong magic), a future incompatible
// major format version, a P/W width mismatch against the caller's type
// parameters, and a body that fails its checksum. An unrecognized
// minor version does not fail the read; it is reported to listener, if
// any is given, via EVT_UNSUPPORTED_MINOR_VERSION.
func Load[P ltfmindex.Position, W bwm.Word](r io.Reader, listener ...ltfmindex.Listener) (*ltfmindex.Index[P, W], error) {
	magic := make([]byte, 4)
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, ltfmindex.WrapError(ltfmindex.IoFailure, "reading magic", err)
	}
	if string(magic) != classicMagic {
		return nil, ltfmindex.NewError(ltfmindex.CorruptFormat, "not a classic-format index")
	}

	version := make([]byte, 2)
	if _, err := io.ReadFull(r, version); err != nil {
		return nil, ltfmindex.WrapError(ltfmindex.IoFailure, "reading format version", err)
	}
	if version[0] != formatMajor {
		return nil, ltfmindex.NewError(ltfmindex.UnsupportedVersion, "unsupported classic format major version")
	}
	warnUnsupportedMinor(listener, version[1])

	bodyLen, err := getWidth(r, 8)
	if err != nil {
		return nil, ltfmindex.WrapError(ltfmindex.IoFailure, "reading body length", err)
	}

	body := make([]byte, bodyLen)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, ltfmindex.WrapError(ltfmindex.IoFailure, "reading body", err)
	}

	checksum, err := getWidth(r, 8)
	if err != nil {
		return nil, ltfmindex.WrapError(ltfmindex.IoFailure, "reading checksum footer", err)
	}
	if xxHash64(0, body) != checksum {
		return nil, ltfmindex.NewError(ltfmindex.CorruptFormat, "checksum mismatch")
	}

	br := bytes.NewReader(body)

	wantPositionWidth, wantWordWidth := headerWidths[P, W]()
	positionWidthByte, err := br.ReadByte()
	if err != nil {
		return nil, ltfmindex.WrapError(ltfmindex.IoFailure, "reading position width", err)
	}
	wordWidthByte, err := br.ReadByte()
	if err != nil {
		return nil, ltfmindex.WrapError(ltfmindex.IoFailure, "reading word width", err)
	}
	if int(positionWidthByte) != wantPositionWidth || int(wordWidthByte) != wantWordWidth {
		return nil, ltfmindex.NewError(ltfmindex.UnsupportedVersion, "P/W width mismatch against the saved index")
	}

	classCount64, err := getWidth(br, 4)
	if err != nil {
		return nil, ltfmindex.WrapError(ltfmindex.IoFailure, "reading alphabet size", err)
	}
	classCount := int(classCount64)

	var raw [256]byte
	if _, err := io.ReadFull(br, raw[:]); err != nil {
		return nil, ltfmindex.WrapError(ltfmindex.IoFailure, "reading alphabet table", err)
	}
	table := alphabet.FromRaw(raw, classCount)

	textLen64, err := getWidth(br, wantPositionWidth)
	if err != nil {
		return nil, ltfmindex.WrapError(ltfmindex.IoFailure, "reading text length", err)
	}
	primaryIndex64, err := getWidth(br, wantPositionWidth)
	if err != nil {
		return nil, ltfmindex.WrapError(ltfmindex.IoFailure, "reading primary index", err)
	}

	matrix, err := readMatrix[W, P](br, wantPositionWidth, wantWordWidth, classCount, P(textLen64), P(primaryIndex64))
	if err != nil {
		return nil, err
	}
	sa, err := readSuffixArray[P](br, wantPositionWidth)
	if err != nil {
		return nil, err
	}
	counts, err := readCounts[P](br, wantPositionWidth, classCount)
	if err != nil {
		return nil, err
	}
	seed, err := readSeed[P](br, wantPositionWidth)
	if err != nil {
		return nil, err
	}

	return ltfmindex.FromComponents[P, W](table, matrix, sa, counts, seed, P(textLen64), P(primaryIndex64)), nil
}

func writeMatrix[W bwm.Word, P ltfmindex.Position](body *bytes.Buffer, positionWidth, wordWidth int, matrix *bwm.Matrix[W, P]) {
	blocks := matrix.Blocks()
	checkpoints := matrix.RawCheckpoints()

	putWidth(body, 4, uint64(matrix.PlaneCount()))
	putWidth(body, 4, uint64(len(blocks)))

	for _, block := range blocks {
		for _, plane := range block.Planes() {
			putWidth(body, wordWidth, uint64(plane))
		}
	}

	putWidth(body, 4, uint64(len(checkpoints)))
	for _, row := range checkpoints {
		for _, v := range row {
			putWidth(body, positionWidth, uint64(v))
		}
	}
}

func readMatrix[W bwm.Word, P ltfmindex.Position](r io.Reader, positionWidth, wordWidth, classCount int, length, primaryIndex P) (*bwm.Matrix[W, P], error) {
	planeCount64, err := getWidth(r, 4)
	if err != nil {
		return nil, ltfmindex.WrapError(ltfmindex.IoFailure, "reading plane count", err)
	}
	planeCount := int(planeCount64)

	blockCount64, err := getWidth(r, 4)
	if err != nil {
		return nil, ltfmindex.WrapError(ltfmindex.IoFailure, "reading block count", err)
	}
	blockCount := int(blockCount64)

	blocks := make([]*bwm.Block[W], blockCount)
	for i := 0; i < blockCount; i++ {
		planes := make([]W, planeCount)
		for p := 0; p < planeCount; p++ {
			v, err := getWidth(r, wordWidth)
			if err != nil {
				return nil, ltfmindex.WrapError(ltfmindex.IoFailure, "reading block plane", err)
			}
			planes[p] = W(v)
		}
		blocks[i] = bwm.PlanesFrom(planes)
	}

	rowCount64, err := getWidth(r, 4)
	if err != nil {
		return nil, ltfmindex.WrapError(ltfmindex.IoFailure, "reading checkpoint row count", err)
	}
	rowCount := int(rowCount64)

	checkpoints := make([][]P, rowCount)
	for i := 0; i < rowCount; i++ {
		row := make([]P, classCount)
		for c := 0; c < classCount; c++ {
			v, err := getWidth(r, positionWidth)
			if err != nil {
				return nil, ltfmindex.WrapError(ltfmindex.IoFailure, "reading checkpoint value", err)
			}
			row[c] = P(v)
		}
		checkpoints[i] = row
	}

	return bwm.FromRaw[W, P](planeCount, blocks, checkpoints, length, primaryIndex), nil
}

func writeSuffixArray[P ltfmindex.Position](body *bytes.Buffer, positionWidth int, sa *suffixarray.Array[P]) {
	samples := sa.Samples()
	putWidth(body, 4, uint64(sa.Ratio()))
	putWidth(body, 4, uint64(len(samples)))
	for _, v := range samples {
		putWidth(body, positionWidth, uint64(v))
	}
}

func readSuffixArray[P ltfmindex.Position](r io.Reader, positionWidth int) (*suffixarray.Array[P], error) {
	ratio64, err := getWidth(r, 4)
	if err != nil {
		return nil, ltfmindex.WrapError(ltfmindex.IoFailure, "reading sampling ratio", err)
	}
	sampleCount64, err := getWidth(r, 4)
	if err != nil {
		return nil, ltfmindex.WrapError(ltfmindex.IoFailure, "reading sample count", err)
	}

	samples := make([]P, sampleCount64)
	for i := range samples {
		v, err := getWidth(r, positionWidth)
		if err != nil {
			return nil, ltfmindex.WrapError(ltfmindex.IoFailure, "reading sample", err)
		}
		samples[i] = P(v)
	}

	return suffixarray.FromSamples[P](samples, int(ratio64)), nil
}

func writeCounts[P ltfmindex.Position](body *bytes.Buffer, positionWidth int, counts *count.Table[P]) {
	cumulative := counts.Cumulative()
	putWidth(body, 4, uint64(counts.ClassCount()))
	for _, v := range cumulative {
		putWidth(body, positionWidth, uint64(v))
	}
}

func readCounts[P ltfmindex.Position](r io.Reader, positionWidth, expectedClassCount int) (*count.Table[P], error) {
	classCount64, err := getWidth(r, 4)
	if err != nil {
		return nil, ltfmindex.WrapError(ltfmindex.IoFailure, "reading count class count", err)
	}
	classCount := int(classCount64)
	if classCount != expectedClassCount {
		return nil, ltfmindex.NewError(ltfmindex.CorruptFormat, "count table class count disagrees with the alphabet table")
	}

	cumulative := make([]P, classCount)
	for i := range cumulative {
		v, err := getWidth(r, positionWidth)
		if err != nil {
			return nil, ltfmindex.WrapError(ltfmindex.IoFailure, "reading cumulative count", err)
		}
		cumulative[i] = P(v)
	}

	return count.FromRaw[P](classCount, cumulative), nil
}

func writeSeed[P ltfmindex.Position](body *bytes.Buffer, positionWidth int, seed *count.SeedTable[P]) {
	if seed == nil {
		body.WriteByte(0)
		return
	}

	body.WriteByte(1)
	intervals := seed.Intervals()
	putWidth(body, 4, uint64(seed.K()))
	putWidth(body, 4, uint64(seed.ClassCount()))
	putWidth(body, 4, uint64(len(intervals)))

	for key, bounds := range intervals {
		body.WriteString(key)
		putWidth(body, positionWidth, uint64(bounds[0]))
		putWidth(body, positionWidth, uint64(bounds[1]))
	}
}

func readSeed[P ltfmindex.Position](r io.Reader, positionWidth int) (*count.SeedTable[P], error) {
	present := make([]byte, 1)
	if _, err := io.ReadFull(r, present); err != nil {
		return nil, ltfmindex.WrapError(ltfmindex.IoFailure, "reading seed presence flag", err)
	}
	if present[0] == 0 {
		return nil, nil
	}

	k64, err := getWidth(r, 4)
	if err != nil {
		return nil, ltfmindex.WrapError(ltfmindex.IoFailure, "reading seed k", err)
	}
	classCount64, err := getWidth(r, 4)
	if err != nil {
		return nil, ltfmindex.WrapError(ltfmindex.IoFailure, "reading seed class count", err)
	}
	entryCount64, err := getWidth(r, 4)
	if err != nil {
		return nil, ltfmindex.WrapError(ltfmindex.IoFailure, "reading seed entry count", err)
	}

	k := int(k64)
	intervals := make(map[string][2]P, entryCount64)
	for i := uint64(0); i < entryCount64; i++ {
		key := make([]byte, k)
		if _, err := io.ReadFull(r, key); err != nil {
			return nil, ltfmindex.WrapError(ltfmindex.IoFailure, "reading seed key", err)
		}
		l, err := getWidth(r, positionWidth)
		if err != nil {
			return nil, ltfmindex.WrapError(ltfmindex.IoFailure, "reading seed interval left bound", err)
		}
		rv, err := getWidth(r, positionWidth)
		if err != nil {
			return nil, ltfmindex.WrapError(ltfmindex.IoFailure, "reading seed interval right bound", err)
		}
		intervals[string(key)] = [2]P{P(l), P(rv)}
	}

	return count.FromRawSeedTable[P](k, int(classCount64), intervals), nil
}
