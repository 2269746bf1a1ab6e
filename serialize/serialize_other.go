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
//go:build !unix

package serialize

import (
	"os"

	ltfmindex "github.com/baku4/lt-fm-index-sub001"
	"github.com/baku4/lt-fm-index-sub001/bwm"
)

// bufferHandle backs an Index opened by OpenZeroCopy on platforms
// without a mmap syscall this package wires up: the whole file is read
// into a single buffer instead, so the section casts in parseZeroCopy
// still avoid a second, per-field copy, at the cost of the initial
// full read mmap would have avoided.
type bufferHandle struct {
	data []byte
}

func (this *bufferHandle) Close() error {
	this.data = nil
	return nil
}

// OpenZeroCopy reads path fully into memory and parses it in place.
// See the unix build's OpenZeroCopy for the mmap-backed variant.
func OpenZeroCopy[P ltfmindex.Position, W bwm.Word](path string, listener ...ltfmindex.Listener) (*ltfmindex.Index[P, W], *bufferHandle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, ltfmindex.WrapError(ltfmindex.IoFailure, "reading zero-copy index file", err)
	}
	if len(data) == 0 {
		return nil, nil, ltfmindex.NewError(ltfmindex.CorruptFormat, "zero-copy index file is empty")
	}

	idx, err := parseZeroCopy[P, W](data, listener...)
	if err != nil {
		return nil, nil, err
	}

	return idx, &bufferHandle{data: data}, nil
}
