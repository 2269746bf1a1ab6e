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
//go:build unix

package serialize

import (
	"os"

	"golang.org/x/sys/unix"

	ltfmindex "github.com/baku4/lt-fm-index-sub001"
	"github.com/baku4/lt-fm-index-sub001/bwm"
)

// mmapHandle backs an Index opened by OpenZeroCopy with a memory
// mapping instead of a read-into-RAM copy: closing it unmaps the
// region, after which the Index and everything reachable from it (the
// rank dictionary's block planes, the sampled suffix array, the count
// table) must not be touched again.
type mmapHandle struct {
	data []byte
}

func (this *mmapHandle) Close() error {
	if this.data == nil {
		return nil
	}
	err := unix.Munmap(this.data)
	this.data = nil
	return err
}

// OpenZeroCopy memory-maps path with unix.Mmap and parses it in place:
// no section is copied except the small alphabet table and, if
// present, the k-mer seed table. The returned Closer must be closed
// once the Index is no longer needed.
func OpenZeroCopy[P ltfmindex.Position, W bwm.Word](path string, listener ...ltfmindex.Listener) (*ltfmindex.Index[P, W], *mmapHandle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, ltfmindex.WrapError(ltfmindex.IoFailure, "opening zero-copy index file", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, ltfmindex.WrapError(ltfmindex.IoFailure, "stat-ing zero-copy index file", err)
	}
	if info.Size() == 0 {
		return nil, nil, ltfmindex.NewError(ltfmindex.CorruptFormat, "zero-copy index file is empty")
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(info.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, ltfmindex.WrapError(ltfmindex.IoFailure, "mmap-ing zero-copy index file", err)
	}

	idx, err := parseZeroCopy[P, W](data, listener...)
	if err != nil {
		unix.Munmap(data)
		return nil, nil, err
	}

	return idx, &mmapHandle{data: data}, nil
}
