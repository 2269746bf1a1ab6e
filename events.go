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

import (
	"fmt"
	"time"
)

// Build stages, reported to a Listener so a caller indexing a large
// text can show progress without this package importing a logging
// library of its own.
const (
	EVT_SUFFIX_ARRAY_START = 0
	EVT_SUFFIX_ARRAY_END   = 1
	EVT_RANK_DICT_START    = 2
	EVT_RANK_DICT_END      = 3
	EVT_SEED_TABLE_START   = 4
	EVT_SEED_TABLE_END     = 5
	// EVT_UNSUPPORTED_MINOR_VERSION is reported by the serialize package
	// when a loaded header names a minor format version newer than this
	// build understands. Size carries the unrecognized minor version
	// number. Unlike the Build-stage events, this one is not
	// chronologically ordered relative to them; it fires during Load or
	// OpenZeroCopy, never during Build.
	EVT_UNSUPPORTED_MINOR_VERSION = 6
)

// Event describes one stage transition during Build, or the
// EVT_UNSUPPORTED_MINOR_VERSION notice the serialize package reports
// while reading.
type Event struct {
	eventType int
	size      int64
	eventTime time.Time
}

// NewEvent stamps evtType with size (stage-dependent: text length for
// the suffix-array stage, class count for the rank-dictionary stage,
// k-mer size k for the seed-table stage) and the current time.
func NewEvent(evtType int, size int64) *Event {
	return &Event{eventType: evtType, size: size, eventTime: time.Now()}
}

func (this *Event) Type() int { return this.eventType }

func (this *Event) Size() int64 { return this.size }

func (this *Event) Time() time.Time { return this.eventTime }

func (this *Event) String() string {
	var t string

	switch this.eventType {
	case EVT_SUFFIX_ARRAY_START:
		t = "SUFFIX_ARRAY_START"
	case EVT_SUFFIX_ARRAY_END:
		t = "SUFFIX_ARRAY_END"
	case EVT_RANK_DICT_START:
		t = "RANK_DICT_START"
	case EVT_RANK_DICT_END:
		t = "RANK_DICT_END"
	case EVT_SEED_TABLE_START:
		t = "SEED_TABLE_START"
	case EVT_SEED_TABLE_END:
		t = "SEED_TABLE_END"
	case EVT_UNSUPPORTED_MINOR_VERSION:
		t = "UNSUPPORTED_MINOR_VERSION"
	default:
		t = "UNKNOWN"
	}

	return fmt.Sprintf("{ \"type\":\"%s\", \"size\":%d, \"time\":%d }", t, this.size,
		this.eventTime.UnixNano()/1000000)
}

// Listener receives Build stage-transition events and, when passed to
// serialize's Load or OpenZeroCopy, EVT_UNSUPPORTED_MINOR_VERSION.
type Listener interface {
	ProcessEvent(evt *Event)
}

func notify(listener Listener, evtType int, size int64) {
	if listener == nil {
		return
	}
	listener.ProcessEvent(NewEvent(evtType, size))
}
