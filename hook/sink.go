/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package hook

import (
	"encoding/json"
	"io"
	"sync"

	"dirpx.dev/dguard/apis"
)

// WriterSink encodes each event as a single JSON line on a writer. A
// mutex serializes writes so events from concurrent calls never
// interleave mid-line.
type WriterSink struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewWriterSink returns a sink writing JSON lines to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{enc: json.NewEncoder(w)}
}

// Notify implements apis.Sink. Encoding errors are dropped; there is no
// further boundary to report them to.
func (s *WriterSink) Notify(ev apis.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.enc.Encode(ev)
}

// TallySink counts events by severity and by outcome class. It keeps no
// event payloads, only totals, which makes it cheap enough to leave
// attached in production.
type TallySink struct {
	mu         sync.Mutex
	total      int
	bySeverity map[apis.Severity]int
	byClass    map[apis.OutcomeClass]int
}

// NewTallySink returns an empty tally.
func NewTallySink() *TallySink {
	return &TallySink{
		bySeverity: make(map[apis.Severity]int),
		byClass:    make(map[apis.OutcomeClass]int),
	}
}

// Notify implements apis.Sink.
func (s *TallySink) Notify(ev apis.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total++
	s.bySeverity[ev.Severity]++
	s.byClass[ev.Class]++
}

// Total returns the number of events seen.
func (s *TallySink) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// BySeverity returns the number of events seen at sev.
func (s *TallySink) BySeverity(sev apis.Severity) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bySeverity[sev]
}

// ByClass returns the number of events seen with class c.
func (s *TallySink) ByClass(c apis.OutcomeClass) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byClass[c]
}
