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
	"time"

	"dirpx.dev/dguard"
	"dirpx.dev/dguard/adapter"
	"dirpx.dev/dguard/apis"
)

// Hook fans structured events out to a set of sinks. It is the single
// reporting boundary of the runtime: contract engines, outcome adapters
// and batch runs emit through a Hook and never log on their own.
//
// A nil *Hook is valid and silent, so callers can hold one without
// checking. Sinks are fixed at construction; the Hook itself carries no
// other state and is safe for concurrent use.
type Hook struct {
	sinks []apis.Sink
	now   func() time.Time
}

// Option configures a Hook at construction time.
type Option func(*Hook)

// WithSink appends a sink. Sinks receive events in the order they were
// added.
func WithSink(s apis.Sink) Option {
	return func(h *Hook) {
		if s != nil {
			h.sinks = append(h.sinks, s)
		}
	}
}

// WithClock overrides the event timestamp source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(h *Hook) {
		if now != nil {
			h.now = now
		}
	}
}

// New returns a Hook emitting to the given sinks. With no sinks the Hook
// accepts events and discards them.
func New(opts ...Option) *Hook {
	h := &Hook{now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Observe reports the final class of a call outcome. The severity is
// fixed by policy: sentinels are expected absences and report as info,
// failures report as error. Success is below the reporting floor and is
// discarded; the hook reports deviations, not traffic.
//
// The record may be nil (sentinel outcomes carry none).
func (h *Hook) Observe(class apis.OutcomeClass, r *dguard.Record) {
	switch class {
	case apis.ClassSentinel:
		h.Emit(apis.SeverityInfo, class, r)
	case apis.ClassFailure:
		h.Emit(apis.SeverityError, class, r)
	}
}

// Violation reports a contract violation. Violations always report as
// error regardless of how the caller later adapts the outcome.
func (h *Hook) Violation(r *dguard.Record) {
	h.Emit(apis.SeverityError, apis.ClassFailure, r)
}

// Crash reports a predicate that raised instead of returning a verdict.
// A crashing predicate means the checks themselves are broken, which is
// worse than any outcome they could have produced, so it reports as
// critical.
func (h *Hook) Crash(r *dguard.Record) {
	h.Emit(apis.SeverityCritical, apis.ClassFailure, r)
}

// Emit builds an event and delivers it to every sink. A panicking sink
// is recovered and its event dropped; reporting must never destabilize
// the call path it reports on.
func (h *Hook) Emit(sev apis.Severity, class apis.OutcomeClass, r *dguard.Record) {
	if h == nil || len(h.sinks) == 0 {
		return
	}
	ev := apis.Event{
		Severity: sev,
		Class:    class,
		Record:   adapter.ToView(r),
		Time:     h.now(),
	}
	for _, s := range h.sinks {
		deliver(s, ev)
	}
}

func deliver(s apis.Sink, ev apis.Event) {
	defer func() {
		_ = recover()
	}()
	s.Notify(ev)
}
