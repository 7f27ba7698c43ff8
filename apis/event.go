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

package apis

import "time"

// Severity grades an observability event. The scale is fixed and small so
// that sinks can switch on it without defensive defaults.
type Severity string

// Severity levels, lowest to highest.
const (
	// SeverityDebug is for developer-facing noise; no built-in policy
	// emits it, but custom emitters may.
	SeverityDebug Severity = "debug"

	// SeverityInfo marks expected, unremarkable absence: a sentinel on the
	// optional channel.
	SeverityInfo Severity = "info"

	// SeverityWarning marks conditions worth attention that failed nothing
	// by themselves. Reserved for custom emitters; the fixed policy does
	// not produce it.
	SeverityWarning Severity = "warning"

	// SeverityError marks failures: contract violations and unclassified
	// failure outcomes.
	SeverityError Severity = "error"

	// SeverityCritical marks crashes of the checking machinery itself:
	// a contract predicate that panicked.
	SeverityCritical Severity = "critical"
)

// String returns the severity as a plain string.
func (s Severity) String() string { return string(s) }

// OutcomeClass names which variant of an outcome a call ended in. Exactly
// one class applies to any call result.
type OutcomeClass string

// Outcome classes.
const (
	// ClassSuccess: the operation produced a value.
	ClassSuccess OutcomeClass = "success"

	// ClassSentinel: the operation signalled absence, not failure.
	ClassSentinel OutcomeClass = "sentinel"

	// ClassFailure: the operation failed and carries an error record.
	ClassFailure OutcomeClass = "failure"
)

// String returns the class as a plain string.
func (c OutcomeClass) String() string { return string(c) }

// Event is the structured notification delivered to observability sinks.
//
// One event describes one observed call result or contract violation. The
// record view, when present, is self-contained (see RecordView), so sinks
// may retain events after the call path has moved on.
type Event struct {
	// Severity is assigned by the hook's fixed policy, never by the
	// producing call site.
	Severity Severity `json:"severity"`

	// Class is the final, post-adaptation outcome class the event
	// describes.
	Class OutcomeClass `json:"class"`

	// Record is the serialized error record for failure-carrying events;
	// nil for sentinel events.
	Record *RecordView `json:"record,omitempty"`

	// Time is the moment the hook accepted the event, from the hook's
	// clock.
	Time time.Time `json:"time"`
}

// Sink receives observability events from a hook.
//
// Implementations MUST NOT panic; a panicking sink is recovered and its
// event dropped, so a broken sink silently loses data rather than
// destabilizing the call path. Notify may be called from any goroutine that
// drives checked operations, so implementations must be safe for concurrent
// use.
type Sink interface {
	// Notify delivers one event. Errors have nowhere to go: observability
	// is strictly fire-and-forget from the producer's point of view.
	Notify(Event)
}
