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

// Package outcome carries the result of one operation call as exactly
// one of three classes: Success(value), Sentinel(reason) or
// Failure(record).
//
// Operations are written once, returning an [Outcome]; how a result
// surfaces is then the caller's choice, made at the call site through
// one of two adapters:
//
//   - [Outcome.Optional] is for callers that treat absence and failure
//     alike. A failure degrades to the bare sentinel and its record is
//     withheld from the caller.
//   - [Outcome.Required] is for callers that cannot proceed on absence.
//     A sentinel escalates to a failure with a synthesized record,
//     [kind.NotFound] unless overridden.
//
// # The round trip is lossy
//
// Optional then Required does not restore the original outcome. A
// failure degraded by Optional loses its record, so re-escalating
// yields a fresh NotFound failure with no memory of the original kind,
// context or cause chain. This asymmetry is deliberate: the optional
// channel is an information boundary, and what it withholds from the
// caller stays withheld. The discarded record is still delivered to the
// observability hook at degrade time, which is the only place it
// survives.
//
// Both adapters notify the hook exactly once per call with the final,
// post-adaptation class. The pure conversions [Outcome.ToSentinel] and
// [Outcome.ToFailure] perform the same representation changes without
// notifying anything.
package outcome
