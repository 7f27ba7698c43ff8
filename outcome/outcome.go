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

package outcome

import (
	"fmt"

	"dirpx.dev/dguard"
	"dirpx.dev/dguard/apis"
	"dirpx.dev/dguard/kind"
)

// Outcome is the result of one operation call: exactly one of a success
// value, a sentinel (absence with an optional reason), or a failure
// record. Outcomes are immutable values; conversions return new ones.
//
// The zero Outcome is invalid. Use [Success], [Sentinel], [None] or
// [Failure].
type Outcome[T any] struct {
	class  apis.OutcomeClass
	value  T
	reason string
	err    *dguard.Record
}

// Success returns a successful outcome carrying v.
func Success[T any](v T) Outcome[T] {
	return Outcome[T]{class: apis.ClassSuccess, value: v}
}

// Sentinel returns an absence outcome. The reason is advisory and may
// be empty.
func Sentinel[T any](reason string) Outcome[T] {
	return Outcome[T]{class: apis.ClassSentinel, reason: reason}
}

// None returns the bare absence outcome, a sentinel with no reason.
func None[T any]() Outcome[T] {
	return Sentinel[T]("")
}

// Failure returns a failed outcome carrying r. A nil record is replaced
// with a synthesized Unexpected record so that a failure outcome always
// explains itself.
func Failure[T any](r *dguard.Record) Outcome[T] {
	if r == nil {
		r = dguard.E(kind.Unexpected, "failure constructed without a record")
	}
	return Outcome[T]{class: apis.ClassFailure, err: r}
}

// Class returns the outcome's class.
func (o Outcome[T]) Class() apis.OutcomeClass { return o.class }

// IsSuccess reports whether the outcome is a success.
func (o Outcome[T]) IsSuccess() bool { return o.class == apis.ClassSuccess }

// IsSentinel reports whether the outcome is a sentinel.
func (o Outcome[T]) IsSentinel() bool { return o.class == apis.ClassSentinel }

// IsFailure reports whether the outcome is a failure.
func (o Outcome[T]) IsFailure() bool { return o.class == apis.ClassFailure }

// Value returns the success value and whether the outcome is a success.
func (o Outcome[T]) Value() (T, bool) {
	return o.value, o.class == apis.ClassSuccess
}

// Reason returns the sentinel reason, empty unless the outcome is a
// sentinel constructed with one.
func (o Outcome[T]) Reason() string { return o.reason }

// Err returns the failure record, nil unless the outcome is a failure.
func (o Outcome[T]) Err() *dguard.Record { return o.err }

// ToSentinel degrades a failure into a sentinel whose reason is the
// failure's message. The record itself, including its cause chain, is
// dropped. Success and sentinel outcomes pass through unchanged.
func (o Outcome[T]) ToSentinel() Outcome[T] {
	if o.class != apis.ClassFailure {
		return o
	}
	return Sentinel[T](o.err.Message)
}

// ToFailure escalates a sentinel into a failure with a synthesized
// record. An empty k defaults to [kind.NotFound]; an empty msg defaults
// to the sentinel's reason, or to "required value absent" when there is
// none. The sentinel reason, when present, is kept in the record's
// context under "reason". Success and failure outcomes pass through
// unchanged.
func (o Outcome[T]) ToFailure(k kind.Kind, msg string) Outcome[T] {
	if o.class != apis.ClassSentinel {
		return o
	}
	if k == kind.Empty {
		k = kind.NotFound
	}
	if msg == "" {
		msg = o.reason
	}
	if msg == "" {
		msg = "required value absent"
	}
	opts := []dguard.Option{}
	if o.reason != "" {
		opts = append(opts, dguard.WithContextOption("reason", o.reason))
	}
	return Failure[T](dguard.E(k, msg, opts...))
}

// String renders the outcome for logs and test failures.
func (o Outcome[T]) String() string {
	switch o.class {
	case apis.ClassSuccess:
		return fmt.Sprintf("success(%v)", o.value)
	case apis.ClassSentinel:
		if o.reason == "" {
			return "sentinel"
		}
		return fmt.Sprintf("sentinel(%s)", o.reason)
	case apis.ClassFailure:
		return fmt.Sprintf("failure(%s)", o.err.Error())
	default:
		return "invalid"
	}
}
