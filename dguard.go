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

// Package dguard defines the error record at the center of the defensive
// runtime: an immutable description of a single failure, classified by a
// kind from the taxonomy, carrying structured context, an optional cause
// chain, and an origin token.
//
// Records are constructed once, at the point of failure detection, and never
// mutated afterwards. Every WithX helper returns a copy, so records can be
// shared across goroutines and annotated functionally on the way up the
// stack. Because a cause is always a reference to an already-constructed
// record (or foreign error), cause cycles are structurally impossible.
//
// The surrounding subsystems build on this type: dguard/taxonomy matches
// records by ancestor kind, dguard/contract produces contract-violation
// records, dguard/outcome carries records through the dual result channel,
// and dguard/hook reports them.
package dguard

import (
	"errors"
	"fmt"

	"dirpx.dev/dguard/kind"
)

// Record is the canonical rich error value of the runtime.
//
// It carries:
//   - Kind: classification in the error taxonomy (required);
//   - Message: human-oriented description (what went wrong);
//   - Context: structured key/value payload populated at construction;
//   - Cause: wrapped underlying error for chains and unwrapping;
//   - Origin: opaque source-location token captured at the failure site.
//
// All mutation helpers (WithX) return a shallow copy, so Record instances
// can be safely shared and annotated in a functional style.
type Record struct {
	// Kind is the classification of the failure, e.g. kind.Validation,
	// kind.NotFound. Must be a normalized kind from dguard/kind; matching
	// by ancestor is done through a taxonomy registry.
	Kind kind.Kind

	// Message is a human-readable explanation. This is what should end up
	// in logs or in the "message" field of a transport error body.
	Message string

	// Context is an optional, shallow map of extra fields populated when
	// the record is built. Values should be strings, numbers, or bools so
	// they survive JSON/proto round-trips. The map is treated as immutable:
	// WithContext/WithContextMap always copy it.
	Context map[string]any

	// Cause holds the wrapped underlying error (if any). This is what
	// errors.Is / errors.As walk, and what makes chained translation of a
	// failure visible end to end.
	Cause error

	// Origin is the opaque source-location token of the construction site,
	// usually "pkg/file.go:line". Captured automatically by E; override
	// with WithOrigin when records are built on behalf of another layer.
	Origin Origin
}

// E is the constructor for Record.
//
// Usage:
//
//	return dguard.E(kind.ResourceUnavailable, "user store is down",
//	    dguard.WithContextOption("store", "pg-users"),
//	    dguard.WithCauseOption(err),
//	)
//
// It always returns a *new* Record, captures the caller's origin, and
// applies all provided options in order.
func E(k kind.Kind, msg string, opts ...Option) *Record {
	r := &Record{Kind: k, Message: msg, Origin: captureOrigin(2)}
	for _, opt := range opts {
		r = opt(r)
	}
	return r
}

// Ensure normalizes an arbitrary error into a *Record.
//
// If err already is (or wraps) a Record, that record is returned. Anything
// else is wrapped as kind.Unexpected with the original error attached as
// the cause, so foreign failures entering the runtime at a boundary keep
// their chain intact. Ensure(nil) returns nil.
func Ensure(err error) *Record {
	if err == nil {
		return nil
	}
	var r *Record
	if errors.As(err, &r) {
		return r
	}
	return &Record{
		Kind:    kind.Unexpected,
		Message: err.Error(),
		Cause:   err,
		Origin:  captureOrigin(2),
	}
}

// Error implements the built-in error interface.
//
// The format is:
//
//	<kind>: <message>
//
// which keeps records both human- and machine-scannable in logs.
func (r *Record) Error() string {
	if r == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %s", r.Kind, r.Message)
}

// Unwrap returns the underlying cause, enabling errors.Is / errors.As chains.
func (r *Record) Unwrap() error { return r.Cause }

// ErrorKind returns the kind identifier as a plain string. It exists so the
// apis-level interfaces can be satisfied without importing this package.
func (r *Record) ErrorKind() string { return string(r.Kind) }

// ErrorOrigin returns the origin token as a plain string.
func (r *Record) ErrorOrigin() string { return string(r.Origin) }

// ErrorContext returns a copy of the context map. The copy keeps the record
// immutable even if the caller mutates the returned map.
func (r *Record) ErrorContext() map[string]any {
	if len(r.Context) == 0 {
		return nil
	}
	m := make(map[string]any, len(r.Context))
	for k, v := range r.Context {
		m[k] = v
	}
	return m
}

// WithKind returns a shallow copy of r reclassified under the given kind.
// The original record is not modified. Reclassification is rare; prefer
// constructing with the right kind at the failure site.
func (r *Record) WithKind(k kind.Kind) *Record {
	cp := *r
	cp.Kind = k
	return &cp
}

// WithMessage returns a shallow copy of r with a replaced human message.
// Useful when the kind and context should survive but the wording must fit
// a different audience.
func (r *Record) WithMessage(msg string) *Record {
	cp := *r
	cp.Message = msg
	return &cp
}

// WithContext returns a shallow copy of r with one extra key/value in Context.
//
// The method always copies the map to preserve immutability. This prevents
// surprising modifications across goroutines or shared record values.
func (r *Record) WithContext(k string, v any) *Record {
	cp := *r
	// No context yet: create a new single-entry map.
	if len(cp.Context) == 0 {
		cp.Context = map[string]any{k: v}
		return &cp
	}
	// Copy existing context and add one more.
	m := make(map[string]any, len(cp.Context)+1)
	for k0, v0 := range cp.Context {
		m[k0] = v0
	}
	m[k] = v
	cp.Context = m
	return &cp
}

// WithContextMap returns a shallow copy of r with all provided kv merged
// into Context.
//
// If the Record already has context, both maps are copied and merged,
// with kv taking precedence on key conflicts.
func (r *Record) WithContextMap(kv map[string]any) *Record {
	if len(kv) == 0 {
		return r
	}
	cp := *r
	// No existing context: just copy kv.
	if len(cp.Context) == 0 {
		m := make(map[string]any, len(kv))
		for k, v := range kv {
			m[k] = v
		}
		cp.Context = m
		return &cp
	}
	// Merge existing + new.
	m := make(map[string]any, len(cp.Context)+len(kv))
	for k0, v0 := range cp.Context {
		m[k0] = v0
	}
	for k, v := range kv {
		m[k] = v
	}
	cp.Context = m
	return &cp
}

// WithCause returns a shallow copy of r with the given underlying cause
// attached. If err is nil, the original record is returned unchanged.
func (r *Record) WithCause(err error) *Record {
	if err == nil {
		return r
	}
	cp := *r
	cp.Cause = err
	return &cp
}

// WithOrigin returns a shallow copy of r with a replaced origin token.
// Layers that build records on behalf of user code use this to point the
// token at the user's call site instead of their own.
func (r *Record) WithOrigin(o Origin) *Record {
	cp := *r
	cp.Origin = o
	return &cp
}
