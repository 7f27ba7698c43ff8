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

// RecordView is a minimal, serializable representation of an error record.
//
// This is *not* the concrete record type used internally; it is the shape
// we are comfortable exposing over the wire or logging:
//
//	{kind, message, context, cause: recursively serialized or null, origin}
//
// Keeping it here (in apis) allows the HTTP adapter, the gRPC adapter, and
// observability sinks to share the same struct. Views are built by
// dguard/adapter; the cause chain is materialized into nested views at
// build time, so a view is self-contained and safe to hold after the
// originating record is gone.
type RecordView struct {
	// Kind is the canonical kind identifier, e.g. "validation",
	// "not_found", "contract_violation".
	//
	// Implementations SHOULD store only normalized, validated kinds here.
	Kind string `json:"kind"`

	// Message is an optional human-friendly message.
	Message string `json:"message,omitempty"`

	// Context carries the record's structured key/value payload. Values
	// are expected to be strings, numbers, or bools so they survive
	// JSON/proto round-trips.
	Context map[string]any `json:"context,omitempty"`

	// Cause is the recursively serialized cause, or nil when the chain
	// ends here. Foreign (non-record) causes appear as a view with an
	// empty kind and the error text as the message.
	Cause *RecordView `json:"cause,omitempty"`

	// Origin is the opaque source-location token of the record.
	Origin string `json:"origin,omitempty"`
}
