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

// Descriptor is a flat, transport-friendly description of a classified
// failure together with its resolved transport statuses.
//
// This type intentionally uses plain strings (not the internal Kind value
// type) so that it can live in the public "apis" layer and be used by
// adapters and log pipelines without importing the concrete implementation.
//
// Unlike RecordView it is deliberately flat: no nested cause, one line per
// failure. That makes it the right shape for structured logging, tracing
// attributes, or message-bus propagation, where nesting is a liability.
type Descriptor struct {
	// Kind is the canonical kind identifier, e.g. "validation",
	// "not_found", "timeout".
	//
	// Implementations SHOULD store only normalized, validated kinds here.
	Kind string `json:"kind"`

	// HTTPStatus is an optional HTTP status resolved for this kind.
	// A value of 0 means "not resolved".
	HTTPStatus int `json:"http_status,omitempty"`

	// GRPCCode is an optional gRPC status code (as integer) resolved for
	// this kind. A value of 0 means "not resolved" (OK never describes a
	// failure).
	GRPCCode int `json:"grpc_code,omitempty"`

	// Message is an optional human-friendly message taken from the record.
	Message string `json:"message,omitempty"`

	// Origin is the opaque source-location token of the record.
	Origin string `json:"origin,omitempty"`
}
