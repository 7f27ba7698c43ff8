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

package kind

// Built-in error kinds
//
// These kinds form the library's default taxonomy (seeded by
// taxonomy.Builtin). They describe broad, transport-agnostic failure
// classes; applications extend the tree by registering their own kinds
// under one of these.
const (
	// Fault is the root of the built-in taxonomy. Every other kind is a
	// descendant of Fault, so matching against it catches everything.
	// Records should normally carry a more specific kind; use Fault only
	// when nothing else applies and attach the technical cause.
	//
	// Transport mapping is boundary-specific.
	// Can be mapped to an HTTP 500.
	Fault Kind = "fault"

	// Validation indicates that caller-supplied input violates a structural
	// or semantic requirement: wrong range, bad cross-field consistency,
	// missing required value.
	// Child of Fault in the built-in taxonomy.
	//
	// Transport mapping is boundary-specific.
	// Can be mapped to an HTTP 400.
	Validation Kind = "validation"

	// Malformed indicates that input could not even be parsed: broken
	// encoding, truncated payload, syntactically invalid document.
	// Child of Validation, so callers catching Validation also catch it.
	//
	// Transport mapping is boundary-specific.
	// Can be mapped to an HTTP 400.
	Malformed Kind = "malformed"

	// ContractViolation indicates that a precondition, postcondition, or
	// invariant registered with the contract engine failed. The record
	// context carries the contract name and phase.
	// These are programming errors (caller misuse or a broken guarantee),
	// not transient conditions; they should surface loudly.
	// Child of Fault in the built-in taxonomy.
	//
	// Transport mapping is boundary-specific.
	// Can be mapped to an HTTP 500.
	ContractViolation Kind = "contract_violation"

	// ResourceUnavailable indicates that an external dependency is down or
	// unreachable: database outage, network partition, dependency refusing
	// work. The underlying technical cause should be attached.
	// Child of Fault in the built-in taxonomy.
	//
	// Transport mapping is boundary-specific.
	// Can be mapped to an HTTP 503.
	ResourceUnavailable Kind = "resource_unavailable"

	// Timeout indicates that an operation exceeded its time budget. The
	// cause is often context.DeadlineExceeded or a driver timeout.
	// Child of ResourceUnavailable, so unavailability handlers catch it.
	//
	// Transport mapping is boundary-specific.
	// Can be mapped to an HTTP 504.
	Timeout Kind = "timeout"

	// NotFound indicates that an expected-absence result was escalated to a
	// hard failure: the caller required a value and it was not there. The
	// required-channel adapter synthesizes records of this kind from
	// sentinels.
	// Child of Fault in the built-in taxonomy.
	//
	// Transport mapping is boundary-specific.
	// Can be mapped to an HTTP 404.
	NotFound Kind = "not_found"

	// Unexpected indicates a crash with no assigned kind: a recovered panic
	// from an operation body, or a foreign error normalized at a boundary
	// by Ensure. The original failure is always retained as the cause.
	// Child of Fault in the built-in taxonomy.
	//
	// Transport mapping is boundary-specific.
	// Can be mapped to an HTTP 500.
	Unexpected Kind = "unexpected"

	// Configuration indicates misuse of the runtime itself: duplicate kind
	// registration, unknown parent, mode changed after checked calls began,
	// unparseable config file. These surface at startup, before traffic.
	// Child of Fault in the built-in taxonomy.
	//
	// Transport mapping is boundary-specific.
	// Can be mapped to an HTTP 500.
	Configuration Kind = "configuration"
)
