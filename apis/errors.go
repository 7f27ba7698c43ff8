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

// KindedError represents an error that is classified into a well-defined,
// machine-readable error *kind*.
//
// A kind denotes a category in the dguard taxonomy, such as:
//   - "validation": caller input violated a requirement,
//   - "not_found": a required value was absent,
//   - "contract_violation": a pre/post/invariant check failed,
//   - "unexpected": a crash with no assigned kind.
//
// Kinds are stable, enumerable, and arranged in a tree by the taxonomy
// registry. They are the primary value that transport adapters (HTTP, gRPC)
// use to decide which status to return, and that handler code uses to catch
// whole families of failures by ancestor.
//
// Implementations are expected to return a *canonicalized* kind string,
// normalized to the format enforced by the dguard/kind package (lowercase,
// underscores, length limits). Boundaries should treat unknown or empty
// kinds as internal/server errors.
type KindedError interface {
	error

	// ErrorKind returns the machine-readable kind identifier.
	//
	// The returned value MUST be non-empty and MUST already be normalized
	// according to the rules of dguard/kind. Callers should not try to
	// "fix" or "guess" the value here; if it is invalid, it should be
	// handled as an internal error at the boundary.
	ErrorKind() string
}

// ContextualError represents an error that exposes structured context
// captured at construction time. This is especially useful for validation
// and contract scenarios where the failing field, limit, or contract name
// needs to reach logs or API clients.
//
// Implementations SHOULD return a map that the caller may freely inspect or
// mutate without affecting the error, i.e. a copy. Returning nil is allowed
// and simply means "no extra context".
type ContextualError interface {
	error

	// ErrorContext returns structured context of the error. May return nil.
	ErrorContext() map[string]any
}

// OriginatedError represents an error that knows where it was constructed.
//
// The origin is an opaque source-location token ("pkg/file.go:line" by
// convention). It names the construction site, not the failure site; the
// cause chain covers the rest.
type OriginatedError interface {
	error

	// ErrorOrigin returns the opaque origin token. May be empty.
	ErrorOrigin() string
}

// CausedError represents an error that exposes its underlying cause through
// the standard unwrapping convention.
//
// Having this interface in apis keeps the contract explicit at boundaries
// that walk chains without wanting to depend on a concrete record type.
//
// Implementations SHOULD return the direct, immediate cause of the error,
// or nil when there is none.
type CausedError interface {
	error

	// Unwrap returns the underlying error that triggered this one, if any.
	Unwrap() error
}
