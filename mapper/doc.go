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

// Package mapper provides deterministic, immutable mappings from logical
// dguard kinds (dirpx.dev/dguard/kind) to transport-level statuses for HTTP
// and gRPC, honoring the taxonomy tree.
//
// # Overview
//
// In dguard every failure is classified by a Kind (e.g. kind.Validation,
// kind.Timeout), and kinds form a tree maintained by a taxonomy.Registry.
// Transport layers (HTTP handlers, gRPC servers) need to turn a kind into
// concrete status codes. Package mapper does that in a way that is:
//
//   - immutable: a Mapper is a snapshot, safe for concurrent reuse;
//   - overridable: callers can change library defaults per kind;
//   - taxonomy-aware: a kind with no mapping of its own inherits from its
//     nearest mapped ancestor;
//   - dual: HTTP and gRPC are resolved with the same logic.
//
// # Resolution model
//
// A Mapper resolves statuses in the following order:
//
//  1. exact override for the kind;
//  2. exact default for the kind (library or user-adjusted);
//  3. nearest mapped ancestor in the taxonomy, override before default
//     at each hop;
//  4. global fallback (500 / codes.Internal).
//
// The walk uses the registry the mapper was built with, so an application
// kind such as "quota_exhausted" registered under kind.ResourceUnavailable
// automatically maps to 503 / UNAVAILABLE without any mapper configuration.
// An exact mapping always beats an inherited one, and a nearer ancestor
// beats a farther one.
//
// # Library defaults
//
// The package ships with defaults for the built-in kinds, mapping them to
// standard net/http constants and grpc/codes values (e.g. kind.Validation
// -> 400 / InvalidArgument, kind.NotFound -> 404 / NotFound, kind.Timeout
// -> 504 / DeadlineExceeded). These can be adjusted at build time.
//
// # Building a mapper
//
// A Mapper is created once and reused:
//
//	reg := taxonomy.Builtin()
//	reg.MustRegister(kind.Kind("quota_exhausted"), kind.ResourceUnavailable)
//
//	m, err := mapper.New(reg,
//	    mapper.WithHTTPOverride(kind.NotFound, http.StatusGone),
//	)
//	if err != nil {
//	    // malformed kind, status out of range, etc.
//	}
//
//	st := m.Status(kind.Kind("quota_exhausted"))
//	// st.HTTP == 503, st.GRPC == codes.Unavailable
//
// # Diagnostics
//
// For debugging and tests, Mapper.Explain returns a human-readable trace of
// how a particular kind was resolved, including which tier matched and, for
// ancestor matches, which kind in the taxonomy supplied the mapping.
//
// This is intended for inspection and logging, not for stable machine parsing.
//
// # Immutability
//
// All user-provided mappings are copied during New. After construction, the
// Mapper does not observe further changes to the caller's maps. The registry
// is the one shared dependency: it is consulted live (under its own lock),
// so kinds registered after the mapper was built resolve correctly.
package mapper
