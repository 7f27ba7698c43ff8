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

package mapper

import (
	"fmt"
	"strings"

	"dirpx.dev/dguard"
	"dirpx.dev/dguard/apis"
	"dirpx.dev/dguard/kind"
	"dirpx.dev/dguard/taxonomy"
	"google.golang.org/grpc/codes"
)

// New constructs an immutable apis.Mapper snapshot bound to a taxonomy
// registry.
//
// The resulting apis.Mapper is fully thread-safe and designed for long-lived
// reuse. Each build creates a self-contained mapper instance: no references
// to caller-owned maps remain. The registry itself is retained, not copied,
// so kinds registered after the mapper was built still resolve through their
// ancestors.
//
// Build process overview:
//
//  1. Seed the builder with library defaults (HTTP & gRPC).
//  2. Apply user-provided options (defaults, overrides).
//  3. Validate every configured entry: well-formed kinds, HTTP statuses in
//     [100, 599], gRPC codes in [0, 16].
//  4. Freeze all maps into immutable copies (fresh allocations).
//
// Errors returned from this function are kind.Configuration records
// describing the offending entry.
func New(reg *taxonomy.Registry, opts ...Option) (apis.Mapper, error) {
	// (0) Ancestor resolution walks the registry tree; without one the
	// mapper could only ever serve exact matches.
	if reg == nil {
		return nil, dguard.E(kind.Configuration, "mapper requires a taxonomy registry")
	}

	// (1) Start with an empty builder and seed it with package-level
	// defaults. Copy into builder-owned maps to prevent external mutation.
	b := newBuilder()
	for k, v := range defaultHTTP {
		b.httpDefaults[k] = v
	}
	for k, v := range defaultGRPC {
		// Keep values as int for internal uniformity;
		// convert to codes.Code when freezing the final snapshot.
		b.grpcDefaults[k] = int(v)
	}

	// (2) Apply user-supplied options (defaults, overrides).
	for _, opt := range opts {
		opt(b)
	}

	// (3) Validate everything the options touched. Library defaults pass
	// by construction but are re-checked here so a bad WithHTTPDefault on
	// a built-in kind is still caught.
	if err := validateHTTPMap("default", b.httpDefaults); err != nil {
		return nil, err
	}
	if err := validateHTTPMap("override", b.httpOverride); err != nil {
		return nil, err
	}
	if err := validateGRPCMap("default", b.grpcDefaults); err != nil {
		return nil, err
	}
	if err := validateGRPCMap("override", b.grpcOverride); err != nil {
		return nil, err
	}

	// (4) Freeze everything into a read-only snapshot.
	// Each map is freshly allocated.
	m := &mapper{
		reg:          reg,
		httpDefault:  freezeHTTPMap(b.httpDefaults),
		grpcDefault:  freezeGRPCMap(b.grpcDefaults),
		httpOverride: freezeHTTPMap(b.httpOverride),
		grpcOverride: freezeGRPCMap(b.grpcOverride),

		fallbackHTTP: b.fallbackHTTP,
		fallbackGRPC: b.fallbackGRPC,
	}

	return m, nil
}

// MustNew is like New but panics on configuration errors.
// Intended for wiring mappers from static tables at startup.
func MustNew(reg *taxonomy.Registry, opts ...Option) apis.Mapper {
	m, err := New(reg, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// mapper is an immutable mapper implementation that combines per-kind
// defaults, per-kind exact overrides, and taxonomy-based ancestor
// inheritance. Lookups are O(depth) in the taxonomy and safe for concurrent
// use once constructed.
type mapper struct {
	// reg is the taxonomy used for ancestor walks. Shared, not owned:
	// the registry guards itself and may grow after the mapper is built.
	reg *taxonomy.Registry

	// httpDefault holds the base HTTP status for a given kind.
	// Consulted for the kind itself and for each ancestor during the walk.
	httpDefault map[kind.Kind]int

	// grpcDefault holds the base gRPC status for a given kind.
	grpcDefault map[kind.Kind]codes.Code

	// httpOverride holds explicit HTTP statuses for specific kinds.
	// These take precedence over defaults at every hop of the walk.
	httpOverride map[kind.Kind]int

	// grpcOverride holds explicit gRPC statuses for specific kinds.
	grpcOverride map[kind.Kind]codes.Code

	// fallbackHTTP is used when neither the kind nor any ancestor carries
	// a mapping. Typically http.StatusInternalServerError.
	fallbackHTTP int

	// fallbackGRPC is used when neither the kind nor any ancestor carries
	// a mapping. Typically codes.Internal.
	fallbackGRPC codes.Code
}

// HTTPStatus resolves an HTTP status for the given kind.
//
// Resolution order (highest to lowest):
//  1. exact per-kind override (explicitly registered);
//  2. exact per-kind default (library or user overridden);
//  3. nearest mapped ancestor in the taxonomy, override before default
//     at each hop;
//  4. global fallback (500).
//
// An exact mapping always beats an inherited one, and a nearer ancestor
// always beats a farther one.
func (m *mapper) HTTPStatus(k kind.Kind) int {
	v, _, _ := m.resolveHTTP(k)
	return v
}

// GRPCStatus resolves a gRPC status for the given kind.
// Uses the same precedence as HTTPStatus, but returns gRPC codes.
func (m *mapper) GRPCStatus(k kind.Kind) codes.Code {
	v, _, _ := m.resolveGRPC(k)
	return v
}

// Status resolves both HTTP and gRPC for the same kind.
// This keeps HTTP/gRPC decisions consistent for a single logical failure.
func (m *mapper) Status(k kind.Kind) apis.Status {
	return apis.Status{
		HTTP: m.HTTPStatus(k),
		GRPC: m.GRPCStatus(k),
	}
}

// resolveHTTP walks the HTTP resolution tiers for k and reports the winning
// status together with its source. ancestor names the kind the mapping was
// inherited from and is empty unless source is "ancestor".
func (m *mapper) resolveHTTP(k kind.Kind) (status int, source string, ancestor kind.Kind) {
	// 1. Fast path: exact override for this kind.
	if v, ok := m.httpOverride[k]; ok {
		return v, "override", kind.Empty
	}

	// 2. Exact default for this kind.
	if v, ok := m.httpDefault[k]; ok {
		return v, "default", kind.Empty
	}

	// 3. Walk the taxonomy upwards, nearest ancestor first.
	// Path returns nil for unregistered kinds, which skips the walk.
	if path := m.reg.Path(k); len(path) > 1 {
		for _, anc := range path[1:] {
			if v, ok := m.httpOverride[anc]; ok {
				return v, "ancestor", anc
			}
			if v, ok := m.httpDefault[anc]; ok {
				return v, "ancestor", anc
			}
		}
	}

	// 4. Ultimate fallback: HTTP must never be zero.
	return m.fallbackHTTP, "fallback", kind.Empty
}

// resolveGRPC is the gRPC twin of resolveHTTP, with the same tier order.
func (m *mapper) resolveGRPC(k kind.Kind) (code codes.Code, source string, ancestor kind.Kind) {
	// 1. Exact override.
	if v, ok := m.grpcOverride[k]; ok {
		return v, "override", kind.Empty
	}

	// 2. Exact default.
	if v, ok := m.grpcDefault[k]; ok {
		return v, "default", kind.Empty
	}

	// 3. Nearest mapped ancestor, override before default at each hop.
	if path := m.reg.Path(k); len(path) > 1 {
		for _, anc := range path[1:] {
			if v, ok := m.grpcOverride[anc]; ok {
				return v, "ancestor", anc
			}
			if v, ok := m.grpcDefault[anc]; ok {
				return v, "ancestor", anc
			}
		}
	}

	// 4. Ultimate fallback.
	return m.fallbackGRPC, "fallback", kind.Empty
}

// Explain produces a textual trace of how the mapper resolved HTTP and gRPC
// statuses for a particular kind.
//
// This is primarily a diagnostic tool: it shows which tier matched
// (override, default, ancestor, or fallback) and, for ancestor matches,
// which kind in the taxonomy supplied the mapping.
//
// Example output:
//
//	kind="handshake_timeout"
//	http: source=ancestor kind="timeout" -> 504
//	grpc: source=ancestor kind="timeout" -> DEADLINEEXCEEDED(4)
//
// Notes:
//   - source ∈ {override | default | ancestor | fallback}
//   - the ancestor kind is printed as it is stored in the registry
func (m *mapper) Explain(k kind.Kind) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "kind=%q\n", k)

	// ---- HTTP ----
	switch src, httpLine := m.explainHTTP(k); src {
	case "override", "default", "ancestor", "fallback":
		_, _ = fmt.Fprintln(&b, httpLine)
	default:
		// Defensive: unexpected source.
		_, _ = fmt.Fprintln(&b, "http: source=unknown")
	}

	// ---- gRPC ----
	switch src, grpcLine := m.explainGRPC(k); src {
	case "override", "default", "ancestor", "fallback":
		_, _ = fmt.Fprintln(&b, grpcLine)
	default:
		_, _ = fmt.Fprintln(&b, "grpc: source=unknown")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// explainHTTP returns the origin ("override", "default", "ancestor",
// "fallback") and a formatted line describing how the HTTP status was chosen.
func (m *mapper) explainHTTP(k kind.Kind) (source, line string) {
	v, src, anc := m.resolveHTTP(k)
	switch src {
	case "override":
		return src, fmt.Sprintf("http: source=override -> %d", v)
	case "default":
		return src, fmt.Sprintf("http: source=default -> %d", v)
	case "ancestor":
		return src, fmt.Sprintf("http: source=ancestor kind=%q -> %d", anc, v)
	case "fallback":
		return src, fmt.Sprintf("http: source=fallback -> %d", v)
	}
	return src, ""
}

// explainGRPC returns the origin ("override", "default", "ancestor",
// "fallback") and a formatted line describing how the gRPC status was chosen.
func (m *mapper) explainGRPC(k kind.Kind) (source, line string) {
	v, src, anc := m.resolveGRPC(k)
	switch src {
	case "override":
		return src, fmt.Sprintf("grpc: source=override -> %s(%d)", strings.ToUpper(v.String()), int(v))
	case "default":
		return src, fmt.Sprintf("grpc: source=default -> %s(%d)", strings.ToUpper(v.String()), int(v))
	case "ancestor":
		return src, fmt.Sprintf("grpc: source=ancestor kind=%q -> %s(%d)", anc, strings.ToUpper(v.String()), int(v))
	case "fallback":
		return src, fmt.Sprintf("grpc: source=fallback -> %s(%d)", strings.ToUpper(v.String()), int(v))
	}
	return src, ""
}
