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

// Package taxonomy arranges dguard error kinds into a tree and answers
// ancestry queries against it.
//
// # Overview
//
// In dguard a failure is classified by a kind.Kind, and kinds form a tree:
// a single root, every other kind with exactly one parent. The tree is what
// lets callers handle whole families of failures at once ("anything under
// resource_unavailable") without language-level exception inheritance.
// Matching a record against an ancestor kind is an explicit lookup:
//
//	reg := taxonomy.Builtin()
//	if reg.Catches(err, kind.ResourceUnavailable) {
//	    // timeout, or any other registered descendant
//	}
//
// # Registration
//
// A Registry starts empty (NewRegistry) or pre-seeded with the built-in
// catalog (Builtin). Applications extend it during startup:
//
//	reg := taxonomy.Builtin()
//	quota := kind.MustParse("quota_exhausted")
//	if err := reg.Register(quota, kind.ResourceUnavailable); err != nil {
//	    // duplicate kind, unknown parent, ...
//	}
//
// The root must be registered exactly once, before everything else
// (Builtin has already done this). Registration failures come back as
// *dguard.Record values of kind.Configuration wrapping the package
// sentinels, so both errors.Is checks and record-based reporting work.
// There is no removal: records constructed earlier keep referring to their
// kinds, so the registry only grows.
//
// # Matching
//
// IsDescendant(k, ancestor) walks parent links from k toward the root and
// reports whether ancestor is on that path; the walk is O(depth). A kind is
// always its own descendant. Catches(err, ancestor) extracts the record
// from an arbitrarily wrapped error and applies the same walk to its kind.
//
// # Concurrency
//
// Registration is expected during a single-threaded startup phase; after
// that the registry is effectively read-only. All methods are nevertheless
// guarded by an RWMutex, so a misplaced late registration degrades to a
// blocked writer instead of a data race.
package taxonomy
