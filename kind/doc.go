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

// Package kind provides parsing, normalization and validation for dguard
// error-kind identifiers.
//
// A "kind" is the machine-readable classification of a failure, such as
// "validation", "not_found", "contract_violation" or "unexpected". Kinds are
// meant to be:
//
//   - short and stable;
//   - lowercased;
//   - underscore-separated (not dash-separated);
//   - suitable for use in JSON/proto payloads and for lookup in the taxonomy
//     registry.
//
// Kinds form a tree: each kind except a single root has exactly one parent.
// The tree itself lives in dguard/taxonomy; this package defines only the
// identifier format and the built-in catalog of kind constants.
//
// IMPORTANT: Empty kinds ("") are NOT allowed on records. Every record MUST
// carry a non-empty kind.
package kind
