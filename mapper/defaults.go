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
	"net/http"

	"dirpx.dev/dguard/kind"
	"google.golang.org/grpc/codes"
)

// defaultHTTP defines the library's built-in HTTP mappings for the built-in
// error kinds. These are only defaults: callers are expected to wrap or
// override them at the boundary where HTTP is actually produced (REST
// gateway, HTTP handler, etc.).
//
// Kinds registered by applications have no entry here; they resolve through
// their nearest mapped ancestor in the taxonomy.
var defaultHTTP = map[kind.Kind]int{
	// 5xx: the service broke its own guarantees or lost a dependency.
	kind.Fault:             http.StatusInternalServerError, // Root kind; generic failure, do not expose internal details.
	kind.ContractViolation: http.StatusInternalServerError, // A pre/post/invariant check failed; the server is at fault, not the caller.
	kind.Unexpected:        http.StatusInternalServerError, // Crash or unclassified failure.
	kind.Configuration:     http.StatusInternalServerError, // Startup or wiring mistake surfaced at request time.

	kind.ResourceUnavailable: http.StatusServiceUnavailable, // External dependency down or unreachable.
	kind.Timeout:             http.StatusGatewayTimeout,     // Operation exceeded the time budget.

	// 4xx: caller-side issues.
	kind.Validation: http.StatusBadRequest, // Bad caller input.
	kind.Malformed:  http.StatusBadRequest, // Input that could not even be parsed.
	kind.NotFound:   http.StatusNotFound,   // Expected absence escalated to required.
}

// defaultGRPC defines the library's built-in gRPC mappings for the built-in
// error kinds. The values align with canonical gRPC status codes while
// preserving the runtime's semantics; callers may override them at the
// transport edge if a different policy is required.
var defaultGRPC = map[kind.Kind]codes.Code{
	// Server-side / unexpected.
	kind.Fault:             codes.Internal,
	kind.ContractViolation: codes.Internal, // Broken guarantee is an internal defect from the caller's view.
	kind.Unexpected:        codes.Internal,
	kind.Configuration:     codes.Internal,

	// Input.
	kind.Validation: codes.InvalidArgument,
	kind.Malformed:  codes.InvalidArgument,

	// Resource state.
	kind.NotFound: codes.NotFound,

	// Availability / time.
	kind.ResourceUnavailable: codes.Unavailable,
	kind.Timeout:             codes.DeadlineExceeded,
}
