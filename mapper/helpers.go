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
	"dirpx.dev/dguard"
	"dirpx.dev/dguard/kind"
	"google.golang.org/grpc/codes"
)

// freezeHTTPMap makes an immutable copy of an HTTP mapping table.
// Used when finalizing the mapper so later mutations to the builder
// (or caller-owned maps) cannot affect the mapper.
func freezeHTTPMap(src map[kind.Kind]int) map[kind.Kind]int {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[kind.Kind]int, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// freezeGRPCMap makes an immutable copy of a gRPC mapping table,
// converting builder-style int values into typed gRPC codes.
func freezeGRPCMap(src map[kind.Kind]int) map[kind.Kind]codes.Code {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[kind.Kind]codes.Code, len(src))
	for k, v := range src {
		dst[k] = codes.Code(v)
	}
	return dst
}

// validateHTTPMap checks that every entry of an HTTP mapping table names a
// well-formed kind and a status in the registered HTTP range [100, 599].
// scope names the table ("default" or "override") for the error message.
func validateHTTPMap(scope string, src map[kind.Kind]int) error {
	for k, v := range src {
		if err := kind.Validate(k); err != nil {
			return dguard.E(kind.Configuration, "invalid kind in http "+scope+" mapping",
				dguard.WithContextOption("kind", string(k)),
				dguard.WithCauseOption(err),
			)
		}
		if v < 100 || v > 599 {
			return dguard.E(kind.Configuration, "http status out of range in "+scope+" mapping",
				dguard.WithContextOption("kind", string(k)),
				dguard.WithContextOption("status", v),
			)
		}
	}
	return nil
}

// validateGRPCMap checks that every entry of a gRPC mapping table names a
// well-formed kind and a canonical gRPC code (OK=0 through Unauthenticated=16).
func validateGRPCMap(scope string, src map[kind.Kind]int) error {
	for k, v := range src {
		if err := kind.Validate(k); err != nil {
			return dguard.E(kind.Configuration, "invalid kind in grpc "+scope+" mapping",
				dguard.WithContextOption("kind", string(k)),
				dguard.WithCauseOption(err),
			)
		}
		if v < 0 || v > int(codes.Unauthenticated) {
			return dguard.E(kind.Configuration, "grpc code out of range in "+scope+" mapping",
				dguard.WithContextOption("kind", string(k)),
				dguard.WithContextOption("code", v),
			)
		}
	}
	return nil
}
