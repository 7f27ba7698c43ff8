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

package adapter

import (
	"errors"
	"fmt"

	"dirpx.dev/dguard"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
)

// ErrorInfo projects a record into a google.rpc.ErrorInfo detail: the kind
// becomes the reason, the record context and origin token the metadata.
// Both transport edges (grpcx, httpx) attach this detail, so clients can
// recover the kind regardless of how the failure traveled.
func ErrorInfo(r *dguard.Record, domain string) *errdetails.ErrorInfo {
	if r == nil {
		return nil
	}
	return &errdetails.ErrorInfo{
		Reason:   string(r.Kind),
		Domain:   domain,
		Metadata: infoMetadata(r),
	}
}

// infoMetadata flattens the record context into ErrorInfo metadata. Values
// are rendered with fmt.Sprint; the origin token rides along under "origin".
func infoMetadata(r *dguard.Record) map[string]string {
	if len(r.Context) == 0 && r.Origin == "" {
		return nil
	}
	md := make(map[string]string, len(r.Context)+1)
	for k, v := range r.Context {
		md[k] = fmt.Sprint(v)
	}
	if r.Origin != "" {
		md["origin"] = string(r.Origin)
	}
	return md
}

// DebugInfo renders the cause chain of a record for a google.rpc.DebugInfo
// detail, outermost cause first. Returns nil when the record has no cause,
// so callers can attach it conditionally.
func DebugInfo(r *dguard.Record) *errdetails.DebugInfo {
	if r == nil || r.Cause == nil {
		return nil
	}
	var entries []string
	for err := r.Cause; err != nil; err = errors.Unwrap(err) {
		entries = append(entries, err.Error())
	}
	return &errdetails.DebugInfo{
		StackEntries: entries,
		Detail:       "cause chain, outermost first",
	}
}
