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

// Package adapter converts records into the transport-neutral views
// declared in package apis.
package adapter

import (
	"errors"

	"dirpx.dev/dguard"
	"dirpx.dev/dguard/apis"
)

// ToView renders a record as a serialization-ready view. The cause chain
// is rendered recursively; foreign (non-record) causes appear as a view
// with an empty kind and the error text as the message.
//
// Returns nil for a nil record.
func ToView(r *dguard.Record) *apis.RecordView {
	if r == nil {
		return nil
	}
	return &apis.RecordView{
		Kind:    string(r.Kind),
		Message: r.Message,
		Context: r.ErrorContext(),
		Cause:   causeView(r.Cause),
		Origin:  string(r.Origin),
	}
}

// causeView renders one link of a cause chain. Consecutive foreign links
// collapse into a single view, since a foreign Error() string already
// carries its own wrapped text; a record found deeper in the chain is
// rendered structurally again.
func causeView(err error) *apis.RecordView {
	if err == nil {
		return nil
	}
	if rec, ok := err.(*dguard.Record); ok {
		return ToView(rec)
	}
	v := &apis.RecordView{Message: err.Error()}
	var rec *dguard.Record
	if errors.As(err, &rec) {
		v.Cause = ToView(rec)
	}
	return v
}

// ToDescriptor flattens a record and its resolved statuses into a
// Descriptor. The cause chain and context are deliberately omitted:
// descriptors are the terse form used in logs and list endpoints.
func ToDescriptor(r *dguard.Record, st apis.Status) apis.Descriptor {
	if r == nil {
		return apis.Descriptor{HTTPStatus: st.HTTP, GRPCCode: int(st.GRPC)}
	}
	return apis.Descriptor{
		Kind:       string(r.Kind),
		HTTPStatus: st.HTTP,
		GRPCCode:   int(st.GRPC),
		Message:    r.Message,
		Origin:     string(r.Origin),
	}
}
