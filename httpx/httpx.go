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

package httpx

import (
	"net/http"
	"strconv"
	"time"

	"dirpx.dev/dguard"
	"dirpx.dev/dguard/adapter"
	"dirpx.dev/dguard/apis"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	spb "google.golang.org/genproto/googleapis/rpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/anypb"
	"google.golang.org/protobuf/types/known/durationpb"
)

// Meta carries extra context that the HTTP layer can add on top of a failure
// record. All fields are optional and typically come from request context,
// headers, rate-limiter output, or router-level logic.
type Meta struct {
	// Correlation is the request correlation token, echoed in a
	// google.rpc.RequestInfo detail.
	Correlation string

	// Domain is the logical error domain reported in google.rpc.ErrorInfo.
	Domain string

	// RetryAfterSeconds emits a Retry-After header and a RetryInfo detail.
	RetryAfterSeconds int32

	// Help links human-facing documentation for this failure.
	Help *errdetails.Help

	// Localized is a user-facing, localized message.
	Localized *errdetails.LocalizedMessage
}

// Writer is a thin adapter that knows how to turn a failure into an HTTP
// response using the provided status mapper.
type Writer struct {
	Mapper apis.Mapper
}

// Write serializes the failure as a google.rpc.Status JSON body and writes
// it to the response writer. The HTTP status is resolved via the Mapper;
// the body's code field carries the gRPC projection of the same kind, so
// REST and gRPC clients of one service see a single error shape.
//
// Any error is accepted: errors that do not carry a record are normalized
// first, surfacing as unclassified failures. Write(rw, nil, meta) writes
// nothing.
//
// No automatic redaction or filtering is performed here: whatever is present
// in the record and Meta is exposed as-is. Higher-level handlers should
// apply policies if needed.
func (w Writer) Write(rw http.ResponseWriter, err error, meta Meta) {
	rec := dguard.Ensure(err)
	if rec == nil {
		return
	}

	st := w.Mapper.Status(rec.Kind)

	details := make([]*anypb.Any, 0, 4)
	appendDetail := func(msg proto.Message) {
		if a, aerr := anypb.New(msg); aerr == nil {
			details = append(details, a)
		}
	}
	appendDetail(adapter.ErrorInfo(rec, meta.Domain))
	if dbg := adapter.DebugInfo(rec); dbg != nil {
		appendDetail(dbg)
	}
	if meta.RetryAfterSeconds > 0 {
		appendDetail(&errdetails.RetryInfo{
			RetryDelay: durationpb.New(time.Duration(meta.RetryAfterSeconds) * time.Second),
		})
	}
	if meta.Correlation != "" {
		appendDetail(&errdetails.RequestInfo{RequestId: meta.Correlation})
	}
	if meta.Help != nil {
		appendDetail(meta.Help)
	}
	if meta.Localized != nil {
		appendDetail(meta.Localized)
	}

	body := &spb.Status{
		Code:    int32(st.GRPC),
		Message: rec.Message,
		Details: details,
	}

	rw.Header().Set("Content-Type", "application/json")
	if meta.RetryAfterSeconds > 0 {
		rw.Header().Set("Retry-After", strconv.Itoa(int(meta.RetryAfterSeconds)))
	}
	rw.WriteHeader(st.HTTP)

	// IMPORTANT: protobuf JSON through protojson must be used to ensure
	// proper serialization of Any details, field names (json_name), and
	// well-known types.
	b, _ := (protojson.MarshalOptions{
		EmitUnpopulated: false,
		UseProtoNames:   false, // use json_name
	}).Marshal(body)
	_, _ = rw.Write(b)
}
