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

package grpcx

import (
	"context"
	"errors"
	"strings"

	"dirpx.dev/dguard"
	"dirpx.dev/dguard/adapter"
	"dirpx.dev/dguard/apis"
	"dirpx.dev/dguard/kind"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	gstatus "google.golang.org/grpc/status"
	"google.golang.org/protobuf/protoadapt"
)

// Extras holds optional, rich metadata that can be embedded into the gRPC
// status details next to the failure record. All fields are optional.
type Extras struct {
	// CorrelationID is a client/server correlation token (request ID,
	// idempotency key). Emitted as a google.rpc.RequestInfo detail.
	CorrelationID string

	// Domain is the logical error domain reported in google.rpc.ErrorInfo.
	// Empty means "use the service name from the RPC method".
	Domain string

	// Retry provides client retry/backoff hints.
	Retry *errdetails.RetryInfo

	// Help links human-facing documentation for this failure.
	Help *errdetails.Help

	// Localized is a user-facing, localized message.
	Localized *errdetails.LocalizedMessage
}

// MetaFn extracts Extras from context and the failure record.
// It can return an empty Extras if nothing is available.
type MetaFn func(ctx context.Context, r *dguard.Record) Extras

// UnaryServerInterceptor returns a gRPC UnaryServerInterceptor that maps
// *dguard.Record failures into gRPC status errors carrying google.rpc
// detail payloads.
//
// The provided apis.Mapper resolves the record's kind into the transport
// status code. The record itself is projected into:
//
//   - google.rpc.ErrorInfo: reason is the kind, domain the service, and
//     metadata the record context plus the origin token;
//   - google.rpc.DebugInfo: the cause chain, outermost cause first.
//
// Errors that do not carry a record are returned unchanged.
//
// The optional MetaFn can be used to extract additional metadata from
// context and the record to populate retry hints, correlation and help
// details. If nil, no extra details are added.
func UnaryServerInterceptor(m apis.Mapper, metaFn MetaFn) grpc.UnaryServerInterceptor {
	if metaFn == nil {
		metaFn = func(context.Context, *dguard.Record) Extras { return Extras{} }
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}

		var rec *dguard.Record
		if !errors.As(err, &rec) {
			// Not ours; return as-is.
			return nil, err
		}

		st := m.Status(rec.Kind)
		ex := metaFn(ctx, rec)

		domain := ex.Domain
		if domain == "" {
			domain = serviceName(info)
		}

		details := make([]protoadapt.MessageV1, 0, 4)
		details = append(details, adapter.ErrorInfo(rec, domain))
		if dbg := adapter.DebugInfo(rec); dbg != nil {
			details = append(details, dbg)
		}
		if ex.Retry != nil {
			details = append(details, ex.Retry)
		}
		if ex.CorrelationID != "" {
			details = append(details, &errdetails.RequestInfo{RequestId: ex.CorrelationID})
		}
		if ex.Help != nil {
			details = append(details, ex.Help)
		}
		if ex.Localized != nil {
			details = append(details, ex.Localized)
		}

		base := gstatus.New(st.GRPC, rec.Message)

		// Try to attach the details. If that fails, return base.
		if with, derr := base.WithDetails(details...); derr == nil {
			return nil, with.Err()
		}
		return nil, base.Err()
	}
}

// serviceName extracts the service part of a full RPC method name,
// e.g. "/ledger.v1.Accounts/Withdraw" -> "ledger.v1.Accounts".
func serviceName(info *grpc.UnaryServerInfo) string {
	if info == nil {
		return ""
	}
	m := strings.TrimPrefix(info.FullMethod, "/")
	if i := strings.IndexByte(m, '/'); i >= 0 {
		return m[:i]
	}
	return m
}

// ExtractErrorInfo pulls the google.rpc.ErrorInfo out of a gRPC error, if
// present. Useful in tests and client code.
func ExtractErrorInfo(err error) (*errdetails.ErrorInfo, bool) {
	if err == nil {
		return nil, false
	}
	st, ok := gstatus.FromError(err)
	if !ok {
		return nil, false
	}
	for _, d := range st.Details() {
		if ei, ok := d.(*errdetails.ErrorInfo); ok {
			return ei, true
		}
	}
	return nil, false
}

// KindFromError recovers the failure kind from a gRPC error produced by the
// interceptor. The second return is false when the error carries no
// ErrorInfo detail or the reason is not a canonical kind.
func KindFromError(err error) (kind.Kind, bool) {
	ei, ok := ExtractErrorInfo(err)
	if !ok {
		return kind.Empty, false
	}
	k, perr := kind.Parse(ei.GetReason())
	if perr != nil {
		return kind.Empty, false
	}
	return k, true
}
