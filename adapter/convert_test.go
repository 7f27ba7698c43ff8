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
	"testing"

	"google.golang.org/grpc/codes"

	"dirpx.dev/dguard"
	"dirpx.dev/dguard/apis"
	"dirpx.dev/dguard/kind"
)

func TestToView_Nil(t *testing.T) {
	if got := ToView(nil); got != nil {
		t.Fatalf("ToView(nil) = %v, want nil", got)
	}
}

func TestToView_RecordChain(t *testing.T) {
	inner := dguard.E(kind.Timeout, "dial timed out")
	outer := dguard.E(kind.ResourceUnavailable, "backend unreachable",
		dguard.WithContextOption("backend", "billing"),
		dguard.WithCauseOption(inner),
	)

	v := ToView(outer)
	if v.Kind != "resource_unavailable" || v.Message != "backend unreachable" {
		t.Fatalf("top view = %q/%q", v.Kind, v.Message)
	}
	if got := v.Context["backend"]; got != "billing" {
		t.Fatalf("context[backend] = %v, want billing", got)
	}
	if v.Origin == "" {
		t.Fatal("top view lost its origin")
	}
	if v.Cause == nil || v.Cause.Kind != "timeout" || v.Cause.Message != "dial timed out" {
		t.Fatalf("cause view = %+v", v.Cause)
	}
	if v.Cause.Cause != nil {
		t.Fatalf("chain should end, got %+v", v.Cause.Cause)
	}
}

func TestToView_ForeignCause(t *testing.T) {
	r := dguard.E(kind.Unexpected, "write failed",
		dguard.WithCauseOption(errors.New("disk full")))

	v := ToView(r)
	if v.Cause == nil {
		t.Fatal("foreign cause dropped")
	}
	if v.Cause.Kind != "" {
		t.Fatalf("foreign cause kind = %q, want empty", v.Cause.Kind)
	}
	if v.Cause.Message != "disk full" {
		t.Fatalf("foreign cause message = %q", v.Cause.Message)
	}
}

func TestToView_ForeignWrapperAroundRecord(t *testing.T) {
	rec := dguard.E(kind.NotFound, "key absent")
	wrapped := fmt.Errorf("lookup: %w", rec)
	r := dguard.E(kind.Unexpected, "cache miss path failed",
		dguard.WithCauseOption(wrapped))

	v := ToView(r)
	if v.Cause == nil || v.Cause.Kind != "" {
		t.Fatalf("wrapper view = %+v", v.Cause)
	}
	if v.Cause.Cause == nil || v.Cause.Cause.Kind != "not_found" {
		t.Fatalf("record behind wrapper lost: %+v", v.Cause.Cause)
	}
}

func TestToDescriptor(t *testing.T) {
	r := dguard.E(kind.Validation, "amount must be positive")
	st := apis.Status{HTTP: 400, GRPC: codes.InvalidArgument}

	d := ToDescriptor(r, st)
	if d.Kind != "validation" || d.HTTPStatus != 400 || d.GRPCCode != int(codes.InvalidArgument) {
		t.Fatalf("descriptor = %+v", d)
	}
	if d.Message != "amount must be positive" || d.Origin == "" {
		t.Fatalf("descriptor lost message or origin: %+v", d)
	}
}

func TestToDescriptor_NilRecord(t *testing.T) {
	st := apis.Status{HTTP: 500, GRPC: codes.Internal}
	d := ToDescriptor(nil, st)
	if d.Kind != "" || d.HTTPStatus != 500 || d.GRPCCode != int(codes.Internal) {
		t.Fatalf("descriptor = %+v", d)
	}
}
