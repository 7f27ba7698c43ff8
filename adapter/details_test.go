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
	"testing"

	"dirpx.dev/dguard"
	"dirpx.dev/dguard/kind"
)

func TestErrorInfo(t *testing.T) {
	rec := dguard.E(kind.Validation, "amount must be positive",
		dguard.WithContextOption("amount", -3),
	)

	ei := ErrorInfo(rec, "ledger.dirpx.dev")
	if ei.GetReason() != "validation" {
		t.Fatalf("reason = %q, want validation", ei.GetReason())
	}
	if ei.GetDomain() != "ledger.dirpx.dev" {
		t.Fatalf("domain = %q", ei.GetDomain())
	}
	if ei.GetMetadata()["amount"] != "-3" {
		t.Fatalf("metadata = %v, want rendered context values", ei.GetMetadata())
	}
	if ei.GetMetadata()["origin"] == "" {
		t.Fatalf("metadata must carry the origin token")
	}

	if ErrorInfo(nil, "x") != nil {
		t.Fatalf("ErrorInfo(nil) must be nil")
	}
}

func TestErrorInfo_BareRecord(t *testing.T) {
	// A hand-built record with no context and no origin produces no
	// metadata at all.
	rec := &dguard.Record{Kind: kind.Fault, Message: "broken"}
	if md := ErrorInfo(rec, "").GetMetadata(); md != nil {
		t.Fatalf("metadata = %v, want nil", md)
	}
}

func TestDebugInfo(t *testing.T) {
	inner := errors.New("dial tcp: connection refused")
	mid := dguard.E(kind.ResourceUnavailable, "user store is down",
		dguard.WithCauseOption(inner),
	)
	rec := dguard.E(kind.NotFound, "account missing",
		dguard.WithCauseOption(mid),
	)

	dbg := DebugInfo(rec)
	if dbg == nil {
		t.Fatalf("record with a cause must produce DebugInfo")
	}
	want := []string{
		"resource_unavailable: user store is down",
		"dial tcp: connection refused",
	}
	got := dbg.GetStackEntries()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("stack entries = %v, want %v", got, want)
	}

	if DebugInfo(dguard.E(kind.Fault, "no cause")) != nil {
		t.Fatalf("record without a cause must not produce DebugInfo")
	}
	if DebugInfo(nil) != nil {
		t.Fatalf("DebugInfo(nil) must be nil")
	}
}
