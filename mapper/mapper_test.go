package mapper

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"dirpx.dev/dguard"
	"dirpx.dev/dguard/apis"
	"dirpx.dev/dguard/kind"
	"dirpx.dev/dguard/taxonomy"
	"google.golang.org/grpc/codes"
)

func TestDefaults_HTTP_GRPC(t *testing.T) {
	m, err := New(taxonomy.Builtin())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	// Spot-check a few canonical defaults from defaults.go
	check := func(k kind.Kind, wantHTTP int, wantGRPC codes.Code) {
		t.Helper()
		st := m.Status(k)
		if st.HTTP != wantHTTP || st.GRPC != wantGRPC {
			t.Fatalf("Status(%q) got HTTP=%d GRPC=%v; want HTTP=%d GRPC=%v",
				k, st.HTTP, st.GRPC, wantHTTP, wantGRPC)
		}
	}
	check(kind.Validation, 400, codes.InvalidArgument)
	check(kind.NotFound, 404, codes.NotFound)
	check(kind.ResourceUnavailable, 503, codes.Unavailable)
	check(kind.Timeout, 504, codes.DeadlineExceeded)
	check(kind.ContractViolation, 500, codes.Internal)
}

func TestPriority_OverrideOverDefault_HTTP(t *testing.T) {
	m, err := New(taxonomy.Builtin(),
		WithHTTPDefault(kind.ResourceUnavailable, 503),  // default
		WithHTTPOverride(kind.ResourceUnavailable, 418), // override
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := m.HTTPStatus(kind.ResourceUnavailable); got != 418 {
		t.Fatalf("override must win; got %d, want 418", got)
	}
}

func TestPriority_OverrideOverDefault_GRPC(t *testing.T) {
	m, err := New(taxonomy.Builtin(),
		WithGRPCDefault(kind.ResourceUnavailable, int(codes.Unavailable)),
		WithGRPCOverride(kind.ResourceUnavailable, int(codes.Aborted)),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := m.GRPCStatus(kind.ResourceUnavailable); got != codes.Aborted {
		t.Fatalf("override must win; got %v, want %v", got, codes.Aborted)
	}
}

func TestAncestor_NearestMappedWins(t *testing.T) {
	reg := taxonomy.Builtin()
	reg.MustRegister(kind.MustParse("handshake_timeout"), kind.Timeout)
	reg.MustRegister(kind.MustParse("pg_down"), kind.ResourceUnavailable)

	m, err := New(reg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// handshake_timeout has no mapping; its nearest mapped ancestor is
	// timeout (504), not resource_unavailable (503) or fault (500).
	st := m.Status(kind.MustParse("handshake_timeout"))
	if st.HTTP != 504 || st.GRPC != codes.DeadlineExceeded {
		t.Fatalf("nearest ancestor must win: got HTTP=%d GRPC=%v, want 504/%v",
			st.HTTP, st.GRPC, codes.DeadlineExceeded)
	}

	st2 := m.Status(kind.MustParse("pg_down"))
	if st2.HTTP != 503 || st2.GRPC != codes.Unavailable {
		t.Fatalf("pg_down must inherit from resource_unavailable: got HTTP=%d GRPC=%v",
			st2.HTTP, st2.GRPC)
	}
}

func TestAncestor_ExactBeatsInherited(t *testing.T) {
	reg := taxonomy.Builtin()
	reg.MustRegister(kind.MustParse("pg_down"), kind.ResourceUnavailable)

	m, err := New(reg,
		WithHTTPOverride(kind.ResourceUnavailable, 502),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// timeout carries its own exact default (504); the ancestor override on
	// resource_unavailable must not shadow it.
	if got := m.HTTPStatus(kind.Timeout); got != 504 {
		t.Fatalf("exact default must beat ancestor override; got %d, want 504", got)
	}

	// pg_down has no exact mapping, so it inherits from resource_unavailable,
	// where the override (502) beats the library default (503).
	if got := m.HTTPStatus(kind.MustParse("pg_down")); got != 502 {
		t.Fatalf("ancestor override must beat ancestor default; got %d, want 502", got)
	}
}

func TestUnregisteredKind_FallbackAndOverride(t *testing.T) {
	m, err := New(taxonomy.Builtin())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// Valid shape, but never registered and never mapped: both transports
	// land on the global fallback.
	st := m.Status(kind.MustParse("never_seen"))
	if st.HTTP != 500 || st.GRPC != codes.Internal {
		t.Fatalf("unregistered kind must fall back: got HTTP=%d GRPC=%v", st.HTTP, st.GRPC)
	}

	// An exact override does not require registration; the exact tiers run
	// before the taxonomy walk.
	m2, err := New(taxonomy.Builtin(),
		WithHTTPOverride(kind.MustParse("never_seen"), 418),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := m2.HTTPStatus(kind.MustParse("never_seen")); got != 418 {
		t.Fatalf("exact override must apply without registration; got %d, want 418", got)
	}
}

func TestNew_Validation(t *testing.T) {
	reg := taxonomy.Builtin()
	tests := []struct {
		name string
		reg  *taxonomy.Registry
		opts []Option
	}{
		{"nil registry", nil, nil},
		{"malformed kind", reg, []Option{WithHTTPOverride(kind.Kind("Not-Canonical"), 400)}},
		{"http status too low", reg, []Option{WithHTTPDefault(kind.Validation, 99)}},
		{"http status too high", reg, []Option{WithHTTPOverride(kind.Validation, 600)}},
		{"grpc code negative", reg, []Option{WithGRPCDefault(kind.Validation, -1)}},
		{"grpc code too high", reg, []Option{WithGRPCOverride(kind.Validation, 17)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.reg, tt.opts...)
			if err == nil {
				t.Fatalf("New() = nil error, want configuration failure")
			}
			var rec *dguard.Record
			if !errors.As(err, &rec) || rec.Kind != kind.Configuration {
				t.Fatalf("New() error = %v, want a kind.Configuration record", err)
			}
		})
	}
}

func TestExplain_Sources(t *testing.T) {
	reg := taxonomy.Builtin()
	reg.MustRegister(kind.MustParse("handshake_timeout"), kind.Timeout)

	m, err := New(reg,
		WithHTTPOverride(kind.NotFound, 410),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	exp := m.Explain(kind.MustParse("handshake_timeout"))
	if !strings.Contains(exp, `source=ancestor`) {
		t.Fatalf("Explain must include source=ancestor:\n%s", exp)
	}
	if !strings.Contains(exp, `kind="timeout"`) {
		t.Fatalf("Explain must name the supplying ancestor:\n%s", exp)
	}
	if !strings.Contains(exp, `http:`) || !strings.Contains(exp, `grpc:`) {
		t.Fatalf("Explain must render both transports:\n%s", exp)
	}

	exp2 := m.Explain(kind.NotFound)
	if !strings.Contains(exp2, `http: source=override -> 410`) {
		t.Fatalf("Explain must show the override tier:\n%s", exp2)
	}

	exp3 := m.Explain(kind.MustParse("never_seen"))
	if !strings.Contains(exp3, `source=fallback`) {
		t.Fatalf("Explain must show the fallback tier:\n%s", exp3)
	}
}

func TestConcurrency_MapperStatus(t *testing.T) {
	reg := taxonomy.Builtin()
	reg.MustRegister(kind.MustParse("handshake_timeout"), kind.Timeout)

	m, err := New(reg,
		WithHTTPOverride(kind.NotFound, 410),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 2000; j++ {
				_ = m.Status(kind.MustParse("handshake_timeout"))
				_ = m.Status(kind.NotFound)
				_ = m.Status(kind.Validation)
			}
		}()
	}
	wg.Wait()
}

func BenchmarkMapperStatus_Default(t *testing.B) {
	m, _ := New(taxonomy.Builtin())
	t.ReportAllocs()
	for i := 0; i < t.N; i++ {
		_ = m.Status(kind.Validation)
	}
}

func BenchmarkMapperStatus_AncestorHit(t *testing.B) {
	reg := taxonomy.Builtin()
	reg.MustRegister(kind.MustParse("handshake_timeout"), kind.Timeout)
	m, _ := New(reg)
	k := kind.MustParse("handshake_timeout")
	t.ReportAllocs()
	for i := 0; i < t.N; i++ {
		_ = m.Status(k)
	}
}

func BenchmarkMapperStatus_Override(t *testing.B) {
	m, _ := New(taxonomy.Builtin(),
		WithHTTPOverride(kind.NotFound, 410),
		WithGRPCOverride(kind.NotFound, int(codes.NotFound)),
	)
	t.ReportAllocs()
	for i := 0; i < t.N; i++ {
		_ = m.Status(kind.NotFound)
	}
}

func BenchmarkMapperStatus_Fallback(t *testing.B) {
	m, _ := New(taxonomy.Builtin())
	k := kind.MustParse("never_seen")
	t.ReportAllocs()
	for i := 0; i < t.N; i++ {
		_ = m.Status(k)
	}
}

// Ensure mapper implements apis.Mapper
func TestMapper_InterfaceSatisfaction(t *testing.T) {
	var _ apis.Mapper = (*mapper)(nil)
}
