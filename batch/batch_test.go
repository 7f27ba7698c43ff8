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

package batch

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"dirpx.dev/dguard"
	"dirpx.dev/dguard/contract"
	"dirpx.dev/dguard/kind"
	"dirpx.dev/dguard/outcome"
)

// reciprocal fails on zero and succeeds with 1/x otherwise.
func reciprocal(ctx context.Context, x float64) outcome.Outcome[float64] {
	if x == 0 {
		return outcome.Failure[float64](dguard.E(kind.Validation, "division by zero"))
	}
	return outcome.Success(1 / x)
}

func TestRun_ContinueOnFailure(t *testing.T) {
	rep, err := Run(context.Background(), []float64{1, 0, 2}, reciprocal)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if want := []float64{1, 0.5}; !reflect.DeepEqual(rep.Successes, want) {
		t.Fatalf("Successes = %v, want %v", rep.Successes, want)
	}
	if len(rep.Failures) != 1 || rep.Failures[0].Index != 1 {
		t.Fatalf("Failures = %+v, want one at index 1", rep.Failures)
	}
	if rep.Failures[0].Err.Kind != kind.Validation {
		t.Fatalf("failure kind = %q, want %q", rep.Failures[0].Err.Kind, kind.Validation)
	}
	if rep.Cancelled {
		t.Fatal("uncancelled run marked cancelled")
	}

	c := rep.Counts()
	if c.Processed != 3 || c.Successes+c.Failures+c.Sentinels != 3 {
		t.Fatalf("counts = %+v, want processed 3", c)
	}
}

func TestRun_StopOnFailure(t *testing.T) {
	calls := 0
	counted := func(ctx context.Context, x float64) outcome.Outcome[float64] {
		calls++
		return reciprocal(ctx, x)
	}

	// Concurrency is requested but must be ignored: a stop batch is
	// only meaningful serially.
	rep, err := Run(context.Background(), []float64{1, 0, 2}, counted,
		WithPolicy(StopOnFailure()), WithConcurrency(8))

	var rec *dguard.Record
	if !errors.As(err, &rec) || rec.Kind != kind.Validation {
		t.Fatalf("err = %v, want the terminating validation record", err)
	}
	if want := []float64{1}; !reflect.DeepEqual(rep.Successes, want) {
		t.Fatalf("Successes = %v, want %v", rep.Successes, want)
	}
	if len(rep.Failures) != 1 || rep.Failures[0].Index != 1 {
		t.Fatalf("Failures = %+v", rep.Failures)
	}
	if calls != 2 {
		t.Fatalf("operation ran %d times, want 2", calls)
	}
	if c := rep.Counts(); c.Processed != 2 {
		t.Fatalf("processed = %d, want 2", c.Processed)
	}
}

func TestRun_RetryThenContinue(t *testing.T) {
	t.Run("succeeds within budget", func(t *testing.T) {
		n := 0
		flaky := func(ctx context.Context, s string) outcome.Outcome[string] {
			n++
			if n < 3 {
				return outcome.Failure[string](dguard.E(kind.Timeout, fmt.Sprintf("attempt %d failed", n)))
			}
			return outcome.Success(s + "!")
		}

		rep, err := Run(context.Background(), []string{"ok"}, flaky,
			WithPolicy(RetryThenContinue(3)))
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if n != 3 {
			t.Fatalf("operation ran %d times, want 3", n)
		}
		if want := []string{"ok!"}; !reflect.DeepEqual(rep.Successes, want) {
			t.Fatalf("Successes = %v, want %v", rep.Successes, want)
		}
	})

	t.Run("keeps only the last attempt's record", func(t *testing.T) {
		n := 0
		alwaysFails := func(ctx context.Context, s string) outcome.Outcome[string] {
			n++
			return outcome.Failure[string](dguard.E(kind.Timeout, fmt.Sprintf("attempt %d failed", n)))
		}

		rep, err := Run(context.Background(), []string{"x"}, alwaysFails,
			WithPolicy(RetryThenContinue(2)))
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if n != 2 {
			t.Fatalf("operation ran %d times, want 2", n)
		}
		if len(rep.Failures) != 1 {
			t.Fatalf("Failures = %+v", rep.Failures)
		}
		if got := rep.Failures[0].Err.Message; got != "attempt 2 failed" {
			t.Fatalf("retained message = %q, want the last attempt's", got)
		}
		if rep.Failures[0].Err.Cause != nil {
			t.Fatal("earlier attempts must not be chained")
		}
	})

	t.Run("sentinels are not retried", func(t *testing.T) {
		n := 0
		absent := func(ctx context.Context, s string) outcome.Outcome[string] {
			n++
			return outcome.None[string]()
		}

		rep, err := Run(context.Background(), []string{"x"}, absent,
			WithPolicy(RetryThenContinue(5)))
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if n != 1 {
			t.Fatalf("operation ran %d times, want 1", n)
		}
		if want := []int{0}; !reflect.DeepEqual(rep.Sentinels, want) {
			t.Fatalf("Sentinels = %v, want %v", rep.Sentinels, want)
		}
	})

	t.Run("zero attempts rejected", func(t *testing.T) {
		_, err := Run(context.Background(), []string{"x"},
			func(ctx context.Context, s string) outcome.Outcome[string] { return outcome.Success(s) },
			WithPolicy(RetryThenContinue(0)))
		var rec *dguard.Record
		if !errors.As(err, &rec) || rec.Kind != kind.Configuration {
			t.Fatalf("err = %v, want configuration record", err)
		}
	})
}

// mixed classifies inputs deterministically: multiples of 7 fail,
// remaining multiples of 5 are absent, everything else succeeds.
func mixed(ctx context.Context, i int) outcome.Outcome[int] {
	switch {
	case i%7 == 0:
		return outcome.Failure[int](dguard.E(kind.Validation, "multiple of seven"))
	case i%5 == 0:
		return outcome.Sentinel[int]("multiple of five")
	default:
		return outcome.Success(i * 2)
	}
}

func TestRun_ParallelMatchesSerial(t *testing.T) {
	inputs := make([]int, 60)
	for i := range inputs {
		inputs[i] = i + 1
	}

	serial, err := Run(context.Background(), inputs, mixed)
	if err != nil {
		t.Fatalf("serial Run: %v", err)
	}
	parallel, err := Run(context.Background(), inputs, mixed, WithConcurrency(8))
	if err != nil {
		t.Fatalf("parallel Run: %v", err)
	}

	if !reflect.DeepEqual(parallel.Successes, serial.Successes) {
		t.Fatalf("parallel successes diverge:\n got %v\nwant %v", parallel.Successes, serial.Successes)
	}
	if !reflect.DeepEqual(failureIndexes(parallel), failureIndexes(serial)) {
		t.Fatalf("parallel failure indexes diverge:\n got %v\nwant %v",
			failureIndexes(parallel), failureIndexes(serial))
	}
	if !reflect.DeepEqual(parallel.Sentinels, serial.Sentinels) {
		t.Fatalf("parallel sentinels diverge:\n got %v\nwant %v", parallel.Sentinels, serial.Sentinels)
	}
	if got, want := parallel.Counts(), serial.Counts(); got != want {
		t.Fatalf("counts = %+v, want %+v", got, want)
	}
}

func failureIndexes[T any](r *Report[T]) []int {
	idx := make([]int, 0, len(r.Failures))
	for _, f := range r.Failures {
		idx = append(idx, f.Index)
	}
	return idx
}

func TestRun_CancellationBetweenItems(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	op := func(ctx context.Context, i int) outcome.Outcome[int] {
		if i == 2 {
			cancel()
		}
		return outcome.Success(i)
	}

	rep, err := Run(ctx, []int{0, 1, 2, 3, 4}, op)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if !rep.Cancelled {
		t.Fatal("partial report not marked cancelled")
	}
	// Item 2 completes; the cancellation takes effect before item 3.
	if want := []int{0, 1, 2}; !reflect.DeepEqual(rep.Successes, want) {
		t.Fatalf("Successes = %v, want %v", rep.Successes, want)
	}
	if c := rep.Counts(); c.Processed != 3 {
		t.Fatalf("processed = %d, want 3", c.Processed)
	}
}

func TestRun_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 4} {
		t.Run(fmt.Sprintf("concurrency %d", workers), func(t *testing.T) {
			calls := 0
			op := func(ctx context.Context, i int) outcome.Outcome[int] {
				calls++
				return outcome.Success(i)
			}
			rep, err := Run(ctx, []int{1, 2, 3}, op, WithConcurrency(workers))
			if !errors.Is(err, context.Canceled) {
				t.Fatalf("err = %v, want context.Canceled", err)
			}
			if !rep.Cancelled || rep.Counts().Processed != 0 {
				t.Fatalf("report = %+v, want empty cancelled report", rep)
			}
			if calls != 0 {
				t.Fatalf("operation ran %d times on a dead context", calls)
			}
		})
	}
}

func TestRun_EmptyInputs(t *testing.T) {
	rep, err := Run(context.Background(), nil, reciprocal)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if c := rep.Counts(); c.Processed != 0 {
		t.Fatalf("counts = %+v", c)
	}
	if got := rep.SuccessRate(); got != 0 {
		t.Fatalf("SuccessRate() = %v, want 0", got)
	}
}

func TestRun_NilOperation(t *testing.T) {
	_, err := Run[int, int](context.Background(), []int{1}, nil)
	var rec *dguard.Record
	if !errors.As(err, &rec) || rec.Kind != kind.Configuration {
		t.Fatalf("err = %v, want configuration record", err)
	}
}

func TestReport_SuccessRate(t *testing.T) {
	rep, err := Run(context.Background(), []int{1, 7, 5, 3}, mixed)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// 1 and 3 succeed, 7 fails, 5 is absent.
	if got := rep.SuccessRate(); got != 0.5 {
		t.Fatalf("SuccessRate() = %v, want 0.5", got)
	}
}

func TestRun_ContractOperation(t *testing.T) {
	e := contract.MustEngine(contract.DefaultConfig())
	op := contract.NewOperation(e, "reciprocal", func(ctx context.Context, x float64) outcome.Outcome[float64] {
		return outcome.Success(1 / x)
	}).
		Pre("non-zero input", func(x float64) bool { return x != 0 }, "input must not be zero").
		MustBuild()

	rep, err := Run(context.Background(), []float64{1, 0, 2}, op.Call)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if want := []float64{1, 0.5}; !reflect.DeepEqual(rep.Successes, want) {
		t.Fatalf("Successes = %v, want %v", rep.Successes, want)
	}
	if len(rep.Failures) != 1 || rep.Failures[0].Err.Kind != kind.ContractViolation {
		t.Fatalf("Failures = %+v, want one contract violation", rep.Failures)
	}
	if got := rep.Failures[0].Err.ErrorContext()["contract"]; got != "non-zero input" {
		t.Fatalf("violated contract = %v", got)
	}
}

func TestPolicy_String(t *testing.T) {
	tests := []struct {
		p    Policy
		want string
	}{
		{ContinueOnFailure(), "continue_on_failure"},
		{StopOnFailure(), "stop_on_failure"},
		{RetryThenContinue(3), "retry_then_continue(3)"},
		{Policy{}, "continue_on_failure"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Fatalf("String() = %q, want %q", got, tt.want)
		}
	}
}
