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
	"fmt"
	"sync"

	"dirpx.dev/dguard"
	"dirpx.dev/dguard/kind"
	"dirpx.dev/dguard/outcome"
)

// Operation is one unit of batch work: input in, outcome out. A
// contract-checked operation's Call method satisfies it directly.
type Operation[S, T any] func(ctx context.Context, input S) outcome.Outcome[T]

type policyKind int

const (
	continueOnFailure policyKind = iota
	stopOnFailure
	retryThenContinue
)

// Policy decides how a batch reacts to a per-item failure. The zero
// Policy is [ContinueOnFailure].
type Policy struct {
	kind        policyKind
	maxAttempts int
}

// ContinueOnFailure attempts every input exactly once and records
// failures without aborting the batch. This is the default.
func ContinueOnFailure() Policy {
	return Policy{kind: continueOnFailure}
}

// StopOnFailure halts the batch at the first failure, returning the
// partial report plus the terminating error. Stop batches always run
// serially; "first" is only meaningful in input order.
func StopOnFailure() Policy {
	return Policy{kind: stopOnFailure}
}

// RetryThenContinue retries a failing input up to maxAttempts-1 extra
// times before recording it as a permanent failure, keeping only the
// last attempt's record. Sentinels are not retried; absence is an
// answer, not a fault.
func RetryThenContinue(maxAttempts int) Policy {
	return Policy{kind: retryThenContinue, maxAttempts: maxAttempts}
}

// String renders the policy for logs.
func (p Policy) String() string {
	switch p.kind {
	case stopOnFailure:
		return "stop_on_failure"
	case retryThenContinue:
		return fmt.Sprintf("retry_then_continue(%d)", p.maxAttempts)
	default:
		return "continue_on_failure"
	}
}

type config struct {
	policy  Policy
	workers int
}

// Option configures one batch run.
type Option func(*config)

// WithPolicy sets the failure policy. Defaults to [ContinueOnFailure].
func WithPolicy(p Policy) Option {
	return func(c *config) {
		c.policy = p
	}
}

// WithConcurrency sets how many inputs run at once. Defaults to 1;
// values below 1 are clamped. [StopOnFailure] batches ignore it and run
// serially.
func WithConcurrency(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// Run drives op over inputs under the configured policy and returns the
// finalized report. Per-item failures live in the report, not in the
// returned error; the error is non-nil only for a terminating failure
// under [StopOnFailure], for cancellation, or for a misconfigured run.
//
// Cancellation is cooperative and checked between items: on a cancelled
// context the already-computed outcomes come back as a partial report
// marked cancelled, together with the context's error. An item is
// either fully processed and in the report or untouched, never half
// applied.
func Run[S, T any](ctx context.Context, inputs []S, op Operation[S, T], opts ...Option) (*Report[T], error) {
	cfg := config{policy: ContinueOnFailure(), workers: 1}
	for _, opt := range opts {
		opt(&cfg)
	}
	if op == nil {
		return nil, dguard.E(kind.Configuration, "batch operation required")
	}
	if cfg.policy.kind == retryThenContinue && cfg.policy.maxAttempts < 1 {
		return nil, dguard.E(kind.Configuration, "retry requires at least one attempt",
			dguard.WithContextOption("maxAttempts", cfg.policy.maxAttempts))
	}

	workers := cfg.workers
	if workers < 1 || cfg.policy.kind == stopOnFailure {
		workers = 1
	}
	if workers > len(inputs) {
		workers = len(inputs)
	}
	if workers > 1 {
		return runParallel(ctx, inputs, op, cfg.policy, workers)
	}
	return runSerial(ctx, inputs, op, cfg.policy)
}

func runSerial[S, T any](ctx context.Context, inputs []S, op Operation[S, T], pol Policy) (*Report[T], error) {
	rep := &Report[T]{}
	for i, in := range inputs {
		if err := ctx.Err(); err != nil {
			rep.Cancelled = true
			return rep, err
		}
		out := attempt(ctx, in, op, pol)
		rep.record(i, out)
		if pol.kind == stopOnFailure && out.IsFailure() {
			return rep, out.Err()
		}
	}
	return rep, nil
}

func runParallel[S, T any](ctx context.Context, inputs []S, op Operation[S, T], pol Policy, workers int) (*Report[T], error) {
	slots := make([]outcome.Outcome[T], len(inputs))
	done := make([]bool, len(inputs))

	// The feeder stops handing out indexes once the context is
	// cancelled; workers still finish the items they hold, so every
	// started item ends up fully processed. The explicit Err check
	// matters: a select with a ready worker AND a done context picks
	// randomly, and a dead context must never start new items.
	idxCh := make(chan int)
	go func() {
		defer close(idxCh)
		for i := range inputs {
			if ctx.Err() != nil {
				return
			}
			select {
			case idxCh <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range idxCh {
				slots[i] = attempt(ctx, inputs[i], op, pol)
				done[i] = true
			}
		}()
	}
	wg.Wait()

	// Ordering-preserving merge: slots are filled independently and
	// concatenated by index, so buckets keep input order no matter
	// which worker finished first.
	rep := &Report[T]{}
	for i := range inputs {
		if done[i] {
			rep.record(i, slots[i])
		}
	}
	if err := ctx.Err(); err != nil {
		rep.Cancelled = true
		return rep, err
	}
	return rep, nil
}

// attempt runs the operation once, plus retries when the policy grants
// them. Only failures retry, and only the last attempt's record
// survives; chaining every attempt would grow the cause chain without
// bound.
func attempt[S, T any](ctx context.Context, in S, op Operation[S, T], pol Policy) outcome.Outcome[T] {
	out := op(ctx, in)
	if pol.kind != retryThenContinue {
		return out
	}
	for extra := 1; extra < pol.maxAttempts && out.IsFailure(); extra++ {
		out = op(ctx, in)
	}
	return out
}
