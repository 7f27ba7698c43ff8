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

package contract

import (
	"context"
	"fmt"

	"dirpx.dev/dguard"
	"dirpx.dev/dguard/apis"
	"dirpx.dev/dguard/kind"
	"dirpx.dev/dguard/outcome"
)

// Phase identifies when a condition is evaluated relative to the
// operation body.
type Phase string

const (
	// PhasePre conditions gate entry; a violation prevents the body
	// from running.
	PhasePre Phase = "pre"

	// PhasePost conditions assert guarantees of a successful
	// completion; a violation downgrades the result to a failure.
	PhasePost Phase = "post"

	// PhaseInvariant conditions are checked at entry and, on success,
	// again at exit.
	PhaseInvariant Phase = "invariant"
)

// Body is the business function an operation wraps. It receives the
// caller's context and state and reports through an outcome; any
// blocking it does belongs to it, not to the engine.
type Body[S, T any] func(ctx context.Context, state S) outcome.Outcome[T]

// condition is one registered predicate over the call state.
type condition[S any] struct {
	name    string
	check   func(S) bool
	message string
}

// postCondition is one registered predicate over the captured pre-state
// and the success result.
type postCondition[S, T any] struct {
	name    string
	check   func(pre S, result T) bool
	message string
}

// Builder accumulates the contracts of one operation. Conditions are
// evaluated in the order they are added; the first violation wins.
// Build validates and freezes the result, after which the builder may
// be discarded or reused without affecting built operations.
type Builder[S, T any] struct {
	engine *Engine
	name   string
	body   Body[S, T]
	pres   []condition[S]
	posts  []postCondition[S, T]
	invs   []condition[S]
	snap   func(S) S
}

// NewOperation starts the definition of a contract-checked operation on
// e. Definition belongs to the startup phase, before calls flow through
// the engine.
func NewOperation[S, T any](e *Engine, name string, body Body[S, T]) *Builder[S, T] {
	return &Builder[S, T]{engine: e, name: name, body: body}
}

// Pre adds a precondition. The message becomes the violation record's
// message when the check fails.
func (b *Builder[S, T]) Pre(name string, check func(S) bool, message string) *Builder[S, T] {
	b.pres = append(b.pres, condition[S]{name: name, check: check, message: message})
	return b
}

// Post adds a postcondition. The check receives the pre-state captured
// before the body ran and the body's success result.
func (b *Builder[S, T]) Post(name string, check func(pre S, result T) bool, message string) *Builder[S, T] {
	b.posts = append(b.posts, postCondition[S, T]{name: name, check: check, message: message})
	return b
}

// Invariant adds a condition checked at entry and again after a
// successful completion. An entry violation prevents the body from
// running.
func (b *Builder[S, T]) Invariant(name string, check func(S) bool, message string) *Builder[S, T] {
	b.invs = append(b.invs, condition[S]{name: name, check: check, message: message})
	return b
}

// Snapshot sets the copy function used to capture pre-state for
// postconditions. Without one, postconditions see the state value as
// passed; operations mutating shared state through pointers need a
// snapshot for their postconditions to compare against the past.
func (b *Builder[S, T]) Snapshot(fn func(S) S) *Builder[S, T] {
	b.snap = fn
	return b
}

// Build validates the definition and freezes it into an immutable
// Operation. Definition faults are configuration errors.
func (b *Builder[S, T]) Build() (*Operation[S, T], error) {
	if b.engine == nil {
		return nil, dguard.E(kind.Configuration, "operation defined without an engine",
			dguard.WithContextOption("operation", b.name))
	}
	if b.name == "" {
		return nil, dguard.E(kind.Configuration, "operation name required")
	}
	if b.body == nil {
		return nil, dguard.E(kind.Configuration, "operation body required",
			dguard.WithContextOption("operation", b.name))
	}
	for _, c := range b.pres {
		if err := b.checkCondition(c.name, c.check != nil, PhasePre); err != nil {
			return nil, err
		}
	}
	for _, c := range b.posts {
		if err := b.checkCondition(c.name, c.check != nil, PhasePost); err != nil {
			return nil, err
		}
	}
	for _, c := range b.invs {
		if err := b.checkCondition(c.name, c.check != nil, PhaseInvariant); err != nil {
			return nil, err
		}
	}
	return &Operation[S, T]{
		engine:   b.engine,
		name:     b.name,
		body:     b.body,
		pres:     append([]condition[S](nil), b.pres...),
		posts:    append([]postCondition[S, T](nil), b.posts...),
		invs:     append([]condition[S](nil), b.invs...),
		snapshot: b.snap,
	}, nil
}

func (b *Builder[S, T]) checkCondition(name string, hasCheck bool, phase Phase) error {
	if name == "" {
		return dguard.E(kind.Configuration, "condition name required",
			dguard.WithContextOption("operation", b.name),
			dguard.WithContextOption("phase", string(phase)))
	}
	if !hasCheck {
		return dguard.E(kind.Configuration, "condition check required",
			dguard.WithContextOption("operation", b.name),
			dguard.WithContextOption("contract", name),
			dguard.WithContextOption("phase", string(phase)))
	}
	return nil
}

// MustBuild is Build panicking on error. Intended for package variable
// initialization.
func (b *Builder[S, T]) MustBuild() *Operation[S, T] {
	op, err := b.Build()
	if err != nil {
		panic(err)
	}
	return op
}

// Operation is a frozen, contract-checked operation. It is immutable
// and safe for concurrent calls.
type Operation[S, T any] struct {
	engine   *Engine
	name     string
	body     Body[S, T]
	pres     []condition[S]
	posts    []postCondition[S, T]
	invs     []condition[S]
	snapshot func(S) S
}

// Name returns the operation name given at definition.
func (op *Operation[S, T]) Name() string {
	return op.name
}

// Call runs the operation against state under the engine's contracts.
//
// With verification enabled the sequence is: preconditions, then entry
// invariants, then the body, then postconditions against the captured
// pre-state and the result, then exit invariants. Conditions run in
// registration order and the first violation ends the call with a
// contract_violation failure; an entry violation means the body never
// runs, and a post or exit violation overrides a nominally successful
// result. Postconditions and exit invariants are skipped when the body
// itself produced a sentinel or failure.
//
// With verification disabled no predicate from any phase runs and the
// call reduces to the body.
//
// A panicking predicate never escapes: it converts to a
// contract_violation failure with the panic as cause. A panicking body
// converts to an unexpected failure the same way, in both modes.
func (op *Operation[S, T]) Call(ctx context.Context, state S) outcome.Outcome[T] {
	e := op.engine
	if !e.began.Load() {
		e.began.Store(true)
	}
	if e.Mode() == Disabled {
		return op.invoke(ctx, state)
	}

	for _, c := range op.pres {
		if fail, stop := op.check(c, PhasePre, state); stop {
			return fail
		}
	}
	for _, c := range op.invs {
		if fail, stop := op.check(c, PhaseInvariant, state); stop {
			return fail
		}
	}

	pre := state
	if op.snapshot != nil {
		pre = op.snapshot(state)
	}

	out := op.invoke(ctx, state)
	if !out.IsSuccess() {
		return out
	}
	result, _ := out.Value()

	for _, c := range op.posts {
		if fail, stop := op.checkPost(c, pre, result); stop {
			return fail
		}
	}
	for _, c := range op.invs {
		if fail, stop := op.check(c, PhaseInvariant, state); stop {
			return fail
		}
	}
	return out
}

// check evaluates one state condition. stop reports that the call must
// end with the returned failure.
func (op *Operation[S, T]) check(c condition[S], phase Phase, state S) (outcome.Outcome[T], bool) {
	ok, crash := evalState(c.check, state)
	if crash != nil {
		rec := op.crashRecord(c.name, phase, crash)
		op.engine.hook.Crash(rec)
		return outcome.Failure[T](rec), true
	}
	if !ok {
		rec := op.violationRecord(c.name, phase, c.message)
		op.engine.hook.Violation(rec)
		return outcome.Failure[T](rec), true
	}
	return outcome.Outcome[T]{}, false
}

func (op *Operation[S, T]) checkPost(c postCondition[S, T], pre S, result T) (outcome.Outcome[T], bool) {
	ok, crash := evalResult(c.check, pre, result)
	if crash != nil {
		rec := op.crashRecord(c.name, PhasePost, crash)
		op.engine.hook.Crash(rec)
		return outcome.Failure[T](rec), true
	}
	if !ok {
		rec := op.violationRecord(c.name, PhasePost, c.message)
		op.engine.hook.Violation(rec)
		return outcome.Failure[T](rec), true
	}
	return outcome.Outcome[T]{}, false
}

// invoke runs the body with panic containment.
func (op *Operation[S, T]) invoke(ctx context.Context, state S) (out outcome.Outcome[T]) {
	defer func() {
		if r := recover(); r != nil {
			rec := dguard.E(kind.Unexpected, "operation body panicked",
				dguard.WithContextOption("operation", op.name),
				dguard.WithCauseOption(panicError(r)))
			op.engine.hook.Observe(apis.ClassFailure, rec)
			out = outcome.Failure[T](rec)
		}
	}()
	return op.body(ctx, state)
}

func (op *Operation[S, T]) violationRecord(contract string, phase Phase, message string) *dguard.Record {
	return dguard.E(kind.ContractViolation, message,
		dguard.WithContextOption("operation", op.name),
		dguard.WithContextOption("contract", contract),
		dguard.WithContextOption("phase", string(phase)))
}

func (op *Operation[S, T]) crashRecord(contract string, phase Phase, cause error) *dguard.Record {
	return dguard.E(kind.ContractViolation, "predicate raised",
		dguard.WithContextOption("operation", op.name),
		dguard.WithContextOption("contract", contract),
		dguard.WithContextOption("phase", string(phase)),
		dguard.WithCauseOption(cause))
}

func evalState[S any](check func(S) bool, state S) (ok bool, crash error) {
	defer func() {
		if r := recover(); r != nil {
			crash = panicError(r)
		}
	}()
	return check(state), nil
}

func evalResult[S, T any](check func(S, T) bool, pre S, result T) (ok bool, crash error) {
	defer func() {
		if r := recover(); r != nil {
			crash = panicError(r)
		}
	}()
	return check(pre, result), nil
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", r)
}
