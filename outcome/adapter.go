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

package outcome

import (
	"dirpx.dev/dguard"
	"dirpx.dev/dguard/apis"
	"dirpx.dev/dguard/hook"
	"dirpx.dev/dguard/kind"
)

// RequiredOption configures how [Outcome.Required] synthesizes a
// failure from a sentinel.
type RequiredOption func(*requiredConfig)

type requiredConfig struct {
	kind    kind.Kind
	message string
}

// WithKind sets the kind of the synthesized record. Defaults to
// [kind.NotFound].
func WithKind(k kind.Kind) RequiredOption {
	return func(c *requiredConfig) {
		c.kind = k
	}
}

// WithMessage sets the message of the synthesized record. Defaults to
// the sentinel's reason, or to "required value absent" when there is
// none.
func WithMessage(msg string) RequiredOption {
	return func(c *requiredConfig) {
		c.message = msg
	}
}

// Optional adapts the outcome for a caller that treats absence and
// failure alike: a failure becomes the bare sentinel and its record is
// withheld from the caller. Success and sentinel outcomes pass through
// unchanged.
//
// The hook is notified exactly once with the final, post-adaptation
// class. When a failure is degraded, its record still travels with the
// event, so the caller sees absence while the operator sees why.
func (o Outcome[T]) Optional(h *hook.Hook) Outcome[T] {
	var discarded *dguard.Record
	out := o
	if o.class == apis.ClassFailure {
		discarded = o.err
		out = None[T]()
	}
	h.Observe(out.class, discarded)
	return out
}

// Required adapts the outcome for a caller that cannot proceed on
// absence: a sentinel becomes a failure synthesized per the options.
// Success and failure outcomes pass through unchanged.
//
// The hook is notified exactly once with the final, post-adaptation
// class; Required never yields a sentinel.
func (o Outcome[T]) Required(h *hook.Hook, opts ...RequiredOption) Outcome[T] {
	cfg := requiredConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	out := o.ToFailure(cfg.kind, cfg.message)
	h.Observe(out.class, out.err)
	return out
}
