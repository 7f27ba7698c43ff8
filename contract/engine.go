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
	"sync"
	"sync/atomic"

	"dirpx.dev/dguard"
	"dirpx.dev/dguard/hook"
	"dirpx.dev/dguard/kind"
)

// Engine evaluates contracts around the operations defined on it. Each
// engine carries its own verification mode, so a process can run
// several engines with different settings, which is what keeps the mode
// testable instead of ambient.
//
// Operations are defined during a single-threaded startup phase; after
// the first call the engine is read-only and safe for concurrent use.
type Engine struct {
	mu    sync.RWMutex
	mode  Mode
	began atomic.Bool
	hook  *hook.Hook
}

// EngineOption configures an Engine at construction time.
type EngineOption func(*Engine)

// WithHook attaches the hook notified of violations, predicate crashes
// and contained body panics. Without one the engine is silent.
func WithHook(h *hook.Hook) EngineOption {
	return func(e *Engine) {
		e.hook = h
	}
}

// NewEngine returns an engine verifying per cfg. An unset mode defaults
// to [Enabled]; any other unknown mode is a configuration error.
func NewEngine(cfg Config, opts ...EngineOption) (*Engine, error) {
	mode := cfg.Verification
	if mode == "" {
		mode = Enabled
	}
	if mode != Enabled && mode != Disabled {
		return nil, dguard.E(kind.Configuration, "unknown verification mode",
			dguard.WithContextOption("mode", string(mode)))
	}
	e := &Engine{mode: mode}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// MustEngine is NewEngine panicking on error. Intended for package
// variable initialization.
func MustEngine(cfg Config, opts ...EngineOption) *Engine {
	e, err := NewEngine(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return e
}

// Mode returns the engine's verification mode.
func (e *Engine) Mode() Mode {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.mode
}

// SetMode changes the verification mode. It is legal only before the
// first call through the engine: a mode flip mid-flight would let the
// same input pass and fail the same contracts depending on timing, so
// once operations have begun the change is rejected with a
// configuration error.
func (e *Engine) SetMode(m Mode) error {
	if m != Enabled && m != Disabled {
		return dguard.E(kind.Configuration, "unknown verification mode",
			dguard.WithContextOption("mode", string(m)))
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.began.Load() {
		return dguard.E(kind.Configuration, "verification mode change after operations began",
			dguard.WithContextOption("mode", string(m)))
	}
	e.mode = m
	return nil
}
