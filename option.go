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

package dguard

// Option is a functional option for constructing or transforming a Record.
// It always takes a *Record and returns a (possibly new) *Record.
type Option func(*Record) *Record

// WithContextOption adds a single context key/value on construction.
// Intended to be used with E(...).
func WithContextOption(k string, v any) Option {
	return func(r *Record) *Record {
		return r.WithContext(k, v)
	}
}

// WithContextMapOption merges multiple context key/values on construction.
// Intended to be used with E(...).
func WithContextMapOption(kv map[string]any) Option {
	return func(r *Record) *Record {
		return r.WithContextMap(kv)
	}
}

// WithCauseOption attaches a cause on construction.
// Intended to be used with E(...).
func WithCauseOption(err error) Option {
	return func(r *Record) *Record {
		return r.WithCause(err)
	}
}

// WithOriginOption replaces the automatically captured origin token.
// Intended to be used with E(...) by layers constructing records on behalf
// of user code.
func WithOriginOption(o Origin) Option {
	return func(r *Record) *Record {
		return r.WithOrigin(o)
	}
}
