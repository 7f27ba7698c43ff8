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

package taxonomy

import (
	"errors"
	"sort"
	"sync"

	"dirpx.dev/dguard"
	"dirpx.dev/dguard/kind"
)

var (
	// ErrNoRoot is the sentinel cause when a kind is registered before any
	// root exists. The root must always be registered first.
	ErrNoRoot = errors.New("taxonomy: root kind not registered")

	// ErrRootConflict is the sentinel cause when a second root registration
	// is attempted. A registry has exactly one root for its whole lifetime.
	ErrRootConflict = errors.New("taxonomy: root kind already registered")

	// ErrDuplicate is the sentinel cause when a kind is registered twice.
	// Registration is append-only, so re-registration is always a bug.
	ErrDuplicate = errors.New("taxonomy: kind already registered")

	// ErrUnknownParent is the sentinel cause when the named parent has not
	// been registered yet. Parents must exist before their children.
	ErrUnknownParent = errors.New("taxonomy: unknown parent kind")
)

// Registry holds a tree of error kinds and answers ancestry queries.
//
// Each registered kind except the root has exactly one parent; the structure
// is a tree by construction, never a cycle (a child can only attach to an
// already-registered parent). There is no removal operation: outstanding
// records keep referring to their kinds, so the registry is append-only.
//
// Registration normally happens during single-threaded process startup.
// Query methods take a read lock anyway, so a late registration cannot
// corrupt concurrent readers.
type Registry struct {
	mu sync.RWMutex

	// parent maps every non-root kind to its parent. The root is tracked
	// separately and has no entry here.
	parent map[kind.Kind]kind.Kind

	// root is the single root kind, or kind.Empty before one is registered.
	root kind.Kind
}

// NewRegistry returns an empty registry with no root. Most callers want
// Builtin instead and then extend it with their own kinds.
func NewRegistry() *Registry {
	return &Registry{parent: make(map[kind.Kind]kind.Kind)}
}

// Builtin returns a fresh registry pre-seeded with the built-in kind
// catalog from dguard/kind:
//
//	fault
//	├── validation
//	│   └── malformed
//	├── contract_violation
//	├── resource_unavailable
//	│   └── timeout
//	├── not_found
//	├── unexpected
//	└── configuration
//
// Every call returns a new instance, so tests and independently configured
// subsystems never share registration state.
func Builtin() *Registry {
	r := NewRegistry()
	r.MustRegister(kind.Fault, kind.Empty)
	r.MustRegister(kind.Validation, kind.Fault)
	r.MustRegister(kind.Malformed, kind.Validation)
	r.MustRegister(kind.ContractViolation, kind.Fault)
	r.MustRegister(kind.ResourceUnavailable, kind.Fault)
	r.MustRegister(kind.Timeout, kind.ResourceUnavailable)
	r.MustRegister(kind.NotFound, kind.Fault)
	r.MustRegister(kind.Unexpected, kind.Fault)
	r.MustRegister(kind.Configuration, kind.Fault)
	return r
}

// Register adds k to the tree under parent.
//
// Passing kind.Empty as the parent registers k as the root; that must
// happen exactly once, before any other registration. All failures return a
// *dguard.Record of kind.Configuration wrapping one of the package
// sentinels (ErrDuplicate, ErrUnknownParent, ErrNoRoot, ErrRootConflict,
// or kind.ErrKindInvalid), so callers can branch with errors.Is.
func (r *Registry) Register(k, parent kind.Kind) error {
	if err := kind.Validate(k); err != nil {
		return dguard.E(kind.Configuration, "kind identifier is not canonical",
			dguard.WithContextOption("kind", string(k)),
			dguard.WithCauseOption(err),
		)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Root registration.
	if parent == kind.Empty {
		if r.root != kind.Empty {
			return dguard.E(kind.Configuration, "taxonomy already has a root",
				dguard.WithContextOption("kind", string(k)),
				dguard.WithContextOption("root", string(r.root)),
				dguard.WithCauseOption(ErrRootConflict),
			)
		}
		r.root = k
		return nil
	}

	if r.root == kind.Empty {
		return dguard.E(kind.Configuration, "register the root kind first",
			dguard.WithContextOption("kind", string(k)),
			dguard.WithCauseOption(ErrNoRoot),
		)
	}
	if r.knownLocked(k) {
		return dguard.E(kind.Configuration, "kind is already registered",
			dguard.WithContextOption("kind", string(k)),
			dguard.WithCauseOption(ErrDuplicate),
		)
	}
	if !r.knownLocked(parent) {
		return dguard.E(kind.Configuration, "parent kind is not registered",
			dguard.WithContextOption("kind", string(k)),
			dguard.WithContextOption("parent", string(parent)),
			dguard.WithCauseOption(ErrUnknownParent),
		)
	}

	r.parent[k] = parent
	return nil
}

// MustRegister is the panic-on-error variant of Register. It is meant for
// seeding registries in init()-style startup code where a failure is a
// programming error.
func (r *Registry) MustRegister(k, parent kind.Kind) {
	if err := r.Register(k, parent); err != nil {
		panic(err)
	}
}

// IsDescendant reports whether ancestor lies on k's path to the root.
//
// The walk is O(depth of k). It is trivially true when k == ancestor, even
// for kinds that were never registered; reflexivity is total. Apart from
// that, unregistered kinds match nothing.
func (r *Registry) IsDescendant(k, ancestor kind.Kind) bool {
	if k == ancestor {
		return true
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	cur := k
	for cur != r.root {
		p, ok := r.parent[cur]
		if !ok {
			return false
		}
		if p == ancestor {
			return true
		}
		cur = p
	}
	return false
}

// Catches reports whether err carries a record whose kind is ancestor or
// one of its descendants. This is catch-by-ancestor without inheritance:
// the match covers exactly the registered descendant set, no more, no less.
//
// err may wrap the record arbitrarily deep; extraction uses errors.As.
// A nil error, or an error with no record in its chain, matches nothing.
func (r *Registry) Catches(err error, ancestor kind.Kind) bool {
	if err == nil {
		return false
	}
	var rec *dguard.Record
	if !errors.As(err, &rec) {
		return false
	}
	return r.IsDescendant(rec.Kind, ancestor)
}

// Root returns the root kind, and whether one has been registered.
func (r *Registry) Root() (kind.Kind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.root, r.root != kind.Empty
}

// Parent returns the parent of k, and whether k is a registered non-root
// kind. The root has no parent.
func (r *Registry) Parent(k kind.Kind) (kind.Kind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.parent[k]
	return p, ok
}

// Path returns the chain from k up to the root, both inclusive. It returns
// nil when k is not registered.
func (r *Registry) Path(k kind.Kind) []kind.Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.knownLocked(k) {
		return nil
	}
	path := []kind.Kind{k}
	cur := k
	for cur != r.root {
		cur = r.parent[cur]
		path = append(path, cur)
	}
	return path
}

// Kinds returns all registered kinds in lexical order, root included.
func (r *Registry) Kinds() []kind.Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ks := make([]kind.Kind, 0, len(r.parent)+1)
	if r.root != kind.Empty {
		ks = append(ks, r.root)
	}
	for k := range r.parent {
		ks = append(ks, k)
	}
	sort.Slice(ks, func(i, j int) bool { return ks[i] < ks[j] })
	return ks
}

// Len returns the number of registered kinds, root included.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := len(r.parent)
	if r.root != kind.Empty {
		n++
	}
	return n
}

// knownLocked reports whether k is registered. Callers must hold the lock.
func (r *Registry) knownLocked(k kind.Kind) bool {
	if k == r.root && r.root != kind.Empty {
		return true
	}
	_, ok := r.parent[k]
	return ok
}
