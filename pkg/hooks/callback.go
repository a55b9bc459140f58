package hooks

import (
	"sync"

	lerrors "github.com/vango-dev/memolab/internal/errors"
)

// Mode selects how a CallbackFactory assigns identity.
type Mode uint8

const (
	// Unstable returns a new token on every call.
	Unstable Mode = iota
	// Stable keeps the token while the dependency list is unchanged.
	Stable
)

// String returns the mode name.
func (m Mode) String() string {
	if m == Stable {
		return "stable"
	}
	return "unstable"
}

// Callback is a function value with an identity token.
type Callback[F any] struct {
	token Token
	fn    F
}

// Identity implements Identified.
func (c Callback[F]) Identity() Token {
	return c.token
}

// Fn returns the wrapped function.
func (c Callback[F]) Fn() F {
	return c.fn
}

// String renders the callback's token.
func (c Callback[F]) String() string {
	return c.token.String()
}

// binding is the stored identity for one call site.
type binding struct {
	deps  Deps
	token Token
	fn    any
}

// CallbackFactory hands out callback identities. Stable callbacks are
// stored per key (the call site) together with the dependency list that
// produced them.
type CallbackFactory struct {
	mu       sync.Mutex
	bindings map[any]binding
}

// NewCallbackFactory creates an empty factory.
func NewCallbackFactory() *CallbackFactory {
	return &CallbackFactory{bindings: make(map[any]binding)}
}

// NewCallback returns a callback for key.
//
// In Unstable mode the result always has a fresh token and nothing is stored.
// In Stable mode, if deps equals the list stored for key, the stored token
// and function are returned; otherwise fn gets a new token and replaces the
// binding. A change in the number of deps is reported as ErrMalformedDeps
// and still replaces the binding. key must be comparable.
func NewCallback[F any](f *CallbackFactory, key any, mode Mode, deps Deps, fn F) (Callback[F], error) {
	if mode == Unstable {
		return Callback[F]{token: NewToken(), fn: fn}, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	prev, ok := f.bindings[key]
	if ok && prev.deps.Equal(deps) {
		if prev.fn == nil {
			var zero F
			return Callback[F]{token: prev.token, fn: zero}, nil
		}
		if stored, typed := prev.fn.(F); typed {
			return Callback[F]{token: prev.token, fn: stored}, nil
		}
	}

	var err error
	if ok && arityChanged(prev.deps, deps) {
		err = lerrors.New(lerrors.CodeMalformedDeps).
			WithDetailf("callback %v: %d deps, previously %d", key, len(deps), len(prev.deps))
	}

	b := binding{deps: deps.Clone(), token: NewToken(), fn: fn}
	f.bindings[key] = b
	return Callback[F]{token: b.token, fn: fn}, err
}

// Token returns the token currently bound to key.
func (f *CallbackFactory) Token(key any) (Token, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bindings[key]
	return b.token, ok
}

// Forget drops the binding for key.
func (f *CallbackFactory) Forget(key any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.bindings, key)
}

// Len returns the number of stored bindings.
func (f *CallbackFactory) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bindings)
}

// restoreFunc captures the binding for key and returns a function that puts it back.
func (f *CallbackFactory) restoreFunc(key any) func() {
	f.mu.Lock()
	prev, ok := f.bindings[key]
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if ok {
			f.bindings[key] = prev
		} else {
			delete(f.bindings, key)
		}
	}
}
