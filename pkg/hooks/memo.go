package hooks

import (
	"sync"

	lerrors "github.com/vango-dev/memolab/internal/errors"
)

// ValueMemoizer caches one computed value keyed by a dependency list.
type ValueMemoizer[T any] struct {
	mu           sync.Mutex
	deps         Deps
	value        T
	has          bool
	computations uint64
}

// NewValueMemoizer creates an empty memoizer.
func NewValueMemoizer[T any]() *ValueMemoizer[T] {
	return &ValueMemoizer[T]{}
}

// Get returns the cached value if deps equals the list from the last
// computation. Otherwise it calls compute once, caches the result with a
// copy of deps and returns it. A nil deps always recomputes.
//
// If deps changed length since the last call, Get still recomputes and
// returns the new value together with ErrMalformedDeps.
func (m *ValueMemoizer[T]) Get(compute func() T, deps Deps) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.has && m.deps.Equal(deps) {
		return m.value, nil
	}

	var err error
	if m.has && arityChanged(m.deps, deps) {
		err = lerrors.New(lerrors.CodeMalformedDeps).
			WithDetailf("memo: %d deps, previously %d", len(deps), len(m.deps))
	}

	value := compute()
	m.value = value
	m.deps = deps.Clone()
	m.has = true
	m.computations++
	return value, err
}

// Peek returns the cached value without computing.
func (m *ValueMemoizer[T]) Peek() (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value, m.has
}

// Computations returns how many times compute has been called.
func (m *ValueMemoizer[T]) Computations() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.computations
}

// restoreFunc captures the cache and returns a function that puts it back.
func (m *ValueMemoizer[T]) restoreFunc() func() {
	m.mu.Lock()
	deps, value, has, n := m.deps, m.value, m.has, m.computations
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.deps, m.value, m.has, m.computations = deps, value, has, n
	}
}
