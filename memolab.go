// Package memolab provides the public API for identity-based render skipping.
//
// This is the recommended import for most programs:
//
//	import "github.com/vango-dev/memolab"
//
// Usage:
//
//	h := memolab.NewHolder("counter", root, memolab.Slot{Name: "count", Initial: 0})
//	if err := h.Mount(); err != nil { ... }
//	h.Bump("count")
//	n, _ := h.RenderCount("child")
package memolab

import (
	"github.com/vango-dev/memolab/pkg/hooks"
)

// =============================================================================
// Identity
// =============================================================================

// Token is an opaque identity. Two tokens are equal only if one was copied
// from the other.
type Token = hooks.Token

// NewToken returns a fresh, never-before-issued token.
func NewToken() Token {
	return hooks.NewToken()
}

// IdentityEquals reports whether a and b are the same non-zero identity.
func IdentityEquals(a, b Token) bool {
	return hooks.IdentityEquals(a, b)
}

// Deps is a dependency list compared element-wise by shallow equality.
// A nil Deps means "no list": it never matches anything.
type Deps = hooks.Deps

// Same reports whether two dependency elements are shallowly equal.
var Same = hooks.Same

// =============================================================================
// Callbacks and memoized values
// =============================================================================

// Mode selects whether a callback keeps its identity across renders.
type Mode = hooks.Mode

const (
	Stable   = hooks.Stable
	Unstable = hooks.Unstable
)

// CallbackFactory issues identity-bearing callbacks keyed by call site.
type CallbackFactory = hooks.CallbackFactory

// NewCallbackFactory creates an empty factory.
func NewCallbackFactory() *CallbackFactory {
	return hooks.NewCallbackFactory()
}

// NewCallback returns fn wrapped with an identity bound to key in f.
func NewCallback[F any](f *CallbackFactory, key any, mode Mode, deps Deps, fn F) (hooks.Callback[F], error) {
	return hooks.NewCallback(f, key, mode, deps, fn)
}

// NewValueMemoizer creates a memoizer that caches one value per dependency
// list.
func NewValueMemoizer[T any]() *hooks.ValueMemoizer[T] {
	return hooks.NewValueMemoizer[T]()
}

// =============================================================================
// Memoized children
// =============================================================================

// Props are the named inputs of a memoized child.
type Props = hooks.Props

// RenderFunc renders a child from its props.
type RenderFunc = hooks.RenderFunc

// MemoGate decides whether a child re-renders.
type MemoGate = hooks.MemoGate

// GateOptions configures a MemoGate.
type GateOptions = hooks.GateOptions

// RenderCounter counts executed renders of one gate instance.
type RenderCounter = hooks.RenderCounter

// =============================================================================
// State holders and render passes
// =============================================================================

// StateHolder owns state slots and re-renders its root on every mutation.
type StateHolder = hooks.StateHolder

// HolderConfig configures a StateHolder.
type HolderConfig = hooks.HolderConfig

// Slot is one named state value and its initial value.
type Slot = hooks.Slot

// Component is the root render function of a holder.
type Component = hooks.Component

// Pass is one render of a holder's root.
type Pass = hooks.Pass

// Snapshot is a read-only view of a holder.
type Snapshot = hooks.Snapshot

// NewHolder creates an unmounted holder with the given slots.
func NewHolder(name string, root Component, slots ...Slot) *StateHolder {
	return hooks.NewStateHolder(hooks.HolderConfig{Name: name, Slots: slots}, root)
}

// NewStateHolder creates an unmounted holder from cfg.
func NewStateHolder(cfg HolderConfig, root Component) *StateHolder {
	return hooks.NewStateHolder(cfg, root)
}

// UseCallback returns a callback bound to this call site of the pass.
func UseCallback[F any](p *Pass, mode Mode, fn F, deps Deps) (hooks.Callback[F], error) {
	return hooks.UseCallback(p, mode, fn, deps)
}

// UseMemo returns compute's cached result while deps are unchanged.
func UseMemo[T any](p *Pass, compute func() T, deps Deps) (T, error) {
	return hooks.UseMemo(p, compute, deps)
}

// UseRef returns a value that survives across passes.
func UseRef[T any](p *Pass, initial T) (*hooks.Ref[T], error) {
	return hooks.UseRef(p, initial)
}

// =============================================================================
// Observation
// =============================================================================

// Observer watches render passes.
type Observer = hooks.Observer

// PassInfo describes one render pass.
type PassInfo = hooks.PassInfo

// Decision is one gate's skip/execute outcome.
type Decision = hooks.Decision

// NopObserver ignores everything.
type NopObserver = hooks.NopObserver

// Observers fans out to every non-nil observer.
func Observers(obs ...Observer) Observer {
	return hooks.Observers(obs...)
}

// =============================================================================
// Errors
// =============================================================================

var (
	ErrMalformedDeps    = hooks.ErrMalformedDeps
	ErrGateUnmounted    = hooks.ErrGateUnmounted
	ErrPropShapeChanged = hooks.ErrPropShapeChanged
	ErrHookOrderChanged = hooks.ErrHookOrderChanged
	ErrUnknownSlot      = hooks.ErrUnknownSlot
	ErrUnknownGate      = hooks.ErrUnknownGate
	ErrGateReentered    = hooks.ErrGateReentered
	ErrRenderPanic      = hooks.ErrRenderPanic
	ErrPassFailed       = hooks.ErrPassFailed
	ErrHolderDisposed   = hooks.ErrHolderDisposed
)

// IsRecoverable reports whether err is a shape warning after which the
// returned value is still valid.
func IsRecoverable(err error) bool {
	return hooks.IsRecoverable(err)
}
