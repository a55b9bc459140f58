package hooks

import (
	"sync"
	"sync/atomic"

	lerrors "github.com/vango-dev/memolab/internal/errors"
)

// HookType identifies the type of hook call for order validation.
type HookType uint8

const (
	HookCallback HookType = iota + 1
	HookMemo
	HookRef
)

// String returns a human-readable name for the hook type.
func (h HookType) String() string {
	switch h {
	case HookCallback:
		return "Callback"
	case HookMemo:
		return "Memo"
	case HookRef:
		return "Ref"
	default:
		return "Unknown"
	}
}

// Owner is the scope of one mounted component instance. It owns the
// instance's hook slots, callback bindings and child owners. Two instances
// of the same component definition always have separate owners, so nothing
// they track is shared.
type Owner struct {
	id   uint64
	name string

	parent *Owner

	children   []*Owner
	childrenMu sync.Mutex

	cleanups   []func()
	cleanupsMu sync.Mutex

	disposed atomic.Bool

	// Hook bookkeeping. Only touched during a render, which the holder
	// serializes.
	hookOrder   []HookType
	hookIndex   int
	rendered    bool
	hookSlots   []any
	hookSlotIdx int

	callbacks *CallbackFactory
}

// NewOwner creates a new Owner with the given parent.
// The new Owner is registered as a child of the parent. If parent is nil,
// creates a root Owner.
func NewOwner(parent *Owner, name string) *Owner {
	o := &Owner{
		id:        nextID(),
		name:      name,
		parent:    parent,
		callbacks: NewCallbackFactory(),
	}
	if parent != nil {
		parent.addChild(o)
	}
	return o
}

// ID returns the unique identifier for this Owner.
func (o *Owner) ID() uint64 {
	return o.id
}

// Name returns the instance name given at creation.
func (o *Owner) Name() string {
	return o.name
}

// Parent returns the parent Owner, or nil if this is a root Owner.
func (o *Owner) Parent() *Owner {
	return o.parent
}

// IsDisposed returns true if this Owner has been disposed.
func (o *Owner) IsDisposed() bool {
	return o.disposed.Load()
}

// Children returns a copy of the child owners.
func (o *Owner) Children() []*Owner {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()
	return append([]*Owner(nil), o.children...)
}

func (o *Owner) addChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()
	o.children = append(o.children, child)
}

func (o *Owner) removeChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()

	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			return
		}
	}
}

// OnCleanup registers a cleanup function to run when this Owner is disposed.
func (o *Owner) OnCleanup(fn func()) {
	if o.disposed.Load() {
		fn()
		return
	}

	o.cleanupsMu.Lock()
	defer o.cleanupsMu.Unlock()
	o.cleanups = append(o.cleanups, fn)
}

// Dispose disposes this Owner and all its children. Children are disposed
// in reverse creation order, then cleanups run in reverse registration order.
func (o *Owner) Dispose() {
	if o.disposed.Swap(true) {
		return
	}

	if o.parent != nil {
		o.parent.removeChild(o)
	}

	o.childrenMu.Lock()
	children := o.children
	o.children = nil
	o.childrenMu.Unlock()

	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}

	o.cleanupsMu.Lock()
	cleanups := o.cleanups
	o.cleanups = nil
	o.cleanupsMu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}

// =============================================================================
// Hook order validation
// =============================================================================

// StartRender resets the hook cursors at the beginning of a render.
func (o *Owner) StartRender() {
	o.hookIndex = 0
	o.hookSlotIdx = 0
}

// EndRender locks in the hook order after the first render and checks that
// later renders called every expected hook.
func (o *Owner) EndRender() error {
	if !o.rendered {
		o.rendered = true
		return nil
	}
	if o.hookIndex < len(o.hookOrder) {
		return lerrors.New(lerrors.CodeHookOrderChanged).
			WithDetailf("%s: expected %d hooks, got %d", o.name, len(o.hookOrder), o.hookIndex)
	}
	return nil
}

// TrackHook records a hook call. On the first render it appends to the
// expected order; on later renders it validates against it.
func (o *Owner) TrackHook(ht HookType) error {
	if !o.rendered {
		o.hookOrder = append(o.hookOrder, ht)
		o.hookIndex++
		return nil
	}
	if o.hookIndex >= len(o.hookOrder) {
		return lerrors.New(lerrors.CodeHookOrderChanged).
			WithDetailf("%s: extra %s hook at index %d", o.name, ht, o.hookIndex)
	}
	if expected := o.hookOrder[o.hookIndex]; expected != ht {
		return lerrors.New(lerrors.CodeHookOrderChanged).
			WithDetailf("%s: hook %d was %s, now %s", o.name, o.hookIndex, expected, ht)
	}
	o.hookIndex++
	return nil
}

// =============================================================================
// Hook slot storage
// =============================================================================

// UseHookSlot returns the slot index for the current hook and its stored
// value, or nil on the first render.
func (o *Owner) UseHookSlot() (int, any) {
	idx := o.hookSlotIdx
	o.hookSlotIdx++
	if idx < len(o.hookSlots) {
		return idx, o.hookSlots[idx]
	}
	return idx, nil
}

// SetHookSlot stores a value in the slot returned by UseHookSlot.
func (o *Owner) SetHookSlot(idx int, value any) {
	for len(o.hookSlots) <= idx {
		o.hookSlots = append(o.hookSlots, nil)
	}
	o.hookSlots[idx] = value
}

// hookState is the restorable part of the owner's hook bookkeeping.
type hookState struct {
	orderLen int
	slotsLen int
	rendered bool
}

func (o *Owner) snapshotHooks() hookState {
	return hookState{
		orderLen: len(o.hookOrder),
		slotsLen: len(o.hookSlots),
		rendered: o.rendered,
	}
}

func (o *Owner) restoreHooks(s hookState) {
	o.hookOrder = o.hookOrder[:s.orderLen]
	o.hookSlots = o.hookSlots[:s.slotsLen]
	o.rendered = s.rendered
}
