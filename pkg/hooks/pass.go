package hooks

import (
	"context"
	"fmt"

	lerrors "github.com/vango-dev/memolab/internal/errors"
	"github.com/vango-dev/memolab/pkg/vdom"
)

// Component is the render logic of a holder. It runs once per pass.
type Component func(p *Pass) (*vdom.VNode, error)

// Pass is one render pass in progress. It is only valid inside the
// Component call it was handed to.
type Pass struct {
	ctx     context.Context
	holder  *StateHolder
	owner   *Owner
	info    PassInfo
	changed map[string]bool

	journal   []func()
	visited   map[string]bool
	decisions []Decision
	warnings  []error
}

// Context returns the pass context.
func (p *Pass) Context() context.Context {
	return p.ctx
}

// Seq returns the pass number.
func (p *Pass) Seq() uint64 {
	return p.info.Seq
}

// Trigger returns the slot whose mutation started this pass.
func (p *Pass) Trigger() string {
	return p.info.Trigger
}

// Value returns the current value of slot, or nil if it doesn't exist.
func (p *Pass) Value(slot string) any {
	return p.holder.slots[slot]
}

// Int returns the current value of slot as an int, or 0.
func (p *Pass) Int(slot string) int {
	n, _ := p.holder.slots[slot].(int)
	return n
}

// Changed reports whether slot's value differs from the previous pass.
func (p *Pass) Changed(slot string) bool {
	return p.changed[slot]
}

// Renders returns the render count of a child already rendered in this
// pass, or 0.
func (p *Pass) Renders(name string) uint64 {
	if g, ok := p.holder.gates[name]; ok {
		return g.RenderCount()
	}
	return 0
}

// Warnings returns recoverable shape errors reported so far in this pass.
func (p *Pass) Warnings() []error {
	return append([]error(nil), p.warnings...)
}

// record adds an undo step to the pass journal.
func (p *Pass) record(undo func()) {
	p.journal = append(p.journal, undo)
}

// rollback replays the journal in reverse.
func (p *Pass) rollback() {
	for i := len(p.journal) - 1; i >= 0; i-- {
		p.journal[i]()
	}
	p.journal = nil
}

// soft records a recoverable error and returns nil; hard errors pass through.
func (p *Pass) soft(err error) error {
	if err == nil {
		return nil
	}
	if IsRecoverable(err) {
		p.warnings = append(p.warnings, err)
		return nil
	}
	return err
}

// Child renders the memoized child name with props. The gate is created on
// first use and persists across passes while the parent keeps rendering it.
// Children not rendered in a committed pass are unmounted.
//
// Shape warnings are collected in Warnings rather than returned.
func (p *Pass) Child(name string, render RenderFunc, props Props) (*vdom.VNode, error) {
	if p.visited[name] {
		return nil, lerrors.New(lerrors.CodeGateReentered).WithDetailf("gate %q", name)
	}
	p.visited[name] = true

	h := p.holder
	g, ok := h.gates[name]
	if !ok {
		g = NewMemoGate(NewOwner(p.owner, name), render, GateOptions{Name: name, Equal: h.equal})
		h.gates[name] = g
		p.record(func() {
			delete(h.gates, name)
			g.owner.Dispose()
		})
	} else {
		p.record(g.restoreFunc())
		// Render logic may be a fresh closure each pass; the latest one is
		// what runs on execute, matching the latest props.
		prevRender := g.swapRender(render)
		p.record(func() { g.swapRender(prevRender) })
	}

	res, err := g.Render(props)
	if err = p.soft(err); err != nil {
		return nil, err
	}
	p.decisions = append(p.decisions, Decision{
		Gate:     name,
		Executed: res.Executed,
		Changed:  res.Changed,
		Renders:  res.Renders,
	})
	return res.Output, nil
}

// UseCallback returns a callback whose identity is bound to this call site.
// See NewCallback for the Stable/Unstable rules.
func UseCallback[F any](p *Pass, mode Mode, fn F, deps Deps) (Callback[F], error) {
	o := p.owner
	if err := o.TrackHook(HookCallback); err != nil {
		return Callback[F]{}, err
	}

	idx, slot := o.UseHookSlot()
	if slot == nil {
		o.SetHookSlot(idx, HookCallback)
	} else if slot != HookCallback {
		return Callback[F]{}, hookTypeMismatch(o, idx, slot)
	}

	key := callSite{owner: o.id, slot: idx}
	p.record(o.callbacks.restoreFunc(key))
	cb, err := NewCallback(o.callbacks, key, mode, deps, fn)
	return cb, p.soft(err)
}

// UseMemo returns a value cached at this call site, recomputed only when
// deps change. See ValueMemoizer.Get.
func UseMemo[T any](p *Pass, compute func() T, deps Deps) (T, error) {
	var zero T
	o := p.owner
	if err := o.TrackHook(HookMemo); err != nil {
		return zero, err
	}

	idx, slot := o.UseHookSlot()
	var m *ValueMemoizer[T]
	if slot == nil {
		m = NewValueMemoizer[T]()
		o.SetHookSlot(idx, m)
	} else {
		var ok bool
		if m, ok = slot.(*ValueMemoizer[T]); !ok {
			return zero, hookTypeMismatch(o, idx, slot)
		}
		p.record(m.restoreFunc())
	}

	v, err := m.Get(compute, deps)
	return v, p.soft(err)
}

// callSite keys a stable callback binding.
type callSite struct {
	owner uint64
	slot  int
}

func hookTypeMismatch(o *Owner, idx int, slot any) error {
	return lerrors.New(lerrors.CodeHookOrderChanged).
		WithDetail(fmt.Sprintf("%s: slot %d holds %T", o.name, idx, slot))
}
