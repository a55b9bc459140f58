package hooks

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	lerrors "github.com/vango-dev/memolab/internal/errors"
	"github.com/vango-dev/memolab/pkg/vdom"
)

// Slot declares one state slot and its initial value.
type Slot struct {
	Name    string
	Initial any
}

// HolderConfig configures a StateHolder.
type HolderConfig struct {
	// Name identifies the holder in logs and metrics.
	Name string

	// Slots are the holder's state slots, in display order.
	Slots []Slot

	// Equal overrides prop comparison for every gate. Defaults to Same.
	Equal func(a, b any) bool

	// Observer is notified about passes. Defaults to NopObserver.
	Observer Observer

	// Logger receives pass logs. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// StateHolder owns independent state slots and the memoized children
// rendered beneath it. Each mutation runs exactly one render pass; passes
// never overlap.
type StateHolder struct {
	mu sync.Mutex

	id       string
	name     string
	root     Component
	owner    *Owner
	equal    func(a, b any) bool
	observer Observer
	logger   *slog.Logger

	order []string
	slots map[string]any
	gates map[string]*MemoGate

	output   *vdom.VNode
	passes   uint64
	failed   uint64
	warnings []string
	lastErr  error
	disposed bool
}

// NewStateHolder creates a holder. No pass runs until Mount or a mutation.
func NewStateHolder(cfg HolderConfig, root Component) *StateHolder {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	observer := cfg.Observer
	if observer == nil {
		observer = NopObserver{}
	}
	name := cfg.Name
	if name == "" {
		name = "holder"
	}

	h := &StateHolder{
		id:       uuid.NewString(),
		name:     name,
		root:     root,
		owner:    NewOwner(nil, name),
		equal:    cfg.Equal,
		observer: observer,
		slots:    make(map[string]any, len(cfg.Slots)),
		gates:    make(map[string]*MemoGate),
	}
	h.logger = logger.With("holder", name, "holder_id", h.id)
	for _, s := range cfg.Slots {
		if _, dup := h.slots[s.Name]; !dup {
			h.order = append(h.order, s.Name)
		}
		h.slots[s.Name] = s.Initial
	}
	return h
}

// ID returns the holder's unique instance id.
func (h *StateHolder) ID() string {
	return h.id
}

// Name returns the holder's name.
func (h *StateHolder) Name() string {
	return h.name
}

// Mount runs a pass without changing any slot.
func (h *StateHolder) Mount() error {
	return h.run(context.Background(), "", nil)
}

// Mutate replaces slot with fn(old) and runs one pass. If the pass fails the
// slot keeps its old value and the returned error matches ErrPassFailed.
func (h *StateHolder) Mutate(ctx context.Context, slot string, fn func(old any) any) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return h.run(ctx, slot, fn)
}

// Set stores v in slot and runs one pass.
func (h *StateHolder) Set(slot string, v any) error {
	return h.Mutate(context.Background(), slot, func(any) any { return v })
}

// Update stores fn(old) in slot and runs one pass.
func (h *StateHolder) Update(slot string, fn func(old any) any) error {
	return h.Mutate(context.Background(), slot, fn)
}

// Bump increments an int slot and runs one pass.
func (h *StateHolder) Bump(slot string) error {
	return h.Mutate(context.Background(), slot, func(old any) any {
		n, _ := old.(int)
		return n + 1
	})
}

// Get returns the committed value of slot.
func (h *StateHolder) Get(slot string) (any, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.slots[slot]
	return v, ok
}

// SlotNames returns the slot names in declaration order.
func (h *StateHolder) SlotNames() []string {
	return append([]string(nil), h.order...)
}

// RenderCount returns the render count of the mounted gate name.
func (h *StateHolder) RenderCount(name string) (uint64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	g, ok := h.gates[name]
	if !ok {
		return 0, lerrors.New(lerrors.CodeUnknownGate).WithDetailf("gate %q in %s", name, h.name)
	}
	return g.RenderCount(), nil
}

// Gate returns the mounted gate name.
func (h *StateHolder) Gate(name string) (*MemoGate, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	g, ok := h.gates[name]
	return g, ok
}

// Output returns the root component's output from the last committed pass.
func (h *StateHolder) Output() *vdom.VNode {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.output
}

// Passes returns the number of committed passes.
func (h *StateHolder) Passes() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.passes
}

// Dispose unmounts every gate. Later mutations return ErrHolderDisposed.
func (h *StateHolder) Dispose() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.disposed {
		return
	}
	h.disposed = true
	h.owner.Dispose()
	h.gates = map[string]*MemoGate{}
}

// run executes one pass under the holder lock.
func (h *StateHolder) run(ctx context.Context, slot string, fn func(any) any) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.disposed {
		return lerrors.New(lerrors.CodeHolderDisposed).WithDetailf("holder %s", h.name)
	}
	if slot != "" {
		if _, ok := h.slots[slot]; !ok {
			return lerrors.New(lerrors.CodeUnknownSlot).WithDetailf("slot %q in %s", slot, h.name)
		}
	}

	p := &Pass{
		holder:  h,
		owner:   h.owner,
		changed: make(map[string]bool),
		visited: make(map[string]bool),
		info: PassInfo{
			Holder:   h.name,
			HolderID: h.id,
			Seq:      h.passes + 1,
			Trigger:  slot,
			Started:  time.Now(),
		},
	}
	p.ctx = h.observer.PassStarted(ctx, p.info)

	out, err := h.render(p, slot, fn)
	p.info.Duration = time.Since(p.info.Started)

	if err != nil {
		p.rollback()
		h.failed++
		h.lastErr = err
		h.logger.Warn("render pass rolled back",
			"seq", p.info.Seq, "trigger", slot, "error", err)
		h.observer.PassFinished(p.ctx, p.info, err)
		return lerrors.New(lerrors.CodePassFailed).WithDetailf("%s pass %d", h.name, p.info.Seq).Wrap(err)
	}

	h.commit(p, out)
	for _, d := range p.decisions {
		h.logger.Debug("gate decision",
			"seq", p.info.Seq, "gate", d.Gate, "executed", d.Executed, "changed", d.Changed, "renders", d.Renders)
		h.observer.GateDecided(p.ctx, p.info, d)
	}
	for _, w := range p.warnings {
		h.logger.Warn("dependency shape changed", "seq", p.info.Seq, "error", w)
	}
	h.logger.Debug("render pass committed",
		"seq", p.info.Seq, "trigger", slot, "gates", len(p.decisions), "duration", p.info.Duration)
	h.observer.PassFinished(p.ctx, p.info, nil)
	return nil
}

// render applies the mutation and runs the root component, converting
// panics into ErrRenderPanic.
func (h *StateHolder) render(p *Pass, slot string, fn func(any) any) (out *vdom.VNode, err error) {
	hooks := h.owner.snapshotHooks()
	p.record(func() { h.owner.restoreHooks(hooks) })

	defer func() {
		if r := recover(); r != nil {
			err = lerrors.New(lerrors.CodeRenderPanic).WithDetail(fmt.Sprint(r))
		}
	}()

	if slot != "" {
		old := h.slots[slot]
		next := fn(old)
		h.slots[slot] = next
		p.record(func() { h.slots[slot] = old })
		p.changed[slot] = !Same(old, next)
	}

	h.owner.StartRender()
	out, err = h.root(p)
	if err != nil {
		return nil, err
	}
	if err := h.owner.EndRender(); err != nil {
		return nil, err
	}
	return out, nil
}

// commit publishes a successful pass and unmounts children it didn't render.
func (h *StateHolder) commit(p *Pass, out *vdom.VNode) {
	h.output = out
	h.passes = p.info.Seq
	h.lastErr = nil
	h.warnings = h.warnings[:0]
	for _, w := range p.warnings {
		h.warnings = append(h.warnings, w.Error())
	}

	for name, g := range h.gates {
		if !p.visited[name] {
			g.owner.Dispose()
			delete(h.gates, name)
			h.logger.Debug("gate unmounted", "gate", name, "seq", p.info.Seq)
		}
	}
}

// GateSnapshot is a read-only view of one gate.
type GateSnapshot struct {
	Name         string   `json:"name" yaml:"name"`
	Renders      uint64   `json:"renders" yaml:"renders"`
	LastExecuted bool     `json:"lastExecuted" yaml:"lastExecuted"`
	Keys         []string `json:"keys" yaml:"keys"`
}

// Snapshot is a read-only view of a holder.
type Snapshot struct {
	Holder       string         `json:"holder" yaml:"holder"`
	ID           string         `json:"id" yaml:"id"`
	Passes       uint64         `json:"passes" yaml:"passes"`
	FailedPasses uint64         `json:"failedPasses" yaml:"failedPasses"`
	Slots        map[string]any `json:"slots" yaml:"slots"`
	Gates        []GateSnapshot `json:"gates" yaml:"gates"`
	Warnings     []string       `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	LastError    string         `json:"lastError,omitempty" yaml:"lastError,omitempty"`
}

// Snapshot returns the committed state.
func (h *StateHolder) Snapshot() Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()

	s := Snapshot{
		Holder:       h.name,
		ID:           h.id,
		Passes:       h.passes,
		FailedPasses: h.failed,
		Slots:        make(map[string]any, len(h.slots)),
		Gates:        make([]GateSnapshot, 0, len(h.gates)),
		Warnings:     append([]string(nil), h.warnings...),
	}
	if h.lastErr != nil {
		s.LastError = h.lastErr.Error()
	}
	for k, v := range h.slots {
		s.Slots[k] = v
	}
	for name, g := range h.gates {
		s.Gates = append(s.Gates, GateSnapshot{
			Name:         name,
			Renders:      g.RenderCount(),
			LastExecuted: g.LastExecuted(),
			Keys:         g.Keys(),
		})
	}
	sort.Slice(s.Gates, func(i, j int) bool { return s.Gates[i].Name < s.Gates[j].Name })
	return s
}
