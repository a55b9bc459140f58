package hooks

import (
	"fmt"
	"sort"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	lerrors "github.com/vango-dev/memolab/internal/errors"
	"github.com/vango-dev/memolab/pkg/vdom"
)

// Props maps prop names to values passed into a memoized child.
type Props map[string]any

// Keys returns the prop names in sorted order.
func (p Props) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// clone returns a shallow copy so callers can't mutate committed props.
func (p Props) clone() Props {
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// RenderFunc is the render logic of a memoized child.
type RenderFunc func(props Props) *vdom.VNode

// GateOptions configures a MemoGate.
type GateOptions struct {
	// Name identifies the gate in errors and observations.
	Name string

	// Equal overrides the per-prop comparison. Defaults to Same.
	Equal func(a, b any) bool
}

// Result is the outcome of one MemoGate.Render call.
type Result struct {
	// Output is the committed output: new on execute, reused on skip.
	Output *vdom.VNode

	// Executed is true when the render logic ran.
	Executed bool

	// Changed lists the prop names that differed from the last props.
	// It is empty for first renders and skips.
	Changed []string

	// Renders is the render count after this call.
	Renders uint64
}

// MemoGate skips a child's render logic when its props are shallowly equal
// to the props of its last executed render.
//
// lastProps and lastOutput are only replaced together, so the cached output
// is always the result of rendering the cached props.
type MemoGate struct {
	mu     sync.Mutex
	name   string
	owner  *Owner
	render RenderFunc
	equal  func(a, b any) bool

	keys       mapset.Set[string]
	lastProps  Props
	lastOutput *vdom.VNode
	executed   bool
	counter    RenderCounter
}

// NewMemoGate creates a gate owned by owner. Disposing the owner unmounts
// the gate.
func NewMemoGate(owner *Owner, render RenderFunc, opts GateOptions) *MemoGate {
	eq := opts.Equal
	if eq == nil {
		eq = Same
	}
	name := opts.Name
	if name == "" && owner != nil {
		name = owner.Name()
	}
	return &MemoGate{
		name:   name,
		owner:  owner,
		render: render,
		equal:  eq,
	}
}

// Name returns the gate's name.
func (g *MemoGate) Name() string {
	return g.name
}

// RenderCount returns how many times the render logic executed.
func (g *MemoGate) RenderCount() uint64 {
	return g.counter.Value()
}

// LastExecuted reports whether the most recent Render executed.
func (g *MemoGate) LastExecuted() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.executed
}

// Output returns the last committed output.
func (g *MemoGate) Output() *vdom.VNode {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastOutput
}

// Keys returns the locked prop key set in sorted order.
func (g *MemoGate) Keys() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.keys == nil {
		return nil
	}
	keys := g.keys.ToSlice()
	sort.Strings(keys)
	return keys
}

// swapRender replaces the render logic and returns the previous one.
func (g *MemoGate) swapRender(render RenderFunc) RenderFunc {
	g.mu.Lock()
	defer g.mu.Unlock()
	prev := g.render
	g.render = render
	return prev
}

// Unmounted reports whether the owning instance has been disposed.
func (g *MemoGate) Unmounted() bool {
	return g.owner != nil && g.owner.IsDisposed()
}

// Render decides whether to skip or execute for props.
//
// The first call always executes and locks the prop key set. Later calls
// execute if any prop differs by the gate's equality; otherwise they return
// the cached output without touching the counter. If the key set differs
// from the locked one, Render executes and also returns ErrPropShapeChanged.
// A gate whose owner was disposed returns ErrGateUnmounted and changes nothing.
func (g *MemoGate) Render(props Props) (Result, error) {
	if g.Unmounted() {
		return Result{}, lerrors.New(lerrors.CodeGateUnmounted).WithDetailf("gate %q", g.name)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.lastProps == nil {
		return g.execute(props, nil)
	}

	newKeys := mapset.NewThreadUnsafeSetFromMapKeys(props)
	if !newKeys.Equal(g.keys) {
		diff := g.keys.SymmetricDifference(newKeys).ToSlice()
		sort.Strings(diff)
		res, err := g.execute(props, diff)
		if err != nil {
			return res, err
		}
		return res, lerrors.New(lerrors.CodePropShapeChanged).
			WithDetailf("gate %q: keys %v changed", g.name, diff)
	}

	var changed []string
	for _, k := range props.Keys() {
		if !g.equal(g.lastProps[k], props[k]) {
			changed = append(changed, k)
		}
	}
	if len(changed) == 0 {
		g.executed = false
		return Result{Output: g.lastOutput, Renders: g.counter.Value()}, nil
	}
	return g.execute(props, changed)
}

// execute runs the render logic. Must be called with g.mu held. State is
// only updated once the render logic has returned.
func (g *MemoGate) execute(props Props, changed []string) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = lerrors.New(lerrors.CodeRenderPanic).WithDetailf("gate %q: %v", g.name, r)
		}
	}()

	out := g.render(props)

	g.lastProps = props.clone()
	g.lastOutput = out
	g.keys = mapset.NewThreadUnsafeSetFromMapKeys(props)
	g.executed = true
	n := g.counter.inc()
	return Result{Output: out, Executed: true, Changed: changed, Renders: n}, nil
}

// gateState is the restorable state of a gate.
type gateState struct {
	keys       mapset.Set[string]
	lastProps  Props
	lastOutput *vdom.VNode
	executed   bool
	renders    uint64
}

// restoreFunc captures the gate state and returns a function that puts it back.
func (g *MemoGate) restoreFunc() func() {
	g.mu.Lock()
	s := gateState{
		keys:       g.keys,
		lastProps:  g.lastProps,
		lastOutput: g.lastOutput,
		executed:   g.executed,
		renders:    g.counter.Value(),
	}
	g.mu.Unlock()

	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		g.keys, g.lastProps, g.lastOutput, g.executed = s.keys, s.lastProps, s.lastOutput, s.executed
		g.counter.set(s.renders)
	}
}

// String describes the gate for logs.
func (g *MemoGate) String() string {
	return fmt.Sprintf("gate(%s renders=%d)", g.name, g.RenderCount())
}
