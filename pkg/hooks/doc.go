// Package hooks models identity-based render skipping.
//
// A StateHolder owns independent state slots. Mutating a slot runs one
// render pass: the holder's root Component is called with a Pass, through
// which it creates callbacks (UseCallback), derived values (UseMemo) and
// memoized children (Pass.Child). Each child sits behind a MemoGate that
// compares the new props with the last committed ones and either reuses the
// previous output or executes the child's render logic and bumps its
// RenderCounter.
//
//	h := hooks.NewStateHolder(hooks.HolderConfig{
//	    Slots: []hooks.Slot{{Name: "count", Initial: 0}, {Name: "other", Initial: 0}},
//	}, func(p *hooks.Pass) (*vdom.VNode, error) {
//	    onClick, err := hooks.UseCallback(p, hooks.Stable, func() {}, hooks.Deps{})
//	    if err != nil {
//	        return nil, err
//	    }
//	    child, err := p.Child("child", renderChild, hooks.Props{"onClick": onClick})
//	    if err != nil {
//	        return nil, err
//	    }
//	    return vdom.Div(child), nil
//	})
//	_ = h.Bump("other")
//	n, _ := h.RenderCount("child")
//
// # Identity
//
// Go closures have no observable identity, so callbacks carry an explicit
// Token. Two tokens are equal only if they come from the same creation. A
// Stable callback keeps its token while its dependency list is unchanged;
// an Unstable callback gets a new token on every call.
//
// # Equality
//
// Props and dependency lists are compared shallowly with Same: tokens and
// primitives by value, pointers, slices and maps by reference. Nothing is
// compared deeply.
//
// # Passes
//
// Passes are serialized per holder and atomic. Every change a pass makes is
// journaled; if the root component returns an error or panics, the journal
// is replayed in reverse and the previous committed state stays visible.
// Observers only hear about gate decisions of committed passes.
package hooks
