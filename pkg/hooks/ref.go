package hooks

// Ref is a mutable box that survives across passes without affecting
// rendering. Writes made during a failed pass are rolled back.
type Ref[T any] struct {
	Current T
}

// UseRef returns the ref stored at the current call site, creating it with
// initial on the first pass.
func UseRef[T any](p *Pass, initial T) (*Ref[T], error) {
	o := p.owner
	if err := o.TrackHook(HookRef); err != nil {
		return nil, err
	}

	idx, slot := o.UseHookSlot()
	if slot == nil {
		ref := &Ref[T]{Current: initial}
		o.SetHookSlot(idx, ref)
		return ref, nil
	}

	ref, ok := slot.(*Ref[T])
	if !ok {
		return nil, hookTypeMismatch(o, idx, slot)
	}
	prev := ref.Current
	p.record(func() { ref.Current = prev })
	return ref, nil
}
