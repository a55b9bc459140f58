package hooks

import "sync/atomic"

// RenderCounter counts executed renders of one gate instance. It never
// decreases except when a failed pass is rolled back.
type RenderCounter struct {
	n atomic.Uint64
}

// Value returns the number of executed renders.
func (c *RenderCounter) Value() uint64 {
	return c.n.Load()
}

func (c *RenderCounter) inc() uint64 {
	return c.n.Add(1)
}

func (c *RenderCounter) set(v uint64) {
	c.n.Store(v)
}
