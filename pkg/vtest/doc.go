// Package vtest provides testing helpers for state holders and memoized
// children.
//
// # Quick Start
//
//	func TestStableChild(t *testing.T) {
//	    h := vtest.NewHolder(Parent).WithSlot("other", 0).Build()
//	    vtest.MustBump(t, h, "other", 3)
//	    vtest.ExpectRenderCount(t, h, "child", 1)
//	    vtest.ExpectSkipped(t, h, "child")
//	}
//
// # Render Assertions
//
// Assert on rendered HTML output:
//
//	vtest.ExpectContains(t, h.Output(), "Renders: 1")
//	vtest.ExpectNotContains(t, h.Output(), "Renders: 2")
package vtest
