// Package vdom provides the virtual node tree that memolab components render.
//
// Gate render logic returns *VNode trees built with the element helpers:
//
//	Div(Class("panel"),
//	    H2(Text("Child")),
//	    P(Textf("renders: %d", n)),
//	)
//
// Arguments to element helpers may be nil, Attr, []Attr, *VNode, []*VNode or
// string (converted to a text node). Nil arguments are ignored so conditional
// content can be written inline with If.
package vdom
