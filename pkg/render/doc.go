// Package render converts vdom trees into HTML.
//
// Text and attribute values are escaped, void elements are closed without a
// closing tag, boolean attributes render as bare names, and attributes are
// written in sorted order so output is deterministic:
//
//	r := render.NewRenderer(render.RendererConfig{})
//	html, err := r.RenderToString(node)
//
// RenderPage wraps a body tree in a full HTML document.
package render
