package vtest

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/vango-dev/memolab/pkg/hooks"
	"github.com/vango-dev/memolab/pkg/render"
	"github.com/vango-dev/memolab/pkg/vdom"
)

// HolderBuilder allows fluent construction of state holders for tests.
type HolderBuilder struct {
	cfg  hooks.HolderConfig
	root hooks.Component
}

// NewHolder creates a builder for a holder rendering root.
//
// Example:
//
//	h := vtest.NewHolder(Parent).
//	    WithSlot("count", 0).
//	    WithSlot("other", 0).
//	    Build()
func NewHolder(root hooks.Component) *HolderBuilder {
	return &HolderBuilder{
		cfg: hooks.HolderConfig{
			Name:   "vtest",
			Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		},
		root: root,
	}
}

// WithName sets the holder name.
func (b *HolderBuilder) WithName(name string) *HolderBuilder {
	b.cfg.Name = name
	return b
}

// WithSlot declares a slot with its initial value.
func (b *HolderBuilder) WithSlot(name string, initial any) *HolderBuilder {
	b.cfg.Slots = append(b.cfg.Slots, hooks.Slot{Name: name, Initial: initial})
	return b
}

// WithObserver attaches an observer.
func (b *HolderBuilder) WithObserver(o hooks.Observer) *HolderBuilder {
	b.cfg.Observer = o
	return b
}

// WithLogger replaces the default discarding logger.
func (b *HolderBuilder) WithLogger(l *slog.Logger) *HolderBuilder {
	b.cfg.Logger = l
	return b
}

// Build returns the holder. It has not rendered yet.
func (b *HolderBuilder) Build() *hooks.StateHolder {
	return hooks.NewStateHolder(b.cfg, b.root)
}

// Mounted builds the holder and runs its first pass, failing the test on error.
func (b *HolderBuilder) Mounted(t *testing.T) *hooks.StateHolder {
	t.Helper()
	h := b.Build()
	if err := h.Mount(); err != nil {
		t.Fatalf("mount %s: %v", b.cfg.Name, err)
	}
	return h
}

// MustBump bumps slot n times, failing the test on the first error.
//
// Example:
//
//	vtest.MustBump(t, h, "other", 3)
func MustBump(t *testing.T, h *hooks.StateHolder, slot string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := h.Bump(slot); err != nil {
			t.Fatalf("bump %s (%d/%d): %v", slot, i+1, n, err)
		}
	}
}

// MustSet sets slot, failing the test on error.
func MustSet(t *testing.T, h *hooks.StateHolder, slot string, v any) {
	t.Helper()
	if err := h.Set(slot, v); err != nil {
		t.Fatalf("set %s=%v: %v", slot, v, err)
	}
}

// ExpectRenderCount asserts the render count of a mounted gate.
//
// Example:
//
//	vtest.ExpectRenderCount(t, h, "child", 1)
func ExpectRenderCount(t *testing.T, h *hooks.StateHolder, gate string, want uint64) {
	t.Helper()
	got, err := h.RenderCount(gate)
	if err != nil {
		t.Errorf("render count of %s: %v", gate, err)
		return
	}
	if got != want {
		t.Errorf("expected %s to have rendered %d times, got %d", gate, want, got)
	}
}

// ExpectSkipped asserts that gate reused its output in the last pass.
func ExpectSkipped(t *testing.T, h *hooks.StateHolder, gate string) {
	t.Helper()
	g, ok := h.Gate(gate)
	if !ok {
		t.Errorf("gate %s is not mounted", gate)
		return
	}
	if g.LastExecuted() {
		t.Errorf("expected %s to skip, but it executed", gate)
	}
}

// ExpectExecuted asserts that gate ran its render logic in the last pass.
func ExpectExecuted(t *testing.T, h *hooks.StateHolder, gate string) {
	t.Helper()
	g, ok := h.Gate(gate)
	if !ok {
		t.Errorf("gate %s is not mounted", gate)
		return
	}
	if !g.LastExecuted() {
		t.Errorf("expected %s to execute, but it was skipped", gate)
	}
}

// RenderToString renders a VNode and returns the HTML string.
// This is useful for asserting on rendered output.
//
// Example:
//
//	html := vtest.RenderToString(h.Output())
//	if !strings.Contains(html, "expected text") {
//	    t.Error("missing expected text")
//	}
func RenderToString(node *vdom.VNode) string {
	r := render.NewRenderer(render.RendererConfig{})
	html, err := r.RenderToString(node)
	if err != nil {
		return ""
	}
	return html
}

// ExpectContains asserts that rendered output contains expected substring.
//
// Example:
//
//	vtest.ExpectContains(t, h.Output(), "Renders: 1")
func ExpectContains(t *testing.T, node *vdom.VNode, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t *testing.T, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that rendered output contains a specific tag.
func ExpectElement(t *testing.T, node *vdom.VNode, tag string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, "<"+tag) {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
//
// Example:
//
//	vtest.ExpectAttribute(t, node, "data-renders", "1")
func ExpectAttribute(t *testing.T, node *vdom.VNode, attr, value string) {
	t.Helper()
	html := RenderToString(node)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
