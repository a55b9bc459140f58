package hooks

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vango-dev/memolab/pkg/vdom"
)

func labelRender(props Props) *vdom.VNode {
	return vdom.Span(vdom.Textf("%v", props["label"]))
}

func TestMemoGateFirstRenderExecutes(t *testing.T) {
	g := NewMemoGate(NewOwner(nil, "child"), labelRender, GateOptions{})

	res, err := g.Render(Props{"label": "a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Executed {
		t.Error("first render should execute")
	}
	if res.Renders != 1 || g.RenderCount() != 1 {
		t.Errorf("expected 1 render, got %d", g.RenderCount())
	}
	if vdom.TextContent(res.Output) != "a" {
		t.Errorf("unexpected output %q", vdom.TextContent(res.Output))
	}
	if g.Name() != "child" {
		t.Errorf("expected name from owner, got %q", g.Name())
	}
}

func TestMemoGateSkipsEqualProps(t *testing.T) {
	g := NewMemoGate(NewOwner(nil, "child"), labelRender, GateOptions{})
	cb := Callback[func()]{token: NewToken(), fn: func() {}}

	first, _ := g.Render(Props{"label": "a", "onClick": cb})
	res, err := g.Render(Props{"label": "a", "onClick": cb})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Executed {
		t.Error("equal props should skip")
	}
	if res.Output != first.Output {
		t.Error("skip should return the cached output")
	}
	if g.RenderCount() != 1 {
		t.Errorf("expected 1 render, got %d", g.RenderCount())
	}
	if g.LastExecuted() {
		t.Error("LastExecuted should be false after a skip")
	}
}

func TestMemoGateExecutesOnChange(t *testing.T) {
	g := NewMemoGate(NewOwner(nil, "child"), labelRender, GateOptions{})

	g.Render(Props{"label": "a", "n": 1})
	res, err := g.Render(Props{"label": "b", "n": 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Executed {
		t.Fatal("changed props should execute")
	}
	if !reflect.DeepEqual(res.Changed, []string{"label"}) {
		t.Errorf("expected changed [label], got %v", res.Changed)
	}
	if vdom.TextContent(g.Output()) != "b" {
		t.Errorf("expected new output, got %q", vdom.TextContent(g.Output()))
	}
}

func TestMemoGateNewClosureAlwaysExecutes(t *testing.T) {
	g := NewMemoGate(NewOwner(nil, "child"), labelRender, GateOptions{})

	for i := 0; i < 3; i++ {
		g.Render(Props{"label": "a", "onClick": func() {}})
	}
	if g.RenderCount() != 3 {
		t.Errorf("expected 3 renders for raw closures, got %d", g.RenderCount())
	}
}

func TestMemoGateCountersArePerInstance(t *testing.T) {
	a := NewMemoGate(NewOwner(nil, "a"), labelRender, GateOptions{})
	b := NewMemoGate(NewOwner(nil, "b"), labelRender, GateOptions{})

	a.Render(Props{"label": 1})
	a.Render(Props{"label": 2})
	b.Render(Props{"label": 1})

	if a.RenderCount() != 2 {
		t.Errorf("expected a=2, got %d", a.RenderCount())
	}
	if b.RenderCount() != 1 {
		t.Errorf("expected b=1, got %d", b.RenderCount())
	}
}

func TestMemoGatePropShapeChanged(t *testing.T) {
	g := NewMemoGate(NewOwner(nil, "child"), labelRender, GateOptions{})

	g.Render(Props{"label": "a"})
	res, err := g.Render(Props{"label": "a", "extra": 1})
	if !errors.Is(err, ErrPropShapeChanged) {
		t.Fatalf("expected ErrPropShapeChanged, got %v", err)
	}
	if !res.Executed {
		t.Error("shape change should execute")
	}
	if !reflect.DeepEqual(res.Changed, []string{"extra"}) {
		t.Errorf("expected changed [extra], got %v", res.Changed)
	}
	if !reflect.DeepEqual(g.Keys(), []string{"extra", "label"}) {
		t.Errorf("expected new key set, got %v", g.Keys())
	}

	_, err = g.Render(Props{"label": "a", "extra": 1})
	if err != nil {
		t.Errorf("unexpected error after shape settled: %v", err)
	}
}

func TestMemoGateUnmounted(t *testing.T) {
	owner := NewOwner(nil, "child")
	g := NewMemoGate(owner, labelRender, GateOptions{})
	g.Render(Props{"label": "a"})

	owner.Dispose()
	if !g.Unmounted() {
		t.Fatal("gate should be unmounted after owner disposal")
	}

	_, err := g.Render(Props{"label": "b"})
	if !errors.Is(err, ErrGateUnmounted) {
		t.Fatalf("expected ErrGateUnmounted, got %v", err)
	}
	if g.RenderCount() != 1 {
		t.Errorf("unmounted render should not count, got %d", g.RenderCount())
	}
	if vdom.TextContent(g.Output()) != "a" {
		t.Error("unmounted render should not touch the cached output")
	}
}

func TestMemoGatePanicLeavesStateUntouched(t *testing.T) {
	panicky := func(props Props) *vdom.VNode {
		if props["label"] == "boom" {
			panic("boom")
		}
		return labelRender(props)
	}
	g := NewMemoGate(NewOwner(nil, "child"), panicky, GateOptions{})
	g.Render(Props{"label": "a"})

	_, err := g.Render(Props{"label": "boom"})
	if !errors.Is(err, ErrRenderPanic) {
		t.Fatalf("expected ErrRenderPanic, got %v", err)
	}
	if g.RenderCount() != 1 {
		t.Errorf("panicking render should not count, got %d", g.RenderCount())
	}

	res, _ := g.Render(Props{"label": "a"})
	if res.Executed {
		t.Error("props from before the panic should still be cached")
	}
}

func TestMemoGateCustomEqual(t *testing.T) {
	deep := GateOptions{Equal: reflect.DeepEqual}
	g := NewMemoGate(NewOwner(nil, "child"), labelRender, deep)

	g.Render(Props{"label": []int{1, 2}})
	res, _ := g.Render(Props{"label": []int{1, 2}})
	if res.Executed {
		t.Error("deep equality should skip equal slices")
	}
}

func TestMemoGateRestore(t *testing.T) {
	g := NewMemoGate(NewOwner(nil, "child"), labelRender, GateOptions{})
	g.Render(Props{"label": "a"})

	restore := g.restoreFunc()
	g.Render(Props{"label": "b"})
	restore()

	if g.RenderCount() != 1 {
		t.Errorf("expected restored count 1, got %d", g.RenderCount())
	}
	if vdom.TextContent(g.Output()) != "a" {
		t.Errorf("expected restored output, got %q", vdom.TextContent(g.Output()))
	}
}
