package memolab_test

import (
	"errors"
	"testing"

	"github.com/vango-dev/memolab"
	"github.com/vango-dev/memolab/pkg/vdom"
)

func counterRoot(mode memolab.Mode) memolab.Component {
	return func(p *memolab.Pass) (*vdom.VNode, error) {
		count := p.Int("count")
		cb, err := memolab.UseCallback(p, mode, func() int { return count + 1 }, memolab.Deps{count})
		if err != nil {
			return nil, err
		}
		child, err := p.Child("child", func(props memolab.Props) *vdom.VNode {
			return vdom.Button(vdom.Text("increment"))
		}, memolab.Props{"onClick": cb})
		if err != nil {
			return nil, err
		}
		return vdom.Div(child), nil
	}
}

func TestFacadeStableCallback(t *testing.T) {
	h := memolab.NewHolder("facade", counterRoot(memolab.Stable),
		memolab.Slot{Name: "count", Initial: 0},
		memolab.Slot{Name: "other", Initial: 0},
	)
	if err := h.Mount(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if err := h.Bump("other"); err != nil {
			t.Fatal(err)
		}
	}

	n, err := h.RenderCount("child")
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("expected 1 render, got %d", n)
	}

	if err := h.Bump("count"); err != nil {
		t.Fatal(err)
	}
	if n, _ := h.RenderCount("child"); n != 2 {
		t.Errorf("expected 2 renders after count changed, got %d", n)
	}
}

func TestFacadeErrors(t *testing.T) {
	h := memolab.NewHolder("facade", counterRoot(memolab.Unstable), memolab.Slot{Name: "count", Initial: 0})
	if err := h.Bump("missing"); !errors.Is(err, memolab.ErrUnknownSlot) {
		t.Errorf("expected ErrUnknownSlot, got %v", err)
	}
	h.Dispose()
	if err := h.Bump("count"); !errors.Is(err, memolab.ErrHolderDisposed) {
		t.Errorf("expected ErrHolderDisposed, got %v", err)
	}
}

func TestFacadeCallbackFactory(t *testing.T) {
	f := memolab.NewCallbackFactory()
	a, err := memolab.NewCallback(f, "k", memolab.Stable, memolab.Deps{1}, func() {})
	if err != nil {
		t.Fatal(err)
	}
	b, err := memolab.NewCallback(f, "k", memolab.Stable, memolab.Deps{1}, func() {})
	if err != nil {
		t.Fatal(err)
	}
	if !memolab.IdentityEquals(a.Identity(), b.Identity()) {
		t.Error("expected stable callback to keep its identity")
	}
}

func TestFacadeValueMemoizer(t *testing.T) {
	m := memolab.NewValueMemoizer[int]()
	for i := 0; i < 3; i++ {
		if _, err := m.Get(func() int { return 42 }, memolab.Deps{"x"}); err != nil {
			t.Fatal(err)
		}
	}
	if m.Computations() != 1 {
		t.Errorf("expected 1 computation, got %d", m.Computations())
	}
}
