package vdom

import "testing"

func TestCreateElementArgs(t *testing.T) {
	var missing *VNode
	node := Div(
		ID("root"),
		nil,
		[]Attr{Class("a"), Data("gate", "child")},
		Class("b"),
		"hello",
		missing,
		[]*VNode{Span(Text("x")), nil},
	)

	if node.Tag != "div" || node.Kind != KindElement {
		t.Fatalf("unexpected node %+v", node)
	}
	if node.Props["id"] != "root" {
		t.Errorf("id = %v", node.Props["id"])
	}
	if node.Props["class"] != "a b" {
		t.Errorf("class = %q, want accumulated classes", node.Props["class"])
	}
	if node.Props["data-gate"] != "child" {
		t.Errorf("data-gate = %v", node.Props["data-gate"])
	}
	if len(node.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(node.Children))
	}
	if node.Children[0].Kind != KindText || node.Children[0].Text != "hello" {
		t.Errorf("first child = %+v", node.Children[0])
	}
}

func TestClassSkipsEmpty(t *testing.T) {
	a := Class("", " btn ", "", "primary")
	if a.Value != "btn primary" {
		t.Errorf("Class = %q", a.Value)
	}
}

func TestFragmentAndConditionals(t *testing.T) {
	f := Fragment(If(false, Text("no")), If(true, Text("yes")), "tail")
	if f.Kind != KindFragment || len(f.Children) != 2 {
		t.Fatalf("fragment = %+v", f)
	}
	if TextContent(f) != "yestail" {
		t.Errorf("TextContent = %q", TextContent(f))
	}
}

func TestRange(t *testing.T) {
	nodes := Range([]string{"a", "", "c"}, func(i int, s string) *VNode {
		if s == "" {
			return nil
		}
		return Span(Textf("%d:%s", i, s))
	})
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(nodes))
	}
	if TextContent(nodes[1]) != "2:c" {
		t.Errorf("second = %q", TextContent(nodes[1]))
	}
}

func TestFindByID(t *testing.T) {
	tree := Main(Section(Div(ID("a"), Text("first"))), Div(ID("b"), Text("second")))
	if n := FindByID(tree, "b"); n == nil || TextContent(n) != "second" {
		t.Errorf("FindByID(b) = %+v", n)
	}
	if FindByID(tree, "zzz") != nil {
		t.Error("expected nil for missing id")
	}
}

func TestVKindString(t *testing.T) {
	cases := map[VKind]string{
		KindElement:  "Element",
		KindText:     "Text",
		KindFragment: "Fragment",
		KindRaw:      "Raw",
		VKind(99):    "Unknown",
	}
	for k, want := range cases {
		if k.String() != want {
			t.Errorf("%d.String() = %q, want %q", k, k.String(), want)
		}
	}
}

func TestIsVoidElement(t *testing.T) {
	if !IsVoidElement("meta") || IsVoidElement("div") {
		t.Error("void element classification wrong")
	}
}
