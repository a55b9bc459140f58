package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vango-dev/memolab/pkg/vdom"
)

func renderString(t *testing.T, node *vdom.VNode) string {
	t.Helper()
	r := NewRenderer(RendererConfig{})
	html, err := r.RenderToString(node)
	if err != nil {
		t.Fatalf("RenderToString() error: %v", err)
	}
	return html
}

func TestRenderElement(t *testing.T) {
	node := vdom.Div(vdom.Class("panel"), vdom.ID("x"), vdom.Text("hi"))
	got := renderString(t, node)
	want := `<div class="panel" id="x">hi</div>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderEscapesText(t *testing.T) {
	got := renderString(t, vdom.P(vdom.Text(`<script>alert("x")</script>`)))
	if strings.Contains(got, "<script>") {
		t.Errorf("text not escaped: %s", got)
	}
	if !strings.Contains(got, "&lt;script&gt;alert(&quot;x&quot;)&lt;/script&gt;") {
		t.Errorf("unexpected escaping: %s", got)
	}
}

func TestRenderEscapesAttributes(t *testing.T) {
	got := renderString(t, vdom.Div(vdom.Data("note", "a\"b\nc")))
	want := `<div data-note="a&quot;b&#10;c"></div>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderVoidAndBoolean(t *testing.T) {
	got := renderString(t, vdom.Div(
		vdom.El("input", vdom.Type("checkbox"), vdom.MakeAttr("checked", true), vdom.Disabled(false)),
		vdom.El("br"),
	))
	want := `<div><input checked type="checkbox"><br></div>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderFragmentAndRaw(t *testing.T) {
	got := renderString(t, vdom.Fragment(vdom.Span("a"), vdom.Raw("<b>raw</b>")))
	if got != "<span>a</span><b>raw</b>" {
		t.Errorf("got %q", got)
	}
}

func TestRenderSkipsInternalAndNilProps(t *testing.T) {
	node := vdom.Div(vdom.MakeAttr("_internal", 1), vdom.MakeAttr("title", nil), vdom.MakeAttr("tabindex", 3))
	got := renderString(t, node)
	if got != `<div tabindex="3"></div>` {
		t.Errorf("got %q", got)
	}
}

func TestRenderUnknownKind(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	if _, err := r.RenderToString(&vdom.VNode{Kind: vdom.VKind(42)}); err == nil {
		t.Error("expected error for unknown node kind")
	}
	if _, err := r.RenderToString(&vdom.VNode{Kind: vdom.KindElement}); err == nil {
		t.Error("expected error for element without tag")
	}
}

func TestRenderPretty(t *testing.T) {
	r := NewRenderer(RendererConfig{Pretty: true})
	got, err := r.RenderToString(vdom.Div(vdom.P(vdom.Text("x"))))
	if err != nil {
		t.Fatal(err)
	}
	want := "<div>\n  <p>x</p>\n</div>\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderPage(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	var buf bytes.Buffer
	err := r.RenderPage(&buf, PageData{
		Title:       "Hooks & <Memo>",
		Description: "guide",
		Styles:      []string{"body{margin:0}"},
		Scripts:     []string{"console.log(1)"},
		Body:        vdom.Main(vdom.Text("content")),
	})
	if err != nil {
		t.Fatalf("RenderPage() error: %v", err)
	}
	html := buf.String()
	for _, want := range []string{
		"<!DOCTYPE html>",
		`<html lang="en">`,
		`<meta charset="utf-8">`,
		`<meta content="guide" name="description">`,
		"<title>Hooks &amp; &lt;Memo&gt;</title>",
		"<style>body{margin:0}</style>",
		"<main>content</main>",
		"<script>console.log(1)</script>",
		"</body>\n</html>\n",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q:\n%s", want, html)
		}
	}
}
