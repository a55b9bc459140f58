package vdom

import "strings"

// MakeAttr creates an attribute with an arbitrary key.
func MakeAttr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

func ID(id string) Attr            { return MakeAttr("id", id) }
func Class(classes ...string) Attr { return MakeAttr("class", joinClasses(classes)) }
func Data(key, value string) Attr  { return MakeAttr("data-"+key, value) }
func Href(url string) Attr         { return MakeAttr("href", url) }
func Type(t string) Attr           { return MakeAttr("type", t) }
func Name(name string) Attr        { return MakeAttr("name", name) }
func Method(method string) Attr    { return MakeAttr("method", method) }
func Action(url string) Attr       { return MakeAttr("action", url) }
func Charset(cs string) Attr       { return MakeAttr("charset", cs) }
func Lang(lang string) Attr        { return MakeAttr("lang", lang) }
func Content(c string) Attr        { return MakeAttr("content", c) }
func AriaLabel(label string) Attr  { return MakeAttr("aria-label", label) }
func AriaHidden(hidden bool) Attr  { return MakeAttr("aria-hidden", hidden) }
func AriaLive(mode string) Attr    { return MakeAttr("aria-live", mode) }
func Disabled(d bool) Attr         { return MakeAttr("disabled", d) }

// joinClasses joins non-empty class names with single spaces.
func joinClasses(classes []string) string {
	parts := make([]string, 0, len(classes))
	for _, c := range classes {
		if c = strings.TrimSpace(c); c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " ")
}
