package lessons

import (
	"github.com/vango-dev/memolab/pkg/vdom"
)

// ButtonVariant selects a button style.
type ButtonVariant string

const (
	VariantDefault     ButtonVariant = "default"
	VariantSecondary   ButtonVariant = "secondary"
	VariantOutline     ButtonVariant = "outline"
	VariantGhost       ButtonVariant = "ghost"
	VariantLink        ButtonVariant = "link"
	VariantDestructive ButtonVariant = "destructive"
	VariantGradient    ButtonVariant = "gradient"
)

// ButtonSize selects a button size.
type ButtonSize string

const (
	SizeDefault ButtonSize = "default"
	SizeSm      ButtonSize = "sm"
	SizeLg      ButtonSize = "lg"
	SizeIcon    ButtonSize = "icon"
)

var variantClasses = map[ButtonVariant]string{
	VariantDefault:     "btn-primary",
	VariantSecondary:   "btn-secondary",
	VariantOutline:     "btn-outline",
	VariantGhost:       "btn-ghost",
	VariantLink:        "btn-link",
	VariantDestructive: "btn-destructive",
	VariantGradient:    "btn-gradient",
}

var sizeClasses = map[ButtonSize]string{
	SizeDefault: "btn-md",
	SizeSm:      "btn-sm",
	SizeLg:      "btn-lg",
	SizeIcon:    "btn-icon",
}

// ButtonClass returns the class list for a variant and size. Unknown values
// fall back to the defaults.
func ButtonClass(variant ButtonVariant, size ButtonSize) string {
	v, ok := variantClasses[variant]
	if !ok {
		v = variantClasses[VariantDefault]
	}
	s, ok := sizeClasses[size]
	if !ok {
		s = sizeClasses[SizeDefault]
	}
	return "btn " + v + " " + s
}

// Button renders a submit button. The gradient variant is wrapped in a
// spinning border span.
func Button(variant ButtonVariant, size ButtonSize, args ...any) *vdom.VNode {
	if variant == "" {
		variant = VariantDefault
	}
	if size == "" {
		size = SizeDefault
	}
	attrs := []any{
		vdom.Type("submit"),
		vdom.Class(ButtonClass(variant, size)),
		vdom.Data("slot", "button"),
		vdom.Data("variant", string(variant)),
		vdom.Data("size", string(size)),
	}
	btn := vdom.Button(append(attrs, args...)...)
	if variant != VariantGradient {
		return btn
	}
	return vdom.Span(vdom.Class("btn-gradient-ring"),
		vdom.Span(vdom.Class("btn-gradient-spin"), vdom.AriaHidden(true)),
		btn,
	)
}

// Badge renders a small monospace label.
func Badge(text string) *vdom.VNode {
	return vdom.Span(vdom.Class("badge"), vdom.Text(text))
}

// LogoSize selects a logo size.
type LogoSize string

const (
	LogoSm LogoSize = "sm"
	LogoMd LogoSize = "md"
	LogoLg LogoSize = "lg"
)

// Logo renders the two-tone wordmark.
func Logo(size LogoSize) *vdom.VNode {
	switch size {
	case LogoSm, LogoMd, LogoLg:
	default:
		size = LogoLg
	}
	return vdom.Div(vdom.Class("logo", "logo-"+string(size)),
		vdom.Div(vdom.Class("logo-icon"), vdom.AriaHidden(true), vdom.Text("⚡")),
		vdom.Span(vdom.Class("logo-text"),
			vdom.Span(vdom.Class("logo-primary"), vdom.Text("snel")),
			vdom.Span(vdom.Class("logo-secondary"), vdom.Text("stack")),
		),
	)
}

// AnimatedBackground renders three blurred blobs behind the page.
func AnimatedBackground() *vdom.VNode {
	return vdom.Div(vdom.Class("bg"), vdom.AriaHidden(true),
		vdom.Div(vdom.Class("blob", "blob-cyan")),
		vdom.Div(vdom.Class("blob", "blob-purple", "delay-2000")),
		vdom.Div(vdom.Class("blob", "blob-blue", "delay-4000")),
	)
}
