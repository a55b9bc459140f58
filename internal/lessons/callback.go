package lessons

import (
	"github.com/vango-dev/memolab/pkg/hooks"
	"github.com/vango-dev/memolab/pkg/vdom"
)

// CallbackLessonID identifies the useCallback lesson.
const CallbackLessonID = "usecallback"

const callbackCode = `const memoizedCallback = useCallback(
  () => {
    doSomething(a, b);
  },
  [a, b]
);`

// NewCallbackLesson creates the useCallback demo: a parent with count and
// other slots and two memoized children, one handed a stable callback and
// one an unstable callback.
func NewCallbackLesson(cfg Config) *Lesson {
	h := hooks.NewStateHolder(hooks.HolderConfig{
		Name:     CallbackLessonID,
		Slots:    []hooks.Slot{{Name: "count", Initial: 0}, {Name: "other", Initial: 0}},
		Observer: cfg.Observer,
		Logger:   cfg.Logger,
	}, callbackDemo)

	return &Lesson{
		ID:          CallbackLessonID,
		Title:       "useCallback",
		Description: "Memoizes callback functions to prevent unnecessary re-renders of child components.",
		Code:        callbackCode,
		Actions: []Action{
			{Slot: "count", Label: "Increment count", Variant: VariantDefault},
			{Slot: "other", Label: "Re-render parent", Variant: VariantSecondary},
		},
		holder: h,
	}
}

func callbackDemo(p *hooks.Pass) (*vdom.VNode, error) {
	count := p.Int("count")

	stable, err := hooks.UseCallback(p, hooks.Stable, func() int { return count + 1 }, hooks.Deps{count})
	if err != nil {
		return nil, err
	}
	unstable, err := hooks.UseCallback(p, hooks.Unstable, func() int { return count + 1 }, nil)
	if err != nil {
		return nil, err
	}

	prev, err := hooks.UseRef(p, [2]hooks.Token{})
	if err != nil {
		return nil, err
	}
	stableChanged := !hooks.IdentityEquals(prev.Current[0], stable.Identity())
	unstableChanged := !hooks.IdentityEquals(prev.Current[1], unstable.Identity())
	prev.Current = [2]hooks.Token{stable.Identity(), unstable.Identity()}

	left, err := p.Child("stable-child", childCard, hooks.Props{
		"title":   "With useCallback",
		"onClick": stable,
	})
	if err != nil {
		return nil, err
	}
	right, err := p.Child("unstable-child", childCard, hooks.Props{
		"title":   "Without useCallback",
		"onClick": unstable,
	})
	if err != nil {
		return nil, err
	}

	return vdom.Div(vdom.Class("demo"), vdom.ID("demo-"+CallbackLessonID),
		vdom.Div(vdom.Class("demo-state"),
			stat("count", count),
			stat("other", p.Int("other")),
		),
		vdom.Div(vdom.Class("demo-children"),
			childPanel("stable-child", left, p.Renders("stable-child"), stable.String(), stableChanged),
			childPanel("unstable-child", right, p.Renders("unstable-child"), unstable.String(), unstableChanged),
		),
	), nil
}

func childCard(props hooks.Props) *vdom.VNode {
	title, _ := props["title"].(string)
	token := ""
	if cb, ok := props["onClick"].(hooks.Identified); ok {
		token = cb.Identity().String()
	}
	return vdom.Div(vdom.Class("child"),
		vdom.Strong(vdom.Text(title)),
		vdom.P(vdom.Class("muted"), vdom.Textf("received %s", token)),
	)
}

func childPanel(gate string, output *vdom.VNode, renders uint64, token string, changed bool) *vdom.VNode {
	identity := "same identity"
	if changed {
		identity = "new identity"
	}
	return vdom.Div(vdom.Class("child-panel"), vdom.ID(gate),
		output,
		vdom.P(vdom.Class("renders"), vdom.Data("renders", uintText(renders)),
			vdom.Textf("Renders: %d", renders)),
		vdom.P(vdom.Class("token"), vdom.Textf("%s (%s)", token, identity)),
	)
}
