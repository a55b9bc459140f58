package lessons

import (
	"strconv"

	"github.com/vango-dev/memolab/pkg/hooks"
	"github.com/vango-dev/memolab/pkg/vdom"
)

// MemoLessonID identifies the useMemo lesson.
const MemoLessonID = "usememo"

const memoCode = `const memoizedValue = useMemo(
  () => computeExpensiveValue(a, b),
  [a, b]
);`

// expensiveIterations is how much work computeExpensiveValue does.
const expensiveIterations = 200_000

// NewMemoLesson creates the useMemo demo: slots a, b and other, a value
// memoized over [a, b] and a child gated on that value.
func NewMemoLesson(cfg Config) *Lesson {
	h := hooks.NewStateHolder(hooks.HolderConfig{
		Name:     MemoLessonID,
		Slots:    []hooks.Slot{{Name: "a", Initial: 1}, {Name: "b", Initial: 2}, {Name: "other", Initial: 0}},
		Observer: cfg.Observer,
		Logger:   cfg.Logger,
	}, memoDemo)

	return &Lesson{
		ID:          MemoLessonID,
		Title:       "useMemo",
		Description: "Memoizes expensive calculations to avoid recomputing on every render.",
		Code:        memoCode,
		Actions: []Action{
			{Slot: "a", Label: "Increment a", Variant: VariantDefault},
			{Slot: "b", Label: "Increment b", Variant: VariantOutline},
			{Slot: "other", Label: "Re-render parent", Variant: VariantSecondary},
		},
		holder: h,
	}
}

func memoDemo(p *hooks.Pass) (*vdom.VNode, error) {
	a, b := p.Int("a"), p.Int("b")

	computations, err := hooks.UseRef(p, 0)
	if err != nil {
		return nil, err
	}
	value, err := hooks.UseMemo(p, func() int {
		computations.Current++
		return computeExpensiveValue(a, b)
	}, hooks.Deps{a, b})
	if err != nil {
		return nil, err
	}

	result, err := p.Child("result", resultCard, hooks.Props{"value": value})
	if err != nil {
		return nil, err
	}

	return vdom.Div(vdom.Class("demo"), vdom.ID("demo-"+MemoLessonID),
		vdom.Div(vdom.Class("demo-state"),
			stat("a", a),
			stat("b", b),
			stat("other", p.Int("other")),
		),
		vdom.P(vdom.Class("computations"), vdom.Data("computations", strconv.Itoa(computations.Current)),
			vdom.Textf("Computations: %d", computations.Current)),
		vdom.Div(vdom.Class("child-panel"), vdom.ID("result"),
			result,
			vdom.P(vdom.Class("renders"), vdom.Data("renders", uintText(p.Renders("result"))),
				vdom.Textf("Renders: %d", p.Renders("result"))),
		),
	), nil
}

// computeExpensiveValue burns a fixed amount of CPU and returns a value
// determined by a and b.
func computeExpensiveValue(a, b int) int {
	total := 0
	for i := 0; i < expensiveIterations; i++ {
		total += (a*i + b) % 97
	}
	return total
}

func resultCard(props hooks.Props) *vdom.VNode {
	return vdom.Div(vdom.Class("child"),
		vdom.Strong(vdom.Text("Expensive value")),
		vdom.P(vdom.Class("value"), vdom.Textf("%v", props["value"])),
	)
}

func stat(name string, v int) *vdom.VNode {
	return vdom.Span(vdom.Class("stat"), vdom.Data("slot", name), vdom.Textf("%s = %d", name, v))
}

func uintText(n uint64) string {
	return strconv.FormatUint(n, 10)
}
