package lessons

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	lerrors "github.com/vango-dev/memolab/internal/errors"
	"github.com/vango-dev/memolab/pkg/hooks"
	"github.com/vango-dev/memolab/pkg/vdom"
)

// Env is what a scenario run is wired to.
type Env struct {
	Logger   *slog.Logger
	Observer hooks.Observer
}

// Scenario is a scripted sequence of mutations with an expected count.
type Scenario struct {
	ID          string
	Name        string
	Description string

	// Metric names what Want counts: "renders" or "computations".
	Metric string
	Want   uint64

	run func(env Env, name string) (got uint64, detail string, err error)
}

// Outcome is the result of running one scenario.
type Outcome struct {
	ID       string        `json:"id" yaml:"id"`
	Name     string        `json:"name" yaml:"name"`
	Metric   string        `json:"metric" yaml:"metric"`
	Want     uint64        `json:"want" yaml:"want"`
	Got      uint64        `json:"got" yaml:"got"`
	OK       bool          `json:"ok" yaml:"ok"`
	Detail   string        `json:"detail,omitempty" yaml:"detail,omitempty"`
	Error    string        `json:"error,omitempty" yaml:"error,omitempty"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Run executes the scenario on a fresh holder.
func (s Scenario) Run(env Env) Outcome {
	start := time.Now()
	got, detail, err := s.run(env, "scenario-"+s.ID)
	o := Outcome{
		ID:       s.ID,
		Name:     s.Name,
		Metric:   s.Metric,
		Want:     s.Want,
		Got:      got,
		Detail:   detail,
		Duration: time.Since(start),
	}
	if err != nil {
		o.Error = err.Error()
	}
	o.OK = err == nil && got == s.Want
	return o
}

// Scenarios returns the catalog in a stable order.
func Scenarios() []Scenario {
	return []Scenario{
		{
			ID:          "A",
			Name:        "stable-callback",
			Description: "Stable callback with empty deps; bump an unrelated slot three times.",
			Metric:      "renders",
			Want:        1,
			run:         runCallbackScenario(hooks.Stable),
		},
		{
			ID:          "B",
			Name:        "unstable-callback",
			Description: "Unstable callback; bump an unrelated slot three times.",
			Metric:      "renders",
			Want:        3,
			run:         runCallbackScenario(hooks.Unstable),
		},
		{
			ID:          "C",
			Name:        "memo-same-deps",
			Description: "Memoize over [1, 2], then re-render with [1, 2].",
			Metric:      "computations",
			Want:        1,
			run:         runMemoScenario(2),
		},
		{
			ID:          "D",
			Name:        "memo-changed-deps",
			Description: "Memoize over [1, 2], then re-render with [1, 3].",
			Metric:      "computations",
			Want:        2,
			run:         runMemoScenario(3),
		},
		{
			ID:          "E",
			Name:        "per-instance-counters",
			Description: "Two instances of one child definition; only the left one's props change.",
			Metric:      "renders",
			Want:        3,
			run:         runPerInstanceScenario,
		},
		{
			ID:          "F",
			Name:        "raw-closure",
			Description: "A fresh closure without a callback identity is passed on every pass.",
			Metric:      "renders",
			Want:        3,
			run:         runRawClosureScenario,
		},
		{
			ID:          "G",
			Name:        "prop-shape-change",
			Description: "A child's prop key set grows; the gate executes and warns.",
			Metric:      "renders",
			Want:        2,
			run:         runPropShapeScenario,
		},
		{
			ID:          "H",
			Name:        "rollback",
			Description: "A pass fails after its child executed; counts and slots are restored.",
			Metric:      "renders",
			Want:        1,
			run:         runRollbackScenario,
		},
		{
			ID:          "I",
			Name:        "unmount",
			Description: "A child stops being rendered, is unmounted, then mounts again fresh.",
			Metric:      "renders",
			Want:        1,
			run:         runUnmountScenario,
		},
	}
}

// Find returns the scenario with the given id or name.
func Find(key string) (Scenario, error) {
	for _, s := range Scenarios() {
		if s.ID == key || s.Name == key {
			return s, nil
		}
	}
	return Scenario{}, lerrors.New(lerrors.CodeUnknownScenario).WithDetailf("scenario %q", key)
}

// RunAll runs the selected scenarios, or all of them if keys is empty.
func RunAll(env Env, keys ...string) ([]Outcome, error) {
	var selected []Scenario
	if len(keys) == 0 {
		selected = Scenarios()
	}
	for _, k := range keys {
		s, err := Find(k)
		if err != nil {
			return nil, err
		}
		selected = append(selected, s)
	}

	out := make([]Outcome, 0, len(selected))
	for _, s := range selected {
		out = append(out, s.Run(env))
	}
	return out, nil
}

func newScenarioHolder(env Env, name string, root hooks.Component, slots ...hooks.Slot) *hooks.StateHolder {
	return hooks.NewStateHolder(hooks.HolderConfig{
		Name:     name,
		Slots:    slots,
		Observer: env.Observer,
		Logger:   env.Logger,
	}, root)
}

func plainChild(props hooks.Props) *vdom.VNode {
	return vdom.Div(vdom.Textf("%v", props["label"]))
}

func bumpN(h *hooks.StateHolder, slot string, n int) error {
	for i := 0; i < n; i++ {
		if err := h.Bump(slot); err != nil {
			return err
		}
	}
	return nil
}

func runCallbackScenario(mode hooks.Mode) func(Env, string) (uint64, string, error) {
	return func(env Env, name string) (uint64, string, error) {
		var tokens []hooks.Token
		h := callbackScenarioHolder(env, name, mode, &tokens)
		if err := bumpN(h, "other", 3); err != nil {
			return 0, "", err
		}
		n, err := h.RenderCount("child")
		distinct := make(map[hooks.Token]bool)
		for _, t := range tokens {
			distinct[t] = true
		}
		return n, fmt.Sprintf("%d passes, %d distinct tokens", h.Passes(), len(distinct)), err
	}
}

// callbackScenarioHolder mounts a parent with count and other slots that
// passes a callback in the given mode to a memoized child.
func callbackScenarioHolder(env Env, name string, mode hooks.Mode, tokens *[]hooks.Token) *hooks.StateHolder {
	return newScenarioHolder(env, name, func(p *hooks.Pass) (*vdom.VNode, error) {
		cb, err := hooks.UseCallback(p, mode, func() {}, hooks.Deps{})
		if err != nil {
			return nil, err
		}
		*tokens = append(*tokens, cb.Identity())
		child, err := p.Child("child", plainChild, hooks.Props{"label": "child", "onClick": cb})
		if err != nil {
			return nil, err
		}
		return vdom.Div(child), nil
	}, hooks.Slot{Name: "count", Initial: 0}, hooks.Slot{Name: "other", Initial: 0})
}

func runMemoScenario(secondB int) func(Env, string) (uint64, string, error) {
	return func(env Env, name string) (uint64, string, error) {
		var computations uint64
		var value int
		h := newScenarioHolder(env, name, func(p *hooks.Pass) (*vdom.VNode, error) {
			a, b := p.Int("a"), p.Int("b")
			v, err := hooks.UseMemo(p, func() int {
				computations++
				return a + b
			}, hooks.Deps{a, b})
			if err != nil {
				return nil, err
			}
			value = v
			return vdom.Textf("%d", v), nil
		}, hooks.Slot{Name: "a", Initial: 1}, hooks.Slot{Name: "b", Initial: 2})

		if err := h.Mount(); err != nil {
			return 0, "", err
		}
		if err := h.Set("b", secondB); err != nil {
			return 0, "", err
		}
		return computations, fmt.Sprintf("value %d", value), nil
	}
}

func runPerInstanceScenario(env Env, name string) (uint64, string, error) {
	h := newScenarioHolder(env, name, func(p *hooks.Pass) (*vdom.VNode, error) {
		left, err := p.Child("left", plainChild, hooks.Props{"label": p.Int("l")})
		if err != nil {
			return nil, err
		}
		right, err := p.Child("right", plainChild, hooks.Props{"label": p.Int("r")})
		if err != nil {
			return nil, err
		}
		return vdom.Div(left, right), nil
	}, hooks.Slot{Name: "l", Initial: 0}, hooks.Slot{Name: "r", Initial: 0})

	if err := h.Mount(); err != nil {
		return 0, "", err
	}
	if err := bumpN(h, "l", 2); err != nil {
		return 0, "", err
	}
	left, err := h.RenderCount("left")
	if err != nil {
		return 0, "", err
	}
	right, err := h.RenderCount("right")
	if err != nil {
		return left, "", err
	}
	detail := fmt.Sprintf("left=%d right=%d", left, right)
	if right != 1 {
		return left, detail, fmt.Errorf("right instance rendered %d times, want 1", right)
	}
	return left, detail, nil
}

func runRawClosureScenario(env Env, name string) (uint64, string, error) {
	h := newScenarioHolder(env, name, func(p *hooks.Pass) (*vdom.VNode, error) {
		child, err := p.Child("child", plainChild, hooks.Props{"label": "child", "onClick": func() {}})
		if err != nil {
			return nil, err
		}
		return vdom.Div(child), nil
	}, hooks.Slot{Name: "other", Initial: 0})

	if err := bumpN(h, "other", 3); err != nil {
		return 0, "", err
	}
	n, err := h.RenderCount("child")
	return n, "closures have no identity", err
}

func runPropShapeScenario(env Env, name string) (uint64, string, error) {
	h := newScenarioHolder(env, name, func(p *hooks.Pass) (*vdom.VNode, error) {
		props := hooks.Props{"label": "child"}
		if p.Int("wide") > 0 {
			props["extra"] = true
		}
		child, err := p.Child("child", plainChild, props)
		if err != nil {
			return nil, err
		}
		return vdom.Div(child), nil
	}, hooks.Slot{Name: "wide", Initial: 0})

	if err := h.Mount(); err != nil {
		return 0, "", err
	}
	if err := h.Set("wide", 1); err != nil {
		return 0, "", err
	}
	n, err := h.RenderCount("child")
	if err != nil {
		return 0, "", err
	}
	warnings := h.Snapshot().Warnings
	if len(warnings) != 1 {
		return n, "", fmt.Errorf("expected 1 shape warning, got %d", len(warnings))
	}
	return n, warnings[0], nil
}

func runRollbackScenario(env Env, name string) (uint64, string, error) {
	h := newScenarioHolder(env, name, func(p *hooks.Pass) (*vdom.VNode, error) {
		x := p.Int("x")
		child, err := p.Child("child", plainChild, hooks.Props{"label": x})
		if err != nil {
			return nil, err
		}
		if x > 0 {
			return nil, fmt.Errorf("x=%d rejected", x)
		}
		return vdom.Div(child), nil
	}, hooks.Slot{Name: "x", Initial: 0})

	if err := h.Mount(); err != nil {
		return 0, "", err
	}
	failure := h.Set("x", 1)
	if !stderrors.Is(failure, hooks.ErrPassFailed) {
		return 0, "", fmt.Errorf("expected failed pass, got %v", failure)
	}
	if v, _ := h.Get("x"); v != 0 {
		return 0, "", fmt.Errorf("slot x = %v after rollback, want 0", v)
	}
	n, err := h.RenderCount("child")
	return n, "rolled back: " + failure.Error(), err
}

func runUnmountScenario(env Env, name string) (uint64, string, error) {
	h := newScenarioHolder(env, name, func(p *hooks.Pass) (*vdom.VNode, error) {
		if p.Int("show") == 0 {
			return vdom.Div(), nil
		}
		child, err := p.Child("panel", plainChild, hooks.Props{"label": p.Int("n")})
		if err != nil {
			return nil, err
		}
		return vdom.Div(child), nil
	}, hooks.Slot{Name: "show", Initial: 1}, hooks.Slot{Name: "n", Initial: 0})

	if err := h.Mount(); err != nil {
		return 0, "", err
	}
	if err := h.Bump("n"); err != nil {
		return 0, "", err
	}
	old, _ := h.Gate("panel")
	if err := h.Set("show", 0); err != nil {
		return 0, "", err
	}
	if _, err := old.Render(hooks.Props{"label": 99}); !stderrors.Is(err, hooks.ErrGateUnmounted) {
		return 0, "", fmt.Errorf("expected unmounted gate error, got %v", err)
	}
	if err := h.Set("show", 1); err != nil {
		return 0, "", err
	}
	n, err := h.RenderCount("panel")
	return n, fmt.Sprintf("old instance rendered %d times", old.RenderCount()), err
}
