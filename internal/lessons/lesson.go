package lessons

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	lerrors "github.com/vango-dev/memolab/internal/errors"
	"github.com/vango-dev/memolab/pkg/hooks"
	"github.com/vango-dev/memolab/pkg/vdom"
)

// Config is shared by every lesson holder.
type Config struct {
	Logger   *slog.Logger
	Observer hooks.Observer
}

// Action is a button that bumps one slot of a lesson.
type Action struct {
	Slot    string
	Label   string
	Variant ButtonVariant
}

// Lesson is one interactive section of the home page.
type Lesson struct {
	ID          string
	Title       string
	Description string
	Code        string
	Actions     []Action

	mu     sync.RWMutex
	holder *hooks.StateHolder
}

// Holder returns the lesson's current state holder.
func (l *Lesson) Holder() *hooks.StateHolder {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.holder
}

// Bump increments slot and runs one pass.
func (l *Lesson) Bump(ctx context.Context, slot string) error {
	return l.Holder().Mutate(ctx, slot, func(old any) any {
		n, _ := old.(int)
		return n + 1
	})
}

// Reset replaces the holder with a fresh one, discarding all counts.
func (l *Lesson) Reset(cfg Config) error {
	fresh := newLesson(l.ID, cfg)
	if err := fresh.holder.Mount(); err != nil {
		return err
	}
	l.mu.Lock()
	old := l.holder
	l.holder = fresh.holder
	l.mu.Unlock()
	old.Dispose()
	return nil
}

// Demo returns the output of the last committed pass.
func (l *Lesson) Demo() *vdom.VNode {
	return l.Holder().Output()
}

// Catalog holds the mounted lessons by id.
type Catalog struct {
	cfg     Config
	lessons map[string]*Lesson
}

// NewCatalog creates and mounts every lesson.
func NewCatalog(cfg Config) (*Catalog, error) {
	c := &Catalog{cfg: cfg, lessons: make(map[string]*Lesson)}
	for _, id := range []string{CallbackLessonID, MemoLessonID} {
		l := newLesson(id, cfg)
		if err := l.holder.Mount(); err != nil {
			return nil, err
		}
		c.lessons[id] = l
	}
	return c, nil
}

// Get returns the lesson id.
func (c *Catalog) Get(id string) (*Lesson, bool) {
	l, ok := c.lessons[id]
	return l, ok
}

// All returns the lessons in page order.
func (c *Catalog) All() []*Lesson {
	out := make([]*Lesson, 0, len(c.lessons))
	for _, l := range c.lessons {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return lessonOrder[out[i].ID] < lessonOrder[out[j].ID] })
	return out
}

// Reset resets one lesson.
func (c *Catalog) Reset(id string) error {
	l, ok := c.lessons[id]
	if !ok {
		return errUnknownLesson(id)
	}
	return l.Reset(c.cfg)
}

// Close disposes every lesson holder.
func (c *Catalog) Close() {
	for _, l := range c.lessons {
		l.Holder().Dispose()
	}
}

var lessonOrder = map[string]int{
	CallbackLessonID: 0,
	MemoLessonID:     1,
}

func newLesson(id string, cfg Config) *Lesson {
	switch id {
	case MemoLessonID:
		return NewMemoLesson(cfg)
	default:
		return NewCallbackLesson(cfg)
	}
}

func errUnknownLesson(id string) error {
	return lerrors.New(lerrors.CodeUnknownLesson).WithDetailf("lesson %q", id)
}
