package hooks

import (
	"context"
	"time"
)

// PassInfo describes one render pass.
type PassInfo struct {
	// Holder is the holder's name.
	Holder string

	// HolderID is the holder's unique instance id.
	HolderID string

	// Seq is the pass number; the first pass is 1. A failed pass does not
	// consume a number.
	Seq uint64

	// Trigger is the slot whose mutation started the pass, or "" for Mount.
	Trigger string

	// Started is when the pass began.
	Started time.Time

	// Duration is set once the pass has finished.
	Duration time.Duration
}

// Decision is one gate's skip/execute outcome within a committed pass.
type Decision struct {
	Gate     string
	Executed bool
	Changed  []string
	Renders  uint64
}

// Observer watches render passes. Implementations must not mutate the holder.
type Observer interface {
	// PassStarted is called before the root component runs. The returned
	// context is handed to the pass and the other callbacks.
	PassStarted(ctx context.Context, info PassInfo) context.Context

	// GateDecided is called for each gate once the pass has committed.
	GateDecided(ctx context.Context, info PassInfo, d Decision)

	// PassFinished is called last. err is non-nil if the pass was rolled back.
	PassFinished(ctx context.Context, info PassInfo, err error)
}

// NopObserver ignores everything.
type NopObserver struct{}

func (NopObserver) PassStarted(ctx context.Context, _ PassInfo) context.Context { return ctx }
func (NopObserver) GateDecided(context.Context, PassInfo, Decision)            {}
func (NopObserver) PassFinished(context.Context, PassInfo, error)              {}

// Observers fans out to several observers in order.
func Observers(obs ...Observer) Observer {
	list := make(multiObserver, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			list = append(list, o)
		}
	}
	return list
}

type multiObserver []Observer

func (m multiObserver) PassStarted(ctx context.Context, info PassInfo) context.Context {
	for _, o := range m {
		ctx = o.PassStarted(ctx, info)
	}
	return ctx
}

func (m multiObserver) GateDecided(ctx context.Context, info PassInfo, d Decision) {
	for _, o := range m {
		o.GateDecided(ctx, info, d)
	}
}

func (m multiObserver) PassFinished(ctx context.Context, info PassInfo, err error) {
	for _, o := range m {
		o.PassFinished(ctx, info, err)
	}
}
