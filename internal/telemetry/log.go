package telemetry

import (
	"context"
	"io"
	"log/slog"

	"github.com/vango-dev/memolab/pkg/hooks"
)

// NewLogger builds the process logger.
func NewLogger(w io.Writer, level slog.Level, json bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if json {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// LogObserver logs one line per pass with how many gates executed and
// skipped.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates a LogObserver. If logger is nil, slog.Default() is used.
func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{logger: logger}
}

type tallyKey struct{}

type tally struct {
	executed int
	skipped  int
}

func (o *LogObserver) PassStarted(ctx context.Context, _ hooks.PassInfo) context.Context {
	return context.WithValue(ctx, tallyKey{}, &tally{})
}

func (o *LogObserver) GateDecided(ctx context.Context, _ hooks.PassInfo, d hooks.Decision) {
	t, ok := ctx.Value(tallyKey{}).(*tally)
	if !ok {
		return
	}
	if d.Executed {
		t.executed++
	} else {
		t.skipped++
	}
}

func (o *LogObserver) PassFinished(ctx context.Context, info hooks.PassInfo, err error) {
	if err != nil {
		o.logger.Warn("pass failed",
			"holder", info.Holder, "seq", info.Seq, "trigger", info.Trigger, "error", err)
		return
	}
	t, _ := ctx.Value(tallyKey{}).(*tally)
	if t == nil {
		t = &tally{}
	}
	o.logger.Info("pass",
		"holder", info.Holder,
		"seq", info.Seq,
		"trigger", info.Trigger,
		"executed", t.executed,
		"skipped", t.skipped,
		"duration", info.Duration,
	)
}
