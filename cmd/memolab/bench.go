package main

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/spf13/cobra"

	"github.com/vango-dev/memolab/internal/lessons"
)

// benchObjectives are the quantiles reported by bench.
var benchObjectives = map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001}

// benchResult summarizes repeated runs of one scenario.
type benchResult struct {
	ID       string
	Name     string
	Runs     uint64
	Failures int
	Mean     time.Duration
	P50      time.Duration
	P90      time.Duration
	P99      time.Duration
	BytesOp  uint64
}

func benchCmd(flags *globalFlags) *cobra.Command {
	var iterations int

	cmd := &cobra.Command{
		Use:   "bench [id|name...]",
		Short: "Time the scenarios",
		Long: `Run each scenario repeatedly on fresh holders and report latency
quantiles and allocated bytes per run.

Examples:
  memolab bench
  memolab bench --iterations=1000 memo-same-deps`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(flags); err != nil {
				return err
			}
			results, err := runBench(args, iterations)
			if err != nil {
				return err
			}
			renderBench(cmd.OutOrStdout(), results)
			return nil
		},
	}

	cmd.Flags().IntVarP(&iterations, "iterations", "n", 200, "Runs per scenario")

	return cmd
}

func runBench(keys []string, iterations int) ([]benchResult, error) {
	if iterations < 1 {
		iterations = 1
	}

	selected := lessons.Scenarios()
	if len(keys) > 0 {
		selected = nil
		for _, k := range keys {
			s, err := lessons.Find(k)
			if err != nil {
				return nil, err
			}
			selected = append(selected, s)
		}
	}

	env := lessons.Env{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	results := make([]benchResult, 0, len(selected))
	for _, s := range selected {
		results = append(results, benchScenario(env, s, iterations))
	}
	return results, nil
}

func benchScenario(env lessons.Env, s lessons.Scenario, iterations int) benchResult {
	summary := prometheus.NewSummary(prometheus.SummaryOpts{
		Name:       "scenario_run_seconds",
		Help:       "Scenario run latency",
		Objectives: benchObjectives,
	})

	res := benchResult{ID: s.ID, Name: s.Name}
	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	for i := 0; i < iterations; i++ {
		start := time.Now()
		o := s.Run(env)
		summary.Observe(time.Since(start).Seconds())
		if !o.OK {
			res.Failures++
		}
	}
	runtime.ReadMemStats(&after)

	var m dto.Metric
	if err := summary.Write(&m); err == nil {
		fillQuantiles(&res, m.GetSummary())
	}
	res.BytesOp = (after.TotalAlloc - before.TotalAlloc) / uint64(iterations)
	return res
}

func fillQuantiles(res *benchResult, sum *dto.Summary) {
	res.Runs = sum.GetSampleCount()
	if res.Runs > 0 {
		res.Mean = seconds(sum.GetSampleSum() / float64(res.Runs))
	}
	for _, q := range sum.GetQuantile() {
		d := seconds(q.GetValue())
		switch q.GetQuantile() {
		case 0.5:
			res.P50 = d
		case 0.9:
			res.P90 = d
		case 0.99:
			res.P99 = d
		}
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func renderBench(w io.Writer, results []benchResult) {
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"ID", "Scenario", "Runs", "Mean", "P50", "P90", "P99", "Alloc/op", "Failures"})
	tbl.SetBorder(false)
	tbl.SetAutoFormatHeaders(false)
	tbl.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, r := range results {
		tbl.Append([]string{
			r.ID,
			r.Name,
			humanize.Comma(int64(r.Runs)),
			r.Mean.String(),
			r.P50.String(),
			r.P90.String(),
			r.P99.String(),
			humanize.Bytes(r.BytesOp),
			fmt.Sprint(r.Failures),
		})
	}
	tbl.Render()
}
