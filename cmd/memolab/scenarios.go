package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/vango-dev/memolab/internal/config"
	lerrors "github.com/vango-dev/memolab/internal/errors"
	"github.com/vango-dev/memolab/internal/lessons"
	"github.com/vango-dev/memolab/internal/report"
	"github.com/vango-dev/memolab/internal/telemetry"
)

func scenariosCmd(flags *globalFlags) *cobra.Command {
	var (
		format string
		list   bool
		upload string
	)

	cmd := &cobra.Command{
		Use:   "scenarios [id|name...]",
		Short: "Run the render-count scenarios",
		Long: `Run scripted mutation sequences against fresh holders and compare the
resulting render or computation counts with the expected ones.

With no arguments every scenario runs. The command fails if any
scenario misses its expectation.

Examples:
  memolab scenarios
  memolab scenarios A stable-callback
  memolab scenarios --format=yaml
  memolab scenarios --upload=s3://my-bucket/reports/latest.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				return listScenarios(cmd.OutOrStdout())
			}
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			return runScenarios(cmd.Context(), cmd.OutOrStdout(), cfg, args, format, upload)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, json or yaml")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "List scenarios without running them")
	cmd.Flags().StringVar(&upload, "upload", "", "Upload the report to s3://bucket[/key], or \"config\" for report.bucket")

	return cmd
}

func runScenarios(ctx context.Context, out io.Writer, cfg *config.Config, keys []string, format, upload string) error {
	logger := newLogger(cfg, os.Stderr)
	outcomes, err := lessons.RunAll(lessons.Env{
		Logger:   logger,
		Observer: telemetry.NewLogObserver(logger),
	}, keys...)
	if err != nil {
		return err
	}

	rep := report.New(version, outcomes)
	if err := writeOutcomes(out, rep, format); err != nil {
		return err
	}

	if upload != "" {
		if ctx == nil {
			ctx = context.Background()
		}
		if err := uploadReport(ctx, cfg, logger, rep, format, upload); err != nil {
			return err
		}
	}

	if !rep.OK() {
		warn("Some scenarios missed their expected counts")
		return fmt.Errorf("%d of %d scenarios failed", rep.Failed, len(rep.Outcomes))
	}
	return nil
}

// writeOutcomes prints the report as a table or encodes it.
func writeOutcomes(w io.Writer, rep *report.Report, format string) error {
	switch format {
	case "table", "":
		renderOutcomeTable(w, rep)
		return nil
	case report.FormatJSON, report.FormatYAML:
		return rep.Encode(w, format)
	default:
		return lerrors.New(lerrors.CodeReportEncode).WithDetailf("unknown format %q", format).
			WithSuggestion("Use --format=table, --format=json or --format=yaml")
	}
}

func renderOutcomeTable(w io.Writer, rep *report.Report) {
	tbl := table.NewWriter()
	tbl.SetTitle("Scenarios")
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleRounded)
	tbl.Style().Format.Footer = text.FormatDefault
	tbl.AppendHeader(table.Row{"id", "scenario", "metric", "want", "got", "result", "time"})

	color := isTerminal(w)
	paint := func(c text.Color, s string) string {
		if !color {
			return s
		}
		return c.Sprint(s)
	}

	for _, o := range rep.Outcomes {
		result := paint(text.FgGreen, "pass")
		if !o.OK {
			result = paint(text.FgRed, "FAIL")
		}
		tbl.AppendRow(table.Row{o.ID, o.Name, o.Metric, o.Want, o.Got, result, o.Duration.Round(time.Microsecond)})
		if o.Error != "" {
			tbl.AppendRow(table.Row{"", paint(text.FgYellow, o.Error)})
		}
	}
	tbl.AppendFooter(table.Row{"", fmt.Sprintf("%d passed, %d failed", rep.Passed, rep.Failed)})
	tbl.Render()
}

func listScenarios(w io.Writer) error {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"id", "name", "expects", "description"})
	for _, s := range lessons.Scenarios() {
		tbl.AppendRow(table.Row{s.ID, s.Name, fmt.Sprintf("%d %s", s.Want, s.Metric), s.Description})
	}
	tbl.Render()
	return nil
}

// uploadReport stores rep at dest, or in the configured bucket when dest is
// "config". The encoding follows the key's extension, then --format, then
// the config.
func uploadReport(ctx context.Context, cfg *config.Config, logger *slog.Logger, rep *report.Report, format, dest string) error {
	bucket, key := cfg.Report.Bucket, ""
	if dest != "config" {
		var err error
		if bucket, key, err = report.ParseDestination(dest); err != nil {
			return err
		}
	}
	format = uploadFormat(key, format, cfg.Report.Format)

	uploader := report.NewUploader(report.NewS3Client(cfg.Report), bucket, cfg.Report.Prefix, logger)
	loc, err := uploader.Upload(ctx, rep, format, key)
	if err != nil {
		return err
	}
	success("Report uploaded to %s", loc)
	return nil
}

func uploadFormat(key, flagFormat, configFormat string) string {
	switch {
	case strings.HasSuffix(key, ".yaml"), strings.HasSuffix(key, ".yml"):
		return report.FormatYAML
	case strings.HasSuffix(key, ".json"):
		return report.FormatJSON
	case flagFormat == report.FormatJSON, flagFormat == report.FormatYAML:
		return flagFormat
	}
	return configFormat
}

// isTerminal reports whether w is a character device.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
