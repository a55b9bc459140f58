package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"

	"github.com/vango-dev/memolab/internal/lessons"
	"github.com/vango-dev/memolab/internal/report"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestVersionShort(t *testing.T) {
	out, err := execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, version+"\n", out)
}

func TestScenariosList(t *testing.T) {
	out, err := execute(t, "scenarios", "--list")
	require.NoError(t, err)
	for _, s := range lessons.Scenarios() {
		assert.Contains(t, out, s.Name)
	}
}

func TestScenariosJSON(t *testing.T) {
	cfg := writeConfig(t, "memolab.yaml", "log:\n  level: error\n")
	out, err := execute(t, "--config", cfg, "scenarios", "--format", "json", "A", "memo-changed-deps")
	require.NoError(t, err)

	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.Len(t, rep.Outcomes, 2)
	assert.Equal(t, "A", rep.Outcomes[0].ID)
	assert.Equal(t, "D", rep.Outcomes[1].ID)
	assert.True(t, rep.OK())
}

func TestScenariosTable(t *testing.T) {
	cfg := writeConfig(t, "memolab.json", `{"log":{"level":"error"}}`)
	out, err := execute(t, "--config", cfg, "scenarios")
	require.NoError(t, err)
	assert.Contains(t, out, "stable-callback")
	assert.Contains(t, out, "9 passed, 0 failed")
	assert.NotContains(t, out, "\x1b[")
}

func TestScenariosUnknown(t *testing.T) {
	cfg := writeConfig(t, "memolab.json", `{"log":{"level":"error"}}`)
	_, err := execute(t, "--config", cfg, "scenarios", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "M012")
}

func TestScenariosBadFormat(t *testing.T) {
	cfg := writeConfig(t, "memolab.json", `{"log":{"level":"error"}}`)
	_, err := execute(t, "--config", cfg, "scenarios", "--format", "xml", "A")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "R001")
}

func TestScenariosBadUploadDestination(t *testing.T) {
	cfg := writeConfig(t, "memolab.json", `{"log":{"level":"error"}}`)
	_, err := execute(t, "--config", cfg, "scenarios", "--format", "json", "--upload", "ftp://x/y", "A")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "R003")
}

func TestUploadFormat(t *testing.T) {
	assert.Equal(t, report.FormatYAML, uploadFormat("runs/latest.yml", "table", report.FormatJSON))
	assert.Equal(t, report.FormatJSON, uploadFormat("runs/latest.json", "yaml", report.FormatYAML))
	assert.Equal(t, report.FormatYAML, uploadFormat("", "yaml", report.FormatJSON))
	assert.Equal(t, report.FormatJSON, uploadFormat("", "table", report.FormatJSON))
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(&globalFlags{configPath: filepath.Join(t.TempDir(), "missing.json")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "C001")
}

func TestLoadConfigDebugFlag(t *testing.T) {
	cfg := writeConfig(t, "memolab.json", `{}`)
	c, err := loadConfig(&globalFlags{configPath: cfg, debug: true})
	require.NoError(t, err)
	assert.True(t, c.Debug)
}

func TestRunBench(t *testing.T) {
	results, err := runBench([]string{"A", "usememo-ignored"}, 3)
	require.Error(t, err)
	assert.Nil(t, results)

	results, err = runBench([]string{"A", "memo-same-deps"}, 5)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, uint64(5), results[0].Runs)
	assert.Zero(t, results[0].Failures)
	assert.Equal(t, "C", results[1].ID)
}

func TestFillQuantiles(t *testing.T) {
	sum := &dto.Summary{
		SampleCount: proto.Uint64(4),
		SampleSum:   proto.Float64(0.004),
		Quantile: []*dto.Quantile{
			{Quantile: proto.Float64(0.5), Value: proto.Float64(0.001)},
			{Quantile: proto.Float64(0.99), Value: proto.Float64(0.002)},
		},
	}
	var res benchResult
	fillQuantiles(&res, sum)
	assert.Equal(t, uint64(4), res.Runs)
	assert.Equal(t, time.Millisecond, res.Mean)
	assert.Equal(t, time.Millisecond, res.P50)
	assert.Equal(t, 2*time.Millisecond, res.P99)
}

func TestRenderBench(t *testing.T) {
	var buf bytes.Buffer
	renderBench(&buf, []benchResult{{ID: "A", Name: "stable-callback", Runs: 1200, BytesOp: 2048}})
	out := buf.String()
	assert.Contains(t, out, "stable-callback")
	assert.Contains(t, out, "1,200")
	assert.Contains(t, out, "2.0 kB")
	assert.True(t, strings.Contains(out, "Alloc/op"))
}

func TestScenariosUploadConfigWithoutBucket(t *testing.T) {
	cfg := writeConfig(t, "memolab.json", `{"log":{"level":"error"}}`)
	_, err := execute(t, "--config", cfg, "scenarios", "--format", "json", "--upload", "config", "A")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "R003")
}

func TestRenderOutcomeTablePlainOutput(t *testing.T) {
	rep := report.New("", []lessons.Outcome{
		{ID: "A", Name: "stable-callback", Metric: "renders", Want: 1, Got: 1, OK: true},
		{ID: "B", Name: "unstable-callback", Metric: "renders", Want: 3, Got: 2, Error: "boom"},
	})

	var buf bytes.Buffer
	renderOutcomeTable(&buf, rep)
	out := buf.String()

	assert.Contains(t, out, "1 passed, 1 failed")
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, "boom")
	assert.NotContains(t, out, "\x1b[")
}
