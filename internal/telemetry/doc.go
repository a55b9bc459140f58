// Package telemetry provides hooks.Observer implementations that report
// render passes to slog, Prometheus and OpenTelemetry.
//
// Build the observer set from configuration:
//
//	obs, metrics := telemetry.NewObserver(cfg, logger)
//	h := hooks.NewStateHolder(hooks.HolderConfig{Observer: obs}, root)
//
// Metrics collected:
//   - memolab_passes_total: committed and failed passes by holder
//   - memolab_gate_renders_total: gate decisions by holder, gate and outcome
//   - memolab_pass_duration_seconds: pass duration by holder
package telemetry
