// Package metrics records observations about glossary builds.
//
// Components receive a Recorder through dependency injection. NoopRecorder is
// the default and does nothing; PrometheusRecorder registers collectors on a
// registry that can be written to a node-exporter textfile after a one-shot
// build or served over HTTP while watching.
//
//	reg := prometheus.NewRegistry()
//	gen := build.NewGenerator(cfg, build.WithRecorder(metrics.NewPrometheusRecorder(reg)))
package metrics
