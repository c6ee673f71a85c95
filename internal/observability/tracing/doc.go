// Package tracing provides OpenTelemetry tracing integration for HTTP requests.
//
// The package uses the OpenTelemetry API only: without an SDK exporter
// configured the tracer is a no-op, so tracing adds no overhead unless an
// operator wires up a collector.
package tracing
