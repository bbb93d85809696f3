// Package observability wires OpenTelemetry tracing and metrics into the
// service. Both are exported over OTLP HTTP and are disabled by default;
// enabling them is a config switch, not a code change.
//
// The package exposes:
//   - InitTracer / InitMeter: provider setup against an OTLP endpoint
//   - Metrics: the service's instruments (HTTP requests, registration and
//     login outcomes, token rejections); methods are nil-safe so callers
//     can hold a nil *Metrics when observability is off
//   - Component: lifecycle wrapper that starts and shuts down the
//     providers through the component registry
package observability
