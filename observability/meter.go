package observability

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"tareasapi/logger"
)

// InitMeter initializes the global OpenTelemetry meter provider with an
// OTLP HTTP exporter. The returned provider must be shut down on exit.
func InitMeter(ctx context.Context, cfg Config, service, version, environment string) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(service, version, environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("Meter initialized", logger.Fields(
		"service", service,
		"endpoint", cfg.Endpoint,
		"interval", cfg.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Outcome labels for registration and login counters.
const (
	OutcomeSuccess  = "success"
	OutcomeConflict = "conflict"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Rejection reasons for the token counter.
const (
	RejectionMissing = "missing"
	RejectionInvalid = "invalid"
)

// Metrics holds the service's metric instruments. All record methods are
// nil-safe: a nil *Metrics silently drops every measurement, so callers
// never need an enabled check.
type Metrics struct {
	httpRequestTotal    metric.Int64Counter
	httpRequestDuration metric.Float64Histogram
	registrationTotal   metric.Int64Counter
	loginTotal          metric.Int64Counter
	tokenRejectionTotal metric.Int64Counter
}

// NewMetrics creates the service's metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	httpRequestTotal, err := meter.Int64Counter("http.server.request.total",
		metric.WithDescription("Completed HTTP requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating http.server.request.total counter: %w", err)
	}

	httpRequestDuration, err := meter.Float64Histogram("http.server.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating http.server.request.duration histogram: %w", err)
	}

	registrationTotal, err := meter.Int64Counter("auth.registration.total",
		metric.WithDescription("Registration attempts by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating auth.registration.total counter: %w", err)
	}

	loginTotal, err := meter.Int64Counter("auth.login.total",
		metric.WithDescription("Login attempts by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating auth.login.total counter: %w", err)
	}

	tokenRejectionTotal, err := meter.Int64Counter("auth.token.rejected.total",
		metric.WithDescription("Bearer tokens rejected at the gate, by reason"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating auth.token.rejected.total counter: %w", err)
	}

	return &Metrics{
		httpRequestTotal:    httpRequestTotal,
		httpRequestDuration: httpRequestDuration,
		registrationTotal:   registrationTotal,
		loginTotal:          loginTotal,
		tokenRejectionTotal: tokenRejectionTotal,
	}, nil
}

// RecordHTTPRequest records a completed HTTP request.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.String("status", strconv.Itoa(status)),
	))
	m.httpRequestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
	))
}

// RecordRegistration records a registration attempt outcome.
func (m *Metrics) RecordRegistration(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.registrationTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

// RecordLogin records a login attempt outcome.
func (m *Metrics) RecordLogin(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.loginTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

// RecordTokenRejection records a bearer token rejected at the gate.
func (m *Metrics) RecordTokenRejection(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.tokenRejectionTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", reason),
	))
}
