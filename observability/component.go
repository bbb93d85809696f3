package observability

import (
	"context"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"tareasapi/component"
	"tareasapi/logger"
)

// Component manages the tracer and meter providers through the component
// registry. When observability is disabled, Start and Stop are no-ops and
// Metrics() stays nil.
type Component struct {
	cfg         Config
	service     string
	version     string
	environment string
	log         *logger.Logger

	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	metrics        *Metrics
}

// NewComponent creates the observability lifecycle component.
func NewComponent(cfg Config, service, version, environment string, log *logger.Logger) *Component {
	cfg.ApplyDefaults()
	return &Component{
		cfg:         cfg,
		service:     service,
		version:     version,
		environment: environment,
		log:         log.WithComponent("observability"),
	}
}

// Name returns the component name for registration.
func (c *Component) Name() string { return "observability" }

// Metrics returns the service instruments, or nil when disabled.
func (c *Component) Metrics() *Metrics { return c.metrics }

// Start initializes the tracer and meter providers when enabled.
func (c *Component) Start(ctx context.Context) error {
	if !c.cfg.Enabled {
		c.log.Debug("Observability disabled, skipping provider setup")
		return nil
	}

	tp, err := InitTracer(ctx, c.cfg, c.service, c.version, c.environment)
	if err != nil {
		return err
	}
	c.tracerProvider = tp

	mp, err := InitMeter(ctx, c.cfg, c.service, c.version, c.environment)
	if err != nil {
		return err
	}
	c.meterProvider = mp

	metrics, err := NewMetrics(Meter(instrumentationName))
	if err != nil {
		return err
	}
	c.metrics = metrics

	return nil
}

// Stop flushes and shuts down the providers.
func (c *Component) Stop(ctx context.Context) error {
	var firstErr error
	if c.tracerProvider != nil {
		if err := c.tracerProvider.Shutdown(ctx); err != nil {
			firstErr = err
		}
		c.tracerProvider = nil
	}
	if c.meterProvider != nil {
		if err := c.meterProvider.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
		c.meterProvider = nil
	}
	return firstErr
}

// Health reports whether the providers are running.
func (c *Component) Health(ctx context.Context) component.Health {
	h := component.Health{Name: c.Name(), Status: component.StatusHealthy}
	if !c.cfg.Enabled {
		h.Message = "disabled"
		return h
	}
	if c.tracerProvider == nil || c.meterProvider == nil {
		h.Status = component.StatusDegraded
		h.Message = "providers not started"
		return h
	}
	h.Message = "exporting to " + c.cfg.Endpoint
	return h
}
